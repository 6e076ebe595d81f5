package main

import "github.com/cmstack/bake/cmd/bake/internal"

func main() {
	internal.Execute()
}
