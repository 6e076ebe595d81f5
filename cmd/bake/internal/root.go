package internal

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/qiniu/x/log"
	"github.com/spf13/cobra"

	"github.com/cmstack/bake/internal/build"
	"github.com/cmstack/bake/internal/config"
	"github.com/cmstack/bake/internal/exitcode"
	"github.com/cmstack/bake/internal/watch"
)

var (
	flagVerbose bool
	flagChdir   string
	flagConfig  string
	flagWatch   bool
)

var rootCmd = &cobra.Command{
	Use:   "bake [debug|test|clean]",
	Short: "bake wraps the configure/compile/test workflow of a CMake project",
	Long: `bake wraps the configure/compile/test workflow of a CMake project.

With no argument it configures and compiles. "debug" selects a debug
build variant, "test" also runs the test suite, and "clean" removes
the build artifacts without invoking any tool.`,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	rootCmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging of pipeline steps")
	rootCmd.Flags().StringVarP(&flagChdir, "chdir", "C", ".", "Project root to operate in")
	rootCmd.Flags().StringVar(&flagConfig, "config", "", "Config file (default .bake.yml at the project root)")
	rootCmd.Flags().BoolVarP(&flagWatch, "watch", "w", false, "Re-run the pipeline when project sources change")
}

// Execute runs the root command and exits with the aggregated status:
// 0 on success, 1 on usage/config/directory errors, and the child's
// own exit code when an external tool fails.
func Execute() {
	err := rootCmd.Execute()
	if err == nil {
		return
	}
	var usage *build.UsageError
	if errors.As(err, &usage) {
		fmt.Fprintln(os.Stderr, "bake:", usage.Error())
		fmt.Fprint(os.Stderr, rootCmd.UsageString())
		os.Exit(exitcode.Failure)
	}
	log.Errorf("%v", err)
	os.Exit(exitcode.FromError(err))
}

func run(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()
	if flagVerbose {
		log.SetOutputLevel(log.Ldebug)
	} else {
		log.SetOutputLevel(log.Linfo)
	}

	mode, err := build.ParseMode(args)
	if err != nil {
		return err
	}
	if flagWatch && mode == build.Clean {
		return errors.New("--watch cannot be combined with clean")
	}

	root, err := filepath.Abs(flagChdir)
	if err != nil {
		return fmt.Errorf("resolve project root: %w", err)
	}

	var cfg *config.Config
	if flagConfig != "" {
		cfg, err = config.Load(flagConfig)
	} else {
		cfg, err = config.LoadDefault(root)
	}
	if err != nil {
		return err
	}

	b, err := build.NewBuilder(build.Options{Root: root, Config: cfg})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := b.Run(ctx, mode); err != nil {
		return err
	}

	if flagWatch {
		ignore := append([]string{cfg.BuildDir, config.DefaultFile}, cfg.Artifacts...)
		return watch.Watch(ctx, watch.Options{Root: root, Ignore: ignore}, func() error {
			return b.Run(ctx, mode)
		})
	}
	return nil
}
