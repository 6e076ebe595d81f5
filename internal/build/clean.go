package build

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/qiniu/x/log"
)

// Clean removes every configured artifact path. Paths that are already
// absent are not errors; removal is idempotent.
func (b *Builder) Clean() error {
	for _, p := range b.cfg.Artifacts {
		target := p
		if !filepath.IsAbs(target) {
			target = filepath.Join(b.root, target)
		}
		log.Debugf("clean %s", target)
		if err := os.RemoveAll(target); err != nil {
			return fmt.Errorf("clean %s: %w", p, err)
		}
	}
	return nil
}
