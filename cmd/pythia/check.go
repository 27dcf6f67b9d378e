package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/pythia-lang/pythia/internal/cli"
)

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check [path...]",
		Short: "Check files for syntax errors",
		Long: "Check parses every matching file under the given paths in " +
			"parallel and reports diagnostics. With a configured or flagged " +
			"python-version, syntax newer than that release is also reported.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{"."}
			}
			target, err := cfg.TargetVersion(flagPythonVersion)
			if err != nil {
				return err
			}
			files, err := collectFiles(args)
			if err != nil {
				return err
			}
			if len(files) == 0 {
				return fmt.Errorf("no matching files under %v", args)
			}

			var (
				mu     sync.Mutex
				failed int
			)
			g := new(errgroup.Group)
			g.SetLimit(cfg.WorkerCount())
			for _, path := range files {
				path := path
				g.Go(func() error {
					data, err := os.ReadFile(path)
					if err != nil {
						return err
					}
					content := string(data)
					diags := cli.Diagnose(path, content, target)
					if len(diags) == 0 {
						return nil
					}
					var buf bytes.Buffer
					cli.Render(&buf, content, diags)
					mu.Lock()
					failed++
					cmd.ErrOrStderr().Write(buf.Bytes())
					mu.Unlock()
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d file(s) had diagnostics", failed, len(files))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "checked %d file(s), no diagnostics\n", len(files))
			return nil
		},
	}
}

// collectFiles expands paths into the matching files beneath them.
// Explicit file arguments bypass the extension filter.
func collectFiles(paths []string) ([]string, error) {
	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, path)
			continue
		}
		err = filepath.WalkDir(path, func(p string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if cfg.Excluded(d.Name()) {
					return filepath.SkipDir
				}
				return nil
			}
			if cfg.Matches(p) {
				files = append(files, p)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return files, nil
}
