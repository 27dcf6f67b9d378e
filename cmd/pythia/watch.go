package main

import (
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/Masterminds/semver/v3"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pythia-lang/pythia/internal/cli"
)

func newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch [path...]",
		Short: "Re-check files when they change",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{"."}
			}
			target, err := cfg.TargetVersion(flagPythonVersion)
			if err != nil {
				return err
			}

			logger, err := zap.NewDevelopment()
			if err != nil {
				return err
			}
			defer logger.Sync()

			watcher, err := fsnotify.NewWatcher()
			if err != nil {
				return err
			}
			defer watcher.Close()

			for _, path := range args {
				if err := watchTree(watcher, path); err != nil {
					return err
				}
			}
			logger.Info("watching", zap.Strings("paths", args))

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			for {
				select {
				case <-ctx.Done():
					logger.Info("stopping")
					return nil
				case err, ok := <-watcher.Errors:
					if !ok {
						return nil
					}
					logger.Warn("watch error", zap.Error(err))
				case event, ok := <-watcher.Events:
					if !ok {
						return nil
					}
					if event.Op.Has(fsnotify.Create) {
						if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
							if err := watchTree(watcher, event.Name); err != nil {
								logger.Warn("watch new directory", zap.String("path", event.Name), zap.Error(err))
							}
							continue
						}
					}
					if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) {
						continue
					}
					if !cfg.Matches(event.Name) {
						continue
					}
					checkOne(logger, event.Name, target)
				}
			}
		},
	}
}

func checkOne(logger *zap.Logger, path string, target *semver.Version) {
	data, err := os.ReadFile(path)
	if err != nil {
		logger.Warn("read", zap.String("file", path), zap.Error(err))
		return
	}
	content := string(data)
	diags := cli.Diagnose(path, content, target)
	if len(diags) == 0 {
		logger.Info("clean", zap.String("file", path))
		return
	}
	for _, d := range diags {
		logger.Error("diagnostic",
			zap.String("file", d.File),
			zap.String("position", d.Pos.String()),
			zap.String("message", d.Message))
	}
}

// watchTree registers path and, for directories, every non-excluded
// subdirectory. fsnotify watches are not recursive on their own.
func watchTree(watcher *fsnotify.Watcher, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return watcher.Add(path)
	}
	return filepath.WalkDir(path, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if cfg.Excluded(d.Name()) {
			return filepath.SkipDir
		}
		return watcher.Add(p)
	})
}
