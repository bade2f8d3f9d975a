// main.go - xcp command-line entry point (spec §6's "status observer"
// collaborator, made concrete)
//
// (c) 2024 Sudhi Herle <sudhi@herle.net>
//
// Licensing Terms: GPLv2
//
// If you need a commercial license for this work, please contact
// the author.
//
// This software does not come with any express or implied
// warranty; it is provided "as is". No claim  is made to its
// suitability for any purpose.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/xcpkit/xcp/ignore"
	"github.com/xcpkit/xcp/progress"
	"github.com/xcpkit/xcp/xcopy"
)

var (
	flagWorkers     int
	flagBlockSize   int64
	flagReflink     string
	flagNoClobber   bool
	flagNoTargetDir bool
	flagNoPerms     bool
	flagFsync       bool
	flagExclude     []string
	flagQuiet       bool
)

var rootCmd = &cobra.Command{
	Use:     "xcp SRC... DST",
	Short:   "Parallel, reflink-aware recursive file copier",
	Version: "0.1.0",
	Args:    cobra.MinimumNArgs(2),
	RunE:    runCopy,
}

func init() {
	def := xcopy.DefaultConfig()
	rootCmd.Flags().IntVar(&flagWorkers, "workers", def.NumWorkers, "number of concurrent copy workers")
	rootCmd.Flags().Int64Var(&flagBlockSize, "block-size", def.BlockSize, "progress reporting granularity, in bytes")
	rootCmd.Flags().StringVar(&flagReflink, "reflink", "auto", "reflink mode: always, auto, never")
	rootCmd.Flags().BoolVar(&flagNoClobber, "no-clobber", false, "fail instead of overwriting an existing destination")
	rootCmd.Flags().BoolVar(&flagNoTargetDir, "no-target-directory", false, "treat DST as the literal target, not a directory to copy into")
	rootCmd.Flags().BoolVar(&flagNoPerms, "no-perms", false, "skip replicating permissions, ownership and xattrs")
	rootCmd.Flags().BoolVar(&flagFsync, "fsync", false, "fsync every destination file before closing it")
	rootCmd.Flags().StringSliceVar(&flagExclude, "exclude", nil, "glob pattern to exclude (repeatable)")
	rootCmd.Flags().BoolVarP(&flagQuiet, "quiet", "q", false, "suppress the progress line")
}

func runCopy(cmd *cobra.Command, args []string) error {
	sources, dest := args[:len(args)-1], args[len(args)-1]

	reflinkMode, err := xcopy.ParseReflinkMode(flagReflink)
	if err != nil {
		return err
	}

	cfg := xcopy.DefaultConfig()
	cfg.NumWorkers = flagWorkers
	cfg.BlockSize = flagBlockSize
	cfg.ReflinkMode = reflinkMode
	cfg.NoClobber = flagNoClobber
	cfg.NoTargetDir = flagNoTargetDir
	cfg.NoPerms = flagNoPerms
	cfg.Fsync = flagFsync
	cfg.ExcludePatterns = flagExclude
	cfg.IgnoreFactory = ignore.Default

	sink := progress.NewBufferingSink(uint64(cfg.BlockSize))
	r := newRenderer(os.Stderr, flagQuiet)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for u := range sink.Receive() {
			r.update(u)
		}
	}()

	driver := xcopy.NewDriver(cfg)
	var copyErr error
	if len(sources) == 1 && !isDir(sources[0]) {
		copyErr = driver.CopySingle(sources[0], dest, sink)
	} else {
		copyErr = driver.CopyAll(sources, dest, sink)
	}

	sink.Close()
	<-done
	r.finish()

	return copyErr
}

func isDir(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.IsDir()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
