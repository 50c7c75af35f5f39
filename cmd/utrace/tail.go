package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

func newTailCmd() *cobra.Command {
	var follow bool
	cmd := &cobra.Command{
		Use:   "tail FILE",
		Short: "Print a trace file",
		Long: `Print FILE. With --follow, keep printing bytes appended to it until the
file is removed or the command is interrupted. A closed ring file is
already in stream order, oldest byte first.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return tailFile(ctx, args[0], cmd.OutOrStdout(), follow)
		},
	}
	cmd.Flags().BoolVarP(&follow, "follow", "f", false, "follow appended output")
	return cmd
}

// tailFile copies path to w and, when follow is set, keeps copying new
// bytes on every write event. A truncated file is reread from the start.
func tailFile(ctx context.Context, path string, w io.Writer, follow bool) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	offset, err := io.Copy(w, f)
	if err != nil || !follow {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()
	if err := watcher.Add(path); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watch %s: %w", path, err)
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			switch {
			case ev.Has(fsnotify.Remove), ev.Has(fsnotify.Rename):
				return nil
			case ev.Has(fsnotify.Write), ev.Has(fsnotify.Chmod):
				st, err := f.Stat()
				if err != nil {
					return err
				}
				if st.Size() < offset {
					offset = 0
				}
				n, err := io.Copy(w, io.NewSectionReader(f, offset, st.Size()-offset))
				offset += n
				if err != nil && !errors.Is(err, io.EOF) {
					return err
				}
			}
		}
	}
}
