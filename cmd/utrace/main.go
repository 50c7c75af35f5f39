// Command utrace renders format strings the way the trace subsystem does,
// toggles tracing in a running process and follows trace files.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// exitError carries a process exit status chosen by a rendered %Q.
type exitError struct {
	code int
}

func (e exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "utrace",
		Short: "Render diagnostics formats and control process trace logs",
		Long: `utrace exposes the diagnostic renderer and the trace log from the command
line: render a format string with typed arguments, send the trace toggle
signal to a running process, or print and follow a trace file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newRenderCmd(), newToggleCmd(), newTailCmd())
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		var exit exitError
		if errors.As(err, &exit) {
			os.Exit(exit.code)
		}
		fmt.Fprintln(os.Stderr, "utrace:", err)
		os.Exit(1)
	}
}
