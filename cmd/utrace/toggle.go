package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newToggleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle PID",
		Short: "Toggle tracing in a running process",
		Long: `Send the trace toggle signal (SIGUSR2) to PID. A process started with
UTRACE_SIGNAL begins tracing on the first toggle and stops on the next.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pid, err := strconv.Atoi(args[0])
			if err != nil || pid <= 0 {
				return fmt.Errorf("invalid pid %q", args[0])
			}
			if err := sendToggle(pid); err != nil {
				return fmt.Errorf("toggle %d: %w", pid, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "sent SIGUSR2 to %d\n", pid)
			return nil
		},
	}
}
