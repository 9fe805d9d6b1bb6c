package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var stopCmd = &cobra.Command{
	Use:          "stop <scan-id>",
	Short:        "Ask the backend to stop a running scan",
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newBackendClient()
		if err != nil {
			return err
		}
		if err := client.StopScan(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Scan %s is stopping\n", args[0])
		return nil
	},
}
