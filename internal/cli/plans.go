package cli

import (
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var plansCmd = &cobra.Command{
	Use:          "plans",
	Short:        "List the plans the backend can run",
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newBackendClient()
		if err != nil {
			return err
		}
		plans, err := client.ListPlans(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(plans) == 0 {
			fmt.Fprintln(out, "No plans.")
			return nil
		}

		table := tablewriter.NewWriter(out)
		table.SetHeader([]string{"Plan", "Description"})
		table.SetAutoWrapText(false)
		table.SetBorder(false)
		for _, p := range plans {
			table.Append([]string{p.Name, p.Description})
		}
		table.Render()
		return nil
	},
}
