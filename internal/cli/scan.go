package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/minion/minion-scan/internal/output"
	"github.com/minion/minion-scan/internal/runner"
	"github.com/minion/minion-scan/pkg/types"
)

// ErrUsage is returned when a command gets the wrong arguments.
var ErrUsage = errors.New("invalid arguments")

const scanUsage = "usage: minion-scan scan <user> <plan> <target>"

var scanCmd = &cobra.Command{
	Use:   "scan <user> <plan> <target>",
	Short: "Run a plan against a target and report its issues",
	Long: `Creates a scan of <target> with <plan> on behalf of <user>, starts it and
polls until it is FINISHED, TERMINATED or FAILED, then prints every plugin
session and the issues it found.`,
	Args:         scanArgs,
	SilenceUsage: true,
	RunE:         runScan,
}

func scanArgs(cmd *cobra.Command, args []string) error {
	if len(args) != 3 {
		return fmt.Errorf("%w: %s", ErrUsage, scanUsage)
	}
	return nil
}

func runScan(cmd *cobra.Command, args []string) error {
	req, err := types.NewScanRequest(args[0], args[1], args[2])
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}

	formatter, err := output.GetFormatter(appConfig.OutputFormat)
	if err != nil {
		return err
	}

	client, err := newBackendClient()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	// Keep machine-readable reports clean of progress lines.
	var progress io.Writer = out
	if appConfig.OutputFormat != "text" && appConfig.OutputFormat != "" {
		progress = cmd.ErrOrStderr()
	}

	r := runner.New(client, formatter, out,
		runner.WithInterval(appConfig.PollInterval),
		runner.WithLogger(newLogger(cmd.ErrOrStderr(), appConfig.Verbose)),
		runner.WithProgress(progress),
	)

	_, err = r.Run(cmd.Context(), req)
	return err
}
