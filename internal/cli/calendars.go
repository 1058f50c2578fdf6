package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roach88/calsync/internal/config"
	"github.com/roach88/calsync/internal/gcal"
)

// NewCalendarsCommand creates the calendars discovery command.
func NewCalendarsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calendars",
		Short: "List accessible calendars and their IDs",
		Long: `List every calendar the authenticated account can see, with the IDs to
use in the configuration file.

Works without a config file; defaults are used for the credential and
token paths in that case.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCalendars(cmd, rootOpts)
		},
	}

	return cmd
}

func runCalendars(cmd *cobra.Command, opts *RootOptions) error {
	ctx := cmd.Context()

	// Discovery should work before a config file exists; fall back to
	// default credential paths when it doesn't.
	credentialsFile := config.DefaultCredentialsFile
	tokenFile := config.DefaultTokenFile
	if _, err := os.Stat(opts.ConfigPath); err == nil {
		cfg, err := config.Load(opts.ConfigPath)
		if err != nil {
			return WrapExitError(ExitFailure, "configuration error", err)
		}
		credentialsFile = cfg.CredentialsFile
		tokenFile = cfg.TokenFile
	}

	creds, err := gcal.LoadCredentials(credentialsFile, tokenFile)
	if err != nil {
		return WrapExitError(ExitFailure, "credential error", err)
	}

	client, err := gcal.NewClient(ctx, creds)
	if err != nil {
		return WrapExitError(ExitFailure, "failed to connect to calendar service", err)
	}

	calendars, err := client.ListCalendars(ctx)
	if err != nil {
		return WrapExitError(ExitFailure, "failed to list calendars", err)
	}

	out := cmd.OutOrStdout()
	if len(calendars) == 0 {
		fmt.Fprintln(out, "No calendars found.")
		return nil
	}

	fmt.Fprintln(out, "Available Calendars:")
	w := tabwriter.NewWriter(out, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tID\tACCESS")
	for _, cal := range calendars {
		name := cal.Summary
		if cal.Primary {
			name += " (Primary)"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", name, cal.ID, cal.AccessRole)
	}
	if err := w.Flush(); err != nil {
		return WrapExitError(ExitFailure, "failed to render calendar table", err)
	}

	fmt.Fprintf(out, "\nTotal: %d calendar(s)\n", len(calendars))
	fmt.Fprintln(out, "Use these IDs in your config.yaml file.")
	return nil
}
