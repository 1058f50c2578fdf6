package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/calsync/internal/config"
	"github.com/roach88/calsync/internal/gcal"
)

// NewAuthorizeCommand creates the authorize command.
func NewAuthorizeCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "authorize",
		Short: "Obtain and cache an OAuth token",
		Long: `Authorize calsync against the calendar account and cache the token.

Prints an authorization URL; open it in a browser, approve access, and
paste the resulting code back. The token is cached at the configured
token_file and refreshed automatically on later runs.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAuthorize(cmd, rootOpts)
		},
	}

	return cmd
}

func runAuthorize(cmd *cobra.Command, opts *RootOptions) error {
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

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Open the following URL in your browser and approve access:")
	fmt.Fprintln(out)
	fmt.Fprintln(out, creds.AuthCodeURL())
	fmt.Fprintln(out)
	fmt.Fprint(out, "Enter the authorization code: ")

	reader := bufio.NewReader(cmd.InOrStdin())
	code, err := reader.ReadString('\n')
	if err != nil {
		return WrapExitError(ExitFailure, "failed to read authorization code", err)
	}
	code = strings.TrimSpace(code)
	if code == "" {
		return NewExitError(ExitFailure, "no authorization code entered")
	}

	if err := creds.Exchange(cmd.Context(), code); err != nil {
		return WrapExitError(ExitFailure, "authorization failed", err)
	}

	fmt.Fprintf(out, "Token saved to %s\n", tokenFile)
	return nil
}
