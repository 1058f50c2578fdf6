package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/calsync/internal/config"
	"github.com/roach88/calsync/internal/engine"
	"github.com/roach88/calsync/internal/gcal"
	"github.com/roach88/calsync/internal/store"
)

// SyncOptions holds flags for the sync and reconcile commands.
type SyncOptions struct {
	*RootOptions
	DryRun bool
}

// passFunc is one engine pass over a single source calendar.
type passFunc func(e *engine.Engine, name, calendarID string) (engine.RunStats, error)

// NewSyncCommand creates the sync command.
func NewSyncCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SyncOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Sync source calendars into the target calendar",
		Long: `Sync events from every configured source calendar into the target calendar.

Untracked source events are created in the target; tracked events are
updated when the source changed since the last sync; source-side
deletions are propagated when delete_on_source_delete is enabled.

Example:
  calsync sync
  calsync sync --dry-run --config ./config.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.DryRun {
				fmt.Fprintln(cmd.OutOrStdout(), "*** DRY RUN MODE - No changes will be made ***")
			}
			return runPass(cmd, opts, func(e *engine.Engine, name, calendarID string) (engine.RunStats, error) {
				return e.SyncCalendar(cmd.Context(), name, calendarID)
			})
		},
	}

	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "show what would be synced without making changes")

	return cmd
}

// runPass wires config, credentials, gateway, and store, then applies
// the pass to every configured source calendar.
func runPass(cmd *cobra.Command, opts *SyncOptions, pass passFunc) error {
	ctx := cmd.Context()

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return WrapExitError(ExitFailure, "configuration error", err)
	}

	creds, err := gcal.LoadCredentials(cfg.CredentialsFile, cfg.TokenFile)
	if err != nil {
		return WrapExitError(ExitFailure, "credential error", err)
	}

	client, err := gcal.NewClient(ctx, creds)
	if err != nil {
		return WrapExitError(ExitFailure, "failed to connect to calendar service", err)
	}

	st, err := store.Open(cfg.StateDB)
	if err != nil {
		return WrapExitError(ExitFailure, "failed to open mapping database", err)
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			slog.Error("error closing mapping database", "error", closeErr)
		}
	}()

	if len(cfg.SourceCalendars) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "Warning: no source calendars configured; nothing to do.")
		return nil
	}

	eng := engine.New(client, st, engine.Options{
		TargetCalendarID:     cfg.TargetCalendarID,
		EventPrefix:          cfg.Sync.EventPrefix,
		SyncDescription:      cfg.Sync.SyncDescription,
		DeleteOnSourceDelete: cfg.Sync.DeleteOnSourceDelete,
		DaysBack:             cfg.Sync.DaysBack,
		DaysAhead:            cfg.Sync.DaysAhead,
		DryRun:               opts.DryRun,
	}, engine.WithOutput(cmd.OutOrStdout()))

	for _, src := range cfg.SourceCalendars {
		if _, err := pass(eng, src.Name, src.CalendarID); err != nil {
			return WrapExitError(ExitFailure, fmt.Sprintf("sync failed for calendar %q", src.Name), err)
		}
	}

	return nil
}
