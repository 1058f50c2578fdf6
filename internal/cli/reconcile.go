package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/calsync/internal/engine"
)

// NewReconcileCommand creates the reconcile command.
func NewReconcileCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SyncOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Match pre-existing target events to source events",
		Long: `Detect events that already exist in the target calendar and record
mappings for them instead of creating duplicates.

Useful when the mapping database is new but the target calendar already
holds copies from earlier out-of-band syncs. Matching is heuristic, by
identical (summary, start, end).

Example:
  calsync reconcile --dry-run`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), "*** RECONCILE MODE - Detecting existing events ***")
			if opts.DryRun {
				fmt.Fprintln(cmd.OutOrStdout(), "*** DRY RUN MODE - No changes will be made ***")
			}
			return runPass(cmd, opts, func(e *engine.Engine, name, calendarID string) (engine.RunStats, error) {
				return e.ReconcileCalendar(cmd.Context(), name, calendarID)
			})
		},
	}

	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "show what would be reconciled without recording mappings")

	return cmd
}
