package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/go-faster/errors"
	"github.com/spf13/cobra"

	"github.com/theoremus-urban-solutions/gtfs-schedule-validator/store"
)

func (a *App) runsCmd() *cobra.Command {
	var (
		storePath string
		feedName  string
		limit     int
	)

	cmd := &cobra.Command{
		Use:   "runs [RUN_ID]",
		Short: "List stored validation runs, or the notices of one run",
		Example: `  gtfs-validator runs --store runs.db
  gtfs-validator runs --store runs.db 12`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if storePath == "" {
				storePath = a.cfg.Store.Path
			}
			if storePath == "" {
				return errors.New("no store configured; pass --store or set store.path")
			}
			s, err := store.New(storePath)
			if err != nil {
				return err
			}
			defer func() { _ = s.Close() }()

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			out := cmd.OutOrStdout()

			if len(args) == 1 {
				id, err := strconv.ParseInt(args[0], 10, 64)
				if err != nil {
					return errors.Errorf("invalid run id %q", args[0])
				}
				notices, err := s.NoticesForRun(ctx, id)
				if err != nil {
					return err
				}
				if len(notices) == 0 {
					fmt.Fprintln(out, "No notices for this run.")
					return nil
				}
				for _, n := range notices {
					severityColor(n.Severity).Fprintf(out, "%-8s", n.Severity)
					fmt.Fprintf(out, " %s:%d %s: %s\n", n.File, n.Row, n.Code, n.Message)
				}
				return nil
			}

			runs, err := s.ListRuns(ctx, feedName, limit)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Fprintln(out, "No runs found.")
				return nil
			}
			for _, r := range runs {
				fmt.Fprintf(out, "#%d %s %s  %s %s %s\n",
					r.ID,
					colorHeader.Sprint(r.FeedName),
					colorMuted.Sprint(humanize.Time(r.GeneratedAt)),
					colorError.Sprint(plural(r.Errors, "error")),
					colorWarning.Sprint(plural(r.Warnings, "warning")),
					colorInfo.Sprint(plural(r.Infos, "info")),
				)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&storePath, "store", "", "SQLite database (defaults to store.path)")
	cmd.Flags().StringVar(&feedName, "feed", "", "Only list runs of this feed")
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of runs to list")

	return cmd
}
