package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/go-faster/errors"
	"github.com/spf13/cobra"

	gtfsvalidator "github.com/theoremus-urban-solutions/gtfs-schedule-validator"
	"github.com/theoremus-urban-solutions/gtfs-schedule-validator/formatter"
	"github.com/theoremus-urban-solutions/gtfs-schedule-validator/store"
	"github.com/theoremus-urban-solutions/gtfs-schedule-validator/validation"
)

// ErrFeedInvalid is returned by validate --fail-on-error when the report has errors.
var ErrFeedInvalid = errors.New("feed has validation errors")

func (a *App) validateCmd() *cobra.Command {
	var (
		feedName    string
		gtfsPath    string
		tripUpdates string
		format      string
		output      string
		storePath   string
		failOnError bool
	)

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a GTFS feed",
		Long: `Validate the stop times of a GTFS feed and, when configured, the trip
descriptors of its GTFS-RT TripUpdates feed.

The report is written to stdout (or --output) as JSON or XML. A summary
is printed to stderr.`,
		Example: `  gtfs-validator validate --gtfs feed.zip
  gtfs-validator validate --feed sofia --format xml --output report.xml
  gtfs-validator validate --gtfs feed.zip --trip-updates https://example.com/tu.pb --store runs.db`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			feed, err := a.cfg.FeedByName(feedName)
			if err != nil {
				return err
			}
			if gtfsPath != "" {
				feed.GTFS.StaticPath, feed.GTFS.StaticURL = gtfsPath, ""
			}
			if tripUpdates != "" {
				if isURL(tripUpdates) {
					feed.GTFSRT.TripUpdatesURL, feed.GTFSRT.TripUpdatesPath = tripUpdates, ""
				} else {
					feed.GTFSRT.TripUpdatesPath, feed.GTFSRT.TripUpdatesURL = tripUpdates, ""
				}
			}
			if feed.Name == "" {
				feed.Name = "default"
			}
			if feed.GTFS.StaticPath == "" && feed.GTFS.StaticURL == "" {
				return errors.New("no GTFS feed configured; pass --gtfs or set gtfs.staticPath")
			}
			if format == "" {
				format = a.cfg.Output.Format
			}
			if storePath == "" {
				storePath = a.cfg.Store.Path
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			rep, err := gtfsvalidator.ValidateFeed(ctx, a.cfg, feed, a.log)
			if err != nil {
				return errors.Wrap(err, "validate feed")
			}

			body, err := formatter.NewResponseBuilder().Build(rep, format)
			if err != nil {
				return err
			}
			if err := writeReport(cmd.OutOrStdout(), output, body); err != nil {
				return err
			}

			if storePath != "" {
				id, err := saveReport(ctx, storePath, rep)
				if err != nil {
					return err
				}
				a.log.Info().Int64("run_id", id).Str("store", storePath).Msg("Saved report")
			}

			printSummary(cmd.ErrOrStderr(), rep)
			if failOnError && rep.Summary.Errors > 0 {
				return ErrFeedInvalid
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&feedName, "feed", "", "Feed name from config feeds[] (defaults to the first)")
	cmd.Flags().StringVar(&gtfsPath, "gtfs", "", "GTFS zip path (overrides config)")
	cmd.Flags().StringVar(&tripUpdates, "trip-updates", "", "GTFS-RT TripUpdates path or URL (overrides config)")
	cmd.Flags().StringVar(&format, "format", "", "Report format: json|xml (defaults to output.format)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the report to a file instead of stdout")
	cmd.Flags().StringVar(&storePath, "store", "", "SQLite database to record the run in (defaults to store.path)")
	cmd.Flags().BoolVar(&failOnError, "fail-on-error", false, "Exit with an error when the report has ERROR notices")

	return cmd
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

func writeReport(stdout io.Writer, path string, body []byte) error {
	if path == "" {
		_, err := fmt.Fprintln(stdout, string(body))
		return err
	}
	if err := os.WriteFile(path, body, 0o644); err != nil {
		return errors.Wrap(err, "write report")
	}
	return nil
}

func saveReport(ctx context.Context, path string, rep *validation.Report) (int64, error) {
	s, err := store.New(path)
	if err != nil {
		return 0, err
	}
	defer func() { _ = s.Close() }()
	return s.SaveReport(ctx, rep)
}

func printSummary(w io.Writer, rep *validation.Report) {
	sum := rep.Summary
	colorHeader.Fprintf(w, "%s: ", rep.FeedName)
	fmt.Fprintf(w, "%s trips, %s stop times", humanize.Comma(int64(sum.Trips)), humanize.Comma(int64(sum.StopTimes)))
	if sum.ServiceStart != nil && sum.ServiceEnd != nil {
		colorMuted.Fprintf(w, " (service %s to %s)", sum.ServiceStart, sum.ServiceEnd)
	}
	fmt.Fprintln(w)

	if len(rep.Notices) == 0 {
		colorOK.Fprintln(w, "  no notices")
		return
	}

	type codeCount struct {
		code string
		sev  validation.Severity
		n    int
	}
	byCode := map[string]*codeCount{}
	for _, n := range rep.Notices {
		cc, ok := byCode[n.Code]
		if !ok {
			cc = &codeCount{code: n.Code, sev: n.Severity}
			byCode[n.Code] = cc
		}
		cc.n++
	}
	counts := make([]*codeCount, 0, len(byCode))
	for _, cc := range byCode {
		counts = append(counts, cc)
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].n != counts[j].n {
			return counts[i].n > counts[j].n
		}
		return counts[i].code < counts[j].code
	})
	for _, cc := range counts {
		severityColor(cc.sev).Fprintf(w, "  %-8s", cc.sev)
		fmt.Fprintf(w, " %-24s %s\n", cc.code, humanize.Comma(int64(cc.n)))
	}

	fmt.Fprintf(w, "  %s, %s, %s\n",
		colorError.Sprint(plural(sum.Errors, "error")),
		colorWarning.Sprint(plural(sum.Warnings, "warning")),
		colorInfo.Sprint(plural(sum.Infos, "info")))
}

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return humanize.Comma(int64(n)) + " " + word + "s"
}
