package cli

import (
	"fmt"
	"strconv"

	"github.com/go-faster/errors"
	"github.com/spf13/cobra"

	"github.com/theoremus-urban-solutions/gtfs-schedule-validator/timeutils"
)

func (a *App) timeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "time",
		Short: "Convert between GTFS times and seconds since noon",
	}
	cmd.AddCommand(a.timeParseCmd())
	cmd.AddCommand(a.timeFormatCmd())
	return cmd
}

func (a *App) timeParseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse HH:MM:SS...",
		Short: "Print the noon-relative offset of GTFS times",
		Long: `Print the offset in seconds from noon for each GTFS time.

Malformed or blank values print "absent".`,
		Example: `  gtfs-validator time parse 15:00:00 25:30:40
  15:00:00	10800
  25:30:40	48640`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, s := range args {
				if n, ok := timeutils.ParseSecondsSinceNoon(s); ok {
					fmt.Fprintf(out, "%s\t%d\n", s, n)
				} else {
					fmt.Fprintf(out, "%s\t%s\n", s, colorMuted.Sprint("absent"))
				}
			}
			return nil
		},
	}
}

func (a *App) timeFormatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "format SECONDS...",
		Short: "Print the GTFS time of noon-relative offsets",
		Example: `  gtfs-validator time format 10800 -- -21540
  10800	15:00:00
  -21540	06:01:00`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, s := range args {
				n, err := strconv.Atoi(s)
				if err != nil {
					return errors.Errorf("%q is not an integer number of seconds", s)
				}
				fmt.Fprintf(out, "%d\t%s\n", n, timeutils.FormatSecondsSinceNoon(n))
			}
			return nil
		},
	}
}
