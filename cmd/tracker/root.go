package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/GregMSThompson/covid-tracker/internal/chart"
	"github.com/GregMSThompson/covid-tracker/internal/client/covidtracking"
	"github.com/GregMSThompson/covid-tracker/internal/dto"
	"github.com/GregMSThompson/covid-tracker/internal/models"
	"github.com/GregMSThompson/covid-tracker/internal/services"
	"github.com/GregMSThompson/covid-tracker/pkg/logger"
)

type options struct {
	metric  string
	window  string
	baseURL string
	timeout time.Duration
	verbose bool
}

func newRootCmd() *cobra.Command {
	opts := new(options)

	root := &cobra.Command{
		Use:   "tracker",
		Short: "Inspect COVID daily series from the command line",
		Long: `Fetch the covidtracking feeds and print chart bounds and visible points.

Available subcommands:
  national     - the nationwide series
  region <id>  - one state's series
  regions      - the known region ids`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&opts.metric, "metric", "positive", "Metric to plot: positive, negative, death")
	root.PersistentFlags().StringVar(&opts.window, "window", "max", "Visible window: week, month, max")
	root.PersistentFlags().StringVar(&opts.baseURL, "base-url", covidtracking.DefaultBaseURL, "Upstream API base URL")
	root.PersistentFlags().DurationVar(&opts.timeout, "timeout", 30*time.Second, "Upstream request timeout")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(&cobra.Command{
		Use:   "national",
		Short: "Print the nationwide series",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, repo := opts.setup(cmd)
			data, message, ok := repo.GetNationalData(ctx).Result()
			if !ok {
				return fmt.Errorf("national feed: %s", message)
			}
			return printSeries(cmd.OutOrStdout(), dto.NationwideID, data, opts)
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "region <id>",
		Short: "Print one region's series",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, repo := opts.setup(cmd)
			data, message, ok := repo.GetRegionData(ctx).Result()
			if !ok {
				return fmt.Errorf("regional feed: %s", message)
			}
			s, found := data[args[0]]
			if !found {
				return fmt.Errorf("unknown region %q", args[0])
			}
			return printSeries(cmd.OutOrStdout(), args[0], s, opts)
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "regions",
		Short: "List the region ids in the regional feed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, repo := opts.setup(cmd)
			data, message, ok := repo.GetRegionData(ctx).Result()
			if !ok {
				return fmt.Errorf("regional feed: %s", message)
			}
			for _, id := range data.RegionIDs() {
				fmt.Fprintln(cmd.OutOrStdout(), id)
			}
			return nil
		},
	})

	return root
}

func (o *options) setup(cmd *cobra.Command) (context.Context, covidRepository) {
	level := slog.LevelWarn
	if o.verbose {
		level = slog.LevelDebug
	}
	log := slog.New(logger.NewConsoleHandler(level))
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logger.ToContext(ctx, log)
	return ctx, services.NewCovidRepository(covidtracking.NewAdapter(o.baseURL, o.timeout))
}

type covidRepository interface {
	GetNationalData(ctx context.Context) dto.FetchOutcome[models.Series]
	GetRegionData(ctx context.Context) dto.FetchOutcome[models.RegionSeriesMap]
}

func printSeries(w io.Writer, regionID string, s models.Series, o *options) error {
	metric, err := chart.ParseMetric(o.metric)
	if err != nil {
		return err
	}
	scale, err := chart.ParseTimeScale(o.window)
	if err != nil {
		return err
	}

	a := chart.NewAdapter(s)
	a.Metric = metric
	a.TimeScale = scale
	b := a.VisibleBounds()

	fmt.Fprintf(w, "region=%s metric=%s window=%s count=%d\n", regionID, metric, scale, a.Count())
	fmt.Fprintf(w, "bounds: index [%d, %d] value [%g, %g]\n", b.LowIndex, b.HighIndex, b.LowValue, b.HighValue)
	if idx, ok := a.LatestIndex(); ok {
		fmt.Fprintf(w, "latest: %s %g\n", a.RecordAt(idx).Timestamp.Format("2006-01-02"), a.ValueAt(idx))
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "INDEX\tDATE\tVALUE")
	for i := b.LowIndex; i <= b.HighIndex; i++ {
		rec := a.RecordAt(i)
		fmt.Fprintf(tw, "%d\t%s\t%g\n", i, rec.Timestamp.Format("2006-01-02"), a.ValueAt(i))
	}
	return tw.Flush()
}
