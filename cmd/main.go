package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	"github.com/garlicgarrison/san-census/census"
	"github.com/garlicgarrison/san-census/config"
	"github.com/garlicgarrison/san-census/notation"
	"github.com/garlicgarrison/san-census/oracle"
	guuid "github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		configPath string
		output     string
		oracleName string
		workers    int
	)

	root := &cobra.Command{
		Use:          "san-census",
		Short:        "Enumerate the distinct move notations of three rooks, bishops, knights and queens",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default()
			if configPath != "" {
				var err error
				cfg, err = config.Load(configPath)
				if err != nil {
					return err
				}
			}

			flags := cmd.Flags()
			if flags.Changed("output") {
				cfg.Output = output
			}
			if flags.Changed("oracle") {
				cfg.Oracle = oracleName
			}
			if flags.Changed("workers") {
				cfg.Workers = workers
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return runCensus(ctx, cfg)
		},
	}

	root.Flags().StringVarP(&configPath, "config", "c", "", "yaml run configuration")
	root.Flags().StringVarP(&output, "output", "o", "possibilities.txt", "report file, truncated at start")
	root.Flags().StringVar(&oracleName, "oracle", oracle.GoChessName, "legal move oracle: gochess or dragontooth")
	root.Flags().IntVarP(&workers, "workers", "w", 1, "king placements evaluated in parallel")

	root.AddCommand(newCountCmd())
	return root
}

func runCensus(ctx context.Context, cfg config.Config) error {
	runID := guuid.NewString()
	log.Printf("run %s -- pieces %s, oracle %s, workers %d", runID, cfg.Pieces, cfg.Oracle, cfg.Workers)

	pool, err := oracle.NewPool(cfg.Oracle, cfg.Workers)
	if err != nil {
		return err
	}

	w, err := census.CreateWriter(cfg.Output)
	if err != nil {
		return err
	}
	defer func() {
		if err := w.Close(); err != nil {
			log.Printf("close %s -- %s", cfg.Output, err)
		}
	}()

	sinks := []census.Sink{w}
	if cfg.JSONOutput != "" {
		sinks = append(sinks, census.NewJSONWriter(cfg.JSONOutput, runID, cfg.Oracle))
	}
	if cfg.HeatmapOutput != "" {
		sinks = append(sinks, census.NewHeatmap(cfg.HeatmapOutput))
	}

	e, err := census.NewEnumerator(cfg, pool, nil, sinks...)
	if err != nil {
		return err
	}
	e.SetProgress(census.NewProgress(os.Stdout, cfg.ProgressEvery, cfg.DrawBoard, e.Positions()*len(cfg.Pieces)))

	results, err := e.Run(ctx)
	if err != nil {
		return err
	}

	for _, r := range results {
		if len(r.Missing) > 0 || len(r.Unexpected) > 0 {
			log.Printf("%s -- %d predicted moves not found, %d found moves not predicted", r.Piece, len(r.Missing), len(r.Unexpected))
		}
	}
	log.Printf("run %s finished -- report in %s", runID, cfg.Output)
	return nil
}

func newCountCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "count <report.json>",
		Short: "Collapse every move of a json report to its destination and total the counts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := census.ReadReport(args[0])
			if err != nil {
				return err
			}

			counts, err := countDestinations(report)
			if err != nil {
				return err
			}

			return writeSortedCounts(cmd.OutOrStdout(), counts)
		},
	}
}

func countDestinations(report *census.Report) (map[string]int, error) {
	counts := make(map[string]int)
	for _, r := range report.Results {
		for move, n := range r.Counts {
			dest, err := notation.Destination(move)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", move, err)
			}
			counts[dest] += n
		}
	}
	return counts, nil
}

// writeSortedCounts prints an indented json object ordered by count, highest first.
func writeSortedCounts(w io.Writer, counts map[string]int) error {
	keys := maps.Keys(counts)
	slices.SortFunc(keys, func(a, b string) bool {
		if counts[a] != counts[b] {
			return counts[a] > counts[b]
		}
		return a < b
	})

	fmt.Fprintln(w, "{")
	for i, k := range keys {
		key, err := json.Marshal(k)
		if err != nil {
			return err
		}
		sep := ","
		if i == len(keys)-1 {
			sep = ""
		}
		fmt.Fprintf(w, "    %s: %d%s\n", key, counts[k], sep)
	}
	_, err := fmt.Fprintln(w, "}")
	return err
}
