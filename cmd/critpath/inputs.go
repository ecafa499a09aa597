package main

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/joshharrison/critpath/internal/cpm"
	"github.com/joshharrison/critpath/internal/graph"
	"github.com/joshharrison/critpath/internal/netio"
	"github.com/joshharrison/critpath/internal/reporter"
	"github.com/joshharrison/critpath/internal/samples"
)

// input is one network to analyze. Files are read lazily by analyzeAll.
type input struct {
	source     string
	path       string
	activities []graph.Activity
}

// resolveInputs turns command arguments or a sample name into inputs.
func resolveInputs(args []string, sample string) ([]input, error) {
	if sample != "" {
		acts, ok := samples.Named(sample)
		if !ok {
			return nil, fmt.Errorf("unknown sample %q (want simple or project)", sample)
		}
		return []input{{source: "sample:" + sample, activities: acts}}, nil
	}
	if len(args) == 0 {
		return nil, fmt.Errorf("no input files (pass files or --sample simple|project)")
	}

	inputs := make([]input, len(args))
	for i, path := range args {
		inputs[i] = input{source: path, path: path}
	}
	return inputs, nil
}

// load reads the input file if it has not been loaded yet.
func (in input) load() ([]graph.Activity, error) {
	if in.path == "" {
		return in.activities, nil
	}
	return netio.LoadActivities(in.path)
}

// analyzeAll loads and analyzes every input, at most flagWorkers at a time.
// Reports come back in input order. A file that cannot be read or parsed
// aborts the whole run; invalid networks do not.
func analyzeAll(ctx context.Context, inputs []input, cfg cpm.Config) ([]*reporter.Reporter, error) {
	reports := make([]*reporter.Reporter, len(inputs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(flagWorkers)
	for i, in := range inputs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			acts, err := in.load()
			if err != nil {
				return err
			}
			logger.Debug().Str("source", in.source).Int("activities", len(acts)).Msg("network loaded")

			res := cpm.Analyze(acts, cfg)
			reports[i] = reporter.New(in.source, flagUnit, res)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}
