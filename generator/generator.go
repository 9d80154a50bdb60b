// Package generator produces batches of MRZ records in parallel. Each
// worker owns its random source, so a batch is fully determined by its
// configuration, count, worker count and seed.
package generator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"go-mrz-generator/mrz"

	"golang.org/x/sync/errgroup"
)

const DefaultWorkers = 4

var ErrInvalidOptions = errors.New("invalid generator options")

type Options struct {
	Count   int
	Workers int
	// Seed of zero means a fresh random seed; the one used is returned.
	Seed uint64
	// CrossCheck, when set, runs on every record before it is accepted.
	CrossCheck func(mrz.Record) error
}

// Observer is notified about generated and rejected records. It is called
// from worker goroutines and must be safe for concurrent use.
type Observer interface {
	RecordGenerated(rec mrz.Record)
	RecordRejected(reason string)
}

type nopObserver struct{}

func (nopObserver) RecordGenerated(mrz.Record) {}
func (nopObserver) RecordRejected(string)      {}

// Result is a finished batch.
type Result struct {
	Seed    uint64
	Records []mrz.Record
}

// NewSource returns the random source for one worker of a seeded batch.
func NewSource(seed uint64, worker int) *rand.Rand {
	return rand.New(rand.NewPCG(seed, uint64(worker)))
}

// Generate builds opts.Count records. Worker w builds records w,
// w+Workers, w+2*Workers and so on. The first failure cancels the batch.
func Generate(ctx context.Context, cfg mrz.Config, opts Options, observer Observer) (Result, error) {
	if opts.Count < 0 {
		return Result{}, fmt.Errorf("%w: count %d is negative", ErrInvalidOptions, opts.Count)
	}
	if opts.Workers <= 0 {
		opts.Workers = DefaultWorkers
	}
	if opts.Workers > opts.Count && opts.Count > 0 {
		opts.Workers = opts.Count
	}
	if opts.Seed == 0 {
		opts.Seed = rand.Uint64() | 1
	}
	if observer == nil {
		observer = nopObserver{}
	}

	// Reject bad configuration once instead of once per worker.
	if _, err := mrz.NewBuilder(NewSource(opts.Seed, 0), cfg); err != nil {
		return Result{}, err
	}

	slog.Debug("Generating batch", "count", opts.Count, "workers", opts.Workers, "seed", opts.Seed)

	records := make([]mrz.Record, opts.Count)
	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < opts.Workers; w++ {
		g.Go(func() error {
			builder, err := mrz.NewBuilder(NewSource(opts.Seed, w), cfg)
			if err != nil {
				return err
			}
			for i := w; i < opts.Count; i += opts.Workers {
				if err := ctx.Err(); err != nil {
					return err
				}
				rec, err := builder.Build()
				if err != nil {
					observer.RecordRejected(rejectReason(err))
					return fmt.Errorf("record %d: %w", i, err)
				}
				if opts.CrossCheck != nil {
					if err := opts.CrossCheck(rec); err != nil {
						observer.RecordRejected("cross_check")
						return fmt.Errorf("record %d: %w", i, err)
					}
				}
				observer.RecordGenerated(rec)
				records[i] = rec
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		slog.Error("Batch generation failed", "seed", opts.Seed, "error", err)
		return Result{}, err
	}

	slog.Info("Generated batch", "count", opts.Count, "workers", opts.Workers, "seed", opts.Seed)
	return Result{Seed: opts.Seed, Records: records}, nil
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, mrz.ErrInvariant):
		return "invariant"
	case errors.Is(err, mrz.ErrInvalidConfig):
		return "config"
	default:
		return "other"
	}
}
