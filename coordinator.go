package ncore

import (
	"errors"
	"fmt"
	"github.com/p7r0x7/ncore/candidate"
	"github.com/p7r0x7/ncore/digest"
	"github.com/p7r0x7/ncore/sink"
	"github.com/rs/zerolog"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.
// This file drives a run: it picks the execution mode, partitions the domain when running in
// parallel, feeds work units to a fixed pool of workers, and sums what they wrote.

// Phase is the coarse progress of a run.
type Phase int32

const (
	Configured Phase = iota
	Generating
	Partitioning
	Hashing
	Writing
	Aggregating
	Done
	Failed
)

var phaseNames = [...]string{"configured", "generating", "partitioning", "hashing", "writing",
	"aggregating", "done", "failed"}

func (p Phase) String() string {
	if p < Configured || p > Failed {
		return fmt.Sprintf("Phase(%d)", int32(p))
	}
	return phaseNames[p]
}

// UnitResult is the outcome of one work unit.
type UnitResult struct {
	Index int
	Label string
	sink.Summary
}

// RunResult totals a finished run. Mode is the mode actually executed; FellBack is set when a
// dictionary run requested Multi and was executed as Even instead.
type RunResult struct {
	Records  int64
	Elapsed  time.Duration
	Mode     Mode
	FellBack bool
	Units    []UnitResult
}

// Coordinator executes one validated Config.
type Coordinator struct {
	cfg   Config
	plan  plan
	log   zerolog.Logger
	phase atomic.Int32
}

// New validates cfg and returns a Coordinator for it. Every configuration problem is reported here,
// wrapped in ErrConfig, before any candidate is generated.
func New(cfg Config) (*Coordinator, error) {
	p, err := cfg.validate()
	if err != nil {
		return nil, err
	}
	log := zerolog.Nop()
	if cfg.Logger != nil {
		log = *cfg.Logger
	}
	cfg.Logger = nil
	return &Coordinator{
		cfg:  cfg,
		plan: p,
		log:  log.With().Str("domain", "ncore").Str("alg", p.alg.String()).Logger(),
	}, nil
}

// Algorithm returns the validated digest algorithm.
func (c *Coordinator) Algorithm() digest.Algorithm { return c.plan.alg }

// Workers returns the effective worker count.
func (c *Coordinator) Workers() int { return c.plan.workers }

// Phase returns the current phase; it is safe to call while Run is in progress.
func (c *Coordinator) Phase() Phase { return Phase(c.phase.Load()) }

func (c *Coordinator) setPhase(p Phase) {
	c.phase.Store(int32(p))
	c.log.Debug().Stringer("phase", p).Msg("phase")
}

// FileName returns the output file name for a unit. Names depend only on the mode, the unit label
// (the length in Multi mode, the unit index otherwise) and the algorithm, never on candidates.
func FileName(mode Mode, label string, alg digest.Algorithm) string {
	return fmt.Sprintf("nC_%s_%s_%s.csv", mode, label, alg)
}

func (c *Coordinator) source() candidate.Source {
	if c.cfg.Dictionary != "" {
		return candidate.Dictionary{Path: c.cfg.Dictionary}
	}
	return candidate.Combinatorial{Alphabet: c.plan.alphabet, Min: c.cfg.MinLength, Max: c.cfg.MaxLength}
}

// Run generates, hashes and writes the whole candidate domain. A failure in any unit fails the run;
// units that already finished are left in place, and nothing is retried.
func (c *Coordinator) Run() (RunResult, error) {
	start := time.Now()
	res := RunResult{Mode: c.cfg.Mode}
	if c.cfg.Dictionary != "" && res.Mode == Multi {
		res.Mode, res.FellBack = Even, true
		c.log.Warn().Msg("dictionary input is split evenly; switching from multi to even mode")
	}
	c.log.Info().Stringer("mode", res.Mode).Int("workers", c.plan.workers).Msg("starting")

	var err error
	if res.Mode == Single {
		res.Units, err = c.runSingle()
	} else {
		res.Units, err = c.runParallel(res.Mode)
	}
	res.Elapsed = time.Since(start)
	if err != nil {
		c.setPhase(Failed)
		return res, err
	}

	c.setPhase(Aggregating)
	for _, u := range res.Units {
		res.Records += u.Rows
	}
	c.setPhase(Done)
	c.log.Info().Int64("rows", res.Records).Dur("elapsed", res.Elapsed).Msg("finished")
	return res, nil
}

// runSingle streams the domain through one hasher without materializing it.
func (c *Coordinator) runSingle() ([]UnitResult, error) {
	c.setPhase(Generating)
	path := filepath.Join(c.cfg.OutputDir, FileName(Single, "0", c.plan.alg))
	s, err := sink.Create(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}
	h := digest.New(c.plan.alg, c.cfg.Salt)

	c.setPhase(Hashing)
	if err = c.source().Walk(func(cand string) error { return s.Write(cand, h) }); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, errors.Join(err, s.Abort()))
	}
	c.setPhase(Writing)
	sum, err := s.Close()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, errors.Join(err, s.Abort()))
	}
	c.log.Info().Str("path", sum.Path).Int64("rows", sum.Rows).Msg("unit done")
	return []UnitResult{{Index: 0, Label: "0", Summary: sum}}, nil
}

func (c *Coordinator) partition(mode Mode) ([]candidate.Unit, error) {
	if mode == Multi {
		c.setPhase(Partitioning)
		return candidate.PerLength(c.plan.alphabet, c.cfg.MinLength, c.cfg.MaxLength)
	}

	c.setPhase(Generating)
	domain, err := candidate.Materialize(c.source())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}
	c.setPhase(Partitioning)
	return candidate.Even(domain, c.plan.workers)
}

func (c *Coordinator) runParallel(mode Mode) ([]UnitResult, error) {
	units, err := c.partition(mode)
	if err != nil {
		if !errors.Is(err, ErrIO) {
			err = fmt.Errorf("%w: %w", ErrConfig, err)
		}
		return nil, err
	}
	c.log.Debug().Int("units", len(units)).Msg("partitioned")

	c.setPhase(Hashing)
	results, errs := make([]UnitResult, len(units)), make([]error, len(units))
	queue := make(chan candidate.Unit, len(units))
	for _, u := range units {
		queue <- u
	}
	close(queue)

	/* Workers share nothing: each result and error slot is written by exactly one worker. */
	var pending sync.WaitGroup
	workers := min(c.plan.workers, len(units))
	pending.Add(workers)
	for i := workers; i > 0; i-- {
		go func() {
			defer pending.Done()
			for u := range queue {
				results[u.Index], errs[u.Index] = c.work(mode, u)
			}
		}()
	}
	pending.Wait()
	c.setPhase(Writing)

	if err = errors.Join(errs...); err != nil {
		return results, err
	}
	return results, nil
}

// work hashes one unit into its own file with its own hasher.
func (c *Coordinator) work(mode Mode, u candidate.Unit) (UnitResult, error) {
	log := c.log.With().Stringer("mode", mode).Str("unit", u.Label).Logger()
	path := filepath.Join(c.cfg.OutputDir, FileName(mode, u.Label, c.plan.alg))
	log.Debug().Str("path", path).Msg("unit started")

	sum, err := sink.Fill(path, u.Source, digest.New(c.plan.alg, c.cfg.Salt))
	if err != nil {
		log.Error().Err(err).Msg("unit failed")
		return UnitResult{Index: u.Index, Label: u.Label}, fmt.Errorf("%w: unit %s: %w", ErrIO, u.Label, err)
	}
	log.Info().Str("path", sum.Path).Int64("rows", sum.Rows).
		Str("xxh3", fmt.Sprintf("%016x", sum.Checksum)).Dur("elapsed", sum.Elapsed).Msg("unit done")
	return UnitResult{Index: u.Index, Label: u.Label, Summary: sum}, nil
}
