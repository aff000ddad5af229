package ncore

import (
	"errors"
	"fmt"
	"github.com/p7r0x7/ncore/charset"
	"github.com/p7r0x7/ncore/digest"
	"github.com/rs/zerolog"
	"runtime"
	"strings"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

// Mode selects how the candidate domain is executed.
type Mode uint8

const (
	// Single streams every candidate through one hasher into one file.
	Single Mode = iota + 1
	// Multi runs one worker per candidate length.
	Multi
	// Even splits the materialized domain into one equally sized unit per worker.
	Even
)

var modeNames = [...]string{Single: "single", Multi: "multi", Even: "even"}

func (m Mode) String() string {
	if m < Single || m > Even {
		return fmt.Sprintf("Mode(%d)", uint8(m))
	}
	return modeNames[m]
}

// ParseMode accepts "single", "multi" or "even", case-insensitively.
func ParseMode(s string) (Mode, error) {
	for m := Single; m <= Even; m++ {
		if strings.EqualFold(strings.TrimSpace(s), modeNames[m]) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown mode %q", ErrConfig, s)
}

// Config is everything a run needs. A Coordinator keeps its own copy, so later changes to the
// caller's value have no effect.
type Config struct {
	OutputDir string

	Lowercase, Uppercase, Numeric, Symbols, FullASCII bool

	// MinLength and MaxLength bound combinatorial candidates, inclusively. They are mutually
	// exclusive with Dictionary.
	MinLength, MaxLength int
	Dictionary           string

	Salt      string
	Algorithm string
	Mode      Mode

	// Workers is the parallel worker count; 0 means runtime.NumCPU().
	Workers int

	// Logger receives progress events; nil discards them.
	Logger *zerolog.Logger
}

func (c Config) flags() charset.Flags {
	return charset.Flags{
		Lowercase: c.Lowercase, Uppercase: c.Uppercase, Numeric: c.Numeric,
		Symbols: c.Symbols, FullASCII: c.FullASCII,
	}
}

func (c Config) ranged() bool { return c.MinLength != 0 || c.MaxLength != 0 }

// plan is the validated, derived form of a Config.
type plan struct {
	alg      digest.Algorithm
	alphabet charset.Alphabet
	workers  int
}

func (c Config) validate() (plan, error) {
	var p plan
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	alg, err := digest.Parse(c.Algorithm)
	if err != nil {
		fail("%w", err)
	}
	p.alg = alg

	switch {
	case c.Dictionary != "" && c.ranged():
		fail("a length range and a dictionary file are mutually exclusive")
	case c.Dictionary == "" && !c.ranged():
		fail("a length range is required when no dictionary file is given")
	case c.Dictionary == "" && (c.MinLength < 1 || c.MaxLength < c.MinLength):
		fail("invalid length range %d-%d", c.MinLength, c.MaxLength)
	}

	if c.Dictionary == "" {
		if p.alphabet = charset.Assemble(c.flags()); p.alphabet.Len() == 0 {
			fail("no character set selected")
		}
	}

	if c.Mode < Single || c.Mode > Even {
		fail("unknown execution mode %v", c.Mode)
	}
	switch {
	case c.Workers < 0:
		fail("worker count %d is negative", c.Workers)
	case c.Workers == 0:
		p.workers = runtime.NumCPU()
	default:
		p.workers = c.Workers
	}
	if c.OutputDir == "" {
		fail("no output directory")
	}

	if len(errs) > 0 {
		return plan{}, fmt.Errorf("%w: %w", ErrConfig, errors.Join(errs...))
	}
	return p, nil
}
