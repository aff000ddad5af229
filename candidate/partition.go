package candidate

import (
	"errors"
	"fmt"
	"github.com/p7r0x7/ncore/charset"
	"strconv"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.
// This file splits a candidate domain into work units, each of which is handed to exactly one
// worker.

var ErrNoWorkers = errors.New("worker count must be at least 1")

// Unit is one disjoint slice of the candidate domain. Label names the unit in output file names:
// the candidate length for per-length units, the unit index for even units.
type Unit struct {
	Index  int
	Label  string
	Source Source
}

// PerLength returns one unit per length in [lo, hi]. Each unit enumerates only its own length
// class, so units with larger lengths cost A times more than their predecessor.
func PerLength(alphabet charset.Alphabet, lo, hi int) ([]Unit, error) {
	if err := (Combinatorial{alphabet, lo, hi}).validate(); err != nil {
		return nil, err
	}
	units := make([]Unit, 0, hi-lo+1)
	for k := lo; k <= hi; k++ {
		units = append(units, Unit{
			Index:  len(units),
			Label:  strconv.Itoa(k),
			Source: Combinatorial{Alphabet: alphabet, Min: k, Max: k},
		})
	}
	return units, nil
}

// Even splits domain into exactly w contiguous units. With N = len(domain), the first N mod w units
// hold ceil(N/w) candidates and the rest floor(N/w); when N < w the trailing units are empty.
func Even(domain []string, w int) ([]Unit, error) {
	if w < 1 {
		return nil, fmt.Errorf("%w: %d", ErrNoWorkers, w)
	}
	base, extra := len(domain)/w, len(domain)%w
	units, start := make([]Unit, w), 0
	for i := range units {
		size := base
		if i < extra {
			size++
		}
		units[i] = Unit{
			Index:  i,
			Label:  strconv.Itoa(i),
			Source: Slice(domain[start : start+size : start+size]),
		}
		start += size
	}
	return units, nil
}
