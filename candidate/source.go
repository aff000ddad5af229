package candidate

import (
	"errors"
	"fmt"
	"github.com/p7r0x7/ncore/charset"
	"math/bits"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.
// This file contains the candidate sources: exhaustive enumeration over an alphabet and in-memory
// slices. Dictionary files live in dictionary.go.

var (
	ErrInvalidRange = errors.New("invalid length range")
	ErrOverflow     = errors.New("candidate domain size overflows uint64")
)

// Source yields candidates in a fixed order. Walk calls fn once per candidate and stops at the
// first error, returning it; errors from the source itself are returned the same way.
type Source interface {
	Walk(fn func(candidate string) error) error
}

// Combinatorial enumerates every string over Alphabet with a length in [Min, Max]. Lengths are
// visited in ascending order and, within a length, strings are produced in the lexicographic order
// induced by the alphabet, the rightmost position varying fastest. Enumeration is lazy.
type Combinatorial struct {
	Alphabet charset.Alphabet
	Min, Max int
}

func (c Combinatorial) validate() error {
	if c.Min < 1 || c.Max < c.Min {
		return fmt.Errorf("%w: %d-%d", ErrInvalidRange, c.Min, c.Max)
	}
	return nil
}

// Size returns Σ A^k for k in [Min, Max], where A is the alphabet length.
func (c Combinatorial) Size() (uint64, error) {
	if err := c.validate(); err != nil {
		return 0, err
	}
	base, total := uint64(c.Alphabet.Len()), uint64(0)
	for k := c.Min; k <= c.Max; k++ {
		n, err := pow(base, k)
		if err != nil {
			return 0, err
		}
		var carry uint64
		if total, carry = bits.Add64(total, n, 0); carry != 0 {
			return 0, ErrOverflow
		}
	}
	return total, nil
}

func pow(base uint64, exp int) (uint64, error) {
	n := uint64(1)
	for i := 0; i < exp; i++ {
		hi, lo := bits.Mul64(n, base)
		if hi != 0 {
			return 0, ErrOverflow
		}
		n = lo
	}
	return n, nil
}

func (c Combinatorial) Walk(fn func(string) error) error {
	if err := c.validate(); err != nil {
		return err
	}
	if c.Alphabet.Len() == 0 {
		return nil
	}
	for k := c.Min; k <= c.Max; k++ {
		if err := c.walkLength(k, fn); err != nil {
			return err
		}
	}
	return nil
}

// walkLength runs an odometer over k positions; idx holds the alphabet offset at each position.
func (c Combinatorial) walkLength(k int, fn func(string) error) error {
	alpha, last := c.Alphabet, c.Alphabet.Len()-1
	idx, word := make([]int, k), make([]byte, k)
	for i := range word {
		word[i] = alpha[0]
	}
	for {
		if err := fn(string(word)); err != nil {
			return err
		}
		pos := k - 1
		for ; pos >= 0 && idx[pos] == last; pos-- {
			idx[pos] = 0
			word[pos] = alpha[0]
		}
		if pos < 0 {
			return nil /* Every position wrapped: Alphabet^k is exhausted. */
		}
		idx[pos]++
		word[pos] = alpha[idx[pos]]
	}
}

// Slice is an in-memory source that yields its elements in order.
type Slice []string

func (s Slice) Walk(fn func(string) error) error {
	for _, c := range s {
		if err := fn(c); err != nil {
			return err
		}
	}
	return nil
}

// Materialize collects every candidate of src into memory. The domain grows as A^k, so this is
// bounded only by available memory.
func Materialize(src Source) ([]string, error) {
	var out []string
	if sized, ok := src.(interface{ Size() (uint64, error) }); ok {
		if n, err := sized.Size(); err == nil && n <= 1<<24 {
			out = make([]string, 0, n)
		}
	}
	err := src.Walk(func(c string) error {
		out = append(out, c)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
