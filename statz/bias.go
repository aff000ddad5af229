package main

import (
	"github.com/p7r0x7/ncore/digest"
	"math/big"
	"strconv"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

const samples = 1 << 14

/* Numeric candidates are the least random input a table sees; digests of them should still be
unbiased. */
func monobit(alg digest.Algorithm) float64 {
	h, ln := digest.New(alg, salt), alg.Size()*8
	tally, sum := make([]int32, ln), new(big.Int)
	for i := samples; i > 0; i-- {
		sum.SetString(h.Sum(strconv.Itoa(i)).Digest, 16)
		for bit := ln - 1; bit >= 0; bit-- {
			if sum.Bit(bit) == 1 {
				tally[bit]++
			}
		}
	}
	return meanBias(tally)
}

// meanBias returns the mean absolute deviation of each bit's tally from half the samples, as a
// percentage of that half.
func meanBias(tally []int32) float64 {
	var total int64
	for _, t := range tally {
		d := int64(t) - samples>>1
		if d < 0 {
			d = -d
		}
		total += d
	}
	return float64(total) / float64(len(tally)) / float64(samples>>1) * 100
}
