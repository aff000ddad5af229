package main

import (
	. "fmt"
	"github.com/dterei/gotsc"
	"github.com/p7r0x7/ncore/digest"
	"math/rand"
	"runtime"
	"strings"
	"sync"
	"testing"
	"time"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.
// Statz measures each table algorithm at the input sizes table generation actually sees: short,
// salted candidates hashed and hex-encoded one at a time.

const salt = "ncore"

var sizes = [...]int{8, 16, 64, 512}
var input, calltime = "", gotsc.TSCOverhead()

func randomCandidate(size int) string {
	var b strings.Builder
	b.Grow(size)
	for i := size; i > 0; i-- {
		b.WriteByte(byte(' ' + rand.Intn('~'-' '+1)))
	}
	return b.String()
}

/* Mirrors sink.Write: one reset, one salted sum and one hex encoding per row. */
func benchmark(alg digest.Algorithm) func(b *testing.B) {
	return func(b *testing.B) {
		h, row := digest.New(alg, salt), make([]byte, 0, 2*alg.Size())
		b.SetBytes(int64(len(salt) + len(input)))
		b.ReportAllocs()
		b.ResetTimer()
		for i := b.N; i > 0; i-- {
			row = h.AppendHex(row[:0], input)
		}
	}
}

func benchAlg(alg digest.Algorithm) {
	const s = len(sizes)
	throughputs, speeds, usages := make([]float64, s), make([]float64, s), make([]float64, s)

	for i, v := range sizes {
		input = randomCandidate(v)

		totalHz, polls, mut, stop := uint64(0), uint64(0), &sync.Mutex{}, make(chan struct{})
		if calltime > 0 {
			go func() {
				for {
					select {
					case <-stop:
						return
					default:
					}
					tsc1 := gotsc.BenchStart()
					time.Sleep(time.Millisecond)
					tsc2 := gotsc.BenchEnd()

					mut.Lock()
					totalHz += tsc2 - tsc1 - calltime
					polls++
					mut.Unlock()

					time.Sleep(time.Millisecond * 9)
				}
			}()
		}
		r := testing.Benchmark(benchmark(alg))
		close(stop)
		mut.Lock()
		totalHz *= 1000

		throughputs[i] = float64(r.Bytes*int64(r.N)) / r.T.Seconds() /* B/s */
		if polls > 0 {
			speeds[i] = float64(totalHz) / float64(polls) / throughputs[i]
		}
		throughputs[i] /= 1e6 /* MB/s */
		usages[i] = float64(r.AllocedBytesPerOp())
		mut.Unlock()
	}

	Println("Speed " + fmtFloats(throughputs...) + "   MB/s")
	if calltime > 0 {
		Println("      " + fmtFloats(speeds...) + "   cpb")
	}
	Println("Usage " + fmtFloats(usages...) + "   B/op")
	Printf("Bias  %10.3f%%\n\n", monobit(alg))
}

func fmtFloats(f ...float64) string {
	var str, style string
	for _, v := range f {
		switch whole := float64(int64(v)) == v; {
		case v > 1e8 || (v < 1e-6 && !whole):
			style = "%8.3g"
		case v <= 1e1 && !whole:
			style = "%8.6f"
		case v <= 1e2 && !whole:
			style = "%8.5f"
		case v <= 1e3 && !whole:
			style = "%8.4f"
		case v <= 1e4 && !whole:
			style = "%8.3f"
		case v <= 1e5 && !whole:
			style = "%8.2f"
		default:
			style = "%8.f"
		}
		str += "  " + Sprintf(style, v)
	}
	return str
}

func main() {
	Printf("Running Statz on %d CPUs!\n%s/%s, %s\n\n"+
		"             8B       16B       64B      512B\n",
		runtime.NumCPU(), runtime.GOOS, runtime.GOARCH, digest.Accel())
	t := time.Now()

	for _, alg := range digest.Algorithms() {
		Println(alg)
		benchAlg(alg)
	}

	Println("Finished in " + time.Since(t).Truncate(time.Millisecond).String() + ".")
}
