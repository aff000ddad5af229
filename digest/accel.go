package digest

import (
	"golang.org/x/sys/cpu"
	"runtime"
	"strings"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

// Accel describes the CPU features that the SHA-2 and BLAKE3 backends can take advantage of on this
// machine, e.g. "amd64: avx2 sse4.1". It is informational only; backends pick their own paths.
func Accel() string {
	var feats []string
	switch runtime.GOARCH {
	case "amd64", "386":
		if cpu.X86.HasAVX512F {
			feats = append(feats, "avx512")
		}
		if cpu.X86.HasAVX2 {
			feats = append(feats, "avx2")
		}
		if cpu.X86.HasSSE41 {
			feats = append(feats, "sse4.1")
		}
	case "arm64":
		if cpu.ARM64.HasSHA2 {
			feats = append(feats, "sha2")
		}
		if cpu.ARM64.HasSHA512 {
			feats = append(feats, "sha512")
		}
		if cpu.ARM64.HasASIMD {
			feats = append(feats, "asimd")
		}
	}
	if len(feats) == 0 {
		return runtime.GOARCH + ": generic"
	}
	return runtime.GOARCH + ": " + strings.Join(feats, " ")
}
