package digest

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"errors"
	"fmt"
	simd "github.com/minio/sha256-simd"
	"github.com/zeebo/blake3"
	"golang.org/x/crypto/sha3"
	"hash"
	"strings"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.
// This file contains the closed set of supported digest algorithms and the salted hasher that
// every worker owns privately.

// Algorithm selects one digest function from a fixed, closed set.
type Algorithm uint8

const (
	MD5 Algorithm = iota + 1
	SHA1
	SHA224
	SHA256
	SHA384
	SHA512
	SHA3_256
	SHA3_512
	BLAKE3
)

var ErrUnknownAlgorithm = errors.New("unknown hash algorithm")

var algorithms = [...]struct {
	name string
	new  func() hash.Hash
}{
	MD5:      {"MD5", md5.New},
	SHA1:     {"SHA1", sha1.New},
	SHA224:   {"SHA224", sha256.New224},
	SHA256:   {"SHA256", simd.New},
	SHA384:   {"SHA384", sha512.New384},
	SHA512:   {"SHA512", sha512.New},
	SHA3_256: {"SHA3-256", sha3.New256},
	SHA3_512: {"SHA3-512", sha3.New512},
	BLAKE3:   {"BLAKE3", func() hash.Hash { return blake3.New() }},
}

// Algorithms lists every supported algorithm in a stable order.
func Algorithms() []Algorithm {
	out := make([]Algorithm, 0, len(algorithms)-1)
	for a := MD5; int(a) < len(algorithms); a++ {
		out = append(out, a)
	}
	return out
}

// Names lists the canonical names of every supported algorithm.
func Names() []string {
	algs := Algorithms()
	out := make([]string, len(algs))
	for i, a := range algs {
		out[i] = a.String()
	}
	return out
}

// Parse resolves name, case-insensitively, to an Algorithm. "SHA3_256" and "sha3256" are accepted
// for "SHA3-256".
func Parse(name string) (Algorithm, error) {
	key := normalize(name)
	for _, a := range Algorithms() {
		if normalize(a.String()) == key {
			return a, nil
		}
	}
	return 0, fmt.Errorf("%w: %q (supported: %s)", ErrUnknownAlgorithm, name, strings.Join(Names(), ", "))
}

func normalize(name string) string {
	return strings.NewReplacer("-", "", "_", "").Replace(strings.ToUpper(strings.TrimSpace(name)))
}

func (a Algorithm) Valid() bool { return a >= MD5 && int(a) < len(algorithms) }

func (a Algorithm) String() string {
	if !a.Valid() {
		return fmt.Sprintf("Algorithm(%d)", uint8(a))
	}
	return algorithms[a].name
}

// Size returns the digest length in bytes.
func (a Algorithm) Size() int {
	if !a.Valid() {
		return 0
	}
	return algorithms[a].new().Size()
}

// Record is one generated row: the candidate, the salt it was hashed with, and the hex digest.
type Record struct {
	Candidate, Salt, Digest string
}

// Hasher computes salted digests for one worker. It is not safe for concurrent use; every worker
// builds its own with New.
type Hasher struct {
	alg  Algorithm
	salt string
	h    hash.Hash
	buf  []byte
	sum  []byte
}

// New returns a Hasher for alg that prepends salt to every candidate. It panics if alg is not one
// of the supported algorithms; callers validate with Parse first.
func New(alg Algorithm, salt string) *Hasher {
	if !alg.Valid() {
		panic(fmt.Errorf("digest: New: %v", alg))
	}
	h := algorithms[alg].new()
	return &Hasher{
		alg:  alg,
		salt: salt,
		h:    h,
		buf:  make([]byte, 0, len(salt)+64),
		sum:  make([]byte, 0, h.Size()),
	}
}

func (d *Hasher) Algorithm() Algorithm { return d.alg }

func (d *Hasher) Salt() string { return d.salt }

// Sum hashes salt ++ candidate from a freshly reset state and returns the resulting Record.
func (d *Hasher) Sum(candidate string) Record {
	return Record{Candidate: candidate, Salt: d.salt, Digest: hex.EncodeToString(d.sumBytes(candidate))}
}

// AppendHex appends the lowercase hex digest of salt ++ candidate to dst without allocating a Record.
func (d *Hasher) AppendHex(dst []byte, candidate string) []byte {
	return hex.AppendEncode(dst, d.sumBytes(candidate))
}

func (d *Hasher) sumBytes(candidate string) []byte {
	d.h.Reset() /* No state survives from the previous candidate. */
	d.buf = append(append(d.buf[:0], d.salt...), candidate...)
	d.h.Write(d.buf)
	d.sum = d.h.Sum(d.sum[:0])
	return d.sum
}
