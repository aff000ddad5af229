package digest

import (
	"crypto/md5"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"errors"
	"github.com/zeebo/blake3"
	"golang.org/x/crypto/sha3"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   string
		want Algorithm
	}{
		{"MD5", MD5},
		{"md5", MD5},
		{" sha1 ", SHA1},
		{"SHA224", SHA224},
		{"sha256", SHA256},
		{"Sha384", SHA384},
		{"SHA512", SHA512},
		{"SHA3-256", SHA3_256},
		{"sha3_256", SHA3_256},
		{"sha3512", SHA3_512},
		{"blake3", BLAKE3},
	}
	for _, tt := range tests {
		got, err := Parse(tt.in)
		if err != nil {
			t.Errorf("Parse(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Parse(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParse_Unknown(t *testing.T) {
	t.Parallel()
	for _, name := range []string{"", "md4", "sha", "whirlpool", "SHA-256-X"} {
		if _, err := Parse(name); !errors.Is(err, ErrUnknownAlgorithm) {
			t.Errorf("Parse(%q) error = %v, want ErrUnknownAlgorithm", name, err)
		}
	}
}

func TestAlgorithms_RoundTrip(t *testing.T) {
	t.Parallel()
	algs := Algorithms()
	if len(algs) != 9 {
		t.Fatalf("len(Algorithms()) = %d, want 9", len(algs))
	}
	for _, a := range algs {
		got, err := Parse(a.String())
		if err != nil || got != a {
			t.Errorf("Parse(%q) = %v, %v", a.String(), got, err)
		}
	}
	if Algorithm(0).Valid() || Algorithm(200).Valid() {
		t.Error("out-of-range algorithm reported valid")
	}
}

func TestAlgorithm_Size(t *testing.T) {
	t.Parallel()
	want := map[Algorithm]int{
		MD5: 16, SHA1: 20, SHA224: 28, SHA256: 32, SHA384: 48, SHA512: 64,
		SHA3_256: 32, SHA3_512: 64, BLAKE3: 32,
	}
	for a, n := range want {
		if a.Size() != n {
			t.Errorf("%v.Size() = %d, want %d", a, a.Size(), n)
		}
		if got := len(New(a, "").Sum("x").Digest); got != 2*n {
			t.Errorf("%v hex digest length = %d, want %d", a, got, 2*n)
		}
	}
}

func TestHasher_KnownVectors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		alg             Algorithm
		salt, candidate string
		want            string
	}{
		{MD5, "", "a", "0cc175b9c0f1b6a831c399e269772661"},
		{MD5, "", "ab", "187ef4436122d1cc2f40dc2b92f0eba0"},
		{SHA1, "", "", "da39a3ee5e6b4b0d3255bfef95601890afd80709"},
		{SHA256, "xyz", "hello", "5e9ea19b58a7efd1f5c2b9e7cd479d577517026dd10d17b1e5de3a064374c8bc"},
	}
	for _, tt := range tests {
		r := New(tt.alg, tt.salt).Sum(tt.candidate)
		if r.Digest != tt.want {
			t.Errorf("%v(%q++%q) = %s, want %s", tt.alg, tt.salt, tt.candidate, r.Digest, tt.want)
		}
		if r.Candidate != tt.candidate || r.Salt != tt.salt {
			t.Errorf("record = %+v, want candidate %q salt %q", r, tt.candidate, tt.salt)
		}
	}
}

func TestHasher_MatchesIndependentComputation(t *testing.T) {
	t.Parallel()
	independent := map[Algorithm]func([]byte) []byte{
		MD5:      func(b []byte) []byte { s := md5.Sum(b); return s[:] },
		SHA224:   func(b []byte) []byte { s := sha256.Sum224(b); return s[:] },
		SHA256:   func(b []byte) []byte { s := sha256.Sum256(b); return s[:] },
		SHA384:   func(b []byte) []byte { s := sha512.Sum384(b); return s[:] },
		SHA512:   func(b []byte) []byte { s := sha512.Sum512(b); return s[:] },
		SHA3_256: func(b []byte) []byte { s := sha3.Sum256(b); return s[:] },
		SHA3_512: func(b []byte) []byte { s := sha3.Sum512(b); return s[:] },
		BLAKE3:   func(b []byte) []byte { s := blake3.Sum256(b); return s[:] },
	}
	const salt = "pepper"
	for alg, sum := range independent {
		h := New(alg, salt)
		for _, c := range []string{"", "a", "password", strings.Repeat("z", 300)} {
			want := hex.EncodeToString(sum([]byte(salt + c)))
			if got := h.Sum(c).Digest; got != want {
				t.Errorf("%v(%q) = %s, want %s", alg, c, got, want)
			}
		}
	}
}

// The digest of a candidate must not depend on what the same Hasher processed before it.
func TestHasher_StateIsolation(t *testing.T) {
	t.Parallel()
	for _, alg := range Algorithms() {
		fresh := New(alg, "s").Sum("second").Digest

		reused := New(alg, "s")
		reused.Sum("first")
		reused.Sum(strings.Repeat("q", 1000))
		if got := reused.Sum("second").Digest; got != fresh {
			t.Errorf("%v: reused hasher digest %s, fresh %s", alg, got, fresh)
		}
	}
}

func TestHasher_SaltIsPrepended(t *testing.T) {
	t.Parallel()
	got := New(MD5, "salt").Sum("word").Digest
	if want := New(MD5, "").Sum("saltword").Digest; got != want {
		t.Errorf("salted digest = %s, want %s", got, want)
	}
	if appended := New(MD5, "").Sum("wordsalt").Digest; got == appended {
		t.Error("salt was appended instead of prepended")
	}
}

func TestHasher_AppendHex(t *testing.T) {
	t.Parallel()
	h := New(SHA1, "k")
	dst := h.AppendHex([]byte("prefix,"), "v")
	if want := "prefix," + h.Sum("v").Digest; string(dst) != want {
		t.Errorf("AppendHex = %q, want %q", dst, want)
	}
	if strings.ToLower(string(dst)) != string(dst) {
		t.Error("hex digest is not lowercase")
	}
}

func TestNew_PanicsOnInvalid(t *testing.T) {
	t.Parallel()
	defer func() {
		if recover() == nil {
			t.Error("New did not panic for an invalid algorithm")
		}
	}()
	New(Algorithm(0), "")
}

func TestAccel(t *testing.T) {
	t.Parallel()
	if s := Accel(); !strings.Contains(s, ":") {
		t.Errorf("Accel() = %q, want \"<arch>: <features>\"", s)
	}
}

func BenchmarkHasher(b *testing.B) {
	for _, alg := range Algorithms() {
		b.Run(alg.String(), func(b *testing.B) {
			h, buf := New(alg, "salt"), make([]byte, 0, 256)
			b.ReportAllocs()
			b.SetBytes(int64(len("salt") + len("password")))
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				buf = h.AppendHex(buf[:0], "password")
			}
		})
	}
}
