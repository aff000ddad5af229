package sink

import (
	"errors"
	"github.com/p7r0x7/ncore/candidate"
	"github.com/p7r0x7/ncore/digest"
	"github.com/zeebo/xxh3"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFill_Format(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "out.csv")
	h := digest.New(digest.MD5, "")
	sum, err := Fill(path, candidate.Combinatorial{Alphabet: "ab", Min: 1, Max: 2}, h)
	if err != nil {
		t.Fatalf("Fill: %v", err)
	}
	if sum.Rows != 6 || sum.Path != path {
		t.Errorf("summary = %+v, want 6 rows at %s", sum, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := "a,,0cc175b9c0f1b6a831c399e269772661\n" +
		"b,,92eb5ffee6ae2fec3ad71c777531578f\n" +
		"aa,,4124bc0a9335c27f086f24ba207a4912\n" +
		"ab,,187ef4436122d1cc2f40dc2b92f0eba0\n" +
		"ba,,07159c47ee1b19ae4fb9c40d480856c4\n" +
		"bb,,21ad0bd836b90d08f4cf640b4c298e7c\n"
	if string(data) != want {
		t.Errorf("file content:\n%s\nwant:\n%s", data, want)
	}
	if sum.Checksum != xxh3.Hash(data) {
		t.Errorf("checksum %x, want %x", sum.Checksum, xxh3.Hash(data))
	}
}

func TestFill_SaltedRows(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "salted.csv")
	words := candidate.Slice{"alpha", "", "with,comma"}
	h := digest.New(digest.SHA256, "xyz")
	if _, err := Fill(path, words, h); err != nil {
		t.Fatal(err)
	}
	data, _ := os.ReadFile(path)
	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	if len(lines) != len(words) {
		t.Fatalf("got %d lines, want %d", len(lines), len(words))
	}
	for i, line := range lines {
		cut := strings.LastIndexByte(line, ',')
		rest, hexDigest := line[:cut], line[cut+1:]
		if !strings.HasSuffix(rest, ",xyz") {
			t.Errorf("line %d: salt field missing in %q", i, line)
		}
		if cand := strings.TrimSuffix(rest, ",xyz"); cand != words[i] {
			t.Errorf("line %d: candidate %q, want %q", i, cand, words[i])
		}
		if want := digest.New(digest.SHA256, "").Sum("xyz" + words[i]).Digest; hexDigest != want {
			t.Errorf("line %d: digest %s, want %s", i, hexDigest, want)
		}
	}
}

func TestFill_EmptySource(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "empty.csv")
	sum, err := Fill(path, candidate.Slice(nil), digest.New(digest.SHA1, ""))
	if err != nil {
		t.Fatal(err)
	}
	if info, err := os.Stat(path); err != nil || info.Size() != 0 || sum.Rows != 0 {
		t.Errorf("empty unit: stat %v %v, rows %d", info, err, sum.Rows)
	}
}

type failingSource struct{ after int }

var errSource = errors.New("source failed")

func (f failingSource) Walk(fn func(string) error) error {
	for i := 0; i < f.after; i++ {
		if err := fn("w"); err != nil {
			return err
		}
	}
	return errSource
}

func TestFill_RemovesPartialFileOnError(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "partial.csv")
	_, err := Fill(path, failingSource{after: 10}, digest.New(digest.MD5, ""))
	if !errors.Is(err, errSource) {
		t.Fatalf("Fill error = %v, want %v", err, errSource)
	}
	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("partial file still present: %v", err)
	}
}

func TestCreate_MissingDirectory(t *testing.T) {
	t.Parallel()
	_, err := Create(filepath.Join(t.TempDir(), "nope", "out.csv"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Create error = %v, want os.ErrNotExist", err)
	}
}

func TestSink_WriteRecordMatchesWrite(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	h := digest.New(digest.SHA512, "s")

	a, _ := Create(filepath.Join(dir, "a.csv"))
	b, _ := Create(filepath.Join(dir, "b.csv"))
	for _, c := range []string{"one", "two"} {
		if err := a.Write(c, h); err != nil {
			t.Fatal(err)
		}
		if err := b.WriteRecord(h.Sum(c)); err != nil {
			t.Fatal(err)
		}
	}
	sa, errA := a.Close()
	sb, errB := b.Close()
	if errA != nil || errB != nil {
		t.Fatal(errA, errB)
	}
	if sa.Checksum != sb.Checksum || sa.Rows != 2 || sb.Rows != 2 {
		t.Errorf("summaries differ: %+v vs %+v", sa, sb)
	}
}

func BenchmarkFill(b *testing.B) {
	dir := b.TempDir()
	src := candidate.Combinatorial{Alphabet: "abcdefghij", Min: 4, Max: 4}
	h := digest.New(digest.SHA256, "salt")
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := Fill(filepath.Join(dir, "bench.csv"), src, h); err != nil {
			b.Fatal(err)
		}
	}
}
