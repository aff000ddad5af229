package sink

import (
	"bufio"
	"errors"
	"fmt"
	"github.com/p7r0x7/ncore/candidate"
	"github.com/p7r0x7/ncore/digest"
	"github.com/zeebo/xxh3"
	"io"
	"os"
	"time"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.
// This file writes hash records to flat files, one line per candidate:
//
//	<candidate>,<salt>,<hex digest>
//
// Fields are written verbatim. Candidates and salts may themselves contain commas, but digests
// never do, so a line can always be split from the right.

const bufSize = 256 << 10

// Summary describes one finished output file. Checksum is the XXH3-64 of every byte written.
type Summary struct {
	Path     string
	Rows     int64
	Checksum uint64
	Elapsed  time.Duration
}

// Sink is an open output file. It is owned by a single worker.
type Sink struct {
	path  string
	file  *os.File
	w     *bufio.Writer
	sum   *xxh3.Hasher
	line  []byte
	rows  int64
	start time.Time
}

// Create truncates or creates the file at path and returns a Sink writing to it.
func Create(path string) (*Sink, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", path, err)
	}
	sum := xxh3.New()
	return &Sink{
		path:  path,
		file:  f,
		w:     bufio.NewWriterSize(io.MultiWriter(f, sum), bufSize),
		sum:   sum,
		line:  make([]byte, 0, 256),
		start: time.Now(),
	}, nil
}

func (s *Sink) Path() string { return s.path }

func (s *Sink) Rows() int64 { return s.rows }

// Write hashes candidate with h and appends the resulting record.
func (s *Sink) Write(candidate string, h *digest.Hasher) error {
	s.line = append(s.line[:0], candidate...)
	s.line = append(s.line, ',')
	s.line = append(s.line, h.Salt()...)
	s.line = append(s.line, ',')
	s.line = h.AppendHex(s.line, candidate)
	s.line = append(s.line, '\n')
	if _, err := s.w.Write(s.line); err != nil {
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	s.rows++
	return nil
}

// WriteRecord appends an already computed record.
func (s *Sink) WriteRecord(r digest.Record) error {
	s.line = append(append(append(append(append(append(s.line[:0],
		r.Candidate...), ','), r.Salt...), ','), r.Digest...), '\n')
	if _, err := s.w.Write(s.line); err != nil {
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	s.rows++
	return nil
}

// Close flushes and closes the file. The file is only valid if Close returns a nil error.
func (s *Sink) Close() (Summary, error) {
	ferr := s.w.Flush()
	cerr := s.file.Close()
	if err := errors.Join(ferr, cerr); err != nil {
		return Summary{}, fmt.Errorf("close %s: %w", s.path, err)
	}
	return Summary{Path: s.path, Rows: s.rows, Checksum: s.sum.Sum64(), Elapsed: time.Since(s.start)}, nil
}

// Abort closes and removes the file; a partially written file is never left behind as output.
func (s *Sink) Abort() error {
	_ = s.file.Close()
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove partial %s: %w", s.path, err)
	}
	return nil
}

// Fill writes every candidate of src, hashed with h, to a new file at path. The file is closed
// before Fill returns; on any error it is removed and the error is returned.
func Fill(path string, src candidate.Source, h *digest.Hasher) (Summary, error) {
	s, err := Create(path)
	if err != nil {
		return Summary{}, err
	}
	if err = src.Walk(func(c string) error { return s.Write(c, h) }); err != nil {
		return Summary{}, errors.Join(err, s.Abort())
	}
	sum, err := s.Close()
	if err != nil {
		return Summary{}, errors.Join(err, s.Abort())
	}
	return sum, nil
}
