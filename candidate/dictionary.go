package candidate

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

// Dictionary reads candidates from a file, one per line. The line terminator ("\n" or "\r\n") is
// stripped, empty lines are kept as empty candidates, and a final unterminated line is still
// yielded. The file is opened anew on every Walk.
type Dictionary struct {
	Path string
}

func (d Dictionary) Walk(fn func(string) error) error {
	f, err := os.Open(d.Path)
	if err != nil {
		return fmt.Errorf("open dictionary: %w", err)
	}
	defer f.Close()
	return readLines(f, fn)
}

// readLines uses ReadString rather than a Scanner so that lines of any length are accepted.
func readLines(r io.Reader, fn func(string) error) error {
	br := bufio.NewReaderSize(r, 64<<10)
	for {
		line, err := br.ReadString('\n')
		if len(line) > 0 {
			line = strings.TrimSuffix(line, "\n")
			line = strings.TrimSuffix(line, "\r")
			if ferr := fn(line); ferr != nil {
				return ferr
			}
		}
		switch {
		case errors.Is(err, io.EOF):
			return nil
		case err != nil:
			return fmt.Errorf("read dictionary: %w", err)
		}
	}
}
