//go:build !unix

package main

import "os"

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

/* No access(2) here; probe with a throwaway file instead. */
func writable(dir string) error {
	f, err := os.CreateTemp(dir, ".nctable-*")
	if err != nil {
		return err
	}
	name := f.Name()
	_ = f.Close()
	return os.Remove(name)
}
