//go:build unix

package main

import "golang.org/x/sys/unix"

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

func writable(dir string) error { return unix.Access(dir, unix.W_OK) }
