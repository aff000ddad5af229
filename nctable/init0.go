//go:build windows

package main

import (
	"golang.org/x/sys/windows"
	"os"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

/* Older consoles render ANSI codes literally unless virtual terminal processing is switched on. */
func init() {
	for _, v := range [2]windows.Handle{
		windows.Handle(os.Stdout.Fd()),
		windows.Handle(os.Stderr.Fd()),
	} {
		var mode uint32
		if err := windows.GetConsoleMode(v, &mode); err != nil {
			pNoCodesDefault = true
			break
		}
		if mode&windows.ENABLE_VIRTUAL_TERMINAL_PROCESSING == 0 {
			err := windows.SetConsoleMode(v, mode|windows.ENABLE_VIRTUAL_TERMINAL_PROCESSING)
			if err != nil {
				pNoCodesDefault = true
				break
			}
		}
	}
	pNoCodes = pNoCodesDefault
}
