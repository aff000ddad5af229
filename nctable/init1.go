package main

import (
	"github.com/p7r0x7/ncore/digest"
	. "github.com/spf13/pflag"
	"os"
	"strings"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

var pDirectory, pLength, pFile, pSalt, pHash, pNoCodesDefault = "", "", "", "", "", false
var pWorkers, pVerbose = 0, 0
var pHelp, pLower, pUpper, pNum, pSymbols, pFullASCII, pSingle, pMulti, pEven, pYes, pNoCodes bool
var yell, purp, blue, und, zero = "\033[33m", "\033[35m", "\033[34m", "\033[4m", "\033[0m"

func init() {
	for _, arg := range os.Args[1:] {
		switch arg {
		case "--no-codes=false":
			pNoCodes = false
		case "--no-codes", "--no-codes=true":
			pNoCodes = true
		}
	}
	if pNoCodes {
		yell, purp, blue, und, zero = "", "", "", "", ""
	}

	BoolVarP(&pHelp, "help", "h", false,
		purp+"print this help menu"+zero+n)

	StringVarP(&pDirectory, "directory", "d", "",
		purp+"existing, writable directory to store tables in"+zero+" (required)")

	StringVarP(&pLength, "length", "l", "",
		purp+"inclusive candidate length range, e.g. 2-6"+zero)

	StringVarP(&pFile, "file", "f", "",
		purp+"dictionary file to hash line by line instead of"+zero+
			n+purp+"generating candidates"+zero)

	StringVarP(&pSalt, "salt", "s", "",
		purp+"salt prepended to every candidate before hashing"+zero)

	StringVar(&pHash, "hash", "SHA256",
		purp+"hash function, one of:"+zero+n+strings.Join(digest.Names(), " "))

	BoolVar(&pLower, "lowercase", false, purp+"use the lowercase character set"+zero)
	BoolVar(&pUpper, "uppercase", false, purp+"use the uppercase character set"+zero)
	BoolVar(&pNum, "num", false, purp+"use the numeric character set"+zero)
	BoolVar(&pSymbols, "symbols", false, purp+"use printable symbols, including space"+zero)
	BoolVar(&pFullASCII, "full-ascii", false,
		purp+"use every printable ASCII character"+zero+n)

	BoolVar(&pSingle, "single", false, purp+"hash on a single core into one table"+zero)
	BoolVar(&pMulti, "multi", false, purp+"hash each candidate length on its own core"+zero)
	BoolVar(&pEven, "even", false,
		purp+"split all candidates evenly across cores"+zero+n)

	IntVarP(&pWorkers, "workers", "w", 0,
		purp+"parallel workers for --multi and --even"+zero+" (default NumCPU)")

	BoolVarP(&pYes, "yes", "y", false,
		purp+"skip the confirmation asked for lengths above "+maxQuiet+zero)

	CountVarP(&pVerbose, "verbose", "v",
		purp+"log progress to stderr; repeat for debug events"+zero)

	Bool("no-codes", pNoCodesDefault,
		purp+"print to console w/o formatting codes"+zero)

	/* Order flags as above except for help, which is hoisted to the top. */
	CommandLine.SortFlags = false
}
