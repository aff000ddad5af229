package main

import (
	"bufio"
	"errors"
	. "fmt"
	"github.com/p7r0x7/ncore"
	"github.com/p7r0x7/vainpath"
	"github.com/rs/zerolog"
	. "github.com/spf13/pflag"
	"golang.org/x/term"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.
// This program is the command-line front end of ncore: it validates flags and paths, asks before
// starting very large runs, and reports what the run wrote.

const n = "\n"
const success, failure, invalid = 0, 1, 2

/* Lengths above this ask for confirmation; the domain grows by the alphabet size per length. */
const maxQuietLength = 5

var maxQuiet = strconv.Itoa(maxQuietLength)

func main() { os.Exit(program()) }

// help prints a usage menu. To consistently render this menu in most terminal windows, its content
// should be no wider than 80 columns.
func help() {
	origin, err := os.Executable()
	if err != nil {
		origin = "nctable" /* Default binary name */
	} else {
		origin = filepath.Base(origin)
	}
	name := vainpath.Trim(origin, "…", 12)
	spaces := strings.Repeat(" ", utf8.RuneCountInString(name)+3)
	Fprint(os.Stderr, yell, "Salted hash table generator.", zero, n+n+
		"Usage:"+n+
		"  ", name, " [-h]"+n,
		spaces, "-d DIR -l MIN-MAX [--lowercase] [--uppercase] [--num] [--symbols]"+n,
		spaces, "[--full-ascii] [-s SALT] [--hash ALG] --single|--multi|--even"+n,
		spaces, "-d DIR -f FILE [-s SALT] [--hash ALG] --single|--multi|--even"+n+n+
			"Options:"+n)
	PrintDefaults()
	Fprint(os.Stderr, n+"Each table row reads `candidate,salt,hex digest`. Dictionary files are always"+
		n+"split evenly; --multi falls back to --even for them."+n)
}

func header() {
	Fprint(os.Stderr, blue, `
 __    _  _______  _______  ______    _______
|  |  | ||       ||       ||    _ |  |       |
|   |_| ||       ||   _   ||   | ||  |    ___|
|       ||       ||  | |  ||   |_||_ |   |___
|  _    ||      _||  |_|  ||    __  ||    ___|
| | |   ||     |_ |       ||   |  | ||   |___
|_|  |__||_______||_______||___|  |_||_______|`, zero, n+n)
}

func program() int {
	Parse()
	if pHelp || NFlag() == 0 {
		help()
		return success
	}
	if NArg() > 0 {
		warn("unexpected arguments: " + strings.Join(Args(), " "))
		return invalid
	}

	cfg, err := configure()
	if err != nil {
		warn(err.Error())
		return invalid
	}
	logger := newLogger(os.Stderr)
	cfg.Logger = &logger

	if cfg.Dictionary == "" && cfg.MaxLength > maxQuietLength && !pYes {
		ok, err := confirm(os.Stdin, os.Stderr, term.IsTerminal(int(os.Stdin.Fd())))
		if err != nil {
			warn(err.Error())
			return invalid
		}
		if !ok {
			Fprint(os.Stderr, "[!] Exiting program...", n)
			return success
		}
	}

	coord, err := ncore.New(cfg)
	if err != nil {
		warn(err.Error())
		return invalid
	}

	header()
	switch {
	case cfg.Mode == ncore.Single:
		Fprint(os.Stderr, "[+] Single core hash generation mode", n)
	case cfg.Dictionary != "" && cfg.Mode == ncore.Multi:
		Fprint(os.Stderr, purp, "[!] Dictionary hashing should be done in --even mode...", zero, n,
			"[+] Switching to --even mode", n)
		fallthrough
	default:
		Fprint(os.Stderr, "[+] ", coord.Workers(), " workers available for processing", n)
	}
	Fprint(os.Stderr, "[+] Starting ", coord.Algorithm(), " hash generation...", n)

	res, err := coord.Run()
	if err != nil {
		Fprint(os.Stderr, purp, "[!] Error generating or writing hashes", zero, n)
		warn(err.Error())
		return failure
	}
	report(os.Stdout, res)
	return success
}

// configure turns the parsed flags into a run configuration, checking the paths they name.
func configure() (ncore.Config, error) {
	cfg := ncore.Config{
		Lowercase: pLower, Uppercase: pUpper, Numeric: pNum, Symbols: pSymbols, FullASCII: pFullASCII,
		Salt: pSalt, Algorithm: pHash, Workers: pWorkers,
	}

	dir, err := validateDirectory(pDirectory)
	if err != nil {
		return cfg, err
	}
	cfg.OutputDir = dir

	switch {
	case pFile != "" && pLength != "":
		return cfg, errors.New("--length and --file are mutually exclusive")
	case pFile != "":
		if cfg.Dictionary, err = validateFile(pFile); err != nil {
			return cfg, err
		}
	case pLength != "":
		if cfg.MinLength, cfg.MaxLength, err = parseRange(pLength); err != nil {
			return cfg, err
		}
	default:
		return cfg, errors.New("a length range is required if a dictionary file is not used")
	}
	if cfg.Dictionary == "" && !(pLower || pUpper || pNum || pSymbols || pFullASCII) {
		return cfg, errors.New("no character set selected")
	}

	cfg.Mode, err = selectMode(pSingle, pMulti, pEven)
	return cfg, err
}

func selectMode(single, multi, even bool) (ncore.Mode, error) {
	var picked []ncore.Mode
	for _, m := range [...]struct {
		on   bool
		mode ncore.Mode
	}{{single, ncore.Single}, {multi, ncore.Multi}, {even, ncore.Even}} {
		if m.on {
			picked = append(picked, m.mode)
		}
	}
	if len(picked) != 1 {
		return 0, errors.New("exactly one of --single, --multi or --even is required")
	}
	return picked[0], nil
}

// parseRange parses "MIN-MAX" where both are positive and MAX is greater than MIN.
func parseRange(s string) (int, int, error) {
	lo, hi, ok := strings.Cut(strings.TrimSpace(s), "-")
	if ok {
		first, err1 := strconv.Atoi(lo)
		last, err2 := strconv.Atoi(hi)
		if err1 == nil && err2 == nil && first > 0 && last > first {
			return first, last, nil
		}
	}
	return 0, 0, Errorf("range %q was not in the correct format (e.g. 2-8)", s)
}

func validateDirectory(dir string) (string, error) {
	if dir == "" {
		return "", errors.New("--directory is required")
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return "", Errorf("directory %s does not exist", dir)
	}
	if err = writable(dir); err != nil {
		return "", Errorf("access to %s was denied: %w", dir, err)
	}
	return dir, nil
}

func validateFile(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return "", Errorf("file %s does not exist", path)
	}
	f, err := os.Open(path)
	if err != nil {
		return "", Errorf("access to %s was denied: %w", path, err)
	}
	_ = f.Close()
	return path, nil
}

// confirm asks whether a long run should proceed. Without a terminal there is nobody to ask, so
// the run is refused and --yes is required instead.
func confirm(in io.Reader, out io.Writer, interactive bool) (bool, error) {
	Fprint(out, purp, "[!] WARNING: This could take awhile and tie up system resources in the meantime.",
		zero, n)
	if !interactive {
		return false, Errorf("lengths above %d need --yes when stdin is not a terminal", maxQuietLength)
	}
	Fprint(out, "Please press [1] to continue or [0] to abort: ")
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	return strings.TrimSpace(line) == "1", nil
}

func newLogger(w io.Writer) zerolog.Logger {
	level := zerolog.ErrorLevel
	switch {
	case pVerbose > 1:
		level = zerolog.DebugLevel
	case pVerbose == 1:
		level = zerolog.InfoLevel
	}
	out := zerolog.ConsoleWriter{Out: w, NoColor: pNoCodes, TimeFormat: time.Kitchen}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

func report(w io.Writer, res ncore.RunResult) {
	for _, u := range res.Units {
		Fprint(w, "[+] ", und, vainpath.Simplify(u.Path), zero, " generation complete", n)
		Fprintf(w, "[+] %s%d%s hashes generated in %s (xxh3 %016x)"+n,
			yell, u.Rows, zero, u.Elapsed.Round(time.Millisecond), u.Checksum)
	}
	Fprintf(w, "[+] %s%d%s hashes in %d table(s) on %s/%s"+n,
		yell, res.Records, zero, len(res.Units), runtime.GOOS, runtime.GOARCH)
	Fprint(w, "[+] Total processing time: ", res.Elapsed.Round(time.Millisecond), n)
}

func warn(msg string) {
	Fprint(os.Stderr, purp, "[!] ", zero, msg, n)
}
