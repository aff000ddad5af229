package ncore

import "errors"

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

// Every error returned by New or Run wraps exactly one of these; test with errors.Is.
var (
	// ErrConfig reports an invalid configuration. It is always returned before generation begins.
	ErrConfig = errors.New("ncore: invalid configuration")

	// ErrIO reports a failure to read the dictionary or to create, write, or close an output file.
	ErrIO = errors.New("ncore: i/o failure")
)
