package porm

import "github.com/pkg/errors"

// ErrMaxDepthExceeded is returned when nested foreign key resolution
// goes deeper than the depth requested via WithMaxDepth or Config.MaxDepth.
// With no guard configured, a cyclic schema recurses without bound; the
// acyclic precondition is the caller's to uphold.
var ErrMaxDepthExceeded = errors.New("foreign key resolution exceeded maximum depth")

// ErrRowWidthMismatch is returned when a cursor yields a row with a
// different number of values than its column metadata announces.
var ErrRowWidthMismatch = errors.New("row width does not match cursor columns")
