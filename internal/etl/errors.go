//-------------------------------------------------------------------------
//
// pgEdge Sales Loader
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package etl

import (
	"errors"
	"fmt"
	"strings"
)

// Exit codes reported by the CLI for each error category.
const (
	ExitGeneric             = 1
	ExitMissingInput        = 2
	ExitSchema              = 3
	ExitInvalidRecord       = 4
	ExitDuplicateKey        = 5
	ExitUnresolvedDimension = 6
	ExitPersistence         = 7
)

// MissingInputError reports an input file that is absent or unreadable.
type MissingInputError struct {
	Path string
	Err  error
}

func (e *MissingInputError) Error() string {
	return fmt.Sprintf("input file %s: %v", e.Path, e.Err)
}

func (e *MissingInputError) Unwrap() error { return e.Err }

// SchemaError reports an input whose shape does not match the expected
// schema: a missing column, a malformed line, or conflicting duplicates.
// KeyName names the key column when Key is set.
type SchemaError struct {
	Source  string
	Line    int
	Column  string
	KeyName string
	Key     string
	Reason  string
}

func (e *SchemaError) Error() string {
	var b strings.Builder
	b.WriteString(e.Source)
	if e.Line > 0 {
		fmt.Fprintf(&b, " line %d", e.Line)
	}
	if e.Key != "" {
		fmt.Fprintf(&b, " (%s %s)", e.KeyName, e.Key)
	}
	b.WriteString(": ")
	if e.Column != "" {
		fmt.Fprintf(&b, "column %s: ", e.Column)
	}
	b.WriteString(e.Reason)
	return b.String()
}

// InvalidRecordError reports a row whose field value cannot be used.
// KeyName is "OrderID" or "ProductID"; Key is empty when the key itself
// is the offending field.
type InvalidRecordError struct {
	Source  string
	Line    int
	KeyName string
	Key     string
	Field   string
	Value   string
	Err     error
}

func (e *InvalidRecordError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s line %d", e.Source, e.Line)
	if e.Key != "" {
		fmt.Fprintf(&b, " (%s %s)", e.KeyName, e.Key)
	}
	fmt.Fprintf(&b, ": invalid %s %q", e.Field, e.Value)
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *InvalidRecordError) Unwrap() error { return e.Err }

// InvalidDateError reports an OrderDate that matches none of the
// configured layouts.
type InvalidDateError struct {
	Source  string
	Line    int
	OrderID int64
	Value   string
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("%s line %d (OrderID %d): unparsable OrderDate %q",
		e.Source, e.Line, e.OrderID, e.Value)
}

// DuplicateKeyError reports two source rows sharing an OrderID.
type DuplicateKeyError struct {
	Source    string
	OrderID   int64
	FirstLine int
	Line      int
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("%s: duplicate OrderID %d on lines %d and %d",
		e.Source, e.OrderID, e.FirstLine, e.Line)
}

// UnresolvedDimensionError reports a fact row whose key has no entry in
// the named dimension.
type UnresolvedDimensionError struct {
	Dimension string
	Key       string
	OrderID   int64
}

func (e *UnresolvedDimensionError) Error() string {
	return fmt.Sprintf("OrderID %d: no %s entry for %q", e.OrderID, e.Dimension, e.Key)
}

// PersistenceError reports a failure writing to the relational store.
// Table is empty for operations not tied to a single table.
type PersistenceError struct {
	Table string
	Op    string
	Err   error
}

func (e *PersistenceError) Error() string {
	if e.Table == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Table, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// StageError attaches the failing pipeline stage to an error.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return e.Stage + ": " + e.Err.Error()
}

func (e *StageError) Unwrap() error { return e.Err }

// Stage wraps err with the stage name. A nil err stays nil.
func Stage(stage string, err error) error {
	if err == nil {
		return nil
	}
	return &StageError{Stage: stage, Err: err}
}

// ExitCode maps an error to the process exit status for its category.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}

	var (
		missing    *MissingInputError
		schema     *SchemaError
		record     *InvalidRecordError
		date       *InvalidDateError
		dup        *DuplicateKeyError
		unresolved *UnresolvedDimensionError
		persist    *PersistenceError
	)

	switch {
	case errors.As(err, &missing):
		return ExitMissingInput
	case errors.As(err, &schema):
		return ExitSchema
	case errors.As(err, &record), errors.As(err, &date):
		return ExitInvalidRecord
	case errors.As(err, &dup):
		return ExitDuplicateKey
	case errors.As(err, &unresolved):
		return ExitUnresolvedDimension
	case errors.As(err, &persist):
		return ExitPersistence
	default:
		return ExitGeneric
	}
}
