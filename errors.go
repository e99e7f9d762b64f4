// Copyright 2016 - 2022 The excelize Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package ooxlsx

import "fmt"

// Sentinel errors making up the closed error taxonomy. Errors the package
// classifies itself satisfy errors.Is against one of these, either directly
// or by wrapping. Failures of the caller's file system, reader or writer,
// ZIP entry decompression errors, YAML decoding errors from LoadPolicyFile,
// and the plain errors of ColumnNameToNumber, ColumnNumberToName and
// SerialToTime are returned without a sentinel.
var (
	// ErrContainer is returned for a malformed ZIP central directory or
	// entry.
	ErrContainer = fmt.Errorf("ooxlsx: malformed container")
	// ErrXML is returned for malformed XML tokens or encoding errors.
	ErrXML = fmt.Errorf("ooxlsx: malformed XML")
	// ErrInvalidCoordinate is returned for an out-of-range or unparseable
	// cell address.
	ErrInvalidCoordinate = fmt.Errorf("ooxlsx: invalid coordinate")
	// ErrWorksheetNotFound is returned by a lookup with no matching sheet.
	ErrWorksheetNotFound = fmt.Errorf("ooxlsx: worksheet not found")
	// ErrWorksheetAlreadyExists is returned on a sheet-name collision under
	// case-fold equality.
	ErrWorksheetAlreadyExists = fmt.Errorf("ooxlsx: worksheet already exists")
	// ErrNoWorksheets is returned when saving a workbook with zero sheets.
	ErrNoWorksheets = fmt.Errorf("ooxlsx: workbook has no worksheets")
	// ErrInvalidFormat is returned for structurally well-formed but
	// semantically invalid OOXML: missing required attributes, dangling
	// references, encrypted containers, duplicate internal sheet ids.
	ErrInvalidFormat = fmt.Errorf("ooxlsx: invalid OOXML structure")
)

// CoordinateError reports a failure to parse or format a cell coordinate.
type CoordinateError struct {
	Input string
	Err   error
}

func (e *CoordinateError) Error() string {
	return fmt.Sprintf("ooxlsx: invalid coordinate %q: %v", e.Input, e.Err)
}

func (e *CoordinateError) Unwrap() error { return ErrInvalidCoordinate }

func newCoordinateError(input string, err error) *CoordinateError {
	return &CoordinateError{Input: input, Err: err}
}

// newXMLError tags a decoder failure so callers can distinguish malformed
// XML (errors.Is ErrXML) from semantically invalid but well-formed content.
func newXMLError(err error) error {
	return fmt.Errorf("%w: %v", ErrXML, err)
}

// ParseError is the catch-all for recoverable parse failures. It carries
// the archive part name and, where known, the byte offset of the failure.
type ParseError struct {
	Part   string
	Offset int64
	Err    error
}

func (e *ParseError) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("ooxlsx: parse error in %s at offset %d: %v", e.Part, e.Offset, e.Err)
	}
	return fmt.Sprintf("ooxlsx: parse error in %s: %v", e.Part, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

func newParseError(part string, offset int64, err error) *ParseError {
	return &ParseError{Part: part, Offset: offset, Err: err}
}

// WorksheetError reports a lookup or creation failure for a named sheet.
type WorksheetError struct {
	Name string
	Err  error
}

func (e *WorksheetError) Error() string {
	return fmt.Sprintf("ooxlsx: worksheet %q: %v", e.Name, e.Err)
}

func (e *WorksheetError) Unwrap() error { return e.Err }

func newWorksheetNotFoundError(name string) *WorksheetError {
	return &WorksheetError{Name: name, Err: ErrWorksheetNotFound}
}

func newWorksheetExistsError(name string) *WorksheetError {
	return &WorksheetError{Name: name, Err: ErrWorksheetAlreadyExists}
}
