// Copyright 2016 - 2022 The excelize Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package ooxlsx

// CellKind tags the value variant held by a cell record.
type CellKind uint8

// Cell value kinds. CellKindEmpty cells are only materialized in the store
// when they carry non-default style or metadata.
const (
	CellKindEmpty CellKind = iota
	CellKindNumber
	CellKindBool
	CellKindString
	CellKindFormula
	CellKindDate
	CellKindError
)

// cellCold holds the per-cell metadata that is rare in practice: an
// explicit number-format override, a preserved raw data-type hint (the
// original t= attribute, kept when it can't be inferred from Kind), a
// cached formula result, and hyperlink/comment ids. Splitting this out of
// the hot record keeps the common case cheap: most cells never populate
// it, so they pay only for the hot fields below.
type cellCold struct {
	numFmtOverride int // 0 means "no override"
	dataTypeHint   string
	hyperlinkID    int // 0 means none; ids are 1-based, see sheet hyperlink table
	commentID      int // 0 means none
	cachedResult   *float64
}

// CellRecord is the in-memory representation of one occupied cell. The hot
// fields (Kind, Num, Str, Style) cover the overwhelming majority of cells;
// cold is nil unless the cell needs one of the rare extras.
type CellRecord struct {
	Kind  CellKind
	Num   float64      // Number, Date (serial) value
	Str   StringHandle // String, Formula-text, Error-text handle
	Style StyleHandle
	cold  *cellCold
}

func (r *CellRecord) coldOrNil() *cellCold { return r.cold }

func (r *CellRecord) ensureCold() *cellCold {
	if r.cold == nil {
		r.cold = &cellCold{}
	}
	return r.cold
}

// isDefault reports whether the record is indistinguishable from an absent
// cell: empty kind, default style, and no metadata. The cell store deletes
// records that become default rather than retaining empty placeholders.
func (r *CellRecord) isDefault() bool {
	return r.Kind == CellKindEmpty && r.Style == DefaultStyle && r.cold == nil
}

// CellValue is the value half of a cell, independent of storage. It is
// what callers pass to SetValue and receive (resolved) from CellView.
type CellValue struct {
	Kind CellKind
	Num  float64
	Str  string // String content, formula text, or error text
	Bool bool

	// inline forces a string to be written as an inline literal instead of
	// a shared-string reference. Only the streaming writer honors it; the
	// in-memory save path decides inline-vs-shared from the census.
	inline bool
}

// NumberValue builds a CellValue holding a number.
func NumberValue(v float64) CellValue { return CellValue{Kind: CellKindNumber, Num: v} }

// BoolValue builds a CellValue holding a boolean.
func BoolValue(v bool) CellValue { return CellValue{Kind: CellKindBool, Bool: v} }

// StringValue builds a CellValue holding a string (shared or inline; the
// cell store decides interning policy at write time).
func StringValue(v string) CellValue { return CellValue{Kind: CellKindString, Str: v} }

// InlineStringValue builds a CellValue holding a string that the streaming
// writer emits inline rather than interning into the shared-string table,
// keeping the writer's memory bounded by a single row.
func InlineStringValue(v string) CellValue {
	return CellValue{Kind: CellKindString, Str: v, inline: true}
}

// FormulaValue builds a CellValue holding formula text. It carries no
// cached result; one is attached separately with (*CellStore).SetCachedResult.
func FormulaValue(formula string) CellValue { return CellValue{Kind: CellKindFormula, Str: formula} }

// DateValue builds a CellValue holding a typed date, stored as a serial
// day count relative to the workbook's date system.
func DateValue(serial float64) CellValue { return CellValue{Kind: CellKindDate, Num: serial} }

// ErrorValue builds a CellValue holding a preserved formula-error token
// (e.g. "#DIV/0!").
func ErrorValue(token string) CellValue { return CellValue{Kind: CellKindError, Str: token} }

// CellView is a read-only, fully-resolved snapshot of one cell returned by
// (*CellStore).Get. It always resolves, even for absent cells (default
// style, CellKindEmpty, zero value).
type CellView struct {
	Kind           CellKind
	Num            float64
	Str            string
	Bool           bool
	Style          StyleHandle
	NumFmtOverride int
	DataTypeHint   string
	HyperlinkID    int
	CommentID      int
	CachedResult   *float64
	Occupied       bool
}
