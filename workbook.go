// Copyright 2016 - 2022 The excelize Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package ooxlsx

import (
	"strings"

	"github.com/mohae/deepcopy"
)

// CompressionLevel selects the DEFLATE level used when writing ZIP entries.
type CompressionLevel int

// Compression levels the ZIP container layer accepts.
const (
	CompressionNone    CompressionLevel = 0
	CompressionFast    CompressionLevel = 1
	CompressionDefault CompressionLevel = 6
	CompressionBest    CompressionLevel = 9
)

// DefinedName is a workbook- or sheet-scoped named range. RefersTo is kept
// as opaque text when it cannot be parsed as a simple range reference.
type DefinedName struct {
	Name     string
	Sheet    string // empty for a workbook-scoped name
	RefersTo string
}

// Workbook is the ownership root for all worksheets, styles, strings and
// defined names in one XLSX document.
type Workbook struct {
	sheets       []*Worksheet
	sheetsByName map[string]*Worksheet // keyed by Unicode case-fold
	DefinedNames []DefinedName
	Styles       *StyleCatalog
	Policy       Policy
	Date1904     bool

	strings *stringPool

	// Rich-text runs preserved from the loaded sharedStrings.xml, keyed by
	// original table index, plus the content->index map the save path uses
	// to re-attach them. Cells only ever see the flattened plain text.
	richSpans   richTextSpans
	richIndexOf map[string]int
}

// NewWorkbook returns an empty workbook with a default style catalog and
// string pool and no worksheets; callers must AddSheet before Save.
func NewWorkbook() *Workbook {
	return &Workbook{
		sheetsByName: make(map[string]*Worksheet),
		Styles:       NewStyleCatalog(),
		Policy:       DefaultPolicy(),
		strings:      newStringPool(),
	}
}

// Sheets returns the worksheets in workbook order. The returned slice must
// not be mutated by the caller.
func (wb *Workbook) Sheets() []*Worksheet { return wb.sheets }

// SheetNames returns the display names of every sheet, in workbook order.
func (wb *Workbook) SheetNames() []string {
	names := make([]string, len(wb.sheets))
	for i, s := range wb.sheets {
		names[i] = s.name
	}
	return names
}

func caseFold(name string) string { return strings.ToUpper(name) }

// AddSheet appends a new, empty worksheet named name, failing with
// ErrWorksheetAlreadyExists on a case-fold collision or ErrInvalidFormat on
// an invalid name.
func (wb *Workbook) AddSheet(name string) (*Worksheet, error) {
	if err := validateSheetName(name); err != nil {
		return nil, err
	}
	fold := caseFold(name)
	if _, exists := wb.sheetsByName[fold]; exists {
		return nil, newWorksheetExistsError(name)
	}
	sheetID := wb.nextSheetID()
	s := newWorksheet(wb, len(wb.sheets), name, sheetID)
	wb.sheets = append(wb.sheets, s)
	wb.sheetsByName[fold] = s
	return s, nil
}

func (wb *Workbook) nextSheetID() int {
	max := 0
	for _, s := range wb.sheets {
		if s.sheetID > max {
			max = s.sheetID
		}
	}
	return max + 1
}

// GetSheet returns the worksheet with the given display name (case-fold
// match), or ErrWorksheetNotFound.
func (wb *Workbook) GetSheet(name string) (*Worksheet, error) {
	s, ok := wb.sheetsByName[caseFold(name)]
	if !ok {
		return nil, newWorksheetNotFoundError(name)
	}
	return s, nil
}

// RemoveSheet deletes the named worksheet and reindexes the remaining
// sheets' positions.
func (wb *Workbook) RemoveSheet(name string) error {
	fold := caseFold(name)
	s, ok := wb.sheetsByName[fold]
	if !ok {
		return newWorksheetNotFoundError(name)
	}
	delete(wb.sheetsByName, fold)
	out := wb.sheets[:0]
	for _, sh := range wb.sheets {
		if sh != s {
			out = append(out, sh)
		}
	}
	wb.sheets = out
	for i, sh := range wb.sheets {
		sh.index = i
	}
	return nil
}

// RenameSheet renames oldName to newName, failing with
// ErrWorksheetNotFound or ErrWorksheetAlreadyExists as appropriate.
func (wb *Workbook) RenameSheet(oldName, newName string) error {
	s, ok := wb.sheetsByName[caseFold(oldName)]
	if !ok {
		return newWorksheetNotFoundError(oldName)
	}
	if err := validateSheetName(newName); err != nil {
		return err
	}
	newFold := caseFold(newName)
	if newFold != caseFold(oldName) {
		if _, exists := wb.sheetsByName[newFold]; exists {
			return newWorksheetExistsError(newName)
		}
	}
	delete(wb.sheetsByName, caseFold(oldName))
	s.name = newName
	wb.sheetsByName[newFold] = s
	return nil
}

// CopySheet duplicates the named sheet under newName, deep-copying its
// dimension tables and auxiliary tables and copying each cell's value and
// style, so mutating the copy never affects the original. Per-cell metadata
// beyond value and style (hyperlink and comment ids, number-format
// overrides, data-type hints, cached formula results) is not copied. Styles
// and interned strings are shared by handle, since both are workbook-wide
// and content-addressed.
func (wb *Workbook) CopySheet(name, newName string) (*Worksheet, error) {
	src, err := wb.GetSheet(name)
	if err != nil {
		return nil, err
	}
	dst, err := wb.AddSheet(newName)
	if err != nil {
		return nil, err
	}
	dst.Merges = deepcopy.Copy(src.Merges).([]CellRange)
	dst.Columns = deepcopy.Copy(src.Columns).([]ColumnDimension)
	dst.Rows = deepcopy.Copy(src.Rows).(map[int]RowDimension)
	dst.View = src.View
	dst.Protect = src.Protect
	dst.PageSetup = src.PageSetup
	dst.Hyperlinks = deepcopy.Copy(src.Hyperlinks).([]Hyperlink)
	dst.Comments = deepcopy.Copy(src.Comments).([]Comment)
	dst.Validations = deepcopy.Copy(src.Validations).([]DataValidation)
	dst.Tables = deepcopy.Copy(src.Tables).([]Table)
	dst.ConditionalFmts = deepcopy.Copy(src.ConditionalFmts).([]ConditionalFormat)
	if src.AutoFilter != nil {
		af := *src.AutoFilter
		dst.AutoFilter = &af
	}
	src.Cells.IterSorted(func(row, col int, v CellView) bool {
		_ = dst.Cells.SetValue(row, col, cellViewToValue(v))
		_ = dst.Cells.SetStyle(row, col, v.Style)
		return true
	})
	return dst, nil
}

func cellViewToValue(v CellView) CellValue {
	switch v.Kind {
	case CellKindNumber:
		return NumberValue(v.Num)
	case CellKindBool:
		return BoolValue(v.Bool)
	case CellKindString:
		return StringValue(v.Str)
	case CellKindFormula:
		return FormulaValue(v.Str)
	case CellKindDate:
		return DateValue(v.Num)
	case CellKindError:
		return ErrorValue(v.Str)
	default:
		return CellValue{Kind: CellKindEmpty}
	}
}

// AddDefinedName registers a defined name, workbook-scoped when sheet=="".
func (wb *Workbook) AddDefinedName(name, sheet, refersTo string) {
	wb.DefinedNames = append(wb.DefinedNames, DefinedName{Name: name, Sheet: sheet, RefersTo: refersTo})
}

// ResolveDefinedName returns the first defined name matching name,
// preferring a sheet-scoped match over a workbook-scoped one.
func (wb *Workbook) ResolveDefinedName(name string) (DefinedName, bool) {
	var workbookScoped *DefinedName
	for i := range wb.DefinedNames {
		dn := &wb.DefinedNames[i]
		if dn.Name != name {
			continue
		}
		if dn.Sheet != "" {
			return *dn, true
		}
		if workbookScoped == nil {
			workbookScoped = dn
		}
	}
	if workbookScoped != nil {
		return *workbookScoped, true
	}
	return DefinedName{}, false
}
