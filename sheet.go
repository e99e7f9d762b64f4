// Copyright 2016 - 2022 The excelize Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package ooxlsx

import "strings"

// CellRange is an inclusive rectangular range of cells, used for merges,
// autofilters, conditional-formatting scopes, and data-validation scopes.
type CellRange struct {
	FirstRow, FirstCol int
	LastRow, LastCol   int
}

// Normalized returns r with FirstRow<=LastRow and FirstCol<=LastCol.
func (r CellRange) Normalized() CellRange {
	if r.FirstRow > r.LastRow {
		r.FirstRow, r.LastRow = r.LastRow, r.FirstRow
	}
	if r.FirstCol > r.LastCol {
		r.FirstCol, r.LastCol = r.LastCol, r.FirstCol
	}
	return r
}

// Overlaps reports whether r and other share at least one cell.
func (r CellRange) Overlaps(other CellRange) bool {
	r, other = r.Normalized(), other.Normalized()
	return r.FirstRow <= other.LastRow && other.FirstRow <= r.LastRow &&
		r.FirstCol <= other.LastCol && other.FirstCol <= r.LastCol
}

// ColumnDimension describes display properties for a span of columns.
type ColumnDimension struct {
	FirstCol, LastCol int
	Width             float64
	Hidden            bool
	StyleHandle       StyleHandle
}

// RowDimension describes display properties for a single row.
type RowDimension struct {
	Height       float64
	Hidden       bool
	OutlineLevel int
}

// Hyperlink is a sheet-level hyperlink target, referenced from a cell's
// cold metadata by 1-based id.
type Hyperlink struct {
	Row, Col int
	Target   string
	Display  string
	Tooltip  string
	Internal bool // true for a same-workbook "location" reference
}

// Comment is a sheet-level cell comment, referenced the same way as
// Hyperlink.
type Comment struct {
	Row, Col int
	Author   string
	Text     string
}

// AutoFilter describes the autofilter range applied to a sheet.
type AutoFilter struct {
	Range CellRange
}

// ConditionalFormatRule is a single rule within a conditional-formatting
// scope. Type/Operator/Formula carry the raw OOXML vocabulary
// (cellIs/expression/colorScale, etc.) rather than a reinterpreted enum,
// since the source schema has many rule shapes and this library doesn't
// evaluate them.
type ConditionalFormatRule struct {
	Type       string
	Operator   string
	Formula    []string
	StyleDxfID int
	Priority   int
}

// ConditionalFormat binds a list of rules to a range.
type ConditionalFormat struct {
	Range CellRange
	Rules []ConditionalFormatRule
}

// DataValidation describes one data-validation rule over a range.
type DataValidation struct {
	Range        CellRange
	Type         string
	Operator     string
	Formula1     string
	Formula2     string
	AllowBlank   bool
	ShowErrorMsg bool
	ErrorTitle   string
	ErrorMessage string
}

// Table describes a structured table (ListObject) over a range.
type Table struct {
	Name        string
	Range       CellRange
	HeaderRow   bool
	StyleName   string
	ColumnNames []string
}

// PageSetup holds printer/page-layout settings preserved from the
// worksheet's pageSetup/pageMargins/headerFooter elements.
type PageSetup struct {
	Orientation string
	PaperSize   int
	FitToWidth  int
	FitToHeight int
	Margins     [6]float64 // left, right, top, bottom, header, footer
	Header      string
	Footer      string
}

// SheetView captures the handful of per-sheet view settings this library
// tracks: frozen panes, tab color, zoom and grid-line visibility. Sheet
// protection lives separately in SheetProtection.
type SheetView struct {
	FrozenRows, FrozenCols int
	TabColor               string
	ZoomScale              int
	ShowGridLines          bool
}

// SheetProtection mirrors the sheetProtection element's password-hash and
// capability flags. The hash is preserved verbatim; this library never
// computes or verifies it.
type SheetProtection struct {
	Enabled      bool
	PasswordHash string
	AlgorithmID  string
}

// Worksheet is one sheet of a Workbook: an identity, a sparse cell store,
// merge and dimension tables, and the optional collaborator tables.
type Worksheet struct {
	index     int
	name      string
	sheetID   int // internal OOXML sheet id used in workbook.xml/rels
	state     string // sheetStateVisible/Hidden/VeryHidden; "" means visible
	workbook  *Workbook
	Cells     *CellStore
	Merges    []CellRange
	Columns   []ColumnDimension
	Rows      map[int]RowDimension
	View      SheetView
	Protect   SheetProtection
	PageSetup PageSetup

	AutoFilter      *AutoFilter
	ConditionalFmts []ConditionalFormat
	Validations     []DataValidation
	Tables          []Table
	Hyperlinks      []Hyperlink
	Comments        []Comment
}

func newWorksheet(wb *Workbook, index int, name string, sheetID int) *Worksheet {
	return &Worksheet{
		index:    index,
		name:     name,
		sheetID:  sheetID,
		workbook: wb,
		Cells:    newCellStore(wb.strings),
		Rows:     make(map[int]RowDimension),
	}
}

// Index returns the sheet's 0-based position in the workbook.
func (s *Worksheet) Index() int { return s.index }

// Name returns the sheet's display name.
func (s *Worksheet) Name() string { return s.name }

// SheetID returns the internal OOXML sheet id used for relationship
// resolution; it is independent of display position.
func (s *Worksheet) SheetID() int { return s.sheetID }

// Visible reports whether the sheet is shown in the workbook's tab strip.
func (s *Worksheet) Visible() bool { return s.state == "" || s.state == sheetStateVisible }

// SetVisible toggles a sheet between visible and hidden. Hide never removes
// a sheet from the workbook; it only affects how Excel displays its tabs.
func (s *Worksheet) SetVisible(visible bool) {
	if visible {
		s.state = ""
		return
	}
	s.state = sheetStateHidden
}

// GetCell resolves an A1-style reference and returns the cell's view.
func (s *Worksheet) GetCell(ref string) (CellView, error) {
	col, row, err := CellNameToCoordinates(ref)
	if err != nil {
		return CellView{}, err
	}
	return s.Cells.Get(row, col)
}

// SetCell resolves an A1-style reference and sets the cell's value.
func (s *Worksheet) SetCell(ref string, v CellValue) error {
	col, row, err := CellNameToCoordinates(ref)
	if err != nil {
		return err
	}
	return s.Cells.SetValue(row, col, v)
}

// SetRow bulk-writes values into a row starting at column 1; empty values
// in the slice leave their column untouched.
func (s *Worksheet) SetRow(row int, values []CellValue) error {
	for i, v := range values {
		if v.Kind == CellKindEmpty {
			continue
		}
		if err := s.Cells.SetValue(row, i+1, v); err != nil {
			return err
		}
	}
	return nil
}

// GetRow bulk-reads a row's occupied cells into a dense slice indexed by
// column-1, sized to the row's last occupied column.
func (s *Worksheet) GetRow(row int) []CellView {
	var out []CellView
	s.Cells.IterRow(row, func(col int, v CellView) bool {
		for len(out) < col {
			out = append(out, CellView{})
		}
		out[col-1] = v
		return true
	})
	return out
}

// AddMergeCell merges the given range, failing with ErrInvalidFormat if it
// overlaps an existing merge; merged ranges stay pairwise disjoint.
func (s *Worksheet) AddMergeCell(r CellRange) error {
	r = r.Normalized()
	for _, existing := range s.Merges {
		if r.Overlaps(existing) {
			return ErrInvalidFormat
		}
	}
	s.Merges = append(s.Merges, r)
	return nil
}

// RemoveMergeCell removes the merge whose bounds equal the given range, if
// any; a merge that only overlaps or contains the range is kept.
func (s *Worksheet) RemoveMergeCell(r CellRange) {
	r = r.Normalized()
	out := s.Merges[:0]
	for _, m := range s.Merges {
		if m != r {
			out = append(out, m)
		}
	}
	s.Merges = out
}

// SetColWidth sets width/hidden for the column span [first,last], merging
// with any existing span exactly matching those bounds.
func (s *Worksheet) SetColWidth(first, last int, width float64, hidden bool) {
	for i := range s.Columns {
		if s.Columns[i].FirstCol == first && s.Columns[i].LastCol == last {
			s.Columns[i].Width = width
			s.Columns[i].Hidden = hidden
			return
		}
	}
	s.Columns = append(s.Columns, ColumnDimension{FirstCol: first, LastCol: last, Width: width, Hidden: hidden})
}

// SetRowHeight sets height/hidden/outline-level for a single row.
func (s *Worksheet) SetRowHeight(row int, height float64, hidden bool, outline int) {
	s.Rows[row] = RowDimension{Height: height, Hidden: hidden, OutlineLevel: outline}
}

// AddHyperlink appends a hyperlink and wires it to the target cell's cold
// metadata, returning the assigned 1-based id.
func (s *Worksheet) AddHyperlink(row, col int, target, display, tooltip string, internal bool) (int, error) {
	s.Hyperlinks = append(s.Hyperlinks, Hyperlink{Row: row, Col: col, Target: target, Display: display, Tooltip: tooltip, Internal: internal})
	id := len(s.Hyperlinks)
	return id, s.Cells.SetHyperlinkID(row, col, id)
}

// AddComment appends a comment and wires it to the target cell's cold
// metadata, returning the assigned 1-based id.
func (s *Worksheet) AddComment(row, col int, author, text string) (int, error) {
	s.Comments = append(s.Comments, Comment{Row: row, Col: col, Author: author, Text: text})
	id := len(s.Comments)
	return id, s.Cells.SetCommentID(row, col, id)
}

// SetRangeStyle applies a style handle to every cell in r, materializing
// records for cells that had no value.
func (s *Worksheet) SetRangeStyle(r CellRange, h StyleHandle) error {
	r = r.Normalized()
	for row := r.FirstRow; row <= r.LastRow; row++ {
		for col := r.FirstCol; col <= r.LastCol; col++ {
			if err := s.Cells.SetStyle(row, col, h); err != nil {
				return err
			}
		}
	}
	return nil
}

// Dimension returns the used-range A1 reference: the minimum bounding
// rectangle of occupied cells, or "A1" for an empty sheet.
func (s *Worksheet) Dimension() string {
	rows := s.Cells.RowCount()
	cols := s.Cells.ColCount()
	if rows == 0 || cols == 0 {
		return "A1"
	}
	minRow, minCol := rows, cols
	s.Cells.IterSorted(func(row, col int, _ CellView) bool {
		if row < minRow {
			minRow = row
		}
		if col < minCol {
			minCol = col
		}
		return true
	})
	start, _ := CoordinatesToCellName(minRow, minCol)
	end, _ := CoordinatesToCellName(rows, cols)
	if start == end {
		return start
	}
	return start + ":" + end
}

// validateSheetName enforces the workbook naming rules: non-empty, <=31
// characters, and none of : \ / ? * [ ].
func validateSheetName(name string) error {
	if len(name) == 0 {
		return ErrInvalidFormat
	}
	if len([]rune(name)) > 31 {
		return ErrInvalidFormat
	}
	if strings.ContainsAny(name, ":\\/?*[]") {
		return ErrInvalidFormat
	}
	return nil
}
