// Copyright 2016 - 2022 The excelize Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package ooxlsx

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const worksheetOpenTag = `<worksheet xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main"><sheetData>`

// StreamWriter produces a valid XLSX row by row while holding no workbook
// in memory. Usage discipline: create, declare a sheet, push its rows in
// strictly increasing row order, declare the next sheet (which finalizes
// the previous one), and Close. Row XML is compressed straight into the
// archive as it arrives; only the shared-string table accumulates, and
// callers needing bounded memory can sidestep it with InlineStringValue.
type StreamWriter struct {
	zw       *zipWriter
	finished bool

	sheetNames []string
	current    *StreamSheet

	// Incremental shared-string pool. Unlike the in-memory save path there
	// is no pre-save census: the first sight of a string fixes its index,
	// because the cell referencing it has already been flushed downstream.
	sstIndex map[string]int
	sstOrder []string
}

// StreamSheet is the append handle for one declared sheet. It becomes
// unusable once the next sheet is declared or the writer is closed.
type StreamSheet struct {
	sw      *StreamWriter
	name    string
	w       io.Writer
	lastRow int
	closed  bool
}

// Name returns the sheet's display name.
func (s *StreamSheet) Name() string { return s.name }

// NewStreamWriter starts streaming an XLSX package to w. The policy's
// compression level applies to every archive entry; the fixed leading parts
// (styles) are written immediately.
func NewStreamWriter(w io.Writer, policy Policy) (*StreamWriter, error) {
	sw := &StreamWriter{
		zw:       newZipWriter(w, policy.Compression),
		sstIndex: make(map[string]int),
	}
	if err := sw.zw.WriteBlob("xl/styles.xml", writeStylesPart(NewStyleCatalog())); err != nil {
		return nil, err
	}
	return sw, nil
}

// AddSheet declares the next worksheet and returns its append handle. The
// previous sheet, if any, is finalized first: a sheet's rows cannot be
// interleaved with another's because each worksheet part streams into its
// own archive entry.
func (sw *StreamWriter) AddSheet(name string) (*StreamSheet, error) {
	if sw.finished {
		return nil, ErrInvalidFormat
	}
	if err := validateSheetName(name); err != nil {
		return nil, err
	}
	for _, existing := range sw.sheetNames {
		if caseFold(existing) == caseFold(name) {
			return nil, newWorksheetExistsError(name)
		}
	}
	if err := sw.closeCurrentSheet(); err != nil {
		return nil, err
	}
	partName := fmt.Sprintf("xl/worksheets/sheet%d.xml", len(sw.sheetNames)+1)
	w, err := sw.zw.Create(partName)
	if err != nil {
		return nil, err
	}
	if _, err := io.WriteString(w, xml.Header+worksheetOpenTag); err != nil {
		return nil, err
	}
	sw.sheetNames = append(sw.sheetNames, name)
	sw.current = &StreamSheet{sw: sw, name: name, w: w}
	return sw.current, nil
}

func (sw *StreamWriter) closeCurrentSheet() error {
	if sw.current == nil {
		return nil
	}
	_, err := io.WriteString(sw.current.w, "</sheetData></worksheet>")
	sw.current.closed = true
	sw.current = nil
	return err
}

// WriteRow appends one row at the given 1-based index. Rows must arrive in
// strictly increasing index order; gaps are fine (sparse rows), going
// backwards or repeating an index fails with ErrInvalidFormat, as does
// writing to a sheet that a later AddSheet or Close already finalized.
func (s *StreamSheet) WriteRow(row int, cells []CellValue) error {
	if s.closed || s.sw.finished {
		return ErrInvalidFormat
	}
	if row <= s.lastRow {
		return fmt.Errorf("%w: row %d arrived after row %d", ErrInvalidFormat, row, s.lastRow)
	}
	if row < 1 || row > MaxRow {
		return newCoordinateError(itoa(row), errCoordOutOfRange)
	}
	if len(cells) > MaxCol {
		return newCoordinateError(itoa(len(cells)), errCoordOutOfRange)
	}
	var b strings.Builder
	b.WriteString(`<row r="`)
	b.WriteString(itoa(row))
	b.WriteString(`">`)
	for i, v := range cells {
		s.sw.appendStreamCell(&b, row, i+1, v)
	}
	b.WriteString("</row>")
	s.lastRow = row
	_, err := io.WriteString(s.w, b.String())
	return err
}

func (sw *StreamWriter) appendStreamCell(b *strings.Builder, row, col int, v CellValue) {
	if v.Kind == CellKindEmpty {
		return
	}
	ref, _ := CoordinatesToCellName(row, col)
	b.WriteString(`<c r="`)
	b.WriteString(ref)
	b.WriteString(`"`)
	switch v.Kind {
	case CellKindNumber, CellKindDate:
		b.WriteString(`><v>`)
		b.WriteString(strconv.FormatFloat(v.Num, 'g', -1, 64))
		b.WriteString(`</v></c>`)
	case CellKindBool:
		b.WriteString(` t="b"><v>`)
		if v.Bool {
			b.WriteString("1")
		} else {
			b.WriteString("0")
		}
		b.WriteString(`</v></c>`)
	case CellKindString:
		if v.inline {
			b.WriteString(` t="inlineStr"><is><t>`)
			xml.EscapeText(b, []byte(v.Str))
			b.WriteString(`</t></is></c>`)
		} else {
			b.WriteString(` t="s"><v>`)
			b.WriteString(itoa(sw.internStreamString(v.Str)))
			b.WriteString(`</v></c>`)
		}
	case CellKindFormula:
		b.WriteString(`><f>`)
		xml.EscapeText(b, []byte(v.Str))
		b.WriteString(`</f></c>`)
	case CellKindError:
		b.WriteString(` t="e"><v>`)
		xml.EscapeText(b, []byte(v.Str))
		b.WriteString(`</v></c>`)
	}
}

func (sw *StreamWriter) internStreamString(s string) int {
	if idx, ok := sw.sstIndex[s]; ok {
		return idx
	}
	idx := len(sw.sstOrder)
	sw.sstIndex[s] = idx
	sw.sstOrder = append(sw.sstOrder, s)
	return idx
}

// Close finalizes the archive: the in-flight sheet, the shared-string
// table accumulated while streaming, the workbook wiring parts and the
// central directory. A writer with no declared sheets fails with
// ErrNoWorksheets, matching the in-memory save path.
func (sw *StreamWriter) Close() error {
	if sw.finished {
		return ErrInvalidFormat
	}
	if len(sw.sheetNames) == 0 {
		return ErrNoWorksheets
	}
	if err := sw.closeCurrentSheet(); err != nil {
		return err
	}
	sw.finished = true

	parts := []namedPart{
		{"xl/sharedStrings.xml", writeSharedStrings(sw.sstOrder, nil, nil)},
		{"xl/workbook.xml", writeStreamWorkbookPart(sw.sheetNames)},
		{"xl/_rels/workbook.xml.rels", writeWorkbookRels(len(sw.sheetNames))},
		{"_rels/.rels", writeRootRels()},
		{"[Content_Types].xml", writeContentTypes(len(sw.sheetNames), 0)},
		{"docProps/app.xml", writeAppProperties(sw.sheetNames)},
		{"docProps/core.xml", writeCoreProperties("", "", "")},
	}
	for _, p := range parts {
		if err := sw.zw.WriteBlob(p.name, p.blob); err != nil {
			return err
		}
	}
	return sw.zw.Close()
}

// writeStreamWorkbookPart serializes xl/workbook.xml for a streamed
// workbook, where sheet ids coincide with declaration order.
func writeStreamWorkbookPart(names []string) []byte {
	x := xlsxWorkbook{
		BookViews: xlsxBookViews{WorkBookView: []xlsxWorkBookView{{}}},
		CalcPr:    xlsxCalcPr{CalcID: "0"},
	}
	for i, name := range names {
		x.Sheets.Sheet = append(x.Sheets.Sheet, xlsxSheet{
			Name:    name,
			SheetID: i + 1,
			RID:     "rId" + strconv.Itoa(i+1),
		})
	}
	out, _ := xml.Marshal(x)
	return append([]byte(xml.Header), out...)
}
