// Copyright 2016 - 2022 The excelize Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package ooxlsx

import (
	"archive/zip"
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildTestArchive assembles an in-memory XLSX package from raw part
// contents, for load tests that need precise control over the XML.
func buildTestArchive(t *testing.T, parts map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range parts {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func minimalParts(sheetXML string) map[string]string {
	return map[string]string{
		"_rels/.rels": `<?xml version="1.0"?><Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"><Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="xl/workbook.xml"/></Relationships>`,
		"xl/workbook.xml": `<?xml version="1.0"?><workbook xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships"><sheets><sheet name="Sheet1" sheetId="1" r:id="rId1"/></sheets></workbook>`,
		"xl/_rels/workbook.xml.rels": `<?xml version="1.0"?><Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"><Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/worksheet" Target="worksheets/sheet1.xml"/></Relationships>`,
		"xl/worksheets/sheet1.xml":   sheetXML,
	}
}

func readArchivePart(t *testing.T, data []byte, name string) string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	for _, f := range zr.File {
		if f.Name == name {
			rc, err := f.Open()
			require.NoError(t, err)
			defer rc.Close()
			content, err := io.ReadAll(rc)
			require.NoError(t, err)
			return string(content)
		}
	}
	t.Fatalf("part %s not found in archive", name)
	return ""
}

func TestRoundTripBasicValues(t *testing.T) {
	wb := NewWorkbook()
	sh, err := wb.AddSheet("S")
	require.NoError(t, err)
	require.NoError(t, sh.SetCell("A1", StringValue("Hello")))
	require.NoError(t, sh.SetCell("B2", NumberValue(42.5)))
	require.NoError(t, sh.SetCell("C3", BoolValue(true)))

	data, err := SaveBytes(wb)
	require.NoError(t, err)

	got, err := LoadBytes(data)
	require.NoError(t, err)
	assert.Equal(t, []string{"S"}, got.SheetNames())

	gs, err := got.GetSheet("S")
	require.NoError(t, err)

	v, err := gs.GetCell("A1")
	require.NoError(t, err)
	assert.Equal(t, CellKindString, v.Kind)
	assert.Equal(t, "Hello", v.Str)

	v, err = gs.GetCell("B2")
	require.NoError(t, err)
	assert.Equal(t, 42.5, v.Num)

	v, err = gs.GetCell("C3")
	require.NoError(t, err)
	assert.True(t, v.Bool)

	assert.Equal(t, 3, gs.Cells.Len())
}

func TestRoundTripDefinedName(t *testing.T) {
	wb := NewWorkbook()
	_, err := wb.AddSheet("Alpha")
	require.NoError(t, err)
	_, err = wb.AddSheet("Beta")
	require.NoError(t, err)
	wb.AddDefinedName("X", "Beta", "Beta!$B$2")

	data, err := SaveBytes(wb)
	require.NoError(t, err)
	got, err := LoadBytes(data)
	require.NoError(t, err)

	dn, ok := got.ResolveDefinedName("X")
	require.True(t, ok)
	assert.Equal(t, "Beta", dn.Sheet)
	assert.Equal(t, "Beta!$B$2", dn.RefersTo)
}

func TestRoundTripMergeAndBoldStyle(t *testing.T) {
	wb := NewWorkbook()
	sh, err := wb.AddSheet("Sheet1")
	require.NoError(t, err)
	require.NoError(t, sh.SetCell("B2", StringValue("Title")))
	h := wb.Styles.AddStyle(&Style{Font: &Font{Bold: true}})
	require.NoError(t, sh.Cells.SetStyle(2, 2, h))
	require.NoError(t, sh.AddMergeCell(CellRange{FirstRow: 2, FirstCol: 2, LastRow: 4, LastCol: 4}))

	data, err := SaveBytes(wb)
	require.NoError(t, err)
	got, err := LoadBytes(data)
	require.NoError(t, err)

	gs, err := got.GetSheet("Sheet1")
	require.NoError(t, err)
	require.Len(t, gs.Merges, 1)
	assert.Equal(t, CellRange{FirstRow: 2, FirstCol: 2, LastRow: 4, LastCol: 4}, gs.Merges[0])

	v, err := gs.GetCell("B2")
	require.NoError(t, err)
	assert.Equal(t, "Title", v.Str)

	view, ok := got.Styles.Lookup(v.Style)
	require.True(t, ok)
	require.NotNil(t, view.Font)
	assert.True(t, view.Font.Bold)

	// B2 is the only occupied cell inside the merged range.
	count := 0
	gs.Cells.IterRange(2, 2, 4, 4, func(row, col int, _ CellView) bool {
		count++
		return true
	})
	assert.Equal(t, 1, count)
}

func TestLoadSharedFormulaTranslation(t *testing.T) {
	sheetXML := `<?xml version="1.0"?><worksheet xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main"><sheetData>` +
		`<row r="2"><c r="C2"><f t="shared" ref="C2:C5" si="0">A2+B2</f><v>0</v></c></row>` +
		`<row r="3"><c r="C3"><f t="shared" si="0"/><v>0</v></c></row>` +
		`<row r="4"><c r="C4"><f t="shared" si="0"/><v>0</v></c></row>` +
		`<row r="5"><c r="C5"><f t="shared" si="0"/><v>0</v></c></row>` +
		`</sheetData></worksheet>`
	data := buildTestArchive(t, minimalParts(sheetXML))

	wb, err := LoadBytes(data)
	require.NoError(t, err)
	sh, err := wb.GetSheet("Sheet1")
	require.NoError(t, err)

	for row, want := range map[int]string{2: "A2+B2", 3: "A3+B3", 4: "A4+B4", 5: "A5+B5"} {
		v, err := sh.Cells.Get(row, 3)
		require.NoError(t, err)
		assert.Equal(t, CellKindFormula, v.Kind, "row %d", row)
		assert.Equal(t, want, v.Str, "row %d", row)
	}
}

func TestLoadSharedFormulaWithoutMasterFails(t *testing.T) {
	sheetXML := `<?xml version="1.0"?><worksheet xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main"><sheetData>` +
		`<row r="3"><c r="C3"><f t="shared" si="7"/></c></row>` +
		`</sheetData></worksheet>`
	data := buildTestArchive(t, minimalParts(sheetXML))

	_, err := LoadBytes(data)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidFormat))
}

func TestLoadCorruptArchiveFailsWithContainer(t *testing.T) {
	wb := NewWorkbook()
	_, err := wb.AddSheet("S")
	require.NoError(t, err)
	data, err := SaveBytes(wb)
	require.NoError(t, err)

	truncated := data[:len(data)-20]
	_, err = LoadBytes(truncated)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrContainer))
}

func TestLoadMalformedCoordinateNamesPartAndOffset(t *testing.T) {
	sheetXML := `<?xml version="1.0"?><worksheet xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main"><sheetData>` +
		`<row r="1"><c r="ZZZ0"><v>1</v></c></row>` +
		`</sheetData></worksheet>`
	data := buildTestArchive(t, minimalParts(sheetXML))

	_, err := LoadBytes(data)
	require.Error(t, err)
	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "xl/worksheets/sheet1.xml", pe.Part)
	assert.Greater(t, pe.Offset, int64(0))
}

func TestLoadDuplicateSheetIDFails(t *testing.T) {
	parts := minimalParts(`<?xml version="1.0"?><worksheet xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main"><sheetData/></worksheet>`)
	parts["xl/workbook.xml"] = `<?xml version="1.0"?><workbook xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships"><sheets><sheet name="A" sheetId="1" r:id="rId1"/><sheet name="B" sheetId="1" r:id="rId1"/></sheets></workbook>`
	data := buildTestArchive(t, parts)

	_, err := LoadBytes(data)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidFormat))
}

func TestSaveEmptyWorkbookFails(t *testing.T) {
	wb := NewWorkbook()
	_, err := SaveBytes(wb)
	assert.ErrorIs(t, err, ErrNoWorksheets)
}

func TestSaveWriter(t *testing.T) {
	wb := NewWorkbook()
	_, err := wb.AddSheet("S")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, SaveWriter(wb, &buf))
	got, err := LoadBytes(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, []string{"S"}, got.SheetNames())
}

func TestSaveEmptySheetWritesDimensionA1(t *testing.T) {
	wb := NewWorkbook()
	_, err := wb.AddSheet("Empty")
	require.NoError(t, err)

	data, err := SaveBytes(wb)
	require.NoError(t, err)
	sheetXML := readArchivePart(t, data, "xl/worksheets/sheet1.xml")
	assert.Contains(t, sheetXML, `<dimension ref="A1"`)
}

func TestSaveSharedStringCensus(t *testing.T) {
	wb := NewWorkbook()
	sh, err := wb.AddSheet("S")
	require.NoError(t, err)
	// "twice" is referenced from two cells and belongs in the shared table;
	// "once" is a singleton and must be written inline.
	require.NoError(t, sh.SetCell("A1", StringValue("twice")))
	require.NoError(t, sh.SetCell("A2", StringValue("twice")))
	require.NoError(t, sh.SetCell("A3", StringValue("once")))

	data, err := SaveBytes(wb)
	require.NoError(t, err)

	sst := readArchivePart(t, data, "xl/sharedStrings.xml")
	assert.Equal(t, 1, strings.Count(sst, "<si>"))
	assert.Contains(t, sst, "twice")
	assert.NotContains(t, sst, "once")

	sheetXML := readArchivePart(t, data, "xl/worksheets/sheet1.xml")
	assert.Contains(t, sheetXML, `t="inlineStr"`)

	// The census decision is invisible after a reload.
	got, err := LoadBytes(data)
	require.NoError(t, err)
	gs, err := got.GetSheet("S")
	require.NoError(t, err)
	for ref, want := range map[string]string{"A1": "twice", "A2": "twice", "A3": "once"} {
		v, err := gs.GetCell(ref)
		require.NoError(t, err)
		assert.Equal(t, want, v.Str, ref)
	}
}

func TestRoundTripModelEquality(t *testing.T) {
	wb := NewWorkbook()
	sh, err := wb.AddSheet("Data")
	require.NoError(t, err)
	require.NoError(t, sh.SetCell("A1", StringValue("x")))
	require.NoError(t, sh.SetCell("B1", StringValue("x")))
	require.NoError(t, sh.SetCell("C2", NumberValue(3.14)))
	require.NoError(t, sh.SetCell("D3", FormulaValue("A1&B1")))
	require.NoError(t, sh.SetCell("E4", ErrorValue("#DIV/0!")))
	sh.SetColWidth(2, 3, 17.5, false)
	sh.SetRowHeight(4, 28, false, 0)

	first, err := SaveBytes(wb)
	require.NoError(t, err)
	mid, err := LoadBytes(first)
	require.NoError(t, err)
	second, err := SaveBytes(mid)
	require.NoError(t, err)
	final, err := LoadBytes(second)
	require.NoError(t, err)

	a, err := mid.GetSheet("Data")
	require.NoError(t, err)
	b, err := final.GetSheet("Data")
	require.NoError(t, err)
	require.Equal(t, a.Cells.Len(), b.Cells.Len())
	a.Cells.IterSorted(func(row, col int, want CellView) bool {
		got, err := b.Cells.Get(row, col)
		require.NoError(t, err)
		assert.Equal(t, want.Kind, got.Kind)
		assert.Equal(t, want.Str, got.Str)
		assert.Equal(t, want.Num, got.Num)
		return true
	})
	assert.Equal(t, a.Columns, b.Columns)
	assert.Equal(t, a.Rows, b.Rows)
}

func TestRoundTripHyperlinksAndTables(t *testing.T) {
	wb := NewWorkbook()
	sh, err := wb.AddSheet("S")
	require.NoError(t, err)
	require.NoError(t, sh.SetCell("A1", StringValue("link")))
	_, err = sh.AddHyperlink(1, 1, "https://example.com/", "example", "", false)
	require.NoError(t, err)
	sh.Tables = append(sh.Tables, Table{
		Name:        "Sales",
		Range:       CellRange{FirstRow: 1, FirstCol: 1, LastRow: 4, LastCol: 2},
		HeaderRow:   true,
		ColumnNames: []string{"Region", "Total"},
	})

	data, err := SaveBytes(wb)
	require.NoError(t, err)
	got, err := LoadBytes(data)
	require.NoError(t, err)

	gs, err := got.GetSheet("S")
	require.NoError(t, err)
	require.Len(t, gs.Hyperlinks, 1)
	assert.Equal(t, "https://example.com/", gs.Hyperlinks[0].Target)
	assert.False(t, gs.Hyperlinks[0].Internal)

	require.Len(t, gs.Tables, 1)
	assert.Equal(t, "Sales", gs.Tables[0].Name)
	assert.Equal(t, []string{"Region", "Total"}, gs.Tables[0].ColumnNames)
	assert.True(t, gs.Tables[0].HeaderRow)
}

func TestRoundTripSheetCollaborators(t *testing.T) {
	wb := NewWorkbook()
	sh, err := wb.AddSheet("S")
	require.NoError(t, err)
	require.NoError(t, sh.SetCell("A1", NumberValue(1)))
	sh.AutoFilter = &AutoFilter{Range: CellRange{FirstRow: 1, FirstCol: 1, LastRow: 9, LastCol: 3}}
	sh.Validations = append(sh.Validations, DataValidation{
		Range: CellRange{FirstRow: 2, FirstCol: 1, LastRow: 9, LastCol: 1},
		Type:  "whole", Operator: "between", Formula1: "1", Formula2: "10",
		AllowBlank: true,
	})
	sh.ConditionalFmts = append(sh.ConditionalFmts, ConditionalFormat{
		Range: CellRange{FirstRow: 2, FirstCol: 2, LastRow: 9, LastCol: 2},
		Rules: []ConditionalFormatRule{{Type: "cellIs", Operator: "greaterThan", Formula: []string{"5"}, Priority: 1}},
	})
	sh.Protect = SheetProtection{Enabled: true, PasswordHash: "83AF"}
	sh.PageSetup.Orientation = "landscape"
	sh.PageSetup.Margins = [6]float64{0.7, 0.7, 0.75, 0.75, 0.3, 0.3}
	sh.PageSetup.Header = "&CConfidential"

	data, err := SaveBytes(wb)
	require.NoError(t, err)
	got, err := LoadBytes(data)
	require.NoError(t, err)

	gs, err := got.GetSheet("S")
	require.NoError(t, err)
	require.NotNil(t, gs.AutoFilter)
	assert.Equal(t, sh.AutoFilter.Range, gs.AutoFilter.Range)
	require.Len(t, gs.Validations, 1)
	assert.Equal(t, "whole", gs.Validations[0].Type)
	assert.Equal(t, "10", gs.Validations[0].Formula2)
	require.Len(t, gs.ConditionalFmts, 1)
	assert.Equal(t, "cellIs", gs.ConditionalFmts[0].Rules[0].Type)
	assert.True(t, gs.Protect.Enabled)
	assert.Equal(t, "83AF", gs.Protect.PasswordHash)
	assert.Equal(t, "landscape", gs.PageSetup.Orientation)
	assert.Equal(t, 0.3, gs.PageSetup.Margins[4])
	assert.Equal(t, "&CConfidential", gs.PageSetup.Header)
}

func TestLoadMalformedXMLFailsWithXMLError(t *testing.T) {
	data := buildTestArchive(t, minimalParts(`<?xml version="1.0"?><worksheet xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main"><sheetData><row r="1">`))
	_, err := LoadBytes(data)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrXML))
	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "xl/worksheets/sheet1.xml", pe.Part)
}

func TestLoadOLE2ContainerRejected(t *testing.T) {
	data := append([]byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}, make([]byte, 1024)...)
	_, err := LoadBytes(data)
	require.Error(t, err)
	var pe *ParseError
	assert.True(t, errors.As(err, &pe))
}

func TestRichTextSharedStringRoundTrip(t *testing.T) {
	parts := minimalParts(`<?xml version="1.0"?><worksheet xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main"><sheetData>` +
		`<row r="1"><c r="A1" t="s"><v>0</v></c><c r="B1" t="s"><v>0</v></c></row>` +
		`</sheetData></worksheet>`)
	parts["xl/sharedStrings.xml"] = `<?xml version="1.0"?><sst xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main" count="1" uniqueCount="1">` +
		`<si><r><rPr><b val="1"/></rPr><t>Bold</t></r><r><t> plain</t></r></si></sst>`
	data := buildTestArchive(t, parts)

	wb, err := LoadBytes(data)
	require.NoError(t, err)
	sh, err := wb.GetSheet("Sheet1")
	require.NoError(t, err)
	v, err := sh.GetCell("A1")
	require.NoError(t, err)
	assert.Equal(t, "Bold plain", v.Str)

	// The original runs survive a save even though the model only carries
	// the flattened text.
	out, err := SaveBytes(wb)
	require.NoError(t, err)
	sst := readArchivePart(t, out, "xl/sharedStrings.xml")
	assert.Contains(t, sst, "<r>")
	assert.Contains(t, sst, "Bold")
}

func TestCoordinateBoundaries(t *testing.T) {
	for _, ok := range []string{"A1", "XFD1048576"} {
		_, _, err := CellNameToCoordinates(ok)
		assert.NoError(t, err, ok)
	}
	for _, bad := range []string{"A0", "XFE1", "A1048577", "", "1A", "ZZZ0"} {
		_, _, err := CellNameToCoordinates(bad)
		assert.Error(t, err, bad)
		assert.True(t, errors.Is(err, ErrInvalidCoordinate), bad)
	}
}
