// Copyright 2016 - 2022 The excelize Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package ooxlsx

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStreamWriterRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	sw, err := NewStreamWriter(&buf, DefaultPolicy())
	require.NoError(t, err)

	sh, err := sw.AddSheet("Big")
	require.NoError(t, err)
	const rows, cols = 2000, 5
	for r := 1; r <= rows; r++ {
		cells := make([]CellValue, cols)
		for c := 0; c < cols; c++ {
			cells[c] = NumberValue(float64(r*100 + c + 1))
		}
		require.NoError(t, sh.WriteRow(r, cells))
	}
	require.NoError(t, sw.Close())

	wb, err := LoadBytes(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, []string{"Big"}, wb.SheetNames())

	gs, err := wb.GetSheet("Big")
	require.NoError(t, err)
	v, err := gs.Cells.Get(1500, 3)
	require.NoError(t, err)
	assert.Equal(t, float64(1500*100+3), v.Num)
	assert.Equal(t, rows*cols, gs.Cells.Len())
}

func TestStreamWriterSharedAndInlineStrings(t *testing.T) {
	var buf bytes.Buffer
	sw, err := NewStreamWriter(&buf, DefaultPolicy())
	require.NoError(t, err)
	sh, err := sw.AddSheet("S")
	require.NoError(t, err)
	require.NoError(t, sh.WriteRow(1, []CellValue{StringValue("shared"), InlineStringValue("inline")}))
	require.NoError(t, sh.WriteRow(2, []CellValue{StringValue("shared")}))
	require.NoError(t, sw.Close())

	sheetXML := readArchivePart(t, buf.Bytes(), "xl/worksheets/sheet1.xml")
	assert.Contains(t, sheetXML, `t="s"`)
	assert.Contains(t, sheetXML, `t="inlineStr"`)

	wb, err := LoadBytes(buf.Bytes())
	require.NoError(t, err)
	gs, err := wb.GetSheet("S")
	require.NoError(t, err)
	for ref, want := range map[string]string{"A1": "shared", "B1": "inline", "A2": "shared"} {
		v, err := gs.GetCell(ref)
		require.NoError(t, err)
		assert.Equal(t, want, v.Str, ref)
	}
}

func TestStreamWriterRejectsOutOfOrderRows(t *testing.T) {
	var buf bytes.Buffer
	sw, err := NewStreamWriter(&buf, DefaultPolicy())
	require.NoError(t, err)
	sh, err := sw.AddSheet("S")
	require.NoError(t, err)
	require.NoError(t, sh.WriteRow(5, []CellValue{NumberValue(1)}))

	err = sh.WriteRow(5, []CellValue{NumberValue(2)})
	assert.True(t, errors.Is(err, ErrInvalidFormat))
	err = sh.WriteRow(3, []CellValue{NumberValue(3)})
	assert.True(t, errors.Is(err, ErrInvalidFormat))
	// Gaps are sparse rows, not ordering violations.
	require.NoError(t, sh.WriteRow(100, []CellValue{NumberValue(4)}))
	require.NoError(t, sw.Close())
}

func TestStreamWriterRejectsFinalizedSheet(t *testing.T) {
	var buf bytes.Buffer
	sw, err := NewStreamWriter(&buf, DefaultPolicy())
	require.NoError(t, err)
	first, err := sw.AddSheet("First")
	require.NoError(t, err)
	require.NoError(t, first.WriteRow(1, []CellValue{NumberValue(1)}))

	second, err := sw.AddSheet("Second")
	require.NoError(t, err)

	err = first.WriteRow(2, []CellValue{NumberValue(2)})
	assert.True(t, errors.Is(err, ErrInvalidFormat))

	require.NoError(t, second.WriteRow(1, []CellValue{NumberValue(3)}))
	require.NoError(t, sw.Close())

	err = second.WriteRow(2, []CellValue{NumberValue(4)})
	assert.True(t, errors.Is(err, ErrInvalidFormat))
}

func TestStreamWriterNoSheetsFailsClose(t *testing.T) {
	var buf bytes.Buffer
	sw, err := NewStreamWriter(&buf, DefaultPolicy())
	require.NoError(t, err)
	assert.ErrorIs(t, sw.Close(), ErrNoWorksheets)
}

func TestStreamWriterDuplicateSheetName(t *testing.T) {
	var buf bytes.Buffer
	sw, err := NewStreamWriter(&buf, DefaultPolicy())
	require.NoError(t, err)
	_, err = sw.AddSheet("Data")
	require.NoError(t, err)
	_, err = sw.AddSheet("DATA")
	assert.True(t, errors.Is(err, ErrWorksheetAlreadyExists))
}

func TestStreamWriterMultipleSheets(t *testing.T) {
	var buf bytes.Buffer
	sw, err := NewStreamWriter(&buf, DefaultPolicy())
	require.NoError(t, err)
	a, err := sw.AddSheet("A")
	require.NoError(t, err)
	require.NoError(t, a.WriteRow(1, []CellValue{StringValue("first")}))
	b, err := sw.AddSheet("B")
	require.NoError(t, err)
	require.NoError(t, b.WriteRow(1, []CellValue{BoolValue(true), FormulaValue("SUM(A1)")}))
	require.NoError(t, sw.Close())

	wb, err := LoadBytes(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, wb.SheetNames())

	bs, err := wb.GetSheet("B")
	require.NoError(t, err)
	v, err := bs.GetCell("A1")
	require.NoError(t, err)
	assert.True(t, v.Bool)
	v, err = bs.GetCell("B1")
	require.NoError(t, err)
	assert.Equal(t, CellKindFormula, v.Kind)
	assert.Equal(t, "SUM(A1)", v.Str)
}
