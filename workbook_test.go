// Copyright 2016 - 2022 The excelize Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package ooxlsx

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddSheetCaseFoldCollision(t *testing.T) {
	wb := NewWorkbook()
	_, err := wb.AddSheet("Data")
	require.NoError(t, err)
	_, err = wb.AddSheet("DATA")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrWorksheetAlreadyExists))
}

func TestAddSheetNameValidation(t *testing.T) {
	wb := NewWorkbook()
	for _, bad := range []string{"", "a:b", "a/b", "a?b", "a[b]", "0123456789012345678901234567890XX"} {
		_, err := wb.AddSheet(bad)
		assert.Error(t, err, bad)
	}
	_, err := wb.AddSheet("ok name")
	assert.NoError(t, err)
}

func TestGetSheetNotFound(t *testing.T) {
	wb := NewWorkbook()
	_, err := wb.GetSheet("missing")
	assert.True(t, errors.Is(err, ErrWorksheetNotFound))
}

func TestRemoveSheetReindexes(t *testing.T) {
	wb := NewWorkbook()
	for _, n := range []string{"A", "B", "C"} {
		_, err := wb.AddSheet(n)
		require.NoError(t, err)
	}
	require.NoError(t, wb.RemoveSheet("B"))
	assert.Equal(t, []string{"A", "C"}, wb.SheetNames())
	c, err := wb.GetSheet("C")
	require.NoError(t, err)
	assert.Equal(t, 1, c.Index())
}

func TestRenameSheet(t *testing.T) {
	wb := NewWorkbook()
	_, err := wb.AddSheet("Old")
	require.NoError(t, err)
	_, err = wb.AddSheet("Taken")
	require.NoError(t, err)

	assert.Error(t, wb.RenameSheet("Old", "TAKEN"))
	require.NoError(t, wb.RenameSheet("Old", "New"))
	_, err = wb.GetSheet("New")
	assert.NoError(t, err)
	_, err = wb.GetSheet("Old")
	assert.Error(t, err)

	// Case-only rename of the same sheet is allowed.
	require.NoError(t, wb.RenameSheet("New", "NEW"))
	assert.Equal(t, []string{"NEW", "Taken"}, wb.SheetNames())
}

func TestCopySheetIsIndependent(t *testing.T) {
	wb := NewWorkbook()
	src, err := wb.AddSheet("Src")
	require.NoError(t, err)
	require.NoError(t, src.SetCell("A1", StringValue("v")))
	require.NoError(t, src.AddMergeCell(CellRange{FirstRow: 1, FirstCol: 1, LastRow: 2, LastCol: 2}))

	dst, err := wb.CopySheet("Src", "Dst")
	require.NoError(t, err)

	require.NoError(t, dst.SetCell("A1", StringValue("changed")))
	dst.Merges[0].LastRow = 9

	v, err := src.GetCell("A1")
	require.NoError(t, err)
	assert.Equal(t, "v", v.Str)
	assert.Equal(t, 2, src.Merges[0].LastRow)
}

func TestResolveDefinedNamePrefersSheetScope(t *testing.T) {
	wb := NewWorkbook()
	wb.AddDefinedName("X", "", "Sheet1!$A$1")
	wb.AddDefinedName("X", "S2", "S2!$B$2")

	dn, ok := wb.ResolveDefinedName("X")
	require.True(t, ok)
	assert.Equal(t, "S2", dn.Sheet)

	_, ok = wb.ResolveDefinedName("missing")
	assert.False(t, ok)
}

func TestSheetVisibility(t *testing.T) {
	wb := NewWorkbook()
	sh, err := wb.AddSheet("S")
	require.NoError(t, err)
	assert.True(t, sh.Visible())
	sh.SetVisible(false)
	assert.False(t, sh.Visible())
	sh.SetVisible(true)
	assert.True(t, sh.Visible())
}

func TestMergeOverlapRejected(t *testing.T) {
	wb := NewWorkbook()
	sh, err := wb.AddSheet("S")
	require.NoError(t, err)
	require.NoError(t, sh.AddMergeCell(CellRange{FirstRow: 2, FirstCol: 2, LastRow: 4, LastCol: 4}))
	err = sh.AddMergeCell(CellRange{FirstRow: 4, FirstCol: 4, LastRow: 6, LastCol: 6})
	assert.True(t, errors.Is(err, ErrInvalidFormat))
	require.NoError(t, sh.AddMergeCell(CellRange{FirstRow: 5, FirstCol: 5, LastRow: 6, LastCol: 6}))
	assert.Len(t, sh.Merges, 2)
}

func TestWorksheetDimension(t *testing.T) {
	wb := NewWorkbook()
	sh, err := wb.AddSheet("S")
	require.NoError(t, err)
	assert.Equal(t, "A1", sh.Dimension())

	require.NoError(t, sh.SetCell("B2", NumberValue(1)))
	assert.Equal(t, "B2", sh.Dimension())

	require.NoError(t, sh.SetCell("D7", NumberValue(2)))
	assert.Equal(t, "B2:D7", sh.Dimension())
}

func TestSetRowAndGetRow(t *testing.T) {
	wb := NewWorkbook()
	sh, err := wb.AddSheet("S")
	require.NoError(t, err)
	require.NoError(t, sh.SetRow(3, []CellValue{NumberValue(1), {}, StringValue("c")}))

	row := sh.GetRow(3)
	require.Len(t, row, 3)
	assert.Equal(t, 1.0, row[0].Num)
	assert.False(t, row[1].Occupied)
	assert.Equal(t, "c", row[2].Str)
}

func TestSetRangeStyle(t *testing.T) {
	wb := NewWorkbook()
	sh, err := wb.AddSheet("S")
	require.NoError(t, err)
	h := wb.Styles.AddStyle(&Style{Font: &Font{Bold: true}})
	require.NoError(t, sh.SetRangeStyle(CellRange{FirstRow: 1, FirstCol: 1, LastRow: 2, LastCol: 2}, h))
	for row := 1; row <= 2; row++ {
		for col := 1; col <= 2; col++ {
			v, err := sh.Cells.Get(row, col)
			require.NoError(t, err)
			assert.Equal(t, h, v.Style)
		}
	}
}
