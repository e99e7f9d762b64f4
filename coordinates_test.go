// Copyright 2016 - 2022 The excelize Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package ooxlsx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCellNameToCoordinatesRoundTrip(t *testing.T) {
	cases := []struct {
		name string
		col  int
		row  int
	}{
		{"A1", 1, 1},
		{"a1", 1, 1},
		{"B2", 2, 2},
		{"XFD1048576", MaxCol, MaxRow},
	}
	for _, c := range cases {
		col, row, err := CellNameToCoordinates(c.name)
		require.NoError(t, err, c.name)
		assert.Equal(t, c.col, col, c.name)
		assert.Equal(t, c.row, row, c.name)

		formatted, err := CoordinatesToCellName(row, col)
		require.NoError(t, err, c.name)
		assert.Equal(t, stringsToUpper(c.name), formatted)
	}
}

func stringsToUpper(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'a' && c <= 'z' {
			b[i] = c - ('a' - 'A')
		}
	}
	return string(b)
}

func TestCellNameToCoordinatesRejectsOutOfRange(t *testing.T) {
	for _, bad := range []string{"A0", "XFE1", "A1048577", "", "ZZZ0", "1A", "A"} {
		_, _, err := CellNameToCoordinates(bad)
		require.Error(t, err, bad)
		var coordErr *CoordinateError
		require.ErrorAs(t, err, &coordErr)
	}
}

func TestColumnNameNumberRoundTrip(t *testing.T) {
	for _, col := range []int{1, 2, 26, 27, 702, 703, MaxCol} {
		name, err := ColumnNumberToName(col)
		require.NoError(t, err)
		got, err := ColumnNameToNumber(name)
		require.NoError(t, err)
		assert.Equal(t, col, got)
	}
}

func TestColumnNumberToNameRejectsOutOfRange(t *testing.T) {
	_, err := ColumnNumberToName(0)
	require.Error(t, err)
	_, err = ColumnNumberToName(MaxCol + 1)
	require.Error(t, err)
}

func TestCellKeyRoundTrip(t *testing.T) {
	row, col := 12345, 678
	key := cellKey(row, col)
	gotRow, gotCol := keyToCoords(key)
	assert.Equal(t, row, gotRow)
	assert.Equal(t, col, gotCol)
}
