// Copyright 2016 - 2022 The excelize Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package ooxlsx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore() *CellStore {
	return newCellStore(newStringPool())
}

func TestCellStoreGetAbsentReturnsDefault(t *testing.T) {
	s := newTestStore()
	v, err := s.Get(5, 5)
	require.NoError(t, err)
	assert.False(t, v.Occupied)
	assert.Equal(t, CellKindEmpty, v.Kind)
	assert.Equal(t, DefaultStyle, v.Style)
}

func TestCellStoreSetAndGetValue(t *testing.T) {
	s := newTestStore()
	require.NoError(t, s.SetValue(1, 1, StringValue("Hello")))
	require.NoError(t, s.SetValue(2, 2, NumberValue(42.5)))
	require.NoError(t, s.SetValue(3, 3, BoolValue(true)))

	v, err := s.Get(1, 1)
	require.NoError(t, err)
	assert.Equal(t, "Hello", v.Str)

	v, err = s.Get(2, 2)
	require.NoError(t, err)
	assert.InDelta(t, 42.5, v.Num, 0)

	v, err = s.Get(3, 3)
	require.NoError(t, err)
	assert.True(t, v.Bool)

	assert.Equal(t, 3, s.Len())
}

func TestCellStoreDeleteOnDefaultEmpty(t *testing.T) {
	s := newTestStore()
	require.NoError(t, s.SetValue(1, 1, NumberValue(1)))
	require.NoError(t, s.SetValue(1, 1, CellValue{Kind: CellKindEmpty}))
	assert.Equal(t, 0, s.Len())
}

func TestCellStoreStylePersistsWithoutValue(t *testing.T) {
	s := newTestStore()
	require.NoError(t, s.SetStyle(4, 4, StyleHandle(2)))
	v, err := s.Get(4, 4)
	require.NoError(t, err)
	assert.True(t, v.Occupied)
	assert.Equal(t, StyleHandle(2), v.Style)
}

func TestCellStoreClearingStyleKeepsNonEmptyValue(t *testing.T) {
	s := newTestStore()
	require.NoError(t, s.SetValue(1, 1, NumberValue(7)))
	require.NoError(t, s.SetStyle(1, 1, StyleHandle(3)))
	require.NoError(t, s.SetStyle(1, 1, DefaultStyle))
	v, err := s.Get(1, 1)
	require.NoError(t, err)
	assert.True(t, v.Occupied)
	assert.Equal(t, 7.0, v.Num)
}

func TestCellStoreInvalidCoordinateFailsFast(t *testing.T) {
	s := newTestStore()
	err := s.SetValue(0, 1, NumberValue(1))
	require.Error(t, err)
	err = s.SetValue(1, MaxCol+1, NumberValue(1))
	require.Error(t, err)
}

func TestCellStoreIterSortedIsRowMajor(t *testing.T) {
	s := newTestStore()
	require.NoError(t, s.SetValue(2, 1, NumberValue(1)))
	require.NoError(t, s.SetValue(1, 2, NumberValue(2)))
	require.NoError(t, s.SetValue(1, 1, NumberValue(3)))

	var order [][2]int
	s.IterSorted(func(row, col int, v CellView) bool {
		order = append(order, [2]int{row, col})
		return true
	})
	assert.Equal(t, [][2]int{{1, 1}, {1, 2}, {2, 1}}, order)
}

func TestCellStoreRowAndColCount(t *testing.T) {
	s := newTestStore()
	require.NoError(t, s.SetValue(10, 3, NumberValue(1)))
	require.NoError(t, s.SetValue(2, 9, NumberValue(2)))
	assert.Equal(t, 10, s.RowCount())
	assert.Equal(t, 9, s.ColCount())
}

func TestCellStoreColdMetadataRoundTrips(t *testing.T) {
	s := newTestStore()
	require.NoError(t, s.SetValue(1, 1, NumberValue(1)))
	require.NoError(t, s.SetHyperlinkID(1, 1, 7))
	require.NoError(t, s.SetCommentID(1, 1, 3))
	require.NoError(t, s.SetNumFmtOverride(1, 1, 14))

	v, err := s.Get(1, 1)
	require.NoError(t, err)
	assert.Equal(t, 7, v.HyperlinkID)
	assert.Equal(t, 3, v.CommentID)
	assert.Equal(t, 14, v.NumFmtOverride)
}
