// Copyright 2016 - 2022 The excelize Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package ooxlsx

import "sort"

// CellStore is a sparse, open-addressed map from (row, col) to a cell
// record, keyed by the packed 64-bit coordinate (row<<32 | col).
// It holds a reference to the workbook-wide string pool so Get can return
// fully-resolved CellViews without the caller juggling handles.
type CellStore struct {
	pool  *stringPool
	cells map[uint64]*CellRecord
}

func newCellStore(pool *stringPool) *CellStore {
	return &CellStore{pool: pool, cells: make(map[uint64]*CellRecord)}
}

func checkCoord(row, col int) error {
	if row < 1 || row > MaxRow || col < 1 || col > MaxCol {
		name, _ := CoordinatesToCellName(row, col)
		if name == "" {
			name = "?"
		}
		return newCoordinateError(name, errCoordOutOfRange)
	}
	return nil
}

var errCoordOutOfRange = errOutOfRange{}

type errOutOfRange struct{}

func (errOutOfRange) Error() string { return "coordinate out of range" }

// Get returns a resolved view of the cell at (row, col). Absent cells
// return a default-empty, default-style view with Occupied=false rather
// than an error.
func (s *CellStore) Get(row, col int) (CellView, error) {
	if err := checkCoord(row, col); err != nil {
		return CellView{}, err
	}
	rec, ok := s.cells[cellKey(row, col)]
	if !ok {
		return CellView{}, nil
	}
	return s.resolve(rec), nil
}

func (s *CellStore) resolve(rec *CellRecord) CellView {
	v := CellView{Kind: rec.Kind, Num: rec.Num, Style: rec.Style, Occupied: true}
	switch rec.Kind {
	case CellKindBool:
		v.Bool = rec.Num != 0
	case CellKindString, CellKindFormula, CellKindError:
		if str, ok := s.pool.resolve(rec.Str); ok {
			v.Str = str
		}
	}
	if c := rec.coldOrNil(); c != nil {
		v.NumFmtOverride = c.numFmtOverride
		v.DataTypeHint = c.dataTypeHint
		v.HyperlinkID = c.hyperlinkID
		v.CommentID = c.commentID
		v.CachedResult = c.cachedResult
	}
	return v
}

// SetValue inserts or overwrites the value of a cell, preserving any
// existing style or cold metadata.
func (s *CellStore) SetValue(row, col int, v CellValue) error {
	if err := checkCoord(row, col); err != nil {
		return err
	}
	key := cellKey(row, col)
	rec := s.cells[key]
	if rec == nil {
		rec = &CellRecord{}
	}
	rec.Kind = v.Kind
	switch v.Kind {
	case CellKindNumber, CellKindDate:
		rec.Num = v.Num
	case CellKindBool:
		if v.Bool {
			rec.Num = 1
		} else {
			rec.Num = 0
		}
	case CellKindString, CellKindFormula, CellKindError:
		rec.Str = s.pool.intern(v.Str)
	case CellKindEmpty:
		rec.Num = 0
		rec.Str = emptyStringHandle
	}
	s.put(key, rec)
	return nil
}

// SetStyle upserts the style handle for a cell. Clearing a style (setting
// it back to DefaultStyle) does not remove the cell if its value is
// non-empty.
func (s *CellStore) SetStyle(row, col int, h StyleHandle) error {
	if err := checkCoord(row, col); err != nil {
		return err
	}
	key := cellKey(row, col)
	rec := s.cells[key]
	if rec == nil {
		rec = &CellRecord{}
	}
	rec.Style = h
	s.put(key, rec)
	return nil
}

// SetNumFmtOverride sets an explicit per-cell number-format override,
// independent of the cell's style handle.
func (s *CellStore) SetNumFmtOverride(row, col int, numFmtID int) error {
	if err := checkCoord(row, col); err != nil {
		return err
	}
	key := cellKey(row, col)
	rec := s.cells[key]
	if rec == nil {
		rec = &CellRecord{}
	}
	rec.ensureCold().numFmtOverride = numFmtID
	s.put(key, rec)
	return nil
}

// SetDataTypeHint preserves a cell's original t= attribute when it cannot
// be inferred from the value kind, so a re-save restores it verbatim.
func (s *CellStore) SetDataTypeHint(row, col int, hint string) error {
	if err := checkCoord(row, col); err != nil {
		return err
	}
	key := cellKey(row, col)
	rec := s.cells[key]
	if rec == nil {
		rec = &CellRecord{}
	}
	rec.ensureCold().dataTypeHint = hint
	s.put(key, rec)
	return nil
}

// SetHyperlinkID and SetCommentID attach the id of a row in the sheet's
// hyperlink/comment tables to a cell's cold metadata.
func (s *CellStore) SetHyperlinkID(row, col, id int) error {
	if err := checkCoord(row, col); err != nil {
		return err
	}
	key := cellKey(row, col)
	rec := s.cells[key]
	if rec == nil {
		rec = &CellRecord{}
	}
	rec.ensureCold().hyperlinkID = id
	s.put(key, rec)
	return nil
}

func (s *CellStore) SetCommentID(row, col, id int) error {
	if err := checkCoord(row, col); err != nil {
		return err
	}
	key := cellKey(row, col)
	rec := s.cells[key]
	if rec == nil {
		rec = &CellRecord{}
	}
	rec.ensureCold().commentID = id
	s.put(key, rec)
	return nil
}

// SetCachedResult attaches a formula's last-computed numeric result, as
// preserved from a loaded workbook's <v> child.
func (s *CellStore) SetCachedResult(row, col int, result float64) error {
	if err := checkCoord(row, col); err != nil {
		return err
	}
	key := cellKey(row, col)
	rec := s.cells[key]
	if rec == nil {
		rec = &CellRecord{}
	}
	rec.ensureCold().cachedResult = &result
	s.put(key, rec)
	return nil
}

// put stores rec under key unless it has decayed to the default-empty
// state, in which case the record is deleted entirely.
func (s *CellStore) put(key uint64, rec *CellRecord) {
	if rec.isDefault() {
		delete(s.cells, key)
		return
	}
	s.cells[key] = rec
}

// Delete removes the cell record at (row, col), if any.
func (s *CellStore) Delete(row, col int) error {
	if err := checkCoord(row, col); err != nil {
		return err
	}
	delete(s.cells, cellKey(row, col))
	return nil
}

// Len returns the number of occupied cells.
func (s *CellStore) Len() int { return len(s.cells) }

// IterSorted yields every occupied cell in row-major order, as required
// for serialization.
func (s *CellStore) IterSorted(fn func(row, col int, v CellView) bool) {
	keys := s.sortedKeys()
	for _, k := range keys {
		row, col := keyToCoords(k)
		if !fn(row, col, s.resolve(s.cells[k])) {
			return
		}
	}
}

// IterRow yields the occupied cells of a single row, in column order.
func (s *CellStore) IterRow(row int, fn func(col int, v CellView) bool) {
	var cols []int
	for k := range s.cells {
		r, c := keyToCoords(k)
		if r == row {
			cols = append(cols, c)
		}
	}
	sort.Ints(cols)
	for _, c := range cols {
		if !fn(c, s.resolve(s.cells[cellKey(row, c)])) {
			return
		}
	}
}

// IterRange yields the occupied cells within [r1,c1]..[r2,c2] inclusive, in
// row-major order.
func (s *CellStore) IterRange(r1, c1, r2, c2 int, fn func(row, col int, v CellView) bool) {
	for _, k := range s.sortedKeys() {
		row, col := keyToCoords(k)
		if row < r1 || row > r2 || col < c1 || col > c2 {
			continue
		}
		if !fn(row, col, s.resolve(s.cells[k])) {
			return
		}
	}
}

func (s *CellStore) sortedKeys() []uint64 {
	keys := make([]uint64, 0, len(s.cells))
	for k := range s.cells {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		ri, ci := keyToCoords(keys[i])
		rj, cj := keyToCoords(keys[j])
		if ri != rj {
			return ri < rj
		}
		return ci < cj
	})
	return keys
}

// RowCount and ColCount return the maximum occupied row/column index,
// computed on demand; both are 0 for an empty store.
func (s *CellStore) RowCount() int {
	max := 0
	for k := range s.cells {
		r, _ := keyToCoords(k)
		if r > max {
			max = r
		}
	}
	return max
}

func (s *CellStore) ColCount() int {
	max := 0
	for k := range s.cells {
		_, c := keyToCoords(k)
		if c > max {
			max = c
		}
	}
	return max
}
