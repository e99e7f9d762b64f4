// Copyright 2016 - 2022 The excelize Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package ooxlsx

import (
	"strings"

	"github.com/xuri/efp"
)

// sharedFormulaMaster describes one shared-formula group: the master
// cell's coordinates and its relative-reference formula text. A single map
// from si to master is carried for the duration of one worksheet parse;
// it is the only parse state that outlives the current cell.
type sharedFormulaMaster struct {
	row, col int
	formula  string
}

// translateSharedFormula produces the formula text for a derivative cell
// at (row, col) copying shared-formula group si from master, offsetting
// every relative reference by (row-master.row, col-master.col). Absolute
// ($-anchored) components do not shift; quoted string literals are copied
// untouched.
func translateSharedFormula(master sharedFormulaMaster, row, col int) string {
	dRow := row - master.row
	dCol := col - master.col
	if dRow == 0 && dCol == 0 {
		return master.formula
	}
	orig := []byte(master.formula)
	res, start := shiftFormulaRefs(orig, dRow, dCol)
	if start < len(orig) {
		res += string(orig[start:])
	}
	return res
}

// shiftFormulaRefs scans a formula byte-wise for COL-ROW reference spans
// and rewrites each through shiftCellRef, skipping quoted literals. It
// returns the rewritten prefix and the offset the scan stopped copying at.
func shiftFormulaRefs(orig []byte, dRow, dCol int) (res string, start int) {
	var (
		end           int
		stringLiteral bool
	)
	for end = 0; end < len(orig); end++ {
		c := orig[end]
		if c == '"' {
			stringLiteral = !stringLiteral
		}
		if stringLiteral {
			continue
		}
		if c >= 'A' && c <= 'Z' || c == '$' {
			res += string(orig[start:end])
			start = end
			end++
			foundNum := false
			for ; end < len(orig); end++ {
				idc := orig[end]
				if idc >= '0' && idc <= '9' || idc == '$' {
					foundNum = true
				} else if idc >= 'A' && idc <= 'Z' {
					if foundNum {
						break
					}
				} else {
					break
				}
			}
			if foundNum {
				res += shiftCellRef(string(orig[start:end]), dRow, dCol)
				start = end
			}
		}
	}
	return
}

// shiftCellRef shifts one "{$?}COL{$?}ROW" reference by (dRow, dCol),
// honoring $ anchors. A reference pushed off the grid is kept verbatim.
func shiftCellRef(ref string, dRow, dCol int) string {
	col, row, err := CellNameToCoordinates(strings.ReplaceAll(ref, "$", ""))
	if err != nil {
		return ref
	}
	signCol, signRow := "", ""
	if strings.Index(ref, "$") == 0 {
		signCol = "$"
	} else {
		col += dCol
	}
	if strings.LastIndex(ref, "$") > 0 {
		signRow = "$"
	} else {
		row += dRow
	}
	if col < 1 || col > MaxCol || row < 1 || row > MaxRow {
		return ref
	}
	colName, _ := ColumnNumberToName(col)
	return signCol + colName + signRow + itoa(row)
}

// ParsedRef is the structured form of a defined-name reference: the sheet
// qualifier (empty for an unqualified reference) and the range text with
// anchors stripped.
type ParsedRef struct {
	Sheet string
	Range string
}

// ParseRef tokenizes the defined name's RefersTo text and extracts its
// first range reference. ok is false when the text holds no parseable
// reference, in which case callers fall back to the opaque RefersTo text.
func (dn DefinedName) ParseRef() (ParsedRef, bool) {
	parser := efp.ExcelParser()
	tokens := parser.Parse(dn.RefersTo)
	for _, tok := range tokens {
		if tok.TType != efp.TokenTypeOperand || tok.TSubType != efp.TokenSubTypeRange {
			continue
		}
		ref := tok.TValue
		out := ParsedRef{}
		if i := strings.LastIndex(ref, "!"); i >= 0 {
			out.Sheet = strings.Trim(ref[:i], "'")
			ref = ref[i+1:]
		}
		out.Range = strings.ReplaceAll(ref, "$", "")
		if out.Range == "" {
			continue
		}
		return out, true
	}
	return ParsedRef{}, false
}
