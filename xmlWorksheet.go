// Copyright 2016 - 2022 The excelize Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package ooxlsx

import (
	"encoding/xml"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// xlsxWorksheet directly maps the worksheet element of
// xl/worksheets/sheetN.xml, trimmed to the parts this library round-trips.
type xlsxWorksheet struct {
	XMLName       xml.Name          `xml:"http://schemas.openxmlformats.org/spreadsheetml/2006/main worksheet"`
	Dimension     *xlsxDimension    `xml:"dimension"`
	SheetViews    *xlsxSheetViews   `xml:"sheetViews"`
	Cols          *xlsxCols         `xml:"cols"`
	SheetData     xlsxSheetData     `xml:"sheetData"`
	SheetProtect  *xlsxSheetProtect `xml:"sheetProtection"`
	AutoFilter    *xlsxAutoFilter   `xml:"autoFilter"`
	MergeCells    *xlsxMergeCells   `xml:"mergeCells"`
	ConditionalFs []xlsxCondFmt     `xml:"conditionalFormatting"`
	DataValid     *xlsxDataValid    `xml:"dataValidations"`
	Hyperlinks    *xlsxHyperlinks   `xml:"hyperlinks"`
	PageMargins   *xlsxPageMargins  `xml:"pageMargins"`
	PageSetup     *xlsxPageSetup    `xml:"pageSetup"`
	HeaderFooter  *xlsxHeaderFooter `xml:"headerFooter"`
	TableParts    *xlsxTableParts   `xml:"tableParts"`
	ExtLst        *xlsxExtLst       `xml:"extLst"`
}

type xlsxDimension struct {
	Ref string `xml:"ref,attr"`
}

type xlsxSheetViews struct {
	SheetView []xlsxSheetViewElem `xml:"sheetView"`
}

type xlsxSheetViewElem struct {
	ShowGridLines bool          `xml:"showGridLines,attr,omitempty"`
	ZoomScale     int           `xml:"zoomScale,attr,omitempty"`
	Pane          *xlsxPane     `xml:"pane"`
	TabColor      *xlsxTabColor `xml:"tabColor"`
}

type xlsxPane struct {
	XSplit      float64 `xml:"xSplit,attr,omitempty"`
	YSplit      float64 `xml:"ySplit,attr,omitempty"`
	TopLeftCell string  `xml:"topLeftCell,attr,omitempty"`
	ActivePane  string  `xml:"activePane,attr,omitempty"`
	State       string  `xml:"state,attr,omitempty"`
}

type xlsxTabColor struct {
	RGB string `xml:"rgb,attr,omitempty"`
}

type xlsxCols struct {
	Col []xlsxCol `xml:"col"`
}

type xlsxCol struct {
	Min         int     `xml:"min,attr"`
	Max         int     `xml:"max,attr"`
	Width       float64 `xml:"width,attr,omitempty"`
	Style       int     `xml:"style,attr,omitempty"`
	Hidden      bool    `xml:"hidden,attr,omitempty"`
	CustomWidth bool    `xml:"customWidth,attr,omitempty"`
}

type xlsxSheetData struct {
	Row []xlsxRow `xml:"row"`
}

type xlsxRow struct {
	R            int     `xml:"r,attr"`
	Ht           float64 `xml:"ht,attr,omitempty"`
	Hidden       bool    `xml:"hidden,attr,omitempty"`
	OutlineLevel int     `xml:"outlineLevel,attr,omitempty"`
	C            []xlsxC `xml:"c"`
}

// xlsxC directly maps the c element. T carries the OOXML data-type code:
// "s" shared string, "str" formula-result string, "inlineStr", "b" bool,
// "e" error, or empty for a number.
type xlsxC struct {
	R  string  `xml:"r,attr"`
	S  int     `xml:"s,attr,omitempty"`
	T  string  `xml:"t,attr,omitempty"`
	F  *xlsxF  `xml:"f"`
	V  string  `xml:"v,omitempty"`
	IS *xlsxIS `xml:"is"`
}

// xlsxF maps the formula element, including the shared-formula attributes:
// master cells carry si+ref, derivative cells carry only si.
type xlsxF struct {
	T   string `xml:"t,attr,omitempty"` // "shared" for shared formulas
	Ref string `xml:"ref,attr,omitempty"`
	Si  *int   `xml:"si,attr"`
	Val string `xml:",chardata"`
}

// xlsxIS maps an inline string's <is> element, structurally identical to a
// shared-string item.
type xlsxIS struct {
	T *xlsxT  `xml:"t"`
	R []xlsxR `xml:"r"`
}

type xlsxSheetProtect struct {
	Password    string `xml:"password,attr,omitempty"`
	AlgorithmName string `xml:"algorithmName,attr,omitempty"`
	Sheet       bool   `xml:"sheet,attr,omitempty"`
}

type xlsxAutoFilter struct {
	Ref string `xml:"ref,attr"`
}

type xlsxMergeCells struct {
	Count int              `xml:"count,attr"`
	Cell  []xlsxMergeCell  `xml:"mergeCell"`
}

type xlsxMergeCell struct {
	Ref string `xml:"ref,attr"`
}

type xlsxCondFmt struct {
	SQRef string           `xml:"sqref,attr"`
	Rule  []xlsxCondFmtRule `xml:"cfRule"`
}

type xlsxCondFmtRule struct {
	Type     string   `xml:"type,attr,omitempty"`
	Operator string   `xml:"operator,attr,omitempty"`
	DxfID    int      `xml:"dxfId,attr,omitempty"`
	Priority int      `xml:"priority,attr"`
	Formula  []string `xml:"formula"`
}

type xlsxDataValid struct {
	DataValidation []xlsxDataValidation `xml:"dataValidation"`
}

type xlsxDataValidation struct {
	Type         string `xml:"type,attr,omitempty"`
	Operator     string `xml:"operator,attr,omitempty"`
	AllowBlank   bool   `xml:"allowBlank,attr,omitempty"`
	ShowErrorMsg bool   `xml:"showErrorMessage,attr,omitempty"`
	ErrorTitle   string `xml:"errorTitle,attr,omitempty"`
	Error        string `xml:"error,attr,omitempty"`
	SQRef        string `xml:"sqref,attr"`
	Formula1     string `xml:"formula1,omitempty"`
	Formula2     string `xml:"formula2,omitempty"`
}

type xlsxHyperlinks struct {
	Hyperlink []xlsxHyperlink `xml:"hyperlink"`
}

type xlsxHyperlink struct {
	Ref      string `xml:"ref,attr"`
	RID      string `xml:"http://schemas.openxmlformats.org/officeDocument/2006/relationships id,attr,omitempty"`
	Location string `xml:"location,attr,omitempty"`
	Display  string `xml:"display,attr,omitempty"`
	Tooltip  string `xml:"tooltip,attr,omitempty"`
}

type xlsxPageSetup struct {
	Orientation string `xml:"orientation,attr,omitempty"`
	PaperSize   int    `xml:"paperSize,attr,omitempty"`
	FitToWidth  int    `xml:"fitToWidth,attr,omitempty"`
	FitToHeight int    `xml:"fitToHeight,attr,omitempty"`
}

type xlsxPageMargins struct {
	Left   float64 `xml:"left,attr"`
	Right  float64 `xml:"right,attr"`
	Top    float64 `xml:"top,attr"`
	Bottom float64 `xml:"bottom,attr"`
	Header float64 `xml:"header,attr"`
	Footer float64 `xml:"footer,attr"`
}

type xlsxHeaderFooter struct {
	OddHeader string `xml:"oddHeader,omitempty"`
	OddFooter string `xml:"oddFooter,omitempty"`
}

// xlsxTableParts lists the relationship ids of the structured-table parts
// attached to a worksheet; the table definitions themselves live in
// sibling xl/tables/tableN.xml parts.
type xlsxTableParts struct {
	Count     int             `xml:"count,attr"`
	TablePart []xlsxTablePart `xml:"tablePart"`
}

type xlsxTablePart struct {
	RID string `xml:"http://schemas.openxmlformats.org/officeDocument/2006/relationships id,attr"`
}

// worksheetInput bundles everything one worksheet parse needs: the part
// name for diagnostics, the raw XML, the sheet's resolved relationship
// targets, and the pre-read table parts those relationships point to.
type worksheetInput struct {
	partName string
	data     []byte
	rels     map[string]string // rId -> resolved part name or external URL
	tableXML map[string][]byte // table part name -> raw XML
}

// offsetOf returns the byte offset of needle's first occurrence in data, so
// semantically invalid content located after a successful XML decode can
// still be reported with a position. Returns 0 when the needle is gone
// (entity-escaped or synthesized content).
func offsetOf(data []byte, needle string) int64 {
	if i := strings.Index(string(data), needle); i >= 0 {
		return int64(i)
	}
	return 0
}

// parseWorksheetPart decodes one xl/worksheets/sheetN.xml part into ws,
// resolving shared-string indices through the workbook's string pool and
// reconstructing the cell store, merges, and collaborator tables.
func parseWorksheetPart(ws *Worksheet, in worksheetInput, sstIndex []StringHandle) error {
	var x xlsxWorksheet
	dec := newPartDecoder(strings.NewReader(string(in.data)))
	if err := dec.Decode(&x); err != nil {
		return newParseError(in.partName, dec.InputOffset(), newXMLError(err))
	}
	if x.SheetViews != nil && len(x.SheetViews.SheetView) > 0 {
		sv := x.SheetViews.SheetView[0]
		ws.View.ShowGridLines = sv.ShowGridLines
		ws.View.ZoomScale = sv.ZoomScale
		if sv.TabColor != nil {
			ws.View.TabColor = sv.TabColor.RGB
		}
		if sv.Pane != nil {
			ws.View.FrozenRows = int(sv.Pane.YSplit)
			ws.View.FrozenCols = int(sv.Pane.XSplit)
		}
	}
	if x.SheetProtect != nil {
		ws.Protect = SheetProtection{
			Enabled:      x.SheetProtect.Sheet,
			PasswordHash: x.SheetProtect.Password,
			AlgorithmID:  x.SheetProtect.AlgorithmName,
		}
	}
	sharedMasters := map[int]sharedFormulaMaster{}
	for _, row := range x.SheetData.Row {
		if row.Ht != 0 || row.Hidden || row.OutlineLevel != 0 {
			ws.SetRowHeight(row.R, row.Ht, row.Hidden, row.OutlineLevel)
		}
		for _, c := range row.C {
			if err := parseCell(ws, in, c, sstIndex, sharedMasters); err != nil {
				return err
			}
		}
	}
	if x.Cols != nil {
		for _, col := range x.Cols.Col {
			ws.SetColWidth(col.Min, col.Max, col.Width, col.Hidden)
		}
	}
	if x.MergeCells != nil {
		for _, m := range x.MergeCells.Cell {
			r, err := parseCellRange(m.Ref)
			if err != nil {
				return newParseError(in.partName, offsetOf(in.data, m.Ref), err)
			}
			if err := ws.AddMergeCell(r); err != nil {
				return err
			}
		}
	}
	if x.AutoFilter != nil {
		r, err := parseCellRange(x.AutoFilter.Ref)
		if err == nil {
			ws.AutoFilter = &AutoFilter{Range: r}
		}
	}
	for _, cf := range x.ConditionalFs {
		r, err := parseCellRange(firstSqrefRange(cf.SQRef))
		if err != nil {
			continue
		}
		fmtRules := ConditionalFormat{Range: r}
		for _, rule := range cf.Rule {
			fmtRules.Rules = append(fmtRules.Rules, ConditionalFormatRule{
				Type:       rule.Type,
				Operator:   rule.Operator,
				Formula:    rule.Formula,
				StyleDxfID: rule.DxfID,
				Priority:   rule.Priority,
			})
		}
		ws.ConditionalFmts = append(ws.ConditionalFmts, fmtRules)
	}
	if x.DataValid != nil {
		for _, dv := range x.DataValid.DataValidation {
			r, err := parseCellRange(firstSqrefRange(dv.SQRef))
			if err != nil {
				continue
			}
			ws.Validations = append(ws.Validations, DataValidation{
				Range:        r,
				Type:         dv.Type,
				Operator:     dv.Operator,
				Formula1:     dv.Formula1,
				Formula2:     dv.Formula2,
				AllowBlank:   dv.AllowBlank,
				ShowErrorMsg: dv.ShowErrorMsg,
				ErrorTitle:   dv.ErrorTitle,
				ErrorMessage: dv.Error,
			})
		}
	}
	if x.Hyperlinks != nil {
		for _, h := range x.Hyperlinks.Hyperlink {
			col, row, err := CellNameToCoordinates(h.Ref)
			if err != nil {
				continue
			}
			target, internal := h.Location, true
			if h.RID != "" {
				target, internal = in.rels[h.RID], false
			}
			if _, err := ws.AddHyperlink(row, col, target, h.Display, h.Tooltip, internal); err != nil {
				return err
			}
		}
	}
	if x.PageMargins != nil {
		m := x.PageMargins
		ws.PageSetup.Margins = [6]float64{m.Left, m.Right, m.Top, m.Bottom, m.Header, m.Footer}
	}
	if x.PageSetup != nil {
		ws.PageSetup.Orientation = x.PageSetup.Orientation
		ws.PageSetup.PaperSize = x.PageSetup.PaperSize
		ws.PageSetup.FitToWidth = x.PageSetup.FitToWidth
		ws.PageSetup.FitToHeight = x.PageSetup.FitToHeight
	}
	if x.HeaderFooter != nil {
		ws.PageSetup.Header = x.HeaderFooter.OddHeader
		ws.PageSetup.Footer = x.HeaderFooter.OddFooter
	}
	if x.TableParts != nil {
		for _, tp := range x.TableParts.TablePart {
			partName, ok := in.rels[tp.RID]
			if !ok {
				return newParseError(in.partName, 0, fmt.Errorf("%w: unresolved table relationship %q", ErrInvalidFormat, tp.RID))
			}
			data, ok := in.tableXML[partName]
			if !ok {
				return newParseError(in.partName, 0, fmt.Errorf("%w: missing table part %q", ErrInvalidFormat, partName))
			}
			t, err := parseTablePart(partName, data)
			if err != nil {
				return err
			}
			ws.Tables = append(ws.Tables, t)
		}
	}
	return nil
}

// firstSqrefRange returns the first range of a space-separated sqref list;
// multi-range scopes collapse to their first rectangle.
func firstSqrefRange(sqref string) string {
	if i := strings.IndexByte(sqref, ' '); i >= 0 {
		return sqref[:i]
	}
	return sqref
}

func parseCell(ws *Worksheet, in worksheetInput, c xlsxC, sstIndex []StringHandle, sharedMasters map[int]sharedFormulaMaster) error {
	col, row, err := CellNameToCoordinates(c.R)
	if err != nil {
		return newParseError(in.partName, offsetOf(in.data, c.R), err)
	}
	var v CellValue
	switch c.T {
	case "s":
		idx, err := strconv.Atoi(c.V)
		if err != nil || idx < 0 || idx >= len(sstIndex) {
			return newParseError(in.partName, offsetOf(in.data, c.R), fmt.Errorf("%w: dangling shared-string index %q", ErrInvalidFormat, c.V))
		}
		h := sstIndex[idx]
		s, _ := ws.workbook.strings.resolve(h)
		v = StringValue(s)
	case "inlineStr":
		if c.IS != nil {
			v = StringValue(c.IS.PlainTextOf())
		}
	case "str":
		// A formula whose last result was a string carries t="str"; the
		// formula text still wins as the cell's value.
		if c.F != nil {
			v = FormulaValue(c.F.Val)
		} else {
			v = CellValue{Kind: CellKindString, Str: c.V}
		}
	case "b":
		v = BoolValue(c.V == "1" || c.V == "true")
	case "e":
		v = ErrorValue(c.V)
	case "d":
		v = CellValue{Kind: CellKindString, Str: c.V}
	case "", "n":
		switch {
		case c.F != nil && c.F.T == "shared" && c.F.Si != nil:
			si := *c.F.Si
			if c.F.Val != "" {
				sharedMasters[si] = sharedFormulaMaster{row: row, col: col, formula: c.F.Val}
				v = FormulaValue(c.F.Val)
			} else if master, ok := sharedMasters[si]; ok {
				v = FormulaValue(translateSharedFormula(master, row, col))
			} else {
				return newParseError(in.partName, offsetOf(in.data, c.R), fmt.Errorf("%w: shared formula si=%d has no preceding master", ErrInvalidFormat, si))
			}
		case c.F != nil:
			v = FormulaValue(c.F.Val)
		case c.V != "":
			f, err := strconv.ParseFloat(c.V, 64)
			if err != nil {
				return newParseError(in.partName, offsetOf(in.data, c.R), err)
			}
			v = NumberValue(f)
		default:
			v = CellValue{Kind: CellKindEmpty}
		}
	default:
		// An unrecognized t= code is kept as a string with the raw code
		// recorded so a re-save can restore the attribute.
		v = CellValue{Kind: CellKindString, Str: c.V}
	}
	if err := ws.Cells.SetValue(row, col, v); err != nil {
		return err
	}
	if isUnknownTypeCode(c.T) || c.T == "d" {
		if err := ws.Cells.SetDataTypeHint(row, col, c.T); err != nil {
			return err
		}
	}
	if c.S != 0 {
		if err := ws.Cells.SetStyle(row, col, StyleHandle(c.S)); err != nil {
			return err
		}
	}
	if v.Kind == CellKindFormula && c.V != "" {
		if f, err := strconv.ParseFloat(c.V, 64); err == nil {
			if err := ws.Cells.SetCachedResult(row, col, f); err != nil {
				return err
			}
		}
	}
	return nil
}

func isUnknownTypeCode(t string) bool {
	switch t {
	case "", "n", "s", "str", "inlineStr", "b", "e", "d":
		return false
	}
	return true
}

func (is xlsxIS) PlainTextOf() string {
	return xlsxSI{T: is.T, R: is.R}.PlainText()
}

func parseCellRange(ref string) (CellRange, error) {
	parts := strings.SplitN(ref, ":", 2)
	c1, r1, err := CellNameToCoordinates(parts[0])
	if err != nil {
		return CellRange{}, err
	}
	if len(parts) == 1 {
		return CellRange{FirstRow: r1, FirstCol: c1, LastRow: r1, LastCol: c1}, nil
	}
	c2, r2, err := CellNameToCoordinates(parts[1])
	if err != nil {
		return CellRange{}, err
	}
	return CellRange{FirstRow: r1, FirstCol: c1, LastRow: r2, LastCol: c2}, nil
}

func cellRangeRef(r CellRange) string {
	start, _ := CoordinatesToCellName(r.FirstRow, r.FirstCol)
	end, _ := CoordinatesToCellName(r.LastRow, r.LastCol)
	if start == end {
		return start
	}
	return start + ":" + end
}

// sheetRelPlan carries the relationship ids assigned, before a worksheet
// part is rendered, to anything in it that references the sheet's own
// _rels part: external hyperlinks and structured-table parts.
type sheetRelPlan struct {
	hyperlinkRID map[int]string // index into ws.Hyperlinks -> rId
	tableRIDs    []string       // parallel to ws.Tables
}

// buildWorksheetShell builds everything about a worksheet part except its
// row table: dimension, view, columns, protection, merges, autofilter,
// conditional formats, validations, hyperlinks, page setup and table refs.
func buildWorksheetShell(ws *Worksheet, internString func(string) (int, bool), plan *sheetRelPlan) xlsxWorksheet {
	x := xlsxWorksheet{Dimension: &xlsxDimension{Ref: ws.Dimension()}}
	if ws.View.FrozenRows > 0 || ws.View.FrozenCols > 0 || ws.View.TabColor != "" || ws.View.ZoomScale != 0 || !ws.View.ShowGridLines {
		sv := xlsxSheetViewElem{ShowGridLines: ws.View.ShowGridLines, ZoomScale: ws.View.ZoomScale}
		if ws.View.TabColor != "" {
			sv.TabColor = &xlsxTabColor{RGB: ws.View.TabColor}
		}
		if ws.View.FrozenRows > 0 || ws.View.FrozenCols > 0 {
			sv.Pane = &xlsxPane{
				XSplit: float64(ws.View.FrozenCols), YSplit: float64(ws.View.FrozenRows),
				State: "frozen",
			}
		}
		x.SheetViews = &xlsxSheetViews{SheetView: []xlsxSheetViewElem{sv}}
	}
	if len(ws.Columns) > 0 {
		cols := &xlsxCols{}
		for _, cd := range ws.Columns {
			cols.Col = append(cols.Col, xlsxCol{
				Min: cd.FirstCol, Max: cd.LastCol, Width: cd.Width,
				Style: int(cd.StyleHandle), Hidden: cd.Hidden,
			})
		}
		x.Cols = cols
	}

	if len(ws.Merges) > 0 {
		mc := &xlsxMergeCells{Count: len(ws.Merges)}
		for _, m := range ws.Merges {
			mc.Cell = append(mc.Cell, xlsxMergeCell{Ref: cellRangeRef(m)})
		}
		x.MergeCells = mc
	}
	if ws.AutoFilter != nil {
		x.AutoFilter = &xlsxAutoFilter{Ref: cellRangeRef(ws.AutoFilter.Range)}
	}
	if ws.Protect.Enabled || ws.Protect.PasswordHash != "" {
		x.SheetProtect = &xlsxSheetProtect{
			Sheet:         ws.Protect.Enabled,
			Password:      ws.Protect.PasswordHash,
			AlgorithmName: ws.Protect.AlgorithmID,
		}
	}
	for _, cf := range ws.ConditionalFmts {
		xcf := xlsxCondFmt{SQRef: cellRangeRef(cf.Range)}
		for _, rule := range cf.Rules {
			xcf.Rule = append(xcf.Rule, xlsxCondFmtRule{
				Type:     rule.Type,
				Operator: rule.Operator,
				DxfID:    rule.StyleDxfID,
				Priority: rule.Priority,
				Formula:  rule.Formula,
			})
		}
		x.ConditionalFs = append(x.ConditionalFs, xcf)
	}
	if len(ws.Validations) > 0 {
		dv := &xlsxDataValid{}
		for _, v := range ws.Validations {
			dv.DataValidation = append(dv.DataValidation, xlsxDataValidation{
				Type:         v.Type,
				Operator:     v.Operator,
				AllowBlank:   v.AllowBlank,
				ShowErrorMsg: v.ShowErrorMsg,
				ErrorTitle:   v.ErrorTitle,
				Error:        v.ErrorMessage,
				SQRef:        cellRangeRef(v.Range),
				Formula1:     v.Formula1,
				Formula2:     v.Formula2,
			})
		}
		x.DataValid = dv
	}
	if len(ws.Hyperlinks) > 0 {
		hl := &xlsxHyperlinks{}
		for i, h := range ws.Hyperlinks {
			ref, _ := CoordinatesToCellName(h.Row, h.Col)
			xh := xlsxHyperlink{Ref: ref, Display: h.Display, Tooltip: h.Tooltip}
			if h.Internal {
				xh.Location = h.Target
			} else if plan != nil {
				xh.RID = plan.hyperlinkRID[i]
			}
			hl.Hyperlink = append(hl.Hyperlink, xh)
		}
		x.Hyperlinks = hl
	}
	if ws.PageSetup.Margins != ([6]float64{}) {
		m := ws.PageSetup.Margins
		x.PageMargins = &xlsxPageMargins{Left: m[0], Right: m[1], Top: m[2], Bottom: m[3], Header: m[4], Footer: m[5]}
	}
	if ws.PageSetup.Orientation != "" || ws.PageSetup.PaperSize != 0 || ws.PageSetup.FitToWidth != 0 || ws.PageSetup.FitToHeight != 0 {
		x.PageSetup = &xlsxPageSetup{
			Orientation: ws.PageSetup.Orientation,
			PaperSize:   ws.PageSetup.PaperSize,
			FitToWidth:  ws.PageSetup.FitToWidth,
			FitToHeight: ws.PageSetup.FitToHeight,
		}
	}
	if ws.PageSetup.Header != "" || ws.PageSetup.Footer != "" {
		x.HeaderFooter = &xlsxHeaderFooter{OddHeader: ws.PageSetup.Header, OddFooter: ws.PageSetup.Footer}
	}
	if len(ws.Tables) > 0 && plan != nil {
		tp := &xlsxTableParts{Count: len(ws.Tables)}
		for _, rid := range plan.tableRIDs {
			tp.TablePart = append(tp.TablePart, xlsxTablePart{RID: rid})
		}
		x.TableParts = tp
	}

	return x
}

// buildRows returns a worksheet's row table, sorted by row index, covering
// both occupied cells and rows that only carry height/hidden/outline
// metadata. It is the slice that renderWorksheet in save.go embeds directly
// or, for a large sheet, partitions into parallel marshal chunks.
func buildRows(ws *Worksheet, internString func(string) (int, bool)) []xlsxRow {
	rowsByIndex := map[int]*xlsxRow{}
	ws.Cells.IterSorted(func(row, col int, v CellView) bool {
		xr, ok := rowsByIndex[row]
		if !ok {
			xr = &xlsxRow{R: row}
			if rd, ok := ws.Rows[row]; ok {
				xr.Ht, xr.Hidden, xr.OutlineLevel = rd.Height, rd.Hidden, rd.OutlineLevel
			}
			rowsByIndex[row] = xr
		}
		xr.C = append(xr.C, buildCellXML(row, col, v, internString))
		return true
	})
	for row, rd := range ws.Rows {
		if _, ok := rowsByIndex[row]; !ok {
			rowsByIndex[row] = &xlsxRow{R: row, Ht: rd.Height, Hidden: rd.Hidden, OutlineLevel: rd.OutlineLevel}
		}
	}
	indices := make([]int, 0, len(rowsByIndex))
	for r := range rowsByIndex {
		indices = append(indices, r)
	}
	sort.Ints(indices)
	rows := make([]xlsxRow, len(indices))
	for i, r := range indices {
		rows[i] = *rowsByIndex[r]
	}
	return rows
}

func buildCellXML(row, col int, v CellView, internString func(string) (int, bool)) xlsxC {
	ref, _ := CoordinatesToCellName(row, col)
	c := xlsxC{R: ref}
	if v.Style != DefaultStyle {
		c.S = int(v.Style)
	}
	switch v.Kind {
	case CellKindNumber, CellKindDate:
		c.V = strconv.FormatFloat(v.Num, 'g', -1, 64)
	case CellKindBool:
		c.T = "b"
		if v.Bool {
			c.V = "1"
		} else {
			c.V = "0"
		}
	case CellKindString:
		if v.DataTypeHint != "" {
			c.T = v.DataTypeHint
			c.V = v.Str
		} else if idx, shared := internString(v.Str); shared {
			c.T = "s"
			c.V = strconv.Itoa(idx)
		} else {
			c.T = "inlineStr"
			c.IS = &xlsxIS{T: &xlsxT{Val: v.Str}}
		}
	case CellKindFormula:
		c.F = &xlsxF{Val: v.Str}
		if v.CachedResult != nil {
			c.V = strconv.FormatFloat(*v.CachedResult, 'g', -1, 64)
		}
	case CellKindError:
		c.T = "e"
		c.V = v.Str
	}
	return c
}

