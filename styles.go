// Copyright 2016 - 2022 The excelize Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package ooxlsx

import (
	"fmt"
	"strings"

	"github.com/xuri/nfp"
)

// FontHandle, FillHandle and BorderHandle are 0-based indexes into a
// StyleCatalog's font, fill and border tables.
type (
	FontHandle   int
	FillHandle   int
	BorderHandle int
)

// StyleHandle is a 0-based index into a StyleCatalog's cell-xf table.
// Handle 0 is the reserved default style and always exists.
type StyleHandle int

// DefaultStyle is the reserved style handle every fresh catalog starts
// with; a cell with no explicit style resolves to it.
const DefaultStyle StyleHandle = 0

// builtinNumFmts holds the reserved semantics for number-format IDs 0-163.
// Only the common numeric, percentage, scientific, date/time and text IDs
// are populated; the rest are either "General"/blank or Excel-internal and
// are round-tripped by ID alone.
var builtinNumFmts = map[int]string{
	0:  "General",
	1:  "0",
	2:  "0.00",
	3:  "#,##0",
	4:  "#,##0.00",
	9:  "0%",
	10: "0.00%",
	11: "0.00E+00",
	12: "# ?/?",
	13: "# ??/??",
	14: "mm-dd-yy",
	15: "d-mmm-yy",
	16: "d-mmm",
	17: "mmm-yy",
	18: "h:mm AM/PM",
	19: "h:mm:ss AM/PM",
	20: "h:mm",
	21: "h:mm:ss",
	22: "m/d/yy h:mm",
	37: "#,##0 ;(#,##0)",
	38: "#,##0 ;[Red](#,##0)",
	39: "#,##0.00;(#,##0.00)",
	40: "#,##0.00;[Red](#,##0.00)",
	45: "mm:ss",
	46: "[h]:mm:ss",
	47: "mmss.0",
	48: "##0.0E+0",
	49: "@",
}

// builtinDateNumFmtIDs are the built-in IDs that render a cell as a date,
// time, or datetime.
var builtinDateNumFmtIDs = map[int]bool{
	14: true, 15: true, 16: true, 17: true, 18: true, 19: true,
	20: true, 21: true, 22: true, 45: true, 46: true, 47: true,
}

// firstCustomNumFmtID is the first ID a user-defined number format may use;
// IDs below it are reserved built-ins.
const firstCustomNumFmtID = 164

// StyleCatalog is a workbook-wide table of fonts, fills, borders, cell-xfs
// and named number formats. Equality of entries is by content, so interning
// the same style twice returns the same handle and re-saving a workbook
// collapses duplicate styles introduced by independent mutation calls.
type StyleCatalog struct {
	fonts   []*xlsxFont
	fills   []*xlsxFill
	borders []*xlsxBorder
	xfs     []*xlsxXf

	fontKeys   map[string]FontHandle
	fillKeys   map[string]FillHandle
	borderKeys map[string]BorderHandle
	xfKeys     map[string]StyleHandle

	customNumFmts map[int]string // id (>=164) -> format code
	numFmtByCode  map[string]int // format code -> id, for interning
	nextNumFmtID  int
}

// NewStyleCatalog returns a catalog pre-populated with the default font,
// fill, border and xf at index 0, matching a freshly created workbook's
// styles.xml.
func NewStyleCatalog() *StyleCatalog {
	c := &StyleCatalog{
		fontKeys:      make(map[string]FontHandle),
		fillKeys:      make(map[string]FillHandle),
		borderKeys:    make(map[string]BorderHandle),
		xfKeys:        make(map[string]StyleHandle),
		customNumFmts: make(map[int]string),
		numFmtByCode:  make(map[string]int),
		nextNumFmtID:  firstCustomNumFmtID,
	}
	c.internFont(&xlsxFont{})
	c.internFill(&xlsxFill{PatternFill: &xlsxPatternFill{PatternType: "none"}})
	c.internFill(&xlsxFill{PatternFill: &xlsxPatternFill{PatternType: "gray125"}})
	c.internBorder(&xlsxBorder{})
	c.internXf(&xlsxXf{})
	return c
}

func fontKey(f *xlsxFont) string {
	var b strings.Builder
	fmt.Fprintf(&b, "b=%v,i=%v,strike=%v,u=%s,sz=%s,color=%s,name=%s",
		f.B.bool(), f.I.bool(), f.Strike.bool(), attrStr(f.U), attrFloatStr(f.Sz),
		colorKey(f.Color), attrStr(f.Name))
	return b.String()
}

func attrStr(a *attrValString) string {
	if a == nil {
		return ""
	}
	return a.Val
}

func attrFloatStr(a *attrValFloat) string {
	if a == nil {
		return ""
	}
	return fmt.Sprintf("%g", a.Val)
}

func colorKey(c *xlsxColor) string {
	if c == nil {
		return ""
	}
	theme := -1
	if c.Theme != nil {
		theme = *c.Theme
	}
	return fmt.Sprintf("rgb=%s,idx=%d,theme=%d,tint=%g,auto=%v", c.RGB, c.Indexed, theme, c.Tint, c.Auto)
}

// internFont interns a font by content, returning its handle.
func (c *StyleCatalog) internFont(f *xlsxFont) FontHandle {
	k := fontKey(f)
	if h, ok := c.fontKeys[k]; ok {
		return h
	}
	h := FontHandle(len(c.fonts))
	c.fonts = append(c.fonts, f)
	c.fontKeys[k] = h
	return h
}

func fillKey(f *xlsxFill) string {
	if f.PatternFill != nil {
		pf := f.PatternFill
		return fmt.Sprintf("pattern=%s,fg=%s,bg=%s", pf.PatternType, colorKey(pf.FgColor), colorKey(pf.BgColor))
	}
	if f.GradientFill != nil {
		gf := f.GradientFill
		return fmt.Sprintf("gradient=%s,deg=%g,stops=%d", gf.Type, gf.Degree, len(gf.Stop))
	}
	return "empty"
}

// internFill interns a fill by content, returning its handle.
func (c *StyleCatalog) internFill(f *xlsxFill) FillHandle {
	k := fillKey(f)
	if h, ok := c.fillKeys[k]; ok {
		return h
	}
	h := FillHandle(len(c.fills))
	c.fills = append(c.fills, f)
	c.fillKeys[k] = h
	return h
}

func lineKey(l xlsxLine) string {
	return fmt.Sprintf("%s/%s", l.Style, colorKey(l.Color))
}

func borderKey(b *xlsxBorder) string {
	return fmt.Sprintf("l=%s,r=%s,t=%s,b=%s,d=%s,du=%v,dd=%v",
		lineKey(b.Left), lineKey(b.Right), lineKey(b.Top), lineKey(b.Bottom), lineKey(b.Diagonal),
		b.DiagonalUp, b.DiagonalDown)
}

// internBorder interns a border by content, returning its handle.
func (c *StyleCatalog) internBorder(b *xlsxBorder) BorderHandle {
	k := borderKey(b)
	if h, ok := c.borderKeys[k]; ok {
		return h
	}
	h := BorderHandle(len(c.borders))
	c.borders = append(c.borders, b)
	c.borderKeys[k] = h
	return h
}

func xfKey(xf *xlsxXf) string {
	numFmtID := 0
	if xf.NumFmtID != nil {
		numFmtID = *xf.NumFmtID
	}
	fontID, fillID, borderID := 0, 0, 0
	if xf.FontID != nil {
		fontID = *xf.FontID
	}
	if xf.FillID != nil {
		fillID = *xf.FillID
	}
	if xf.BorderID != nil {
		borderID = *xf.BorderID
	}
	var align string
	if xf.Alignment != nil {
		a := xf.Alignment
		align = fmt.Sprintf("h=%s,v=%s,wrap=%v,rot=%d,indent=%d", a.Horizontal, a.Vertical, a.WrapText, a.TextRotation, a.Indent)
	}
	var prot string
	if xf.Protection != nil {
		prot = fmt.Sprintf("hidden=%v,locked=%v", boolPtr(xf.Protection.Hidden), boolPtr(xf.Protection.Locked))
	}
	return fmt.Sprintf("num=%d,font=%d,fill=%d,border=%d,align={%s},prot={%s}",
		numFmtID, fontID, fillID, borderID, align, prot)
}

func boolPtr(b *bool) bool { return b != nil && *b }

// InternStyle interns a cell-xf entry by content and returns its handle.
// The font, fill and border indexes on xf must already refer to entries
// interned into this same catalog (via InternFont/InternFill/InternBorder).
func (c *StyleCatalog) InternStyle(xf *xlsxXf) StyleHandle {
	return c.internXf(xf)
}

func (c *StyleCatalog) internXf(xf *xlsxXf) StyleHandle {
	k := xfKey(xf)
	if h, ok := c.xfKeys[k]; ok {
		return h
	}
	h := StyleHandle(len(c.xfs))
	c.xfs = append(c.xfs, xf)
	c.xfKeys[k] = h
	return h
}

// InternFont interns a font, returning its handle. Exported for callers
// assembling a style from scratch via the Font/Fill/Border building blocks.
func (c *StyleCatalog) InternFont(f *xlsxFont) FontHandle { return c.internFont(f) }

// InternFill interns a fill, returning its handle.
func (c *StyleCatalog) InternFill(f *xlsxFill) FillHandle { return c.internFill(f) }

// InternBorder interns a border, returning its handle.
func (c *StyleCatalog) InternBorder(b *xlsxBorder) BorderHandle { return c.internBorder(b) }

// InternNumFmt interns a user-defined number format string, returning its
// ID (>= 164). Interning the same code twice returns the same ID.
func (c *StyleCatalog) InternNumFmt(code string) int {
	if id, ok := c.numFmtByCode[code]; ok {
		return id
	}
	id := c.nextNumFmtID
	c.nextNumFmtID++
	c.customNumFmts[id] = code
	c.numFmtByCode[code] = id
	return id
}

// NumFmtCode returns the format code for a number-format ID, consulting the
// built-in table for IDs < 164 and the catalog's custom table otherwise.
func (c *StyleCatalog) NumFmtCode(id int) (string, bool) {
	if id < firstCustomNumFmtID {
		code, ok := builtinNumFmts[id]
		return code, ok
	}
	code, ok := c.customNumFmts[id]
	return code, ok
}

// IsDateFormat reports whether a number-format ID renders as a date, time,
// or datetime, consulting the built-in table for reserved IDs and parsing
// custom format codes with github.com/xuri/nfp otherwise.
func (c *StyleCatalog) IsDateFormat(id int) bool {
	if id < firstCustomNumFmtID {
		return builtinDateNumFmtIDs[id]
	}
	code, ok := c.customNumFmts[id]
	if !ok {
		return false
	}
	return isDateFormatCode(code)
}

// isDateFormatCode classifies a custom number-format code by tokenizing it
// with github.com/xuri/nfp and checking for date/time or elapsed-time
// tokens in any section.
func isDateFormatCode(code string) bool {
	parser := nfp.NumberFormatParser()
	sections := parser.Parse(code)
	for _, sec := range sections {
		for _, tok := range sec.Items {
			if tok.TType == nfp.TokenTypeDateTimes || tok.TType == nfp.TokenTypeElapsedDateTimes {
				return true
			}
		}
	}
	return false
}

// AddStyle builds a cell-xf from a public Style description, interning its
// font, fill and border parts, and returns the style handle. Passing an
// equivalent Style twice returns the same handle.
func (c *StyleCatalog) AddStyle(s *Style) StyleHandle {
	xf := &xlsxXf{}
	if s.Font != nil {
		f := &xlsxFont{}
		if s.Font.Bold {
			f.B = boolAttr(true)
		}
		if s.Font.Italic {
			f.I = boolAttr(true)
		}
		if s.Font.Strike {
			f.Strike = boolAttr(true)
		}
		if s.Font.Underline != "" {
			f.U = &attrValString{Val: s.Font.Underline}
		}
		if s.Font.Size > 0 {
			f.Sz = &attrValFloat{Val: s.Font.Size}
		}
		if s.Font.Family != "" {
			f.Name = &attrValString{Val: s.Font.Family}
		}
		if s.Font.Color != "" {
			f.Color = &xlsxColor{RGB: s.Font.Color}
		}
		id := int(c.internFont(f))
		xf.FontID = &id
		xf.ApplyFont = boolTrue()
	}
	if s.Fill.Type != "" {
		fill := &xlsxFill{PatternFill: &xlsxPatternFill{PatternType: "solid"}}
		if len(s.Fill.Color) > 0 {
			fill.PatternFill.FgColor = &xlsxColor{RGB: s.Fill.Color[0]}
		}
		id := int(c.internFill(fill))
		xf.FillID = &id
		xf.ApplyFill = boolTrue()
	}
	if len(s.Border) > 0 {
		b := &xlsxBorder{}
		for _, side := range s.Border {
			line := xlsxLine{Style: "thin"}
			if side.Color != "" {
				line.Color = &xlsxColor{RGB: side.Color}
			}
			switch side.Type {
			case "left":
				b.Left = line
			case "right":
				b.Right = line
			case "top":
				b.Top = line
			case "bottom":
				b.Bottom = line
			case "diagonal":
				b.Diagonal = line
			}
		}
		id := int(c.internBorder(b))
		xf.BorderID = &id
		xf.ApplyBorder = boolTrue()
	}
	if s.CustomNumFmt != nil {
		id := c.InternNumFmt(*s.CustomNumFmt)
		xf.NumFmtID = &id
		xf.ApplyNumberFormat = boolTrue()
	} else if s.NumFmt != 0 {
		id := s.NumFmt
		xf.NumFmtID = &id
		xf.ApplyNumberFormat = boolTrue()
	}
	if s.Alignment != nil {
		xf.Alignment = &xlsxAlignment{
			Horizontal:      s.Alignment.Horizontal,
			Indent:          s.Alignment.Indent,
			JustifyLastLine: s.Alignment.JustifyLastLine,
			ReadingOrder:    s.Alignment.ReadingOrder,
			RelativeIndent:  s.Alignment.RelativeIndent,
			ShrinkToFit:     s.Alignment.ShrinkToFit,
			TextRotation:    s.Alignment.TextRotation,
			Vertical:        s.Alignment.Vertical,
			WrapText:        s.Alignment.WrapText,
		}
		xf.ApplyAlignment = boolTrue()
	}
	if s.Protection != nil {
		xf.Protection = &xlsxProtection{Hidden: &s.Protection.Hidden, Locked: &s.Protection.Locked}
		xf.ApplyProtection = boolTrue()
	}
	return c.internXf(xf)
}

func boolTrue() *bool {
	t := true
	return &t
}

// Lookup resolves a style handle to a JSON-friendly, read-only view,
// returning ok=false if the handle does not refer to a live catalog entry.
func (c *StyleCatalog) Lookup(h StyleHandle) (StyleView, bool) {
	if int(h) < 0 || int(h) >= len(c.xfs) {
		return StyleView{}, false
	}
	xf := c.xfs[h]
	view := StyleView{}
	if xf.NumFmtID != nil {
		view.NumFmt = *xf.NumFmtID
	}
	if xf.FontID != nil && int(*xf.FontID) < len(c.fonts) {
		view.Font = c.resolveFontView(FontHandle(*xf.FontID))
	}
	if xf.FillID != nil && int(*xf.FillID) < len(c.fills) {
		view.Fill = c.resolveFillView(FillHandle(*xf.FillID))
	}
	if xf.BorderID != nil && int(*xf.BorderID) < len(c.borders) {
		view.Border = c.resolveBorderView(BorderHandle(*xf.BorderID))
	}
	if xf.Alignment != nil {
		view.Alignment = &Alignment{
			Horizontal:      xf.Alignment.Horizontal,
			Indent:          xf.Alignment.Indent,
			JustifyLastLine: xf.Alignment.JustifyLastLine,
			ReadingOrder:    xf.Alignment.ReadingOrder,
			RelativeIndent:  xf.Alignment.RelativeIndent,
			ShrinkToFit:     xf.Alignment.ShrinkToFit,
			TextRotation:    xf.Alignment.TextRotation,
			Vertical:        xf.Alignment.Vertical,
			WrapText:        xf.Alignment.WrapText,
		}
	}
	if xf.Protection != nil {
		view.Protection = &Protection{
			Hidden: boolPtr(xf.Protection.Hidden),
			Locked: boolPtr(xf.Protection.Locked),
		}
	}
	return view, true
}

func (c *StyleCatalog) resolveFontView(h FontHandle) *Font {
	f := c.fonts[h]
	view := &Font{
		Bold:   f.B.bool(),
		Italic: f.I.bool(),
		Strike: f.Strike.bool(),
		Size:   attrFloatVal(f.Sz),
		Family: attrStr(f.Name),
	}
	if f.U != nil {
		view.Underline = f.U.Val
	}
	if f.Color != nil {
		view.Color = f.Color.RGB
	}
	return view
}

func attrFloatVal(a *attrValFloat) float64 {
	if a == nil {
		return 0
	}
	return a.Val
}

func (c *StyleCatalog) resolveFillView(h FillHandle) Fill {
	f := c.fills[h]
	view := Fill{}
	if f.PatternFill != nil {
		view.Type = "pattern"
		if f.PatternFill.FgColor != nil {
			view.Color = append(view.Color, f.PatternFill.FgColor.RGB)
		}
		if f.PatternFill.BgColor != nil {
			view.Color = append(view.Color, f.PatternFill.BgColor.RGB)
		}
	} else if f.GradientFill != nil {
		view.Type = "gradient"
	}
	return view
}

func (c *StyleCatalog) resolveBorderView(h BorderHandle) []Border {
	b := c.borders[h]
	sides := []struct {
		name string
		l    xlsxLine
	}{
		{"left", b.Left}, {"right", b.Right}, {"top", b.Top}, {"bottom", b.Bottom}, {"diagonal", b.Diagonal},
	}
	out := make([]Border, 0, len(sides))
	for _, s := range sides {
		if s.l.Style == "" {
			continue
		}
		color := ""
		if s.l.Color != nil {
			color = s.l.Color.RGB
		}
		out = append(out, Border{Type: s.name, Color: color, Style: 0})
	}
	return out
}

// ResolveFont returns the raw font entry for a handle; used internally by
// the XML write layer to assemble xl/styles.xml's <fonts> table.
func (c *StyleCatalog) ResolveFont(h FontHandle) (*xlsxFont, bool) {
	if int(h) < 0 || int(h) >= len(c.fonts) {
		return nil, false
	}
	return c.fonts[h], true
}

// ResolveFill returns the raw fill entry for a handle.
func (c *StyleCatalog) ResolveFill(h FillHandle) (*xlsxFill, bool) {
	if int(h) < 0 || int(h) >= len(c.fills) {
		return nil, false
	}
	return c.fills[h], true
}

// ResolveBorder returns the raw border entry for a handle.
func (c *StyleCatalog) ResolveBorder(h BorderHandle) (*xlsxBorder, bool) {
	if int(h) < 0 || int(h) >= len(c.borders) {
		return nil, false
	}
	return c.borders[h], true
}

// ResolveXf returns the raw cell-xf entry for a handle.
func (c *StyleCatalog) ResolveXf(h StyleHandle) (*xlsxXf, bool) {
	if int(h) < 0 || int(h) >= len(c.xfs) {
		return nil, false
	}
	return c.xfs[h], true
}

func (c *StyleCatalog) fontCount() int   { return len(c.fonts) }
func (c *StyleCatalog) fillCount() int   { return len(c.fills) }
func (c *StyleCatalog) borderCount() int { return len(c.borders) }
func (c *StyleCatalog) xfCount() int     { return len(c.xfs) }
