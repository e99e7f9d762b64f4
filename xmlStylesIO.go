// Copyright 2016 - 2022 The excelize Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package ooxlsx

import (
	"encoding/xml"
	"sort"
	"strings"
)

// parseStylesPart decodes xl/styles.xml into a fresh StyleCatalog. Fonts,
// fills, borders and cell-xfs are loaded positionally (their OOXML index is
// their position in each table), then indexed by content key so later
// InternFont/InternFill/InternBorder/InternStyle calls on the loaded
// catalog still deduplicate correctly against what was on disk.
func parseStylesPart(data []byte) (*StyleCatalog, error) {
	var ss xlsxStyleSheet
	if len(data) > 0 {
		if err := newPartDecoder(strings.NewReader(string(data))).Decode(&ss); err != nil {
			return nil, newParseError("xl/styles.xml", 0, newXMLError(err))
		}
	}
	c := &StyleCatalog{
		fontKeys:      map[string]FontHandle{},
		fillKeys:      map[string]FillHandle{},
		borderKeys:    map[string]BorderHandle{},
		xfKeys:        map[string]StyleHandle{},
		customNumFmts: map[int]string{},
		numFmtByCode:  map[string]int{},
		nextNumFmtID:  firstCustomNumFmtID,
	}
	if ss.NumFmts != nil {
		for _, nf := range ss.NumFmts.NumFmt {
			c.customNumFmts[nf.NumFmtID] = nf.FormatCode
			c.numFmtByCode[nf.FormatCode] = nf.NumFmtID
			if nf.NumFmtID >= c.nextNumFmtID {
				c.nextNumFmtID = nf.NumFmtID + 1
			}
		}
	}
	if ss.Fonts != nil {
		for _, f := range ss.Fonts.Font {
			c.fonts = append(c.fonts, f)
			c.fontKeys[fontKey(f)] = FontHandle(len(c.fonts) - 1)
		}
	}
	if ss.Fills != nil {
		for _, f := range ss.Fills.Fill {
			c.fills = append(c.fills, f)
			c.fillKeys[fillKey(f)] = FillHandle(len(c.fills) - 1)
		}
	}
	if ss.Borders != nil {
		for _, b := range ss.Borders.Border {
			c.borders = append(c.borders, b)
			c.borderKeys[borderKey(b)] = BorderHandle(len(c.borders) - 1)
		}
	}
	if ss.CellXfs != nil {
		for i := range ss.CellXfs.Xf {
			xf := ss.CellXfs.Xf[i]
			c.xfs = append(c.xfs, &xf)
			c.xfKeys[xfKey(&xf)] = StyleHandle(len(c.xfs) - 1)
		}
	}
	if len(c.fonts) == 0 || len(c.fills) == 0 || len(c.borders) == 0 || len(c.xfs) == 0 {
		return NewStyleCatalog(), nil
	}
	return c, nil
}

// writeStylesPart serializes a StyleCatalog's tables into xl/styles.xml,
// positionally: table index i round-trips as xf/font/fill/border id i.
func writeStylesPart(c *StyleCatalog) []byte {
	ss := xlsxStyleSheet{
		Fonts:        &xlsxFonts{Count: len(c.fonts), Font: c.fonts},
		Fills:        &xlsxFills{Count: len(c.fills), Fill: c.fills},
		Borders:      &xlsxBorders{Count: len(c.borders), Border: c.borders},
		CellStyleXfs: &xlsxCellStyleXfs{Count: 1, Xf: []xlsxXf{{}}},
	}
	xfs := make([]xlsxXf, len(c.xfs))
	for i, xf := range c.xfs {
		xfs[i] = *xf
	}
	ss.CellXfs = &xlsxCellXfs{Count: len(xfs), Xf: xfs}
	if len(c.customNumFmts) > 0 {
		ids := make([]int, 0, len(c.customNumFmts))
		for id := range c.customNumFmts {
			ids = append(ids, id)
		}
		sort.Ints(ids)
		nf := &xlsxNumFmts{Count: len(ids)}
		for _, id := range ids {
			nf.NumFmt = append(nf.NumFmt, &xlsxNumFmt{NumFmtID: id, FormatCode: c.customNumFmts[id]})
		}
		ss.NumFmts = nf
	}
	out, _ := xml.Marshal(&ss)
	return append([]byte(xml.Header), out...)
}
