// Copyright 2016 - 2022 The excelize Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package ooxlsx

import (
	"encoding/xml"
	"strings"
)

// xlsxTable directly maps one xl/tables/tableN.xml part, describing a
// structured table (ListObject) over a worksheet range.
type xlsxTable struct {
	XMLName        xml.Name            `xml:"http://schemas.openxmlformats.org/spreadsheetml/2006/main table"`
	ID             int                 `xml:"id,attr"`
	Name           string              `xml:"name,attr,omitempty"`
	DisplayName    string              `xml:"displayName,attr,omitempty"`
	Ref            string              `xml:"ref,attr"`
	HeaderRowCount *int                `xml:"headerRowCount,attr"`
	AutoFilter     *xlsxAutoFilter     `xml:"autoFilter"`
	TableColumns   *xlsxTableColumns   `xml:"tableColumns"`
	TableStyleInfo *xlsxTableStyleInfo `xml:"tableStyleInfo"`
}

type xlsxTableColumns struct {
	Count       int                `xml:"count,attr"`
	TableColumn []*xlsxTableColumn `xml:"tableColumn"`
}

type xlsxTableColumn struct {
	ID   int    `xml:"id,attr"`
	Name string `xml:"name,attr"`
}

type xlsxTableStyleInfo struct {
	Name              string `xml:"name,attr,omitempty"`
	ShowFirstColumn   bool   `xml:"showFirstColumn,attr"`
	ShowLastColumn    bool   `xml:"showLastColumn,attr"`
	ShowRowStripes    bool   `xml:"showRowStripes,attr"`
	ShowColumnStripes bool   `xml:"showColumnStripes,attr"`
}

// parseTablePart decodes one xl/tables/tableN.xml part into the model's
// Table shape.
func parseTablePart(partName string, data []byte) (Table, error) {
	var x xlsxTable
	if err := newPartDecoder(strings.NewReader(string(data))).Decode(&x); err != nil {
		return Table{}, newParseError(partName, 0, newXMLError(err))
	}
	r, err := parseCellRange(x.Ref)
	if err != nil {
		return Table{}, newParseError(partName, 0, err)
	}
	t := Table{Name: x.Name, Range: r, HeaderRow: x.HeaderRowCount == nil || *x.HeaderRowCount > 0}
	if x.TableStyleInfo != nil {
		t.StyleName = x.TableStyleInfo.Name
	}
	if x.TableColumns != nil {
		for _, col := range x.TableColumns.TableColumn {
			t.ColumnNames = append(t.ColumnNames, col.Name)
		}
	}
	return t, nil
}

// writeTablePart serializes one Table as a standalone xl/tables/tableN.xml
// part. id is the workbook-unique table id the part is named after.
func writeTablePart(t Table, id int) []byte {
	name := t.Name
	if name == "" {
		name = "Table" + itoa(id)
	}
	x := xlsxTable{
		ID:          id,
		Name:        name,
		DisplayName: name,
		Ref:         cellRangeRef(t.Range),
	}
	if !t.HeaderRow {
		zero := 0
		x.HeaderRowCount = &zero
	}
	if len(t.ColumnNames) > 0 {
		cols := &xlsxTableColumns{Count: len(t.ColumnNames)}
		for i, n := range t.ColumnNames {
			cols.TableColumn = append(cols.TableColumn, &xlsxTableColumn{ID: i + 1, Name: n})
		}
		x.TableColumns = cols
	}
	if t.StyleName != "" {
		x.TableStyleInfo = &xlsxTableStyleInfo{Name: t.StyleName, ShowRowStripes: true}
	}
	out, _ := xml.Marshal(x)
	return append([]byte(xml.Header), out...)
}
