// Copyright 2016 - 2022 The excelize Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package ooxlsx

import (
	"encoding/xml"
	"fmt"
)

// xlsxContentTypes directly maps [Content_Types].xml, the package manifest
// every OOXML reader consults first to know how to interpret each part.
type xlsxContentTypes struct {
	XMLName  xml.Name                 `xml:"http://schemas.openxmlformats.org/package/2006/content-types Types"`
	Defaults []xlsxContentTypeDefault `xml:"Default"`
	Override []xlsxContentTypeOverride `xml:"Override"`
}

type xlsxContentTypeDefault struct {
	Extension   string `xml:"Extension,attr"`
	ContentType string `xml:"ContentType,attr"`
}

type xlsxContentTypeOverride struct {
	PartName    string `xml:"PartName,attr"`
	ContentType string `xml:"ContentType,attr"`
}

const (
	contentTypeWorkbook   = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet.main+xml"
	contentTypeWorksheet  = "application/vnd.openxmlformats-officedocument.spreadsheetml.worksheet+xml"
	contentTypeStyles     = "application/vnd.openxmlformats-officedocument.spreadsheetml.styles+xml"
	contentTypeSharedStrs = "application/vnd.openxmlformats-officedocument.spreadsheetml.sharedStrings+xml"
	contentTypeTable      = "application/vnd.openxmlformats-officedocument.spreadsheetml.table+xml"
	contentTypeCore       = "application/vnd.openxmlformats-package.core-properties+xml"
	contentTypeApp        = "application/vnd.openxmlformats-officedocument.extended-properties+xml"
)

// writeContentTypes serializes [Content_Types].xml for a workbook with the
// given number of worksheet and structured-table parts. Overrides are listed
// in a fixed order (workbook, styles, shared strings, core, app, sheets,
// tables), which is not the order save.go writes the parts in.
func writeContentTypes(sheetCount, tableCount int) []byte {
	ct := xlsxContentTypes{
		Defaults: []xlsxContentTypeDefault{
			{Extension: "rels", ContentType: "application/vnd.openxmlformats-package.relationships+xml"},
			{Extension: "xml", ContentType: "application/xml"},
		},
		Override: []xlsxContentTypeOverride{
			{PartName: "/xl/workbook.xml", ContentType: contentTypeWorkbook},
			{PartName: "/xl/styles.xml", ContentType: contentTypeStyles},
			{PartName: "/xl/sharedStrings.xml", ContentType: contentTypeSharedStrs},
			{PartName: "/docProps/core.xml", ContentType: contentTypeCore},
			{PartName: "/docProps/app.xml", ContentType: contentTypeApp},
		},
	}
	for i := 1; i <= sheetCount; i++ {
		ct.Override = append(ct.Override, xlsxContentTypeOverride{
			PartName:    fmt.Sprintf("/xl/worksheets/sheet%d.xml", i),
			ContentType: contentTypeWorksheet,
		})
	}
	for i := 1; i <= tableCount; i++ {
		ct.Override = append(ct.Override, xlsxContentTypeOverride{
			PartName:    fmt.Sprintf("/xl/tables/table%d.xml", i),
			ContentType: contentTypeTable,
		})
	}
	out, _ := xml.Marshal(ct)
	return append([]byte(xml.Header), out...)
}
