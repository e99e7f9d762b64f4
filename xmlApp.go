// Copyright 2016 - 2022 The excelize Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package ooxlsx

import (
	"encoding/xml"
	"fmt"
	"strings"
)

// xlsxAppProperties directly maps docProps/app.xml. On write this library
// sets only the sheet-name vectors and a fixed Application stamp; the other
// fields stay empty and are omitted.
type xlsxAppProperties struct {
	XMLName       xml.Name           `xml:"http://schemas.openxmlformats.org/officeDocument/2006/extended-properties Properties"`
	Vt            string             `xml:"xmlns:vt,attr"`
	Application   string             `xml:",omitempty"`
	DocSecurity   int                `xml:",omitempty"`
	ScaleCrop     bool               `xml:",omitempty"`
	HeadingPairs  *xlsxVectorVariant `xml:"HeadingPairs"`
	TitlesOfParts *xlsxVectorLpstr   `xml:"TitlesOfParts"`
	Company       string             `xml:",omitempty"`
	LinksUpToDate bool               `xml:",omitempty"`
	AppVersion    string             `xml:",omitempty"`
}

// xlsxVectorVariant and xlsxVectorLpstr are opaque, innerxml-preserved
// vector payloads, matching the real docProps/app.xml schema's vt:vector
// encoding closely enough to round-trip without this library interpreting
// it further.
type xlsxVectorVariant struct {
	Content string `xml:",innerxml"`
}

type xlsxVectorLpstr struct {
	Content string `xml:",innerxml"`
}

// writeAppProperties serializes docProps/app.xml, listing every sheet name
// in document order the way Excel's own "Worksheets" heading pair does.
func writeAppProperties(sheetNames []string) []byte {
	app := xlsxAppProperties{
		Vt:            "http://schemas.openxmlformats.org/officeDocument/2006/docPropsVTypes",
		Application:   "ooxlsx",
		HeadingPairs:  &xlsxVectorVariant{Content: headingPairsXML(len(sheetNames))},
		TitlesOfParts: &xlsxVectorLpstr{Content: titlesOfPartsXML(sheetNames)},
	}
	out, _ := xml.Marshal(app)
	return append([]byte(xml.Header), out...)
}

func headingPairsXML(sheetCount int) string {
	return fmt.Sprintf(
		`<vt:vector size="2" baseType="variant"><vt:variant><vt:lpstr>Worksheets</vt:lpstr></vt:variant><vt:variant><vt:i4>%d</vt:i4></vt:variant></vt:vector>`,
		sheetCount,
	)
}

func titlesOfPartsXML(sheetNames []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, `<vt:vector size="%d" baseType="lpstr">`, len(sheetNames))
	for _, name := range sheetNames {
		b.WriteString(`<vt:lpstr>`)
		xml.EscapeText(&b, []byte(name))
		b.WriteString(`</vt:lpstr>`)
	}
	b.WriteString(`</vt:vector>`)
	return b.String()
}
