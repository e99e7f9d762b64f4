// Copyright 2016 - 2022 The excelize Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package ooxlsx

import "encoding/xml"

// xlsxCoreProperties directly maps docProps/core.xml, the package-level
// Dublin Core metadata block every OOXML document carries.
type xlsxCoreProperties struct {
	XMLName        xml.Name `xml:"http://schemas.openxmlformats.org/package/2006/metadata/core-properties cp:coreProperties"`
	Cp             string   `xml:"xmlns:cp,attr"`
	Dc             string   `xml:"xmlns:dc,attr"`
	Dcterms        string   `xml:"xmlns:dcterms,attr"`
	Dcmitype       string   `xml:"xmlns:dcmitype,attr"`
	Xsi            string   `xml:"xmlns:xsi,attr"`
	Title          string   `xml:"dc:title,omitempty"`
	Subject        string   `xml:"dc:subject,omitempty"`
	Creator        string   `xml:"dc:creator,omitempty"`
	Keywords       string   `xml:"cp:keywords,omitempty"`
	Description    string   `xml:"dc:description,omitempty"`
	LastModifiedBy string   `xml:"cp:lastModifiedBy,omitempty"`
	Created        *xlsxCoreDate `xml:"dcterms:created"`
	Modified       *xlsxCoreDate `xml:"dcterms:modified"`
}

// xlsxCoreDate wraps a dcterms:W3CDTF timestamp, which per the schema
// always carries xsi:type="dcterms:W3CDTF" alongside the chardata value.
type xlsxCoreDate struct {
	Type  string `xml:"xsi:type,attr"`
	Value string `xml:",chardata"`
}

// writeCoreProperties serializes docProps/core.xml. createdAt/modifiedAt
// are passed in rather than computed here, since this package never reads
// the wall clock on its own; callers without a meaningful timestamp pass
// the empty string for both and the elements are simply omitted.
func writeCoreProperties(creator, createdAt, modifiedAt string) []byte {
	cp := xlsxCoreProperties{
		Cp:       "http://schemas.openxmlformats.org/package/2006/metadata/core-properties",
		Dc:       "http://purl.org/dc/elements/1.1/",
		Dcterms:  "http://purl.org/dc/terms/",
		Dcmitype: "http://purl.org/dc/dcmitype/",
		Xsi:      "http://www.w3.org/2001/XMLSchema-instance",
		Creator:  creator,
	}
	if createdAt != "" {
		cp.Created = &xlsxCoreDate{Type: "dcterms:W3CDTF", Value: createdAt}
	}
	if modifiedAt != "" {
		cp.Modified = &xlsxCoreDate{Type: "dcterms:W3CDTF", Value: modifiedAt}
	}
	out, _ := xml.Marshal(cp)
	return append([]byte(xml.Header), out...)
}
