// Copyright 2016 - 2022 The excelize Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package ooxlsx

import (
	"encoding/xml"
	"strings"
)

// xlsxSST directly maps the sst element of xl/sharedStrings.xml.
type xlsxSST struct {
	XMLName     xml.Name `xml:"http://schemas.openxmlformats.org/spreadsheetml/2006/main sst"`
	Count       int      `xml:"count,attr"`
	UniqueCount int      `xml:"uniqueCount,attr"`
	SI          []xlsxSI `xml:"si"`
}

// xlsxSI (String Item) is one entry in the shared-string table. A plain
// string populates T; character-level formatting populates R instead, one
// run per formatted span.
type xlsxSI struct {
	T *xlsxT  `xml:"t"`
	R []xlsxR `xml:"r"`
}

// PlainText flattens a string item to its concatenated plain text,
// discarding rich-text run boundaries.
func (si xlsxSI) PlainText() string {
	if len(si.R) > 0 {
		var b strings.Builder
		for _, r := range si.R {
			if r.T != nil {
				b.WriteString(r.T.Val)
			}
		}
		return b.String()
	}
	if si.T != nil {
		return si.T.Val
	}
	return ""
}

// xlsxR is one rich-text run.
type xlsxR struct {
	RPr *xlsxRPr `xml:"rPr"`
	T   *xlsxT   `xml:"t"`
}

// xlsxT maps the <t> element; Space preserves xml:space="preserve" when the
// text has leading/trailing whitespace significant to its rendering.
type xlsxT struct {
	XMLName xml.Name `xml:"t"`
	Space   string   `xml:"xml space,attr,omitempty"`
	Val     string   `xml:",chardata"`
}

// xlsxRPr is the run-properties element of a rich-text run.
type xlsxRPr struct {
	B      *attrValBool   `xml:"b"`
	I      *attrValBool   `xml:"i"`
	Strike *attrValBool   `xml:"strike"`
	Color  *xlsxColor     `xml:"color"`
	Sz     *attrValFloat  `xml:"sz"`
	U      *attrValString `xml:"u"`
	RFont  *attrValString `xml:"rFont"`
}

// richTextSpans holds the original rich-text runs for a shared string,
// indexed by its position in the stream, so a round-trip preserves
// per-character formatting even though the cell store only carries plain
// text.
type richTextSpans map[int][]xlsxR

// parseSharedStrings decodes xl/sharedStrings.xml into the workbook's
// string pool, in document order (the index of each string is its stream
// position, matching the t="s" index cells reference). It returns the
// preserved rich-text spans for entries that used runs instead of a single
// <t>.
func parseSharedStrings(pool *stringPool, data []byte) (indexToHandle []StringHandle, spans richTextSpans, err error) {
	if len(data) == 0 {
		return nil, nil, nil
	}
	var sst xlsxSST
	dec := newPartDecoder(strings.NewReader(string(data)))
	if decErr := dec.Decode(&sst); decErr != nil {
		return nil, nil, newParseError("xl/sharedStrings.xml", 0, newXMLError(decErr))
	}
	indexToHandle = make([]StringHandle, len(sst.SI))
	for i, si := range sst.SI {
		indexToHandle[i] = pool.intern(si.PlainText())
		if len(si.R) > 0 {
			if spans == nil {
				spans = make(richTextSpans)
			}
			spans[i] = si.R
		}
	}
	return indexToHandle, spans, nil
}

// writeSharedStrings serializes ordered shared-string values (already
// filtered by the save-time census to those referenced at least
// Policy.InlineInternThreshold times) into xl/sharedStrings.xml, preserving
// original rich-text runs for a string whose text equals a rich entry seen
// on load.
func writeSharedStrings(ordered []string, spans richTextSpans, originalIndexOf map[string]int) []byte {
	sst := xlsxSST{Count: len(ordered), UniqueCount: len(ordered)}
	for _, s := range ordered {
		si := xlsxSI{}
		if spans != nil && originalIndexOf != nil {
			if origIdx, ok := originalIndexOf[s]; ok {
				if runs, ok := spans[origIdx]; ok {
					si.R = runs
					sst.SI = append(sst.SI, si)
					continue
				}
			}
		}
		si.T = &xlsxT{Val: s}
		sst.SI = append(sst.SI, si)
	}
	out, _ := xml.Marshal(sst)
	return append([]byte(xml.Header), out...)
}
