// Copyright 2016 - 2022 The excelize Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package ooxlsx

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
)

// SaveFile serializes wb to path, writing through a temporary file in the
// same directory and renaming it into place so a crash mid-write never
// leaves a truncated workbook at path.
func SaveFile(wb *Workbook, path string) error {
	data, err := SaveBytes(wb)
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".ooxlsx-tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}

// SaveWriter serializes wb to an arbitrary writer. Nothing is written if
// serialization fails.
func SaveWriter(wb *Workbook, w io.Writer) error {
	data, err := SaveBytes(wb)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// SaveBytes serializes wb to an in-memory XLSX package, producing
// byte-identical output for a given model regardless of goroutine
// scheduling: cell iteration is sorted and row-chunk output is
// concatenated in declaration order.
func SaveBytes(wb *Workbook) ([]byte, error) {
	if len(wb.Sheets()) == 0 {
		return nil, ErrNoWorksheets
	}

	census := buildStringCensus(wb)
	indexOf, ordered := census.build(wb.Policy.InlineInternThreshold)
	internString := func(s string) (int, bool) {
		idx, ok := indexOf[s]
		return idx, ok
	}

	plans, sheetRels, tableParts := planSheetRels(wb)

	sheetXMLs := make([][]byte, len(wb.Sheets()))
	var wg sync.WaitGroup
	for i, sh := range wb.Sheets() {
		i, sh := i, sh
		wg.Add(1)
		go func() {
			defer wg.Done()
			sheetXMLs[i] = renderWorksheet(sh, internString, wb.Policy, plans[i])
		}()
	}
	wg.Wait()

	var buf bytes.Buffer
	zw := newZipWriter(&buf, wb.Policy.Compression)

	parts := []struct {
		name string
		blob []byte
	}{
		{"[Content_Types].xml", writeContentTypes(len(wb.Sheets()), len(tableParts))},
		{"_rels/.rels", writeRootRels()},
		{"xl/_rels/workbook.xml.rels", writeWorkbookRels(len(wb.Sheets()))},
		{"xl/workbook.xml", writeWorkbookPart(wb)},
		{"xl/sharedStrings.xml", writeSharedStrings(ordered, wb.richSpans, wb.richIndexOf)},
		{"xl/styles.xml", writeStylesPart(wb.Styles)},
	}
	for _, p := range parts {
		if err := zw.WriteBlob(p.name, p.blob); err != nil {
			return nil, err
		}
	}
	for i, blob := range sheetXMLs {
		name := fmt.Sprintf("xl/worksheets/sheet%d.xml", i+1)
		if err := zw.WriteBlob(name, blob); err != nil {
			return nil, err
		}
		if rels := sheetRels[i]; rels != nil {
			relsName := fmt.Sprintf("xl/worksheets/_rels/sheet%d.xml.rels", i+1)
			if err := zw.WriteBlob(relsName, rels); err != nil {
				return nil, err
			}
		}
	}
	for _, tp := range tableParts {
		if err := zw.WriteBlob(tp.name, tp.blob); err != nil {
			return nil, err
		}
	}
	if err := zw.WriteBlob("docProps/app.xml", writeAppProperties(wb.SheetNames())); err != nil {
		return nil, err
	}
	if err := zw.WriteBlob("docProps/core.xml", writeCoreProperties("", "", "")); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type namedPart struct {
	name string
	blob []byte
}

// planSheetRels assigns relationship ids, ahead of rendering, to everything
// each worksheet references through its own _rels part: external hyperlinks
// and structured-table parts. Table parts are numbered workbook-wide, so two
// sheets' tables never collide on a part name.
func planSheetRels(wb *Workbook) (plans []*sheetRelPlan, sheetRels [][]byte, tableParts []namedPart) {
	sheets := wb.Sheets()
	plans = make([]*sheetRelPlan, len(sheets))
	sheetRels = make([][]byte, len(sheets))
	tableID := 0
	for i, sh := range sheets {
		plan := &sheetRelPlan{hyperlinkRID: map[int]string{}}
		var rels xlsxRelationships
		rid := 0
		for hi, h := range sh.Hyperlinks {
			if h.Internal {
				continue
			}
			rid++
			id := "rId" + itoa(rid)
			plan.hyperlinkRID[hi] = id
			rels.Relationship = append(rels.Relationship, xlsxRelationship{
				ID: id, Type: relTypeHyperlink, Target: h.Target, TargetMode: "External",
			})
		}
		for _, t := range sh.Tables {
			tableID++
			rid++
			id := "rId" + itoa(rid)
			plan.tableRIDs = append(plan.tableRIDs, id)
			tableParts = append(tableParts, namedPart{
				name: fmt.Sprintf("xl/tables/table%d.xml", tableID),
				blob: writeTablePart(t, tableID),
			})
			rels.Relationship = append(rels.Relationship, xlsxRelationship{
				ID: id, Type: relTypeTable, Target: fmt.Sprintf("../tables/table%d.xml", tableID),
			})
		}
		plans[i] = plan
		if len(rels.Relationship) > 0 {
			out, _ := xml.Marshal(rels)
			sheetRels[i] = append([]byte(xml.Header), out...)
		}
	}
	return plans, sheetRels, tableParts
}

// buildStringCensus walks every sheet's occupied cells once, counting
// references to each distinct string value so the inline-vs-shared
// decision is made from the final model rather than load-time bookkeeping
// that mutation may have invalidated.
func buildStringCensus(wb *Workbook) *stringCensus {
	census := newStringCensus()
	for _, sh := range wb.Sheets() {
		sh.Cells.IterSorted(func(row, col int, v CellView) bool {
			if v.Kind == CellKindString {
				census.observe(v.Str)
			}
			return true
		})
	}
	return census
}

// renderWorksheet serializes one worksheet, splitting its row table into
// Policy.RowChunkSize-row chunks marshaled concurrently once the sheet
// exceeds Policy.RowChunkThreshold rows.
func renderWorksheet(ws *Worksheet, internString func(string) (int, bool), policy Policy, plan *sheetRelPlan) []byte {
	rows := buildRows(ws, internString)
	if len(rows) <= policy.RowChunkThreshold {
		x := buildWorksheetShell(ws, internString, plan)
		x.SheetData.Row = rows
		out, _ := xml.Marshal(x)
		return append([]byte(xml.Header), out...)
	}

	shell := buildWorksheetShell(ws, internString, plan)
	shellXML := marshalNoHeader(shell)

	chunkSize := policy.RowChunkSize
	if chunkSize < 1 {
		chunkSize = len(rows)
	}
	nChunks := (len(rows) + chunkSize - 1) / chunkSize
	chunkXMLs := make([][]byte, nChunks)
	var wg sync.WaitGroup
	for i := 0; i < nChunks; i++ {
		start := i * chunkSize
		end := start + chunkSize
		if end > len(rows) {
			end = len(rows)
		}
		i, chunk := i, rows[start:end]
		wg.Add(1)
		go func() {
			defer wg.Done()
			chunkXMLs[i] = marshalRowChunk(chunk)
		}()
	}
	wg.Wait()

	var rowsBody bytes.Buffer
	for _, c := range chunkXMLs {
		rowsBody.Write(c)
	}
	spliced := spliceSheetData(shellXML, rowsBody.Bytes())
	return append([]byte(xml.Header), spliced...)
}

func marshalNoHeader(v interface{}) []byte {
	out, _ := xml.Marshal(v)
	return out
}

// rowChunk exists to give a standalone row-slice marshal the sheetData
// element name; the wrapper tags are stripped right after marshaling.
type rowChunk struct {
	XMLName xml.Name  `xml:"sheetData"`
	Row     []xlsxRow `xml:"row"`
}

// marshalRowChunk marshals a contiguous row slice as a standalone
// sheetData element, then strips the wrapper tags so the bytes can be
// concatenated with sibling chunks before splicing into a shell.
func marshalRowChunk(rows []xlsxRow) []byte {
	out, _ := xml.Marshal(rowChunk{Row: rows})
	out = bytes.TrimPrefix(out, []byte("<sheetData>"))
	out = bytes.TrimSuffix(out, []byte("</sheetData>"))
	return out
}

// spliceSheetData replaces a shell's empty <sheetData></sheetData>
// placeholder with rowsXML, byte-identical to what a single xml.Marshal
// call over the fully populated struct would have produced.
func spliceSheetData(shell, rowsXML []byte) []byte {
	const empty = "<sheetData></sheetData>"
	idx := bytes.Index(shell, []byte(empty))
	if idx < 0 {
		return shell
	}
	var out bytes.Buffer
	out.Write(shell[:idx])
	out.WriteString("<sheetData>")
	out.Write(rowsXML)
	out.WriteString("</sheetData>")
	out.Write(shell[idx+len(empty):])
	return out.Bytes()
}
