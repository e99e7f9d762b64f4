// Copyright 2016 - 2022 The excelize Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package ooxlsx

import (
	"bytes"
	"io"
	"os"
	"runtime"
	"strings"
	"sync"
)

const relTypeOfficeDocument = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument"

// LoadFile opens path, sniffs it for an OLE2-wrapped encrypted package, and
// decodes it as an XLSX workbook.
func LoadFile(path string) (*Workbook, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	size := info.Size()
	if err := checkEncryptedHeader(f, size); err != nil {
		return nil, err
	}
	zr, err := openZipFile(path)
	if err != nil {
		return nil, err
	}
	defer zr.Close()
	return decodeWorkbook(zr)
}

// LoadBytes decodes an in-memory XLSX workbook.
func LoadBytes(data []byte) (*Workbook, error) {
	r := bytes.NewReader(data)
	return LoadReaderAt(r, int64(len(data)))
}

// LoadReaderAt decodes an XLSX workbook from a random-access reader of
// known size.
func LoadReaderAt(r io.ReaderAt, size int64) (*Workbook, error) {
	if err := checkEncryptedHeader(r, size); err != nil {
		return nil, err
	}
	zr, err := openZipReaderAt(r, size)
	if err != nil {
		return nil, err
	}
	defer zr.Close()
	return decodeWorkbook(zr)
}

// checkEncryptedHeader distinguishes an OLE2-wrapped encrypted package from
// a plain ZIP container before the ZIP reader ever sees it, since
// archive/zip's own error for an OLE2 file is an uninformative "not a valid
// zip file".
func checkEncryptedHeader(r io.ReaderAt, size int64) error {
	n := int64(8)
	if size < n {
		n = size
	}
	head := make([]byte, n)
	if _, err := r.ReadAt(head, 0); err != nil && err != io.EOF {
		return newParseError("(root)", 0, err)
	}
	if looksLikeOLE2(head) {
		return sniffEncryptedPackage(r, size)
	}
	return nil
}

// relsPathFor returns the relationship part name for a given part, per the
// OPC convention of a sibling _rels/<basename>.rels.
func relsPathFor(partName string) string {
	dir := ""
	if idx := strings.LastIndex(partName, "/"); idx >= 0 {
		dir = partName[:idx+1]
	}
	base := partName[len(dir):]
	return dir + "_rels/" + base + ".rels"
}

func findWorkbookPartName(rootRelsXML []byte) (string, error) {
	var rels xlsxRelationships
	if err := newPartDecoder(strings.NewReader(string(rootRelsXML))).Decode(&rels); err != nil {
		return "", newParseError("_rels/.rels", 0, newXMLError(err))
	}
	for _, r := range rels.Relationship {
		if r.Type == relTypeOfficeDocument {
			// "" stands in for the package root: _rels/.rels's targets
			// resolve against the root, not against the _rels/ directory
			// that holds the relationship part itself.
			return resolveRelTarget("", r.Target), nil
		}
	}
	return "", newParseError("_rels/.rels", 0, ErrInvalidFormat)
}

func decodeWorkbook(zr *zipReader) (*Workbook, error) {
	rootRelsXML, err := zr.ReadAll("_rels/.rels")
	if err != nil {
		return nil, err
	}
	wbPartName, err := findWorkbookPartName(rootRelsXML)
	if err != nil {
		return nil, err
	}
	wbXML, err := zr.ReadAll(wbPartName)
	if err != nil {
		return nil, err
	}
	var wbRelsXML []byte
	if relsPath := relsPathFor(wbPartName); zr.Has(relsPath) {
		if wbRelsXML, err = zr.ReadAll(relsPath); err != nil {
			return nil, err
		}
	}
	parsed, err := parseWorkbookPart(wbXML, wbRelsXML)
	if err != nil {
		return nil, err
	}

	wb := NewWorkbook()
	wb.Date1904 = parsed.Date1904

	if zr.Has("xl/styles.xml") {
		stylesXML, err := zr.ReadAll("xl/styles.xml")
		if err != nil {
			return nil, err
		}
		cat, err := parseStylesPart(stylesXML)
		if err != nil {
			return nil, err
		}
		wb.Styles = cat
	}

	var sstIndex []StringHandle
	if zr.Has("xl/sharedStrings.xml") {
		sstXML, err := zr.ReadAll("xl/sharedStrings.xml")
		if err != nil {
			return nil, err
		}
		var spans richTextSpans
		if sstIndex, spans, err = parseSharedStrings(wb.strings, sstXML); err != nil {
			return nil, err
		}
		if spans != nil {
			wb.richSpans = spans
			wb.richIndexOf = make(map[string]int, len(spans))
			for idx := range spans {
				if content, ok := wb.strings.resolve(sstIndex[idx]); ok {
					wb.richIndexOf[content] = idx
				}
			}
		}
	}

	for _, dn := range parsed.DefinedNames {
		wb.DefinedNames = append(wb.DefinedNames, dn)
	}

	sheets := make([]*Worksheet, len(parsed.Sheets))
	for i, sref := range parsed.Sheets {
		sh, err := wb.AddSheet(sref.Name)
		if err != nil {
			return nil, err
		}
		sh.state = sref.State
		sh.sheetID = sref.SheetID
		sheets[i] = sh
	}

	// Worksheet decode is independent per sheet: each part only writes into
	// its own cell store, so the parts are parsed by a bounded pool of
	// goroutines rather than sequentially.
	return wb, parseWorksheetsParallel(zr, parsed, sheets, sstIndex, wb.Policy.ParallelSheetThreshold)
}

// buildWorksheetInput reads one worksheet part plus its sibling _rels part
// and any table parts those rels point at, resolving every target to a full
// part name. The reads happen up front, sequentially, so the parallel parse
// phase never touches the archive.
func buildWorksheetInput(zr *zipReader, partName string) (worksheetInput, error) {
	data, err := zr.ReadAll(partName)
	if err != nil {
		return worksheetInput{}, err
	}
	in := worksheetInput{partName: partName, data: data}
	relsPath := relsPathFor(partName)
	if !zr.Has(relsPath) {
		return in, nil
	}
	relsXML, err := zr.ReadAll(relsPath)
	if err != nil {
		return worksheetInput{}, err
	}
	var rels xlsxRelationships
	if err := newPartDecoder(strings.NewReader(string(relsXML))).Decode(&rels); err != nil {
		return worksheetInput{}, newParseError(relsPath, 0, newXMLError(err))
	}
	in.rels = make(map[string]string, len(rels.Relationship))
	for _, r := range rels.Relationship {
		target := r.Target
		if !strings.Contains(target, "://") {
			target = resolveRelTarget(partName, target)
		}
		in.rels[r.ID] = target
		if strings.Contains(target, "/tables/") && zr.Has(target) {
			tblXML, err := zr.ReadAll(target)
			if err != nil {
				return worksheetInput{}, err
			}
			if in.tableXML == nil {
				in.tableXML = make(map[string][]byte)
			}
			in.tableXML[target] = tblXML
		}
	}
	return in, nil
}

func parseWorksheetsParallel(zr *zipReader, parsed *parsedWorkbookPart, sheets []*Worksheet, sstIndex []StringHandle, threshold int) error {
	n := len(sheets)
	if n == 0 {
		return nil
	}
	workers := runtime.GOMAXPROCS(0)
	if workers > n {
		workers = n
	}
	if workers < 1 || n < threshold {
		workers = 1
	}
	sem := make(chan struct{}, workers)
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := range sheets {
		i := i
		in, err := buildWorksheetInput(zr, parsed.Sheets[i].PartName)
		if err != nil {
			errs[i] = err
			continue
		}
		wg.Add(1)
		sem <- struct{}{}
		go func() {
			defer wg.Done()
			defer func() { <-sem }()
			errs[i] = parseWorksheetPart(sheets[i], in, sstIndex)
		}()
	}
	wg.Wait()
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
