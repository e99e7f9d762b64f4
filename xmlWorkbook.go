// Copyright 2016 - 2022 The excelize Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package ooxlsx

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"
)

const (
	sheetStateVisible    = "visible"
	sheetStateHidden     = "hidden"
	sheetStateVeryHidden = "veryHidden"
)

// xlsxWorkbook directly maps the workbook element of xl/workbook.xml.
type xlsxWorkbook struct {
	XMLName      xml.Name          `xml:"http://schemas.openxmlformats.org/spreadsheetml/2006/main workbook"`
	WorkbookPr   xlsxWorkbookPr    `xml:"workbookPr"`
	BookViews    xlsxBookViews     `xml:"bookViews"`
	Sheets       xlsxSheets        `xml:"sheets"`
	DefinedNames *xlsxDefinedNames `xml:"definedNames"`
	CalcPr       xlsxCalcPr        `xml:"calcPr"`
}

// xlsxWorkbookPr carries the date1904 flag selecting the epoch used to
// interpret serial date values.
type xlsxWorkbookPr struct {
	Date1904 bool `xml:"date1904,attr,omitempty"`
}

type xlsxBookViews struct {
	WorkBookView []xlsxWorkBookView `xml:"workbookView"`
}

type xlsxWorkBookView struct {
	ActiveTab int `xml:"activeTab,attr,omitempty"`
}

type xlsxSheets struct {
	Sheet []xlsxSheet `xml:"sheet"`
}

// xlsxSheet ties a workbook-order position to a sheet's persistent id and
// the relationship id resolving to its xl/worksheets/sheetN.xml part.
type xlsxSheet struct {
	Name    string `xml:"name,attr"`
	SheetID int    `xml:"sheetId,attr"`
	RID     string `xml:"http://schemas.openxmlformats.org/officeDocument/2006/relationships id,attr"`
	State   string `xml:"state,attr,omitempty"`
}

type xlsxDefinedNames struct {
	DefinedName []xlsxDefinedName `xml:"definedName"`
}

type xlsxDefinedName struct {
	Data         string `xml:",chardata"`
	Name         string `xml:"name,attr"`
	LocalSheetID *int   `xml:"localSheetId,attr"`
}

type xlsxCalcPr struct {
	CalcID string `xml:"calcId,attr,omitempty"`
}

// xlsxRelationships is the generic mapping used by both
// _rels/.rels and xl/_rels/workbook.xml.rels.
type xlsxRelationships struct {
	XMLName      xml.Name           `xml:"http://schemas.openxmlformats.org/package/2006/relationships Relationships"`
	Relationship []xlsxRelationship `xml:"Relationship"`
}

type xlsxRelationship struct {
	ID         string `xml:"Id,attr"`
	Type       string `xml:"Type,attr"`
	Target     string `xml:"Target,attr"`
	TargetMode string `xml:"TargetMode,attr,omitempty"`
}

const (
	relTypeWorksheet = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/worksheet"
	relTypeHyperlink = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/hyperlink"
	relTypeTable     = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/table"
)

// parsedWorkbookPart is the decoded, rel-resolved content of xl/workbook.xml
// plus xl/_rels/workbook.xml.rels: an ordered list of sheets, each already
// carrying the worksheet part name it corresponds to.
type parsedWorkbookPart struct {
	Date1904     bool
	Sheets       []parsedSheetRef
	DefinedNames []DefinedName
}

type parsedSheetRef struct {
	Name     string
	SheetID  int
	State    string
	PartName string
}

// parseWorkbookPart decodes xl/workbook.xml and resolves each <sheet>'s
// relationship id against xl/_rels/workbook.xml.rels into a concrete part
// path under xl/worksheets/.
func parseWorkbookPart(wbXML, relsXML []byte) (*parsedWorkbookPart, error) {
	var wb xlsxWorkbook
	if err := newPartDecoder(strings.NewReader(string(wbXML))).Decode(&wb); err != nil {
		return nil, newParseError("xl/workbook.xml", 0, newXMLError(err))
	}
	targets := map[string]string{}
	if len(relsXML) > 0 {
		var rels xlsxRelationships
		if err := newPartDecoder(strings.NewReader(string(relsXML))).Decode(&rels); err != nil {
			return nil, newParseError("xl/_rels/workbook.xml.rels", 0, newXMLError(err))
		}
		for _, r := range rels.Relationship {
			targets[r.ID] = r.Target
		}
	}
	out := &parsedWorkbookPart{Date1904: wb.WorkbookPr.Date1904}
	seenIDs := make(map[int]bool, len(wb.Sheets.Sheet))
	for _, s := range wb.Sheets.Sheet {
		if seenIDs[s.SheetID] {
			return nil, newParseError("xl/workbook.xml", 0, fmt.Errorf("%w: duplicate sheet id %d", ErrInvalidFormat, s.SheetID))
		}
		seenIDs[s.SheetID] = true
		target, ok := targets[s.RID]
		if !ok {
			return nil, newParseError("xl/workbook.xml", 0, fmt.Errorf("%w: sheet %q: unresolved relationship id %q", ErrInvalidFormat, s.Name, s.RID))
		}
		out.Sheets = append(out.Sheets, parsedSheetRef{
			Name:     s.Name,
			SheetID:  s.SheetID,
			State:    s.State,
			PartName: resolveRelTarget("xl/workbook.xml", target),
		})
	}
	if wb.DefinedNames != nil {
		for _, dn := range wb.DefinedNames.DefinedName {
			d := DefinedName{Name: dn.Name, RefersTo: dn.Data}
			if dn.LocalSheetID != nil && *dn.LocalSheetID >= 0 && *dn.LocalSheetID < len(out.Sheets) {
				d.Sheet = out.Sheets[*dn.LocalSheetID].Name
			}
			out.DefinedNames = append(out.DefinedNames, d)
		}
	}
	return out, nil
}

// resolveRelTarget resolves a (possibly relative) relationship target
// against the directory of the part that declared it, collapsing "../".
func resolveRelTarget(fromPart, target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(target, "/")
	}
	dir := fromPart[:strings.LastIndex(fromPart, "/")+1]
	full := dir + target
	segs := strings.Split(full, "/")
	out := segs[:0]
	for _, seg := range segs {
		switch seg {
		case ".":
			continue
		case "..":
			if len(out) > 0 {
				out = out[:len(out)-1]
			}
		default:
			out = append(out, seg)
		}
	}
	return strings.Join(out, "/")
}

// writeWorkbookPart serializes xl/workbook.xml for the given sheet order.
func writeWorkbookPart(wb *Workbook) []byte {
	x := xlsxWorkbook{
		WorkbookPr: xlsxWorkbookPr{Date1904: wb.Date1904},
		BookViews:  xlsxBookViews{WorkBookView: []xlsxWorkBookView{{}}},
		CalcPr:     xlsxCalcPr{CalcID: "0"},
	}
	for i, sh := range wb.Sheets() {
		x.Sheets.Sheet = append(x.Sheets.Sheet, xlsxSheet{
			Name:    sh.Name(),
			SheetID: sh.SheetID(),
			RID:     "rId" + strconv.Itoa(i+1),
			State:   stateOrEmpty(sh.state),
		})
	}
	if len(wb.DefinedNames) > 0 {
		x.DefinedNames = &xlsxDefinedNames{}
		for _, dn := range wb.DefinedNames {
			xdn := xlsxDefinedName{Name: dn.Name, Data: dn.RefersTo}
			if dn.Sheet != "" {
				if sh, err := wb.GetSheet(dn.Sheet); err == nil {
					idx := sh.Index()
					xdn.LocalSheetID = &idx
				}
			}
			x.DefinedNames.DefinedName = append(x.DefinedNames.DefinedName, xdn)
		}
	}
	out, _ := xml.Marshal(x)
	return append([]byte(xml.Header), out...)
}

func stateOrEmpty(state string) string {
	if state == "" || state == sheetStateVisible {
		return ""
	}
	return state
}

// writeWorkbookRels serializes xl/_rels/workbook.xml.rels, relating rId1..N
// to worksheet parts, plus the trailing styles/sharedStrings relationships.
func writeWorkbookRels(sheetCount int) []byte {
	rels := xlsxRelationships{}
	for i := 0; i < sheetCount; i++ {
		rels.Relationship = append(rels.Relationship, xlsxRelationship{
			ID:     "rId" + strconv.Itoa(i+1),
			Type:   relTypeWorksheet,
			Target: fmt.Sprintf("worksheets/sheet%d.xml", i+1),
		})
	}
	nextID := sheetCount + 1
	rels.Relationship = append(rels.Relationship,
		xlsxRelationship{
			ID:     "rId" + strconv.Itoa(nextID),
			Type:   "http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles",
			Target: "styles.xml",
		},
		xlsxRelationship{
			ID:     "rId" + strconv.Itoa(nextID+1),
			Type:   "http://schemas.openxmlformats.org/officeDocument/2006/relationships/sharedStrings",
			Target: "sharedStrings.xml",
		},
	)
	out, _ := xml.Marshal(rels)
	return append([]byte(xml.Header), out...)
}

// writeRootRels serializes the package-level _rels/.rels, the single fixed
// entry point Excel reads first to find xl/workbook.xml.
func writeRootRels() []byte {
	rels := xlsxRelationships{Relationship: []xlsxRelationship{
		{ID: "rId1", Type: "http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument", Target: "xl/workbook.xml"},
		{ID: "rId2", Type: "http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties", Target: "docProps/core.xml"},
		{ID: "rId3", Type: "http://schemas.openxmlformats.org/officeDocument/2006/relationships/extended-properties", Target: "docProps/app.xml"},
	}}
	out, _ := xml.Marshal(rels)
	return append([]byte(xml.Header), out...)
}
