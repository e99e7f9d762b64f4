// Copyright 2016 - 2022 The excelize Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package ooxlsx

// attrValBool, attrValFloat, attrValInt and attrValString mirror the OOXML
// pattern of "flag elements" that carry their payload in a single "val"
// attribute whose absence itself is meaningful (e.g. <b/> without val="0"
// means true). Using pointer-typed wrapper structs rather than bare Go types
// lets the XML layer distinguish "element absent" from "element present
// with a false/zero val".
type attrValBool struct {
	Val *bool `xml:"val,attr"`
}

type attrValFloat struct {
	Val float64 `xml:"val,attr"`
}

type attrValInt struct {
	Val int `xml:"val,attr"`
}

type attrValString struct {
	Val string `xml:"val,attr"`
}

func (a *attrValBool) bool() bool {
	return a != nil && (a.Val == nil || *a.Val)
}

func boolAttr(b bool) *attrValBool {
	if !b {
		return nil
	}
	return &attrValBool{}
}

// xlsxExtLst directly maps the extLst element, a future-proofing extension
// list. Entries are decoded as opaque inner XML and never interpreted; the
// save path does not write them back, so extensions are dropped on re-save.
type xlsxExtLst struct {
	Ext []xlsxExt `xml:"ext"`
}

// xlsxExt directly maps a single extLst child. URI identifies the extension
// schema; Content is the verbatim inner XML as decoded.
type xlsxExt struct {
	URI     string `xml:"uri,attr"`
	Content string `xml:",innerxml"`
}
