// Copyright 2016 - 2022 The excelize Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package ooxlsx

import (
	"encoding/xml"
	"io"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// newPartDecoder returns an xml.Decoder for one archive part, configured
// with a CharsetReader so parts declared in a non-UTF-8 encoding (seen from
// some third-party producers) still decode correctly.
func newPartDecoder(r io.Reader) *xml.Decoder {
	d := xml.NewDecoder(bomAwareReader(r))
	d.CharsetReader = charset.NewReaderLabel
	d.Strict = false
	return d
}

// bomAwareReader strips a leading UTF-8/UTF-16 byte-order-mark, if present,
// using x/text's BOM-override transformer, before the XML decoder sees the
// declared encoding. Some producers emit a BOM even on a part declared
// UTF-8, which a strict XML decoder otherwise chokes on.
func bomAwareReader(r io.Reader) io.Reader {
	return transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
}
