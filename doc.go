// Copyright 2016 - 2022 The excelize Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found in
// the LICENSE file.
//
// Package ooxlsx reads, mutates, and writes OOXML SpreadsheetML (XLSX)
// workbooks. It exposes an in-memory workbook model backed by a sparse,
// shared-string and shared-style cell store, plus a constant-memory
// streaming writer for append-only bulk output.
//
// Formula evaluation is out of scope: formulas are stored and round-tripped
// as text, never computed. A written workbook round-trips losslessly for
// every part this package recognizes; unrecognized parts are not preserved
// across a save.
package ooxlsx
