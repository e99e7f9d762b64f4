// Copyright 2016 - 2022 The excelize Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package ooxlsx

import (
	"fmt"
	"math"
	"time"
)

// excelEpoch1900 is the date that serial 0 maps to in the 1900 date system.
// Excel counts the nonexistent 1900-02-29 as serial 60; this base date makes
// serials from 61 on agree with Excel, while serials 1-60 come out one day
// earlier than Excel shows them.
var excelEpoch1900 = time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)

// excelEpoch1904 is the base date for the 1904 date system some workbooks
// (mostly ones authored on classic Mac Excel) opt into via the workbook's
// date1904 flag.
var excelEpoch1904 = time.Date(1904, 1, 1, 0, 0, 0, 0, time.UTC)

// SerialToTime converts an Excel date serial number (fractional days since
// the applicable epoch) to a time.Time. date1904 selects the workbook's
// date system; most workbooks use false (the 1900 system).
func SerialToTime(serial float64, date1904 bool) (time.Time, error) {
	if math.IsNaN(serial) || math.IsInf(serial, 0) {
		return time.Time{}, fmt.Errorf("ooxlsx: invalid date serial %v", serial)
	}
	base := excelEpoch1900
	if date1904 {
		base = excelEpoch1904
	}
	days := math.Trunc(serial)
	frac := serial - days
	secs := time.Duration(math.Round(frac*86400)) * time.Second
	return base.Add(time.Duration(days)*24*time.Hour + secs), nil
}

// TimeToSerial converts a time.Time to an Excel date serial number under
// the given date system. It is the inverse of SerialToTime.
func TimeToSerial(t time.Time, date1904 bool) float64 {
	base := excelEpoch1900
	if date1904 {
		base = excelEpoch1904
	}
	d := t.Sub(base)
	return d.Hours() / 24
}

// FormatNumber renders a numeric cell value as Excel would display it for
// a given number-format ID. A format the catalog classifies as date/time
// (IsDateFormat, which uses github.com/xuri/nfp for custom codes) renders
// as "2006-01-02T15:04:05"; every other format, including custom numeric
// codes, renders through Go's shortest float formatting, the same as
// General. It never fails a read over display formatting.
func (c *StyleCatalog) FormatNumber(value float64, numFmtID int, date1904 bool) string {
	if c.IsDateFormat(numFmtID) {
		t, err := SerialToTime(value, date1904)
		if err == nil {
			return t.Format("2006-01-02T15:04:05")
		}
	}
	code, ok := c.NumFmtCode(numFmtID)
	if !ok || code == "General" || code == "" {
		return generalNumberString(value)
	}
	return generalNumberString(value)
}

// generalNumberString mirrors Excel's "General" numeric display: the
// shortest decimal representation that round-trips.
func generalNumberString(value float64) string {
	return fmt.Sprintf("%g", value)
}

// DisplayValue renders a cell the way a spreadsheet application would show
// it. Numeric cells go through the number-format machinery, preferring the
// cell's explicit format override over the format carried by its style.
func (s *Worksheet) DisplayValue(row, col int) (string, error) {
	v, err := s.Cells.Get(row, col)
	if err != nil {
		return "", err
	}
	switch v.Kind {
	case CellKindNumber, CellKindDate:
		numFmtID := v.NumFmtOverride
		if numFmtID == 0 {
			if xf, ok := s.workbook.Styles.ResolveXf(v.Style); ok && xf.NumFmtID != nil {
				numFmtID = *xf.NumFmtID
			}
		}
		return s.workbook.Styles.FormatNumber(v.Num, numFmtID, s.workbook.Date1904), nil
	case CellKindBool:
		if v.Bool {
			return "TRUE", nil
		}
		return "FALSE", nil
	default:
		return v.Str, nil
	}
}
