// Copyright 2016 - 2022 The excelize Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package ooxlsx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStyleCatalogDefaultEntries(t *testing.T) {
	c := NewStyleCatalog()
	assert.Equal(t, 1, c.fontCount())
	assert.Equal(t, 2, c.fillCount()) // none + gray125, matching a fresh styles.xml
	assert.Equal(t, 1, c.borderCount())
	assert.Equal(t, 1, c.xfCount())

	_, ok := c.Lookup(DefaultStyle)
	assert.True(t, ok)
}

func TestAddStyleDeduplicates(t *testing.T) {
	c := NewStyleCatalog()
	h1 := c.AddStyle(&Style{Font: &Font{Bold: true, Size: 12}})
	h2 := c.AddStyle(&Style{Font: &Font{Bold: true, Size: 12}})
	h3 := c.AddStyle(&Style{Font: &Font{Bold: true, Size: 14}})
	assert.Equal(t, h1, h2)
	assert.NotEqual(t, h1, h3)
	assert.NotEqual(t, DefaultStyle, h1)
}

func TestAddStyleResolvesView(t *testing.T) {
	c := NewStyleCatalog()
	h := c.AddStyle(&Style{
		Font:      &Font{Bold: true, Italic: true, Family: "Calibri", Size: 11, Color: "FF0000FF"},
		Fill:      Fill{Type: "pattern", Color: []string{"FFFFFF00"}},
		Alignment: &Alignment{Horizontal: "center", WrapText: true},
	})
	view, ok := c.Lookup(h)
	require.True(t, ok)
	require.NotNil(t, view.Font)
	assert.True(t, view.Font.Bold)
	assert.True(t, view.Font.Italic)
	assert.Equal(t, "Calibri", view.Font.Family)
	assert.Equal(t, "FF0000FF", view.Font.Color)
	assert.Equal(t, "pattern", view.Fill.Type)
	require.NotNil(t, view.Alignment)
	assert.Equal(t, "center", view.Alignment.Horizontal)
	assert.True(t, view.Alignment.WrapText)
}

func TestInternNumFmtAssignsCustomIDs(t *testing.T) {
	c := NewStyleCatalog()
	id1 := c.InternNumFmt("0.000")
	id2 := c.InternNumFmt("0.000")
	id3 := c.InternNumFmt("#,##0.0")
	assert.Equal(t, firstCustomNumFmtID, id1)
	assert.Equal(t, id1, id2)
	assert.Equal(t, firstCustomNumFmtID+1, id3)

	code, ok := c.NumFmtCode(id1)
	require.True(t, ok)
	assert.Equal(t, "0.000", code)
}

func TestNumFmtCodeBuiltins(t *testing.T) {
	c := NewStyleCatalog()
	code, ok := c.NumFmtCode(14)
	require.True(t, ok)
	assert.Equal(t, "mm-dd-yy", code)
	code, ok = c.NumFmtCode(0)
	require.True(t, ok)
	assert.Equal(t, "General", code)
}

func TestIsDateFormat(t *testing.T) {
	c := NewStyleCatalog()
	assert.True(t, c.IsDateFormat(14))
	assert.True(t, c.IsDateFormat(22))
	assert.False(t, c.IsDateFormat(0))
	assert.False(t, c.IsDateFormat(2))

	dateID := c.InternNumFmt("yyyy-mm-dd hh:mm")
	assert.True(t, c.IsDateFormat(dateID))
	plainID := c.InternNumFmt("#,##0.00")
	assert.False(t, c.IsDateFormat(plainID))
}

func TestStylesPartRoundTrip(t *testing.T) {
	c := NewStyleCatalog()
	bold := c.AddStyle(&Style{Font: &Font{Bold: true}})
	nfID := c.InternNumFmt("0.000%")
	dateStyle := c.AddStyle(&Style{CustomNumFmt: strPtr("yyyy-mm-dd")})

	data := writeStylesPart(c)
	got, err := parseStylesPart(data)
	require.NoError(t, err)

	assert.Equal(t, c.fontCount(), got.fontCount())
	assert.Equal(t, c.xfCount(), got.xfCount())

	view, ok := got.Lookup(bold)
	require.True(t, ok)
	require.NotNil(t, view.Font)
	assert.True(t, view.Font.Bold)

	code, ok := got.NumFmtCode(nfID)
	require.True(t, ok)
	assert.Equal(t, "0.000%", code)

	dateView, ok := got.Lookup(dateStyle)
	require.True(t, ok)
	assert.True(t, got.IsDateFormat(dateView.NumFmt))
}

func strPtr(s string) *string { return &s }

func TestFormatNumber(t *testing.T) {
	c := NewStyleCatalog()
	assert.Equal(t, "42.5", c.FormatNumber(42.5, 0, false))
	// A date-formatted serial renders as a timestamp.
	got := c.FormatNumber(45000, 14, false)
	assert.Contains(t, got, "2023-03-15")
}

func TestDisplayValuePrefersOverride(t *testing.T) {
	wb := NewWorkbook()
	sh, err := wb.AddSheet("S")
	require.NoError(t, err)
	require.NoError(t, sh.Cells.SetValue(1, 1, NumberValue(45000)))
	require.NoError(t, sh.Cells.SetNumFmtOverride(1, 1, 14))

	got, err := sh.DisplayValue(1, 1)
	require.NoError(t, err)
	assert.Contains(t, got, "2023-03-15")

	require.NoError(t, sh.Cells.SetValue(2, 1, BoolValue(true)))
	got, err = sh.DisplayValue(2, 1)
	require.NoError(t, err)
	assert.Equal(t, "TRUE", got)
}

func TestSerialDateConversion(t *testing.T) {
	// Serial 45000 is 2023-03-15 in the 1900 date system.
	tm, err := SerialToTime(45000, false)
	require.NoError(t, err)
	assert.Equal(t, "2023-03-15", tm.Format("2006-01-02"))
	assert.Equal(t, 45000.0, TimeToSerial(tm, false))

	tm1904, err := SerialToTime(0, true)
	require.NoError(t, err)
	assert.Equal(t, "1904-01-01", tm1904.Format("2006-01-02"))
}
