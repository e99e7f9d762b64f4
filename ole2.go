// Copyright 2016 - 2022 The excelize Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package ooxlsx

import (
	"bytes"
	"io"

	"github.com/richardlehane/mscfb"
)

// ole2Signature is the magic number of an OLE2/CFB compound file, the
// container ECMA-376 Agile Encryption wraps an encrypted XLSX package in.
var ole2Signature = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}

// looksLikeOLE2 reports whether the leading bytes of a source match the
// OLE2 compound-file signature rather than a ZIP local-file-header
// ("PK\x03\x04").
func looksLikeOLE2(head []byte) bool {
	return bytes.HasPrefix(head, ole2Signature)
}

// sniffEncryptedPackage opens r as an OLE2 compound file far enough to
// confirm it carries an EncryptedPackage stream, which is how Excel wraps
// a password-protected workbook. It never attempts decryption: callers get
// a precise ErrInvalidFormat diagnostic instead of an opaque container
// failure.
func sniffEncryptedPackage(r io.ReaderAt, size int64) error {
	doc, err := mscfb.New(io.NewSectionReader(r, 0, size))
	if err != nil {
		return newParseError("(root)", 0, ErrContainer)
	}
	for entry, err := doc.Next(); err == nil; entry, err = doc.Next() {
		if entry.Name == "EncryptedPackage" {
			return newParseError("(root)", 0, errEncryptedWorkbook)
		}
	}
	return newParseError("(root)", 0, ErrInvalidFormat)
}

var errEncryptedWorkbook = invalidFormatDetail("workbook is password-protected (OLE2 EncryptedPackage stream); decryption is not supported")

type invalidFormatDetail string

func (e invalidFormatDetail) Error() string { return string(e) }

func (invalidFormatDetail) Unwrap() error { return ErrInvalidFormat }
