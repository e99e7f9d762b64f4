// Copyright 2016 - 2022 The excelize Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package ooxlsx

import (
	"archive/zip"
	"compress/flate"
	"io"
)

// zipWriter wraps archive/zip.Writer, pinning a single DEFLATE level for
// every entry and zeroing timestamps for reproducible output.
type zipWriter struct {
	zw    *zip.Writer
	level CompressionLevel
}

func newZipWriter(w io.Writer, level CompressionLevel) *zipWriter {
	zw := zip.NewWriter(w)
	if level != CompressionDefault {
		l := int(level)
		zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
			return flate.NewWriter(out, l)
		})
	}
	return &zipWriter{zw: zw, level: level}
}

// WriteBlob writes one archive entry. Entries land in the archive in
// declaration order.
func (z *zipWriter) WriteBlob(name string, blob []byte) error {
	method := zip.Deflate
	if z.level == CompressionNone {
		method = zip.Store
	}
	hdr := &zip.FileHeader{
		Name:   name,
		Method: method,
	}
	// Zero timestamp (the zip package's default zero time already encodes
	// to a fixed MS-DOS epoch) keeps output byte-identical across runs.
	w, err := z.zw.CreateHeader(hdr)
	if err != nil {
		return err
	}
	_, err = w.Write(blob)
	return err
}

// Create opens a streaming writer for one archive entry. Bytes written to
// it are compressed straight into the archive, so a part larger than memory
// never has to be buffered whole; the entry is finalized when the next
// Create or Close call happens.
func (z *zipWriter) Create(name string) (io.Writer, error) {
	method := zip.Deflate
	if z.level == CompressionNone {
		method = zip.Store
	}
	return z.zw.CreateHeader(&zip.FileHeader{Name: name, Method: method})
}

// Close finalizes the central directory. Must be called exactly once.
func (z *zipWriter) Close() error { return z.zw.Close() }

// zipReader wraps archive/zip.Reader for read-on-demand access to named
// parts, accepting either a seekable file (via OpenReader) or an in-memory
// ReaderAt+size (via NewReader).
type zipReader struct {
	zr    *zip.Reader
	rc    *zip.ReadCloser // non-nil only when opened from a file path
	byNam map[string]*zip.File
}

func openZipFile(path string) (*zipReader, error) {
	rc, err := zip.OpenReader(path)
	if err != nil {
		return nil, ErrContainer
	}
	return newZipReaderFrom(&rc.Reader, rc), nil
}

func openZipReaderAt(r io.ReaderAt, size int64) (*zipReader, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, ErrContainer
	}
	return newZipReaderFrom(zr, nil), nil
}

func newZipReaderFrom(zr *zip.Reader, rc *zip.ReadCloser) *zipReader {
	byNam := make(map[string]*zip.File, len(zr.File))
	for _, f := range zr.File {
		byNam[f.Name] = f
	}
	return &zipReader{zr: zr, rc: rc, byNam: byNam}
}

// Has reports whether name is present in the archive.
func (z *zipReader) Has(name string) bool {
	_, ok := z.byNam[name]
	return ok
}

// ReadAll returns the decompressed bytes of the named entry.
func (z *zipReader) ReadAll(name string) ([]byte, error) {
	f, ok := z.byNam[name]
	if !ok {
		return nil, newParseError(name, -1, ErrContainer)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, newParseError(name, -1, err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, newParseError(name, -1, err)
	}
	return data, nil
}

// Close releases the underlying file handle, if the reader was opened from
// a path.
func (z *zipReader) Close() error {
	if z.rc != nil {
		return z.rc.Close()
	}
	return nil
}
