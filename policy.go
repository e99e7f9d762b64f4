// Copyright 2016 - 2022 The excelize Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package ooxlsx

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Policy is workbook- or call-level configuration: compression, the
// parallelism thresholds for load/save, and the shared-string inline
// threshold. There are no process globals; every knob lives here.
type Policy struct {
	Compression CompressionLevel `yaml:"compression"`
	// ParallelSheetThreshold is the minimum worksheet count before load
	// fans sheet decoding out across goroutines; below it, sheets decode
	// one at a time.
	ParallelSheetThreshold int `yaml:"parallel_sheet_threshold"`
	// RowChunkThreshold is the minimum row count above which a worksheet's
	// write is partitioned into RowChunkSize-row chunks for parallel XML
	// generation.
	RowChunkThreshold int `yaml:"row_chunk_threshold"`
	// RowChunkSize is the height of each parallel-marshal chunk.
	RowChunkSize int `yaml:"row_chunk_size"`
	// InlineInternThreshold is the minimum number of references a string
	// must have across the workbook before it is written to the shared
	// string table rather than inline.
	InlineInternThreshold int `yaml:"inline_intern_threshold"`
}

// DefaultPolicy returns the library's design defaults.
func DefaultPolicy() Policy {
	return Policy{
		Compression:            CompressionDefault,
		ParallelSheetThreshold: 1,
		RowChunkThreshold:      1000,
		RowChunkSize:           5000,
		InlineInternThreshold:  2,
	}
}

// LoadPolicyFile reads a YAML-encoded Policy from path, starting from
// DefaultPolicy so a partial file only overrides the fields it sets.
func LoadPolicyFile(path string) (Policy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Policy{}, err
	}
	p := DefaultPolicy()
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Policy{}, err
	}
	return p, nil
}
