// ============================================================================
// astview - AST Tree Viewer
// ============================================================================
//
// Package:     source
// Description: Loading AST documents from files and streams
// Author:      Mike Stoffels
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package source

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/msto63/astview/foundation/ast"
	mdwerror "github.com/msto63/astview/foundation/core/error"
)

// Stdin is the path that selects standard input
const Stdin = "-"

// Format is the document syntax of a source
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// DetectFormat selects the format from the file extension; unknown
// extensions are read as YAML, which also accepts JSON
func DetectFormat(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

// Load reads and decodes the AST document at path. The path "-" reads
// standard input.
func Load(path string) (interface{}, error) {
	if path == Stdin {
		return LoadReader(os.Stdin, FormatYAML)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		code := mdwerror.CodeSourceUnreadable
		if os.IsNotExist(err) {
			code = mdwerror.CodeNotFound
		}
		return nil, mdwerror.Wrap(err, "failed to read AST document").
			WithCode(code).
			WithOperation("source.Load").
			WithDetail("path", path)
	}

	tree, err := Decode(data, DetectFormat(path))
	if err != nil {
		return nil, mdwerror.Wrap(err, "failed to decode AST document").
			WithDetail("path", path)
	}
	return tree, nil
}

// LoadReader reads and decodes an AST document from r
func LoadReader(r io.Reader, format Format) (interface{}, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, mdwerror.Wrap(err, "failed to read AST document").
			WithCode(mdwerror.CodeSourceUnreadable).
			WithOperation("source.LoadReader")
	}
	return Decode(data, format)
}

// Decode decodes document bytes in the given format
func Decode(data []byte, format Format) (interface{}, error) {
	if format == FormatJSON && !json.Valid(data) {
		return nil, mdwerror.New("document is not valid JSON").
			WithCode(mdwerror.CodeInvalidFormat).
			WithOperation("source.Decode")
	}
	return ast.DecodeDocument(data)
}

// Stamp identifies a version of a file
type Stamp struct {
	ModTime time.Time
	Size    int64
}

// Stat returns the current stamp of the file at path
func Stat(path string) (Stamp, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Stamp{}, mdwerror.Wrap(err, "failed to stat AST document").
			WithCode(mdwerror.CodeSourceUnreadable).
			WithOperation("source.Stat").
			WithDetail("path", path)
	}
	return Stamp{ModTime: info.ModTime(), Size: info.Size()}, nil
}

// Changed reports whether s differs from other
func (s Stamp) Changed(other Stamp) bool {
	return !s.ModTime.Equal(other.ModTime) || s.Size != other.Size
}
