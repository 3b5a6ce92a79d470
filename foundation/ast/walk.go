// File: walk.go
// Title: AST Traversal and Validation
// Description: Pre-order traversal over renderable values in display order
//              and tree-wide validation collecting every node error with
//              its path.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-25 v0.1.0: Visitor based traversal and validation
// - 2026-10-18 v0.2.0: Path based walk over display fields

package ast

import (
	"strconv"
	"strings"

	mdwerror "github.com/msto63/astview/foundation/core/error"
)

// WalkFunc is called for every value reached by Walk. Returning false
// skips the children of v.
type WalkFunc func(path []string, v interface{}) bool

// Walk traverses v in pre-order. Sequences descend into their elements
// keyed by index and nodes into their display fields keyed by name;
// tokens, literals, variables and primitives are leaves.
func Walk(v interface{}, fn WalkFunc) {
	walk(nil, v, fn)
}

func walk(path []string, v interface{}, fn WalkFunc) {
	if !fn(path, v) {
		return
	}

	switch Classify(v) {
	case KindSequence:
		for i, elem := range Elements(v) {
			walk(appendPath(path, strconv.Itoa(i)), elem, fn)
		}
	case KindNode:
		for _, f := range v.(Node).Fields() {
			walk(appendPath(path, f.Name), f.Value, fn)
		}
	}
}

func appendPath(path []string, key string) []string {
	out := make([]string, len(path)+1)
	copy(out, path)
	out[len(path)] = key
	return out
}

// PathString joins a walk path for display; the root path is "$"
func PathString(path []string) string {
	if len(path) == 0 {
		return "$"
	}
	return "$." + strings.Join(path, ".")
}

// Validate walks v and collects the validation errors of every node,
// including values of a kind no renderer understands.
func Validate(v interface{}) []error {
	var errs []error

	Walk(v, func(path []string, value interface{}) bool {
		switch Classify(value) {
		case KindInvalid:
			errs = append(errs, mdwerror.Newf("unsupported value of type %T", value).
				WithCode(mdwerror.CodeUnsupportedType).
				WithDetail("path", PathString(path)))
		case KindLiteral, KindVariable, KindNode:
			if err := value.(Node).Validate(); err != nil {
				errs = append(errs, mdwerror.Wrap(err, "node validation failed").
					WithDetail("path", PathString(path)))
			}
		}
		return true
	})

	return errs
}
