// File: token.go
// Title: Lexical Token Model
// Description: Defines the token types and the immutable Token value that
//              the external scanner produces and the renderers display as
//              quoted lexemes.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-25 v0.1.0: Initial token definitions
// - 2026-10-18 v0.2.0: Token set of the scripting language, lexeme based display

package ast

import (
	"fmt"
	"strings"
)

// TokenType represents the type of a lexical token
type TokenType int

const (
	// Special tokens
	TokenIllegal TokenType = iota
	TokenEOF

	// Single-character tokens
	TokenLeftParen  // (
	TokenRightParen // )
	TokenLeftBrace  // {
	TokenRightBrace // }
	TokenComma      // ,
	TokenDot        // .
	TokenMinus      // -
	TokenPlus       // +
	TokenSemicolon  // ;
	TokenSlash      // /
	TokenStar       // *

	// One or two character tokens
	TokenBang         // !
	TokenBangEqual    // !=
	TokenEqual        // =
	TokenEqualEqual   // ==
	TokenGreater      // >
	TokenGreaterEqual // >=
	TokenLess         // <
	TokenLessEqual    // <=

	// Literals
	TokenIdentifier
	TokenString
	TokenNumber

	// Keywords
	TokenAnd
	TokenClass
	TokenElse
	TokenFalse
	TokenFun
	TokenFor
	TokenIf
	TokenNil
	TokenOr
	TokenPrint
	TokenReturn
	TokenSuper
	TokenThis
	TokenTrue
	TokenVar
	TokenWhile
)

var tokenTypeNames = map[TokenType]string{
	TokenIllegal:      "ILLEGAL",
	TokenEOF:          "EOF",
	TokenLeftParen:    "LEFT_PAREN",
	TokenRightParen:   "RIGHT_PAREN",
	TokenLeftBrace:    "LEFT_BRACE",
	TokenRightBrace:   "RIGHT_BRACE",
	TokenComma:        "COMMA",
	TokenDot:          "DOT",
	TokenMinus:        "MINUS",
	TokenPlus:         "PLUS",
	TokenSemicolon:    "SEMICOLON",
	TokenSlash:        "SLASH",
	TokenStar:         "STAR",
	TokenBang:         "BANG",
	TokenBangEqual:    "BANG_EQUAL",
	TokenEqual:        "EQUAL",
	TokenEqualEqual:   "EQUAL_EQUAL",
	TokenGreater:      "GREATER",
	TokenGreaterEqual: "GREATER_EQUAL",
	TokenLess:         "LESS",
	TokenLessEqual:    "LESS_EQUAL",
	TokenIdentifier:   "IDENTIFIER",
	TokenString:       "STRING",
	TokenNumber:       "NUMBER",
	TokenAnd:          "AND",
	TokenClass:        "CLASS",
	TokenElse:         "ELSE",
	TokenFalse:        "FALSE",
	TokenFun:          "FUN",
	TokenFor:          "FOR",
	TokenIf:           "IF",
	TokenNil:          "NIL",
	TokenOr:           "OR",
	TokenPrint:        "PRINT",
	TokenReturn:       "RETURN",
	TokenSuper:        "SUPER",
	TokenThis:         "THIS",
	TokenTrue:         "TRUE",
	TokenVar:          "VAR",
	TokenWhile:        "WHILE",
}

// String returns the upper-case name of the token type
func (t TokenType) String() string {
	if name, ok := tokenTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TokenType(%d)", int(t))
}

// IsValid reports whether t is a known token type
func (t TokenType) IsValid() bool {
	_, ok := tokenTypeNames[t]
	return ok
}

// ParseTokenType resolves a token type name such as "IDENTIFIER" or "left_paren"
func ParseTokenType(name string) (TokenType, bool) {
	upper := strings.ToUpper(strings.TrimSpace(name))
	for t, n := range tokenTypeNames {
		if n == upper {
			return t, true
		}
	}
	return TokenIllegal, false
}

// Token represents a lexical token produced by the scanner. Tokens are
// treated as immutable values.
type Token struct {
	Type    TokenType   // Token type
	Lexeme  string      // Source text of the token
	Literal interface{} // Parsed literal value for STRING and NUMBER tokens
	Line    int         // Line number (1-based, 0 when unknown)
}

// NewToken creates a token without a literal value
func NewToken(tokenType TokenType, lexeme string, line int) Token {
	return Token{Type: tokenType, Lexeme: lexeme, Line: line}
}

// String returns a string representation of the token
func (t Token) String() string {
	return fmt.Sprintf("%s(%s)", t.Type, t.Lexeme)
}
