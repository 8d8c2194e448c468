// Package textcfg reads a small line-oriented text description of a
// control-flow graph for the pegdump command. The format is deliberately
// minimal: one declaration per line, no nesting.
//
//	entry: <name>
//	<name>: <succ1>[, <succ2>]
//
// A block with zero successors returns; one successor is an
// unconditional jump; two are a conditional jump (true, false order).
package textcfg

import (
	"fmt"
	"strings"
)

// TokenKind tags a lexical token.
type TokenKind uint8

const (
	Ident TokenKind = iota
	Colon
	Comma
	Newline
	EOF
)

// Token is a single lexical unit with its source line, for error
// messages.
type Token struct {
	Kind TokenKind
	Text string
	Line int
}

// Lexer tokenizes textcfg source rune by rune, mirroring the byte-at-a-
// time style of the surrounding toolchain's lexers.
type Lexer struct {
	src  []rune
	pos  int
	line int
}

// NewLexer constructs a Lexer over src.
func NewLexer(src string) *Lexer {
	return &Lexer{src: []rune(src), line: 1}
}

// Next returns the next token, or an EOF token at end of input.
func (l *Lexer) Next() (Token, error) {
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch {
		case c == '\n':
			l.pos++
			tok := Token{Kind: Newline, Line: l.line}
			l.line++
			return tok, nil
		case c == ' ' || c == '\t' || c == '\r':
			l.pos++
		case c == '#':
			for l.pos < len(l.src) && l.src[l.pos] != '\n' {
				l.pos++
			}
		case c == ':':
			l.pos++
			return Token{Kind: Colon, Line: l.line}, nil
		case c == ',':
			l.pos++
			return Token{Kind: Comma, Line: l.line}, nil
		case isIdentRune(c):
			start := l.pos
			for l.pos < len(l.src) && isIdentRune(l.src[l.pos]) {
				l.pos++
			}
			return Token{Kind: Ident, Text: string(l.src[start:l.pos]), Line: l.line}, nil
		default:
			return Token{}, fmt.Errorf("textcfg: line %d: unexpected character %q", l.line, c)
		}
	}
	return Token{Kind: EOF, Line: l.line}, nil
}

func isIdentRune(c rune) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

// trimEmptyLines is a small convenience used by Parse to tolerate
// trailing blank lines in hand-written fixtures.
func trimEmptyLines(s string) string {
	return strings.TrimRight(s, "\n\r\t ")
}
