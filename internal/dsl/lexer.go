package dsl

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokWord
	tokLBrace
	tokRBrace
)

type token struct {
	kind tokenKind
	text string
	line int
}

// lexer is a whitespace/comment-skipping tokenizer over DSL source: it
// produces WORD, LBRACE, RBRACE, and EOF tokens. Comparators and
// numbers are WORDs — the grammar has no separate lexical class for
// them.
type lexer struct {
	src  string
	pos  int
	line int
}

func newLexer(src string) *lexer {
	return &lexer{src: src, line: 1}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\v' || c == '\f' || c == '\n'
}

func (lx *lexer) skipWhitespaceAndComments() {
	for lx.pos < len(lx.src) {
		c := lx.src[lx.pos]
		if c == '\n' {
			lx.line++
			lx.pos++
			continue
		}
		if isSpace(c) {
			lx.pos++
			continue
		}
		if c == '#' {
			for lx.pos < len(lx.src) && lx.src[lx.pos] != '\n' {
				lx.pos++
			}
			continue
		}
		if c == '/' && lx.pos+1 < len(lx.src) && lx.src[lx.pos+1] == '/' {
			lx.pos += 2
			for lx.pos < len(lx.src) && lx.src[lx.pos] != '\n' {
				lx.pos++
			}
			continue
		}
		break
	}
}

// next returns the next token, advancing past it.
func (lx *lexer) next() token {
	lx.skipWhitespaceAndComments()
	if lx.pos >= len(lx.src) {
		return token{kind: tokEOF, line: lx.line}
	}

	line := lx.line
	c := lx.src[lx.pos]
	if c == '{' {
		lx.pos++
		return token{kind: tokLBrace, text: "{", line: line}
	}
	if c == '}' {
		lx.pos++
		return token{kind: tokRBrace, text: "}", line: line}
	}

	start := lx.pos
	for lx.pos < len(lx.src) {
		ch := lx.src[lx.pos]
		if isSpace(ch) || ch == '{' || ch == '}' || ch == '#' {
			break
		}
		if ch == '/' && lx.pos+1 < len(lx.src) && lx.src[lx.pos+1] == '/' {
			break
		}
		lx.pos++
	}
	return token{kind: tokWord, text: lx.src[start:lx.pos], line: line}
}
