package dsl

import "fmt"

// ParseError is returned for any malformed DSL source: an unexpected
// token, an unknown op/tag/resource/item/comparator name, an
// unsupported comparator on hunger/fatigue/season, or too many
// inventory clauses in one condition. main prints it to stderr and
// exits 1.
type ParseError struct {
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("bronze:%d: %s", e.Line, e.Msg)
}

func parseErrorf(line int, format string, args ...any) *ParseError {
	return &ParseError{Line: line, Msg: fmt.Sprintf(format, args...)}
}
