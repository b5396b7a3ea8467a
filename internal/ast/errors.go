package ast

import (
	"fmt"
	"strings"
)

// ParseError reports a surface-syntax violation. Context records the path
// of grammar rules the parser was inside of when it failed, innermost
// last; each enclosing bracket group adds one "bracket" entry, so an error
// two groups deep carries ["bracket", "bracket"].
type ParseError struct {
	Detail  string
	Context []string
}

func (e *ParseError) Error() string {
	if len(e.Context) == 0 {
		return e.Detail
	}
	return fmt.Sprintf("%s (in %s)", e.Detail, strings.Join(e.Context, " > "))
}

func errf(ctx []string, format string, args ...any) error {
	return &ParseError{Detail: fmt.Sprintf(format, args...), Context: append([]string(nil), ctx...)}
}
