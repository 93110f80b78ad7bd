package filter

import (
	"errors"
	"fmt"
	"strings"

	"github.com/expr-lang/expr/file"
)

// SyntaxError reports a filter expression that does not compile.
type SyntaxError struct {
	Expression string
	Column     int // 1-based; 0 when expr gave no location
	Message    string
	Err        error
}

func newSyntaxError(expression string, err error) *SyntaxError {
	e := &SyntaxError{Expression: expression, Message: err.Error(), Err: err}
	var fe *file.Error
	if errors.As(err, &fe) {
		e.Message = fe.Message
		e.Column = fe.Column + 1
	}
	return e
}

func (e *SyntaxError) Error() string {
	if e.Column > 0 {
		return fmt.Sprintf("invalid filter %q at column %d: %s", e.Expression, e.Column, e.Message)
	}
	return fmt.Sprintf("invalid filter %q: %s", e.Expression, e.Message)
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

// EvaluationError reports a filter that failed while matching one item.
// Fields lists the item field paths the filter reads.
type EvaluationError struct {
	Expression string
	ItemID     string
	Fields     []string
	Err        error
}

func (e *EvaluationError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "filter %q failed", e.Expression)
	if e.ItemID != "" {
		fmt.Fprintf(&b, " on %s", e.ItemID)
	}
	if len(e.Fields) > 0 {
		fmt.Fprintf(&b, " (reads %s)", strings.Join(e.Fields, ", "))
	}
	fmt.Fprintf(&b, ": %v", e.Err)
	return b.String()
}

func (e *EvaluationError) Unwrap() error {
	return e.Err
}
