package filter

import (
	"fmt"
	"iter"
	"slices"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Filter is a compiled boolean expression over decoded JSON objects such
// as labels or shipments.
type Filter struct {
	expression string
	program    *vm.Program
	fields     []string
	compiler   *Compiler
}

// Expression returns the original expression
func (f *Filter) Expression() string {
	return f.expression
}

// Fields returns the item field paths the filter reads.
func (f *Filter) Fields() []string {
	return slices.Clone(f.fields)
}

// Eval runs the filter against item.
func (f *Filter) Eval(item map[string]any) (bool, error) {
	env := f.compiler.environment(item)
	defer f.compiler.release(env)

	result, err := expr.Run(f.program, env)
	if err != nil {
		return false, &EvaluationError{
			Expression: f.expression,
			ItemID:     itemID(item),
			Fields:     f.fields,
			Err:        err,
		}
	}

	// AsBool guarantees the result type
	return result.(bool), nil
}

// Match reports whether item satisfies the filter. Runtime errors count as
// no match.
func (f *Filter) Match(item map[string]any) bool {
	ok, err := f.Eval(item)
	return err == nil && ok
}

// Select yields the items of seq that match f. Errors from seq pass
// through unchanged. A nil filter selects everything.
func Select[M ~map[string]any](seq iter.Seq2[M, error], f *Filter) iter.Seq2[M, error] {
	return func(yield func(M, error) bool) {
		for item, err := range seq {
			if err != nil {
				if !yield(item, err) {
					return
				}
				continue
			}
			if f != nil && !f.Match(item) {
				continue
			}
			if !yield(item, nil) {
				return
			}
		}
	}
}

// itemID picks the first *_id style identifier present, for error messages.
func itemID(item map[string]any) string {
	for _, key := range []string{"label_id", "shipment_id", "batch_id", "manifest_id", "pickup_id", "carrier_id"} {
		if v, ok := item[key]; ok && v != nil {
			return fmt.Sprint(v)
		}
	}
	return ""
}
