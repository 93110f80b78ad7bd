package filter

import (
	"maps"
	"strings"
	"sync"

	"github.com/expr-lang/expr"
)

// Option configures a Compiler
type Option func(*Compiler)

// WithCacheSize memoizes up to size compiled filters. Zero disables caching.
func WithCacheSize(size int) Option {
	return func(c *Compiler) {
		if size > 0 {
			c.cache = newProgramCache(size)
		} else {
			c.cache = nil
		}
	}
}

// WithFunctions adds helper functions available to every expression.
func WithFunctions(funcs map[string]any) Option {
	return func(c *Compiler) {
		maps.Copy(c.helpers, funcs)
	}
}

// Compiler compiles filter expressions. It is safe for concurrent use.
type Compiler struct {
	helpers map[string]any
	cache   *programCache
	envPool *sync.Pool
}

// NewCompiler creates a compiler with a 100 entry cache unless overridden.
func NewCompiler(opts ...Option) *Compiler {
	c := &Compiler{
		helpers: staticHelpers(),
		cache:   newProgramCache(100),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.envPool = &sync.Pool{
		New: func() any {
			return make(map[string]any, 32)
		},
	}
	return c
}

var defaultCompiler = NewCompiler()

// Compile compiles expression with the package default compiler.
func Compile(expression string) (*Filter, error) {
	return defaultCompiler.Compile(expression)
}

// Compile parses and type checks expression. The result must be boolean.
func (c *Compiler) Compile(expression string) (*Filter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, &SyntaxError{Expression: expression, Message: "empty expression"}
	}

	if c.cache != nil {
		if f, ok := c.cache.get(expression); ok {
			return f, nil
		}
	}

	program, err := expr.Compile(expression,
		expr.Env(c.helpers),
		expr.AllowUndefinedVariables(), // item fields are only known at runtime
		expr.AsBool(),
	)
	if err != nil {
		return nil, newSyntaxError(expression, err)
	}

	f := &Filter{
		expression: expression,
		program:    program,
		fields:     fieldPaths(program.Node(), c.helpers),
		compiler:   c,
	}

	if c.cache != nil {
		c.cache.put(expression, f)
	}
	return f, nil
}

// Clear removes all cached filters
func (c *Compiler) Clear() {
	if c.cache != nil {
		c.cache.clear()
	}
}

// Size returns the number of cached filters
func (c *Compiler) Size() int {
	if c.cache != nil {
		return c.cache.len()
	}
	return 0
}

// environment builds the runtime environment for item. Item fields are
// visible at top level and as "item"; helpers shadow fields of the same name.
func (c *Compiler) environment(item map[string]any) map[string]any {
	env := c.envPool.Get().(map[string]any)
	maps.Copy(env, item)
	maps.Copy(env, c.helpers)
	env["item"] = item
	addItemHelpers(env, item)
	return env
}

func (c *Compiler) release(env map[string]any) {
	clear(env)
	c.envPool.Put(env)
}
