package filter

import (
	"slices"
	"strings"

	"github.com/expr-lang/expr/ast"
)

// itemHelperNames are bound per item and never name a field.
var itemHelperNames = map[string]bool{"hasField": true, "hasTag": true, "item": true}

// fieldCollector gathers dotted field paths such as "shipment_cost.amount".
type fieldCollector struct {
	helpers map[string]any
	paths   map[string]bool
}

func (v *fieldCollector) Visit(node *ast.Node) {
	switch n := (*node).(type) {
	case *ast.IdentifierNode:
		v.add(n.Value)
	case *ast.MemberNode:
		if p, ok := memberPath(n); ok {
			v.add(p)
		}
	}
}

func (v *fieldCollector) add(path string) {
	path = strings.TrimPrefix(path, "item.")
	if _, ok := v.helpers[path]; ok || itemHelperNames[path] {
		return
	}
	v.paths[path] = true
}

func memberPath(n *ast.MemberNode) (string, bool) {
	prop, ok := n.Property.(*ast.StringNode)
	if !ok {
		return "", false
	}
	switch base := n.Node.(type) {
	case *ast.IdentifierNode:
		return base.Value + "." + prop.Value, true
	case *ast.MemberNode:
		p, ok := memberPath(base)
		if !ok {
			return "", false
		}
		return p + "." + prop.Value, true
	}
	return "", false
}

// fieldPaths returns the sorted field paths read by node. A path that only
// prefixes a longer one is dropped.
func fieldPaths(node ast.Node, helpers map[string]any) []string {
	v := &fieldCollector{helpers: helpers, paths: make(map[string]bool)}
	ast.Walk(&node, v)

	out := make([]string, 0, len(v.paths))
	for p := range v.paths {
		prefix := false
		for other := range v.paths {
			if strings.HasPrefix(other, p+".") {
				prefix = true
				break
			}
		}
		if !prefix {
			out = append(out, p)
		}
	}
	slices.Sort(out)
	return out
}
