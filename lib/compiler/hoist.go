package compiler

import "github.com/vyPal/ifjc/lib/parser"

// hoistedRefs lists, in order of appearance and without duplicates, every
// slot declared anywhere inside a loop body: variable definitions and the
// shadows of optional bindings, through nested conditionals and loops.
func hoistedRefs(body parser.Block) []parser.Ref {
	var refs []parser.Ref
	seen := make(map[parser.Ref]bool)
	add := func(ref parser.Ref) {
		if !seen[ref] {
			seen[ref] = true
			refs = append(refs, ref)
		}
	}

	var walk func(parser.Block)
	walk = func(b parser.Block) {
		for _, stmt := range b {
			switch s := stmt.(type) {
			case *parser.VariableDefinition:
				add(s.Ref)
			case *parser.Conditional:
				if s.Condition.Binding != nil {
					add(s.Condition.Binding.Shadow)
				}
				walk(s.Body)
				walk(s.Else)
			case *parser.Iteration:
				walk(s.Body)
			}
		}
	}
	walk(body)
	return refs
}
