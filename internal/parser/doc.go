// Package parser checks generated Python source using tree-sitter.
//
// Rendered conf.py files are parsed with the tree-sitter Python grammar
// before they are written, so a template or escaping bug surfaces as a
// render error instead of a broken documentation build.
//
// Basic usage:
//
//	p := parser.New()
//	if err := p.Validate(ctx, []byte("project = 'pip'\n")); err != nil {
//	    // err is a *SyntaxError with the first error position
//	}
package parser
