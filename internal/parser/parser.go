package parser

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

// Parser provides Python code parsing capabilities using tree-sitter.
// A Parser is safe for concurrent use.
type Parser struct {
	mu     sync.Mutex
	parser *sitter.Parser
}

// New creates a new Parser instance with Python grammar
func New() *Parser {
	parser := sitter.NewParser()
	parser.SetLanguage(python.GetLanguage())
	return &Parser{
		parser: parser,
	}
}

// ParseResult represents the result of parsing Python code
type ParseResult struct {
	Tree       *sitter.Tree
	RootNode   *sitter.Node
	SourceCode []byte
}

// SyntaxError locates the first syntax error in a source
type SyntaxError struct {
	Line    int
	Column  int
	Snippet string
}

func (e *SyntaxError) Error() string {
	if e.Snippet != "" {
		return fmt.Sprintf("syntax error at line %d, column %d: %s", e.Line, e.Column, e.Snippet)
	}
	return fmt.Sprintf("syntax error at line %d, column %d", e.Line, e.Column)
}

// Parse parses Python source code and returns the tree, errors included
func (p *Parser) Parse(ctx context.Context, source []byte) (*ParseResult, error) {
	p.mu.Lock()
	tree, err := p.parser.ParseCtx(ctx, nil, source)
	p.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("failed to parse source: %w", err)
	}

	return &ParseResult{
		Tree:       tree,
		RootNode:   tree.RootNode(),
		SourceCode: source,
	}, nil
}

// Validate returns a *SyntaxError for the first error node in source
func (p *Parser) Validate(ctx context.Context, source []byte) error {
	result, err := p.Parse(ctx, source)
	if err != nil {
		return err
	}
	if !result.RootNode.HasError() {
		return nil
	}

	node := p.firstError(result.RootNode)
	if node == nil {
		return &SyntaxError{Line: 1, Column: 1}
	}

	start := node.StartPoint()
	return &SyntaxError{
		Line:    int(start.Row) + 1,
		Column:  int(start.Column) + 1,
		Snippet: lineAt(source, int(start.Row)),
	}
}

// WalkTree traverses the tree and calls the visitor function for each node
func (p *Parser) WalkTree(node *sitter.Node, visitor func(*sitter.Node) error) error {
	if err := visitor(node); err != nil {
		return err
	}

	childCount := int(node.ChildCount())
	for i := 0; i < childCount; i++ {
		child := node.Child(i)
		if err := p.WalkTree(child, visitor); err != nil {
			return err
		}
	}

	return nil
}

var errStop = errors.New("stop")

func (p *Parser) firstError(root *sitter.Node) *sitter.Node {
	var found *sitter.Node
	_ = p.WalkTree(root, func(n *sitter.Node) error {
		if n.IsError() || n.IsMissing() {
			found = n
			return errStop
		}
		return nil
	})
	return found
}

func lineAt(source []byte, row int) string {
	lines := strings.Split(string(source), "\n")
	if row < 0 || row >= len(lines) {
		return ""
	}
	return strings.TrimSpace(lines[row])
}
