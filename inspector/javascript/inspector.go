package javascript

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/viant/afs"
	"github.com/viant/blazelint/ast"
)

// Inspector parses JavaScript (including JSX) source code into an ast.Program
type Inspector struct {
	fs afs.Service
}

// NewInspector creates a new JavaScript Inspector
func NewInspector() *Inspector {
	return &Inspector{fs: afs.New()}
}

// InspectSource parses JavaScript source code from a byte slice
func (i *Inspector) InspectSource(ctx context.Context, src []byte) (*ast.Program, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(javascript.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("failed to parse source: %w", err)
	}
	rootNode := tree.RootNode()
	c := &converter{src: src}
	program := &ast.Program{
		Body:     c.children(rootNode),
		HasError: rootNode.HasError(),
	}
	program.Loc = c.span(rootNode)
	return program, nil
}

// InspectFile reads and parses a JavaScript source file
func (i *Inspector) InspectFile(ctx context.Context, URL string) (*ast.Program, error) {
	src, err := i.fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", URL, err)
	}
	program, err := i.InspectSource(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("failed to parse file %s: %w", URL, err)
	}
	return program, nil
}
