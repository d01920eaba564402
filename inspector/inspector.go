package inspector

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/viant/blazelint/ast"
	"github.com/viant/blazelint/inspector/javascript"
)

// DefaultExtensions lists JavaScript-family source extensions
var DefaultExtensions = []string{".js", ".jsx", ".mjs", ".cjs"}

// Inspector provides an interface for parsing source code into an AST
type Inspector interface {
	// InspectSource parses source code from a byte slice
	InspectSource(ctx context.Context, src []byte) (*ast.Program, error)

	// InspectFile parses a source file
	InspectFile(ctx context.Context, URL string) (*ast.Program, error)
}

// Factory creates appropriate inspectors based on file extension
type Factory struct {
	extensions map[string]bool
	javascript *javascript.Inspector
}

// NewFactory creates a new inspector factory supporting the given extensions
func NewFactory(extensions ...string) *Factory {
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}
	f := &Factory{extensions: map[string]bool{}, javascript: javascript.NewInspector()}
	for _, ext := range extensions {
		ext = strings.ToLower(ext)
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		f.extensions[ext] = true
	}
	return f
}

// Supports returns true if filename has a supported extension
func (f *Factory) Supports(filename string) bool {
	return f.extensions[strings.ToLower(filepath.Ext(filename))]
}

// GetInspector returns an appropriate inspector based on file extension
func (f *Factory) GetInspector(filename string) (Inspector, error) {
	if !f.Supports(filename) {
		return nil, fmt.Errorf("unsupported file type: %s", filepath.Ext(filename))
	}
	return f.javascript, nil
}

// InspectFile is a convenience method that gets the appropriate inspector and inspects the file
func (f *Factory) InspectFile(ctx context.Context, filename string) (*ast.Program, error) {
	inspector, err := f.GetInspector(filename)
	if err != nil {
		return nil, err
	}
	return inspector.InspectFile(ctx, filename)
}
