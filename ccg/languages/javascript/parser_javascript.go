package javascript

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"

	"github.com/codecontexthq/contextgraph/ccg/langsupport"
)

// Parse parses JavaScript source code into the normalized file AST.
// JSX sources share the same grammar.
func Parse(source []byte) (*langsupport.FileAST, error) {
	lang := javascript.GetLanguage()

	parser := sitter.NewParser()
	parser.SetLanguage(lang)

	tree, err := parser.ParseCtx(context.Background(), nil, source)
	if err != nil {
		return nil, fmt.Errorf("failed to parse JavaScript code: %w", err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		return nil, syntaxError(root)
	}

	ast := &langsupport.FileAST{
		Imports: extractImports(root, source),
	}
	ast.Declarations = extractDeclarations(root, source)

	return ast, nil
}

func syntaxError(root *sitter.Node) *langsupport.ParseError {
	bad := root

	var walk func(*sitter.Node) *sitter.Node
	walk = func(n *sitter.Node) *sitter.Node {
		if n == nil {
			return nil
		}
		if n.Type() == "ERROR" || n.IsMissing() {
			return n
		}
		if !n.HasError() {
			return nil
		}
		for i := 0; i < int(n.ChildCount()); i++ {
			if found := walk(n.Child(i)); found != nil {
				return found
			}
		}
		return n
	}

	if found := walk(root); found != nil {
		bad = found
	}

	return &langsupport.ParseError{
		Line:    int(bad.StartPoint().Row) + 1,
		Column:  int(bad.StartPoint().Column) + 1,
		Message: "syntax error",
	}
}

// SplitImportPath normalizes a JavaScript import specifier into ancestor
// levels and path segments. "./a/b" is relative with zero levels up,
// "../../x" walks up twice.
func SplitImportPath(path string) (segments []string, up int, relative bool) {
	if !strings.HasPrefix(path, "./") && !strings.HasPrefix(path, "../") && path != "." && path != ".." {
		return strings.Split(path, "/"), 0, false
	}

	relative = true
	for _, part := range strings.Split(path, "/") {
		switch part {
		case "", ".":
			continue
		case "..":
			up++
		default:
			segments = append(segments, part)
		}
	}
	return segments, up, relative
}

func extractImports(root *sitter.Node, source []byte) []langsupport.ImportDecl {
	var imports []langsupport.ImportDecl

	var walk func(*sitter.Node)
	walk = func(n *sitter.Node) {
		if n == nil {
			return
		}
		switch n.Type() {
		case "import_statement":
			imports = append(imports, parseImportStatement(n, source)...)
			return
		case "export_statement":
			if src := n.ChildByFieldName("source"); src != nil {
				imports = append(imports, newImportDecl(src, source, "", "", false))
			}
			return
		case "variable_declarator":
			if decl, ok := parseRequireDeclarator(n, source); ok {
				imports = append(imports, decl)
				return
			}
		}
		for i := 0; i < int(n.NamedChildCount()); i++ {
			walk(n.NamedChild(i))
		}
	}

	walk(root)
	return imports
}

func parseImportStatement(n *sitter.Node, source []byte) []langsupport.ImportDecl {
	src := n.ChildByFieldName("source")
	if src == nil {
		return nil
	}

	var imports []langsupport.ImportDecl
	for i := 0; i < int(n.NamedChildCount()); i++ {
		clause := n.NamedChild(i)
		if clause.Type() != "import_clause" {
			continue
		}
		for j := 0; j < int(clause.NamedChildCount()); j++ {
			binding := clause.NamedChild(j)
			switch binding.Type() {
			case "identifier":
				// Default import; best-effort whole-module binding.
				imports = append(imports, newImportDecl(src, source, binding.Content(source), "", false))
			case "namespace_import":
				if ident := firstOfType(binding, "identifier"); ident != nil {
					imports = append(imports, newImportDecl(src, source, ident.Content(source), "", false))
				}
			case "named_imports":
				for k := 0; k < int(binding.NamedChildCount()); k++ {
					spec := binding.NamedChild(k)
					if spec.Type() != "import_specifier" {
						continue
					}
					name := spec.ChildByFieldName("name")
					if name == nil {
						continue
					}
					alias := ""
					if aliasNode := spec.ChildByFieldName("alias"); aliasNode != nil {
						alias = aliasNode.Content(source)
					}
					imports = append(imports, newImportDecl(src, source, alias, name.Content(source), false))
				}
			}
		}
	}

	if len(imports) == 0 {
		// Bare side-effect import: no binding, but still an import edge.
		imports = append(imports, newImportDecl(src, source, "", "", false))
	}

	return imports
}

// parseRequireDeclarator handles "const x = require('./m')".
func parseRequireDeclarator(n *sitter.Node, source []byte) (langsupport.ImportDecl, bool) {
	name := n.ChildByFieldName("name")
	value := n.ChildByFieldName("value")
	if name == nil || value == nil || value.Type() != "call_expression" {
		return langsupport.ImportDecl{}, false
	}
	fn := value.ChildByFieldName("function")
	if fn == nil || fn.Type() != "identifier" || fn.Content(source) != "require" {
		return langsupport.ImportDecl{}, false
	}
	args := value.ChildByFieldName("arguments")
	if args == nil {
		return langsupport.ImportDecl{}, false
	}
	str := firstOfType(args, "string")
	if str == nil {
		return langsupport.ImportDecl{}, false
	}

	alias := ""
	if name.Type() == "identifier" {
		alias = name.Content(source)
	}
	return newImportDecl(str, source, alias, "", false), true
}

func newImportDecl(src *sitter.Node, source []byte, alias, symbol string, wildcard bool) langsupport.ImportDecl {
	target := cleanImportPath(src.Content(source))
	segments, up, relative := SplitImportPath(target)
	return langsupport.ImportDecl{
		Target:   target,
		Segments: segments,
		Up:       up,
		Relative: relative,
		Alias:    alias,
		Symbol:   symbol,
		Wildcard: wildcard,
		Pos:      position(src),
	}
}

func cleanImportPath(raw string) string {
	return strings.Trim(strings.TrimSpace(raw), `'"`+"`")
}

func extractDeclarations(root *sitter.Node, source []byte) []langsupport.Declaration {
	var decls []langsupport.Declaration

	for i := 0; i < int(root.NamedChildCount()); i++ {
		child := root.NamedChild(i)
		if child.Type() == "export_statement" {
			if inner := child.ChildByFieldName("declaration"); inner != nil {
				child = inner
			}
		}
		switch child.Type() {
		case "function_declaration":
			if decl, ok := parseFunction(child, source); ok {
				decls = append(decls, decl)
			}
		case "class_declaration":
			if decl, ok := parseClass(child, source); ok {
				decls = append(decls, decl)
			}
		case "lexical_declaration", "variable_declaration":
			decls = append(decls, parseFunctionValuedDeclarators(child, source)...)
		}
	}

	return decls
}

func parseFunction(n *sitter.Node, source []byte) (langsupport.Declaration, bool) {
	nameNode := n.ChildByFieldName("name")
	if nameNode == nil {
		return langsupport.Declaration{}, false
	}
	return functionDecl(nameNode.Content(source), n, source), true
}

func functionDecl(name string, n *sitter.Node, source []byte) langsupport.Declaration {
	decl := langsupport.Declaration{
		Kind:   langsupport.DeclFunction,
		Name:   name,
		Params: parseParameters(n.ChildByFieldName("parameters"), source),
		Pos:    position(n),
	}
	if body := n.ChildByFieldName("body"); body != nil {
		decl.Calls = collectCalls(body, source)
	}
	return decl
}

// parseFunctionValuedDeclarators extracts "const f = () => {}" style functions.
func parseFunctionValuedDeclarators(n *sitter.Node, source []byte) []langsupport.Declaration {
	var decls []langsupport.Declaration

	for i := 0; i < int(n.NamedChildCount()); i++ {
		declarator := n.NamedChild(i)
		if declarator.Type() != "variable_declarator" {
			continue
		}
		name := declarator.ChildByFieldName("name")
		value := declarator.ChildByFieldName("value")
		if name == nil || value == nil || name.Type() != "identifier" {
			continue
		}
		switch value.Type() {
		case "arrow_function", "function_expression", "function":
			decls = append(decls, functionDecl(name.Content(source), value, source))
		}
	}

	return decls
}

func parseClass(n *sitter.Node, source []byte) (langsupport.Declaration, bool) {
	nameNode := n.ChildByFieldName("name")
	if nameNode == nil {
		return langsupport.Declaration{}, false
	}

	decl := langsupport.Declaration{
		Kind: langsupport.DeclClass,
		Name: nameNode.Content(source),
		Pos:  position(n),
	}

	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		if child.Type() != "class_heritage" {
			continue
		}
		for j := 0; j < int(child.NamedChildCount()); j++ {
			base := child.NamedChild(j)
			switch base.Type() {
			case "identifier", "member_expression":
				decl.Bases = append(decl.Bases, langsupport.BaseRef{
					Name: base.Content(source),
					Pos:  position(base),
				})
			}
		}
	}

	body := n.ChildByFieldName("body")
	if body == nil {
		return decl, true
	}
	for i := 0; i < int(body.NamedChildCount()); i++ {
		member := body.NamedChild(i)
		if member.Type() != "method_definition" {
			continue
		}
		name := member.ChildByFieldName("name")
		if name == nil {
			continue
		}
		decl.Children = append(decl.Children, functionDecl(name.Content(source), member, source))
	}

	return decl, true
}

func parseParameters(params *sitter.Node, source []byte) []string {
	if params == nil {
		return nil
	}

	var names []string
	for i := 0; i < int(params.NamedChildCount()); i++ {
		p := params.NamedChild(i)
		switch p.Type() {
		case "identifier":
			names = append(names, p.Content(source))
		case "assignment_pattern":
			if left := p.ChildByFieldName("left"); left != nil && left.Type() == "identifier" {
				names = append(names, left.Content(source))
			}
		case "rest_pattern":
			if ident := firstOfType(p, "identifier"); ident != nil {
				names = append(names, ident.Content(source))
			}
		}
	}
	return names
}

func collectCalls(body *sitter.Node, source []byte) []langsupport.CallSite {
	var calls []langsupport.CallSite

	var walk func(*sitter.Node)
	walk = func(n *sitter.Node) {
		if n == nil {
			return
		}
		if n.Type() == "call_expression" {
			if fn := n.ChildByFieldName("function"); fn != nil {
				switch fn.Type() {
				case "identifier", "member_expression":
					if callee := fn.Content(source); callee != "require" {
						calls = append(calls, langsupport.CallSite{
							Callee: callee,
							Pos:    position(fn),
						})
					}
				}
			}
		}
		for i := 0; i < int(n.NamedChildCount()); i++ {
			walk(n.NamedChild(i))
		}
	}

	walk(body)
	return calls
}

func firstOfType(n *sitter.Node, nodeType string) *sitter.Node {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		if child.Type() == nodeType {
			return child
		}
	}
	return nil
}

func position(n *sitter.Node) langsupport.Position {
	return langsupport.Position{
		Line:   int(n.StartPoint().Row) + 1,
		Column: int(n.StartPoint().Column) + 1,
	}
}
