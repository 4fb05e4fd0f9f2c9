package python

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"

	"github.com/codecontexthq/contextgraph/ccg/langsupport"
)

// Parse parses Python source code into the normalized file AST.
func Parse(source []byte) (*langsupport.FileAST, error) {
	lang := python.GetLanguage()

	parser := sitter.NewParser()
	parser.SetLanguage(lang)

	tree, err := parser.ParseCtx(context.Background(), nil, source)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Python code: %w", err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		return nil, syntaxError(root)
	}

	ast := &langsupport.FileAST{
		Imports: extractImports(root, source),
	}

	for i := 0; i < int(root.NamedChildCount()); i++ {
		child := unwrapDecorated(root.NamedChild(i))
		if child == nil {
			continue
		}
		switch child.Type() {
		case "function_definition":
			if decl, ok := parseFunction(child, source); ok {
				ast.Declarations = append(ast.Declarations, decl)
			}
		case "class_definition":
			if decl, ok := parseClass(child, source); ok {
				ast.Declarations = append(ast.Declarations, decl)
			}
		}
	}

	return ast, nil
}

// syntaxError locates the first ERROR or MISSING node and reports its position.
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

func unwrapDecorated(n *sitter.Node) *sitter.Node {
	if n != nil && n.Type() == "decorated_definition" {
		return n.ChildByFieldName("definition")
	}
	return n
}

func parseFunction(n *sitter.Node, source []byte) (langsupport.Declaration, bool) {
	nameNode := n.ChildByFieldName("name")
	if nameNode == nil {
		return langsupport.Declaration{}, false
	}

	decl := langsupport.Declaration{
		Kind:   langsupport.DeclFunction,
		Name:   nameNode.Content(source),
		Params: parseParameters(n.ChildByFieldName("parameters"), source),
		Pos:    position(n),
	}

	if body := n.ChildByFieldName("body"); body != nil {
		decl.Doc = docstring(body, source)
		decl.Calls = collectCalls(body, source)
	}

	return decl, true
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

	if supers := n.ChildByFieldName("superclasses"); supers != nil {
		for i := 0; i < int(supers.NamedChildCount()); i++ {
			base := supers.NamedChild(i)
			switch base.Type() {
			case "identifier", "attribute":
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
	decl.Doc = docstring(body, source)

	for i := 0; i < int(body.NamedChildCount()); i++ {
		member := unwrapDecorated(body.NamedChild(i))
		if member == nil {
			continue
		}
		switch member.Type() {
		case "function_definition":
			if child, ok := parseFunction(member, source); ok {
				decl.Children = append(decl.Children, child)
			}
		case "class_definition":
			if child, ok := parseClass(member, source); ok {
				decl.Children = append(decl.Children, child)
			}
		}
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
		case "default_parameter", "typed_default_parameter":
			if name := p.ChildByFieldName("name"); name != nil {
				names = append(names, name.Content(source))
			}
		case "typed_parameter", "list_splat_pattern", "dictionary_splat_pattern":
			if ident := firstIdentifier(p); ident != nil {
				names = append(names, ident.Content(source))
			}
		}
	}
	return names
}

func firstIdentifier(n *sitter.Node) *sitter.Node {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		if child.Type() == "identifier" {
			return child
		}
	}
	return nil
}

// collectCalls gathers every call expression in a function body, including
// calls inside nested function definitions; those attribute to the nearest
// extracted enclosing function.
func collectCalls(body *sitter.Node, source []byte) []langsupport.CallSite {
	var calls []langsupport.CallSite

	var walk func(*sitter.Node)
	walk = func(n *sitter.Node) {
		if n == nil {
			return
		}
		if n.Type() == "call" {
			if fn := n.ChildByFieldName("function"); fn != nil {
				switch fn.Type() {
				case "identifier", "attribute":
					calls = append(calls, langsupport.CallSite{
						Callee: fn.Content(source),
						Pos:    position(fn),
					})
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

// docstring returns the leading string expression of a block, if present.
func docstring(body *sitter.Node, source []byte) string {
	if body.NamedChildCount() == 0 {
		return ""
	}
	first := body.NamedChild(0)
	if first.Type() != "expression_statement" || first.NamedChildCount() == 0 {
		return ""
	}
	str := first.NamedChild(0)
	if str.Type() != "string" {
		return ""
	}
	return trimStringQuotes(str.Content(source))
}

func trimStringQuotes(s string) string {
	for _, quote := range []string{`"""`, `'''`, `"`, `'`} {
		if strings.HasPrefix(s, quote) && strings.HasSuffix(s, quote) && len(s) >= 2*len(quote) {
			return strings.TrimSpace(s[len(quote) : len(s)-len(quote)])
		}
	}
	return strings.TrimSpace(s)
}

// extractImports walks the whole tree so imports nested in function bodies
// are captured as well; every binding lands in the same per-file scope.
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
		case "import_from_statement", "future_import_statement":
			imports = append(imports, parseImportFromStatement(n, source)...)
			return
		}
		for i := 0; i < int(n.NamedChildCount()); i++ {
			walk(n.NamedChild(i))
		}
	}

	walk(root)
	return imports
}

// parseImportStatement handles "import a.b, c as d".
func parseImportStatement(n *sitter.Node, source []byte) []langsupport.ImportDecl {
	var imports []langsupport.ImportDecl

	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		switch child.Type() {
		case "dotted_name":
			target := child.Content(source)
			imports = append(imports, langsupport.ImportDecl{
				Target:   target,
				Segments: strings.Split(target, "."),
				Pos:      position(child),
			})
		case "aliased_import":
			name := child.ChildByFieldName("name")
			alias := child.ChildByFieldName("alias")
			if name == nil {
				continue
			}
			target := name.Content(source)
			decl := langsupport.ImportDecl{
				Target:   target,
				Segments: strings.Split(target, "."),
				Pos:      position(child),
			}
			if alias != nil {
				decl.Alias = alias.Content(source)
			}
			imports = append(imports, decl)
		}
	}

	return imports
}

// parseImportFromStatement handles "from ..pkg import name as alias, *".
func parseImportFromStatement(n *sitter.Node, source []byte) []langsupport.ImportDecl {
	module := n.ChildByFieldName("module_name")
	if module == nil {
		return nil
	}

	base := langsupport.ImportDecl{
		Target: module.Content(source),
		Pos:    position(module),
	}

	if module.Type() == "relative_import" {
		dots := 0
		text := base.Target
		for dots < len(text) && text[dots] == '.' {
			dots++
		}
		base.Relative = true
		base.Up = dots - 1
		if rest := strings.TrimLeft(text, "."); rest != "" {
			base.Segments = strings.Split(rest, ".")
		}
	} else {
		base.Segments = strings.Split(base.Target, ".")
	}

	var imports []langsupport.ImportDecl
	pastKeyword := false
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		if child == nil {
			continue
		}
		if child.Type() == "import" {
			pastKeyword = true
			continue
		}
		if !pastKeyword {
			continue
		}

		switch child.Type() {
		case "wildcard_import":
			decl := base
			decl.Wildcard = true
			imports = append(imports, decl)
		case "dotted_name":
			decl := base
			decl.Symbol = child.Content(source)
			imports = append(imports, decl)
		case "aliased_import":
			name := child.ChildByFieldName("name")
			alias := child.ChildByFieldName("alias")
			if name == nil {
				continue
			}
			decl := base
			decl.Symbol = name.Content(source)
			if alias != nil {
				decl.Alias = alias.Content(source)
			}
			imports = append(imports, decl)
		}
	}

	if len(imports) == 0 {
		// "from x import (...)" with forms we do not model; keep the module binding.
		imports = append(imports, base)
	}

	return imports
}

func position(n *sitter.Node) langsupport.Position {
	return langsupport.Position{
		Line:   int(n.StartPoint().Row) + 1,
		Column: int(n.StartPoint().Column) + 1,
	}
}
