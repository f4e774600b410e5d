// Package golang - Package-level validation of generated files
package golang

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
)

// checkDeclarations parses every file and reports the first identifier declared twice
// at package scope, or the first method declared twice on one receiver type.
func checkDeclarations(files map[string]string) error {
	fset := token.NewFileSet()
	declared := make(map[string]string) // identifier → file

	declare := func(name, file string) error {
		if name == "_" || name == "init" {
			return nil
		}
		if prev, ok := declared[name]; ok {
			if prev == file {
				return fmt.Errorf("%s: %s declared twice", file, name)
			}
			return fmt.Errorf("%s: %s already declared in %s", file, name, prev)
		}
		declared[name] = file
		return nil
	}

	for _, name := range sortedNames(files) {
		f, err := parser.ParseFile(fset, name, files[name], parser.SkipObjectResolution)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", name, err)
		}
		for _, decl := range f.Decls {
			switch d := decl.(type) {
			case *ast.FuncDecl:
				key := d.Name.Name
				if d.Recv != nil && len(d.Recv.List) > 0 {
					key = receiverName(d.Recv.List[0].Type) + "." + key
				}
				if err := declare(key, name); err != nil {
					return err
				}
			case *ast.GenDecl:
				for _, spec := range d.Specs {
					switch s := spec.(type) {
					case *ast.TypeSpec:
						if err := declare(s.Name.Name, name); err != nil {
							return err
						}
					case *ast.ValueSpec:
						for _, id := range s.Names {
							if err := declare(id.Name, name); err != nil {
								return err
							}
						}
					}
				}
			}
		}
	}
	return nil
}

func receiverName(expr ast.Expr) string {
	switch e := expr.(type) {
	case *ast.StarExpr:
		return receiverName(e.X)
	case *ast.Ident:
		return e.Name
	case *ast.IndexExpr:
		return receiverName(e.X)
	}
	return ""
}
