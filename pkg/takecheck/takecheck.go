// Package takecheck reports code that touches a takeref value after it has
// been consumed.
//
// Two patterns are flagged:
//
//	v.Take()
//	v.AsRef()          // use after Take on the same straight-line path
//
//	for ... {
//		v.Take()       // v declared outside the loop: consumed on iteration one
//	}
//
// A use is only reported when it follows the consuming call in the same
// statement list; branches that may or may not have consumed the value are
// left alone. Reassigning the variable ends the tracking.
package takecheck

import (
	"go/ast"
	"go/token"
	"go/types"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
)

// PkgPath is the import path whose types are tracked.
const PkgPath = "github.com/rawbytedev/takeref"

var Analyzer = &analysis.Analyzer{
	Name:     "takecheck",
	Doc:      "report uses of takeref values after Take consumed them",
	URL:      "https://pkg.go.dev/github.com/rawbytedev/takeref/pkg/takecheck",
	Requires: []*analysis.Analyzer{inspect.Analyzer},
	Run:      run,
}

var (
	consuming = map[string]bool{"Take": true, "MustTake": true}
	tracked   = map[string]bool{
		"Ref": true, "Slice": true, "String": true,
		"TakeRef": true, "TakeSlice": true, "TakeString": true,
	}
)

// takeCall is a consuming call on a local variable.
type takeCall struct {
	call *ast.CallExpr
	name string
	obj  *types.Var
}

func run(pass *analysis.Pass) (any, error) {
	insp := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)
	filter := []ast.Node{
		(*ast.BlockStmt)(nil),
		(*ast.CaseClause)(nil),
		(*ast.CommClause)(nil),
	}
	insp.WithStack(filter, func(n ast.Node, push bool, stack []ast.Node) bool {
		if !push {
			return true
		}
		var stmts []ast.Stmt
		switch n := n.(type) {
		case *ast.BlockStmt:
			stmts = n.List
		case *ast.CaseClause:
			stmts = n.Body
		case *ast.CommClause:
			stmts = n.Body
		}
		var loop ast.Node
		if len(stack) >= 2 {
			switch p := stack[len(stack)-2].(type) {
			case *ast.ForStmt:
				if p.Body == n {
					loop = p
				}
			case *ast.RangeStmt:
				if p.Body == n {
					loop = p
				}
			}
		}
		checkList(pass, stmts, loop)
		return true
	})
	return nil, nil
}

func checkList(pass *analysis.Pass, stmts []ast.Stmt, loop ast.Node) {
	for i, stmt := range stmts {
		for _, tc := range takeCalls(pass, stmt) {
			if id := useAfter(pass, stmt, tc.obj, tc.call.End()); id != nil {
				report(pass, id, tc)
				continue
			}
			if id := firstUse(pass, stmts[i+1:], tc.obj); id != nil {
				report(pass, id, tc)
				continue
			}
			if loop != nil && consumedInLoop(pass, stmts, i, tc, loop) {
				pass.Reportf(tc.call.Pos(), "%s.%s called in a loop: %s is consumed on the first iteration",
					tc.obj.Name(), tc.name, tc.obj.Name())
			}
		}
	}
}

func report(pass *analysis.Pass, id *ast.Ident, tc takeCall) {
	pass.Reportf(id.Pos(), "%s used after %s consumed it", id.Name, tc.name)
}

// takeCalls returns the consuming calls evaluated directly by stmt, skipping
// nested blocks and function literals, which are visited on their own.
// Deferred and go calls are skipped too: they are not ordered before the
// statements that follow them.
func takeCalls(pass *analysis.Pass, stmt ast.Stmt) []takeCall {
	var out []takeCall
	ast.Inspect(stmt, func(n ast.Node) bool {
		switch n := n.(type) {
		case *ast.BlockStmt, *ast.CaseClause, *ast.CommClause, *ast.FuncLit,
			*ast.DeferStmt, *ast.GoStmt:
			return false
		case *ast.CallExpr:
			if tc, ok := asTakeCall(pass, n); ok {
				out = append(out, tc)
			}
		}
		return true
	})
	return out
}

func asTakeCall(pass *analysis.Pass, call *ast.CallExpr) (takeCall, bool) {
	sel, ok := call.Fun.(*ast.SelectorExpr)
	if !ok || !consuming[sel.Sel.Name] {
		return takeCall{}, false
	}
	id, ok := ast.Unparen(sel.X).(*ast.Ident)
	if !ok {
		return takeCall{}, false
	}
	v, ok := pass.TypesInfo.Uses[id].(*types.Var)
	if !ok || v.IsField() || v.Parent() == nil || v.Parent() == pass.Pkg.Scope() {
		return takeCall{}, false
	}
	if !isTracked(v.Type()) {
		return takeCall{}, false
	}
	return takeCall{call: call, name: sel.Sel.Name, obj: v}, true
}

func isTracked(t types.Type) bool {
	t = types.Unalias(t)
	if p, ok := t.(*types.Pointer); ok {
		t = types.Unalias(p.Elem())
	}
	named, ok := t.(*types.Named)
	if !ok {
		return false
	}
	obj := named.Obj()
	return obj.Pkg() != nil && obj.Pkg().Path() == PkgPath && tracked[obj.Name()]
}

// useAfter finds a reference to obj inside n positioned after pos.
func useAfter(pass *analysis.Pass, n ast.Node, obj *types.Var, pos token.Pos) *ast.Ident {
	var found *ast.Ident
	ast.Inspect(n, func(n ast.Node) bool {
		if found != nil {
			return false
		}
		if id, ok := n.(*ast.Ident); ok && id.Pos() >= pos && pass.TypesInfo.ObjectOf(id) == obj {
			found = id
		}
		return true
	})
	return found
}

// firstUse scans stmts in order for a reference to obj, stopping at the first
// plain reassignment of obj.
func firstUse(pass *analysis.Pass, stmts []ast.Stmt, obj *types.Var) *ast.Ident {
	for _, stmt := range stmts {
		if as, ok := stmt.(*ast.AssignStmt); ok && assigns(pass, as, obj) {
			for _, rhs := range as.Rhs {
				if id := useAfter(pass, rhs, obj, token.NoPos); id != nil {
					return id
				}
			}
			return nil
		}
		if id := useAfter(pass, stmt, obj, token.NoPos); id != nil {
			return id
		}
	}
	return nil
}

func assigns(pass *analysis.Pass, as *ast.AssignStmt, obj *types.Var) bool {
	if as.Tok != token.ASSIGN && as.Tok != token.DEFINE {
		return false
	}
	for _, lhs := range as.Lhs {
		if id, ok := ast.Unparen(lhs).(*ast.Ident); ok && pass.TypesInfo.ObjectOf(id) == obj {
			return true
		}
	}
	return false
}

// consumedInLoop reports whether the call at stmts[i] runs on every iteration
// of loop against a variable that outlives a single iteration.
func consumedInLoop(pass *analysis.Pass, stmts []ast.Stmt, i int, tc takeCall, loop ast.Node) bool {
	if tc.obj.Pos() >= loop.Pos() {
		return false
	}
	if _, ok := stmts[i].(*ast.ReturnStmt); ok {
		return false
	}
	for _, stmt := range stmts[:i] {
		if as, ok := stmt.(*ast.AssignStmt); ok && assigns(pass, as, tc.obj) {
			return false
		}
	}
	for _, stmt := range stmts[i+1:] {
		switch s := stmt.(type) {
		case *ast.ReturnStmt:
			return false
		case *ast.BranchStmt:
			if s.Tok == token.BREAK || s.Tok == token.GOTO {
				return false
			}
		case *ast.AssignStmt:
			if assigns(pass, s, tc.obj) {
				return false
			}
		case *ast.ExprStmt:
			if call, ok := s.X.(*ast.CallExpr); ok && isPanic(pass, call) {
				return false
			}
		}
	}
	return true
}

func isPanic(pass *analysis.Pass, call *ast.CallExpr) bool {
	id, ok := ast.Unparen(call.Fun).(*ast.Ident)
	if !ok {
		return false
	}
	b, ok := pass.TypesInfo.Uses[id].(*types.Builtin)
	return ok && b.Name() == "panic"
}
