package decl

import (
	"fmt"
)

// Severity of an analysis finding.
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
)

func (s Severity) String() string {
	if s == SeverityError {
		return "error"
	}
	return "warning"
}

// Diagnostic is a single finding from Analyze.
type Diagnostic struct {
	Location Location
	Severity Severity
	Message  string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s: %s", d.Location, d.Severity, d.Message)
}

// BindingKind says how a name was declared.
type BindingKind int

const (
	BindGlobal BindingKind = iota
	BindNonlocal
)

func (k BindingKind) String() string {
	if k == BindNonlocal {
		return "nonlocal"
	}
	return "global"
}

// Binding records the first declaration of a name.
type Binding struct {
	Kind  BindingKind
	Ident *Identifier
}

// AnalysisResult holds the module scope built by Analyze and everything it found.
type AnalysisResult struct {
	Scope       *Env[*Binding]
	Diagnostics []Diagnostic
}

func (r *AnalysisResult) add(loc Location, sev Severity, format string, args ...any) {
	r.Diagnostics = append(r.Diagnostics, Diagnostic{Location: loc, Severity: sev, Message: fmt.Sprintf(format, args...)})
}

// HasErrors reports whether any diagnostic has error severity.
func (r *AnalysisResult) HasErrors() bool {
	for _, d := range r.Diagnostics {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Analyze checks the statements of a module against the rules that apply at
// module scope.  These are the checks a compiler performs after parsing:
// flow statements need an enclosing loop or function, nonlocal needs an
// enclosing function, and a name may not be both global and nonlocal.
// Diagnostics are in source order.
func Analyze(m *Module) *AnalysisResult {
	result := &AnalysisResult{Scope: NewEnv[*Binding]()}
	for _, stmt := range m.Body {
		switch s := stmt.(type) {
		case *BreakStmt:
			result.add(s.Pos(), SeverityError, "'break' outside loop")
		case *ContinueStmt:
			result.add(s.Pos(), SeverityError, "'continue' not properly in loop")
		case *ReturnStmt:
			result.add(s.Pos(), SeverityError, "'return' outside function")
		case *GlobalStmt:
			declareNames(result, s.Names, BindGlobal)
		case *NonlocalStmt:
			result.add(s.Pos(), SeverityError, "nonlocal declaration not allowed at module level")
			declareNames(result, s.Names, BindNonlocal)
		}
	}
	return result
}

func declareNames(result *AnalysisResult, names []*Identifier, kind BindingKind) {
	for _, ident := range names {
		prev, found := result.Scope.Get(ident.Name)
		switch {
		case !found:
			result.Scope.Set(ident.Name, &Binding{Kind: kind, Ident: ident})
		case prev.Kind != kind:
			result.add(ident.Pos(), SeverityError, "name '%s' is nonlocal and global", ident.Name)
		default:
			result.add(ident.Pos(), SeverityWarning, "name '%s' is already declared %s at %s", ident.Name, kind, prev.Ident.Pos())
		}
	}
}
