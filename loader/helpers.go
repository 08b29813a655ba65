package loader

import (
	"fmt"
	"log/slog"

	"github.com/panyam/pystmt/decl"
)

// Validate runs decl.Analyze over every loaded module.  Analysis errors are
// added to the result; warnings are only logged.  Returns false if any file
// failed to load or has analysis errors.
func (l *Loader) Validate(result *LoadResult) (success bool) {
	success = !result.HasErrors()
	for _, p := range result.Paths {
		module, ok := result.Modules[p]
		if !ok {
			continue
		}
		analysis := decl.Analyze(module)
		result.Analysis[p] = analysis
		for _, d := range analysis.Diagnostics {
			if d.Severity == decl.SeverityError {
				result.AddErrors(fmt.Errorf("%s:%s", p, d))
			} else {
				slog.Warn("analysis warning", "path", p, "at", d.Location.String(), "msg", d.Message)
			}
		}
		if analysis.HasErrors() {
			success = false
		} else {
			slog.Debug("validated", "path", p, "statements", len(module.Body))
		}
	}
	return
}

// LoadFilesAndValidate is LoadFiles followed by Validate.
func (l *Loader) LoadFilesAndValidate(maxErrors int, paths ...string) (*LoadResult, bool) {
	result := l.LoadFiles(maxErrors, paths...)
	return result, l.Validate(result)
}
