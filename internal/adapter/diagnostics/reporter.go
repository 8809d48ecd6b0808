package diagnostics

import (
	"sync"

	"github.com/rs/zerolog"

	"ansify/internal/domain"
)

// Reporter is the default port.Diagnostics: it logs every problem and keeps
// a copy for the caller's summary.
type Reporter struct {
	mu     sync.Mutex
	log    zerolog.Logger
	file   string
	issues []domain.Diagnostic
}

func NewReporter(log zerolog.Logger, file string) *Reporter {
	return &Reporter{log: log, file: file}
}

func (r *Reporter) ParameterNotFound(name, function string) {
	r.log.Warn().
		Str("file", r.file).
		Str("parameter", name).
		Str("function", function).
		Msg("parameter was not found in definitions for function")

	r.add(domain.Diagnostic{
		Kind:      domain.DiagParameterNotFound,
		Parameter: name,
		Function:  function,
		Message:   "parameter `" + name + "' was not found in definitions for function " + function + "()",
	})
}

func (r *Reporter) DefinitionTooLong(err error) {
	r.log.Error().Str("file", r.file).Err(err).Msg("definition too long")

	r.add(domain.Diagnostic{
		Kind:    domain.DiagDefinitionTooLong,
		Message: err.Error(),
	})
}

// Issues returns the diagnostics reported so far.
func (r *Reporter) Issues() []domain.Diagnostic {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Diagnostic, len(r.issues))
	copy(out, r.issues)
	return out
}

func (r *Reporter) add(d domain.Diagnostic) {
	r.mu.Lock()
	r.issues = append(r.issues, d)
	r.mu.Unlock()
}
