// Package transcoder rewrites assembled function definitions between K&R
// and ANSI parameter styles and derives prototypes from them.
package transcoder

import (
	"strings"

	"ansify/internal/adapter/analyzer"
	"ansify/internal/domain"
	"ansify/internal/port"
)

// Result describes what happened to one definition unit.
type Result struct {
	// Converted is set when the unit was rewritten rather than copied.
	Converted bool

	// Parameters is the number of parameters written.
	Parameters int

	// Missing lists K&R parameters that had no type declaration.
	Missing []string
}

// IsANSI reports whether a unit is already in ANSI form: none of its lines
// contains a ';'.
func IsANSI(unit domain.DefinitionUnit) bool {
	return !unit.Contains(';')
}

// IsKR reports whether a unit carries separate parameter declarations.
func IsKR(unit domain.DefinitionUnit) bool {
	return unit.Contains(';')
}

// Transcode writes unit to sink in the form selected by mode.
func Transcode(sink port.LineSink, unit domain.DefinitionUnit, mode domain.Mode, diag port.Diagnostics) (Result, error) {
	switch mode {
	case domain.ModeKR:
		return KR(sink, unit, diag)
	case domain.ModeANSI, domain.ModePrototypes:
		return ANSI(sink, unit, mode, diag)
	default:
		return Result{}, domain.ErrUnknownMode
	}
}

// signature is the structural view of a unit shared by both transcoders.
type signature struct {
	// header is the original text up to and including the opening paren.
	header string
	// scratch is the unit joined on spaces with comments removed.
	scratch string
	// lparen and rparen index the parameter list parens in scratch. rparen
	// is len(scratch) when the list is never closed.
	lparen, rparen int
	// tail is whatever followed the opening brace on the last line.
	tail string
}

func parseSignature(unit domain.DefinitionUnit) (signature, bool) {
	orig := unit.Join("\n")
	headerEnd := analyzer.IndexOutsideComments(orig, '(')
	if headerEnd < 0 {
		return signature{}, false
	}

	scratch := analyzer.StripComments(unit.Join(" "))
	lparen := strings.IndexByte(scratch, '(')
	if lparen < 0 {
		return signature{}, false
	}
	rparen := len(scratch)
	if i := strings.IndexByte(scratch[lparen+1:], ')'); i >= 0 {
		rparen = lparen + 1 + i
	}

	sig := signature{
		header:  orig[:headerEnd+1],
		scratch: scratch,
		lparen:  lparen,
		rparen:  rparen,
	}
	last := unit.Last()
	if i := strings.IndexByte(last, '{'); i >= 0 {
		sig.tail = last[i+1:]
	}
	return sig, true
}

// params returns the text between the parameter list parens.
func (s signature) params() string {
	return s.scratch[s.lparen+1 : s.rparen]
}

// after returns everything following the closing paren.
func (s signature) after() string {
	if s.rparen >= len(s.scratch) {
		return ""
	}
	return s.scratch[s.rparen+1:]
}

// name is the function header without its opening paren, for messages.
func (s signature) name() string {
	return strings.TrimSpace(strings.ReplaceAll(strings.TrimSuffix(s.header, "("), "\n", " "))
}

// indent is the column just past the opening paren.
func (s signature) indent() int {
	return len(s.header) - (strings.LastIndexByte(s.header, '\n') + 1)
}

func passThrough(sink port.LineSink, unit domain.DefinitionUnit) error {
	for _, line := range unit.Lines {
		if err := sink.WriteLine(line); err != nil {
			return err
		}
	}
	return nil
}

func isBlank(b byte) bool {
	return b == ' ' || b == '\t'
}
