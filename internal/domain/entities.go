package domain

import (
	"fmt"
	"strings"
	"time"
)

// Mode selects what the converter emits for every definition in a run.
type Mode int

const (
	// ModeANSI rewrites K&R definitions into ANSI form.
	ModeANSI Mode = iota
	// ModeKR rewrites ANSI definitions into K&R form.
	ModeKR
	// ModePrototypes emits one prototype per function definition and nothing else.
	ModePrototypes
)

func (m Mode) String() string {
	switch m {
	case ModeANSI:
		return "ansi"
	case ModeKR:
		return "kr"
	case ModePrototypes:
		return "proto"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// ParseMode accepts the names used in config files and on the command line.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ansi", "":
		return ModeANSI, nil
	case "kr", "k&r", "knr":
		return ModeKR, nil
	case "proto", "prototype", "prototypes":
		return ModePrototypes, nil
	default:
		return ModeANSI, fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}

// DefinitionUnit holds the source lines of one candidate definition,
// newlines stripped, in input order.
type DefinitionUnit struct {
	Lines []string
}

// Len returns the number of lines in the unit.
func (u DefinitionUnit) Len() int {
	return len(u.Lines)
}

// Last returns the most recently appended line.
func (u DefinitionUnit) Last() string {
	if len(u.Lines) == 0 {
		return ""
	}
	return u.Lines[len(u.Lines)-1]
}

// Contains reports whether any line of the unit contains b.
func (u DefinitionUnit) Contains(b byte) bool {
	for _, l := range u.Lines {
		if strings.IndexByte(l, b) >= 0 {
			return true
		}
	}
	return false
}

// Join concatenates the lines with sep.
func (u DefinitionUnit) Join(sep string) string {
	return strings.Join(u.Lines, sep)
}

// Diagnostic is a non-fatal problem found while converting a file.
type Diagnostic struct {
	Kind      string `json:"kind"`
	Parameter string `json:"parameter,omitempty"`
	Function  string `json:"function,omitempty"`
	Message   string `json:"message"`
}

const (
	DiagParameterNotFound = "parameter_not_found"
	DiagDefinitionTooLong = "definition_too_long"
)

// ConversionRecord describes the last conversion of one source file.
type ConversionRecord struct {
	Path        string    `json:"path"`
	Output      string    `json:"output"`
	Hash        string    `json:"hash"`
	Mode        string    `json:"mode"`
	ConvertedAt time.Time `json:"converted_at"`
	Definitions int       `json:"definitions"`
	Converted   int       `json:"converted"`
	Warnings    int       `json:"warnings"`
}
