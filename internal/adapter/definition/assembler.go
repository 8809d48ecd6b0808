package definition

import (
	"strings"

	"ansify/internal/adapter/analyzer"
	"ansify/internal/domain"
	"ansify/internal/port"
)

// DefaultMaxLines is the line limit used when none is configured.
const DefaultMaxLines = 50

// Assembler gathers the lines of one candidate definition from a line
// source. Every line it consumes is also fed to the classifier so the
// file-level nesting state stays correct.
type Assembler struct {
	src        port.LineSource
	classifier *analyzer.Classifier
	maxLines   int
}

func NewAssembler(src port.LineSource, classifier *analyzer.Classifier, maxLines int) *Assembler {
	if maxLines <= 0 {
		maxLines = DefaultMaxLines
	}
	return &Assembler{
		src:        src,
		classifier: classifier,
		maxLines:   maxLines,
	}
}

// Assemble starts a unit with first and appends lines until the last one
// contains ';' or '{'. Running out of input ends the unit early.
func (a *Assembler) Assemble(first string) (domain.DefinitionUnit, error) {
	unit := domain.DefinitionUnit{Lines: []string{first}}

	for !strings.ContainsAny(unit.Last(), ";{") {
		ok, err := a.appendNext(&unit)
		if err != nil || !ok {
			return unit, err
		}
	}
	return unit, nil
}

// Complete extends a unit that ended on ';' without any '{' up to the line
// holding the opening brace. This picks up the parameter declarations of a
// K&R definition.
func (a *Assembler) Complete(unit *domain.DefinitionUnit) error {
	if !strings.Contains(unit.Last(), ";") || unit.Contains('{') {
		return nil
	}

	for !strings.Contains(unit.Last(), "{") {
		ok, err := a.appendNext(unit)
		if err != nil || !ok {
			return err
		}
	}
	return nil
}

func (a *Assembler) appendNext(unit *domain.DefinitionUnit) (bool, error) {
	line, ok := a.src.Next()
	if !ok {
		return false, a.src.Err()
	}

	unit.Lines = append(unit.Lines, line)
	if unit.Len() > a.maxLines {
		return false, &domain.DefinitionTooLongError{Max: a.maxLines, Lines: unit.Lines}
	}

	a.classifier.Classify(line)
	return true, nil
}
