package analyzer

import "strings"

// LineClass is the outcome of classifying one source line.
type LineClass int

const (
	// NotInteresting lines are copied through untouched.
	NotInteresting LineClass = iota
	// Interesting lines start at top level and may open a definition.
	Interesting
)

func (c LineClass) String() string {
	if c == Interesting {
		return "interesting"
	}
	return "not-interesting"
}

// Classifier tracks brace, quote and comment nesting across the lines of a
// single file. The zero value is ready to use; use one Classifier per file.
type Classifier struct {
	braces   int
	comments int
	inDouble bool
	inSingle bool
}

// NewClassifier returns a classifier positioned at the top of a file.
func NewClassifier() *Classifier {
	return &Classifier{}
}

// Reset returns the classifier to its initial state.
func (c *Classifier) Reset() {
	*c = Classifier{}
}

// Depth returns the current curly brace depth.
func (c *Classifier) Depth() int {
	return c.braces
}

// InComment reports whether a block comment is open.
func (c *Classifier) InComment() bool {
	return c.comments > 0
}

// InString reports whether a string or character literal is open.
func (c *Classifier) InString() bool {
	return c.inDouble || c.inSingle
}

// AtTopLevel reports whether the next line starts outside any braces,
// literals and comments.
func (c *Classifier) AtTopLevel() bool {
	return c.braces == 0 && c.comments == 0 && !c.inDouble && !c.inSingle
}

// Classify updates the nesting state with line (newline already stripped)
// and reports whether the line could begin a top-level definition.
//
// Preprocessor lines are never interesting and leave the state alone. A //
// comment ends the scan of the line and makes it uninteresting.
func (c *Classifier) Classify(line string) LineClass {
	if strings.HasPrefix(line, "#") {
		return NotInteresting
	}

	result := NotInteresting
	if c.AtTopLevel() {
		result = Interesting
	}
	if strings.HasPrefix(strings.TrimLeft(line, " \t"), "/*") {
		result = NotInteresting
	}

	blank := true
	for i := 0; i < len(line); i++ {
		ch := line[i]
		if ch != ' ' && ch != '\t' {
			blank = false
		}

		switch {
		case c.inDouble || c.inSingle:
			switch {
			case ch == '\\':
				i++
			case ch == '"' && c.inDouble:
				c.inDouble = false
			case ch == '\'' && c.inSingle:
				c.inSingle = false
			}

		case c.comments > 0:
			switch {
			case hasMarker(line, i, '*', '/'):
				c.comments--
				i++
			case hasMarker(line, i, '/', '*'):
				c.comments++
				i++
			}

		default:
			switch {
			case hasMarker(line, i, '/', '/'):
				return NotInteresting
			case hasMarker(line, i, '/', '*'):
				c.comments++
				i++
			case ch == '"':
				c.inDouble = true
			case ch == '\'':
				c.inSingle = true
			case ch == '{':
				c.braces++
			case ch == '}':
				c.braces--
			}
		}
	}

	if blank {
		return NotInteresting
	}
	return result
}
