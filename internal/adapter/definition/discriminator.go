package definition

import (
	"strings"

	"ansify/internal/domain"
)

// IsFunction reports whether an assembled unit is a function definition
// rather than a prototype or external declaration.
//
// A '{' anywhere means a body follows. Otherwise the unit ended on ';' and
// the last non-blank character before that ';' decides: ')' closes a
// prototype's parameter list, anything else ends a K&R parameter
// declaration.
func IsFunction(unit domain.DefinitionUnit) bool {
	if unit.Contains('{') {
		return true
	}
	if unit.Len() == 0 {
		return false
	}

	line := unit.Len() - 1
	i := strings.IndexByte(unit.Lines[line], ';')
	if i < 0 {
		return false
	}

	for {
		text := unit.Lines[line]
		i--
		for i >= 0 && isBlank(text[i]) {
			i--
		}
		if i >= 0 {
			return text[i] != ')'
		}

		line--
		if line < 0 {
			return true
		}
		i = len(unit.Lines[line])
	}
}

func isBlank(b byte) bool {
	return b == ' ' || b == '\t'
}
