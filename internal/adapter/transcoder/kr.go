package transcoder

import (
	"strings"

	"ansify/internal/adapter/analyzer"
	"ansify/internal/domain"
	"ansify/internal/port"
)

// KR writes unit in K&R form: a bare name list followed by one declaration
// line per parameter. Units that already carry declarations are copied.
func KR(sink port.LineSink, unit domain.DefinitionUnit, diag port.Diagnostics) (Result, error) {
	if IsKR(unit) {
		return Result{}, passThrough(sink, unit)
	}

	sig, ok := parseSignature(unit)
	if !ok {
		return Result{}, passThrough(sink, unit)
	}

	slots := ansiSlots(sig.params())
	for _, slot := range slots {
		// K&R has no spelling for a variable argument list.
		if strings.TrimSpace(slot) == "..." {
			return Result{}, passThrough(sink, unit)
		}
	}

	names := make([]string, 0, len(slots))
	for _, slot := range slots {
		names = append(names, slotName(slot))
	}

	var out strings.Builder
	out.WriteString(sig.header)
	out.WriteString(strings.Join(names, ", "))
	out.WriteString(")\n")

	// Names are looked up from just past the opening paren so the closing
	// paren can terminate the last one.
	defs := sig.scratch[sig.lparen+1:]
	listEnd := sig.rparen - (sig.lparen + 1)

	var res Result
	for _, name := range names {
		decl, found := krDeclaration(defs, listEnd, name)
		if !found {
			res.Missing = append(res.Missing, name)
			if diag != nil {
				diag.ParameterNotFound(name, sig.name())
			}
			continue
		}
		out.WriteString(decl)
		out.WriteString(" ;\n")
		res.Parameters++
	}

	out.WriteString("{")
	out.WriteString(sig.tail)
	out.WriteString("\n")

	res.Converted = true
	return res, sink.Write(out.String())
}

// ansiSlots splits an ANSI parameter list on commas. An empty list and a
// lone void both mean no parameters.
func ansiSlots(list string) []string {
	switch strings.TrimSpace(list) {
	case "", "void", "VOID":
		return nil
	}
	return strings.Split(list, ",")
}

// slotName returns the declarator name at the end of one ANSI parameter,
// without any array suffix.
func slotName(slot string) string {
	slot = strings.TrimSpace(slot)
	i := len(slot)
	for i > 0 && !isBlank(slot[i-1]) && slot[i-1] != '*' {
		i--
	}
	name := slot[i:]
	if j := strings.IndexByte(name, '['); j >= 0 {
		name = name[:j]
	}
	return name
}

// krDeclaration recovers the full declaration of name from the parameter
// text: back to the preceding '(' , ',' or comment end, forward to the
// following ',' or ')'.
func krDeclaration(defs string, listEnd int, name string) (string, bool) {
	pos := analyzer.FindWholeWord(defs, name)
	if pos < 0 || pos > listEnd {
		return "", false
	}

	start := pos
	for start > 0 && defs[start-1] != '(' && defs[start-1] != ',' && !strings.HasSuffix(defs[:start], "*/") {
		start--
	}
	for start < pos && isBlank(defs[start]) {
		start++
	}

	stop := len(defs)
	if i := strings.IndexAny(defs[pos:], ",)"); i >= 0 {
		stop = pos + i
	}

	return strings.TrimRight(defs[start:stop], " \t"), true
}
