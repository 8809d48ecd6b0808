package transcoder

import (
	"strings"

	"ansify/internal/adapter/analyzer"
	"ansify/internal/domain"
	"ansify/internal/port"
)

// ANSI writes unit in ANSI form, or as a prototype when mode is
// ModePrototypes. Units already in ANSI form are copied, or cut at the
// opening brace for prototypes.
func ANSI(sink port.LineSink, unit domain.DefinitionUnit, mode domain.Mode, diag port.Diagnostics) (Result, error) {
	if IsANSI(unit) {
		if mode == domain.ModePrototypes {
			return Result{}, writeCutPrototype(sink, unit)
		}
		return Result{}, passThrough(sink, unit)
	}

	sig, ok := parseSignature(unit)
	if !ok {
		return Result{}, passThrough(sink, unit)
	}

	decls := sig.after()
	if i := strings.IndexByte(decls, '{'); i >= 0 {
		decls = decls[:i]
	}

	var (
		res    Result
		params []string
	)
	for _, name := range krNames(sig.params()) {
		b, found := bindKR(decls, name)
		if !found {
			res.Missing = append(res.Missing, name)
			if diag != nil {
				diag.ParameterNotFound(name, sig.name())
			}
			continue
		}
		params = append(params, b.ansi(decls))
	}

	var out strings.Builder
	out.WriteString(sig.header)
	out.WriteString(strings.Join(params, ",\n"+strings.Repeat(" ", sig.indent())))
	if mode == domain.ModePrototypes {
		out.WriteString(");\n")
	} else {
		out.WriteString(")\n{")
		out.WriteString(sig.tail)
		out.WriteString("\n")
	}

	res.Converted = true
	res.Parameters = len(params)
	return res, sink.Write(out.String())
}

// writeCutPrototype copies an ANSI unit up to its opening brace and ends it
// with ';' in the brace's place.
func writeCutPrototype(sink port.LineSink, unit domain.DefinitionUnit) error {
	for _, line := range unit.Lines {
		if i := strings.IndexByte(line, '{'); i >= 0 {
			return sink.WriteLine(line[:i] + ";")
		}
		if err := sink.WriteLine(line); err != nil {
			return err
		}
	}
	return nil
}

// krNames splits a K&R parameter list into its names.
func krNames(list string) []string {
	var names []string
	for _, field := range strings.Split(list, ",") {
		if name := strings.TrimSpace(field); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// binding ties a parameter name to its declaration in the K&R declaration
// area. All offsets index that area.
type binding struct {
	name string
	// start is the first non-blank byte of the declaration statement.
	start int
	// pos is where the name itself begins.
	pos int
	// end is the ';' (or end of text) closing the declaration statement.
	end int
}

// bindKR locates the declaration of name among the K&R declarations.
func bindKR(decls, name string) (binding, bool) {
	pos := analyzer.FindWholeWord(decls, name)
	if pos < 0 {
		return binding{}, false
	}

	start := strings.LastIndexByte(decls[:pos], ';') + 1
	for start < pos && isBlank(decls[start]) {
		start++
	}

	end := len(decls)
	if i := strings.IndexByte(decls[pos:], ';'); i >= 0 {
		end = pos + i
	}

	return binding{name: name, start: start, pos: pos, end: end}, true
}

// ansi renders the binding as an inline ANSI parameter.
func (b binding) ansi(decls string) string {
	after := b.pos + len(b.name)

	// A parenthesised declarator such as (*fn)() cannot be split into type
	// and name, so a declaration of its own is copied whole.
	if shared := strings.IndexByte(decls[b.start:b.pos], ',') >= 0; !shared {
		if rest := strings.TrimLeft(decls[after:b.end], " \t"); strings.HasPrefix(rest, ")") {
			return strings.TrimSpace(decls[b.start:b.end])
		}
	}

	var out strings.Builder
	out.WriteString(b.typeName(decls))
	out.WriteByte(' ')
	out.WriteString(strings.Repeat("*", b.stars(decls)))
	out.WriteString(b.name)
	out.WriteString(b.array(decls))
	return out.String()
}

// typeName returns the declaration's base type. When other names share the
// declaration and come first ("int x, y;" for y), the type stops at the
// first comma and the co-declared name before it is dropped.
func (b binding) typeName(decls string) string {
	text := decls[b.start:b.pos]
	if c := strings.IndexByte(text, ','); c >= 0 {
		text = strings.TrimRight(text[:c], " \t")
		if i := strings.LastIndexAny(text, " \t"); i >= 0 {
			text = text[:i]
		} else {
			text = ""
		}
	}
	return strings.TrimRight(text, " \t*")
}

// stars counts the '*' immediately in front of the name.
func (b binding) stars(decls string) int {
	n := 0
	for i := b.pos - 1; i >= b.start; i-- {
		switch {
		case decls[i] == '*':
			n++
		case isBlank(decls[i]):
		default:
			return n
		}
	}
	return n
}

// array returns the bracket suffix following the name, if any.
func (b binding) array(decls string) string {
	after := b.pos + len(b.name)
	seg := decls[after:b.end]
	if i := strings.IndexByte(seg, ','); i >= 0 {
		seg = seg[:i]
	}
	seg = strings.TrimSpace(seg)
	if strings.HasPrefix(seg, "[") {
		return seg
	}
	return ""
}
