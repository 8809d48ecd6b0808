package definition

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ansify/internal/adapter/analyzer"
	"ansify/internal/adapter/lineio"
	"ansify/internal/domain"
)

func assemble(t *testing.T, input string, maxLines int) (domain.DefinitionUnit, *lineio.Reader, error) {
	t.Helper()
	src := lineio.NewReader(strings.NewReader(input), false)
	first, ok := src.Next()
	require.True(t, ok)

	c := analyzer.NewClassifier()
	c.Classify(first)
	a := NewAssembler(src, c, maxLines)

	unit, err := a.Assemble(first)
	if err != nil {
		return unit, src, err
	}
	if IsFunction(unit) {
		err = a.Complete(&unit)
	}
	return unit, src, err
}

func TestAssembler_ANSIDefinition(t *testing.T) {
	unit, src, err := assemble(t, "int add(int a,\n        int b)\n{\n  return a + b;\n}\n", 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"int add(int a,", "        int b)", "{"}, unit.Lines)

	next, ok := src.Next()
	require.True(t, ok)
	assert.Equal(t, "  return a + b;", next)
}

func TestAssembler_KRDefinition(t *testing.T) {
	unit, _, err := assemble(t, "void setpt(p, x, y)\nstruct point *p;\nint x, y;\n{\n}\n", 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"void setpt(p, x, y)", "struct point *p;", "int x, y;", "{"}, unit.Lines)
}

func TestAssembler_KRBraceOnDeclarationLine(t *testing.T) {
	unit, _, err := assemble(t, "int f(a)\nint a; {\n}\n", 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"int f(a)", "int a; {"}, unit.Lines)
}

func TestAssembler_Prototype(t *testing.T) {
	unit, src, err := assemble(t, "extern int f(int a,\n             int b);\nint x;\n", 0)
	require.NoError(t, err)
	assert.Equal(t, 2, unit.Len())
	assert.False(t, IsFunction(unit))

	next, _ := src.Next()
	assert.Equal(t, "int x;", next)
}

func TestAssembler_EndOfInput(t *testing.T) {
	unit, _, err := assemble(t, "int f(a,\nb)", 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"int f(a,", "b)"}, unit.Lines)
	assert.False(t, IsFunction(unit))
}

func TestAssembler_TooLong(t *testing.T) {
	input := "int f(a,\n" + strings.Repeat("b,\n", 10) + "c)\n{\n"
	_, _, err := assemble(t, input, 5)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrDefinitionTooLong))

	var tooLong *domain.DefinitionTooLongError
	require.True(t, errors.As(err, &tooLong))
	assert.Equal(t, 5, tooLong.Max)
	assert.Equal(t, "int f(a,", tooLong.Lines[0])
	assert.Len(t, tooLong.Lines, 6)
}

func TestAssembler_UpdatesClassifier(t *testing.T) {
	src := lineio.NewReader(strings.NewReader("{\n"), false)
	c := analyzer.NewClassifier()
	first := "int f(void)"
	c.Classify(first)

	unit, err := NewAssembler(src, c, 0).Assemble(first)
	require.NoError(t, err)
	assert.Equal(t, 2, unit.Len())
	assert.Equal(t, 1, c.Depth())
}

func TestIsFunction(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  bool
	}{
		{"brace", []string{"int f(void)", "{"}, true},
		{"prototype", []string{"int f(int a);"}, false},
		{"prototype with spaces", []string{"int f(int a)  \t;"}, false},
		{"prototype semicolon on next line", []string{"int f(int a)", "   ;"}, false},
		{"prototype across blank line", []string{"int f(int a)", "", "  ;"}, false},
		{"kr declarations", []string{"int f(a)", "int a;"}, true},
		{"kr on one line", []string{"int f(a) int a;"}, true},
		{"first semicolon decides prototype", []string{"int f(int a); int x;"}, false},
		{"first semicolon decides kr", []string{"int f(a, b) int a; int (*b)();"}, true},
		{"extern variable", []string{"extern int (*handler);"}, false},
		{"no terminator", []string{"int f(a"}, false},
		{"empty", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsFunction(domain.DefinitionUnit{Lines: tt.lines}))
		})
	}
}
