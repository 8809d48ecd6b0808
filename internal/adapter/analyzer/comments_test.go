package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripComments(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"no comment", "int x;", "int x;"},
		{"single", "int /* count */x;", "int x;"},
		{"adjacent tokens join", "int/**/x;", "intx;"},
		{"two comments", "a /* 1 */ b /* 2 */ c", "a  b  c"},
		{"nested counting", "a /* /* */ still */b", "a b"},
		{"unterminated", "int x; /* open", "int x; "},
		{"stray close kept", "x */ y", "x */ y"},
		{"stray close then comment", "x */ y /* z */", "x */ y "},
		{"paren in comment", "extern int n; /* see f() */", "extern int n; "},
		{"short buffers", "/", "/"},
		{"open only", "/*", ""},
		{"slash star slash", "/*/ x */y", "y"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripComments(tt.input))
		})
	}
}

func TestIndexOutsideComments(t *testing.T) {
	assert.Equal(t, -1, IndexOutsideComments("int x; /* f() */", '('))
	assert.Equal(t, 12, IndexOutsideComments("/* a(b) */ f(x)", '('))
	assert.Equal(t, 5, IndexOutsideComments("int f(void)", '('))
	assert.Equal(t, -1, IndexOutsideComments("int /* (", '('))
	assert.Equal(t, -1, IndexOutsideComments("", '('))
}

func TestCommentSpans(t *testing.T) {
	spans := CommentSpans("a /* b */ c /* d")
	assert.Equal(t, [][2]int{{2, 9}, {12, 16}}, spans)
}
