package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFindSubstring(t *testing.T) {
	assert.Equal(t, 0, FindSubstring("obs", "o"))
	assert.Equal(t, 4, FindSubstring("int void", "void"))
	assert.Equal(t, -1, FindSubstring("int", "x"))
	assert.Equal(t, -1, FindSubstring("int", ""))
}

func TestFindWholeWord(t *testing.T) {
	tests := []struct {
		name   string
		buf    string
		needle string
		want   int
	}{
		{"after space before semicolon", "int a;", "a", 4},
		{"rejects prefix of type", "struct obs *o;", "o", 12},
		{"rejects inside type name", "struct wor *w;struct obs *o;", "w", 12},
		{"after star", "char **argv;", "argv", 7},
		{"after comma", "int x,y;", "y", 6},
		{"array suffix", "char buf[10];", "buf", 5},
		{"before paren", "int a, int b)", "b", 11},
		{"before comma", "int a, int b)", "a", 4},
		{"at start", "x;", "x", 0},
		{"end of buffer rejected", "int a", "a", -1},
		{"longer identifier rejected", "int ab;", "a", -1},
		{"suffix of identifier rejected", "int ba;", "a", -1},
		{"tab before is not a boundary", "int\ta;", "a", -1},
		{"empty needle", "int a;", "", -1},
		{"not present", "int a;", "z", -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FindWholeWord(tt.buf, tt.needle))
		})
	}
}

func TestFindWholeWordVersusSubstring(t *testing.T) {
	buf := "struct wor *w;"
	assert.Equal(t, 7, FindSubstring(buf, "w"), "plain search stops inside the type name")
	assert.Equal(t, 12, FindWholeWord(buf, "w"))
}
