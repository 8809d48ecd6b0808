package analyzer

import "strings"

// StripComments deletes every /* ... */ region from s. Nothing is put in
// place of a comment, so the tokens on either side become adjacent.
//
// Comment markers are counted rather than toggled: "/* /* */ */" is removed
// as a whole. A comment still open at the end of s swallows the remainder,
// and a "*/" with no opener is kept as ordinary text.
func StripComments(s string) string {
	if !strings.Contains(s, "/*") {
		return s
	}

	var out strings.Builder
	out.Grow(len(s))

	depth := 0
	for i := 0; i < len(s); {
		switch {
		case hasMarker(s, i, '/', '*'):
			depth++
			i += 2
		case depth > 0 && hasMarker(s, i, '*', '/'):
			depth--
			i += 2
		default:
			if depth == 0 {
				out.WriteByte(s[i])
			}
			i++
		}
	}

	return out.String()
}

// CommentSpans returns the [start, end) byte ranges of the comments that
// StripComments would delete.
func CommentSpans(s string) [][2]int {
	var spans [][2]int
	depth := 0
	start := 0
	for i := 0; i < len(s); {
		switch {
		case hasMarker(s, i, '/', '*'):
			if depth == 0 {
				start = i
			}
			depth++
			i += 2
		case depth > 0 && hasMarker(s, i, '*', '/'):
			depth--
			i += 2
			if depth == 0 {
				spans = append(spans, [2]int{start, i})
			}
		default:
			i++
		}
	}
	if depth > 0 {
		spans = append(spans, [2]int{start, len(s)})
	}
	return spans
}

// IndexOutsideComments returns the index of the first b in s that is not
// inside a comment, or -1.
func IndexOutsideComments(s string, b byte) int {
	pos := 0
	for _, span := range CommentSpans(s) {
		if i := strings.IndexByte(s[pos:span[0]], b); i >= 0 {
			return pos + i
		}
		pos = span[1]
	}
	if pos >= len(s) {
		return -1
	}
	if i := strings.IndexByte(s[pos:], b); i >= 0 {
		return pos + i
	}
	return -1
}

func hasMarker(s string, i int, a, b byte) bool {
	return i+1 < len(s) && s[i] == a && s[i+1] == b
}
