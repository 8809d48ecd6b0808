package analyzer

import "strings"

// FindSubstring returns the index of the first occurrence of needle in buf,
// or -1. An empty needle is never found.
func FindSubstring(buf, needle string) int {
	if needle == "" {
		return -1
	}
	return strings.Index(buf, needle)
}

// FindWholeWord is FindSubstring restricted to occurrences that stand as a
// declarator name: the match must be at the start of buf or follow one of
// ' ', '*' or ',', and it must be followed by one of ';', '[', ' ', ')' or ','.
//
// This is what keeps parameter "o" from matching inside "struct obs *o".
func FindWholeWord(buf, needle string) int {
	if needle == "" {
		return -1
	}

	for from := 0; from+len(needle) <= len(buf); {
		j := strings.Index(buf[from:], needle)
		if j < 0 {
			return -1
		}
		i := from + j
		if boundedBefore(buf, i) && boundedAfter(buf, i+len(needle)) {
			return i
		}
		from = i + 1
	}
	return -1
}

func boundedBefore(buf string, i int) bool {
	if i == 0 {
		return true
	}
	switch buf[i-1] {
	case ' ', '*', ',':
		return true
	}
	return false
}

func boundedAfter(buf string, end int) bool {
	if end >= len(buf) {
		return false
	}
	switch buf[end] {
	case ';', '[', ' ', ')', ',':
		return true
	}
	return false
}
