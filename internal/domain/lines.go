package domain

import "strings"

// Lines is a file held in memory, one element per line.
// Every element except possibly the last ends with its original terminator.
type Lines []string

// SplitLines splits text into lines, keeping each line's terminator.
// A trailing fragment without a newline becomes the last line.
// Empty input yields no lines.
func SplitLines(text string) Lines {
	if text == "" {
		return Lines{}
	}
	lines := make(Lines, 0, strings.Count(text, "\n")+1)
	for len(text) > 0 {
		i := strings.IndexByte(text, '\n')
		if i < 0 {
			lines = append(lines, text)
			break
		}
		lines = append(lines, text[:i+1])
		text = text[i+1:]
	}
	return lines
}

// Len returns the number of lines.
func (l Lines) Len() int {
	return len(l)
}

// String joins the lines back into the original text.
func (l Lines) String() string {
	return strings.Join(l, "")
}

// Preview returns line i with surrounding whitespace trimmed.
// ok is false when i is out of range.
func (l Lines) Preview(i int) (text string, ok bool) {
	if i < 0 || i >= len(l) {
		return "", false
	}
	return strings.TrimSpace(l[i]), true
}
