package answers

import "strings"

// Line is one raw solver model: the space-separated atom text plus any
// solving metadata the invoking collaborator extracted out-of-band from the
// solver's annotation output. The core never reparses free-text annotations.
type Line struct {
	Text         string
	Optimization []int
	Optimal      *bool // nil when the solver did not report optimality
}

// Source produces lines on demand. Returning ok=false ends the stream.
type Source func() (Line, bool)

// FromLines builds a pipeline over plain text lines with no metadata.
func FromLines(lines []string) *Answers {
	metaLines := make([]Line, len(lines))
	for i, l := range lines {
		metaLines[i] = Line{Text: l}
	}
	return FromMetaLines(metaLines)
}

// FromText builds a pipeline over a multi-line block of solver output.
// A trailing newline does not count as an extra empty model.
func FromText(text string) *Answers {
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return FromLines(nil)
	}
	return FromLines(strings.Split(text, "\n"))
}

// FromMetaLines builds a pipeline over lines carrying solver metadata.
func FromMetaLines(lines []Line) *Answers {
	i := 0
	return FromSource(func() (Line, bool) {
		if i >= len(lines) {
			return Line{}, false
		}
		l := lines[i]
		i++
		return l, true
	})
}

// FromSource builds a pipeline over an arbitrary pull source, such as a
// collaborator reading solver output incrementally. Lines are requested
// only when the consumer asks for the next answer set.
func FromSource(src Source) *Answers {
	return &Answers{s: &stream{src: src}}
}

// Optimal is a convenience for building Line metadata literals.
func Optimal(v bool) *bool { return &v }
