package parser

// Position represents a character position in one line of solver output.
// Offsets are 0-based byte offsets; columns are 0-based rune offsets.
type Position struct {
	Column int `json:"column"` // 0-based rune offset within the line
	Offset int `json:"offset"` // 0-based byte offset within the line
}

// Range represents a source span from start to end position.
type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// positionAt computes the Position for a byte offset into src.
func positionAt(src string, offset int) Position {
	if offset > len(src) {
		offset = len(src)
	}
	col := 0
	for i := range src {
		if i >= offset {
			break
		}
		col++
	}
	return Position{Column: col, Offset: offset}
}

// RangeFromOffsets creates a range covering [start, end) byte offsets of src.
func RangeFromOffsets(src string, start, end int) Range {
	return Range{Start: positionAt(src, start), End: positionAt(src, end)}
}
