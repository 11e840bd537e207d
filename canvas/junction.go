package canvas

// CharacterMerger decides what a cell shows when a line is drawn over
// something already there.
type CharacterMerger struct {
	rules map[[2]rune]rune
}

// junctions maps an (existing, incoming) pair to the combined glyph. Lookups
// try both orders.
var junctions = map[[2]rune]rune{
	{'─', '│'}: '┼',
	{'╭', '─'}: '┬',
	{'╮', '─'}: '┬',
	{'╰', '─'}: '┴',
	{'╯', '─'}: '┴',
	{'╭', '│'}: '├',
	{'╰', '│'}: '├',
	{'╮', '│'}: '┤',
	{'╯', '│'}: '┤',
	{'-', '|'}: '+',
	{'+', '-'}: '+',
	{'+', '|'}: '+',
}

// NewCharacterMerger creates a merger with the box-drawing junction rules.
func NewCharacterMerger() *CharacterMerger {
	return &CharacterMerger{rules: junctions}
}

// Merge returns the glyph for incoming drawn over existing. Blank cells take
// the incoming rune; markers (handles, arrows) win over lines; unknown pairs
// keep what was there.
func (m *CharacterMerger) Merge(existing, incoming rune) rune {
	switch {
	case existing == ' ' || existing == 0:
		return incoming
	case existing == incoming, isMarker(existing):
		return existing
	case isMarker(incoming):
		return incoming
	}
	if r, ok := m.rules[[2]rune{existing, incoming}]; ok {
		return r
	}
	if r, ok := m.rules[[2]rune{incoming, existing}]; ok {
		return r
	}
	return existing
}

func isMarker(r rune) bool {
	return r == HandleRune || r == ArrowRune || r == '>'
}
