package canvas

// BoxStyle defines the characters used to draw a box.
type BoxStyle struct {
	TopLeft     rune
	TopRight    rune
	BottomLeft  rune
	BottomRight rune
	Horizontal  rune
	Vertical    rune
}

// Predefined box styles
var (
	// NodeBoxStyle is used for committed nodes
	NodeBoxStyle = BoxStyle{
		TopLeft:     '╭',
		TopRight:    '╮',
		BottomLeft:  '╰',
		BottomRight: '╯',
		Horizontal:  '─',
		Vertical:    '│',
	}

	// PlaceholderBoxStyle is used for a placeholder being sized
	PlaceholderBoxStyle = BoxStyle{
		TopLeft:     '┌',
		TopRight:    '┐',
		BottomLeft:  '└',
		BottomRight: '┘',
		Horizontal:  '╌',
		Vertical:    '╎',
	}

	// SimpleBoxStyle uses ASCII characters
	SimpleBoxStyle = BoxStyle{
		TopLeft:     '+',
		TopRight:    '+',
		BottomLeft:  '+',
		BottomRight: '+',
		Horizontal:  '-',
		Vertical:    '|',
	}
)

// Marker runes shared by the editor's drawing code.
const (
	HandleRune  = '●'
	PreviewRune = '·'
	ArrowRune   = '▶'
)
