package domain

// Summary describes what a conversion did.
type Summary struct {
	// Commands counts commands by kind.
	Commands map[CommandKind]int `json:"commands"`

	// Segments is the number of segments handed to the sink.
	Segments int `json:"segments"`

	// SegmentsByColor counts segments per color name.
	SegmentsByColor map[string]int `json:"segments_by_color"`

	// PenSelections counts SelectPen commands.
	PenSelections int `json:"pen_selections"`

	// Extent is the bounding box of the drawn segments. Empty when nothing was drawn.
	Extent Rect `json:"extent"`

	// Final is the plotter state after the last command.
	Final State `json:"final"`

	hasExtent bool
	minX      int
	minY      int
	maxX      int
	maxY      int
}

// NewSummary creates an empty summary.
func NewSummary() *Summary {
	return &Summary{
		Commands:        make(map[CommandKind]int),
		SegmentsByColor: make(map[string]int),
	}
}

// TotalCommands returns the number of commands seen.
func (s *Summary) TotalCommands() int {
	n := 0
	for _, c := range s.Commands {
		n += c
	}
	return n
}

// AddSegment records a drawn segment and grows the extent.
func (s *Summary) AddSegment(r DrawRequest) {
	s.Segments++
	s.SegmentsByColor[r.Color]++
	s.include(r.From)
	s.include(r.To)
}

func (s *Summary) include(p Point) {
	if !s.hasExtent {
		s.hasExtent = true
		s.minX, s.maxX = p.X, p.X
		s.minY, s.maxY = p.Y, p.Y
	} else {
		s.minX = min(s.minX, p.X)
		s.maxX = max(s.maxX, p.X)
		s.minY = min(s.minY, p.Y)
		s.maxY = max(s.maxY, p.Y)
	}
	s.Extent = Rect{X: s.minX, Y: s.minY, Width: s.maxX - s.minX, Height: s.maxY - s.minY}
}
