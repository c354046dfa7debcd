package domain

// State is the mutable plotter state of a single conversion run.
// The zero value is the initial state: origin, pen up, no pen selected.
type State struct {
	// Position is the current pen location.
	Position Point `json:"position"`

	// PenDown is true while the pen touches the paper.
	PenDown bool `json:"pen_down"`

	// Pen is the selected color index. Pen 0 has no ink.
	Pen uint8 `json:"pen"`
}

// NewState creates the initial plotter state.
func NewState() *State {
	return &State{}
}

// Inking reports whether a move from the current state leaves a visible line.
func (s *State) Inking() bool {
	return s.PenDown && s.Pen != NoInk
}
