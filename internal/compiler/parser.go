package compiler

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/aretw0/hpgl2svg/pkg/domain"
	"golang.org/x/net/html/charset"
)

// ErrorMode decides what happens to instructions the interpreter does not support.
type ErrorMode int

const (
	// StrictErrorMode rejects the whole stream.
	StrictErrorMode ErrorMode = iota
	// WarnErrorMode logs a warning and skips the instruction.
	WarnErrorMode
	// IgnoreErrorMode silently skips the instruction.
	IgnoreErrorMode
)

// ErrUnsupportedCommand is wrapped by the SyntaxError of an unknown mnemonic.
var ErrUnsupportedCommand = errors.New("unsupported command")

// maxCoordinate bounds plotter coordinates to the HPGL integer range.
const maxCoordinate = 1 << 30

// labelTerminator ends the text of an LB instruction.
const labelTerminator = '\x03'

// SyntaxError reports malformed input.
type SyntaxError struct {
	Offset   int    // byte offset of the instruction
	Mnemonic string // empty when no mnemonic could be read
	Msg      string
	Err      error
}

func (e *SyntaxError) Error() string {
	if e.Mnemonic == "" {
		return fmt.Sprintf("hpgl: offset %d: %s", e.Offset, e.Msg)
	}
	return fmt.Sprintf("hpgl: offset %d (%s): %s", e.Offset, e.Mnemonic, e.Msg)
}

func (e *SyntaxError) Unwrap() error { return e.Err }

// Parser is responsible for converting raw HPGL text into commands.
type Parser struct {
	mode    ErrorMode
	charset string
	logger  *slog.Logger
}

// ParserOption configures a Parser.
type ParserOption func(*Parser)

// WithErrorMode sets how unsupported instructions are handled.
func WithErrorMode(mode ErrorMode) ParserOption {
	return func(p *Parser) {
		p.mode = mode
	}
}

// WithCharset decodes the input from the named encoding (e.g. "latin1") before parsing.
func WithCharset(label string) ParserOption {
	return func(p *Parser) {
		p.charset = label
	}
}

// WithLogger sets the logger used for WarnErrorMode.
func WithLogger(logger *slog.Logger) ParserOption {
	return func(p *Parser) {
		p.logger = logger
	}
}

// NewParser creates a new parser instance.
func NewParser(opts ...ParserOption) *Parser {
	p := &Parser{mode: StrictErrorMode}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return p
}

// Parse reads the whole stream and decodes it into commands.
func (p *Parser) Parse(r io.Reader) ([]domain.Command, error) {
	if p.charset != "" {
		decoded, err := charset.NewReaderLabel(p.charset, r)
		if err != nil {
			return nil, fmt.Errorf("failed to decode input as %q: %w", p.charset, err)
		}
		r = decoded
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return p.ParseString(string(data))
}

// ParseString decodes an in-memory HPGL program.
func (p *Parser) ParseString(src string) ([]domain.Command, error) {
	s := &scanner{src: src}
	commands := []domain.Command{}

	for {
		s.skipSeparators()
		if s.done() {
			return commands, nil
		}

		start := s.pos
		mnemonic, ok := s.mnemonic()
		if !ok {
			return nil, &SyntaxError{Offset: start, Msg: fmt.Sprintf("expected a two letter mnemonic, found %q", s.peekRune())}
		}

		if mnemonic == "LB" {
			// label text is free form and may contain anything but the terminator
			s.skipLabel()
			if err := p.unsupported(start, mnemonic); err != nil {
				return nil, err
			}
			continue
		}

		params, err := s.params()
		if err != nil {
			return nil, &SyntaxError{Offset: start, Mnemonic: mnemonic, Msg: err.Error()}
		}

		cmd, err := build(mnemonic, params)
		if err != nil {
			if errors.Is(err, ErrUnsupportedCommand) {
				if err := p.unsupported(start, mnemonic); err != nil {
					return nil, err
				}
				continue
			}
			return nil, &SyntaxError{Offset: start, Mnemonic: mnemonic, Msg: err.Error()}
		}
		commands = append(commands, cmd)
	}
}

func (p *Parser) unsupported(offset int, mnemonic string) error {
	switch p.mode {
	case WarnErrorMode:
		p.logger.Warn("skipping unsupported instruction", "mnemonic", mnemonic, "offset", offset)
		return nil
	case IgnoreErrorMode:
		return nil
	}
	return &SyntaxError{Offset: offset, Mnemonic: mnemonic, Msg: "unsupported command", Err: ErrUnsupportedCommand}
}

// build turns a mnemonic and its numeric parameters into a command.
func build(mnemonic string, params []float64) (domain.Command, error) {
	switch domain.CommandKind(mnemonic) {
	case domain.KindInitialize:
		return domain.Initialize{}, nil
	case domain.KindSelectPen:
		pen, err := penParam(params)
		if err != nil {
			return nil, err
		}
		return domain.SelectPen{Pen: pen}, nil
	case domain.KindPenUp:
		points, err := pointParams(params)
		return domain.PenUp{Points: points}, err
	case domain.KindPenDown:
		points, err := pointParams(params)
		return domain.PenDown{Points: points}, err
	case domain.KindPlotAbsolute:
		points, err := pointParams(params)
		return domain.PlotAbsolute{Points: points}, err
	case domain.KindPlotRelative:
		points, err := pointParams(params)
		return domain.PlotRelative{Points: points}, err
	}
	return nil, ErrUnsupportedCommand
}

func penParam(params []float64) (uint8, error) {
	switch len(params) {
	case 0:
		return domain.NoInk, nil
	case 1:
		v := params[0]
		if v < 0 || v > math.MaxUint8 || v != math.Trunc(v) {
			return 0, fmt.Errorf("pen number %v is not an integer in 0..255", v)
		}
		return uint8(v), nil
	}
	return 0, fmt.Errorf("expected at most one pen number, got %d parameters", len(params))
}

func pointParams(params []float64) ([]domain.Point, error) {
	if len(params)%2 != 0 {
		return nil, fmt.Errorf("odd number of coordinates (%d)", len(params))
	}
	points := make([]domain.Point, 0, len(params)/2)
	for i := 0; i < len(params); i += 2 {
		x, y := math.Round(params[i]), math.Round(params[i+1])
		if math.Abs(x) > maxCoordinate || math.Abs(y) > maxCoordinate {
			return nil, fmt.Errorf("coordinate (%v,%v) out of range", params[i], params[i+1])
		}
		points = append(points, domain.Point{X: int(x), Y: int(y)})
	}
	return points, nil
}

// scanner walks the raw program text.
type scanner struct {
	src string
	pos int
}

func (s *scanner) done() bool { return s.pos >= len(s.src) }

func (s *scanner) peekRune() string {
	if s.done() {
		return ""
	}
	return s.src[s.pos : s.pos+1]
}

func isLetter(c byte) bool { return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') }

func isSeparator(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n' || c == ','
}

func (s *scanner) skipSeparators() {
	for !s.done() {
		c := s.src[s.pos]
		if isSeparator(c) || c == ';' {
			s.pos++
			continue
		}
		return
	}
}

func (s *scanner) mnemonic() (string, bool) {
	if s.pos+1 >= len(s.src) || !isLetter(s.src[s.pos]) || !isLetter(s.src[s.pos+1]) {
		return "", false
	}
	m := strings.ToUpper(s.src[s.pos : s.pos+2])
	s.pos += 2
	return m, true
}

func (s *scanner) skipLabel() {
	for !s.done() && s.src[s.pos] != labelTerminator {
		s.pos++
	}
	if !s.done() {
		s.pos++
	}
}

// params reads numbers up to a terminator or the next mnemonic.
func (s *scanner) params() ([]float64, error) {
	var out []float64
	for !s.done() {
		c := s.src[s.pos]
		switch {
		case c == ';':
			s.pos++
			return out, nil
		case isLetter(c):
			return out, nil
		case isSeparator(c):
			s.pos++
		default:
			v, err := s.number()
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
	}
	return out, nil
}

func (s *scanner) number() (float64, error) {
	start := s.pos
	if c := s.src[s.pos]; c == '+' || c == '-' {
		s.pos++
	}
	digits := 0
	for !s.done() {
		c := s.src[s.pos]
		if (c >= '0' && c <= '9') || c == '.' {
			s.pos++
			digits++
			continue
		}
		break
	}
	text := s.src[start:s.pos]
	if digits == 0 {
		if s.pos == start {
			s.pos++
		}
		return 0, fmt.Errorf("invalid parameter %q", s.src[start:s.pos])
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid parameter %q", text)
	}
	return v, nil
}
