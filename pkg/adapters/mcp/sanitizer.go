package mcp

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	// DefaultMaxProgramSize is 1MB.
	DefaultMaxProgramSize = 1 << 20
	// EnvMaxProgramSize is the environment variable to override the default
	EnvMaxProgramSize = "HPGL2SVG_MAX_PROGRAM_SIZE"
)

var (
	ErrProgramTooLarge = errors.New("program exceeds maximum allowed size")
	ErrInvalidUTF8     = errors.New("program contains invalid UTF-8 sequences")
)

// SanitizeProgram cleans a tool argument by enforcing the size limit,
// validating UTF-8, and stripping control characters the parser never accepts.
func SanitizeProgram(program string) (string, error) {
	limit := maxProgramSize()
	if len(program) > limit {
		return "", fmt.Errorf("%w: size=%d limit=%d", ErrProgramTooLarge, len(program), limit)
	}

	if !utf8.ValidString(program) {
		return "", ErrInvalidUTF8
	}

	// Fast path: if no control chars, return as is.
	clean := true
	for _, r := range program {
		if unicode.IsControl(r) && !isSafeControl(r) {
			clean = false
			break
		}
	}
	if clean {
		return program, nil
	}

	var b strings.Builder
	b.Grow(len(program))
	for _, r := range program {
		if !unicode.IsControl(r) || isSafeControl(r) {
			b.WriteRune(r)
		}
	}
	return b.String(), nil
}

// isSafeControl keeps whitespace and ETX (\x03).
// ETX ends the text of an LB label. Lenient conversions skip labels up to it,
// so stripping it would make the parser swallow every instruction after the label.
func isSafeControl(r rune) bool {
	return r == '\n' || r == '\t' || r == '\r' || r == '\x03'
}

func maxProgramSize() int {
	if val := os.Getenv(EnvMaxProgramSize); val != "" {
		if size, err := strconv.Atoi(val); err == nil && size > 0 {
			return size
		}
	}
	return DefaultMaxProgramSize
}
