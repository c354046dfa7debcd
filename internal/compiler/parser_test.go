package compiler

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/aretw0/hpgl2svg/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParser_Parse(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []domain.Command
	}{
		{
			name: "Empty Program",
			src:  "",
			want: []domain.Command{},
		},
		{
			name: "Typical Header",
			src:  "IN;SP1;PU0,0;PD100,0,100,100;",
			want: []domain.Command{
				domain.Initialize{},
				domain.SelectPen{Pen: 1},
				domain.PenUp{Points: []domain.Point{{X: 0, Y: 0}}},
				domain.PenDown{Points: []domain.Point{{X: 100, Y: 0}, {X: 100, Y: 100}}},
			},
		},
		{
			name: "Lower Case And Whitespace",
			src:  "in;\n sp 2;\r\n pa 10 20 , 30 40;",
			want: []domain.Command{
				domain.Initialize{},
				domain.SelectPen{Pen: 2},
				domain.PlotAbsolute{Points: []domain.Point{{X: 10, Y: 20}, {X: 30, Y: 40}}},
			},
		},
		{
			name: "Missing Terminators",
			src:  "PU0,0PD5,5PR-1,-1",
			want: []domain.Command{
				domain.PenUp{Points: []domain.Point{{X: 0, Y: 0}}},
				domain.PenDown{Points: []domain.Point{{X: 5, Y: 5}}},
				domain.PlotRelative{Points: []domain.Point{{X: -1, Y: -1}}},
			},
		},
		{
			name: "Sign Acts As Separator",
			src:  "PR10-20+5-5;",
			want: []domain.Command{
				domain.PlotRelative{Points: []domain.Point{{X: 10, Y: -20}, {X: 5, Y: -5}}},
			},
		},
		{
			name: "Decimals Are Rounded",
			src:  "PA10.4,20.6;",
			want: []domain.Command{
				domain.PlotAbsolute{Points: []domain.Point{{X: 10, Y: 21}}},
			},
		},
		{
			name: "Pen Without Parameter Is Pen Zero",
			src:  "SP;",
			want: []domain.Command{domain.SelectPen{Pen: 0}},
		},
		{
			name: "Pen Outside Color Table Is Still Parsed",
			src:  "SP9;",
			want: []domain.Command{domain.SelectPen{Pen: 9}},
		},
		{
			name: "Empty Point Lists",
			src:  "PU;PD;",
			want: []domain.Command{
				domain.PenUp{Points: []domain.Point{}},
				domain.PenDown{Points: []domain.Point{}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewParser().ParseString(tt.src)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParser_SyntaxErrors(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		mnemonic string
		msg      string
	}{
		{"Odd Coordinates", "PA10,20,30;", "PA", "odd number of coordinates"},
		{"Garbage Parameter", "PD1,#;", "PD", "invalid parameter"},
		{"Lone Sign", "PR-;", "PR", "invalid parameter"},
		{"Pen Too Large", "SP256;", "SP", "not an integer in 0..255"},
		{"Fractional Pen", "SP1.5;", "SP", "not an integer"},
		{"Two Pens", "SP1,2;", "SP", "at most one pen"},
		{"Coordinate Out Of Range", "PA9999999999,0;", "PA", "out of range"},
		{"Not A Mnemonic", "12;", "", "expected a two letter mnemonic"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewParser().ParseString(tt.src)
			require.Error(t, err)

			var syntaxErr *SyntaxError
			require.ErrorAs(t, err, &syntaxErr)
			assert.Equal(t, tt.mnemonic, syntaxErr.Mnemonic)
			assert.Contains(t, syntaxErr.Error(), tt.msg)
		})
	}
}

func TestParser_ErrorModes(t *testing.T) {
	src := "IN;VS10;LT;LBHello; world\x03SP1;PD0,0;"

	t.Run("Strict rejects unsupported instructions", func(t *testing.T) {
		_, err := NewParser().ParseString(src)
		require.ErrorIs(t, err, ErrUnsupportedCommand)

		var syntaxErr *SyntaxError
		require.ErrorAs(t, err, &syntaxErr)
		assert.Equal(t, "VS", syntaxErr.Mnemonic)
		assert.Equal(t, 3, syntaxErr.Offset)
	})

	t.Run("Warn skips and logs", func(t *testing.T) {
		var logs bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&logs, nil))

		got, err := NewParser(WithErrorMode(WarnErrorMode), WithLogger(logger)).ParseString(src)
		require.NoError(t, err)
		assert.Equal(t, []domain.Command{
			domain.Initialize{},
			domain.SelectPen{Pen: 1},
			domain.PenDown{Points: []domain.Point{{X: 0, Y: 0}}},
		}, got)
		assert.Equal(t, 3, strings.Count(logs.String(), "skipping unsupported instruction"))
		assert.Contains(t, logs.String(), "mnemonic=LB")
	})

	t.Run("Ignore skips silently", func(t *testing.T) {
		got, err := NewParser(WithErrorMode(IgnoreErrorMode)).ParseString(src)
		require.NoError(t, err)
		assert.Len(t, got, 3)
	})
}

func TestParser_Charset(t *testing.T) {
	// latin1 label text around otherwise plain ASCII instructions
	src := []byte("IN;LB\xe9t\xe9\x03SP1;PA1,1;")

	got, err := NewParser(WithCharset("latin1"), WithErrorMode(IgnoreErrorMode)).Parse(bytes.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, []domain.Command{
		domain.Initialize{},
		domain.SelectPen{Pen: 1},
		domain.PlotAbsolute{Points: []domain.Point{{X: 1, Y: 1}}},
	}, got)

	_, err = NewParser(WithCharset("no-such-charset")).Parse(bytes.NewReader(src))
	assert.Error(t, err)
}

func TestParser_RoundTrip(t *testing.T) {
	src := "IN;SP3;PU10,10;PD20,10,20,20;PR-5,0;PA0,0;"

	cmds, err := NewParser().ParseString(src)
	require.NoError(t, err)

	var sb strings.Builder
	for _, c := range cmds {
		sb.WriteString(c.String())
	}
	assert.Equal(t, src, sb.String())
}
