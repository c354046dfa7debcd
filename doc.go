/*
Package hpgl2svg converts HPGL plotter programs into vector and raster documents.

It replays a stream of plotter commands (pen up, pen down, absolute and relative
plots, pen selection) against an interpreter that tracks the pen position, the pen
state and the selected color, and hands every drawn line segment to a Sink.

# Architecture

The conversion is a single pass through three stages:

  - CommandSource: the HPGL parser turns raw text into typed commands.
  - Interpreter: the runtime engine replays them against a fresh plotter state.
  - Sink: a backend (SVG markup, PNG raster, PDF page) serializes the segments.

A failed conversion never produces a partial document: sinks only write on End,
which is called after the last command succeeded.

# Usage

	conv := hpgl2svg.New()

	var out bytes.Buffer
	sink := svg.NewWriter(&out, svg.DefaultOptions())

	summary, err := conv.Convert(ctx, strings.NewReader("IN;SP1;PD0,0,100,100;"), sink)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(summary.Segments, out.String())
*/
package hpgl2svg
