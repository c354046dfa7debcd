/*
Package dsl provides a Go DSL for programmatically constructing plotter programs.

It allows developers to build HPGL command sequences with a type-safe, fluent builder
instead of concatenating instruction strings. This is particularly useful for
generated drawings, unit testing, and leveraging IDE autocompletion/type-checking.

Example usage:

	package main

	import (
		"github.com/aretw0/hpgl2svg/pkg/dsl"
	)

	func main() {
		program := dsl.New().
			Init().
			Pen(2).
			MoveTo(0, 0).
			LineTo(100, 0).
			LineBy(0, 100).
			Lift()

		// The program is a ports.CommandSource
		source := program.Build()
		// ... pass source to hpgl2svg.New(hpgl2svg.WithSource(source))

		// or render it back to HPGL text
		_ = program.String() // "IN;SP2;PU0,0;PD;PA100,0;PR0,100;PU;"
	}
*/
package dsl
