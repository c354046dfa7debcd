/*
Package domain contains the core data model of the HPGL interpreter.

It defines the plotter commands, the mutable plotter state and the values handed to
renderer sinks. This package is kept pure and free of I/O so that every adapter
(CLI, HTTP, MCP) shares the same vocabulary.

# Key Entities

  - Point: an integer coordinate pair in plotter units.
  - Command: a sealed set of variants (PenUp, PenDown, PlotAbsolute, PlotRelative,
    SelectPen, Initialize).
  - State: the pen position, pen flag and selected pen of one conversion run.
  - DrawRequest: one line segment, with its resolved color name.
  - Palette: the bounds-checked pen color table.
*/
package domain
