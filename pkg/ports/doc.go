/*
Package ports defines the driven ports (interfaces) of the HPGL interpreter.

These interfaces decouple the core logic from input formats and output backends,
allowing the same interpreter to feed an SVG document, a PNG raster or a PDF page.

# Key Interfaces

  - CommandSource: turns raw input into a sequence of typed commands.
  - Interpreter: replays commands against a fresh plotter state.
  - Sink: receives the canvas, the drawn segments and the end of the document.
*/
package ports
