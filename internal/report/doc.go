// Package report renders a built clinical report into a document.
//
// This package contains writers for different output formats:
//   - MarkdownWriter: The primary document format. Imports cleanly into the
//     word processors the laboratory finalizes and signs reports in.
//   - SimpleWriter: Human-readable text output for terminal display
//   - JSONWriter: Structured JSON output for pipeline integration
//
// Design decision: We separate report rendering from report data structures
// (which are in the model package) to follow the single responsibility
// principle. This allows adding new output formats without modifying
// the core data structures.
//
// Writers implement the Writer interface, allowing them to be used
// interchangeably and composed for multi-format output. All formats share
// the same section ordering and the same interpretation narrative, so a
// report reads the same regardless of format.
package report
