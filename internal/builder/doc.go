// Package builder orchestrates one report build: open the annotation
// database, resolve the target sample, collect the classified variants,
// assemble the report and render it to the output document.
//
// The builder renders the whole document into memory and writes it in a
// single step, so a failed build never leaves a truncated report file
// behind. Several input databases are built concurrently; each build is
// independent and a failure in one does not abort the others' output.
package builder
