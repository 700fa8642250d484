// Package main provides the entry point for the clinreport CLI.
//
// clinreport generates clinical variant report documents from OpenCRAVAT
// result databases. Clinicians mark variants with classification codes in
// the database; clinreport collects the marked variants, resolves the
// target sample's genotypes and renders a report document.
//
// Usage:
//
//	clinreport report <database.sqlite>
//	clinreport report -t proband trio.sqlite
//
// See --help for all available options.
package main

// main is the entry point for clinreport.
func main() {
	Execute()
}
