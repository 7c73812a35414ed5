// Package stepfile reads and writes complete exchange files: the header
// section, the data section of numbered records, and the footer.
//
// Parsing keeps the identifiers found in the text and the record order
// they imply. Records whose keyword has no typed grammar are kept as
// opaque text. Writing a parsed file reproduces the input for files laid
// out the way String lays them out; comments are discarded.
package stepfile
