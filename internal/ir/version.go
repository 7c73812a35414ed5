package ir

// Version constants for the exchange format and this library.
const (
	// FormatVersion is the exchange structure identifier written in the
	// opening and closing lines of a file.
	FormatVersion = "ISO-10303-21"

	// LibraryVersion is the stepgraph version.
	LibraryVersion = "0.1.0"
)
