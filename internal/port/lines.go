package port

// LineSource yields input lines in order with the trailing newline removed.
type LineSource interface {
	// Next returns the next line, or false at end of input or on error.
	Next() (string, bool)

	// Err returns the first read error, if any.
	Err() error
}

// LineSink receives output text in order.
type LineSink interface {
	// WriteLine writes s followed by a single newline.
	WriteLine(s string) error

	// Write writes s as is.
	Write(s string) error
}
