package port

// Diagnostics is the operator-visible error stream of a conversion.
type Diagnostics interface {
	// ParameterNotFound reports a K&R parameter with no type declaration.
	ParameterNotFound(name, function string)

	// DefinitionTooLong reports the fatal line-limit condition.
	DefinitionTooLong(err error)
}
