package domain

// Sample is one row of a computed index series, as written to output sinks.
type Sample struct {
	Date   Date
	Level  float64
	Return float64
}
