package parser

import "strconv"

// parseFloat converts the scanner's raw numeric lexeme into a float64. The
// scanner only ever produces well-formed decimal text (digits, at most one
// '.'), so a parse failure here would indicate a scanner bug, not bad input.
func parseFloat(lexeme string) float64 {
	f, err := strconv.ParseFloat(lexeme, 64)
	if err != nil {
		panic(&Error{Message: "internal: scanner produced malformed number literal " + strconv.Quote(lexeme)})
	}
	return f
}
