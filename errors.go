package nahw

import "errors"

var (
	// ErrMalformedAnalysis reports disambiguator output the adapter cannot
	// turn into attribute bags.
	ErrMalformedAnalysis = errors.New("nahw: malformed analysis")

	// ErrAnalyzerUnavailable reports that the disambiguator could not be
	// reached or did not answer.
	ErrAnalyzerUnavailable = errors.New("nahw: analyzer unavailable")
)
