package domain

import (
	"slices"
	"strings"
)

const (
	// FIPSLength is the width of a county FIPS code.
	FIPSLength = 5

	// SentinelFIPS is the placeholder identifier excluded from output.
	SentinelFIPS = "00000"

	// OverrideFIPS is always assigned the national mean.
	OverrideFIPS = "00059"
)

// NormalizeFIPS trims whitespace and left-pads the identifier with zeros to
// 5 characters. Blank input pads to SentinelFIPS.
// Identifiers longer than 5 characters are returned trimmed but unchanged.
func NormalizeFIPS(raw string) string {
	fips := strings.TrimSpace(raw)
	if len(fips) < FIPSLength {
		fips = strings.Repeat("0", FIPSLength-len(fips)) + fips
	}
	return fips
}

// StateOf returns the 2-character state prefix of a normalized FIPS code.
func StateOf(fips string) string {
	if len(fips) < 2 {
		return fips
	}
	return fips[:2]
}

// CountyUniverse deduplicates and sorts reference identifiers ascending.
// The input slice is not modified.
func CountyUniverse(fips []string) []string {
	universe := slices.Clone(fips)
	slices.Sort(universe)
	return slices.Compact(universe)
}
