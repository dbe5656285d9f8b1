// Package domain models county-level PM2.5 estimates and the fallback policy
// used to backfill counties that have no direct measurement.
//
// # Data Sources
//
// The existing dataset (pm25_by_county.csv) holds the 2016–2024 mean PM2.5
// concentration for each county that has monitor coverage. Counties without a
// monitor appear with an empty value or not at all. The reference places file
// (places_county.csv) lists every county that downstream consumers expect to
// find in the dataset.
//
// # FIPS Conventions
//
// County identifiers are 5-digit FIPS codes: a 2-digit state code followed by
// a 3-digit county code, e.g. "01001" is Autauga County, Alabama. Source files
// sometimes strip leading zeros ("1001"), so identifiers are trimmed and
// left-padded to 5 characters. They are never parsed as numbers.
//
// Two identifiers get special treatment:
//
//	"00000"  placeholder for unassigned rows, and what a blank identifier
//	         pads to; its readings still count toward the means, but it is
//	         dropped from output.
//	"00059"  county whose direct measurement is unreliable; always pinned to
//	         the national mean.
//
// # Fallback Policy
//
// Each county in the reference universe receives, in order of preference:
//
//	override       national mean, for "00059" only
//	direct         its own measurement, unchanged
//	state_mean     mean of all measurements in its state
//	national_mean  mean of all measurements, when its state has none
//
// # Precision
//
// Values are exact decimals. Means are computed without binary floating point
// and rounded once, half away from zero, to 3 fractional digits. Output values
// always carry exactly 3 fractional digits ("8.500", never "8.5").
package domain
