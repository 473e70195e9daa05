package analytics

import "slices"

// Default chain-config titles that identify outbound actions. These match
// the titles the agents' tool chains report and can be overridden in
// configuration.
const (
	DefaultEmailMarker = "Send Outlook email"
	DefaultCallMarker  = "Call Business via Bland AI"
)

// MarkerSet maps action categories onto the chain-config titles that count
// toward them. Matching is exact: a title either is a marker or it is not,
// so counts in the report can be predicted from the configuration alone.
type MarkerSet struct {
	Emails []string
	Calls  []string
}

// DefaultMarkers returns the marker set used when configuration does not
// override it.
func DefaultMarkers() MarkerSet {
	return MarkerSet{
		Emails: []string{DefaultEmailMarker},
		Calls:  []string{DefaultCallMarker},
	}
}

// Count tallies how many of the given action titles are email and call
// markers. A record may contribute several actions; titles matching no
// marker are ignored, not errors.
func (m MarkerSet) Count(actions []string) (emails, calls int) {
	for _, a := range actions {
		if slices.Contains(m.Emails, a) {
			emails++
		}
		if slices.Contains(m.Calls, a) {
			calls++
		}
	}
	return emails, calls
}
