package device

import "strings"

// Match returns the first stored record whose detection policy accepts the
// live descriptor. Records are checked in stored order; first exact match
// wins. The second return is false when nothing matches.
//
// Match assumes the record set is well formed (no two records accept the
// same descriptor). That invariant is enforced when records are added, via
// Conflicts; given it, first-match and only-match are the same thing.
func Match(records []Record, d Descriptor) (Record, bool) {
	for _, r := range records {
		if r.Matches(d) {
			return r, true
		}
	}
	return Record{}, false
}

// Conflicts returns every stored record whose detection policy accepts the
// live descriptor, in stored order.
//
// The add-device wizard calls this before appending a new record: any hit
// means the new device would be indistinguishable from an existing entry at
// session start, so the user must explicitly confirm or abort. At session
// start, more than one hit for a live device is reported as
// ErrAmbiguousMatch and that session is refused.
func Conflicts(records []Record, d Descriptor) []Record {
	var hits []Record
	for _, r := range records {
		if r.Matches(d) {
			hits = append(hits, r)
		}
	}
	return hits
}

// LocalAddress returns the final "/"-separated segment of a physical
// address: "usb-0000:00:14.0-3/input0" yields "input0". The segment
// identifies the endpoint within the device and is stable across USB
// ports, which is what DetectNameAndLocalAddress relies on.
func LocalAddress(phys string) string {
	if idx := strings.LastIndex(phys, "/"); idx >= 0 {
		return phys[idx+1:]
	}
	return phys
}
