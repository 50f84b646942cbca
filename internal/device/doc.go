// Package device decides whether a physically connected input device
// corresponds to a configured device record.
//
// A Record stores the identity a device reported when the user added it; a
// Descriptor is the identity a live device reports now. The record's
// DetectionType picks which fields count when comparing the two:
//
//	name_and_local_address   name + final phys segment (survives port moves)
//	full_address             complete phys string (tells twins apart by port)
//	name_and_full_address    both
//
// # Key Types
//
//   - Record: a configured device as persisted in the binding file
//   - Descriptor: a live device's reported identity
//   - DetectionType: the matching policy stored with each record
//
// # Matching Rules
//
// Matching is exact equality of the projected fields; there is no fuzzy
// matching or scoring. Ambiguity is a configuration error caught when a
// record is added (Conflicts), not resolved heuristically at match time.
// Given that write-time check, Match can simply return the first hit.
//
// # Usage
//
//	if hits := device.Conflicts(records, probed); len(hits) > 0 {
//	    // indistinguishable from an existing entry; ask the user
//	}
//
//	rec, ok := device.Match(records, probed)
//	if !ok {
//	    // not configured; skip at session start
//	}
package device
