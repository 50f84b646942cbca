package device

import "fmt"

// CurrentFormatVersion is the persisted-row version written for records
// created by the add-device wizard. Loaded records keep the version they
// were read with so an untouched save round-trips byte for byte.
const CurrentFormatVersion = 1

// Record is one configured device as persisted in the binding file.
type Record struct {
	// FormatVersion is the persisted-row version this record was read with.
	FormatVersion int

	// Detection selects which identity fields are authoritative when
	// matching this record against a live device.
	Detection DetectionType

	// ReportedName is the device name as exposed by the driver.
	ReportedName string

	// ReportedPhys is the physical topology string as exposed by the
	// driver, e.g. "usb-0000:00:14.0-3/input0".
	ReportedPhys string
}

// Descriptor is the identity of a live, probed input device.
type Descriptor struct {
	// Path is the event node the device was opened from,
	// e.g. /dev/input/event7. Not persisted: node numbering changes
	// across reboots and replugs.
	Path string

	// Name is the driver-reported device name.
	Name string

	// Phys is the driver-reported physical topology string.
	Phys string
}

// DetectionType is the policy for which descriptor fields are authoritative
// when matching a live device to a stored Record.
type DetectionType string

// DetectionType constants. The values are the strings written to the
// binding file.
const (
	// DetectNameAndLocalAddress matches on the reported name plus the final
	// segment of the physical address, so the record survives replugging
	// into a different USB port.
	DetectNameAndLocalAddress DetectionType = "name_and_local_address"

	// DetectFullAddress matches on the complete physical address only.
	// Distinguishes identical devices by the port they are plugged into.
	DetectFullAddress DetectionType = "full_address"

	// DetectNameAndFullAddress matches on both name and complete physical
	// address.
	DetectNameAndFullAddress DetectionType = "name_and_full_address"
)

// AllDetectionTypes returns all valid detection type values.
func AllDetectionTypes() []DetectionType {
	return []DetectionType{
		DetectNameAndLocalAddress,
		DetectFullAddress,
		DetectNameAndFullAddress,
	}
}

// Label returns the wording the add-device wizard shows for this policy.
func (dt DetectionType) Label() string {
	switch dt {
	case DetectNameAndLocalAddress:
		return "Use the device name and local address"
	case DetectFullAddress:
		return "Use the complete physical address"
	case DetectNameAndFullAddress:
		return "Use both name and complete physical address"
	default:
		return string(dt)
	}
}

// Matches reports whether the live descriptor satisfies this record's
// detection policy. Comparison is exact equality of the projected fields;
// there is no fuzzy matching.
func (r Record) Matches(d Descriptor) bool {
	switch r.Detection {
	case DetectNameAndLocalAddress:
		return r.ReportedName == d.Name &&
			LocalAddress(r.ReportedPhys) == LocalAddress(d.Phys)
	case DetectFullAddress:
		return r.ReportedPhys == d.Phys
	case DetectNameAndFullAddress:
		return r.ReportedName == d.Name && r.ReportedPhys == d.Phys
	default:
		return false
	}
}

// Identity returns the record's authoritative fields as a printable string,
// used in menus and conflict prompts.
func (r Record) Identity() string {
	switch r.Detection {
	case DetectNameAndLocalAddress:
		return fmt.Sprintf("%s @ %s", r.ReportedName, LocalAddress(r.ReportedPhys))
	case DetectFullAddress:
		return r.ReportedPhys
	default:
		return fmt.Sprintf("%s @ %s", r.ReportedName, r.ReportedPhys)
	}
}

// DisplayNames assigns a menu label to each record, in order. Labels are
// the reported names; repeats get a numeric suffix ("KeyPad", "KeyPad-2")
// so pickers stay unambiguous.
func DisplayNames(records []Record) []string {
	names := make([]string, len(records))
	seen := make(map[string]int, len(records))

	for i, r := range records {
		name := r.ReportedName
		seen[name]++
		if n := seen[name]; n > 1 {
			name = fmt.Sprintf("%s-%d", name, n)
		}
		names[i] = name
	}

	return names
}
