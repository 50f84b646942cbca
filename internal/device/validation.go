package device

import "fmt"

// ParseDetectionType converts a persisted string into a DetectionType.
func ParseDetectionType(s string) (DetectionType, error) {
	dt := DetectionType(s)
	if err := ValidateDetectionType(dt); err != nil {
		return "", err
	}
	return dt, nil
}

// ValidateDetectionType checks the value is one of the known policies.
func ValidateDetectionType(dt DetectionType) error {
	switch dt {
	case DetectNameAndLocalAddress, DetectFullAddress, DetectNameAndFullAddress:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrInvalidDetectionType, string(dt))
	}
}

// ValidateRecord performs validation on a device record.
// Returns an error describing the first validation failure found.
func ValidateRecord(r Record) error {
	if r.FormatVersion < 1 {
		return fmt.Errorf("%w: format version %d", ErrInvalidRecord, r.FormatVersion)
	}

	if err := ValidateDetectionType(r.Detection); err != nil {
		return err
	}

	// Every policy needs the physical address; name matters except for
	// pure address matching.
	if r.ReportedPhys == "" {
		return fmt.Errorf("%w: empty physical address", ErrInvalidRecord)
	}
	if r.Detection != DetectFullAddress && r.ReportedName == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidRecord)
	}

	return nil
}
