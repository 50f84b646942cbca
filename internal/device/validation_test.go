package device

import (
	"errors"
	"testing"
)

func TestParseDetectionType(t *testing.T) {
	tests := []struct {
		input   string
		want    DetectionType
		wantErr bool
	}{
		{"name_and_local_address", DetectNameAndLocalAddress, false},
		{"full_address", DetectFullAddress, false},
		{"name_and_full_address", DetectNameAndFullAddress, false},
		{"name", "", true},
		{"phys", "", true},
		{"", "", true},
		{"NAME_AND_LOCAL_ADDRESS", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDetectionType(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseDetectionType(%q) succeeded, want error", tt.input)
				}
				if !errors.Is(err, ErrInvalidDetectionType) {
					t.Errorf("error = %v, want ErrInvalidDetectionType", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDetectionType(%q) error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseDetectionType(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestValidateRecord(t *testing.T) {
	valid := Record{
		FormatVersion: CurrentFormatVersion,
		Detection:     DetectNameAndLocalAddress,
		ReportedName:  "FooPad",
		ReportedPhys:  "usb-1/input0",
	}

	tests := []struct {
		name    string
		mutate  func(*Record)
		wantErr bool
	}{
		{
			name:    "valid record",
			mutate:  func(r *Record) {},
			wantErr: false,
		},
		{
			name:    "zero format version",
			mutate:  func(r *Record) { r.FormatVersion = 0 },
			wantErr: true,
		},
		{
			name:    "negative format version",
			mutate:  func(r *Record) { r.FormatVersion = -1 },
			wantErr: true,
		},
		{
			name:    "unknown detection type",
			mutate:  func(r *Record) { r.Detection = "bogus" },
			wantErr: true,
		},
		{
			name:    "empty phys",
			mutate:  func(r *Record) { r.ReportedPhys = "" },
			wantErr: true,
		},
		{
			name:    "empty name with name-based detection",
			mutate:  func(r *Record) { r.ReportedName = "" },
			wantErr: true,
		},
		{
			name: "empty name allowed for full address detection",
			mutate: func(r *Record) {
				r.Detection = DetectFullAddress
				r.ReportedName = ""
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := valid
			tt.mutate(&r)

			err := ValidateRecord(r)
			if tt.wantErr {
				if err == nil {
					t.Fatal("ValidateRecord() succeeded, want error")
				}
				if !errors.Is(err, ErrInvalidRecord) {
					t.Errorf("error = %v, want ErrInvalidRecord", err)
				}
				return
			}
			if err != nil {
				t.Errorf("ValidateRecord() error: %v", err)
			}
		})
	}
}
