package errors

import (
	"strings"
	"testing"
)

func TestValidateNodeName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "Alice", false},
		{"valid with spaces", "  Alice Smith ", false},
		{"valid unicode", "Zoë", false},

		{"empty", "", true},
		{"blank", "   ", true},
		{"too long", strings.Repeat("a", 300), true},
		{"control char", "foo\x01bar", true},
		{"newline", "foo\nbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateNodeName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateNodeName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidInput) {
				t.Errorf("ValidateNodeName(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidInput)
			}
		})
	}
}

func TestValidateEndpoints(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		target  string
		wantErr bool
	}{
		{"both set", "a", "b", false},
		{"same node", "a", "a", false},
		{"missing target", "a", "", true},
		{"missing source", "", "b", true},
		{"both missing", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEndpoints(tt.source, tt.target)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateEndpoints(%q, %q) error = %v, wantErr %v", tt.source, tt.target, err, tt.wantErr)
			}
		})
	}
}

func TestValidateRelationshipType(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"empty uses default", "", false},
		{"blank uses default", "  ", false},
		{"upper snake", "KNOWS_ABOUT", false},
		{"digits", "REL2", false},

		{"space inside", "KNOWS ABOUT", true},
		{"injection", "X]->(b) DELETE b //", true},
		{"dash", "KNOWS-ABOUT", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRelationshipType(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRelationshipType(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"http", "http://localhost:8000", false},
		{"https with path", "https://graph.example.com/api", false},

		{"empty", "", true},
		{"no scheme", "localhost:8000", true},
		{"ftp", "ftp://example.com", true},
		{"no host", "http://", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateURL(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateURL(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
