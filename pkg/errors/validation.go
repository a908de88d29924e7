package errors

import (
	"net/url"
	"strings"
	"unicode"
)

// maxNameLength bounds node names and relationship types typed into the editor.
const maxNameLength = 256

// ValidateNodeName validates the name typed into the node form.
// Names are trimmed before the check; a blank name is rejected.
func ValidateNodeName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return New(ErrCodeInvalidInput, "Node name cannot be empty")
	}
	if len(name) > maxNameLength {
		return New(ErrCodeInvalidInput, "node name too long (max %d characters)", maxNameLength)
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "node name contains invalid control characters")
		}
	}
	return nil
}

// ValidateEndpoints checks that both ends of a relationship have been selected.
func ValidateEndpoints(sourceID, targetID string) error {
	if sourceID == "" || targetID == "" {
		return New(ErrCodeInvalidInput, "Both source and target nodes must be selected")
	}
	return nil
}

// ValidateRelationshipType validates a user-supplied relationship type.
// Empty is allowed (the default type is applied later); anything else must
// be a single identifier since the backend splices it into its query.
func ValidateRelationshipType(typ string) error {
	typ = strings.TrimSpace(typ)
	if typ == "" {
		return nil
	}
	if len(typ) > maxNameLength {
		return New(ErrCodeInvalidInput, "relationship type too long (max %d characters)", maxNameLength)
	}
	for _, r := range typ {
		if r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return New(ErrCodeInvalidInput, "relationship type %q may only contain letters, digits and underscores", typ)
		}
	}
	return nil
}

// ValidateURL validates a backend base URL.
// It ensures the URL is absolute with an http or https scheme.
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidURL, "URL cannot be empty")
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return Wrap(ErrCodeInvalidURL, err, "invalid URL %q", rawURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return New(ErrCodeInvalidURL, "URL must use http or https scheme")
	}
	if u.Host == "" {
		return New(ErrCodeInvalidURL, "URL must include a host")
	}
	return nil
}
