package util

import (
	"fmt"
	"regexp"
)

// validNameChars matches only alphanumeric characters, hyphens, and underscores.
var validNameChars = regexp.MustCompile(`^[a-zA-Z0-9_\-]+$`)

// ValidateEndpointName checks that an evaluation endpoint name is safe to
// embed in backend URLs and readable in tables:
//   - At least 2 characters
//   - Only alphanumeric characters (a-z, A-Z, 0-9), hyphens (-), and underscores (_)
//   - First character must be alphanumeric
//   - Last character must not be a hyphen or underscore
func ValidateEndpointName(name string) error {
	if len(name) < 2 {
		return fmt.Errorf("endpoint name must be at least 2 characters, got %d", len(name))
	}

	if !validNameChars.MatchString(name) {
		return fmt.Errorf("endpoint name %q contains invalid characters (only a-z, A-Z, 0-9, hyphens, and underscores are allowed)", name)
	}

	first := name[0]
	if !isAlphanumeric(first) {
		return fmt.Errorf("endpoint name must start with an alphanumeric character, got %q", string(first))
	}

	last := name[len(name)-1]
	if last == '-' || last == '_' {
		return fmt.Errorf("endpoint name must not end with a hyphen or underscore, got %q", string(last))
	}

	return nil
}

func isAlphanumeric(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}
