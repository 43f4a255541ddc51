package errors

import (
	"math"
	"regexp"
	"strings"
	"unicode"
)

// ValidateSectionID validates a caller-supplied section id.
// Ids are free-form but must be non-blank and printable; "@" prefixes are
// reserved for extended selectors.
func ValidateSectionID(id string) error {
	if strings.TrimSpace(id) == "" {
		return New(ErrCodeInvalidSectionID, "section id cannot be blank")
	}

	if len(id) > 256 {
		return New(ErrCodeInvalidSectionID, "section id too long (max 256 characters)")
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidSectionID, "section id contains invalid control characters")
		}
	}

	if strings.HasPrefix(id, "@") {
		return New(ErrCodeInvalidSectionID, "section id cannot start with @: %q", id)
	}

	return nil
}

// ValidateThreshold validates a straight-overlap threshold.
// The navigator accepts any value; scene files are held to [0, 1].
func ValidateThreshold(v float64) error {
	if math.IsNaN(v) || v < 0 || v > 1 {
		return New(ErrCodeInvalidConfig, "straight overlap threshold must be within [0, 1], got %v", v)
	}
	return nil
}

// sceneNameRegex matches names usable as file basenames and store keys.
var sceneNameRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// ValidateSceneName validates a scene name for safety.
// Scene names become file names, so path components are rejected.
func ValidateSceneName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidScene, "scene name cannot be empty")
	}

	if len(name) > 128 {
		return New(ErrCodeInvalidScene, "scene name too long (max 128 characters)")
	}

	if strings.Contains(name, "..") {
		return New(ErrCodeInvalidScene, "scene name cannot contain path traversal sequences (..)")
	}

	if !sceneNameRegex.MatchString(name) {
		return New(ErrCodeInvalidScene, "invalid scene name: %q", name)
	}

	return nil
}
