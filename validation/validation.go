// Package validation holds the pure input checks that run before any domain
// logic: player-ID normalization, nickname sanitization and the numeric
// range checks for score submissions. Nothing in here touches the database.
package validation

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

const (
	// DefaultNickname replaces nicknames that sanitize down to nothing.
	DefaultNickname = "PLAYER"

	MaxNicknameLength = 10

	MaxScore           = 9_999_999
	MinLevel           = 1
	MaxLevel           = 10
	MaxLines           = 9_999
	MaxPlayTimeSeconds = 86_400
)

// ValidationError reports a single malformed field. It maps to a 422 at the
// HTTP boundary.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NormalizePlayerID validates that the input is a canonical hyphenated
// 8-4-4-4-12 UUID string (any letter case) and returns it lowercased.
// uuid.Parse on its own also accepts braced and un-hyphenated forms, so the
// shape is checked first.
func NormalizePlayerID(id string) (string, error) {
	if len(id) != 36 || id[8] != '-' || id[13] != '-' || id[18] != '-' || id[23] != '-' {
		return "", &ValidationError{Field: "id", Reason: "must be a UUID in 8-4-4-4-12 form"}
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return "", &ValidationError{Field: "id", Reason: "must be a UUID in 8-4-4-4-12 form"}
	}
	return parsed.String(), nil
}

// SanitizeNickname uppercases the input, drops every character outside
// [A-Z0-9 _-], truncates to MaxNicknameLength and falls back to
// DefaultNickname when nothing survives. It never fails and is idempotent.
func SanitizeNickname(nickname string) string {
	upper := strings.ToUpper(nickname)

	var b strings.Builder
	for _, r := range upper {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == ' ' || r == '_' || r == '-' {
			b.WriteRune(r)
			if b.Len() == MaxNicknameLength {
				break
			}
		}
	}

	if b.Len() == 0 {
		return DefaultNickname
	}
	return b.String()
}

// ValidateScoreFields checks every numeric field of a score submission
// against its closed range and reports the first violation.
func ValidateScoreFields(score, level, lines, playTimeSeconds int) error {
	if score < 0 || score > MaxScore {
		return &ValidationError{Field: "score", Reason: fmt.Sprintf("must be between 0 and %d", MaxScore)}
	}
	if level < MinLevel || level > MaxLevel {
		return &ValidationError{Field: "level", Reason: fmt.Sprintf("must be between %d and %d", MinLevel, MaxLevel)}
	}
	if lines < 0 || lines > MaxLines {
		return &ValidationError{Field: "lines", Reason: fmt.Sprintf("must be between 0 and %d", MaxLines)}
	}
	if playTimeSeconds < 0 || playTimeSeconds > MaxPlayTimeSeconds {
		return &ValidationError{Field: "play_time_seconds", Reason: fmt.Sprintf("must be between 0 and %d", MaxPlayTimeSeconds)}
	}
	return nil
}
