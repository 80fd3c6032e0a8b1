package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"playtracker/internal/models"
)

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Limits holds every bound enforced on incoming requests
type Limits struct {
	ChildNameMin      int
	ChildNameMax      int
	NicknameMax       int
	ParentNameMax     int
	GameNameMin       int
	GameNameMax       int
	DurationMin       float64
	DurationMax       float64
	AdditionalTimeMin float64
	AdditionalTimeMax float64
}

// DefaultLimits returns the standard bounds
func DefaultLimits() Limits {
	return Limits{
		ChildNameMin:      2,
		ChildNameMax:      30,
		NicknameMax:       30,
		ParentNameMax:     30,
		GameNameMin:       2,
		GameNameMax:       50,
		DurationMin:       1,
		DurationMax:       180,
		AdditionalTimeMin: 1,
		AdditionalTimeMax: 60,
	}
}

// runeLen counts characters of the trimmed value
func runeLen(s string) int {
	return utf8.RuneCountInString(strings.TrimSpace(s))
}

func checkLength(field, value string, min, max int) error {
	n := runeLen(value)
	if n == 0 {
		return ValidationError{Field: field, Message: field + " is required"}
	}
	if n < min || n > max {
		return ValidationError{
			Field:   field,
			Message: fmt.Sprintf("%s must be between %d and %d characters", field, min, max),
		}
	}
	return nil
}

func checkOptional(field, value string, max int) error {
	if runeLen(value) > max {
		return ValidationError{
			Field:   field,
			Message: fmt.Sprintf("%s must be at most %d characters", field, max),
		}
	}
	return nil
}

func checkRange(field string, value, min, max float64) error {
	if value == 0 {
		return ValidationError{Field: field, Message: field + " is required"}
	}
	if value < min || value > max {
		return ValidationError{
			Field:   field,
			Message: fmt.Sprintf("%s must be between %g and %g", field, min, max),
		}
	}
	return nil
}

// ValidateChild checks a child create or edit payload
func (l Limits) ValidateChild(in models.ChildInput) error {
	if err := checkLength("name", in.Name, l.ChildNameMin, l.ChildNameMax); err != nil {
		return err
	}
	if err := checkOptional("nickname", in.Nickname, l.NicknameMax); err != nil {
		return err
	}
	if err := checkOptional("fatherName", in.FatherName, l.ParentNameMax); err != nil {
		return err
	}
	return checkOptional("motherName", in.MotherName, l.ParentNameMax)
}

// ValidateGame checks a game create payload
func (l Limits) ValidateGame(in models.GameInput) error {
	return checkLength("name", in.Name, l.GameNameMin, l.GameNameMax)
}

// ValidateStartSession checks a session start payload. Durations are only
// range checked, so fractional minutes are accepted.
func (l Limits) ValidateStartSession(in models.StartSessionInput) error {
	if in.ChildID == 0 {
		return ValidationError{Field: "childId", Message: "childId is required"}
	}
	if in.GameID == 0 {
		return ValidationError{Field: "gameId", Message: "gameId is required"}
	}
	return checkRange("duration", in.Duration, l.DurationMin, l.DurationMax)
}

// ValidateExtendSession checks a session extend payload
func (l Limits) ValidateExtendSession(in models.ExtendSessionInput) error {
	if in.SessionID == 0 {
		return ValidationError{Field: "sessionId", Message: "sessionId is required"}
	}
	return checkRange("additionalTime", in.AdditionalTime, l.AdditionalTimeMin, l.AdditionalTimeMax)
}

// ValidateEndSession checks a session end payload
func ValidateEndSession(in models.EndSessionInput) error {
	if in.SessionID == 0 {
		return ValidationError{Field: "sessionId", Message: "sessionId is required"}
	}
	return nil
}
