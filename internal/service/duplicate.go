package service

import (
	"fmt"
	"strings"

	"playtracker/internal/models"
)

// DuplicateResult is the outcome of comparing a candidate child against
// the existing ones
type DuplicateResult struct {
	IsDuplicate bool
	Message     string
	Suggestion  string
}

// DetectDuplicate compares the candidate's display name and parent names
// against existing children, skipping the child with id excludeID.
//
// A child with the same display name is an exact duplicate unless a parent
// name present on both sides differs (case-insensitively). A same-name child
// with such a differing parent yields a non-blocking suggestion instead.
func DetectDuplicate(candidate models.ChildInput, existing []models.Child, excludeID int64) DuplicateResult {
	displayName := models.DisplayName(candidate.Name, candidate.Nickname)
	collision := false

	for _, c := range existing {
		if c.ID == excludeID {
			continue
		}
		if models.DisplayName(c.Name, c.Nickname) != displayName {
			continue
		}

		if parentMatches(candidate.FatherName, c.FatherName) && parentMatches(candidate.MotherName, c.MotherName) {
			return DuplicateResult{
				IsDuplicate: true,
				Message: fmt.Sprintf(
					"A child named %q with the same parents already exists. Please verify this is not the same child.",
					displayName),
			}
		}
		collision = true
	}

	if collision {
		return DuplicateResult{
			Suggestion: fmt.Sprintf(
				"Another child named %q already exists with different parent names. Consider adding a nickname to tell them apart.",
				displayName),
		}
	}
	return DuplicateResult{}
}

// parentMatches only fails when both sides carry a value and they differ
func parentMatches(a, b string) bool {
	a = strings.TrimSpace(a)
	b = strings.TrimSpace(b)
	if a == "" || b == "" {
		return true
	}
	return strings.EqualFold(a, b)
}
