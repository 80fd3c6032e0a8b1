package models

import (
	"strings"
	"time"
	"unicode/utf8"
)

// Child represents a child profile that can play games
type Child struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Nickname    string    `json:"nickname,omitempty"`
	DisplayName string    `json:"displayName"`
	Avatar      string    `json:"avatar"`
	FatherName  string    `json:"fatherName,omitempty"`
	MotherName  string    `json:"motherName,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`

	// Derived from ended sessions on every read, never trusted from storage
	TotalSessions   int     `json:"totalSessions"`
	TotalTimePlayed float64 `json:"totalTimePlayed"`
}

// ChildInput is the payload accepted when creating or editing a child
type ChildInput struct {
	Name       string `json:"name"`
	Nickname   string `json:"nickname"`
	FatherName string `json:"fatherName"`
	MotherName string `json:"motherName"`
}

// DisplayName returns the trimmed nickname when present, otherwise the trimmed name
func DisplayName(name, nickname string) string {
	if nick := strings.TrimSpace(nickname); nick != "" {
		return nick
	}
	return strings.TrimSpace(name)
}

// Avatar returns the uppercased first character of the trimmed name
func Avatar(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ""
	}
	r, _ := utf8.DecodeRuneInString(trimmed)
	return strings.ToUpper(string(r))
}

// Apply copies the trimmed input fields onto the child and recomputes the
// derived display fields
func (c *Child) Apply(in ChildInput) {
	c.Name = strings.TrimSpace(in.Name)
	c.Nickname = strings.TrimSpace(in.Nickname)
	c.FatherName = strings.TrimSpace(in.FatherName)
	c.MotherName = strings.TrimSpace(in.MotherName)
	c.DisplayName = DisplayName(c.Name, c.Nickname)
	c.Avatar = Avatar(c.Name)
}
