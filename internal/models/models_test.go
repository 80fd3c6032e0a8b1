package models

import (
	"testing"
	"time"
)

func TestDisplayName(t *testing.T) {
	tests := []struct {
		name     string
		child    string
		nickname string
		want     string
	}{
		{name: "no nickname", child: "Ana", nickname: "", want: "Ana"},
		{name: "nickname wins", child: "Ana", nickname: "Anita", want: "Anita"},
		{name: "whitespace nickname ignored", child: "Ana", nickname: "   ", want: "Ana"},
		{name: "both trimmed", child: "  Ana ", nickname: " Ani  ", want: "Ani"},
		{name: "name trimmed", child: "  Luis  ", nickname: "", want: "Luis"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DisplayName(tt.child, tt.nickname); got != tt.want {
				t.Errorf("DisplayName(%q, %q) = %q, want %q", tt.child, tt.nickname, got, tt.want)
			}
		})
	}
}

func TestAvatar(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{input: "Ana", want: "A"},
		{input: "  bruno", want: "B"},
		{input: "émilie", want: "É"},
		{input: "ñoño", want: "Ñ"},
		{input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := Avatar(tt.input); got != tt.want {
				t.Errorf("Avatar(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestChildApply(t *testing.T) {
	var c Child
	c.Apply(ChildInput{Name: " maria ", Nickname: " Mari ", FatherName: " Luis ", MotherName: ""})

	if c.Name != "maria" {
		t.Errorf("Name = %q, want trimmed", c.Name)
	}
	if c.DisplayName != "Mari" {
		t.Errorf("DisplayName = %q, want Mari", c.DisplayName)
	}
	if c.Avatar != "M" {
		t.Errorf("Avatar = %q, want M", c.Avatar)
	}
	if c.FatherName != "Luis" {
		t.Errorf("FatherName = %q, want Luis", c.FatherName)
	}
}

func TestSessionRemainingAndExpiry(t *testing.T) {
	start := time.Date(2026, 1, 10, 15, 0, 0, 0, time.UTC)
	ended := start.Add(time.Minute).UnixMilli()

	tests := []struct {
		name          string
		session       Session
		now           time.Time
		wantRemaining int64
		wantExpired   bool
	}{
		{
			name:          "just started",
			session:       Session{Start: start.UnixMilli(), Duration: 10},
			now:           start,
			wantRemaining: 10 * 60_000,
			wantExpired:   false,
		},
		{
			name:          "half way",
			session:       Session{Start: start.UnixMilli(), Duration: 10},
			now:           start.Add(5 * time.Minute),
			wantRemaining: 5 * 60_000,
			wantExpired:   false,
		},
		{
			name:          "exactly at the limit",
			session:       Session{Start: start.UnixMilli(), Duration: 10},
			now:           start.Add(10 * time.Minute),
			wantRemaining: 0,
			wantExpired:   true,
		},
		{
			name:          "overrun",
			session:       Session{Start: start.UnixMilli(), Duration: 1.5},
			now:           start.Add(2 * time.Minute),
			wantRemaining: -30_000,
			wantExpired:   true,
		},
		{
			name:          "ended sessions never expire",
			session:       Session{Start: start.UnixMilli(), Duration: 1, End: &ended},
			now:           start.Add(time.Hour),
			wantRemaining: 60_000 - time.Hour.Milliseconds(),
			wantExpired:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.session.Remaining(tt.now); got != tt.wantRemaining {
				t.Errorf("Remaining() = %d, want %d", got, tt.wantRemaining)
			}
			if got := tt.session.IsExpired(tt.now); got != tt.wantExpired {
				t.Errorf("IsExpired() = %v, want %v", got, tt.wantExpired)
			}
		})
	}
}

func TestChildStatsIgnoresActiveSessions(t *testing.T) {
	end := int64(2000)
	d := NewDataset()
	d.Sessions = []Session{
		{ID: 1, ChildID: 1, Start: 1000, End: &end, Duration: 10},
		{ID: 2, ChildID: 1, Start: 3000, End: &end, Duration: 15},
		{ID: 3, ChildID: 1, Start: 4000, Duration: 30},
		{ID: 4, ChildID: 2, Start: 1000, End: &end, Duration: 60},
	}

	count, total := d.ChildStats(1)
	if count != 2 {
		t.Errorf("totalSessions = %d, want 2", count)
	}
	if total != 25 {
		t.Errorf("totalTimePlayed = %v, want 25", total)
	}

	child := d.WithStats(Child{ID: 2, TotalSessions: 99})
	if child.TotalSessions != 1 || child.TotalTimePlayed != 60 {
		t.Errorf("WithStats() = %d/%v, want 1/60", child.TotalSessions, child.TotalTimePlayed)
	}
}

func TestDatasetNormalize(t *testing.T) {
	d := &Dataset{
		Children: []Child{{ID: 4}},
		Sessions: []Session{{ID: 9}},
	}
	d.Normalize()

	if d.Games == nil {
		t.Error("Games should be an empty slice, not nil")
	}
	if d.NextChildID != 5 {
		t.Errorf("NextChildID = %d, want 5", d.NextChildID)
	}
	if d.NextGameID != 1 {
		t.Errorf("NextGameID = %d, want 1", d.NextGameID)
	}
	if d.NextSessionID != 10 {
		t.Errorf("NextSessionID = %d, want 10", d.NextSessionID)
	}
}

func TestDatasetCloneIsDeep(t *testing.T) {
	end := int64(500)
	d := NewDataset()
	d.Children = append(d.Children, Child{ID: 1, Name: "Ana"})
	d.Sessions = append(d.Sessions, Session{ID: 1, ChildID: 1, End: &end})

	clone := d.Clone()
	clone.Children[0].Name = "Changed"
	*clone.Sessions[0].End = 999

	if d.Children[0].Name != "Ana" {
		t.Error("clone shares children with the original")
	}
	if *d.Sessions[0].End != 500 {
		t.Error("clone shares session end pointers with the original")
	}
}
