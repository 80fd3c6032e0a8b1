package models

// Dataset is the unit of reading and writing against a store
type Dataset struct {
	Children      []Child   `json:"children"`
	Games         []Game    `json:"games"`
	Sessions      []Session `json:"sessions"`
	NextChildID   int64     `json:"nextChildId"`
	NextGameID    int64     `json:"nextGameId"`
	NextSessionID int64     `json:"nextSessionId"`
}

// NewDataset returns an empty dataset with all counters at 1
func NewDataset() *Dataset {
	return &Dataset{
		Children:      []Child{},
		Games:         []Game{},
		Sessions:      []Session{},
		NextChildID:   1,
		NextGameID:    1,
		NextSessionID: 1,
	}
}

// Normalize replaces nil collections with empty ones and moves every counter
// past the highest id already in use, so documents written by hand or by an
// older version never hand out a duplicate id.
func (d *Dataset) Normalize() {
	if d.Children == nil {
		d.Children = []Child{}
	}
	if d.Games == nil {
		d.Games = []Game{}
	}
	if d.Sessions == nil {
		d.Sessions = []Session{}
	}

	for _, c := range d.Children {
		if c.ID >= d.NextChildID {
			d.NextChildID = c.ID + 1
		}
	}
	for _, g := range d.Games {
		if g.ID >= d.NextGameID {
			d.NextGameID = g.ID + 1
		}
	}
	for _, s := range d.Sessions {
		if s.ID >= d.NextSessionID {
			d.NextSessionID = s.ID + 1
		}
	}

	if d.NextChildID < 1 {
		d.NextChildID = 1
	}
	if d.NextGameID < 1 {
		d.NextGameID = 1
	}
	if d.NextSessionID < 1 {
		d.NextSessionID = 1
	}
}

// Clone returns a deep copy of the dataset
func (d *Dataset) Clone() *Dataset {
	out := &Dataset{
		Children:      make([]Child, len(d.Children)),
		Games:         make([]Game, len(d.Games)),
		Sessions:      make([]Session, len(d.Sessions)),
		NextChildID:   d.NextChildID,
		NextGameID:    d.NextGameID,
		NextSessionID: d.NextSessionID,
	}
	copy(out.Children, d.Children)
	copy(out.Games, d.Games)
	for i, s := range d.Sessions {
		if s.End != nil {
			end := *s.End
			s.End = &end
		}
		out.Sessions[i] = s
	}
	return out
}

// FindChild returns the index of the child with the given id, or -1
func (d *Dataset) FindChild(id int64) int {
	for i := range d.Children {
		if d.Children[i].ID == id {
			return i
		}
	}
	return -1
}

// FindGame returns the index of the game with the given id, or -1
func (d *Dataset) FindGame(id int64) int {
	for i := range d.Games {
		if d.Games[i].ID == id {
			return i
		}
	}
	return -1
}

// FindSession returns the index of the session with the given id, or -1
func (d *Dataset) FindSession(id int64) int {
	for i := range d.Sessions {
		if d.Sessions[i].ID == id {
			return i
		}
	}
	return -1
}

// ActiveSessionFor returns the index of the child's active session, or -1
func (d *Dataset) ActiveSessionFor(childID int64) int {
	for i := range d.Sessions {
		if d.Sessions[i].ChildID == childID && d.Sessions[i].IsActive() {
			return i
		}
	}
	return -1
}

// ChildStats counts the child's ended sessions and sums their durations
func (d *Dataset) ChildStats(childID int64) (totalSessions int, totalTimePlayed float64) {
	for _, s := range d.Sessions {
		if s.ChildID != childID || s.IsActive() {
			continue
		}
		totalSessions++
		totalTimePlayed += s.Duration
	}
	return totalSessions, totalTimePlayed
}

// WithStats returns a copy of the child carrying freshly computed statistics
func (d *Dataset) WithStats(c Child) Child {
	c.TotalSessions, c.TotalTimePlayed = d.ChildStats(c.ID)
	return c
}
