package models

// HistoryEntry records one generated password. The JSON shape is the one
// the web client kept under "passwordHistory".
type HistoryEntry struct {
	ID       int64  `json:"id"`
	Password string `json:"password"`
	Strength int    `json:"strength"`
	Date     string `json:"date"`
}

func (e HistoryEntry) EntryID() int64     { return e.ID }
func (e HistoryEntry) SearchText() string { return e.Password }
func (e HistoryEntry) SortScore() int     { return e.Strength }
func (e HistoryEntry) EntryDate() string  { return e.Date }

func (e HistoryEntry) Stamped(id int64, date string) HistoryEntry {
	e.ID = id
	e.Date = date
	return e
}

// CheckHistoryEntry records one strength check. Only the masked form of
// the password is kept; it is stored under the "password" key for
// compatibility with existing "passwordChecks" data.
type CheckHistoryEntry struct {
	ID             int64  `json:"id"`
	MaskedPassword string `json:"password"`
	Score          int    `json:"score"`
	Date           string `json:"date"`
}

func (e CheckHistoryEntry) EntryID() int64     { return e.ID }
func (e CheckHistoryEntry) SearchText() string { return e.MaskedPassword }
func (e CheckHistoryEntry) SortScore() int     { return e.Score }
func (e CheckHistoryEntry) EntryDate() string  { return e.Date }

func (e CheckHistoryEntry) Stamped(id int64, date string) CheckHistoryEntry {
	e.ID = id
	e.Date = date
	return e
}
