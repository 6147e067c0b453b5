package catalog

import (
	"cmp"
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/collate"
)

type SortField string

const (
	SortByPassword SortField = "password"
	SortByStrength SortField = "strength"
	SortByScore    SortField = "score"
	SortByDate     SortField = "date"
)

// ParseSortField accepts password, strength, score or date. strength and
// score both order by the entry's numeric score.
func ParseSortField(s string) (SortField, error) {
	switch f := SortField(strings.ToLower(strings.TrimSpace(s))); f {
	case SortByPassword, SortByStrength, SortByScore, SortByDate:
		return f, nil
	default:
		return "", fmt.Errorf("unknown sort field %q (want password, strength, score or date)", s)
	}
}

type Direction int

const (
	Descending Direction = iota
	Ascending
)

func (d Direction) String() string {
	if d == Ascending {
		return "asc"
	}
	return "desc"
}

// Toggle flips the direction, as clicking the active column header does.
func (d Direction) Toggle() Direction {
	if d == Ascending {
		return Descending
	}
	return Ascending
}

// Query is a filter plus one sort key. The zero value lists everything
// newest first.
type Query struct {
	Search    string
	SortField SortField
	Direction Direction
}

// Query filters the catalog by a case-insensitive substring of the
// password field and sorts the matches stably, so equal keys keep their
// insertion order in either direction.
func (c *Catalog[E]) Query(ctx context.Context, q Query) []E {
	return c.Apply(c.Load(ctx), q)
}

// Apply runs q over an already loaded sequence without touching the store.
func (c *Catalog[E]) Apply(entries []E, q Query) []E {
	needle := strings.ToLower(q.Search)

	out := make([]E, 0, len(entries))
	for _, e := range entries {
		if strings.Contains(strings.ToLower(e.SearchText()), needle) {
			out = append(out, e)
		}
	}

	compare := c.comparator(q.SortField)
	sort.SliceStable(out, func(i, j int) bool {
		r := compare(out[i], out[j])
		if q.Direction == Ascending {
			return r < 0
		}
		return r > 0
	})
	return out
}

func (c *Catalog[E]) comparator(field SortField) func(a, b E) int {
	switch field {
	case SortByPassword:
		col := collate.New(c.locale)
		return func(a, b E) int {
			return col.CompareString(a.SearchText(), b.SearchText())
		}
	case SortByStrength, SortByScore:
		return func(a, b E) int {
			return cmp.Compare(a.SortScore(), b.SortScore())
		}
	default:
		return func(a, b E) int {
			return c.parseDate(a.EntryDate()).Compare(c.parseDate(b.EntryDate()))
		}
	}
}

// parseDate reads a stored date back into a timestamp. Dates that match
// neither the configured layout nor RFC 3339 sort as the zero time.
func (c *Catalog[E]) parseDate(s string) time.Time {
	if t, err := time.ParseInLocation(c.layout, s, time.Local); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	return time.Time{}
}
