package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"passcheq/internal/logger"
	"passcheq/internal/storage"

	"golang.org/x/text/language"
)

// Entry is what a Catalog can hold. Stamped returns a copy carrying the
// id and creation date the catalog assigns on append.
type Entry[E any] interface {
	EntryID() int64
	SearchText() string
	SortScore() int
	EntryDate() string
	Stamped(id int64, date string) E
}

type Options struct {
	// DateLayout formats creation dates and parses them back for sorting.
	DateLayout string
	// Locale drives the password collation order.
	Locale string
	// Now is the clock; defaults to time.Now.
	Now func() time.Time
}

// Catalog is an ordered, persisted sequence of entries kept under a single
// store key. Insertion order is creation order and ids are unique.
//
// Every mutation reloads the persisted sequence, changes it and writes the
// whole sequence back. There is no locking: the catalog assumes a single
// writer per key. Two processes appending to the same key at once can lose
// an update, and the last write wins.
type Catalog[E Entry[E]] struct {
	store  storage.Store
	key    string
	layout string
	locale language.Tag
	now    func() time.Time
	logger *logger.Logger
}

func New[E Entry[E]](store storage.Store, key string, opts Options, log *logger.Logger) *Catalog[E] {
	c := &Catalog[E]{
		store:  store,
		key:    key,
		layout: opts.DateLayout,
		locale: language.English,
		now:    opts.Now,
		logger: logger.OrNop(log),
	}
	if c.layout == "" {
		c.layout = "1/2/2006, 3:04:05 PM"
	}
	if c.now == nil {
		c.now = time.Now
	}
	if opts.Locale != "" {
		tag, err := language.Parse(opts.Locale)
		if err != nil {
			c.logger.Warnw("unknown locale, falling back to English", "locale", opts.Locale, "error", err)
		} else {
			c.locale = tag
		}
	}
	return c
}

// Key is the store key the catalog persists under.
func (c *Catalog[E]) Key() string {
	return c.key
}

// Load returns the persisted sequence. Absent, corrupt or unreadable data
// all read as an empty catalog; Load never fails.
func (c *Catalog[E]) Load(ctx context.Context) []E {
	entries, err := c.read(ctx)
	if err != nil {
		c.logger.Errorw("failed to read catalog, treating as empty", "key", c.key, "error", err)
		return []E{}
	}
	return entries
}

// read distinguishes a store failure, which is returned, from corrupt data,
// which resets to empty. Mutations use it so an unreachable backend never
// gets overwritten with an empty sequence.
func (c *Catalog[E]) read(ctx context.Context) ([]E, error) {
	data, err := c.store.Get(ctx, c.key)
	if errors.Is(err, storage.ErrNotFound) {
		return []E{}, nil
	}
	if err != nil {
		return nil, err
	}

	var entries []E
	if err := json.Unmarshal(data, &entries); err != nil {
		c.logger.Warnw("corrupt catalog data, resetting to empty", "key", c.key, "error", err)
		return []E{}, nil
	}
	if entries == nil {
		entries = []E{}
	}
	return entries, nil
}

func (c *Catalog[E]) write(ctx context.Context, entries []E) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to encode catalog %s: %w", c.key, err)
	}
	if err := c.store.Put(ctx, c.key, data); err != nil {
		return fmt.Errorf("failed to persist catalog %s: %w", c.key, err)
	}
	return nil
}

// Append stamps entry with a fresh id and the current date, adds it to the
// end of the sequence and persists the result. The stamped entry is returned.
func (c *Catalog[E]) Append(ctx context.Context, entry E) (E, error) {
	var zero E

	entries, err := c.read(ctx)
	if err != nil {
		return zero, fmt.Errorf("failed to load catalog %s: %w", c.key, err)
	}

	now := c.now()
	stamped := entry.Stamped(nextID(entries, now), now.Format(c.layout))
	entries = append(entries, stamped)

	if err := c.write(ctx, entries); err != nil {
		return zero, err
	}
	c.logger.Debugw("catalog entry appended", "key", c.key, "id", stamped.EntryID(), "size", len(entries))
	return stamped, nil
}

// nextID uses the creation time in milliseconds, bumped past the largest
// existing id when the clock has not moved on.
func nextID[E Entry[E]](entries []E, now time.Time) int64 {
	id := now.UnixMilli()
	for _, e := range entries {
		if e.EntryID() >= id {
			id = e.EntryID() + 1
		}
	}
	return id
}

// Get finds an entry by id.
func (c *Catalog[E]) Get(ctx context.Context, id int64) (E, bool) {
	for _, e := range c.Load(ctx) {
		if e.EntryID() == id {
			return e, true
		}
	}
	var zero E
	return zero, false
}

// Delete removes the entry with the given id. An unknown id is not an
// error and leaves the stored sequence untouched. It reports whether an
// entry was removed.
func (c *Catalog[E]) Delete(ctx context.Context, id int64) (bool, error) {
	entries, err := c.read(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to load catalog %s: %w", c.key, err)
	}

	kept := make([]E, 0, len(entries))
	for _, e := range entries {
		if e.EntryID() != id {
			kept = append(kept, e)
		}
	}
	if len(kept) == len(entries) {
		return false, nil
	}

	if err := c.write(ctx, kept); err != nil {
		return false, err
	}
	c.logger.Debugw("catalog entry deleted", "key", c.key, "id", id)
	return true, nil
}

// Clear empties the catalog by removing its record.
func (c *Catalog[E]) Clear(ctx context.Context) error {
	if err := c.store.Delete(ctx, c.key); err != nil {
		return fmt.Errorf("failed to clear catalog %s: %w", c.key, err)
	}
	c.logger.Debugw("catalog cleared", "key", c.key)
	return nil
}
