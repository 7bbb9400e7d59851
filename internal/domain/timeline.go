package domain

import (
	"slices"
	"sort"
)

// Timeline is an ordered, duplicate-free list of identifiers, oldest first
type Timeline []Identifier

// NewTimeline sorts and dedupes ids into a Timeline
func NewTimeline(ids []Identifier) Timeline {
	t := slices.Clone(ids)
	slices.SortFunc(t, Identifier.Compare)
	return Timeline(slices.Compact(t))
}

// Last returns the most recent identifier of each project active on the
// latest date in the timeline. An empty timeline yields nothing; several
// projects sharing the latest date yield one entry each.
func (t Timeline) Last() Timeline {
	if len(t) == 0 {
		return nil
	}

	latest := t[len(t)-1].Date
	byProject := make(map[string]Identifier)
	for _, id := range t {
		if id.Date != latest {
			continue
		}
		// t is sorted, so the last one seen per project has the highest step
		byProject[id.Project] = id
	}

	last := make([]Identifier, 0, len(byProject))
	for _, id := range byProject {
		last = append(last, id)
	}
	return NewTimeline(last)
}

// Tail returns the newest n identifiers, or all of them when n <= 0
func (t Timeline) Tail(n int) Timeline {
	if n <= 0 || n >= len(t) {
		return t
	}
	return t[len(t)-n:]
}

// Strings renders every identifier
func (t Timeline) Strings() []string {
	out := make([]string, len(t))
	for i, id := range t {
		out[i] = id.String()
	}
	return out
}

// HistoryContext maps each identifier found at a location to the names
// (files, directories or ledger sources) that carry it
type HistoryContext struct {
	Location string
	Entries  map[string][]string
}

// NewHistoryContext creates an empty context for location
func NewHistoryContext(location string) *HistoryContext {
	return &HistoryContext{
		Location: location,
		Entries:  make(map[string][]string),
	}
}

// Add records that name carries id
func (c *HistoryContext) Add(id Identifier, name string) {
	key := id.String()
	c.Entries[key] = append(c.Entries[key], name)
}

// Names returns the sorted names carrying id
func (c *HistoryContext) Names(id Identifier) []string {
	names := slices.Clone(c.Entries[id.String()])
	sort.Strings(names)
	return names
}

// Timeline builds the ordered timeline of every identifier in the context
func (c *HistoryContext) Timeline() Timeline {
	ids := make([]Identifier, 0, len(c.Entries))
	for key := range c.Entries {
		if id, err := ParseIdentifier(key); err == nil {
			ids = append(ids, id)
		}
	}
	return NewTimeline(ids)
}
