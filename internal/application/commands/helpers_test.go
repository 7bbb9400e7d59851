package commands

import (
	"errors"
	"slices"
	"strings"
	"testing"
	"time"

	"contexere/internal/domain"
)

// fixedClock is a ports.Clock frozen at one instant
type fixedClock time.Time

func (c fixedClock) Now() time.Time {
	return time.Time(c)
}

// fakeProvider serves a fixed timeline
type fakeProvider struct {
	timeline domain.Timeline
	last     []string // overrides Timeline.Last when set
	err      error
	location string
}

func newFakeProvider(t *testing.T, ids ...string) *fakeProvider {
	t.Helper()
	parsed := make([]domain.Identifier, 0, len(ids))
	for _, s := range ids {
		id, err := domain.ParseIdentifier(s)
		if err != nil {
			t.Fatalf("bad fixture %q: %v", s, err)
		}
		parsed = append(parsed, id)
	}
	return &fakeProvider{timeline: domain.NewTimeline(parsed)}
}

func (p *fakeProvider) BuildContext(location string) (*domain.HistoryContext, domain.Timeline, error) {
	p.location = location
	if p.err != nil {
		return nil, nil, p.err
	}
	hctx := domain.NewHistoryContext(location)
	for _, id := range p.timeline {
		hctx.Add(id, id.String()+".md")
	}
	return hctx, p.timeline, nil
}

func (p *fakeProvider) Last(timeline domain.Timeline) []string {
	if p.last != nil {
		return p.last
	}
	return timeline.Last().Strings()
}

// fakeLedger keeps entries in memory
type fakeLedger struct {
	fakeProvider
	entries map[string][]domain.LedgerEntry
	failing error
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{entries: make(map[string][]domain.LedgerEntry)}
}

func (l *fakeLedger) Record(location string, id domain.Identifier, source string) error {
	if l.failing != nil {
		return l.failing
	}
	for _, e := range l.entries[location] {
		if e.Identifier == id {
			return nil
		}
	}
	l.entries[location] = append(l.entries[location], domain.LedgerEntry{
		Location:   location,
		Identifier: id,
		Source:     source,
	})
	return nil
}

func (l *fakeLedger) Sync(location string, hctx *domain.HistoryContext) (*domain.SyncStats, error) {
	if l.failing != nil {
		return nil, l.failing
	}
	stats := &domain.SyncStats{EntriesDeleted: len(l.entries[location])}
	l.entries[location] = nil
	for _, id := range hctx.Timeline() {
		for _, name := range hctx.Names(id) {
			stats.NamesScanned++
			_ = l.Record(location, id, name)
		}
	}
	stats.EntriesAdded = len(l.entries[location])
	return stats, nil
}

func (l *fakeLedger) Entries(location string) ([]domain.LedgerEntry, error) {
	return l.entries[location], nil
}

func (l *fakeLedger) Locations() ([]string, error) {
	var locs []string
	for loc := range l.entries {
		locs = append(locs, loc)
	}
	slices.Sort(locs)
	return locs, nil
}

var errBoom = errors.New("boom")

func contains(s, substr string) bool {
	return strings.Contains(s, substr)
}
