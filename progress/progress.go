// Package progress keeps the last played position and duration of every stream.
package progress

import (
	"math"
	"sort"
	"time"

	"github.com/iridum-cli/iridum/filesystem"
	"github.com/iridum-cli/iridum/log"
	"github.com/metafates/gache"
	"github.com/puzpuzpuz/xsync/v3"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

// Entry is the progress of a single stream.
type Entry struct {
	Position  float64   `json:"position"`
	Duration  float64   `json:"duration"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Fraction is position over duration, clamped to [0, 1].
func (e Entry) Fraction() float64 {
	if e.Duration <= 0 {
		return 0
	}
	return math.Min(math.Max(e.Position/e.Duration, 0), 1)
}

// Record pairs an entry with its key for listings.
type Record struct {
	Key string `json:"key"`
	Entry
}

type store interface {
	Get() (map[string]Entry, bool, error)
	Set(map[string]Entry) error
}

// Tracker is safe for concurrent use. Sessions write to different keys without coordination.
type Tracker struct {
	entries *xsync.MapOf[string, Entry]
	store   store
	now     func() time.Time
}

// New returns a tracker that only lives in memory.
func New() *Tracker {
	return &Tracker{
		entries: xsync.NewMapOf[string, Entry](),
		now:     time.Now,
	}
}

// Open returns a tracker persisted as JSON at path, loading what is already there.
func Open(path string) (*Tracker, error) {
	t := New()
	t.store = gache.New[map[string]Entry](&gache.Options{
		Path:       path,
		FileSystem: &filesystem.GacheFs{},
	})
	return t, t.Load()
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Record stores the position of key. Calls with a duration that is not a
// finite positive number, or a position that is not finite, change nothing.
func (t *Tracker) Record(key string, position, duration float64) bool {
	if !finite(duration) || duration <= 0 || !finite(position) {
		return false
	}

	t.entries.Store(key, Entry{
		Position:  math.Max(position, 0),
		Duration:  duration,
		UpdatedAt: t.now(),
	})
	return true
}

// LastPosition is the most recently recorded position of key.
func (t *Tracker) LastPosition(key string) mo.Option[float64] {
	entry, ok := t.entries.Load(key)
	if !ok {
		return mo.None[float64]()
	}
	return mo.Some(entry.Position)
}

// Get returns the entry of key.
func (t *Tracker) Get(key string) mo.Option[Entry] {
	entry, ok := t.entries.Load(key)
	if !ok {
		return mo.None[Entry]()
	}
	return mo.Some(entry)
}

// Overall is the mean fraction watched across the keys that have progress.
// It is 0 when none of them do.
func (t *Tracker) Overall(keys ...string) float64 {
	fractions := lo.FilterMap(keys, func(key string, _ int) (float64, bool) {
		entry, ok := t.entries.Load(key)
		return entry.Fraction(), ok
	})
	if len(fractions) == 0 {
		return 0
	}
	return lo.Sum(fractions) / float64(len(fractions))
}

// All lists every record, most recent first.
func (t *Tracker) All() []Record {
	records := make([]Record, 0, t.entries.Size())
	t.entries.Range(func(key string, entry Entry) bool {
		records = append(records, Record{Key: key, Entry: entry})
		return true
	})
	sort.Slice(records, func(i, j int) bool {
		if records[i].UpdatedAt.Equal(records[j].UpdatedAt) {
			return records[i].Key < records[j].Key
		}
		return records[i].UpdatedAt.After(records[j].UpdatedAt)
	})
	return records
}

func (t *Tracker) Len() int {
	return t.entries.Size()
}

func (t *Tracker) Remove(key string) {
	t.entries.Delete(key)
}

func (t *Tracker) Clear() {
	t.entries.Clear()
}

// Prune keeps the keep most recently updated records and returns how many were removed.
// A non-positive keep removes nothing.
func (t *Tracker) Prune(keep int) int {
	if keep <= 0 {
		return 0
	}

	records := t.All()
	if len(records) <= keep {
		return 0
	}

	for _, record := range records[keep:] {
		t.entries.Delete(record.Key)
	}
	return len(records) - keep
}

// Load merges the persisted records into memory. Records already in memory win.
func (t *Tracker) Load() error {
	if t.store == nil {
		return nil
	}

	saved, expired, err := t.store.Get()
	if err != nil {
		return err
	}
	if expired || saved == nil {
		return nil
	}

	for key, entry := range saved {
		t.entries.LoadOrStore(key, entry)
	}
	log.Debugf("loaded %d progress records", len(saved))
	return nil
}

// Sync writes the in-memory records to disk. Without a store it does nothing.
func (t *Tracker) Sync() error {
	if t.store == nil {
		return nil
	}

	snapshot := make(map[string]Entry, t.entries.Size())
	t.entries.Range(func(key string, entry Entry) bool {
		snapshot[key] = entry
		return true
	})
	return t.store.Set(snapshot)
}
