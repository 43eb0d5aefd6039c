package progress

import (
	"fmt"
	"math"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/iridum-cli/iridum/filesystem"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

func fixedClock(start time.Time) func() time.Time {
	var mu sync.Mutex
	current := start
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		current = current.Add(time.Second)
		return current
	}
}

func TestRecord(t *testing.T) {
	Convey("Given a tracker", t, func() {
		tracker := New()
		const key = "https://x.test/iframe/1"

		Convey("An unseen key has no last position", func() {
			So(tracker.LastPosition(key).IsAbsent(), ShouldBeTrue)
		})

		Convey("The most recent record wins", func() {
			So(tracker.Record(key, 10, 100), ShouldBeTrue)
			So(tracker.Record(key, 42.5, 100), ShouldBeTrue)
			So(tracker.LastPosition(key).MustGet(), ShouldEqual, 42.5)
		})

		Convey("A zero or non-finite duration changes nothing", func() {
			tracker.Record(key, 30, 120)

			for _, duration := range []float64{0, -5, math.NaN(), math.Inf(1), math.Inf(-1)} {
				So(tracker.Record(key, 99, duration), ShouldBeFalse)
			}

			entry := tracker.Get(key).MustGet()
			So(entry.Position, ShouldEqual, 30)
			So(entry.Duration, ShouldEqual, 120)
		})

		Convey("A zero duration on an unseen key stores nothing", func() {
			tracker.Record("other", 5, 0)
			So(tracker.LastPosition("other").IsAbsent(), ShouldBeTrue)
			So(tracker.Len(), ShouldEqual, 0)
		})

		Convey("A non-finite position changes nothing", func() {
			So(tracker.Record(key, math.NaN(), 100), ShouldBeFalse)
			So(tracker.Len(), ShouldEqual, 0)
		})
	})
}

func TestOverall(t *testing.T) {
	Convey("Given progress on some episodes of a title", t, func() {
		tracker := New()
		tracker.Record("e1", 50, 100)
		tracker.Record("e2", 100, 100)
		tracker.Record("e3", 150, 100)

		Convey("Overall is the mean over episodes with progress", func() {
			So(tracker.Overall("e1", "e2", "missing"), ShouldEqual, 0.75)
		})

		Convey("Fractions are clamped", func() {
			So(tracker.Get("e3").MustGet().Fraction(), ShouldEqual, 1)
		})

		Convey("It is recomputed after each record", func() {
			tracker.Record("e1", 100, 100)
			So(tracker.Overall("e1", "e2"), ShouldEqual, 1)
		})

		Convey("Without any progress it is zero", func() {
			So(tracker.Overall("x", "y"), ShouldEqual, 0)
			So(tracker.Overall(), ShouldEqual, 0)
		})
	})
}

func TestConcurrentSessions(t *testing.T) {
	Convey("Given sessions recording different keys concurrently", t, func() {
		tracker := New()

		var wg sync.WaitGroup
		for s := 0; s < 8; s++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for pos := 1; pos <= 50; pos++ {
					tracker.Record(fmt.Sprintf("session-%d", s), float64(pos), 50)
				}
			}()
		}
		wg.Wait()

		Convey("Every session keeps its own last position", func() {
			So(tracker.Len(), ShouldEqual, 8)
			for s := 0; s < 8; s++ {
				So(tracker.LastPosition(fmt.Sprintf("session-%d", s)).MustGet(), ShouldEqual, 50)
			}
		})
	})
}

func TestRetention(t *testing.T) {
	Convey("Given records written one second apart", t, func() {
		tracker := New()
		tracker.now = fixedClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
		for _, key := range []string{"a", "b", "c", "d"} {
			tracker.Record(key, 1, 10)
		}

		Convey("All lists the most recent first", func() {
			records := tracker.All()
			So(records[0].Key, ShouldEqual, "d")
			So(records[3].Key, ShouldEqual, "a")
		})

		Convey("Prune keeps the most recent ones", func() {
			So(tracker.Prune(2), ShouldEqual, 2)
			So(tracker.Get("a").IsAbsent(), ShouldBeTrue)
			So(tracker.Get("d").IsPresent(), ShouldBeTrue)
		})

		Convey("Prune without a limit keeps everything", func() {
			So(tracker.Prune(0), ShouldEqual, 0)
			So(tracker.Len(), ShouldEqual, 4)
		})

		Convey("Remove and Clear delete records", func() {
			tracker.Remove("a")
			So(tracker.Len(), ShouldEqual, 3)
			tracker.Clear()
			So(tracker.Len(), ShouldEqual, 0)
		})
	})
}

func TestPersistence(t *testing.T) {
	Convey("Given a persisted tracker", t, func() {
		path := filepath.Join(t.TempDir(), "progress.json")

		tracker, err := Open(path)
		So(err, ShouldBeNil)
		tracker.Record("https://x.test/iframe/1", 61, 3600)
		So(tracker.Sync(), ShouldBeNil)

		Convey("A new tracker reads the records back", func() {
			reopened, err := Open(path)
			So(err, ShouldBeNil)
			So(reopened.LastPosition("https://x.test/iframe/1").MustGet(), ShouldEqual, 61)
		})
	})

	Convey("Given a memory tracker", t, func() {
		tracker := New()
		tracker.Record("k", 1, 2)

		Convey("Sync and Load are no-ops", func() {
			So(tracker.Sync(), ShouldBeNil)
			So(tracker.Load(), ShouldBeNil)
		})
	})
}
