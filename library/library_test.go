package library

import (
	"testing"
	"time"

	"github.com/iridum-cli/iridum/filesystem"
	"github.com/iridum-cli/iridum/source"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestLibrary(t *testing.T) {
	Convey("Given an empty library", t, func() {
		So(Clear(), ShouldBeNil)

		entry := source.CatalogEntry{Name: "Dune", ID: 42, Slug: "dune", PosterImageFilename: "p.webp"}
		item := FromEntry(entry, "sc.test")

		Convey("An entry is bookmarked by href", func() {
			So(item.Href, ShouldEqual, "https://sc.test/it/titles/42-dune")
			So(item.ImageURL, ShouldEqual, "https://cdn.sc.test/images/p.webp")

			added, err := Add(item)
			So(err, ShouldBeNil)
			So(added.ID.String(), ShouldNotBeEmpty)

			Convey("Adding it again keeps a single item", func() {
				again, err := Add(item)
				So(err, ShouldBeNil)
				So(again.ID, ShouldEqual, added.ID)

				items, _ := List()
				So(items, ShouldHaveLength, 1)
			})

			Convey("It can be found", func() {
				found, err := Find(item.Href)
				So(err, ShouldBeNil)
				So(found.MustGet().Title, ShouldEqual, "Dune")
			})

			Convey("Flags can be toggled", func() {
				fav, err := ToggleFavorite(item.Href)
				So(err, ShouldBeNil)
				So(fav.IsFavorite, ShouldBeTrue)

				fin, err := ToggleFinished(item.Href)
				So(err, ShouldBeNil)
				So(fin.IsFinished, ShouldBeTrue)
				So(fin.IsFavorite, ShouldBeTrue)
			})

			Convey("It can be removed", func() {
				removed, err := Remove(item.Href)
				So(err, ShouldBeNil)
				So(removed, ShouldBeTrue)

				found, _ := Find(item.Href)
				So(found.IsAbsent(), ShouldBeTrue)

				removed, err = Remove(item.Href)
				So(err, ShouldBeNil)
				So(removed, ShouldBeFalse)
			})
		})

		Convey("Toggling an unknown href fails", func() {
			_, err := ToggleFavorite("https://sc.test/it/titles/0-none")
			_, ok := lo.ErrorsAs[*NotFoundError](err)
			So(ok, ShouldBeTrue)
		})
	})
}

func TestPartition(t *testing.T) {
	Convey("Given items with different flags", t, func() {
		now := time.Now()
		items := []Item{
			{Title: "a", IsFavorite: true, AddedAt: now},
			{Title: "b", IsFinished: true, AddedAt: now},
			{Title: "c", IsFavorite: true, IsFinished: true, AddedAt: now},
			{Title: "d", AddedAt: now},
		}

		Convey("Each item lands in exactly one partition", func() {
			p := Partition(items)
			title := func(i Item, _ int) string { return i.Title }
			So(lo.Map(p.Favorite, title), ShouldResemble, []string{"a", "c"})
			So(lo.Map(p.Finished, title), ShouldResemble, []string{"b"})
			So(lo.Map(p.Other, title), ShouldResemble, []string{"d"})
		})

		Convey("Empty input yields empty partitions", func() {
			p := Partition(nil)
			So(p.Favorite, ShouldBeEmpty)
			So(p.Other, ShouldNotBeNil)
		})
	})
}
