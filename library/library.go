// Package library stores the titles bookmarked by the user.
package library

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/iridum-cli/iridum/filesystem"
	"github.com/iridum-cli/iridum/source"
	"github.com/iridum-cli/iridum/where"
	"github.com/metafates/gache"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

// Item is a bookmarked title. Href identifies it.
type Item struct {
	ID         uuid.UUID `json:"id"`
	Title      string    `json:"title"`
	ImageURL   string    `json:"image_url"`
	Href       string    `json:"href"`
	IsFavorite bool      `json:"is_favorite"`
	IsFinished bool      `json:"is_finished"`
	AddedAt    time.Time `json:"added_at"`
}

func (i Item) String() string {
	return i.Title
}

// FromEntry bookmarks a catalog entry of the given domain.
func FromEntry(entry source.CatalogEntry, domain string) Item {
	return Item{
		Title:    entry.Name,
		ImageURL: entry.ImageURL(domain),
		Href:     entry.Href(domain),
	}
}

var cacher = sync.OnceValue(func() *gache.Cache[[]Item] {
	return gache.New[[]Item](&gache.Options{
		Path:       where.Library(),
		FileSystem: &filesystem.GacheFs{},
	})
})

// List returns every item, oldest first.
func List() ([]Item, error) {
	items, expired, err := cacher().Get()
	if err != nil {
		return nil, err
	}
	if expired || items == nil {
		return []Item{}, nil
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].AddedAt.Before(items[j].AddedAt)
	})
	return items, nil
}

// Find looks an item up by href.
func Find(href string) (mo.Option[Item], error) {
	items, err := List()
	if err != nil {
		return mo.None[Item](), err
	}

	item, ok := lo.Find(items, func(i Item) bool { return i.Href == href })
	if !ok {
		return mo.None[Item](), nil
	}
	return mo.Some(item), nil
}

// Add bookmarks an item. Adding an href already present returns the existing item.
func Add(item Item) (Item, error) {
	items, err := List()
	if err != nil {
		return Item{}, err
	}

	if existing, ok := lo.Find(items, func(i Item) bool { return i.Href == item.Href }); ok {
		return existing, nil
	}

	item.ID = uuid.New()
	if item.AddedAt.IsZero() {
		item.AddedAt = time.Now()
	}

	return item, cacher().Set(append(items, item))
}

// Remove deletes the item with the given href and reports whether one existed.
func Remove(href string) (bool, error) {
	items, err := List()
	if err != nil {
		return false, err
	}

	kept := lo.Reject(items, func(i Item, _ int) bool { return i.Href == href })
	if len(kept) == len(items) {
		return false, nil
	}

	return true, cacher().Set(kept)
}

// ToggleFavorite flips the favorite flag of the item with the given href.
func ToggleFavorite(href string) (Item, error) {
	return update(href, func(i *Item) { i.IsFavorite = !i.IsFavorite })
}

// ToggleFinished flips the finished flag of the item with the given href.
func ToggleFinished(href string) (Item, error) {
	return update(href, func(i *Item) { i.IsFinished = !i.IsFinished })
}

func update(href string, fn func(*Item)) (Item, error) {
	items, err := List()
	if err != nil {
		return Item{}, err
	}

	_, index, ok := lo.FindIndexOf(items, func(i Item) bool { return i.Href == href })
	if !ok {
		return Item{}, &NotFoundError{Href: href}
	}

	fn(&items[index])
	return items[index], cacher().Set(items)
}

// Partitions groups items the way the library is shown.
// An item that is both favorite and finished is listed as favorite.
type Partitions struct {
	Favorite []Item `json:"favorite"`
	Finished []Item `json:"finished"`
	Other    []Item `json:"other"`
}

// Partition splits items into favorite, finished and the rest.
func Partition(items []Item) Partitions {
	p := Partitions{
		Favorite: []Item{},
		Finished: []Item{},
		Other:    []Item{},
	}

	for _, item := range items {
		switch {
		case item.IsFavorite:
			p.Favorite = append(p.Favorite, item)
		case item.IsFinished:
			p.Finished = append(p.Finished, item)
		default:
			p.Other = append(p.Other, item)
		}
	}

	return p
}

// Clear removes every item.
func Clear() error {
	return cacher().Set([]Item{})
}
