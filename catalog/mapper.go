// Package catalog maps decoded page props to typed records.
//
// A record missing one of its identifying fields is dropped on its own;
// every other field falls back to its zero value.
package catalog

import (
	"fmt"

	"github.com/iridum-cli/iridum/log"
	"github.com/iridum-cli/iridum/pageprops"
	"github.com/iridum-cli/iridum/source"
	"github.com/samber/lo"
)

// ToCatalogEntries maps props.titles[], the search result shape.
func ToCatalogEntries(props pageprops.Props) []source.CatalogEntry {
	section, err := props.Section()
	if err != nil {
		return nil
	}
	return entries(objects(section, "titles"))
}

// ToSliders maps props.sliders[], the home page shape.
func ToSliders(props pageprops.Props) []source.Slider {
	section, err := props.Section()
	if err != nil {
		return nil
	}

	return lo.Map(objects(section, "sliders"), func(slider map[string]any, _ int) source.Slider {
		return source.Slider{
			Name:   str(slider, "name"),
			Label:  str(slider, "label"),
			Titles: entries(objects(slider, "titles")),
		}
	})
}

// FromSliders flattens every slider into one list of entries, first occurrence wins.
func FromSliders(props pageprops.Props) []source.CatalogEntry {
	all := lo.FlatMap(ToSliders(props), func(s source.Slider, _ int) []source.CatalogEntry {
		return s.Titles
	})
	return lo.UniqBy(all, func(e source.CatalogEntry) int {
		return e.ID
	})
}

func entries(raw []map[string]any) []source.CatalogEntry {
	var dropped int
	mapped := lo.FilterMap(raw, func(title map[string]any, _ int) (source.CatalogEntry, bool) {
		entry, ok := toCatalogEntry(title)
		if !ok {
			dropped++
		}
		return entry, ok
	})

	if dropped > 0 {
		log.WithFields(log.Fields{"kept": len(mapped), "dropped": dropped}).Debug("catalog entries dropped")
	}

	return mapped
}

func toCatalogEntry(title map[string]any) (source.CatalogEntry, bool) {
	id, hasID := integer(title, "id")
	filename, hasPoster := poster(title)

	entry := source.CatalogEntry{
		Name:                str(title, "name"),
		ID:                  id,
		Slug:                str(title, "slug"),
		PosterImageFilename: filename,
	}

	return entry, hasID && hasPoster && entry.Name != "" && entry.Slug != ""
}

// ToTitleDetail maps props.title. Only a missing title object is an error.
func ToTitleDetail(props pageprops.Props) (source.TitleDetail, error) {
	section, err := props.Section()
	if err != nil {
		return source.TitleDetail{}, err
	}

	title := object(section, "title")
	if title == nil {
		return source.TitleDetail{}, &source.ParseError{Stage: "props.title", Cause: fmt.Errorf("not an object")}
	}

	filename, _ := poster(title)

	return source.TitleDetail{
		ID:                  intOr(title, "id", 0),
		Name:                str(title, "name"),
		OriginalName:        str(title, "original_name"),
		Plot:                str(title, "plot"),
		Runtime:             intOr(title, "runtime", 0),
		ReleaseDate:         str(title, "release_date"),
		Score:               text(title, "score"),
		AgeRating:           text(title, "age"),
		Quality:             str(title, "quality"),
		Genres:              names(title, "genres"),
		MainActors:          names(title, "main_actors"),
		Directors:           names(title, "main_directors"),
		SeasonsCount:        intOr(title, "seasons_count", 0),
		PosterImageFilename: filename,
	}, nil
}

// ToEpisodes maps props.loadedSeason.episodes[].
func ToEpisodes(props pageprops.Props) []source.Episode {
	section, err := props.Section()
	if err != nil {
		return nil
	}

	season := object(section, "loadedSeason")
	titleID, ok := integer(season, "title_id")
	if !ok {
		titleID, ok = integer(object(section, "title"), "id")
	}
	if !ok || titleID <= 0 {
		if len(objects(season, "episodes")) > 0 {
			log.Warn("season without a title id, episodes dropped")
		}
		return nil
	}

	var dropped int
	episodes := lo.FilterMap(objects(season, "episodes"), func(raw map[string]any, _ int) (source.Episode, bool) {
		id, hasID := integer(raw, "id")
		number, hasNumber := integer(raw, "number")

		episode := source.Episode{
			ID:            id,
			Name:          str(raw, "name"),
			Plot:          str(raw, "plot"),
			ImageFilename: firstImage(raw),
			Number:        number,
			TitleID:       titleID,
		}

		ok := hasID && hasNumber && episode.Name != ""
		if !ok {
			dropped++
		}
		return episode, ok
	})

	if dropped > 0 {
		log.WithFields(log.Fields{"title": titleID, "kept": len(episodes), "dropped": dropped}).Debug("episodes dropped")
	}

	return episodes
}
