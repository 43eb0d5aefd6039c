package source

import "fmt"

// TitleDetail describes a movie or show. Every field is optional.
type TitleDetail struct {
	ID                  int      `json:"id"`
	Name                string   `json:"name"`
	OriginalName        string   `json:"original_name"`
	Plot                string   `json:"plot"`
	Runtime             int      `json:"runtime"`
	ReleaseDate         string   `json:"release_date"`
	Score               string   `json:"score"`
	AgeRating           string   `json:"age_rating"`
	Quality             string   `json:"quality"`
	Genres              []string `json:"genres"`
	MainActors          []string `json:"main_actors"`
	Directors           []string `json:"directors"`
	SeasonsCount        int      `json:"seasons_count"`
	PosterImageFilename string   `json:"poster_image_filename"`
	PlayURL             string   `json:"play_url,omitempty"`
}

// IsSeries reports whether the title is split in seasons.
func (t TitleDetail) IsSeries() bool {
	return t.SeasonsCount > 0
}

// ImageURL is the CDN location of the poster, empty when the title has none.
func (t TitleDetail) ImageURL(domain string) string {
	return cdnImage(domain, t.PosterImageFilename)
}

// MoviePlayURL is the iframe page of a title played as a whole.
func MoviePlayURL(domain string, titleID int) string {
	return fmt.Sprintf("https://%s/iframe/%d", domain, titleID)
}
