package source

import "fmt"

// Episode is a single episode of a season.
type Episode struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	Plot          string `json:"plot"`
	ImageFilename string `json:"image_filename"`
	Number        int    `json:"number"`
	TitleID       int    `json:"title_id"`
}

// PlayURL is computed on every call since the domain may change at runtime.
func (e Episode) PlayURL(domain string) string {
	return fmt.Sprintf("https://%s/iframe/%d?episode_id=%d", domain, e.TitleID, e.ID)
}

// ImageURL is the CDN location of the episode still, empty when it has none.
func (e Episode) ImageURL(domain string) string {
	return cdnImage(domain, e.ImageFilename)
}

func (e Episode) String() string {
	return fmt.Sprintf("%d. %s", e.Number, e.Name)
}
