package source

import "fmt"

// CatalogEntry is a title as it appears in search results and home sliders.
type CatalogEntry struct {
	Name                string `json:"name"`
	ID                  int    `json:"id"`
	Slug                string `json:"slug"`
	PosterImageFilename string `json:"poster_image_filename"`
}

// Href is the detail page of the entry.
func (c CatalogEntry) Href(domain string) string {
	return fmt.Sprintf("https://%s/it/titles/%d-%s", domain, c.ID, c.Slug)
}

// ImageURL is the CDN location of the poster.
func (c CatalogEntry) ImageURL(domain string) string {
	return cdnImage(domain, c.PosterImageFilename)
}

func (c CatalogEntry) String() string {
	return c.Name
}

// Slider is a named carousel of the home page.
type Slider struct {
	Name   string         `json:"name"`
	Label  string         `json:"label"`
	Titles []CatalogEntry `json:"titles"`
}
