package inline

import (
	"encoding/json"
	"io"

	"github.com/iridum-cli/iridum/source"
)

// Stream is the resolution of one play URL. Exactly one of Resolution and Error is set.
type Stream struct {
	PlayURL    string                   `json:"play_url"`
	Resolution *source.StreamResolution `json:"resolution,omitempty"`
	Headers    map[string]string        `json:"headers,omitempty"`
	Error      string                   `json:"error,omitempty"`
}

type Episode struct {
	Episode source.Episode `json:"episode"`
	PlayURL string         `json:"play_url"`
	Stream  *Stream        `json:"stream,omitempty"`
}

type Title struct {
	Entry    source.CatalogEntry `json:"entry"`
	Href     string              `json:"href"`
	Detail   *source.TitleDetail `json:"detail,omitempty"`
	Episodes []*Episode          `json:"episodes,omitempty"`
	Stream   *Stream             `json:"stream,omitempty"`
}

type Output struct {
	Query  string   `json:"query"`
	Result []*Title `json:"result"`
}

func writeJson(out io.Writer, query string, titles []*Title) error {
	if titles == nil {
		titles = []*Title{}
	}
	return json.NewEncoder(out).Encode(&Output{Query: query, Result: titles})
}
