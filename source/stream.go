package source

import "github.com/iridum-cli/iridum/constant"

// StreamResolution is the outcome of a single resolution attempt. It is never persisted.
type StreamResolution struct {
	PlaylistBaseURL string `json:"playlist_base_url"`
	Token           string `json:"token"`
	Expiry          string `json:"expiry"`
	FinalURL        string `json:"final_url"`
	EmbedURL        string `json:"embed_url"`
}

// Headers must accompany every request the player makes for the stream.
func (s StreamResolution) Headers() map[string]string {
	return map[string]string{
		"Referer":    s.EmbedURL,
		"User-Agent": constant.PlayerUserAgent,
	}
}
