// Package version checks for newer releases.
package version

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/iridum-cli/iridum/filesystem"
	"github.com/iridum-cli/iridum/network"
	"github.com/iridum-cli/iridum/where"
	"github.com/metafates/gache"
)

// ReleasesURL is where the latest release tag is read from.
var ReleasesURL = "https://api.github.com/repos/iridum-cli/iridum/releases/latest"

var versionCacher = sync.OnceValue(func() *gache.Cache[string] {
	return gache.New[string](&gache.Options{
		Path:       filepath.Join(where.Cache(), "version.json"),
		Lifetime:   time.Hour * 24 * 2,
		FileSystem: &filesystem.GacheFs{},
	})
})

type fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Latest returns the newest released version, cached for two days.
func Latest(ctx context.Context) (string, error) {
	return latest(ctx, network.NewFetcher())
}

func latest(ctx context.Context, f fetcher) (string, error) {
	cached, expired, err := versionCacher().Get()
	if err != nil {
		return "", err
	}

	if !expired && cached != "" {
		return cached, nil
	}

	body, err := f.Fetch(ctx, ReleasesURL)
	if err != nil {
		return "", err
	}

	var release struct {
		TagName string `json:"tag_name"`
	}
	if err := json.Unmarshal(body, &release); err != nil {
		return "", err
	}

	if release.TagName == "" {
		return "", errors.New("empty tag name")
	}

	version := strings.TrimPrefix(release.TagName, "v")
	_ = versionCacher().Set(version)
	return version, nil
}
