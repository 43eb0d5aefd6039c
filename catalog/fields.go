package catalog

import (
	"math"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// Permissive readers: a missing or mistyped field yields the zero value.

func object(m map[string]any, key string) map[string]any {
	v, _ := m[key].(map[string]any)
	return v
}

func list(m map[string]any, key string) []any {
	v, _ := m[key].([]any)
	return v
}

func objects(m map[string]any, key string) []map[string]any {
	return lo.FilterMap(list(m, key), func(item any, _ int) (map[string]any, bool) {
		obj, ok := item.(map[string]any)
		return obj, ok
	})
}

func str(m map[string]any, key string) string {
	v, _ := m[key].(string)
	return strings.TrimSpace(v)
}

// text is str that also renders a number, for fields the site sends either way (age, score).
func text(m map[string]any, key string) string {
	if v, ok := m[key].(float64); ok {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return str(m, key)
}

// integer accepts whole JSON numbers that fit an int64.
func integer(m map[string]any, key string) (int, bool) {
	v, ok := m[key].(float64)
	if !ok || v != math.Trunc(v) || math.Abs(v) >= math.MaxInt64 {
		return 0, false
	}
	return int(v), true
}

func intOr(m map[string]any, key string, fallback int) int {
	if n, ok := integer(m, key); ok {
		return n
	}
	return fallback
}

// names collects the name field of a list of objects, e.g. genres or actors.
func names(m map[string]any, key string) []string {
	return lo.FilterMap(objects(m, key), func(obj map[string]any, _ int) (string, bool) {
		name := str(obj, "name")
		return name, name != ""
	})
}

// poster is the filename of the first image typed "poster".
func poster(m map[string]any) (string, bool) {
	image, ok := lo.Find(objects(m, "images"), func(image map[string]any) bool {
		return str(image, "type") == "poster"
	})
	if !ok {
		return "", false
	}
	filename := str(image, "filename")
	return filename, filename != ""
}

// firstImage is the filename of the first image of any type.
func firstImage(m map[string]any) string {
	images := objects(m, "images")
	if len(images) == 0 {
		return ""
	}
	return str(images[0], "filename")
}
