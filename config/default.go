// Package config provides centralized management for application settings, defaults, and the Viper-based configuration engine.
package config

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"text/template"

	"github.com/iridum-cli/iridum/color"
	"github.com/iridum-cli/iridum/constant"
	"github.com/iridum-cli/iridum/key"
	"github.com/iridum-cli/iridum/style"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// Field represents a configuration field definition.
type Field struct {
	Key         string
	Value       any
	Description string
}

// Pretty returns a colored string representation of the field for display.
func (f *Field) Pretty() string {
	var b strings.Builder
	lo.Must0(prettyTemplate.Execute(&b, f))
	return b.String()
}

// Env returns the environment variable name for this field.
func (f *Field) Env() string {
	env := strings.ToUpper(EnvKeyReplacer.Replace(f.Key))
	prefix := strings.ToUpper(constant.Iridum + "_")
	if strings.HasPrefix(env, prefix) {
		return env
	}
	return prefix + env
}

// MarshalJSON customizes JSON output to include current and default values.
func (f *Field) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Key         string `json:"key"`
		Value       any    `json:"value"`
		Default     any    `json:"default"`
		Description string `json:"description"`
		Type        string `json:"type"`
	}{
		Key:         f.Key,
		Value:       viper.Get(f.Key),
		Default:     f.Value,
		Description: f.Description,
		Type:        f.typeName(),
	})
}

func (f *Field) typeName() string {
	switch f.Value.(type) {
	case string:
		return "string"
	case int:
		return "int"
	case float64:
		return "float"
	case bool:
		return "bool"
	case []string:
		return "[]string"
	default:
		return "unknown"
	}
}

// Default holds the map of all configuration fields.
var Default = make(map[string]Field)

// EnvExposed holds keys that are bound to environment variables.
var EnvExposed []string

func init() {
	register := func(k string, v any, desc string) {
		if _, exists := Default[k]; exists {
			panic("Duplicate config key: " + k)
		}
		Default[k] = Field{Key: k, Value: v, Description: desc}
		EnvExposed = append(EnvExposed, k)
	}

	register(key.SiteBaseDomain, "streamingcommunity.computer", "Domain of the streaming website.\nA leading https:// and trailing slash are stripped")
	register(key.StreamPatch, false, "Append h=1 to resolved stream URLs.\nWorks around a server side quirk on some titles")
	register(key.ResolverWorkers, 4, "Maximum number of stream resolutions running at the same time")
	register(key.NetworkUserAgentMode, UserAgentProcess, "How the page User-Agent is picked.\nAvailable options are: process (once per run), request (every request)")
	register(key.NetworkTLSFingerprint, false, "Use a Chrome TLS fingerprint for page requests")
	register(key.Player, "mpv", "Media player to use (e.g., mpv, iina)")
	register(key.PlayerHoldSpeed, DefaultHoldSpeed, fmt.Sprintf("Playback speed applied while hold speed is active.\nFrom %.2f to %.2f in steps of %.2f", MinHoldSpeed, MaxHoldSpeed, HoldSpeedStep))
	register(key.PlayerForceLandscape, false, "Open the player fullscreen")
	register(key.DisplayShowOriginalTitle, false, "Show the original title next to the localized one")
	register(key.DisplayShowCast, true, "Show the main cast of a title")
	register(key.DisplayShowDirector, true, "Show the directors of a title")
	register(key.HistorySaveProgress, true, "Save playback progress while watching")
	register(key.HistorySaveQueries, true, "Remember search queries")
	register(key.ProgressMaxEntries, 0, "Maximum number of progress records kept by \"iridum progress prune\".\n0 keeps everything")
	register(key.SearchShowQuerySuggestions, true, "Show query suggestions when searching")
	register(key.IconsVariant, "plain", "Icons variant.\nAvailable options are: emoji, kaomoji, plain, squares, nerd (nerd-font required)")
	register(key.LogsWrite, false, "Write logs")
	register(key.LogsLevel, "info", "Available options are: (from less to most verbose)\npanic, fatal, error, warn, info, debug, trace")
	register(key.LogsJson, false, "Use json format for logs")
	register(key.CliColored, true, "Enable colored CLI output")
	register(key.CliVersionCheck, true, "Check for a newer release when showing the version or help")
}

var prettyTemplate = lo.Must(template.New("pretty").Funcs(template.FuncMap{
	"faint":    style.Faint,
	"bold":     style.Bold,
	"purple":   style.Fg(color.Purple),
	"blue":     style.Fg(color.Blue),
	"cyan":     style.Fg(color.Cyan),
	"value":    func(k string) any { return viper.Get(k) },
	"typename": func(v any) string { return reflect.TypeOf(v).String() },
	"hl": func(v any) string {
		switch value := v.(type) {
		case bool:
			b := strconv.FormatBool(value)
			if value {
				return style.Fg(color.Green)(b)
			}
			return style.Fg(color.Red)(b)
		case string:
			return style.Fg(color.Yellow)(value)
		default:
			return fmt.Sprint(value)
		}
	},
}).Parse(`{{ faint .Description }}
{{ blue "Key:" }}     {{ purple .Key }}
{{ blue "Env:" }}     {{ .Env }}
{{ blue "Value:" }}   {{ hl (value .Key) }}
{{ blue "Default:" }} {{ hl (.Value) }}
{{ blue "Type:" }}    {{ typename .Value }}`))
