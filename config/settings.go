package config

import (
	"fmt"
	"math"
	"strings"

	"github.com/iridum-cli/iridum/key"
	"github.com/spf13/viper"
)

// Hold speed bounds.
const (
	MinHoldSpeed     = 0.25
	MaxHoldSpeed     = 2.0
	HoldSpeedStep    = 0.25
	DefaultHoldSpeed = 0.5
)

// User-Agent selection modes.
const (
	UserAgentProcess = "process"
	UserAgentRequest = "request"
)

// Settings is an immutable snapshot of everything the pipeline reads.
// It is passed explicitly to the site client, resolver and playback session.
type Settings struct {
	BaseDomain        string
	PatchStream       bool
	HoldSpeed         float64
	ForceLandscape    bool
	ShowOriginalTitle bool
	ShowCast          bool
	ShowDirector      bool
	UserAgentMode     string
	TLSFingerprint    bool
	Workers           int
	SaveProgress      bool
}

// Current takes a snapshot of the active viper configuration.
func Current() Settings {
	return Settings{
		BaseDomain:        NormalizeDomain(viper.GetString(key.SiteBaseDomain)),
		PatchStream:       viper.GetBool(key.StreamPatch),
		HoldSpeed:         ClampHoldSpeed(viper.GetFloat64(key.PlayerHoldSpeed)),
		ForceLandscape:    viper.GetBool(key.PlayerForceLandscape),
		ShowOriginalTitle: viper.GetBool(key.DisplayShowOriginalTitle),
		ShowCast:          viper.GetBool(key.DisplayShowCast),
		ShowDirector:      viper.GetBool(key.DisplayShowDirector),
		UserAgentMode:     viper.GetString(key.NetworkUserAgentMode),
		TLSFingerprint:    viper.GetBool(key.NetworkTLSFingerprint),
		Workers:           max(viper.GetInt(key.ResolverWorkers), 1),
		SaveProgress:      viper.GetBool(key.HistorySaveProgress),
	}
}

// NormalizeDomain strips a leading https:// (any case) and trailing slashes.
// The host keeps the casing it was given.
func NormalizeDomain(domain string) string {
	domain = strings.TrimSpace(domain)

	const scheme = "https://"
	if len(domain) >= len(scheme) && strings.EqualFold(domain[:len(scheme)], scheme) {
		domain = domain[len(scheme):]
	}

	return strings.TrimRight(domain, "/")
}

// ClampHoldSpeed forces a speed into the supported range, falling back to the default for NaN.
func ClampHoldSpeed(speed float64) float64 {
	if math.IsNaN(speed) {
		return DefaultHoldSpeed
	}
	return math.Min(math.Max(speed, MinHoldSpeed), MaxHoldSpeed)
}

// Validators reject values before they are written to the config file.
var Validators = map[string]func(any) error{
	key.SiteBaseDomain: func(v any) error {
		if NormalizeDomain(fmt.Sprint(v)) == "" {
			return fmt.Errorf("base domain must not be empty")
		}
		return nil
	},
	key.PlayerHoldSpeed: func(v any) error {
		speed, ok := v.(float64)
		if !ok {
			return fmt.Errorf("hold speed must be a number")
		}
		if speed < MinHoldSpeed || speed > MaxHoldSpeed {
			return fmt.Errorf("hold speed must be between %.2f and %.2f, got %.2f", MinHoldSpeed, MaxHoldSpeed, speed)
		}
		if steps := speed / HoldSpeedStep; steps != math.Trunc(steps) {
			return fmt.Errorf("hold speed must be a multiple of %.2f", HoldSpeedStep)
		}
		return nil
	},
	key.NetworkUserAgentMode: func(v any) error {
		switch v {
		case UserAgentProcess, UserAgentRequest:
			return nil
		default:
			return fmt.Errorf("unknown user agent mode %v, expected %s or %s", v, UserAgentProcess, UserAgentRequest)
		}
	},
}

// Validate runs the validator registered for key, if any.
func Validate(k string, v any) error {
	if validate, ok := Validators[k]; ok {
		return validate(v)
	}
	return nil
}
