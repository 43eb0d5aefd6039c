package network

import (
	"math/rand/v2"
	"net/http"

	"github.com/iridum-cli/iridum/config"
	"github.com/iridum-cli/iridum/constant"
	"github.com/samber/lo"
)

// HeaderFunc produces the headers attached to every page request.
type HeaderFunc func() http.Header

func browserHeaders(userAgent string) http.Header {
	h := make(http.Header)
	h.Set("User-Agent", userAgent)
	h.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	h.Set("Accept-Language", "it-IT,it;q=0.9,en;q=0.5")
	return h
}

// ProcessUserAgent picks one agent from the pool and keeps it for every call.
func ProcessUserAgent() HeaderFunc {
	agent := lo.Sample(constant.UserAgents)
	return func() http.Header {
		return browserHeaders(agent)
	}
}

// RotatingUserAgent picks a new agent on every call.
func RotatingUserAgent() HeaderFunc {
	return func() http.Header {
		return browserHeaders(constant.UserAgents[rand.IntN(len(constant.UserAgents))])
	}
}

// HeadersFor maps a configured user agent mode to its strategy.
func HeadersFor(mode string) HeaderFunc {
	if mode == config.UserAgentRequest {
		return RotatingUserAgent()
	}
	return ProcessUserAgent()
}
