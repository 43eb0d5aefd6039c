// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// DefinedFieldsCount represents the total cardinality of the application configuration schema.
const DefinedFieldsCount = 21

// Site - the streaming website every page and stream is resolved against.
const (
	SiteBaseDomain = "site.base_domain"
)

// Stream resolution.
const (
	StreamPatch     = "stream.patch"
	ResolverWorkers = "resolver.workers"
)

// Networking - how page requests identify themselves.
const (
	NetworkUserAgentMode  = "network.user_agent_mode"
	NetworkTLSFingerprint = "network.tls_fingerprint"
)

// Media Playback - these keys maintain the state and configuration for external video players.
const (
	Player               = "player.default"
	PlayerHoldSpeed      = "player.hold_speed"
	PlayerForceLandscape = "player.force_landscape"
)

// Display toggles applied to title details.
const (
	DisplayShowOriginalTitle = "display.show_original_title"
	DisplayShowCast          = "display.show_cast"
	DisplayShowDirector      = "display.show_director"
)

// History Tracking - these keys configure the persistence of media consumption state.
const (
	HistorySaveProgress = "history.save_progress"
	HistorySaveQueries  = "history.save_queries"
	ProgressMaxEntries  = "progress.max_entries"
)

// Search Interaction - these keys define the parameters for search discovery.
const (
	SearchShowQuerySuggestions = "search.show_query_suggestions"
)

// Iconography - these keys manage the visual rendering of UI symbols.
const (
	IconsVariant = "icons.variant"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics and auditing system.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment.
const (
	CliColored      = "cli.colored"
	CliVersionCheck = "cli.version_check"
)
