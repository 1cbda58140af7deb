// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// Cities - these keys control which municipality the interface starts with.
const (
	DefaultCity = "cities.default"
)

// Aggregation Service - these keys bound provider calls.
const (
	ServiceTimeout = "service.timeout"
)

// Address Search - these keys define the UI/UX parameters for address discovery.
const (
	SearchLimit                = "search.limit"
	SearchShowQuerySuggestions = "search.show_query_suggestions"
)

// Schedule Window - these keys define which pickup dates are requested and shown.
const (
	ScheduleLookBackDays = "schedule.look_back_days"
	ScheduleHorizonDays  = "schedule.horizon_days"
)

// Network - these keys configure the shared HTTP transport.
const (
	NetworkSpoofTLS = "network.spoof_tls"
)

// Providers - these keys govern loading of scripted city providers.
const (
	ProvidersCustom = "providers.custom"
)

// Iconography - these keys manage the visual rendering of UI symbols.
const (
	IconsVariant = "icons.variant"
)

// Terminal User Interface (TUI) - these keys define the primary interactive environment's styling.
const (
	TUISearchPromptString = "tui.search_prompt"
	TUIDateFormat         = "tui.date_format"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment - these flags and settings govern the non-TUI application behavior.
const (
	CliColored = "cli.colored"
)
