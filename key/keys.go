// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// DefinedFieldsCount represents the total cardinality of the application configuration schema.
const DefinedFieldsCount = 14

// Player Discovery - these keys govern how players are looked up on the session bus.
const (
	PlayersDefault    = "players.default"
	PlayersRetryDelay = "players.retry_delay"
)

// Progress Tracking - these keys configure the sampling of player progress.
const (
	ProgressInterval = "progress.interval"
)

// Event Streaming - these keys configure the event command.
const (
	EventsLimit = "events.limit"
)

// History Tracking - these keys configure the persistence of recently seen players.
const (
	HistorySave = "history.save"
)

// Iconography - these keys manage the visual rendering of UI symbols.
const (
	IconsVariant = "icons.variant"
)

// Terminal User Interface (TUI) - these keys define the watch view.
const (
	TUIShowVolume   = "tui.show_volume"
	TUIShowTrackIDs = "tui.show_track_ids"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics and auditing system.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment - these flags and settings govern the non-TUI application behavior.
const (
	CliColored      = "cli.colored"
	CliVersionCheck = "cli.version_check"
	CliFormat       = "cli.format"
)
