package icon

// Icon identifies a symbol in the registry.
type Icon int

const (
	Fail Icon = iota
	Success
	Warn
	Question
	Progress
	Player
	Track
	Playing
	Paused
	Stopped
	Shuffle
	Loop
	Volume
)

var icons = map[Icon]*iconDef{
	Fail: {
		emoji:   "💀",
		nerd:    "",
		plain:   "X",
		kaomoji: "(×_×)",
		squares: "🟥",
	},
	Success: {
		emoji:   "🎉",
		nerd:    "",
		plain:   "OK",
		kaomoji: "(ᵔᴥᵔ)",
		squares: "🟩",
	},
	Warn: {
		emoji:   "⚠️",
		nerd:    "",
		plain:   "!",
		kaomoji: "(¬_¬)",
		squares: "🟨",
	},
	Question: {
		emoji:   "🤔",
		nerd:    "",
		plain:   "?",
		kaomoji: "(°ロ°)",
		squares: "🟦",
	},
	Progress: {
		emoji:   "👾",
		nerd:    "",
		plain:   "~",
		kaomoji: "(o_O)",
		squares: "🟪",
	},
	Player: {
		emoji:   "📻",
		nerd:    "",
		plain:   "*",
		kaomoji: "(♪)",
		squares: "⬛",
	},
	Track: {
		emoji:   "🎵",
		nerd:    "",
		plain:   "-",
		kaomoji: "♪",
		squares: "▪️",
	},
	Playing: {
		emoji:   "▶️",
		nerd:    "",
		plain:   ">",
		kaomoji: "ヽ(♪)ノ",
		squares: "🟩",
	},
	Paused: {
		emoji:   "⏸️",
		nerd:    "",
		plain:   "||",
		kaomoji: "(-_-)",
		squares: "🟨",
	},
	Stopped: {
		emoji:   "⏹️",
		nerd:    "",
		plain:   "[]",
		kaomoji: "(._.)",
		squares: "🟥",
	},
	Shuffle: {
		emoji:   "🔀",
		nerd:    "",
		plain:   "shuffle",
		kaomoji: "(@_@)",
		squares: "🔀",
	},
	Loop: {
		emoji:   "🔁",
		nerd:    "",
		plain:   "loop",
		kaomoji: "(o.o)",
		squares: "🔁",
	},
	Volume: {
		emoji:   "🔊",
		nerd:    "",
		plain:   "vol",
		kaomoji: "(ﾟoﾟ)",
		squares: "🔊",
	},
}
