package icon

// Icon identifies a symbol.
type Icon int

const (
	Lua Icon = iota
	Go
	Success
	Fail
	Search
	City
	Home
	Calendar
	Today
	Mark
	Progress
)

var icons = map[Icon]*iconDef{
	Lua: {
		emoji:   "🌙",
		nerd:    "",
		plain:   "Lua",
		kaomoji: "(◕‿◕)",
		squares: "▣",
	},
	Go: {
		emoji:   "🐹",
		nerd:    "",
		plain:   "Go",
		kaomoji: "(ᵔᴥᵔ)",
		squares: "■",
	},
	Success: {
		emoji:   "🎉",
		nerd:    "",
		plain:   "OK",
		kaomoji: "(ᵔ◡ᵔ)",
		squares: "🟩",
	},
	Fail: {
		emoji:   "💀",
		nerd:    "",
		plain:   "X",
		kaomoji: "(×_×)",
		squares: "🟥",
	},
	Search: {
		emoji:   "🔍",
		nerd:    "",
		plain:   "?",
		kaomoji: "(・・?)",
		squares: "🟦",
	},
	City: {
		emoji:   "🏙",
		nerd:    "",
		plain:   "#",
		kaomoji: "(⌐■_■)",
		squares: "🟪",
	},
	Home: {
		emoji:   "🏠",
		nerd:    "",
		plain:   "@",
		kaomoji: "(^_^)",
		squares: "🟫",
	},
	Calendar: {
		emoji:   "🗓",
		nerd:    "",
		plain:   "=",
		kaomoji: "(￣ー￣)",
		squares: "🟨",
	},
	Today: {
		emoji:   "🚛",
		nerd:    "",
		plain:   "!",
		kaomoji: "(ﾉ◕ヮ◕)ﾉ",
		squares: "🟧",
	},
	Mark: {
		emoji:   "✅",
		nerd:    "",
		plain:   "*",
		kaomoji: "(•̀ᴗ•́)",
		squares: "▪",
	},
	Progress: {
		emoji:   "⏳",
		nerd:    "",
		plain:   "~",
		kaomoji: "(・_・;)",
		squares: "⬜",
	},
}
