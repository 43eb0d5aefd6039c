package icon

import (
	"github.com/iridum-cli/iridum/color"
	"github.com/iridum-cli/iridum/style"
)

type Icon int

const (
	Fail Icon = iota + 1
	Success
	Progress
	Search
	Play
	Resume
	Link
	Bookmark
	Favorite
	Finished
	Trash
	Config
)

var icons = map[Icon]*iconDef{
	Fail: {
		emoji:   "💀",
		nerd:    style.Fg(color.Red)(""),
		plain:   style.Fg(color.Red)("X"),
		kaomoji: style.Fg(color.Red)("(×﹏×)"),
		squares: style.Fg(color.Red)("▇"),
	},
	Success: {
		emoji:   "🎉",
		nerd:    style.Fg(color.Green)(""),
		plain:   style.Fg(color.Green)("✓"),
		kaomoji: style.Fg(color.Green)("(ᵔ◡ᵔ)"),
		squares: style.Fg(color.Green)("▇"),
	},
	Progress: {
		emoji:   "👾",
		nerd:    style.Fg(color.Blue)(""),
		plain:   style.Fg(color.Blue)("~"),
		kaomoji: style.Fg(color.Blue)("(・_・)"),
		squares: style.Fg(color.Blue)("▇"),
	},
	Search: {
		emoji:   "🔍",
		nerd:    "",
		plain:   "?",
		kaomoji: "(ʘ_ʘ)",
		squares: "▇",
	},
	Play: {
		emoji:   "🎬",
		nerd:    style.Fg(color.Green)(""),
		plain:   style.Fg(color.Green)(">"),
		kaomoji: style.Fg(color.Green)("ヽ(・∀・)ﾉ"),
		squares: style.Fg(color.Green)("▇"),
	},
	Resume: {
		emoji:   "⏩",
		nerd:    style.Fg(color.Cyan)(""),
		plain:   style.Fg(color.Cyan)(">>"),
		kaomoji: style.Fg(color.Cyan)("(｀・ω・´)"),
		squares: style.Fg(color.Cyan)("▇"),
	},
	Link: {
		emoji:   "🔗",
		nerd:    "",
		plain:   "@",
		kaomoji: "(￣ー￣)",
		squares: "▇",
	},
	Bookmark: {
		emoji:   "🔖",
		nerd:    style.Fg(color.Purple)(""),
		plain:   style.Fg(color.Purple)("+"),
		kaomoji: style.Fg(color.Purple)("(◕‿◕)"),
		squares: style.Fg(color.Purple)("▇"),
	},
	Favorite: {
		emoji:   "⭐",
		nerd:    style.Fg(color.Yellow)(""),
		plain:   style.Fg(color.Yellow)("*"),
		kaomoji: style.Fg(color.Yellow)("(♥ω♥)"),
		squares: style.Fg(color.Yellow)("▇"),
	},
	Finished: {
		emoji:   "🏁",
		nerd:    style.Fg(color.Green)(""),
		plain:   style.Fg(color.Green)("#"),
		kaomoji: style.Fg(color.Green)("(⌐■_■)"),
		squares: style.Fg(color.Green)("▇"),
	},
	Trash: {
		emoji:   "🗑️",
		nerd:    style.Fg(color.Red)(""),
		plain:   style.Fg(color.Red)("-"),
		kaomoji: style.Fg(color.Red)("(╯°□°)╯"),
		squares: style.Fg(color.Red)("▇"),
	},
	Config: {
		emoji:   "⚙️",
		nerd:    "",
		plain:   "=",
		kaomoji: "(•̀ᴗ•́)",
		squares: "▇",
	},
}
