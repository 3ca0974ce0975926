package styles

// Nerd Font icons (requires a Nerd Font to display correctly)
const (
	IconVersion   = "" // tag
	IconGitBranch = "" // git branch
	IconCalendar  = "" // calendar
	IconGithub    = "" // github
	IconGo        = "" // go gopher

	IconCheck    = "" // check
	IconX        = "" // x
	IconInfo     = "" // info
	IconDatabase = "" // database
	IconConfig   = "" // config

	// Layout
	IconSplit = "" // columns
	IconPane  = "" // window
)
