package types

// Language is the canonical tag used to pair files with applicable rules.
// Unrecognized file extensions pass through as their own tag, which no
// builtin rule declares, so such files never match anything.
type Language string

const (
	LangJS  Language = "js"
	LangTS  Language = "ts"
	LangPy  Language = "py"
	LangGo  Language = "go"
	LangSQL Language = "sql"
)
