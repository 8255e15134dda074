package cli

// ErrorCode defines error types for CLI operations
type ErrorCode string

const (
	NoQuerySpecified     ErrorCode = "NoQuerySpecified"
	NoLibrarySpecified   ErrorCode = "NoLibrarySpecified"
	DocsNotCached        ErrorCode = "DocsNotCached"
	SetupIncomplete      ErrorCode = "SetupIncomplete"
	Context7Unavailable  ErrorCode = "Context7Unavailable"
	InvalidConfiguration ErrorCode = "InvalidConfiguration"
)

func (c ErrorCode) ErrorCode() string {
	return string(c)
}
