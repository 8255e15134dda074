package context7

// ErrorCode defines error types for Context7 operations
type ErrorCode string

const (
	// ErrUnavailable represents errors when the Context7 server cannot be
	// launched or does not answer the handshake
	ErrUnavailable ErrorCode = "Context7Unavailable"

	// ErrLibraryNotFound represents errors when a library cannot be resolved
	ErrLibraryNotFound ErrorCode = "LibraryNotFound"

	// ErrToolFailed represents errors reported by a Context7 tool call
	ErrToolFailed ErrorCode = "ToolFailed"

	// ErrSourceFetch represents errors while fetching a docs source page
	ErrSourceFetch ErrorCode = "SourceFetch"
)

func (c ErrorCode) ErrorCode() string {
	return string(c)
}
