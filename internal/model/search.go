package model

// SearchOptions configures a single grep call. Each field is independent;
// the zero value is not usable, use DefaultSearchOptions as the base.
type SearchOptions struct {
	// Regex compiles the pattern as a regular expression. When false the
	// pattern is matched as a literal substring.
	Regex bool

	// CaseSensitive controls case sensitivity of the match.
	CaseSensitive bool

	// Context is the number of surrounding lines to attach on each side of
	// a matching line, clipped at file boundaries.
	Context int

	// MaxResults caps the total matches returned by the whole call.
	MaxResults int

	// FileTypes is an extension allow-list for project scans ("go" or
	// ".go"). Empty means every text-readable file is eligible.
	FileTypes []string

	// Exclude holds extra glob patterns merged with the sandbox exclusion
	// set for this call only.
	Exclude []string
}

// DefaultSearchOptions returns the option defaults: regex on, case-sensitive,
// no context, at most 100 matches, no type filter.
func DefaultSearchOptions() SearchOptions {
	return SearchOptions{
		Regex:         true,
		CaseSensitive: true,
		Context:       0,
		MaxResults:    100,
	}
}

// SearchMatch is one matching line, together with its surrounding context
// and any regex capture groups.
type SearchMatch struct {
	// Path is the containing file, relative to the project root.
	Path RelPath

	// Line is the 1-based number of the matching line.
	Line int

	// Text is the matching line verbatim.
	Text string

	// Before and After carry up to Context lines on each side.
	Before []string
	After  []string

	// Captures holds the submatches for each capture group of a regex
	// pattern, in group order. Empty for literal patterns and group-less
	// regexes.
	Captures []string
}
