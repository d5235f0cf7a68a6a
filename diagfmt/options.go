// Package diagfmt renders diagnostics for people and for tools.
package diagfmt

// PathMode specifies how file paths are displayed.
type PathMode uint8

const (
	// PathModeAsIs prints the file name as it was reported.
	PathModeAsIs PathMode = iota
	PathModeAbsolute
	// PathModeRelative prints paths relative to BaseDir.
	PathModeRelative
	PathModeBasename
)

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color    bool
	PathMode PathMode
	BaseDir  string
	// Context prints the offending source line with a caret underline.
	Context bool
	// TabWidth is the display width of a tab in the underline; 0 keeps
	// tabs as they are.
	TabWidth int
}

// JSONOpts configures JSON output of diagnostics.
type JSONOpts struct {
	PathMode PathMode
	BaseDir  string
	// Max truncates the output; 0 means no limit.
	Max int
}

// Sources returns the text of a file, if it is known.
type Sources func(file string) (string, bool)

// MapSources serves file contents from a map.
func MapSources(files map[string]string) Sources {
	return func(file string) (string, bool) {
		text, ok := files[file]
		return text, ok
	}
}
