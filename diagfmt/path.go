package diagfmt

import "path/filepath"

func formatPath(file string, mode PathMode, base string) string {
	if file == "" {
		return "<comment>"
	}
	switch mode {
	case PathModeAbsolute:
		if abs, err := filepath.Abs(file); err == nil {
			return abs
		}
	case PathModeRelative:
		if base == "" {
			return file
		}
		abs, err := filepath.Abs(file)
		if err != nil {
			return file
		}
		if rel, err := filepath.Rel(base, abs); err == nil {
			return rel
		}
	case PathModeBasename:
		return filepath.Base(file)
	}
	return file
}
