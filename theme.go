package ragchat

// Theme defines semantic color mappings using ANSI color indices (0-15).
// The user's terminal theme determines the actual RGB values, so the app
// automatically matches any color scheme. A negative index means no color.
type Theme struct {
	Query   int // User query accent
	Source  int // Source list header
	Error   int // Error messages
	Success int // Success indicators
	Muted   int // Status bar, placeholders, gutters
	CodeBg  int // Code block background
	Accent  int // Headings, links
	Quote   int // Blockquote text
	Cursor  int // Reveal cursor
}

// DefaultTheme returns the default ANSI color mapping.
func DefaultTheme() Theme {
	return ThemeFor(ThemeLight)
}

// ThemeFor returns the color mapping for mode. Dark mode uses the bright
// variants so text stays readable on dark backgrounds.
func ThemeFor(mode ThemeMode) Theme {
	if mode == ThemeDark {
		return Theme{
			Query:   12,
			Source:  11,
			Error:   9,
			Success: 10,
			Muted:   8,
			CodeBg:  0,
			Accent:  13,
			Quote:   14,
			Cursor:  15,
		}
	}
	return Theme{
		Query:   4,
		Source:  3,
		Error:   1,
		Success: 2,
		Muted:   8,
		CodeBg:  -1,
		Accent:  5,
		Quote:   6,
		Cursor:  0,
	}
}
