package eventchat

// Theme defines semantic color mappings using ANSI color indices (0-15).
// The user's terminal theme determines the actual RGB values, so the app
// automatically matches any color scheme. A negative index means no color.
type Theme struct {
	UserMsg int // User message accent
	UserBg  int // User message background
	Error   int // Failure messages
	Muted   int // Status bar, placeholders, dates
	Accent  int // Headings, event titles
	Badge   int // Category badge background
	Link    int // Event URLs
}

// DefaultTheme returns the default ANSI color mapping.
func DefaultTheme() Theme {
	return Theme{
		UserMsg: 4,
		UserBg:  0,
		Error:   1,
		Muted:   8,
		Accent:  5,
		Badge:   8,
		Link:    6,
	}
}
