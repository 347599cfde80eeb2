package consoletypes

// ThemeConfig is a panel theme as loaded from YAML.
type ThemeConfig struct {
	// Name is the theme identifier (e.g., "default", "plain")
	Name string `yaml:"name"`

	Description string `yaml:"description,omitempty"`

	Styles ThemeStyles `yaml:"styles"`
}

// ThemeStyles holds one style per log severity plus the prompt.
type ThemeStyles struct {
	Message StyleConfig `yaml:"message"`
	Light   StyleConfig `yaml:"light"`
	Warning StyleConfig `yaml:"warning"`
	Error   StyleConfig `yaml:"error"`
	Prompt  StyleConfig `yaml:"prompt"`
}

// StyleConfig describes one lipgloss style.
type StyleConfig struct {
	// Foreground color - can be hex color, ANSI number, or a light/dark map
	Foreground interface{} `yaml:"foreground,omitempty"`

	// Background color - same forms as Foreground
	Background interface{} `yaml:"background,omitempty"`

	Bold      *bool `yaml:"bold,omitempty"`
	Italic    *bool `yaml:"italic,omitempty"`
	Underline *bool `yaml:"underline,omitempty"`
	Faint     *bool `yaml:"faint,omitempty"`
}
