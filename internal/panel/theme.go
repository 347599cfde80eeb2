package panel

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"devconsole/internal/data/embedded"
	"devconsole/internal/logger"
	"devconsole/pkg/consoletypes"
)

// Theme holds the styles used to draw log records.
type Theme struct {
	Name    string
	Message lipgloss.Style
	Light   lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Prompt  lipgloss.Style
}

var themeFiles = map[string][]byte{
	"default": embedded.DefaultThemeData,
	"plain":   embedded.PlainThemeData,
}

// ThemeNames lists the embedded themes.
func ThemeNames() []string {
	names := make([]string, 0, len(themeFiles))
	for name := range themeFiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ErrUnknownTheme is returned by CheckTheme for names with no embedded theme.
var ErrUnknownTheme = errors.New("unknown theme")

// CheckTheme reports whether name is one of ThemeNames.
func CheckTheme(name string) error {
	if _, ok := themeFiles[name]; ok {
		return nil
	}
	return fmt.Errorf("%w %q, expected one of %s", ErrUnknownTheme, name, strings.Join(ThemeNames(), "|"))
}

// LoadTheme builds the named embedded theme for r. Unknown or broken themes
// fall back to a style-less theme.
func LoadTheme(name string, r *lipgloss.Renderer) *Theme {
	data, ok := themeFiles[name]
	if !ok {
		logger.Warn("Unknown theme, using plain", "theme", name, "available", ThemeNames())
		return fallbackTheme(name, r)
	}
	theme, err := parseTheme(data, r)
	if err != nil {
		logger.Error("Failed to load theme", "theme", name, "error", err)
		return fallbackTheme(name, r)
	}
	return theme
}

func parseTheme(data []byte, r *lipgloss.Renderer) (*Theme, error) {
	var cfg consoletypes.ThemeConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse theme file: %w", err)
	}
	return &Theme{
		Name:    cfg.Name,
		Message: createStyle(r, cfg.Styles.Message),
		Light:   createStyle(r, cfg.Styles.Light),
		Warning: createStyle(r, cfg.Styles.Warning),
		Error:   createStyle(r, cfg.Styles.Error),
		Prompt:  createStyle(r, cfg.Styles.Prompt),
	}, nil
}

// Style returns the style for a record of the given severity.
func (t *Theme) Style(s consoletypes.Severity) lipgloss.Style {
	switch s {
	case consoletypes.SeverityLight:
		return t.Light
	case consoletypes.SeverityWarning:
		return t.Warning
	case consoletypes.SeverityError:
		return t.Error
	default:
		return t.Message
	}
}

func createStyle(r *lipgloss.Renderer, cfg consoletypes.StyleConfig) lipgloss.Style {
	style := r.NewStyle()

	if cfg.Foreground != nil {
		if color := parseColor(cfg.Foreground); color != nil {
			style = style.Foreground(color)
		}
	}
	if cfg.Background != nil {
		if color := parseColor(cfg.Background); color != nil {
			style = style.Background(color)
		}
	}

	if cfg.Bold != nil && *cfg.Bold {
		style = style.Bold(true)
	}
	if cfg.Italic != nil && *cfg.Italic {
		style = style.Italic(true)
	}
	if cfg.Underline != nil && *cfg.Underline {
		style = style.Underline(true)
	}
	if cfg.Faint != nil && *cfg.Faint {
		style = style.Faint(true)
	}
	return style
}

// parseColor accepts a color string or a map with light and dark keys.
func parseColor(colorValue interface{}) lipgloss.TerminalColor {
	switch v := colorValue.(type) {
	case string:
		return lipgloss.Color(v)
	case map[string]interface{}:
		if light, hasLight := v["light"].(string); hasLight {
			if dark, hasDark := v["dark"].(string); hasDark {
				return lipgloss.AdaptiveColor{Light: light, Dark: dark}
			}
		}
		return nil
	default:
		return nil
	}
}

func fallbackTheme(name string, r *lipgloss.Renderer) *Theme {
	return &Theme{
		Name:    name,
		Message: r.NewStyle(),
		Light:   r.NewStyle(),
		Warning: r.NewStyle(),
		Error:   r.NewStyle(),
		Prompt:  r.NewStyle(),
	}
}
