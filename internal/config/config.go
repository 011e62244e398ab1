package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/lipgloss"

	"hexpane/internal/grid"
)

type Grid struct {
	RowWidth     int `toml:"row_width"`
	OverscanRows int `toml:"overscan_rows"`
}

type Theme struct {
	OffsetColor         string `toml:"offset_color"`
	HeaderColor         string `toml:"header_color"`
	CursorBackground    string `toml:"cursor_background"`
	EditedColor         string `toml:"edited_color"`
	LegendBackground    string `toml:"legend_background"`
	LegendHighlight     string `toml:"legend_highlight"`
	BorderColor         string `toml:"border_color"`
	StatusErrorColor    string `toml:"status_error_color"`
	ModifiedBadgeColor  string `toml:"modified_badge_color"`
	FilenameBadgeColor  string `toml:"filename_badge_color"`
	ByteCountBadgeColor string `toml:"byte_count_badge_color"`
}

type Config struct {
	Grid  Grid  `toml:"grid"`
	Theme Theme `toml:"theme"`
}

func DefaultConfig() *Config {
	return &Config{
		Grid: Grid{
			RowWidth:     grid.DefaultRowWidth,
			OverscanRows: grid.DefaultOverscanRows,
		},
		Theme: Theme{
			OffsetColor:         "#5F87AF",
			HeaderColor:         "#87AFAF",
			CursorBackground:    "#0000FF",
			EditedColor:         "#FFAA00",
			LegendBackground:    "#0000FF",
			LegendHighlight:     "#FF0000",
			BorderColor:         "#0000FF",
			StatusErrorColor:    "#FF0000",
			ModifiedBadgeColor:  "#FF0000",
			FilenameBadgeColor:  "#00FFFF",
			ByteCountBadgeColor: "#AAAAAA",
		},
	}
}

func ConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "hexpane.toml"
	}
	return filepath.Join(home, ".config", "hexpane", "hexpane.toml")
}

// Load reads the config file, falling back to defaults when it does not
// exist. Out-of-range grid values also fall back rather than erroring.
func Load() (*Config, error) {
	cfg := DefaultConfig()
	path := ConfigPath()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return DefaultConfig(), err
	}

	cfg.normalize()
	return cfg, nil
}

func (c *Config) normalize() {
	if c.Grid.RowWidth < 1 {
		c.Grid.RowWidth = grid.DefaultRowWidth
	}
	if c.Grid.OverscanRows < 0 {
		c.Grid.OverscanRows = grid.DefaultOverscanRows
	}
}

func (c *Config) Save() error {
	path := ConfigPath()
	dir := filepath.Dir(path)

	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(c)
}

type Styles struct {
	Offset          lipgloss.Style
	Header          lipgloss.Style
	Normal          lipgloss.Style
	Cursor          lipgloss.Style
	Edited          lipgloss.Style
	Legend          lipgloss.Style
	LegendHighlight lipgloss.Style
	Border          lipgloss.Style
	StatusError     lipgloss.Style
	StatusInfo      lipgloss.Style
	ModifiedBadge   lipgloss.Style
	FilenameBadge   lipgloss.Style
	ByteCountBadge  lipgloss.Style
}

func NewStyles(theme *Theme) *Styles {
	return &Styles{
		Offset: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.OffsetColor)),
		Header: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.HeaderColor)),
		Normal: lipgloss.NewStyle(),
		Cursor: lipgloss.NewStyle().
			Background(lipgloss.Color(theme.CursorBackground)).
			Foreground(lipgloss.Color("#FFFFFF")),
		Edited: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.EditedColor)).
			Bold(true),
		Legend: lipgloss.NewStyle().
			Background(lipgloss.Color(theme.LegendBackground)).
			Foreground(lipgloss.Color("#FFFFFF")),
		LegendHighlight: lipgloss.NewStyle().
			Background(lipgloss.Color(theme.LegendBackground)).
			Foreground(lipgloss.Color(theme.LegendHighlight)).
			Bold(true),
		Border: lipgloss.NewStyle().
			BorderForeground(lipgloss.Color(theme.BorderColor)),
		StatusError: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.StatusErrorColor)).
			Bold(true),
		StatusInfo: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#AAAAAA")),
		ModifiedBadge: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.ModifiedBadgeColor)).
			Bold(true),
		FilenameBadge: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.FilenameBadgeColor)),
		ByteCountBadge: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.ByteCountBadgeColor)),
	}
}
