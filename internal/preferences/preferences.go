// Package preferences holds process-wide UI preference state: theme,
// accessibility contrast and font size, and the signed-in user.
package preferences

import "fmt"

// Persisted keys.
const (
	KeyTheme        = "theme"
	KeyContrastMode = "contrastMode"
	KeyFontSize     = "fontSize"
)

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

type ContrastMode string

const (
	ContrastNormal ContrastMode = "normal"
	ContrastHigh   ContrastMode = "high"
	ContrastHigher ContrastMode = "higher"
)

type FontSize string

const (
	FontNormal FontSize = "normal"
	FontLarge  FontSize = "large"
	FontXLarge FontSize = "xlarge"
)

func ParseTheme(v string) (Theme, error) {
	switch t := Theme(v); t {
	case ThemeLight, ThemeDark:
		return t, nil
	}
	return "", fmt.Errorf("unknown theme %q", v)
}

func ParseContrastMode(v string) (ContrastMode, error) {
	switch m := ContrastMode(v); m {
	case ContrastNormal, ContrastHigh, ContrastHigher:
		return m, nil
	}
	return "", fmt.Errorf("unknown contrast mode %q", v)
}

func ParseFontSize(v string) (FontSize, error) {
	switch s := FontSize(v); s {
	case FontNormal, FontLarge, FontXLarge:
		return s, nil
	}
	return "", fmt.Errorf("unknown font size %q", v)
}

type Preferences struct {
	Theme        Theme        `json:"theme"`
	ContrastMode ContrastMode `json:"contrastMode"`
	FontSize     FontSize     `json:"fontSize"`
}

func Defaults() Preferences {
	return Preferences{Theme: ThemeLight, ContrastMode: ContrastNormal, FontSize: FontNormal}
}

// Classes lists the presentation flags the preferences switch on.
func (p Preferences) Classes() []string {
	classes := []string{}
	if p.Theme == ThemeDark {
		classes = append(classes, "dark")
	}
	if p.ContrastMode != ContrastNormal && p.ContrastMode != "" {
		classes = append(classes, "contrast-"+string(p.ContrastMode))
	}
	if p.FontSize != FontNormal && p.FontSize != "" {
		classes = append(classes, "font-"+string(p.FontSize))
	}
	return classes
}
