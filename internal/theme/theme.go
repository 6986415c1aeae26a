// Package theme holds the fixed registry of named chart color themes. The
// set is closed: only the themes compiled in here are ever valid, and the
// CLI validates against Names. Resolve is deliberately lenient instead,
// substituting the default theme for unknown names, so programmatic
// callers (chart definition files included) can never fail on a theme.
package theme

import (
	"image/color"
	"sort"
)

// Theme is a named pair of chart colors.
type Theme struct {
	Name       string
	Background color.NRGBA
	Foreground color.NRGBA
}

// DefaultName is the theme substituted for unregistered names.
const DefaultName = "dark"

var registry = map[string]Theme{
	"dark": {
		Name:       "dark",
		Background: color.NRGBA{A: 0xff},
		Foreground: color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
	},
	"light": {
		Name:       "light",
		Background: color.NRGBA{R: 0xf2, G: 0xf2, B: 0xf2, A: 0xff},
		Foreground: color.NRGBA{R: 0x11, G: 0x11, B: 0x11, A: 0xff},
	},
}

// Resolve returns the registered theme for name, or the default theme when
// name is not registered. It never fails.
func Resolve(name string) Theme {
	if t, ok := registry[name]; ok {
		return t
	}
	return registry[DefaultName]
}

// Registered reports whether name is a registered theme name.
func Registered(name string) bool {
	_, ok := registry[name]
	return ok
}

// Names returns the registered theme names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
