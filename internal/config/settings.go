// Package config holds the platform settings record and its flat
// "name value" settings file.
package config

import (
	"strconv"

	"github.com/brogue-touch/brogue_touch/internal/core"
)

// Keyboard visibility policies.
const (
	KeyboardNever    = 0
	KeyboardOnDemand = 1
	KeyboardAlways   = 2
)

// Zoom modes.
const (
	ZoomStatic       = 0
	ZoomFollowPlayer = 1
)

// Texture filter modes.
const (
	FilterNearest     = 0
	FilterLinear      = 1
	FilterAnisotropic = 2
)

// Settings is the flat record of platform options.
type Settings struct {
	CustomCellWidth     float64
	CustomCellHeight    float64
	CustomScreenWidth   int
	CustomScreenHeight  int
	ForcePortrait       bool
	DoubleTapLock       bool
	DoubleTapInterval   int // ms
	DynamicColors       bool
	DpadEnabled         bool
	DpadWidth           int
	DpadXPos            int
	DpadYPos            int
	AllowDpadModeChange bool
	DefaultDpadMode     bool // true = movement
	LongPressInterval   int  // ms
	DpadTransparency    int  // alpha, 0-255
	KeyboardVisibility  int
	ZoomMode            int
	InitZoom            float64
	InitZoomToggle      bool
	MaxZoom             float64
	SmartZoom           bool
	LeftPanelSmartZoom  bool
	FilterMode          int
	DefaultGraphicsMode int
	TilesAnimation      bool
	BlendFullTiles      bool

	// Runtime state, never written to the settings file.
	DpadMode        bool
	RestartGame     bool
	SettingsChanged bool
}

// Defaults returns the mobile-friendly default settings.
func Defaults() *Settings {
	return &Settings{
		DoubleTapLock:       true,
		DoubleTapInterval:   500,
		DynamicColors:       true,
		DpadEnabled:         true,
		AllowDpadModeChange: true,
		DefaultDpadMode:     true,
		LongPressInterval:   750,
		DpadTransparency:    75,
		KeyboardVisibility:  KeyboardOnDemand,
		ZoomMode:            ZoomFollowPlayer,
		InitZoom:            2.0,
		MaxZoom:             4.0,
		SmartZoom:           true,
		LeftPanelSmartZoom:  true,
		FilterMode:          FilterAnisotropic,
		DefaultGraphicsMode: 1,
		TilesAnimation:      true,
		BlendFullTiles:      true,
		DpadMode:            true,
	}
}

// ResetDefaults reapplies the touchscreen-optimized subset of the defaults.
// Fields outside that subset keep their current values.
func (s *Settings) ResetDefaults() {
	s.DpadEnabled = true
	s.DefaultGraphicsMode = 1
	s.ZoomMode = ZoomFollowPlayer
	s.InitZoom = 2.0
	s.MaxZoom = 4.0
	s.SmartZoom = true
	s.DpadMode = s.DefaultDpadMode
}

// GraphicsMode maps the persisted graphics mode number to a core mode.
func (s *Settings) GraphicsMode() core.GraphicsMode {
	switch s.DefaultGraphicsMode {
	case 1:
		return core.TilesGraphics
	case 2:
		return core.HybridGraphics
	default:
		return core.TextGraphics
	}
}

type fieldKind int

const (
	kindInt fieldKind = iota
	kindFloat
	kindBool
)

type field struct {
	name string
	kind fieldKind
	ptr  func(s *Settings) any
}

// fields lists every setting in file-name form.
var fields = []field{
	{"custom_cell_width", kindFloat, func(s *Settings) any { return &s.CustomCellWidth }},
	{"custom_cell_height", kindFloat, func(s *Settings) any { return &s.CustomCellHeight }},
	{"custom_screen_width", kindInt, func(s *Settings) any { return &s.CustomScreenWidth }},
	{"custom_screen_height", kindInt, func(s *Settings) any { return &s.CustomScreenHeight }},
	{"force_portrait", kindBool, func(s *Settings) any { return &s.ForcePortrait }},
	{"double_tap_lock", kindBool, func(s *Settings) any { return &s.DoubleTapLock }},
	{"double_tap_interval", kindInt, func(s *Settings) any { return &s.DoubleTapInterval }},
	{"dynamic_colors", kindBool, func(s *Settings) any { return &s.DynamicColors }},
	{"dpad_enabled", kindBool, func(s *Settings) any { return &s.DpadEnabled }},
	{"dpad_width", kindInt, func(s *Settings) any { return &s.DpadWidth }},
	{"dpad_x_pos", kindInt, func(s *Settings) any { return &s.DpadXPos }},
	{"dpad_y_pos", kindInt, func(s *Settings) any { return &s.DpadYPos }},
	{"allow_dpad_mode_change", kindBool, func(s *Settings) any { return &s.AllowDpadModeChange }},
	{"default_dpad_mode", kindBool, func(s *Settings) any { return &s.DefaultDpadMode }},
	{"long_press_interval", kindInt, func(s *Settings) any { return &s.LongPressInterval }},
	{"dpad_transparency", kindInt, func(s *Settings) any { return &s.DpadTransparency }},
	{"keyboard_visibility", kindInt, func(s *Settings) any { return &s.KeyboardVisibility }},
	{"zoom_mode", kindInt, func(s *Settings) any { return &s.ZoomMode }},
	{"init_zoom", kindFloat, func(s *Settings) any { return &s.InitZoom }},
	{"init_zoom_toggle", kindBool, func(s *Settings) any { return &s.InitZoomToggle }},
	{"max_zoom", kindFloat, func(s *Settings) any { return &s.MaxZoom }},
	{"smart_zoom", kindBool, func(s *Settings) any { return &s.SmartZoom }},
	{"left_panel_smart_zoom", kindBool, func(s *Settings) any { return &s.LeftPanelSmartZoom }},
	{"filter_mode", kindInt, func(s *Settings) any { return &s.FilterMode }},
	{"default_graphics_mode", kindInt, func(s *Settings) any { return &s.DefaultGraphicsMode }},
	{"tiles_animation", kindBool, func(s *Settings) any { return &s.TilesAnimation }},
	{"blend_full_tiles", kindBool, func(s *Settings) any { return &s.BlendFullTiles }},
}

func lookupField(name string) (field, bool) {
	for _, f := range fields {
		if f.name == name {
			return f, true
		}
	}
	return field{}, false
}

// Set assigns a setting from its textual value. An empty name resets the
// defaults. Unknown names are ignored and reported as false.
func (s *Settings) Set(name, value string) bool {
	if name == "" {
		s.ResetDefaults()
		return true
	}
	f, ok := lookupField(name)
	if !ok {
		return false
	}
	switch p := f.ptr(s).(type) {
	case *int:
		*p = atoi(value)
	case *float64:
		*p = atof(value)
	case *bool:
		*p = atoi(value) != 0
	}
	if name == "default_dpad_mode" {
		s.DpadMode = s.DefaultDpadMode
	}
	return true
}

// Lookup returns the textual value of a setting.
func (s *Settings) Lookup(name string) (string, bool) {
	f, ok := lookupField(name)
	if !ok {
		return "", false
	}
	return formatValue(f.ptr(s)), true
}

// Names returns every setting name in a stable order.
func Names() []string {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.name
	}
	return names
}

// Map returns every setting keyed by name, in its persisted textual form.
func (s *Settings) Map() map[string]string {
	m := make(map[string]string, len(fields))
	for _, f := range fields {
		m[f.name] = formatValue(f.ptr(s))
	}
	return m
}

func formatValue(p any) string {
	switch v := p.(type) {
	case *int:
		return strconv.Itoa(*v)
	case *float64:
		return strconv.FormatFloat(*v, 'f', 1, 64)
	case *bool:
		if *v {
			return "1"
		}
		return "0"
	}
	return ""
}

// atoi parses like C atoi: optional leading whitespace and sign, then the
// longest run of digits. No digits yields 0.
func atoi(s string) int {
	i := skipSpace(s, 0)
	neg := false
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		neg = s[i] == '-'
		i++
	}
	n := 0
	for ; i < len(s) && s[i] >= '0' && s[i] <= '9'; i++ {
		n = n*10 + int(s[i]-'0')
	}
	if neg {
		return -n
	}
	return n
}

// atof parses like C atof: the longest valid decimal prefix, or 0.
func atof(s string) float64 {
	start := skipSpace(s, 0)
	i := start
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := 0
	for ; i < len(s) && s[i] >= '0' && s[i] <= '9'; i++ {
		digits++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for ; i < len(s) && s[i] >= '0' && s[i] <= '9'; i++ {
			digits++
		}
	}
	if digits == 0 {
		return 0
	}
	end := i
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		k := j
		for ; k < len(s) && s[k] >= '0' && s[k] <= '9'; k++ {
		}
		if k > j {
			end = k
		}
	}
	f, err := strconv.ParseFloat(s[start:end], 64)
	if err != nil {
		return 0
	}
	return f
}

func skipSpace(s string, i int) int {
	for i < len(s) && (s[i] == ' ' || s[i] == '\t' || s[i] == '\n' || s[i] == '\r' || s[i] == '\v' || s[i] == '\f') {
		i++
	}
	return i
}
