package layout

import (
	"testing"

	"github.com/brogue-touch/brogue_touch/internal/config"
)

func TestZoomLevelClamped(t *testing.T) {
	s := config.Defaults()
	z := NewZoom(s)
	if z.Level != 2 || z.Enabled {
		t.Fatalf("NewZoom() = level %v enabled %v", z.Level, z.Enabled)
	}
	z.SetLevel(10)
	if z.Level != 4 {
		t.Errorf("SetLevel(10) = %v, want max 4", z.Level)
	}
	z.SetLevel(0.2)
	if z.Level != 1 {
		t.Errorf("SetLevel(0.2) = %v, want 1", z.Level)
	}
}

func TestZoomResetAppliesNewSettings(t *testing.T) {
	s := config.Defaults()
	z := NewZoom(s)
	z.Focus(30, 10)
	z.SetLevel(3)

	s.InitZoom = 1.5
	s.MaxZoom = 2
	s.ZoomMode = 0
	s.SmartZoom = false
	s.InitZoomToggle = true
	z.Reset(s)
	if z.Level != 1.5 || z.Max != 2 || z.Mode != 0 || z.Clamp || !z.Enabled {
		t.Errorf("after Reset = %+v", z)
	}
	if z.focusX != 30 || z.focusY != 10 {
		t.Errorf("Reset moved focus to %d,%d", z.focusX, z.focusY)
	}
}

func TestZoomInactiveViewportIsGrid(t *testing.T) {
	s := config.Defaults()
	l := Compute(1000, 340, s)
	z := NewZoom(s)
	if v := z.Viewport(l); v != l.Grid {
		t.Errorf("disabled zoom viewport = %+v, want grid %+v", v, l.Grid)
	}
	z.Toggle()
	z.SetLevel(1)
	if v := z.Viewport(l); v != l.Grid {
		t.Errorf("level 1 viewport = %+v, want grid", v)
	}
}

func TestZoomFollowsFocus(t *testing.T) {
	s := config.Defaults()
	s.InitZoomToggle = true
	l := Compute(1000, 340, s)
	z := NewZoom(s)
	z.Focus(60, 15)

	v := z.Viewport(l)
	// focus centre pixel is (605, 155); viewport is 395x145.
	want := Rect{X: 605 - 197, Y: 155 - 72, W: 395, H: 145}
	if v != want {
		t.Errorf("Viewport() = %+v, want %+v", v, want)
	}
}

func TestZoomSmartClampKeepsViewportInsideGrid(t *testing.T) {
	s := config.Defaults()
	s.InitZoomToggle = true
	l := Compute(1000, 340, s)
	z := NewZoom(s)
	z.Focus(99, 33)

	v := z.Viewport(l)
	if v.X+v.W != l.Grid.X+l.Grid.W || v.Y+v.H != l.Grid.Y+l.Grid.H {
		t.Errorf("clamped viewport %+v not flush with grid %+v", v, l.Grid)
	}

	z.Clamp = false
	v = z.Viewport(l)
	if v.X+v.W <= l.Grid.X+l.Grid.W {
		t.Errorf("unclamped viewport %+v should extend past the grid", v)
	}
}

func TestZoomStaticCentresOnGrid(t *testing.T) {
	s := config.Defaults()
	s.InitZoomToggle = true
	s.ZoomMode = config.ZoomStatic
	l := Compute(1000, 340, s)
	z := NewZoom(s)
	z.Focus(22, 4)

	v := z.Viewport(l)
	cx, cy := v.X+v.W/2, v.Y+v.H/2
	gx, gy := l.Grid.X+l.Grid.W/2, l.Grid.Y+l.Grid.H/2
	if abs(cx-gx) > 1 || abs(cy-gy) > 1 {
		t.Errorf("static viewport centre %d,%d, want about %d,%d", cx, cy, gx, gy)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
