package layout

import (
	"testing"

	"github.com/brogue-touch/brogue_touch/internal/config"
)

func TestOrient(t *testing.T) {
	tests := []struct {
		name         string
		w, h         int
		portrait     bool
		wantW, wantH int
	}{
		{"landscape keeps landscape", 1000, 500, false, 1000, 500},
		{"landscape swaps portrait input", 500, 1000, false, 1000, 500},
		{"portrait keeps portrait", 500, 1000, true, 500, 1000},
		{"portrait swaps landscape input", 1000, 500, true, 500, 1000},
		{"square unchanged", 700, 700, true, 700, 700},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w, h := Orient(tc.w, tc.h, tc.portrait)
			if w != tc.wantW || h != tc.wantH {
				t.Errorf("Orient(%d, %d, %v) = %d, %d", tc.w, tc.h, tc.portrait, w, h)
			}
		})
	}
}

func TestComputePanels(t *testing.T) {
	s := config.Defaults()
	s.DpadEnabled = false
	l := Compute(1000, 340, s)

	if l.CellW != 10 || l.CellH != 10 {
		t.Fatalf("cell = %vx%v, want 10x10", l.CellW, l.CellH)
	}
	want := map[string]Rect{
		"left":    {0, 0, 210, 340},
		"log":     {210, 0, 790, 30},
		"buttons": {210, 320, 790, 20},
		"grid":    {210, 30, 790, 290},
	}
	got := map[string]Rect{"left": l.LeftPanel, "log": l.LogPanel, "buttons": l.Buttons, "grid": l.Grid}
	for name, r := range want {
		if got[name] != r {
			t.Errorf("%s = %+v, want %+v", name, got[name], r)
		}
	}
	if !l.Dpad.Empty() {
		t.Errorf("dpad should be empty when disabled, got %+v", l.Dpad)
	}
}

func TestComputeTruncatesFractionalCells(t *testing.T) {
	s := config.Defaults()
	s.CustomCellWidth = 7.5
	s.CustomCellHeight = 12.3
	l := Compute(2000, 1000, s)
	if l.CellW != 7.5 || l.CellH != 12.3 {
		t.Fatalf("custom cells ignored: %vx%v", l.CellW, l.CellH)
	}
	// 21 * 7.5 = 157.5, 3 * 12.3 = 36.9
	if l.Grid.X != 157 || l.Grid.Y != 36 {
		t.Errorf("grid origin = %d,%d, want 157,36", l.Grid.X, l.Grid.Y)
	}
}

func TestDpadPlacement(t *testing.T) {
	s := config.Defaults()
	l := Compute(1000, 340, s)
	// auto = min(10*17, 10*20) = 170
	want := Rect{X: 30, Y: 340 - (170 + 20), W: 170, H: 170}
	if l.Dpad != want {
		t.Errorf("auto dpad = %+v, want %+v", l.Dpad, want)
	}

	s.DpadWidth = 100
	s.DpadXPos = 5
	s.DpadYPos = 7
	l = Compute(1000, 340, s)
	if l.Dpad != (Rect{X: 5, Y: 7, W: 100, H: 100}) {
		t.Errorf("custom dpad = %+v", l.Dpad)
	}
}

func TestDpadDefaultYUsesAutoSize(t *testing.T) {
	tests := []struct {
		name  string
		w     int
		width int
		want  Rect
	}{
		{"custom width", 1000, 100, Rect{X: 30, Y: 150, W: 100, H: 100}},
		// auto = 170.85, y = 340 - 190.85 truncated once
		{"fractional auto", 1005, 0, Rect{X: 30, Y: 149, W: 170, H: 170}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := config.Defaults()
			s.DpadWidth = tc.width
			l := Compute(tc.w, 340, s)
			if l.Dpad != tc.want {
				t.Errorf("dpad = %+v, want %+v", l.Dpad, tc.want)
			}
		})
	}
}

func TestRescale(t *testing.T) {
	s := config.Defaults()
	s.CustomCellWidth = 3
	l := Compute(1000, 340, s)
	l.Rescale(2000, 680, s)
	if l.Scale != 2 {
		t.Errorf("Scale = %v, want 2", l.Scale)
	}
	if l.CellW != 6 || l.CellH != 20 {
		t.Errorf("cell after rescale = %vx%v, want 6x20", l.CellW, l.CellH)
	}
	if l.Grid.X != 126 {
		t.Errorf("grid X after rescale = %d, want 126", l.Grid.X)
	}
}

func TestCheckFont(t *testing.T) {
	s := config.Defaults()
	if err := Compute(1000, 340, s).CheckFont(); err != nil {
		t.Errorf("CheckFont() = %v", err)
	}
	if err := Compute(300, 100, s).CheckFont(); err != ErrCellTooSmall {
		t.Errorf("CheckFont() on tiny display = %v", err)
	}
}

func TestCellAt(t *testing.T) {
	s := config.Defaults()
	l := Compute(1000, 340, s)

	x, y := l.CellAt(15, 25, l.Grid)
	if x != 1 || y != 2 {
		t.Errorf("CellAt(15,25) = %d,%d", x, y)
	}
	x, y = l.CellAt(5000, -20, l.Grid)
	if x != 99 || y != 0 {
		t.Errorf("CellAt clamps: got %d,%d", x, y)
	}

	// A 2x viewport over the grid's top-left quarter.
	view := Rect{X: l.Grid.X, Y: l.Grid.Y, W: l.Grid.W / 2, H: l.Grid.H / 2}
	x, y = l.CellAt(l.Grid.X+100, l.Grid.Y+40, view)
	if x != 21+5 || y != 3+2 {
		t.Errorf("zoomed CellAt = %d,%d, want 26,5", x, y)
	}
}

func TestDpadShade(t *testing.T) {
	tests := []struct {
		x, y int
		want uint8
	}{
		{0, 0, DpadShadeBase},
		{127, 127, DpadShadeBase},
		{41, 41, DpadShadeBase},
		{42, 42, DpadShadeCentre},
		{85, 85, DpadShadeCentre},
		{60, 0, DpadShadeArm},
		{60, 127, DpadShadeArm},
		{0, 60, DpadShadeArm},
		{86, 60, DpadShadeArm},
		{86, 86, DpadShadeBase},
	}
	for _, tc := range tests {
		if got := DpadShade(tc.x, tc.y); got != tc.want {
			t.Errorf("DpadShade(%d, %d) = %d, want %d", tc.x, tc.y, got, tc.want)
		}
	}
}

func TestDpadSector(t *testing.T) {
	area := Rect{X: 100, Y: 100, W: 128, H: 128}
	tests := []struct {
		x, y int
		want Direction
	}{
		{100, 100, DirUpLeft},
		{164, 100, DirUp},
		{227, 100, DirUpRight},
		{100, 164, DirLeft},
		{164, 164, DirCentre},
		{227, 164, DirRight},
		{100, 227, DirDownLeft},
		{164, 227, DirDown},
		{227, 227, DirDownRight},
		{141, 164, DirLeft},
		{142, 164, DirCentre},
		{185, 164, DirCentre},
		{186, 164, DirRight},
		{99, 164, DirNone},
		{228, 164, DirNone},
	}
	for _, tc := range tests {
		if got := DpadSector(area, tc.x, tc.y); got != tc.want {
			t.Errorf("DpadSector(%d,%d) = %v, want %v", tc.x, tc.y, got, tc.want)
		}
	}
	if DpadSector(Rect{}, 0, 0) != DirNone {
		t.Error("empty area should yield DirNone")
	}
}
