package demo

import (
	"fmt"

	"github.com/brogue-touch/brogue_touch/internal/core"
)

var (
	black     = core.Color{}
	white     = core.Color{R: 100, G: 100, B: 100}
	grey      = core.Color{R: 50, G: 50, B: 50}
	heading   = core.Color{R: 60, G: 80, B: 100}
	hpFull    = core.Color{R: 80, G: 20, B: 20}
	btnBack   = core.Color{R: 15, G: 15, B: 25}
	monColor  = core.Color{R: 90, G: 60, B: 30}
	pulseSeq  = []int{100, 92, 84, 76, 84, 92}
	promptCol = core.Color{R: 100, G: 100, B: 30}
)

type tileLook struct {
	glyph      [3]rune // text, tiles, hybrid
	fore, back core.Color
}

var looks = map[TileKind]tileLook{
	TileVoid:   {[3]rune{' ', ' ', ' '}, black, black},
	TileFloor:  {[3]rune{'.', '·', '.'}, core.Color{R: 45, G: 45, B: 40}, core.Color{R: 6, G: 6, B: 10}},
	TileWall:   {[3]rune{'#', '█', '▓'}, core.Color{R: 55, G: 50, B: 45}, core.Color{R: 25, G: 22, B: 20}},
	TileDoor:   {[3]rune{'+', '+', '+'}, core.Color{R: 70, G: 45, B: 20}, core.Color{R: 20, G: 12, B: 5}},
	TileWater:  {[3]rune{'~', '▒', '~'}, core.Color{R: 20, G: 40, B: 90}, core.Color{R: 5, G: 10, B: 40}},
	TileStairs: {[3]rune{'>', '>', '>'}, white, core.Color{R: 10, G: 10, B: 10}},
}

func (g *Game) modeIndex() int {
	switch g.Mode {
	case core.TilesGraphics:
		return 1
	case core.HybridGraphics:
		return 2
	}
	return 0
}

func (g *Game) text(x, y int, s string, fore, back core.Color) int {
	for _, r := range s {
		g.console.PlotChar(r, x, y, fore, back)
		x++
	}
	return x
}

func (g *Game) fill(x0, y0, x1, y1 int, back core.Color) {
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			g.console.PlotChar(' ', x, y, black, back)
		}
	}
}

// RefreshScreen implements core.Refresher by replotting every cell.
func (g *Game) RefreshScreen() {
	if g.console == nil {
		return
	}
	g.fill(0, 0, core.Cols, core.Rows, black)
	g.drawLog()
	g.drawMap()
	g.drawSidebar()
	g.drawButtons()
}

// RefreshAnimations implements core.Animator. The player glyph pulses while
// colours dance.
func (g *Game) RefreshAnimations(colorsDance bool) {
	if !colorsDance || g.console == nil {
		return
	}
	g.pulse = (g.pulse + 1) % len(pulseSeq)
	g.drawPlayer()
}

func (g *Game) drawLog() {
	if g.typing {
		x := g.text(core.LeftPanelWidth, 0, "Name: ", promptCol, black)
		x = g.text(x, 0, string(g.prompt), white, black)
		g.console.PlotChar('_', x, 0, promptCol, black)
		return
	}
	for i, m := range g.log.Recent(logLines) {
		g.text(core.LeftPanelWidth, i, m.Text, m.Kind.color(), black)
	}
}

func (g *Game) drawMap() {
	mi := g.modeIndex()
	for y := 0; y < MapHeight; y++ {
		for x := 0; x < MapWidth; x++ {
			look := looks[g.Level.Get(x, y)]
			g.console.PlotChar(look.glyph[mi], x+core.LeftPanelWidth, y+core.TopLogHeight, look.fore, look.back)
		}
	}
	for _, m := range g.monsterList() {
		back := looks[g.Level.Get(m.pos.X, m.pos.Y)].back
		g.console.PlotChar(m.mon.Glyph, m.pos.X+core.LeftPanelWidth, m.pos.Y+core.TopLogHeight, monColor, back)
	}
	g.drawPlayer()
}

func (g *Game) drawPlayer() {
	x, y := g.PlayerPos()
	v := pulseSeq[g.pulse]
	back := looks[g.Level.Get(x, y)].back
	g.console.PlotChar('@', x+core.LeftPanelWidth, y+core.TopLogHeight, core.Color{R: v, G: v, B: v}, back)
}

func (g *Game) drawSidebar() {
	y := 0
	g.text(0, y, trim(g.name, sidebarWidth), white, black)
	y += 2
	g.text(0, y, fmt.Sprintf("Depth: %d", g.Level.Def.Depth), grey, black)
	y++
	g.text(0, y, fmt.Sprintf("Turn:  %d", g.turn), grey, black)
	y++

	p := g.plrMap.Get(g.player)
	label := fmt.Sprintf("Health %d/%d", p.HP, p.MaxHP)
	filled := sidebarWidth * p.HP / p.MaxHP
	for x := 0; x < sidebarWidth; x++ {
		back := black
		if x < filled {
			back = hpFull
		}
		ch := ' '
		if x < len(label) {
			ch = rune(label[x])
		}
		g.console.PlotChar(ch, x, y, white, back)
	}
	y += 2

	g.text(0, y, "Monsters", heading, black)
	y++
	for _, m := range g.monsterList() {
		if y >= core.Rows-6 {
			break
		}
		line := fmt.Sprintf("%c: %s (%d)", m.mon.Glyph, m.mon.Name, m.mon.HP)
		g.text(0, y, trim(line, sidebarWidth), monColor, black)
		y++
	}

	g.text(0, core.Rows-5, fmt.Sprintf("Graphics: %s", g.Mode), grey, black)
	for i, line := range wrapText(g.hover, sidebarWidth) {
		if i >= 3 {
			break
		}
		g.text(0, core.Rows-3+i, line, white, black)
	}
}

func trim(s string, n int) string {
	r := []rune(s)
	if len(r) > n {
		return string(r[:n])
	}
	return s
}

var buttonDefs = []struct {
	label string
	key   int
}{
	{"Rest", core.KeyRest},
	{"Search", core.KeySearch},
	{"Name", keyName},
	{"Graphics", keyGraphics},
	{"Restart", keyRestart},
}

func (g *Game) drawButtons() {
	g.buttons = g.buttons[:0]
	x := core.LeftPanelWidth + 1
	y := core.Rows - core.BottomButtonsHeight
	for _, d := range buttonDefs {
		label := " " + d.label + " "
		w := len(label)
		g.fill(x, y, x+w, core.Rows, btnBack)
		g.text(x, y, label, white, btnBack)
		g.buttons = append(g.buttons, button{label: d.label, key: d.key, x0: x, x1: x + w})
		x += w + 2
	}
}
