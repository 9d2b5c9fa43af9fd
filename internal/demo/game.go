// Package demo is a small dungeon crawl that exercises every part of the
// console: keys, taps, hover, right-click, animation, text input, graphics
// modes and restart.
package demo

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mlange-42/ark/ecs"

	"github.com/brogue-touch/brogue_touch/internal/core"
)

const (
	playerMaxHP  = 20
	maxNameLen   = 16
	travelDelay  = 50 // ms per step when travelling to a clicked cell
	runDelay     = 25
	searchDelay  = 40
	searchTurns  = 5
	maxTravel    = 200
	logLines     = core.TopLogHeight
	sidebarWidth = core.LeftPanelWidth - 1
)

// Position is a map cell.
type Position struct {
	X, Y int
}

// Player marks the player entity.
type Player struct {
	HP, MaxHP int
}

// Monster is a creature on the level.
type Monster struct {
	Name  string
	Glyph rune
	HP    int
}

var directions = map[int][2]int{
	core.KeyLeft:       {-1, 0},
	core.KeyRight:      {1, 0},
	core.KeyUp:         {0, -1},
	core.KeyDown:       {0, 1},
	core.KeyUpLeft:     {-1, -1},
	core.KeyUpRight:    {1, -1},
	core.KeyDownLeft:   {-1, 1},
	core.KeyDownRight:  {1, 1},
	core.KeyLeftArrow:  {-1, 0},
	core.KeyRightArrow: {1, 0},
	core.KeyUpArrow:    {0, -1},
	core.KeyDownArrow:  {0, 1},
}

// Keys handled besides movement.
const (
	keyGraphics = 'G'
	keyName     = 'c'
	keyRestart  = 'Q'
)

type button struct {
	label string
	key   int
	x0    int
	x1    int
}

// Game implements core.Core, core.Refresher and core.Animator.
type Game struct {
	Level  *Level
	Seed   uint64
	Logger *log.Logger

	// Mode is the graphics mode to start in; it then tracks the console.
	Mode core.GraphicsMode

	// Restart is called by the restart key before Run returns.
	Restart func()

	console  core.Console
	world    *ecs.World
	posMap   *ecs.Map[Position]
	plrMap   *ecs.Map[Player]
	monMap   *ecs.Map[Monster]
	monsters *ecs.Filter2[Position, Monster]
	player   ecs.Entity

	rng     *rand.Rand
	log     *MessageLog
	buttons []button
	name    string
	turn    int
	hover   string
	pulse   int
	prompt  []rune
	typing  bool
}

// New returns a game on level seeded with seed. A zero seed picks one from
// the clock.
func New(level *Level, seed uint64, logger *log.Logger) *Game {
	return &Game{Level: level, Seed: seed, Logger: logger, name: "Rogue"}
}

func (g *Game) reset(c core.Console) {
	g.console = c
	if g.Logger == nil {
		g.Logger = log.New(io.Discard)
	}
	seed := g.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	g.rng = rand.New(rand.NewPCG(seed, seed>>1|1))

	w := ecs.NewWorld(256)
	g.world = w
	g.posMap = ecs.NewMap[Position](w)
	g.plrMap = ecs.NewMap[Player](w)
	g.monMap = ecs.NewMap[Monster](w)
	g.monsters = ecs.NewFilter2[Position, Monster](w)

	def := g.Level.Def
	g.player = ecs.NewMap2[Position, Player](w).NewEntity(
		&Position{X: def.Spawn[0], Y: def.Spawn[1]},
		&Player{HP: playerMaxHP, MaxHP: playerMaxHP},
	)
	mons := ecs.NewMap2[Position, Monster](w)
	for _, m := range def.Monsters {
		mons.NewEntity(
			&Position{X: m.Pos[0], Y: m.Pos[1]},
			&Monster{Name: m.Name, Glyph: []rune(m.Glyph)[0], HP: m.HP},
		)
	}

	g.turn = 0
	g.hover = ""
	g.log = NewMessageLog(50, MapWidth)
	g.log.Add(fmt.Sprintf("Welcome to %s.", def.Name), MsgInfo)
	g.log.Add("Tap to travel, use the d-pad or hjklyubn to move. Long-press to inspect.", MsgInfo)
	g.Mode = c.SetGraphicsMode(g.Mode)
	g.focus()
	g.Logger.Debug("level loaded", "name", def.Name, "monsters", len(def.Monsters), "seed", seed)
}

// Run implements core.Core.
func (g *Game) Run(ctx context.Context, c core.Console) error {
	if g.Level == nil {
		return fmt.Errorf("demo: no level")
	}
	g.reset(c)
	g.RefreshScreen()
	for {
		ev := c.NextKeyOrMouseEvent(false, true)
		if ctx.Err() != nil {
			return nil
		}
		switch ev.Type {
		case core.EventError:
			return nil
		case core.Keystroke:
			if g.key(ev.Param1) {
				return nil
			}
		case core.MouseUp:
			if g.click(ev.Param1, ev.Param2) {
				return nil
			}
		case core.RightMouseUp:
			if x, y, ok := toMap(ev.Param1, ev.Param2); ok {
				g.log.Add(fmt.Sprintf("You see %s.", g.describe(x, y)), MsgInfo)
			}
		case core.MouseEnteredCell:
			g.hover = ""
			if x, y, ok := toMap(ev.Param1, ev.Param2); ok {
				g.hover = g.describe(x, y)
			}
		}
		g.RefreshScreen()
	}
}

// key handles one keystroke and reports whether Run should return.
func (g *Game) key(code int) bool {
	if d, ok := directions[code]; ok {
		g.move(d[0], d[1])
		return false
	}
	if code >= 'A' && code <= 'Z' {
		if d, ok := directions[code-'A'+'a']; ok {
			g.run(d[0], d[1])
			return false
		}
	}
	switch code {
	case core.KeyRest:
		g.endTurn()
		g.log.Add("You rest.", MsgInfo)
	case core.KeySearch:
		g.search()
	case keyGraphics:
		g.Mode = g.console.SetGraphicsMode(g.Mode.Next())
		g.log.Add(fmt.Sprintf("Switched to %s graphics.", g.Mode), MsgInfo)
	case keyName:
		g.promptName()
	case keyRestart:
		if g.Restart != nil {
			g.Restart()
		}
		return true
	case core.KeyEscape:
		return true
	}
	return false
}

func (g *Game) click(sx, sy int) bool {
	if sy >= core.Rows-core.BottomButtonsHeight {
		for _, b := range g.buttons {
			if sx >= b.x0 && sx < b.x1 {
				return g.key(b.key)
			}
		}
		return false
	}
	if x, y, ok := toMap(sx, sy); ok {
		g.travel(x, y)
	}
	return false
}

// toMap converts a screen cell to a map cell.
func toMap(sx, sy int) (int, int, bool) {
	x, y := sx-core.LeftPanelWidth, sy-core.TopLogHeight
	if x < 0 || x >= MapWidth || y < 0 || y >= MapHeight {
		return 0, 0, false
	}
	return x, y, true
}

// PlayerPos returns the player's map cell.
func (g *Game) PlayerPos() (int, int) {
	p := g.posMap.Get(g.player)
	return p.X, p.Y
}

// PlayerHP returns the player's hit points.
func (g *Game) PlayerHP() int {
	return g.plrMap.Get(g.player).HP
}

// Name returns the player's name.
func (g *Game) Name() string { return g.name }

// Log returns the message log.
func (g *Game) Log() *MessageLog { return g.log }

func (g *Game) focus() {
	if f, ok := g.console.(core.Focuser); ok {
		x, y := g.PlayerPos()
		f.Focus(x+core.LeftPanelWidth, y+core.TopLogHeight)
	}
}

type monsterRef struct {
	entity ecs.Entity
	pos    Position
	mon    Monster
}

func (g *Game) monsterList() []monsterRef {
	var out []monsterRef
	q := g.monsters.Query()
	for q.Next() {
		pos, mon := q.Get()
		out = append(out, monsterRef{entity: q.Entity(), pos: *pos, mon: *mon})
	}
	return out
}

func (g *Game) monsterAt(x, y int) (monsterRef, bool) {
	for _, m := range g.monsterList() {
		if m.pos.X == x && m.pos.Y == y {
			return m, true
		}
	}
	return monsterRef{}, false
}

// move steps or attacks and reports whether the player changed cell.
func (g *Game) move(dx, dy int) bool {
	x, y := g.PlayerPos()
	nx, ny := x+dx, y+dy
	if m, ok := g.monsterAt(nx, ny); ok {
		g.attack(m)
		g.endTurn()
		return false
	}
	if !g.Level.Walkable(nx, ny) {
		return false
	}
	p := g.posMap.Get(g.player)
	p.X, p.Y = nx, ny
	if g.Level.Get(nx, ny) == TileStairs {
		g.log.Add("The stairs are blocked by rubble.", MsgDiscovery)
	}
	g.endTurn()
	g.focus()
	return true
}

func (g *Game) attack(m monsterRef) {
	mon := g.monMap.Get(m.entity)
	mon.HP--
	if mon.HP <= 0 {
		g.log.Add(fmt.Sprintf("You slay the %s.", mon.Name), MsgCombat)
		g.world.RemoveEntity(m.entity)
		return
	}
	g.log.Add(fmt.Sprintf("You hit the %s.", mon.Name), MsgCombat)
	if g.rng.IntN(3) == 0 {
		p := g.plrMap.Get(g.player)
		if p.HP > 1 {
			p.HP--
		}
		g.log.Add(fmt.Sprintf("The %s bites you.", mon.Name), MsgCombat)
	}
}

func (g *Game) endTurn() {
	g.turn++
	if g.turn%10 == 0 {
		p := g.plrMap.Get(g.player)
		if p.HP < p.MaxHP {
			p.HP++
		}
	}
}

// run repeats a step until something blocks it or input arrives.
func (g *Game) run(dx, dy int) {
	for i := 0; i < maxTravel; i++ {
		x, y := g.PlayerPos()
		if _, ok := g.monsterAt(x+dx, y+dy); ok {
			return
		}
		if !g.move(dx, dy) {
			return
		}
		g.RefreshScreen()
		if g.console.PauseForMilliseconds(runDelay, core.PauseDefault) {
			return
		}
	}
}

// travel walks toward (tx, ty) one animated step at a time.
func (g *Game) travel(tx, ty int) {
	for i := 0; i < maxTravel; i++ {
		x, y := g.PlayerPos()
		if x == tx && y == ty {
			return
		}
		dx, dy, ok := g.nextStep(x, y, tx, ty)
		if !ok || !g.move(dx, dy) {
			return
		}
		g.RefreshScreen()
		if g.console.PauseForMilliseconds(travelDelay, core.PauseDefault) {
			return
		}
	}
}

// nextStep picks a greedy step toward the target, preferring the diagonal.
// Monsters block travel.
func (g *Game) nextStep(x, y, tx, ty int) (int, int, bool) {
	sx, sy := sign(tx-x), sign(ty-y)
	for _, d := range [][2]int{{sx, sy}, {sx, 0}, {0, sy}} {
		if d == [2]int{0, 0} {
			continue
		}
		nx, ny := x+d[0], y+d[1]
		if _, ok := g.monsterAt(nx, ny); ok {
			continue
		}
		if g.Level.Walkable(nx, ny) {
			return d[0], d[1], true
		}
	}
	return 0, 0, false
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}

func (g *Game) search() {
	for i := 1; i <= searchTurns; i++ {
		g.endTurn()
		g.hover = fmt.Sprintf("Searching... %d/%d", i, searchTurns)
		g.RefreshScreen()
		if g.console.PauseForMilliseconds(searchDelay, core.PauseDefault) {
			g.hover = ""
			g.log.Add("You stop searching.", MsgInfo)
			return
		}
	}
	g.hover = ""
	g.log.Add("You search the area but find nothing.", MsgInfo)
}

func (g *Game) promptName() {
	c := g.console
	c.TextInputStart()
	defer c.TextInputStop()

	g.typing = true
	g.prompt = g.prompt[:0]
	defer func() { g.typing = false }()
	for {
		g.RefreshScreen()
		ev := c.NextKeyOrMouseEvent(true, false)
		switch ev.Type {
		case core.EventError:
			return
		case core.Keystroke:
		default:
			continue
		}
		switch code := ev.Param1; {
		case code == core.KeyReturn:
			if len(g.prompt) > 0 {
				g.name = string(g.prompt)
				g.log.Add(fmt.Sprintf("You are now known as %s.", g.name), MsgPrompt)
			}
			return
		case code == core.KeyEscape:
			return
		case code == core.KeyDelete:
			if len(g.prompt) > 0 {
				g.prompt = g.prompt[:len(g.prompt)-1]
			}
		case code >= ' ' && code <= '~' && len(g.prompt) < maxNameLen:
			g.prompt = append(g.prompt, rune(code))
		}
	}
}

func (g *Game) describe(x, y int) string {
	if px, py := g.PlayerPos(); px == x && py == y {
		return "yourself, " + g.name
	}
	if m, ok := g.monsterAt(x, y); ok {
		return fmt.Sprintf("a %s (%d hp)", m.mon.Name, m.mon.HP)
	}
	return g.Level.Describe(x, y)
}
