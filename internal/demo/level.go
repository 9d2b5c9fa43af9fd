package demo

import (
	"embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/brogue-touch/brogue_touch/internal/core"
)

//go:embed levels/*.yaml
var levels embed.FS

// Map area inside the grid rect, in cells.
const (
	MapWidth  = core.Cols - core.LeftPanelWidth
	MapHeight = core.Rows - core.TopLogHeight - core.BottomButtonsHeight
)

// TileKind is the structural type of a map cell.
type TileKind uint8

const (
	TileVoid TileKind = iota
	TileFloor
	TileWall
	TileDoor
	TileWater
	TileStairs
)

// LevelDef is the YAML definition of a level.
type LevelDef struct {
	Name     string       `yaml:"name"`
	Depth    int          `yaml:"depth"`
	Spawn    [2]int       `yaml:"spawn"`
	Tiles    []string     `yaml:"tiles"`
	Monsters []MonsterDef `yaml:"monsters"`
}

// MonsterDef places one monster.
type MonsterDef struct {
	Name  string `yaml:"name"`
	Glyph string `yaml:"glyph"`
	Pos   [2]int `yaml:"pos"`
	HP    int    `yaml:"hp"`
}

// Level is a parsed level: its definition and tile grid.
type Level struct {
	Def   LevelDef
	tiles [MapHeight][MapWidth]TileKind
}

// LoadLevel parses and validates a level definition.
func LoadLevel(data []byte) (*Level, error) {
	var def LevelDef
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("parse level: %w", err)
	}
	if len(def.Tiles) > MapHeight {
		return nil, fmt.Errorf("level %q: %d rows, at most %d fit", def.Name, len(def.Tiles), MapHeight)
	}
	l := &Level{Def: def}
	for y, row := range def.Tiles {
		x := 0
		for _, ch := range row {
			if x >= MapWidth {
				return nil, fmt.Errorf("level %q: row %d wider than %d", def.Name, y, MapWidth)
			}
			l.tiles[y][x] = charToTile(ch)
			x++
		}
	}
	if !l.Walkable(def.Spawn[0], def.Spawn[1]) {
		return nil, fmt.Errorf("level %q: spawn %v is not walkable", def.Name, def.Spawn)
	}
	for _, m := range def.Monsters {
		if !l.Walkable(m.Pos[0], m.Pos[1]) {
			return nil, fmt.Errorf("level %q: monster %s at %v is not walkable", def.Name, m.Name, m.Pos)
		}
		if m.Glyph == "" {
			return nil, fmt.Errorf("level %q: monster %s has no glyph", def.Name, m.Name)
		}
	}
	return l, nil
}

// DefaultLevel loads the embedded starting level.
func DefaultLevel() (*Level, error) {
	data, err := levels.ReadFile("levels/cellar.yaml")
	if err != nil {
		return nil, fmt.Errorf("read level: %w", err)
	}
	return LoadLevel(data)
}

func charToTile(ch rune) TileKind {
	switch ch {
	case '.':
		return TileFloor
	case '#':
		return TileWall
	case '+':
		return TileDoor
	case '~':
		return TileWater
	case '>':
		return TileStairs
	default:
		return TileVoid
	}
}

// Get returns the tile at (x, y). Out-of-bounds returns void.
func (l *Level) Get(x, y int) TileKind {
	if x < 0 || x >= MapWidth || y < 0 || y >= MapHeight {
		return TileVoid
	}
	return l.tiles[y][x]
}

// Walkable reports whether the player can stand on (x, y).
func (l *Level) Walkable(x, y int) bool {
	switch l.Get(x, y) {
	case TileFloor, TileDoor, TileWater, TileStairs:
		return true
	}
	return false
}

// Describe names the tile at (x, y).
func (l *Level) Describe(x, y int) string {
	switch l.Get(x, y) {
	case TileFloor:
		return "the ground"
	case TileWall:
		return "a rough granite wall"
	case TileDoor:
		return "a wooden door"
	case TileWater:
		return "murky water"
	case TileStairs:
		return "a downward staircase"
	}
	return "solid rock"
}
