package garden

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/vovakirdan/tui-whackamole/internal/core"
	"github.com/vovakirdan/tui-whackamole/internal/session"
)

// Cell size limits for one hole, including its one-column gap.
const (
	maxCellW = 14
	maxCellH = 5
	minCellW = 5
	minCellH = 3
)

// Render draws the garden, its effects and the overlay into dst.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	w, h := dst.Width(), dst.Height()

	if g.board.music {
		dst.DrawTextColored(1, 0, "♫", core.ColorMagenta)
	}
	if g.board.noteOn {
		dst.DrawTextColored(w-2, 0, "♪", core.ColorBrightYellow)
	}

	state := g.ctrl.State()
	holes, ok := g.holeRects(w, h)
	if !ok {
		dst.DrawTextCentered(h/2, "Terminal too small")
		return
	}

	switch state {
	case session.Idle:
		if _, anchored := g.ctrl.Anchor(); anchored {
			// Placement preview
			g.drawHoles(dst, holes, core.ColorGray, false)
		} else {
			dots := int(g.scanElapsed*3) % 4
			dst.DrawTextCentered(h/2, "scanning"+strings.Repeat(".", dots))
		}
	case session.Placing:
		g.drawHoles(dst, holes, core.ColorBrown, false)
		g.drawFooter(dst, holes, "[ START ]  press ENTER", core.ColorBrightGreen)
	default:
		g.drawHoles(dst, holes, core.ColorBrown, state == session.Running)
		g.drawSprites(dst, holes)
		g.drawBursts(dst, holes)
	}

	if g.board.countdown != "" {
		g.drawCenterText(dst, holes, g.board.countdown, core.ColorBrightYellow)
	}

	if state == session.Finished {
		g.drawGameOver(dst, holes)
	}
	if g.paused {
		g.drawCenterText(dst, holes, "PAUSED", core.ColorWhite)
	}

	g.overlay.Render(dst)
}

// holeRects lays the holes out below the overlay rows.
func (g *Game) holeRects(w, h int) ([]core.Rect, bool) {
	top := int(math.Round(64*float64(h)/768)) + 2
	availW := w - 2
	availH := h - top - 2

	cols, rows := g.layout.Cols, g.layout.Rows
	if cols <= 0 || rows <= 0 {
		return nil, false
	}
	cellW := core.Min(availW/cols, maxCellW)
	cellH := core.Min(availH/rows, maxCellH)
	if cellW < minCellW || cellH < minCellH {
		return nil, false
	}

	boxW := cellW - 1
	boxH := cellH
	if cellH > minCellH {
		boxH = cellH - 1
	}
	x0 := (w - cellW*cols) / 2
	y0 := top

	rects := make([]core.Rect, g.layout.Slots())
	for slot := range rects {
		col, row := g.layout.Cell(slot)
		rects[slot] = core.NewRect(x0+col*cellW, y0+row*cellH, boxW, boxH)
	}
	return rects, true
}

func (g *Game) drawHoles(dst *core.Screen, holes []core.Rect, c core.Color, showCursor bool) {
	for slot, r := range holes {
		color := c
		if showCursor && slot == g.cursor {
			color = core.ColorCyan
		}
		if _, missed := g.board.misses[slot]; missed {
			color = core.ColorGray
		}
		dst.DrawBox(r, color)
		dst.DrawTextColored(r.X+1, r.Y, slotLabel(slot), color)
	}
}

func (g *Game) drawSprites(dst *core.Screen, holes []core.Rect) {
	for slot, sp := range g.board.sprites {
		if slot >= len(holes) {
			continue
		}
		r := holes[slot]
		text, color := spriteGlyph(sp, r.W-2)
		x := r.X + (r.W-len([]rune(text)))/2
		_, cy := r.Center()
		dst.DrawTextColored(x, cy, text, color)
	}
}

// spriteGlyph picks the text for a sprite that fits in width cells.
func spriteGlyph(sp *sprite, width int) (string, core.Color) {
	small := width < 5
	switch sp.mode {
	case spriteRising, spriteFalling:
		if small {
			return ".", core.ColorBrown
		}
		return "._.", core.ColorBrown
	case spriteWhacked:
		if small {
			return "*", core.ColorBrightYellow
		}
		return "\\*/", core.ColorBrightYellow
	}

	if sp.kind == session.Hostile {
		if small {
			return "x", core.ColorBrightRed
		}
		return "(>_<)", core.ColorBrightRed
	}
	if small {
		return "o", core.ColorBrightGreen
	}
	return "(^.^)", core.ColorBrightGreen
}

// burstOffsets are particle positions relative to the hole's corners, expanding with age.
var burstOffsets = [][2]int{{-1, -1}, {1, -1}, {-1, 1}, {1, 1}}

func (g *Game) drawBursts(dst *core.Screen, holes []core.Rect) {
	for _, bu := range g.board.bursts {
		if bu.slot < 0 || bu.slot >= len(holes) {
			continue
		}
		r := holes[bu.slot]
		color := core.ColorBrightGreen
		glyph := '+'
		if !bu.good {
			color = core.ColorBrightRed
			glyph = '*'
		}
		spread := 1 + int(bu.age/burstTime*2)
		cx, cy := r.Center()
		for _, o := range burstOffsets {
			dst.SetColored(cx+o[0]*spread*2, cy+o[1]*spread, glyph, color)
		}
	}
}

func (g *Game) drawCenterText(dst *core.Screen, holes []core.Rect, text string, c core.Color) {
	first, last := holes[0], holes[len(holes)-1]
	cy := (first.Y + last.Bottom()) / 2
	x := (dst.Width() - len([]rune(text))) / 2
	dst.DrawTextColored(x-1, cy, " "+text+" ", c)
}

func (g *Game) drawFooter(dst *core.Screen, holes []core.Rect, text string, c core.Color) {
	last := holes[len(holes)-1]
	x := (dst.Width() - len([]rune(text))) / 2
	dst.DrawTextColored(x, last.Bottom(), text, c)
}

func (g *Game) drawGameOver(dst *core.Screen, holes []core.Rect) {
	stats := g.ctrl.Stats()
	lines := []string{
		"GAME OVER",
		fmt.Sprintf("Final score: %d", g.ctrl.Score()),
		fmt.Sprintf("Moles %d  Hostiles %d  Missed %d", stats.BenignHits, stats.HostileHits, stats.Escaped),
	}

	first, last := holes[0], holes[len(holes)-1]
	y := (first.Y+last.Bottom())/2 - 1
	for i, line := range lines {
		x := (dst.Width() - len([]rune(line))) / 2
		color := core.ColorWhite
		if i == 0 {
			color = core.ColorBrightRed
		}
		dst.DrawTextColored(x, y+i, line, color)
	}

	if g.board.restartVisible() {
		g.drawFooter(dst, holes, "[R] restart   [ENTER] continue", core.ColorBrightGreen)
	}
}

// slotLabel is the number key for slot, or "" past 9.
func slotLabel(slot int) string {
	if slot >= 9 {
		return ""
	}
	return strconv.Itoa(slot + 1)
}
