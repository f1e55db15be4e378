package flight

import (
	"fmt"

	"github.com/vovakirdan/skyflight/internal/core"
)

// Visual characters for rendering
const (
	ObstacleChar    = '█'
	ObstacleCapTop  = '▀'
	ObstacleCapBase = '▄'
	PlayerChar      = '█'
	PickupChar      = '◆'
	BuildingChar    = '▓'
	WindowChar      = '·'
)

// capeFrames animates the flyer's trailing edge.
var capeFrames = [FrameCount]rune{'~', '≈', '-'}

// Render draws the current game state, scaling the board to the screen.
func (g *Game) Render(dst *core.Screen) {
	RenderSnapshot(dst, g.Snapshot())
}

// RenderSnapshot draws snap onto dst. It has no access to the simulation,
// so replay and headless renderers can share it.
func RenderSnapshot(dst *core.Screen, snap Snapshot) {
	dst.Clear()
	vp := core.Viewport{
		BoardW: snap.BoardW,
		BoardH: snap.BoardH,
		CellsW: dst.Width(),
		CellsH: dst.Height(),
	}

	drawSkyline(dst, vp, snap.Background)

	for i, seg := range snap.Obstacles {
		drawSegment(dst, vp.CellRect(seg), i%2 == 0)
	}

	if snap.Pickup != nil {
		cell := vp.CellRect(*snap.Pickup)
		dst.DrawRect(cell, PickupChar, core.ColorBrightYellow)
	}

	drawPlayer(dst, vp, snap)

	// HUD
	hud := fmt.Sprintf(" Score: %d ", snap.Score)
	if snap.ShieldActive {
		hud += fmt.Sprintf(" Shield: %.1fs ", snap.ShieldRemaining.Seconds())
	}
	dst.DrawTextColored(1, 0, hud, core.ColorWhite)

	if snap.Paused {
		drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}
}

// drawSkyline paints the scrolling city along the bottom rows.
// Building heights depend only on the world column, so the skyline is stable
// as it scrolls.
func drawSkyline(dst *core.Screen, vp core.Viewport, offset int) {
	h := dst.Height()
	if h < 4 {
		return
	}
	shift := vp.CellX(offset)
	maxHeight := h / 4
	for x := 0; x < dst.Width(); x++ {
		col := x + shift
		height := buildingHeight(col/4, maxHeight)
		for dy := 0; dy < height; dy++ {
			y := h - 1 - dy
			r := BuildingChar
			if dy > 0 && dy < height-1 && col%2 == 0 && (col/4+dy)%3 != 0 {
				r = WindowChar
			}
			dst.SetColored(x, y, r, core.ColorDarkGray)
		}
	}
}

// buildingHeight derives a height in [1, limit] from a block index.
func buildingHeight(block, limit int) int {
	if limit < 1 {
		return 0
	}
	v := uint32(block)*2654435761 + 0x9e3779b9
	v ^= v >> 15
	return 1 + int(v%uint32(limit))
}

// drawSegment renders one obstacle segment with a cap facing the gap.
func drawSegment(dst *core.Screen, cell core.Rect, top bool) {
	if cell.Empty() {
		return
	}
	dst.DrawRect(cell, ObstacleChar, core.ColorGreen)
	if top {
		dst.DrawHLine(cell.X, cell.Bottom()-1, cell.W, ObstacleCapTop, core.ColorGreen)
	} else {
		dst.DrawHLine(cell.X, cell.Y, cell.W, ObstacleCapBase, core.ColorGreen)
	}
}

// drawPlayer renders the flyer, its animated cape and the shield ring.
func drawPlayer(dst *core.Screen, vp core.Viewport, snap Snapshot) {
	cell := vp.CellRect(snap.Player)
	dst.DrawRect(cell, PlayerChar, core.ColorBlue)
	for y := cell.Y; y < cell.Bottom(); y++ {
		dst.SetColored(cell.X, y, capeFrames[snap.Frame%FrameCount], core.ColorRed)
	}

	if snap.ShieldActive {
		ring := core.NewRect(cell.X-1, cell.Y-1, cell.W+2, cell.H+2)
		dst.DrawBox(ring, core.ColorBrightCyan)
	}
}

// DrawGameOver overlays the end-of-round panel.
func DrawGameOver(dst *core.Screen, score, best int, newRecord bool) {
	title := "GAME OVER"
	if newRecord {
		title = "NEW HIGH SCORE!"
	}
	drawCenteredMessage(dst, title,
		fmt.Sprintf("Score: %d  Best: %d", score, best),
		"R or click to retry  |  Q to quit")
}

// drawCenteredMessage draws a boxed message in the middle of the screen.
func drawCenteredMessage(dst *core.Screen, title string, lines ...string) {
	width := len([]rune(title))
	for _, l := range lines {
		width = max(width, len([]rune(l)))
	}
	boxW := width + 4
	boxH := 3 + 2*len(lines)
	boxX := (dst.Width() - boxW) / 2
	boxY := (dst.Height() - boxH) / 2

	box := core.NewRect(boxX, boxY, boxW, boxH)
	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorWhite)
	dst.DrawTextCentered(boxY+1, title, core.ColorBrightYellow)
	for i, l := range lines {
		dst.DrawTextCentered(boxY+3+2*i, l, core.ColorWhite)
	}
}
