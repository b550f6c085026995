package flappy

import (
	"image/color"
	"strconv"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

// HUD rows in playfield pixels.
const (
	scoreRow    = 3
	gameOverRow = 4
	finalRow    = 14
	bestRow     = 24
)

// Render draws the playfield centered on dst using half-block cells.
func (g *Game) Render(dst *core.Screen) {
	s := g.session
	c := g.canvas
	c.Fill(color.Transparent)

	bg := g.sprites.backgrounds[0]
	if s.Night {
		bg = g.sprites.backgrounds[1]
	}
	c.Draw(bg, 0, 0)

	skin := g.sprites.pipes[s.PipeColor]
	for _, p := range s.Pipes {
		top, bottom := p.TopRect(), p.BottomRect()
		c.Draw(skin.top, top.X, top.Y)
		c.Draw(skin.bottom, bottom.X, bottom.Y)
	}

	base := g.sprites.base
	bx := pixel(s.BaseX)
	c.Draw(base, bx, g.field.GroundY)
	c.Draw(base, bx+base.Width(), g.field.GroundY)

	rotated, at := birdPose(s.Bird, g.birdFrame())
	c.Draw(rotated, at.X, at.Y)

	switch s.Phase {
	case core.PhaseWelcome:
		c.DrawCentered(g.sprites.message, g.field.W/2, g.field.GroundY/2)
	case core.PhasePlaying:
		g.drawNumber(s.Score.Current, scoreRow)
	case core.PhaseGameOver:
		over := g.sprites.gameOver
		c.Draw(over, (g.field.W-over.Width())/2, gameOverRow)
		g.drawNumber(s.Score.Current, finalRow)
		g.drawNumber(s.Score.Best, bestRow)
	}

	col := max(0, (dst.Width()-g.field.W)/2)
	row := max(0, (dst.Height()-(g.field.H+1)/2)/2)
	c.Project(dst, col, row)

	switch {
	case s.Paused:
		g.drawBanner(dst, " PAUSED ", row+g.field.GroundY/4)
	case s.Phase == core.PhaseGameOver && s.DeadFor() >= g.cfg.Timing.RestartDelay:
		g.drawBanner(dst, " SPACE TO RESTART ", row+g.field.GroundY/2+1)
	}
}

// drawBanner writes text centered on screen row y.
func (g *Game) drawBanner(dst *core.Screen, text string, y int) {
	dst.DrawTextColor((dst.Width()-len(text))/2, y, text, bannerFg, bannerBg)
}

var (
	bannerFg = core.RGB(255, 255, 255)
	bannerBg = core.RGB(84, 56, 71)
)

// drawNumber draws n in digit sprites, horizontally centered at row y.
func (g *Game) drawNumber(n, y int) {
	text := strconv.Itoa(n)
	width := 0
	for _, ch := range text {
		width += g.sprites.digits[ch-'0'].Width()
	}

	x := (g.field.W - width) / 2
	for _, ch := range text {
		d := g.sprites.digits[ch-'0']
		g.canvas.Draw(d, x, y)
		x += d.Width()
	}
}
