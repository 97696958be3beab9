package render

import (
	"fmt"
	"math"
	"sync/atomic"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/canyon-defense/core"
	"github.com/lixenwraith/canyon-defense/engine"
	"github.com/lixenwraith/canyon-defense/parameter"
	"github.com/lixenwraith/canyon-defense/status"
)

// Source is the read side of the session used for drawing
type Source interface {
	Snapshot() (core.Pool, core.GameData)
}

// Banner text for terminal states
const (
	TitleText        = "CANYON DEFENSE"
	StartText        = "press ENTER to start"
	WinText          = "CASTLE FALLS"
	FailText         = "PLATFORM DESTROYED"
	EvacuatedText    = "the garrison escaped"
	NotEvacuatedText = "the garrison was trapped"
	HelpText         = "a s d f / arrows move  space charge/fire  j k shield  q quit"
)

// TerminalRenderer draws the published pool and status on the LCD period
type TerminalRenderer struct {
	screen tcell.Screen
	source Source
	c      *parameter.PhysicsConstants
	leds   *LEDPanel
	reg    *status.Registry

	statFrames *atomic.Int64
	debug      atomic.Bool
}

// NewTerminalRenderer creates a renderer; leds and reg may be nil
func NewTerminalRenderer(screen tcell.Screen, source Source, c *parameter.PhysicsConstants, leds *LEDPanel, reg *status.Registry) *TerminalRenderer {
	if leds == nil {
		leds = NewLEDPanel()
	}
	if reg == nil {
		reg = status.NewRegistry()
	}
	return &TerminalRenderer{
		screen:     screen,
		source:     source,
		c:          c,
		leds:       leds,
		reg:        reg,
		statFrames: reg.Ints.Get(status.KeyRenderFrames),
	}
}

// ToggleDebug flips the metrics footer and returns the new value
func (r *TerminalRenderer) ToggleDebug() bool {
	for {
		old := r.debug.Load()
		if r.debug.CompareAndSwap(old, !old) {
			return !old
		}
	}
}

// NewScheduler returns the render task; it keeps drawing outside Active for menus and banners
func (r *TerminalRenderer) NewScheduler() *engine.ClockScheduler {
	return engine.NewClockScheduler("render", r.c.LCDPeriod(), r.RenderFrame, nil)
}

// RenderFrame renders the entire game frame
func (r *TerminalRenderer) RenderFrame() {
	pool, data := r.source.Snapshot()
	w, h := r.screen.Size()
	l := newLayout(w, h, r.c)
	defaultStyle := tcell.StyleDefault.Background(RgbBackground)

	r.screen.Fill(' ', defaultStyle)

	r.drawHUD(data, defaultStyle, l)
	r.drawTerrain(data, defaultStyle, l)
	r.drawBodies(&pool, defaultStyle, l)
	if data.ShieldActive {
		r.drawShield(pool.Player().Pos.X(), defaultStyle, l)
	}
	r.drawFooter(defaultStyle, l)

	switch data.State {
	case core.StateMenu:
		r.drawBanner(l, defaultStyle.Foreground(RgbBannerTitle), TitleText, StartText)
	case core.StateWin:
		sub := NotEvacuatedText
		if data.EvacComplete {
			sub = EvacuatedText
		}
		r.drawBanner(l, defaultStyle.Foreground(RgbBannerWin), WinText, sub, StartText)
	case core.StateFail:
		r.drawBanner(l, defaultStyle.Foreground(RgbBannerFail), FailText, StartText)
	}

	r.screen.Show()
	r.statFrames.Add(1)
}

// drawHUD draws energy, charge, damage and the LED panel on the top two rows
func (r *TerminalRenderer) drawHUD(data core.GameData, defaultStyle tcell.Style, l layout) {
	hud := defaultStyle.Foreground(RgbHUD)
	barWidth := (l.width - 24) / 2
	if barWidth < 4 {
		barWidth = 4
	}

	x := r.drawText(0, 0, "EN ", hud)
	energy := data.Energy / r.c.Generator.Capacity
	x = r.drawBar(x, 0, barWidth, energy, defaultStyle.Foreground(GetEnergyColor(energy)))
	x = r.drawText(x+1, 0, "RG ", hud)
	x = r.drawBar(x, 0, barWidth, data.ShotCharge/r.c.RailGun.MaxShotPower, defaultStyle.Foreground(RgbCharge))
	r.drawText(x+1, 0, fmt.Sprintf("DMG %d/%d", data.FoundationDamage, r.c.Castle.FoundationHitsRequired), hud)

	x = 0
	for _, led := range r.leds.cells() {
		x = r.drawText(x, 1, led.label+" ", hud)
		ledStyle := defaultStyle.Foreground(RgbLEDOff)
		if led.On() {
			ledStyle = defaultStyle.Foreground(RgbLEDOn)
		}
		r.screen.SetContent(x, 1, '●', nil, ledStyle)
		x += 3
	}

	evac := defaultStyle.Foreground(RgbEvacuating)
	switch {
	case data.EvacComplete:
		r.drawText(x, 1, "EVACUATED", evac)
	case data.EvacStarted:
		left := r.c.EvacuationTicks() - (data.Ticks - data.EvacStartTick)
		secs := float64(left) * r.c.PhysicsStep()
		r.drawText(x, 1, fmt.Sprintf("EVACUATING %.1fs", secs), evac)
	}
}

// drawBar draws a filled gauge of width cells for frac in [0,1] and returns the next column
func (r *TerminalRenderer) drawBar(x, y, width int, frac float64, style tcell.Style) int {
	filled := int(math.Round(clampUnit(frac) * float64(width)))
	dim := style.Foreground(RgbDim)
	for i := 0; i < width; i++ {
		if i < filled {
			r.screen.SetContent(x+i, y, '█', nil, style)
		} else {
			r.screen.SetContent(x+i, y, '░', nil, dim)
		}
	}
	return x + width
}

// drawTerrain draws the cliff, foundation band, castle and canyon floor
func (r *TerminalRenderer) drawTerrain(data core.GameData, defaultStyle tcell.Style, l layout) {
	cliffTop := l.rowFor(r.c.Castle.CastleHeight)
	bandTop := l.rowFor(r.c.CanyonHeight())

	// Damage cracks the band from the top down
	bandRows := cliffTop - bandTop
	cracked := 0
	if req := r.c.Castle.FoundationHitsRequired; req > 0 {
		cracked = int(math.Ceil(float64(bandRows) * float64(data.FoundationDamage) / float64(req)))
	}

	for col := 0; col < castleCols && col < l.width; col++ {
		for row := cliffTop; row <= l.groundRow; row++ {
			r.screen.SetContent(col, row, '▓', nil, defaultStyle.Foreground(RgbCliff))
		}
		for row := bandTop; row < cliffTop; row++ {
			if row-bandTop < cracked {
				r.screen.SetContent(col, row, '▒', nil, defaultStyle.Foreground(RgbCracked))
			} else {
				r.screen.SetContent(col, row, '█', nil, defaultStyle.Foreground(RgbFoundation))
			}
		}
		if bandTop-1 >= l.playTop {
			ch := '▲'
			if data.State == core.StateWin {
				ch = '░'
			}
			r.screen.SetContent(col, bandTop-1, ch, nil, defaultStyle.Foreground(RgbCastle))
		}
	}

	for col := l.canyonLeft; col < l.width; col++ {
		r.screen.SetContent(col, l.groundRow, '▔', nil, defaultStyle.Foreground(RgbGround))
	}
	for row := l.playTop; row < l.groundRow; row++ {
		r.screen.SetContent(l.width-1, row, '│', nil, defaultStyle.Foreground(RgbFarWall))
	}
}

// drawBodies draws every occupied slot; the y axis is flipped by the layout
func (r *TerminalRenderer) drawBodies(pool *core.Pool, defaultStyle tcell.Style, l layout) {
	for i := range pool {
		b := &pool[i]
		switch b.Kind {
		case core.BodyPlayer:
			half := r.c.Platform.Length / 2
			left, row, _ := l.toScreen(b.Pos.X()-half, 0)
			right, _, _ := l.toScreen(b.Pos.X()+half, 0)
			for col := left; col <= right; col++ {
				if col >= l.canyonLeft && col < l.width {
					r.screen.SetContent(col, row, '▀', nil, defaultStyle.Foreground(RgbPlatform))
				}
			}
			if col, _, ok := l.toScreen(b.Pos.X(), 0); ok && row-1 >= l.playTop {
				r.screen.SetContent(col, row-1, '╱', nil, defaultStyle.Foreground(RgbPlatform))
			}
		case core.BodySatchel:
			if col, row, ok := l.toScreen(b.Pos.X(), b.Pos.Y()); ok {
				r.screen.SetContent(col, row, '●', nil, defaultStyle.Foreground(RgbSatchel))
			}
		case core.BodyShot:
			if col, row, ok := l.toScreen(b.Pos.X(), b.Pos.Y()); ok {
				r.screen.SetContent(col, row, '•', nil, defaultStyle.Foreground(RgbShot))
			}
		}
	}
}

// drawShield draws the upper half of the shield ring around the platform
func (r *TerminalRenderer) drawShield(px float64, defaultStyle tcell.Style, l layout) {
	radius := r.c.Shield.EffectiveRange
	style := defaultStyle.Foreground(RgbShield)
	const steps = 48
	for i := 0; i <= steps; i++ {
		a := math.Pi * float64(i) / steps
		col, row, ok := l.toScreen(px+radius*math.Cos(a), radius*math.Sin(a))
		if ok && col >= l.canyonLeft {
			r.screen.SetContent(col, row, '·', nil, style)
		}
	}
}

// drawFooter draws key help, or the metrics summary in debug mode
func (r *TerminalRenderer) drawFooter(defaultStyle tcell.Style, l layout) {
	row := l.height - 1
	if row <= l.groundRow {
		return
	}
	text := HelpText
	if r.debug.Load() {
		text = r.reg.Summary()
	}
	r.drawText(0, row, text, defaultStyle.Foreground(RgbDim))
}

// drawBanner centers lines around the middle of the playfield
func (r *TerminalRenderer) drawBanner(l layout, style tcell.Style, lines ...string) {
	mid := l.playTop + (l.groundRow-l.playTop)/2 - len(lines)/2
	for i, line := range lines {
		runes := []rune(line)
		x := (l.width - len(runes)) / 2
		if x < 0 {
			x = 0
		}
		r.drawText(x, mid+i, line, style)
	}
}

// drawText writes s from column x and returns the column after the last rune
func (r *TerminalRenderer) drawText(x, y int, s string, style tcell.Style) int {
	for _, ch := range s {
		if x >= 0 {
			r.screen.SetContent(x, y, ch, nil, style)
		}
		x++
	}
	return x
}

func clampUnit(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
