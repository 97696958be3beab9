package render

import (
	"math"

	"github.com/lixenwraith/canyon-defense/parameter"
)

// Rows reserved above and below the playfield
const (
	hudRows    = 2
	footerRows = 1
	castleCols = 3
)

// layout maps physics space onto screen cells for one frame
// Physics y grows upward; screen rows grow downward
type layout struct {
	width, height int

	playTop    int // first playfield row
	groundRow  int // canyon floor
	canyonLeft int // first column right of the castle wall
	canyonCols int

	scaleX float64 // columns per physics unit
	scaleY float64 // rows per physics unit
}

func newLayout(width, height int, c *parameter.PhysicsConstants) layout {
	l := layout{
		width:      width,
		height:     height,
		playTop:    hudRows,
		groundRow:  height - footerRows - 1,
		canyonLeft: castleCols,
		canyonCols: width - castleCols,
	}
	if l.canyonCols < 1 {
		l.canyonCols = 1
	}
	rows := l.groundRow - l.playTop
	if rows < 1 {
		rows = 1
	}

	l.scaleX = float64(l.canyonCols-1) / c.Castle.CanyonSize
	// Headroom above the foundation for satchel arcs
	l.scaleY = float64(rows) / (c.CanyonHeight() * 1.5)
	return l
}

// toScreen returns the cell for a physics point and whether it lies in the playfield
func (l layout) toScreen(x, y float64) (int, int, bool) {
	sx := l.canyonLeft + int(math.Round(x*l.scaleX))
	sy := l.groundRow - int(math.Round(y*l.scaleY))
	ok := sx >= 0 && sx < l.width && sy >= l.playTop && sy <= l.groundRow
	return sx, sy, ok
}

// rowFor returns the screen row of physics height y, clamped to the playfield
func (l layout) rowFor(y float64) int {
	sy := l.groundRow - int(math.Round(y*l.scaleY))
	if sy < l.playTop {
		return l.playTop
	}
	if sy > l.groundRow {
		return l.groundRow
	}
	return sy
}
