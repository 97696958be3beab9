package render

import "github.com/gdamore/tcell/v2"

// Palette
var (
	RgbBackground = tcell.NewRGBColor(26, 27, 38)    // Tokyo Night background
	RgbHUD        = tcell.NewRGBColor(255, 255, 255) // White
	RgbDim        = tcell.NewRGBColor(90, 90, 90)    // Empty bar cells

	RgbCliff       = tcell.NewRGBColor(110, 90, 70)  // Rock below the foundation
	RgbFoundation  = tcell.NewRGBColor(180, 150, 90) // Intact foundation
	RgbCracked     = tcell.NewRGBColor(200, 60, 40)  // Damaged foundation rows
	RgbCastle      = tcell.NewRGBColor(170, 170, 190)
	RgbGround      = tcell.NewRGBColor(70, 110, 50)
	RgbFarWall     = tcell.NewRGBColor(110, 90, 70)
	RgbPlatform    = tcell.NewRGBColor(100, 150, 255) // Normal Blue
	RgbSatchel     = tcell.NewRGBColor(255, 165, 0)   // Orange
	RgbShot        = tcell.NewRGBColor(0, 200, 200)   // Vibrant Cyan
	RgbShield      = tcell.NewRGBColor(140, 190, 255) // Bright Blue
	RgbCharge      = tcell.NewRGBColor(255, 255, 0)   // Bright Yellow
	RgbLEDOn       = tcell.NewRGBColor(255, 80, 80)   // Normal Red
	RgbLEDOff      = tcell.NewRGBColor(60, 20, 20)
	RgbEvacuating  = tcell.NewRGBColor(255, 120, 120)
	RgbBannerWin   = tcell.NewRGBColor(50, 255, 50)
	RgbBannerFail  = tcell.NewRGBColor(255, 80, 80)
	RgbBannerTitle = tcell.NewRGBColor(255, 165, 0)
)

// GetEnergyColor returns the energy gauge color for progress in [0,1]
// Gradient: deep red → orange → yellow → green
func GetEnergyColor(progress float64) tcell.Color {
	if progress <= 0.0 {
		return tcell.NewRGBColor(0, 0, 0) // Black for empty
	}
	if progress > 1.0 {
		progress = 1.0
	}

	if progress < 0.333 { // Red to Orange
		t := progress / 0.333
		return tcell.NewRGBColor(int32(139+(255-139)*t), int32(69*t), 0)
	} else if progress < 0.667 { // Orange to Yellow
		t := (progress - 0.333) / 0.334
		return tcell.NewRGBColor(255, int32(69+(215-69)*t), 0)
	}
	// Yellow to Green
	t := (progress - 0.667) / 0.333
	return tcell.NewRGBColor(int32(255-(255-34)*t), int32(215-(215-200)*t), int32(34*t))
}
