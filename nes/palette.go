package nes

import (
	"image/color"

	fnes "github.com/fogleman/nes/nes"
)

// 64色系统调色板，直接用fogleman/nes里现成的表
var Palette [64]color.RGBA = fnes.Palette
