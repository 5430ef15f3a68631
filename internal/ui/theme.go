package ui

import "image/color"

type Theme struct {
	AppBackground color.RGBA
	TopBar        color.RGBA
	TopButton     color.RGBA
	TopHover      color.RGBA
	Toolbar       color.RGBA
	Button        color.RGBA
	ButtonActive  color.RGBA
	ButtonHover   color.RGBA
	ButtonBorder  color.RGBA
	Canvas        color.RGBA
	Page          color.RGBA
	Border        color.RGBA
	StatusBar     color.RGBA
	Accent        color.RGBA
	Shadow        color.RGBA
	Selection     color.RGBA
	Caret         color.RGBA
	Label         color.RGBA
	LabelActive   color.RGBA
	TopLabel      color.RGBA

	MenuHeightDp    int
	ToolbarHeightDp int
	StatusHeightDp  int
	PageMarginDp    int
}

func DefaultTheme() Theme {
	return Theme{
		AppBackground:   color.RGBA{0xF3, 0xF5, 0xF8, 0xFF},
		TopBar:          color.RGBA{0x2B, 0x57, 0x9A, 0xFF},
		TopButton:       color.RGBA{0x2E, 0x54, 0x91, 0xFF},
		TopHover:        color.RGBA{0x3A, 0x66, 0xAC, 0xFF},
		Toolbar:         color.RGBA{0xF7, 0xF9, 0xFC, 0xFF},
		Button:          color.RGBA{0xF1, 0xF5, 0xFB, 0xFF},
		ButtonActive:    color.RGBA{0xD7, 0xE5, 0xF8, 0xFF},
		ButtonHover:     color.RGBA{0xDF, 0xEC, 0xFC, 0xFF},
		ButtonBorder:    color.RGBA{0xB5, 0xC2, 0xD6, 0xFF},
		Canvas:          color.RGBA{0xE2, 0xE7, 0xEF, 0xFF},
		Page:            color.RGBA{0xFF, 0xFF, 0xFF, 0xFF},
		Border:          color.RGBA{0xB2, 0xBF, 0xD0, 0xFF},
		StatusBar:       color.RGBA{0xEA, 0xEF, 0xF6, 0xFF},
		Accent:          color.RGBA{0x2B, 0x57, 0x9A, 0xFF},
		Shadow:          color.RGBA{0xC8, 0xCF, 0xDB, 0xFF},
		Selection:       color.RGBA{0xB4, 0xD5, 0xFE, 0xFF},
		Caret:           color.RGBA{0x13, 0x3E, 0x7A, 0xFF},
		Label:           color.RGBA{0x2C, 0x3A, 0x52, 0xFF},
		LabelActive:     color.RGBA{0x13, 0x3E, 0x7A, 0xFF},
		TopLabel:        color.RGBA{0xF4, 0xF8, 0xFF, 0xFF},
		MenuHeightDp:    34,
		ToolbarHeightDp: 42,
		StatusHeightDp:  28,
		PageMarginDp:    24,
	}
}
