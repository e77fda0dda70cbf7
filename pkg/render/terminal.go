package render

import (
	"image/color"

	uv "github.com/charmbracelet/ultraviolet"
)

// Draw converts the framebuffer to terminal cells and draws them on the
// screen. The framebuffer height should be 2x the terminal height.
func (fb *Framebuffer) Draw(scr uv.Screen, area uv.Rectangle) {
	// One cell per two pixels: ▀ with fg=top and bg=bottom.
	for row := area.Min.Y; row < area.Max.Y; row++ {
		topY := row * 2
		botY := topY + 1

		for col := area.Min.X; col < area.Max.X && col < fb.Width; col++ {
			cell := &uv.Cell{
				Content: "▀",
				Width:   1,
				Style: uv.Style{
					Fg: cellColor(fb.GetPixel(col, topY)),
					Bg: cellColor(fb.GetPixel(col, botY)),
				},
			}
			scr.SetCell(col, row, cell)
		}
	}
}

// TerminalSize returns the framebuffer size that fills a terminal of the
// given cell dimensions.
func TerminalSize(cols, rows int) (width, height int) {
	return cols, rows * 2
}

// cellColor maps transparent pixels to the terminal default.
func cellColor(c Color) color.Color {
	if c.A == 0 {
		return nil
	}
	return c
}
