package display

import (
	"fmt"
	"image"
	"log/slog"
	"strings"
	"unsafe"

	"github.com/veandco/go-sdl2/sdl"
	"github.com/veandco/go-sdl2/ttf"

	"github.com/reardencode/firmware/pkg/ux/internal"
	"github.com/reardencode/firmware/pkg/ux/keypad"
	"github.com/reardencode/firmware/pkg/ux/platform"
)

var (
	colorBackground = sdl.Color{R: 10, G: 10, B: 12, A: 255}
	colorText       = sdl.Color{R: 225, G: 225, B: 225, A: 255}
	colorTitle      = sdl.Color{R: 255, G: 210, B: 77, A: 255}
	colorHint       = sdl.Color{R: 130, G: 130, B: 130, A: 255}
	colorFatal      = sdl.Color{R: 200, G: 40, B: 40, A: 255}
)

// SDLOptions configures the SDL character display.
type SDLOptions struct {
	Title    string
	FontPath string // monospace TTF font
	FontSize int    // point size, default 24
	Profile  platform.Profile
}

// SDL is a character-grid Display rendered in an SDL window. It stands in
// for the device's LCD during development and in the simulator.
type SDL struct {
	window   *sdl.Window
	renderer *sdl.Renderer
	font     *ttf.Font
	profile  platform.Profile
	log      *slog.Logger

	cellW, cellH int32
	badge        *sdl.Texture

	fullscreenMsg string
}

// NewSDL initializes SDL, opens the font, and creates the window sized to
// the profile's character grid plus a one-cell margin all around.
func NewSDL(opts SDLOptions) (*SDL, error) {
	if opts.FontSize == 0 {
		opts.FontSize = 24
	}

	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return nil, fmt.Errorf("display: sdl init: %w", err)
	}
	if err := ttf.Init(); err != nil {
		return nil, fmt.Errorf("display: ttf init: %w", err)
	}

	font, err := ttf.OpenFont(opts.FontPath, opts.FontSize)
	if err != nil {
		return nil, fmt.Errorf("display: open font %s: %w", opts.FontPath, err)
	}

	cw, ch, err := font.SizeUTF8("M")
	if err != nil {
		return nil, fmt.Errorf("display: measure font: %w", err)
	}

	d := &SDL{
		font:    font,
		profile: opts.Profile,
		log:     internal.GetLogger(),
		cellW:   int32(cw),
		cellH:   int32(ch),
	}

	width := d.cellW * int32(opts.Profile.CharsW+2)
	height := d.cellH * int32(opts.Profile.StoryH+2)

	d.window, err = sdl.CreateWindow(opts.Title,
		sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED,
		width, height, sdl.WINDOW_SHOWN)
	if err != nil {
		return nil, fmt.Errorf("display: create window: %w", err)
	}

	d.renderer, err = sdl.CreateRenderer(d.window, -1, sdl.RENDERER_ACCELERATED|sdl.RENDERER_PRESENTVSYNC)
	if err != nil {
		return nil, fmt.Errorf("display: create renderer: %w", err)
	}

	d.badge = d.textureFromRGBA(rasterizeSVG(iconEyeSVG, int(d.cellH)))

	return d, nil
}

// Close releases all SDL resources.
func (d *SDL) Close() {
	if d.badge != nil {
		d.badge.Destroy()
	}
	if d.renderer != nil {
		d.renderer.Destroy()
	}
	if d.window != nil {
		d.window.Destroy()
	}
	if d.font != nil {
		d.font.Close()
	}
	ttf.Quit()
	sdl.Quit()
}

func (d *SDL) textureFromRGBA(img *image.RGBA) *sdl.Texture {
	w := int32(img.Bounds().Dx())
	h := int32(img.Bounds().Dy())
	surface, err := sdl.CreateRGBSurfaceWithFormatFrom(
		unsafe.Pointer(&img.Pix[0]), w, h, 32, int32(img.Stride),
		uint32(sdl.PIXELFORMAT_ABGR8888))
	if err != nil {
		d.log.Error("badge surface failed", "error", err)
		return nil
	}
	defer surface.Free()

	texture, err := d.renderer.CreateTextureFromSurface(surface)
	if err != nil {
		d.log.Error("badge texture failed", "error", err)
		return nil
	}
	return texture
}

func (d *SDL) clear() {
	d.renderer.SetDrawColor(colorBackground.R, colorBackground.G, colorBackground.B, colorBackground.A)
	d.renderer.Clear()
}

// drawText renders one line of text at a character cell position.
func (d *SDL) drawText(text string, col, row int, color sdl.Color) {
	if text == "" {
		return
	}

	surface, err := d.font.RenderUTF8Blended(text, color)
	if err != nil {
		d.log.Error("text render failed", "text", text, "error", err)
		return
	}
	defer surface.Free()

	texture, err := d.renderer.CreateTextureFromSurface(surface)
	if err != nil {
		d.log.Error("text texture failed", "error", err)
		return
	}
	defer texture.Destroy()

	dst := sdl.Rect{
		X: d.cellW * int32(col+1),
		Y: d.cellH * int32(row+1),
		W: surface.W,
		H: surface.H,
	}
	d.renderer.Copy(texture, nil, &dst)
}

// DrawStory renders the visible story window with title, scroll indicator,
// and the sensitive badge.
func (d *SDL) DrawStory(lines []string, top, total int, sensitive bool) {
	d.clear()

	for i, line := range lines {
		if rest, ok := strings.CutPrefix(line, TitleMarker); ok {
			d.drawText(rest, 0, i, colorTitle)
			continue
		}
		d.drawText(line, 0, i, colorText)
	}

	d.drawScrollIndicator(top, total, d.profile.StoryH)

	if sensitive && d.badge != nil {
		d.renderer.Copy(d.badge, nil, &sdl.Rect{
			X: d.cellW * int32(d.profile.CharsW+1),
			Y: 0,
			W: d.cellH,
			H: d.cellH,
		})
	}

	d.renderer.Present()
}

// DrawMenu renders the visible menu labels with inverse video on the
// selection.
func (d *SDL) DrawMenu(labels []string, selected, ypos, total int) {
	d.clear()

	for i, label := range labels {
		if i == selected {
			d.renderer.SetDrawColor(colorTitle.R, colorTitle.G, colorTitle.B, colorTitle.A)
			d.renderer.FillRect(&sdl.Rect{
				X: d.cellW / 2,
				Y: d.cellH * int32(i+1),
				W: d.cellW * int32(d.profile.CharsW+1),
				H: d.cellH,
			})
			d.drawText(label, 0, i, colorBackground)
			continue
		}
		d.drawText(label, 0, i, colorText)
	}

	d.drawScrollIndicator(ypos, total, len(labels))

	d.renderer.Present()
}

// drawScrollIndicator draws the right-edge position bar when the content
// is taller than the viewport.
func (d *SDL) drawScrollIndicator(top, total, viewport int) {
	if total <= viewport {
		return
	}

	trackX := d.cellW*int32(d.profile.CharsW+1) + d.cellW/4
	trackY := d.cellH
	trackH := d.cellH * int32(viewport)

	d.renderer.SetDrawColor(colorHint.R, colorHint.G, colorHint.B, 100)
	d.renderer.FillRect(&sdl.Rect{X: trackX, Y: trackY, W: d.cellW / 4, H: trackH})

	handleH := max32(trackH*int32(viewport)/int32(total), d.cellH/2)
	handleY := trackY + (trackH-handleH)*int32(top)/int32(total-viewport)

	d.renderer.SetDrawColor(colorText.R, colorText.G, colorText.B, colorText.A)
	d.renderer.FillRect(&sdl.Rect{X: trackX, Y: handleY, W: d.cellW / 4, H: handleH})
}

// Fullscreen shows a single centered message.
func (d *SDL) Fullscreen(msg string) {
	d.fullscreenMsg = msg
	d.renderFullscreen(-1)
}

// ProgressBar redraws the current fullscreen message with a progress bar
// underneath.
func (d *SDL) ProgressBar(fraction float64) {
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	d.renderFullscreen(fraction)
}

func (d *SDL) renderFullscreen(fraction float64) {
	d.clear()

	rows := strings.Split(d.fullscreenMsg, "\n")
	startRow := (d.profile.StoryH - len(rows)) / 2
	if startRow < 0 {
		startRow = 0
	}
	for i, row := range rows {
		col := (d.profile.CharsW - len([]rune(row))) / 2
		if col < 0 {
			col = 0
		}
		d.drawText(row, col, startRow+i, colorText)
	}

	if fraction >= 0 {
		barY := d.cellH * int32(d.profile.StoryH+1)
		barW := d.cellW * int32(d.profile.CharsW)
		d.renderer.SetDrawColor(colorHint.R, colorHint.G, colorHint.B, colorHint.A)
		d.renderer.DrawRect(&sdl.Rect{X: d.cellW, Y: barY, W: barW, H: d.cellH / 2})
		d.renderer.SetDrawColor(colorTitle.R, colorTitle.G, colorTitle.B, colorTitle.A)
		d.renderer.FillRect(&sdl.Rect{X: d.cellW, Y: barY, W: int32(float64(barW) * fraction), H: d.cellH / 2})
	}

	d.renderer.Present()
}

// ShowFatalError renders the terminal error banner.
func (d *SDL) ShowFatalError(lines []string) {
	d.clear()

	d.renderer.SetDrawColor(colorFatal.R, colorFatal.G, colorFatal.B, colorFatal.A)
	d.renderer.FillRect(&sdl.Rect{X: 0, Y: 0, W: d.cellW * int32(d.profile.CharsW+2), H: d.cellH})

	for i, line := range lines {
		d.drawText(line, 0, i+1, colorText)
	}

	d.renderer.Present()
}

// PumpEvents translates SDL keyboard events into keypad chord states and
// posts them to q. It blocks until the window is closed, so call it from
// the main goroutine while the driver loop runs elsewhere.
func (d *SDL) PumpEvents(q *keypad.Queue, keymap map[sdl.Keycode]keypad.Key) {
	held := make(map[keypad.Key]bool)

	for {
		event := sdl.WaitEvent()
		switch e := event.(type) {
		case *sdl.QuitEvent:
			return
		case *sdl.KeyboardEvent:
			k, ok := keymap[e.Keysym.Sym]
			if !ok {
				continue
			}
			switch e.Type {
			case sdl.KEYDOWN:
				if e.Repeat != 0 {
					continue
				}
				held[k] = true
			case sdl.KEYUP:
				delete(held, k)
			default:
				continue
			}
			q.Post(keypad.Chord(held))
		}
	}
}

// SimKeymap maps desktop keyboard keys to the device's logical keypad for
// the simulator.
func SimKeymap() map[sdl.Keycode]keypad.Key {
	return map[sdl.Keycode]keypad.Key{
		sdl.K_0:        "0",
		sdl.K_1:        "1",
		sdl.K_2:        "2",
		sdl.K_3:        "3",
		sdl.K_4:        "4",
		sdl.K_5:        "5",
		sdl.K_6:        "6",
		sdl.K_7:        "7",
		sdl.K_8:        "8",
		sdl.K_9:        "9",
		sdl.K_y:        keypad.KeyYes,
		sdl.K_x:        keypad.KeyNo,
		sdl.K_RETURN:   keypad.KeySelect,
		sdl.K_ESCAPE:   keypad.KeyCancel,
		sdl.K_UP:       keypad.KeyUp,
		sdl.K_DOWN:     keypad.KeyDown,
		sdl.K_LEFT:     keypad.KeyLeft,
		sdl.K_RIGHT:    keypad.KeyRight,
		sdl.K_HOME:     keypad.KeyHome,
		sdl.K_END:      keypad.KeyEnd,
		sdl.K_PAGEUP:   keypad.KeyPageUp,
		sdl.K_PAGEDOWN: keypad.KeyPageDown,
		sdl.K_TAB:      keypad.KeyTab,
		sdl.K_q:        keypad.KeyQR,
		sdl.K_n:        keypad.KeyNFC,
	}
}

func max32(a, b int32) int32 {
	if a > b {
		return a
	}
	return b
}
