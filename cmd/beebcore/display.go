package main

import (
	"image"
	"log"

	"github.com/veandco/go-sdl2/sdl"
)

// openSDLWindow blits img once into an SDL2 window and waits for the
// window to be closed, the same way vcs_main.go drives its TIA
// framebuffer to screen every frame - this demo host has exactly one
// frame to show, so it blits once and waits.
func openSDLWindow(img *image.RGBA) {
	sdl.Main(func() {
		sdl.Do(func() {
			if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
				log.Fatalf("can't init SDL: %v", err)
			}
			defer sdl.Quit()

			b := img.Bounds()
			window, err := sdl.CreateWindow("beebcore preview", sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED, int32(b.Dx()), int32(b.Dy()), sdl.WINDOW_SHOWN)
			if err != nil {
				log.Fatalf("can't create window: %v", err)
			}
			defer window.Destroy()

			surface, err := window.GetSurface()
			if err != nil {
				log.Fatalf("can't get window surface: %v", err)
			}
			pixels := surface.Pixels()
			for y := 0; y < b.Dy(); y++ {
				for x := 0; x < b.Dx(); x++ {
					i := int32(y)*surface.Pitch + int32(x)*int32(surface.Format.BytesPerPixel)
					c := img.RGBAAt(x, y)
					pixels[i+0] = c.R
					pixels[i+1] = c.G
					pixels[i+2] = c.B
					pixels[i+3] = c.A
				}
			}
			window.UpdateSurface()

			running := true
			for running {
				for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
					switch event.(type) {
					case *sdl.QuitEvent:
						running = false
					}
				}
			}
		})
	})
}
