// Command beebcore is a thin demo host: it loads ROM images into a
// system.System, runs it for a fixed number of cycles, and optionally
// opens a debug preview window showing the reconstructed video field.
package main

import (
	"flag"
	"image"
	"image/color"
	"image/draw"
	"io/ioutil"
	"log"

	"github.com/jmchacon/beebcore/memory"
	"github.com/jmchacon/beebcore/system"
	"github.com/jmchacon/beebcore/video"
	xdraw "golang.org/x/image/draw"
)

var (
	osRomPath    = flag.String("os_rom", "", "Path to the 16KB OS ROM image")
	pagedRomPath = flag.String("paged_rom", "", "Path to a 16KB paged (sideways) ROM image to load into the bank given by -paged_bank")
	pagedBank    = flag.Int("paged_bank", 15, "Paged ROM bank to load -paged_rom into (0-15)")
	untilCycle   = flag.Uint64("until_cycle", 1_000_000, "Run until the clock reaches this cycle count")
	display      = flag.Bool("display", false, "If true, open a debug preview window showing a reconstructed video field")
	scale        = flag.Int("scale", 2, "Scale factor for the debug preview window")
)

// ulaPalette8 maps the ULA's 8 architectural colours to an approximate
// RGB table for the debug preview; the core itself never performs this
// conversion.
var ulaPalette8 = [8]color.RGBA{
	{0, 0, 0, 255}, {255, 0, 0, 255}, {0, 255, 0, 255}, {255, 255, 0, 255},
	{0, 0, 255, 255}, {255, 0, 255, 255}, {0, 255, 255, 255}, {255, 255, 255, 255},
}

func loadROM(path string) []uint8 {
	if path == "" {
		return nil
	}
	data, err := ioutil.ReadFile(path)
	if err != nil {
		log.Fatalf("can't read ROM %q: %v", path, err)
	}
	return data
}

func main() {
	flag.Parse()

	s := system.New()

	if data := loadROM(*osRomPath); data != nil {
		if err := s.LoadROM(memory.NumBanks, data); err != nil {
			log.Fatalf("can't load OS ROM: %v", err)
		}
	}
	if data := loadROM(*pagedRomPath); data != nil {
		if err := s.LoadROM(*pagedBank, data); err != nil {
			log.Fatalf("can't load paged ROM bank %d: %v", *pagedBank, err)
		}
	}

	s.Reset()
	log.Printf("reset complete, pc=%#04x", s.CPU.Regs.PC.Uint16())

	actual, err := s.Run(*untilCycle)
	if err != nil {
		log.Fatalf("run error: %v", err)
	}
	log.Printf("ran to cycle %d", actual)

	if *display {
		runPreview(s, *scale)
	}
}

// buildPreviewImage renders the most recently snapshotted Field into an
// image.RGBA, using the raw ULA palette nibbles per line.
func buildPreviewImage(f *video.Field) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 100, video.MaxLines))
	for y := 0; y < video.MaxLines; y++ {
		line := &f.Lines[y]
		if line.Flags&video.FlagHasBytes == 0 {
			continue
		}
		for x, b := range line.CharData {
			entry := uint(b) & 0x0F
			idx := (line.ULAPalette >> (entry * 4)) & 0x07
			img.Set(x, y, ulaPalette8[idx])
		}
	}
	return img
}

func runPreview(s *system.System, scaleFactor int) {
	f := s.VideoFieldPointer()
	src := buildPreviewImage(f)
	dstBounds := image.Rect(0, 0, src.Bounds().Dx()*scaleFactor, src.Bounds().Dy()*scaleFactor)
	dst := image.NewRGBA(dstBounds)
	xdraw.NearestNeighbor.Scale(dst, dstBounds, src, src.Bounds(), draw.Over, nil)

	openSDLWindow(dst)
}
