// This file is part of zebra.
//
// zebra is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// zebra is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with zebra.  If not, see <https://www.gnu.org/licenses/>.

package pipeline_test

import (
	"path/filepath"
	"testing"

	"github.com/Dodotree/zebra-sub000/capture"
	"github.com/Dodotree/zebra-sub000/gpu/recorder"
	"github.com/Dodotree/zebra-sub000/pipeline"
	"github.com/Dodotree/zebra-sub000/test"
)

func TestReadback(t *testing.T) {
	rb := pipeline.Readback{
		Width:        2,
		Height:       1,
		SourceWidth:  16,
		SourceHeight: 4,
		Mask:         []byte{0x01, 0x00, 0x00, 0x80, 0x00, 0x02, 0x00, 0x00},
	}

	test.ExpectSuccess(t, rb.Pixel(0, 0))
	test.ExpectSuccess(t, rb.Pixel(7, 3))
	test.ExpectSuccess(t, rb.Pixel(9, 1))
	test.ExpectFailure(t, rb.Pixel(1, 0))
	test.ExpectFailure(t, rb.Pixel(8, 1))
	test.ExpectFailure(t, rb.Pixel(16, 0))
	test.ExpectFailure(t, rb.Pixel(-1, 0))

	img := rb.Image()
	test.ExpectEquality(t, img.Bounds().Dx(), 16)
	test.ExpectEquality(t, img.Bounds().Dy(), 4)
	test.ExpectEquality(t, img.GrayAt(9, 1).Y, 0xff)
	test.ExpectEquality(t, img.GrayAt(10, 1).Y, 0x00)

	dir := t.TempDir()
	test.ExpectSuccess(t, rb.SaveMask(filepath.Join(dir, "mask.png")))

	// no coordinate data outside of debug mode
	test.ExpectFailure(t, rb.SaveCoords(filepath.Join(dir, "coords.tiff")))

	rb.Coords = make([]float32, rb.Width*rb.Height*4)
	rb.Coords[4] = 8
	test.ExpectSuccess(t, rb.SaveCoords(filepath.Join(dir, "coords.tiff")))
}

func TestReadbackAfterIterations(t *testing.T) {
	for iterations := 1; iterations <= 3; iterations++ {
		rec := recorder.NewRecorder()
		rec.FillDraws = true

		cfg := pipeline.DefaultConfig(64, 32)
		cfg.MaxIterations = iterations
		cfg.Debug = true
		p := create(t, rec, cfg)

		test.DemandSuccess(t, p.ProcessAndDraw(frame(cfg, 1, capture.HaveEnoughData)), iterations)
		for p.Tick() {
		}
		test.ExpectEquality(t, p.Stats().Cycles, 1, iterations)

		// the packed mask is written by the first draw and by no other
		draws := rec.Draws()
		test.DemandEquality(t, p.PassName(draws[0].Framebuffer), "packing", iterations)
		packed := p.TextureHandle(pipeline.SlotPacked)
		for i, d := range draws {
			for _, a := range d.DrawBuffers {
				if d.Attachments[a] == packed {
					test.ExpectEquality(t, i, 0, iterations)
				}
			}
		}

		rb, err := p.Readback()
		test.DemandSuccess(t, err, iterations)
		for i, b := range rb.Mask {
			if b != 1 {
				t.Errorf("iterations %d: mask byte %d written by draw %d", iterations, i, b)
				break
			}
		}
		test.ExpectEquality(t, len(rb.Coords), len(rb.Mask), iterations)

		p.Destroy()
		test.ExpectEquality(t, rec.Live(), 0, iterations)
	}
}
