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

package capture

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Dodotree/zebra-sub000/logger"

	// decoders for every image format a sequence can be made of
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// list of file extensions that are recognised when a directory is used as a
// sequence
var extensions = []string{".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tif", ".tiff", ".webp"}

// Sequence is a Source that plays a list of still images. The images are
// scaled to the size of the sequence and the sequence loops after the last
// image.
type Sequence struct {
	width  int
	height int
	depth  int

	files  []string
	frames [][]byte

	// frame index and number of times Frame() has been called
	idx int
	seq int
}

// NewSequence is the preferred method of initialisation for the Sequence
// type. Each entry in the list of paths can be a file or a directory. The
// recognised files in a directory are added in name order.
func NewSequence(paths []string, width int, height int, depth int) (*Sequence, error) {
	if !ValidDepth(depth) {
		return nil, fmt.Errorf("capture: unsupported depth (%d)", depth)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("capture: invalid dimensions (%dx%d)", width, height)
	}

	seq := &Sequence{
		width:  width,
		height: height,
		depth:  depth,
	}

	for _, p := range paths {
		fi, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("capture: %w", err)
		}

		if !fi.IsDir() {
			seq.files = append(seq.files, p)
			continue
		}

		entries, err := os.ReadDir(p)
		if err != nil {
			return nil, fmt.Errorf("capture: %w", err)
		}

		var names []string
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			ext := strings.ToLower(filepath.Ext(e.Name()))
			for _, x := range extensions {
				if ext == x {
					names = append(names, filepath.Join(p, e.Name()))
					break
				}
			}
		}
		sort.Strings(names)
		seq.files = append(seq.files, names...)
	}

	if len(seq.files) == 0 {
		return nil, fmt.Errorf("capture: no images in sequence")
	}

	seq.frames = make([][]byte, len(seq.files))

	return seq, nil
}

func (seq *Sequence) load(idx int) ([]byte, error) {
	if seq.frames[idx] != nil {
		return seq.frames[idx], nil
	}

	f, err := os.Open(seq.files[idx])
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", seq.files[idx], err)
	}

	pix, err := FromImage(img, seq.width, seq.height, seq.depth)
	if err != nil {
		return nil, err
	}

	logger.Logf(logger.Allow, "capture", "loaded %s image: %s", format, filepath.Base(seq.files[idx]))
	seq.frames[idx] = pix

	return pix, nil
}

// Len returns the number of images in the sequence.
func (seq *Sequence) Len() int {
	return len(seq.files)
}

// Frame implements the Source interface. An image that cannot be decoded
// results in a frame that has a ready state of HaveNothing.
func (seq *Sequence) Frame() Frame {
	seq.seq++

	f := Frame{
		Width:    seq.width,
		Height:   seq.height,
		Depth:    seq.depth,
		Sequence: seq.seq,
	}

	pix, err := seq.load(seq.idx)
	seq.idx = (seq.idx + 1) % len(seq.files)
	if err != nil {
		logger.Log(logger.Allow, "capture", err)
		f.Ready = HaveNothing
		return f
	}

	f.Pixels = pix
	f.Ready = HaveEnoughData
	return f
}

// Resize implements the Resizer interface. Images are decoded again at the
// new size when they are next needed.
func (seq *Sequence) Resize(width int, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("capture: invalid dimensions (%dx%d)", width, height)
	}
	seq.width = width
	seq.height = height
	seq.frames = make([][]byte, len(seq.files))
	return nil
}

// Close implements the Source interface.
func (seq *Sequence) Close() error {
	seq.frames = nil
	seq.files = nil
	return nil
}
