package cpu

import (
	"bufio"
	"fmt"
	"image"
	"image/png"
	"os"
)

var encoder = png.Encoder{CompressionLevel: png.BestSpeed}

// WritePNG writes img to path, replacing any existing file.
func WritePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	w := bufio.NewWriter(f)
	if err := encoder.Encode(w, img); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}
