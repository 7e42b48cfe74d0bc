package debug

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"
)

// Screenshot writes framebuffer contents to timestamped PNG files.
type Screenshot struct {
	outputDir string
	prefix    string
	now       func() time.Time
}

// NewScreenshot returns a capture that writes prefix_<timestamp>.png into
// outputDir. An empty outputDir means the working directory.
func NewScreenshot(outputDir, prefix string) *Screenshot {
	return &Screenshot{outputDir: outputDir, prefix: prefix, now: time.Now}
}

// Filename returns the path the next capture will be written to.
func (s *Screenshot) Filename() string {
	name := fmt.Sprintf("%s_%s.png", s.prefix, s.now().Format("2006-01-02_15-04-05"))
	if s.outputDir != "" {
		name = filepath.Join(s.outputDir, name)
	}
	return name
}

// FromPixels encodes bottom-up RGBA rows, as read back from OpenGL, into a
// top-down image.
func FromPixels(pixels []byte, width, height int) (*image.RGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid capture size %dx%d", width, height)
	}
	if len(pixels) != width*height*4 {
		return nil, fmt.Errorf("pixel data size mismatch: expected %d, got %d", width*height*4, len(pixels))
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	row := width * 4
	for y := 0; y < height; y++ {
		src := (height - 1 - y) * row
		copy(img.Pix[y*img.Stride:y*img.Stride+row], pixels[src:src+row])
	}
	return img, nil
}

// Capture saves raw GL pixels and returns the written path.
func (s *Screenshot) Capture(pixels []byte, width, height int) (string, error) {
	img, err := FromPixels(pixels, width, height)
	if err != nil {
		return "", err
	}
	return s.Save(img)
}

// Save encodes img as PNG and returns the written path.
func (s *Screenshot) Save(img image.Image) (string, error) {
	if s.outputDir != "" {
		if err := os.MkdirAll(s.outputDir, 0755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}

	name := s.Filename()
	f, err := os.Create(name)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return "", fmt.Errorf("encoding PNG: %w", err)
	}
	return name, nil
}
