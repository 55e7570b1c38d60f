package render

import (
	"fmt"
	"os"

	"golang.org/x/image/font/gofont/goregular"
)

// LoadFontData returns the contents of the font file at path. An empty path
// selects the embedded Go Regular face so every backend works without assets.
func LoadFontData(path string) ([]byte, error) {
	if path == "" {
		return goregular.TTF, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read font: %w", err)
	}
	return data, nil
}
