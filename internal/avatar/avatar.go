// Package avatar normalizes uploaded profile images: every accepted upload is
// resized to a fixed square and re-encoded as PNG before it reaches storage,
// so the fetch endpoint can always serve image/png bytes as-is.
package avatar

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
)

const (
	// MaxUploadBytes caps per-request memory for avatar uploads.
	MaxUploadBytes = 1_000_000

	// Size is the square edge length of every stored avatar.
	Size = 250
)

var allowedExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// AllowedExt reports whether the filename carries an accepted extension.
func AllowedExt(filename string) bool {
	return allowedExts[strings.ToLower(filepath.Ext(filename))]
}

// Normalize decodes the uploaded bytes, crops-and-scales to Size×Size and
// re-encodes as PNG. A buffer that does not decode as an image is a client
// error, reported as-is.
func Normalize(buf []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(buf))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	thumb := imaging.Fill(img, Size, Size, imaging.Center, imaging.Lanczos)

	var out bytes.Buffer
	if err := imaging.Encode(&out, thumb, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode avatar: %w", err)
	}
	return out.Bytes(), nil
}
