package surface

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/matzehuels/execreport/pkg/errors"
)

// imageType sniffs data and returns the fpdf image type for it.
func imageType(name string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", errors.New(errors.ErrCodeEncoding, "image %q has no data", name)
	}
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeEncoding, err, "decode image %q", name)
	}
	switch format {
	case "png":
		return "PNG", nil
	case "jpeg":
		return "JPG", nil
	case "gif":
		return "GIF", nil
	}
	return "", errors.New(errors.ErrCodeEncoding, "image %q: unsupported format %s", name, format)
}

// imageKey names an image resource by content so identical charts are
// embedded once and names never depend on call order.
func imageKey(data []byte) string {
	sum := sha256.Sum256(data)
	return "img-" + hex.EncodeToString(sum[:8])
}
