package drawing

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"strings"

	"github.com/gen2brain/go-fitz"

	_ "golang.org/x/image/tiff"
)

// Rasterize turns an uploaded file into the full-resolution source image
// for region selection. Raster formats decode directly; a PDF has its first
// page rendered. Anything else is an unsupported-type error and the
// pipeline stays in the upload phase.
func Rasterize(data []byte, filename string) (image.Image, error) {
	if isPDF(data, filename) {
		return rasterizePDF(data)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("unsupported drawing file %q: %w", filename, err)
	}
	return img, nil
}

func isPDF(data []byte, filename string) bool {
	if strings.HasSuffix(strings.ToLower(filename), ".pdf") {
		return true
	}
	return len(data) >= 5 && string(data[:5]) == "%PDF-"
}

// pdfDPI renders drawings dense enough for table OCR without ballooning
// memory on E-size sheets.
const pdfDPI = 200

func rasterizePDF(data []byte) (image.Image, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return nil, fmt.Errorf("open PDF: %w", err)
	}
	defer doc.Close()

	if doc.NumPage() < 1 {
		return nil, fmt.Errorf("PDF contains no pages")
	}
	img, err := doc.ImageDPI(0, pdfDPI)
	if err != nil {
		return nil, fmt.Errorf("rasterize PDF page: %w", err)
	}
	return img, nil
}
