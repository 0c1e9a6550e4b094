package extract

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"strconv"
	"strings"

	"vessel-studio/internal/sizes"
	"vessel-studio/internal/vessel"

	"github.com/otiai10/gosseract/v2"
	"github.com/rs/zerolog"
	"gocv.io/x/gocv"
)

// TableChars restricts OCR to what a nozzle schedule contains. Lowercase is
// excluded to avoid 0/O and 1/I confusion in size callouts.
const TableChars = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ\"/.- "

// OCREngine reads the nozzle schedule region with Tesseract. It is a local
// fallback Extractor: it fills only the nozzle list, leaving the shell
// fields for the operator. Preprocessing runs through OpenCV the same way
// the drawing crops would reach a remote service already cleaned up.
type OCREngine struct {
	client *gosseract.Client
	log    zerolog.Logger
}

// NewOCREngine creates the engine and configures Tesseract for tabular
// part callouts: English base language with dictionary correction disabled,
// since nozzle tags are not words.
func NewOCREngine(log zerolog.Logger) (*OCREngine, error) {
	client := gosseract.NewClient()
	if err := client.SetLanguage("eng"); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to set OCR language: %w", err)
	}
	_ = client.SetVariable("load_system_dawg", "false")
	_ = client.SetVariable("load_freq_dawg", "false")
	return &OCREngine{client: client, log: log}, nil
}

// Close releases Tesseract resources.
func (e *OCREngine) Close() error {
	if e.client != nil {
		return e.client.Close()
	}
	return nil
}

// Extract implements Extractor using the table crop only. Without a table
// region the result is empty but valid; the operator keys the shell in.
func (e *OCREngine) Extract(ctx context.Context, crops []Crop) (*Result, error) {
	result := &Result{Nozzles: []vessel.NozzleConfig{}, Saddles: []vessel.SaddleConfig{}}

	var table *Crop
	for i := range crops {
		if crops[i].Kind == RegionTable {
			table = &crops[i]
		}
	}
	if table == nil {
		return result, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	text, err := e.recognize(table)
	if err != nil {
		return nil, err
	}
	result.Nozzles = ParseNozzleTable(text)
	e.log.Debug().Int("rows", len(result.Nozzles)).Msg("nozzle table OCR")
	return result, nil
}

func (e *OCREngine) recognize(crop *Crop) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, crop.Image); err != nil {
		return "", fmt.Errorf("encode table crop: %w", err)
	}
	src, err := gocv.IMDecode(buf.Bytes(), gocv.IMReadColor)
	if err != nil {
		return "", fmt.Errorf("decode table crop: %w", err)
	}
	defer src.Close()
	if src.Empty() {
		return "", fmt.Errorf("empty table crop")
	}

	// Upscale, grayscale, and binarize; drawing tables are thin-lined.
	processed := preprocessTable(src)
	defer processed.Close()

	encoded, err := gocv.IMEncode(gocv.PNGFileExt, processed)
	if err != nil {
		return "", fmt.Errorf("encode preprocessed crop: %w", err)
	}
	defer encoded.Close()

	if err := e.client.SetPageSegMode(gosseract.PSM_SINGLE_BLOCK); err != nil {
		return "", fmt.Errorf("failed to set PSM: %w", err)
	}
	if err := e.client.SetWhitelist(TableChars); err != nil {
		return "", fmt.Errorf("failed to set whitelist: %w", err)
	}
	if err := e.client.SetImageFromBytes(encoded.GetBytes()); err != nil {
		return "", fmt.Errorf("failed to set image: %w", err)
	}
	text, err := e.client.Text()
	if err != nil {
		return "", fmt.Errorf("OCR failed: %w", err)
	}
	return text, nil
}

func preprocessTable(src gocv.Mat) gocv.Mat {
	gray := gocv.NewMat()
	gocv.CvtColor(src, &gray, gocv.ColorBGRToGray)

	scaled := gocv.NewMat()
	gocv.Resize(gray, &scaled, image.Point{}, 2.0, 2.0, gocv.InterpolationCubic)
	gray.Close()

	binary := gocv.NewMat()
	gocv.Threshold(scaled, &binary, 0, 255, gocv.ThresholdBinary|gocv.ThresholdOtsu)
	scaled.Close()
	return binary
}

// ParseNozzleTable parses OCR text of a nozzle schedule. Expected row shape:
// tag, size callout, elevation/position, angle, whitespace separated, e.g.
//
//	N1 4" 1200 90
//
// Rows that do not yield a tag plus a parsable size are skipped; a partial
// schedule is more useful than a failed import.
func ParseNozzleTable(text string) []vessel.NozzleConfig {
	var out []vessel.NozzleConfig
	for _, line := range strings.Split(text, "\n") {
		fields := strings.Fields(strings.TrimSpace(line))
		if len(fields) < 2 {
			continue
		}
		tag := fields[0]
		if !isNozzleTag(tag) {
			continue
		}
		pipe, ok := parseSizeCallout(fields[1])
		if !ok {
			continue
		}
		cfg := vessel.NozzleConfig{
			Name:   tag,
			Bore:   pipe.ID,
			Length: 150,
		}
		if len(fields) >= 3 {
			if v, err := strconv.ParseFloat(fields[2], 64); err == nil && v >= 0 {
				cfg.Position = v
			}
		}
		if len(fields) >= 4 {
			if v, err := strconv.ParseFloat(fields[3], 64); err == nil {
				cfg.Angle = v
			}
		}
		out = append(out, cfg)
	}
	return out
}

// isNozzleTag accepts the usual N1/N12A drawing tags.
func isNozzleTag(s string) bool {
	if len(s) < 2 || (s[0] != 'N' && s[0] != 'M') {
		return false
	}
	return s[1] >= '0' && s[1] <= '9'
}

// parseSizeCallout resolves callouts like 4", 4IN, or a bare 4 against the
// standard pipe table.
func parseSizeCallout(s string) (sizes.PipeSize, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	s = strings.TrimSuffix(s, "IN")
	s = strings.TrimSuffix(s, "\"")
	if s == "" {
		return sizes.PipeSize{}, false
	}
	if p, ok := sizes.GetPipe(s + "\""); ok {
		return p, true
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v <= 0 {
		return sizes.PipeSize{}, false
	}
	// Callout is inches nominal; the table IDs are mm.
	return sizes.NearestPipe(v * 25.4), true
}
