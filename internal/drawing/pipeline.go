package drawing

import (
	"context"
	"errors"
	"fmt"
	"image"

	"vessel-studio/internal/extract"

	"github.com/rs/zerolog"
)

// Phase is the import pipeline state. Transitions are linear with two
// backward edges: extraction failure and "back from result" both return to
// region selection.
type Phase int

const (
	PhaseUpload Phase = iota
	PhaseSelect
	PhaseExtracting
	PhaseResult
)

func (p Phase) String() string {
	switch p {
	case PhaseUpload:
		return "upload"
	case PhaseSelect:
		return "select"
	case PhaseExtracting:
		return "extracting"
	case PhaseResult:
		return "result"
	default:
		return "unknown"
	}
}

// Pipeline drives one drawing import. All methods must be called from the
// UI thread; the extraction goroutine hands its outcome back through the
// dispatch function, and a generation counter discards outcomes that arrive
// after Reset or Close.
type Pipeline struct {
	phase   Phase
	source  image.Image
	view    Viewport
	regions *Regions
	result  *extract.Result
	errMsg  string

	gen       int
	extractor extract.Extractor
	dispatch  func(func())
	onChange  func()
	cancel    context.CancelFunc
	log       zerolog.Logger
}

// NewPipeline creates a pipeline in the upload phase.
func NewPipeline(extractor extract.Extractor, log zerolog.Logger) *Pipeline {
	return &Pipeline{
		phase:     PhaseUpload,
		view:      NewViewport(),
		regions:   NewRegions(),
		extractor: extractor,
		dispatch:  func(f func()) { f() },
		log:       log,
	}
}

// SetDispatch installs the function that marshals extraction completions
// onto the UI thread (fyne.Do in the application, identity in tests).
func (p *Pipeline) SetDispatch(dispatch func(func())) {
	if dispatch != nil {
		p.dispatch = dispatch
	}
}

// SetOnChange installs a change notification hook for the UI.
func (p *Pipeline) SetOnChange(fn func()) {
	p.onChange = fn
}

func (p *Pipeline) changed() {
	if p.onChange != nil {
		p.onChange()
	}
}

// Phase returns the current phase.
func (p *Pipeline) Phase() Phase {
	return p.phase
}

// Error returns the user-visible error from the last failed operation.
func (p *Pipeline) Error() string {
	return p.errMsg
}

// Source returns the full-resolution drawing image, nil before upload.
func (p *Pipeline) Source() image.Image {
	return p.source
}

// View returns the current pan/zoom viewport.
func (p *Pipeline) View() Viewport {
	return p.view
}

// SetView replaces the viewport (pan and zoom updates from the canvas).
func (p *Pipeline) SetView(v Viewport) {
	p.view = v
}

// Regions exposes the selection rectangles.
func (p *Pipeline) Regions() *Regions {
	return p.regions
}

// Upload rasterizes the uploaded file and advances to region selection.
// Unsupported files leave the pipeline in the upload phase with an inline
// error and no other state change.
func (p *Pipeline) Upload(data []byte, filename string) error {
	if p.phase != PhaseUpload {
		return fmt.Errorf("upload not allowed in phase %s", p.phase)
	}
	img, err := Rasterize(data, filename)
	if err != nil {
		p.errMsg = err.Error()
		p.changed()
		return err
	}
	p.source = img
	p.errMsg = ""
	p.view = NewViewport()
	p.phase = PhaseSelect
	b := img.Bounds()
	p.log.Info().Str("file", filename).Int("w", b.Dx()).Int("h", b.Dy()).Msg("drawing uploaded")
	p.changed()
	return nil
}

// BeginExtract crops the defined regions from the source and starts the
// extraction call. Requires the select phase and a side region; the
// Extracting phase is exclusive, so a second request cannot start while one
// is in flight.
func (p *Pipeline) BeginExtract() error {
	if p.phase != PhaseSelect {
		return fmt.Errorf("extraction not allowed in phase %s", p.phase)
	}
	if !p.regions.HasSide() {
		p.errMsg = "a side view region is required"
		p.changed()
		return errors.New(p.errMsg)
	}

	crops := p.regions.CropAll(p.source)
	if len(crops) == 0 {
		p.errMsg = "no usable regions selected"
		p.changed()
		return errors.New(p.errMsg)
	}

	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel
	p.phase = PhaseExtracting
	p.errMsg = ""
	p.changed()

	gen := p.gen
	extractor := p.extractor
	go func() {
		result, err := extractor.Extract(ctx, crops)
		p.dispatch(func() {
			p.finishExtract(gen, result, err)
		})
	}()
	return nil
}

// finishExtract applies an extraction outcome on the UI thread. Outcomes
// from a previous generation (the pipeline was reset or closed meanwhile)
// are discarded without touching state.
func (p *Pipeline) finishExtract(gen int, result *extract.Result, err error) {
	if gen != p.gen || p.phase != PhaseExtracting {
		p.log.Debug().Int("gen", gen).Msg("stale extraction result discarded")
		return
	}
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	if err != nil {
		p.phase = PhaseSelect
		p.errMsg = fmt.Sprintf("extraction failed: %v", err)
		p.log.Warn().Err(err).Msg("extraction failed")
		p.changed()
		return
	}
	p.result = result
	p.errMsg = ""
	p.phase = PhaseResult
	p.changed()
}

// Result returns the extraction output for review, nil outside the result
// phase.
func (p *Pipeline) Result() *extract.Result {
	if p.phase != PhaseResult {
		return nil
	}
	return p.result
}

// Back returns from result review to region selection, keeping the drawn
// regions for re-extraction.
func (p *Pipeline) Back() {
	if p.phase != PhaseResult {
		return
	}
	p.phase = PhaseSelect
	p.result = nil
	p.changed()
}

// Apply hands the reviewed result to the host. Valid only in the result
// phase; the pipeline itself never mutates vessel state.
func (p *Pipeline) Apply() (*extract.Result, bool) {
	if p.phase != PhaseResult || p.result == nil {
		return nil, false
	}
	return p.result, true
}

// Reset clears all transient state (image, regions, result, view, error)
// and invalidates any in-flight extraction so the next invocation starts
// clean. Closing the import UI calls this.
func (p *Pipeline) Reset() {
	p.gen++
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.phase = PhaseUpload
	p.source = nil
	p.regions = NewRegions()
	p.result = nil
	p.errMsg = ""
	p.view = NewViewport()
	p.changed()
}
