package paint

import (
	"image"
	"image/color"
	"sync"

	"gocv.io/x/gocv"

	"github.com/ayusman/rangoli/internal/detector"
	"github.com/ayusman/rangoli/internal/gesture"
)

// Canvas and drawing defaults.
const (
	// DefaultCanvasWidth is the canvas width in pixels.
	DefaultCanvasWidth = 800
	// DefaultCanvasHeight is the canvas height in pixels.
	DefaultCanvasHeight = 450
	// DefaultThickness is the starting stroke thickness.
	DefaultThickness = 4
	// DefaultSensitivity is the fixed pixel offset added to fingertip
	// coordinates before line drawing, compensating for detection bias.
	DefaultSensitivity = 20
	// CursorRadius is the radius of the fingertip cursor circle drawn on
	// the live overlay.
	CursorRadius = 15
)

// PenPosition is the last sensitivity-adjusted fingertip coordinate, or
// unset when the previous frame broke stroke continuity. An unset pen is
// never confused with a valid coordinate.
type PenPosition struct {
	X, Y int
	Set  bool
}

// Config holds construction options for the drawing state.
type Config struct {
	CanvasWidth  int
	CanvasHeight int
	Color        color.RGBA
	Thickness    int
	Sensitivity  int
}

// DefaultConfig returns the painter's standard drawing configuration:
// an 800x450 white canvas, black strokes of thickness 4, sensitivity 20.
func DefaultConfig() Config {
	return Config{
		CanvasWidth:  DefaultCanvasWidth,
		CanvasHeight: DefaultCanvasHeight,
		Color:        Black,
		Thickness:    DefaultThickness,
		Sensitivity:  DefaultSensitivity,
	}
}

// Counters holds per-session usage counters maintained by the state.
type Counters struct {
	Strokes      int
	Clears       int
	ColorChanges int
}

// State owns the persistent canvas and all drawing parameters. It is the
// only mutator of the canvas. The main loop drives it one frame at a
// time; the mutex exists solely so the HTTP viewer can snapshot state
// while the loop runs.
type State struct {
	mu          sync.Mutex
	canvas      gocv.Mat
	toolbar     *Toolbar
	color       color.RGBA
	thickness   int
	sensitivity int
	pen         PenPosition
	counters    Counters
}

// NewState creates a drawing state with an all-white canvas.
func NewState(cfg Config, toolbar *Toolbar) *State {
	if cfg.CanvasWidth <= 0 {
		cfg.CanvasWidth = DefaultCanvasWidth
	}
	if cfg.CanvasHeight <= 0 {
		cfg.CanvasHeight = DefaultCanvasHeight
	}
	if cfg.Thickness < 1 {
		cfg.Thickness = DefaultThickness
	}

	canvas := gocv.NewMatWithSizeFromScalar(
		gocv.NewScalar(255, 255, 255, 0),
		cfg.CanvasHeight, cfg.CanvasWidth, gocv.MatTypeCV8UC3,
	)

	return &State{
		canvas:      canvas,
		toolbar:     toolbar,
		color:       cfg.Color,
		thickness:   cfg.Thickness,
		sensitivity: cfg.Sensitivity,
	}
}

// Close releases the canvas.
func (s *State) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.canvas.Close()
}

// HandleDrawing runs both gesture channels for one frame's hand. The
// overlay is the live display frame; cursor circles go there, stroke
// segments go onto the persistent canvas. Called once per frame a hand
// is present; when no hand is detected the caller skips it entirely and
// the pen position is left untouched.
func (s *State) HandleDrawing(overlay *gocv.Mat, hand *detector.HandLandmarks) {
	fingers := gesture.Classify(hand)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.handleIndex(overlay, hand, fingers.Index)
	s.handlePinky(overlay, hand, fingers.Pinky)
}

// handleIndex is the drawing channel. Index up extends the current
// stroke; index down breaks continuity so the next up frame starts a
// disconnected segment.
func (s *State) handleIndex(overlay *gocv.Mat, hand *detector.HandLandmarks, up bool) {
	if !up {
		s.pen = PenPosition{}
		return
	}

	x, y := detector.PixelAt(hand.Points[detector.IndexTip], overlay.Cols(), overlay.Rows())
	gocv.Circle(overlay, image.Pt(x, y), CursorRadius, s.color, -1)

	x += s.sensitivity
	y += s.sensitivity
	if s.pen.Set {
		gocv.Line(&s.canvas, image.Pt(s.pen.X, s.pen.Y), image.Pt(x, y), s.color, s.thickness)
	} else {
		s.counters.Strokes++
	}
	s.pen = PenPosition{X: x, Y: y, Set: true}
}

// handlePinky is the selection channel. Color hits take priority; a tool
// hit-test only runs when no color box was hit. Pinky down needs no
// reset since selection has no continuity state.
func (s *State) handlePinky(overlay *gocv.Mat, hand *detector.HandLandmarks, up bool) {
	if !up {
		return
	}

	x, y := detector.PixelAt(hand.Points[detector.PinkyTip], overlay.Cols(), overlay.Rows())
	gocv.Circle(overlay, image.Pt(x, y), CursorRadius, s.color, -1)

	if c, ok := s.toolbar.SelectColor(x, y); ok {
		if c != s.color {
			s.counters.ColorChanges++
		}
		s.color = c
		return
	}

	switch tool, ok := s.toolbar.SelectTool(x, y); {
	case !ok:
		// Miss resolves to no action.
	case tool == ToolClear:
		s.clearLocked()
	case tool == ToolIncrease:
		s.thickness++
	case tool == ToolDecrease:
		if s.thickness > 1 {
			s.thickness--
		}
	}
}

// clearLocked paints the whole canvas white. Callers hold s.mu.
func (s *State) clearLocked() {
	bounds := image.Rect(0, 0, s.canvas.Cols(), s.canvas.Rows())
	gocv.Rectangle(&s.canvas, bounds, White, -1)
	s.counters.Clears++
}

// Clear empties the canvas back to all-white. Idempotent.
func (s *State) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearLocked()
}

// Canvas returns the persistent canvas Mat for display. Only the loop
// goroutine that drives HandleDrawing may use it.
func (s *State) Canvas() gocv.Mat {
	return s.canvas
}

// EncodeCanvas returns the canvas as a JPEG snapshot.
func (s *State) EncodeCanvas() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	buf, err := gocv.IMEncode(".jpg", s.canvas)
	if err != nil {
		return nil, err
	}
	defer buf.Close()

	out := make([]byte, buf.Len())
	copy(out, buf.GetBytes())
	return out, nil
}

// Color returns the active stroke color.
func (s *State) Color() color.RGBA {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.color
}

// ColorName returns the active stroke color's palette label.
func (s *State) ColorName() string {
	return NameOf(s.Color())
}

// SetColor sets the active stroke color by palette label.
func (s *State) SetColor(name string) error {
	c, err := ColorByName(name)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if c != s.color {
		s.counters.ColorChanges++
	}
	s.color = c
	return nil
}

// Thickness returns the current stroke thickness.
func (s *State) Thickness() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.thickness
}

// SetThickness sets the stroke thickness, flooring at 1.
func (s *State) SetThickness(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n < 1 {
		n = 1
	}
	s.thickness = n
}

// IncreaseThickness adds 1 to the stroke thickness. Unbounded above.
func (s *State) IncreaseThickness() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.thickness++
}

// DecreaseThickness subtracts 1 from the stroke thickness, flooring at 1.
// The floor is enforced, never signaled.
func (s *State) DecreaseThickness() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.thickness > 1 {
		s.thickness--
	}
}

// Sensitivity returns the fixed fingertip offset in pixels.
func (s *State) Sensitivity() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sensitivity
}

// Pen returns the current pen position.
func (s *State) Pen() PenPosition {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pen
}

// Counters returns the session usage counters.
func (s *State) Counters() Counters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counters
}
