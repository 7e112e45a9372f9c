// Package app wires the camera, hand detector, and drawing state into the
// frame pipeline that powers the Rangoli painter.
package app

import (
	"errors"
	"log"
	"sync"

	"github.com/ayusman/rangoli/internal/capture"
	"github.com/ayusman/rangoli/internal/detector"
	"github.com/ayusman/rangoli/internal/paint"
	"github.com/ayusman/rangoli/internal/store"
)

// Headless pipeline timing constants.
const (
	// IdleFPS is the frame rate while the scene is static.
	IdleFPS = 5
	// ActiveFPS is the frame rate while motion is present.
	ActiveFPS = 15
	// IdleTimeoutMs is how long motion must be absent before the
	// pipeline drops back to the idle frame rate.
	IdleTimeoutMs = 2000
)

// Config holds configuration options for the application.
type Config struct {
	Store        *store.Store
	CameraID     int
	CameraWidth  int
	CameraHeight int
	CanvasWidth  int
	CanvasHeight int
	Thickness    int
	Sensitivity  int
	WindowName   string
	MotionThresh float64
	Debug        bool
}

// App owns the frame pipeline: it reads camera frames, runs hand
// detection, and feeds the detected hand into the drawing state. It is
// the single owner of the camera; the HTTP viewer only ever sees
// published snapshots.
type App struct {
	config   Config
	camera   capture.Camera
	motion   *capture.MotionDetector
	detector detector.Detector
	toolbar  *paint.Toolbar
	state    *paint.State
	session  *store.Session

	mu          sync.RWMutex
	enabled     bool
	stopCh      chan struct{}
	lastLive    []byte
	lastHands   []detector.HandLandmarks
	lastHandsAt int64
}

// New creates a new App instance with the given configuration. Persisted
// settings from a previous run override the built-in drawing defaults.
func New(config Config) *App {
	if config.WindowName == "" {
		config.WindowName = "Rangoli"
	}
	motionThreshold := config.MotionThresh
	if motionThreshold <= 0 {
		motionThreshold = 1.0 // Default threshold: 1% pixel change
	}

	paintCfg := paint.DefaultConfig()
	if config.CanvasWidth > 0 {
		paintCfg.CanvasWidth = config.CanvasWidth
	}
	if config.CanvasHeight > 0 {
		paintCfg.CanvasHeight = config.CanvasHeight
	}
	if config.Thickness > 0 {
		paintCfg.Thickness = config.Thickness
	}
	if config.Sensitivity > 0 {
		paintCfg.Sensitivity = config.Sensitivity
	}
	applyPersisted(config.Store, &paintCfg)

	toolbar := paint.NewToolbar()

	a := &App{
		config:  config,
		camera:  capture.NewCamera(config.CameraID, config.CameraWidth, config.CameraHeight),
		motion:  capture.NewMotionDetector(motionThreshold),
		toolbar: toolbar,
		state:   paint.NewState(paintCfg, toolbar),
		enabled: true,
	}

	if config.Store != nil {
		session, err := config.Store.Sessions().Begin()
		if err != nil {
			log.Printf("Failed to begin session: %v", err)
		} else {
			a.session = session
		}
	}

	// Try MediaPipe first, fall back to mock detector
	if mp, err := detector.NewMediaPipeDetector(detector.DefaultConfig()); err == nil {
		a.detector = mp
		log.Println("Using MediaPipe hand detection")
	} else {
		log.Printf("MediaPipe not available (%v), using mock detector", err)
		a.detector = detector.NewMockDetector()
	}

	return a
}

// applyPersisted overlays settings saved by a previous run onto the
// drawing defaults. A missing key keeps the default; a corrupt value is
// logged and skipped.
func applyPersisted(s *store.Store, cfg *paint.Config) {
	if s == nil {
		return
	}
	settings := s.Settings()

	if name, err := settings.Get(store.KeyColor); err == nil {
		if c, cerr := paint.ColorByName(name); cerr == nil {
			cfg.Color = c
		} else {
			log.Printf("Ignoring persisted color %q: %v", name, cerr)
		}
	} else if !errors.Is(err, store.ErrNotFound) {
		log.Printf("Failed to load persisted color: %v", err)
	}

	if n, err := settings.GetInt(store.KeyThickness); err == nil && n >= 1 {
		cfg.Thickness = n
	} else if err != nil && !errors.Is(err, store.ErrNotFound) {
		log.Printf("Failed to load persisted thickness: %v", err)
	}

	if n, err := settings.GetInt(store.KeySensitivity); err == nil && n >= 0 {
		cfg.Sensitivity = n
	} else if err != nil && !errors.Is(err, store.ErrNotFound) {
		log.Printf("Failed to load persisted sensitivity: %v", err)
	}
}

// SetEnabled enables or disables frame processing. While disabled the
// pipeline keeps reading frames but the canvas stays untouched.
func (a *App) SetEnabled(enabled bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.enabled = enabled
}

// IsEnabled returns whether frame processing is currently enabled.
func (a *App) IsEnabled() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.enabled
}

// SetDetector sets the hand detector implementation to use.
func (a *App) SetDetector(d detector.Detector) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.detector = d
}

// SetCamera replaces the camera implementation. Tests use this to swap
// in a mock before the pipeline starts.
func (a *App) SetCamera(c capture.Camera) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.camera = c
}

// Detector returns the hand detector.
func (a *App) Detector() detector.Detector {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.detector
}

// Camera returns the camera instance.
func (a *App) Camera() capture.Camera {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.camera
}

// MotionDetector returns the motion detector instance.
func (a *App) MotionDetector() *capture.MotionDetector {
	return a.motion
}

// State returns the drawing state.
func (a *App) State() *paint.State {
	return a.state
}

// Toolbar returns the on-frame toolbar.
func (a *App) Toolbar() *paint.Toolbar {
	return a.toolbar
}

// ClearCanvas empties the canvas back to all-white.
func (a *App) ClearCanvas() {
	a.state.Clear()
}

// ColorName returns the name of the active stroke color.
func (a *App) ColorName() string {
	return a.state.ColorName()
}

// Thickness returns the active stroke thickness.
func (a *App) Thickness() int {
	return a.state.Thickness()
}

// Sensitivity returns the fingertip offset in pixels.
func (a *App) Sensitivity() int {
	return a.state.Sensitivity()
}

// SetColor switches the stroke color by palette name and persists the
// choice for the next run.
func (a *App) SetColor(name string) error {
	if err := a.state.SetColor(name); err != nil {
		return err
	}
	a.persistSetting(store.KeyColor, name)
	return nil
}

// SetThickness sets the stroke thickness, clamped to a minimum of 1,
// and persists the result.
func (a *App) SetThickness(n int) {
	a.state.SetThickness(n)
	a.persistSettingInt(store.KeyThickness, a.state.Thickness())
}

func (a *App) persistSetting(key, value string) {
	if a.config.Store == nil {
		return
	}
	if err := a.config.Store.Settings().Set(key, value); err != nil {
		log.Printf("Failed to persist %s: %v", key, err)
	}
}

func (a *App) persistSettingInt(key string, value int) {
	if a.config.Store == nil {
		return
	}
	if err := a.config.Store.Settings().SetInt(key, value); err != nil {
		log.Printf("Failed to persist %s: %v", key, err)
	}
}

// SnapshotLive returns the most recently published live frame as JPEG
// bytes. Empty until the pipeline has processed its first frame.
func (a *App) SnapshotLive() ([]byte, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if len(a.lastLive) == 0 {
		return nil, errors.New("no frame published yet")
	}
	return a.lastLive, nil
}

// SnapshotCanvas returns the current canvas as JPEG bytes.
func (a *App) SnapshotCanvas() ([]byte, error) {
	return a.state.EncodeCanvas()
}

// LastHands returns the hands from the most recent detection together
// with its unix-millisecond timestamp.
func (a *App) LastHands() ([]detector.HandLandmarks, int64) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.lastHands, a.lastHandsAt
}

// publishLive stores the encoded live frame for the HTTP viewer.
func (a *App) publishLive(data []byte) {
	a.mu.Lock()
	a.lastLive = data
	a.mu.Unlock()
}

// publishHands stores the latest detection result for the viewer.
func (a *App) publishHands(hands []detector.HandLandmarks, at int64) {
	a.mu.Lock()
	a.lastHands = hands
	a.lastHandsAt = at
	a.mu.Unlock()
}

// Close releases the camera, detectors, and canvas, and flushes the
// session counters to the store.
func (a *App) Close() {
	a.mu.Lock()
	if a.stopCh != nil {
		close(a.stopCh)
		a.stopCh = nil
	}
	a.mu.Unlock()

	if err := a.camera.Close(); err != nil {
		log.Printf("Error closing camera: %v", err)
	}
	a.motion.Close()
	if a.detector != nil {
		if err := a.detector.Close(); err != nil {
			log.Printf("Error closing detector: %v", err)
		}
	}

	if a.session != nil && a.config.Store != nil {
		c := a.state.Counters()
		if err := a.config.Store.Sessions().Finish(a.session.ID, c.Strokes, c.Clears, c.ColorChanges); err != nil {
			log.Printf("Failed to finish session: %v", err)
		}
	}

	a.state.Close()
}
