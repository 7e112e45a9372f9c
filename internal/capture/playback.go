package capture

import (
	"fmt"
	"sync"

	"gocv.io/x/gocv"
)

// PlaybackCamera replays a recorded frame sequence through the Camera
// interface. Pipeline and e2e tests use it in place of a webcam; each
// read hands out a clone so the painter may draw on the frame without
// corrupting the sequence.
type PlaybackCamera struct {
	frames  []*gocv.Mat
	index   int
	loop    bool
	fps     int
	mu      sync.Mutex
	running bool
}

// NewPlaybackCamera creates a camera that plays the given frames in
// order. With loop set the sequence restarts after the last frame;
// without it reads fail once the sequence is exhausted.
func NewPlaybackCamera(frames []*gocv.Mat, loop bool) *PlaybackCamera {
	return &PlaybackCamera{
		frames: frames,
		loop:   loop,
		fps:    DefaultFPS,
	}
}

// Open starts playback from the first frame.
func (c *PlaybackCamera) Open() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.running = true
	c.index = 0
	return nil
}

// Close stops playback. The frames stay owned by the caller.
func (c *PlaybackCamera) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.running = false
	return nil
}

// ReadFrame returns a clone of the next frame in the sequence.
func (c *PlaybackCamera) ReadFrame() (*gocv.Mat, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.running {
		return nil, ErrCameraNotOpen
	}

	if len(c.frames) == 0 {
		return nil, fmt.Errorf("playback sequence is empty")
	}

	if c.index >= len(c.frames) {
		if !c.loop {
			return nil, fmt.Errorf("playback sequence exhausted")
		}
		c.index = 0
	}

	frame := c.frames[c.index].Clone()
	c.index++

	return &frame, nil
}

// SetFPS records the requested frame rate. Playback itself is not
// paced; the pipeline's ticker provides the timing.
func (c *PlaybackCamera) SetFPS(fps int) {
	if fps <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fps = fps
}

// FPS returns the most recently requested frame rate.
func (c *PlaybackCamera) FPS() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fps
}

// IsOpen reports whether playback is running.
func (c *PlaybackCamera) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}

// SetFrames replaces the sequence and restarts playback from its start.
func (c *PlaybackCamera) SetFrames(frames []*gocv.Mat) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.frames = frames
	c.index = 0
}

// Rewind restarts playback from the first frame.
func (c *PlaybackCamera) Rewind() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.index = 0
}

// SolidFrame allocates a uniform gray-level BGR frame at the painter's
// default capture resolution. Tests build playback sequences and motion
// fixtures from it; the caller owns the Mat.
func SolidFrame(value uint8) gocv.Mat {
	v := float64(value)
	return gocv.NewMatWithSizeFromScalar(
		gocv.NewScalar(v, v, v, 0),
		DefaultHeight, DefaultWidth, gocv.MatTypeCV8UC3,
	)
}
