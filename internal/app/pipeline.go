package app

import (
	"fmt"
	"image"
	"log"
	"time"

	"gocv.io/x/gocv"

	"github.com/ayusman/rangoli/internal/detector"
	"github.com/ayusman/rangoli/internal/paint"
)

// Overlay drawing parameters for the skeleton and HUD.
var (
	skeletonBoneColor  = paint.Green
	skeletonJointColor = paint.Red
)

// processFrame runs one frame through the painter: mirror the image,
// detect the hand, apply the drawing and selection channels, then draw
// the toolbar, skeleton, and HUD onto the frame in place. The returned
// hands are whatever the detector reported for this frame.
func (a *App) processFrame(frame *gocv.Mat) ([]detector.HandLandmarks, error) {
	// Mirror so the on-screen image matches the user's movement.
	gocv.Flip(*frame, frame, 1)

	rgb := gocv.NewMat()
	defer rgb.Close()
	gocv.CvtColor(*frame, &rgb, gocv.ColorBGRToRGB)

	a.toolbar.DrawColorBoxes(frame)
	a.toolbar.DrawToolBoxes(frame)

	d := a.Detector()
	if d == nil {
		return nil, nil
	}

	hands, err := d.Detect(&rgb)
	if err != nil {
		return nil, fmt.Errorf("detect hands: %w", err)
	}

	if len(hands) > 0 {
		hand := &hands[0]
		a.drawSkeleton(frame, hand)
		a.state.HandleDrawing(frame, hand)

		if a.config.Debug {
			x, y := detector.PixelAt(hand.Points[detector.IndexTip], frame.Cols(), frame.Rows())
			log.Printf("index tip at (%d, %d)", x, y)
		}
	}

	a.drawHUD(frame)
	return hands, nil
}

// drawSkeleton overlays the hand landmark graph on the frame: bones as
// thin lines, joints as filled dots.
func (a *App) drawSkeleton(frame *gocv.Mat, hand *detector.HandLandmarks) {
	w, h := frame.Cols(), frame.Rows()

	for _, conn := range detector.Connections {
		x1, y1 := detector.PixelAt(hand.Points[conn[0]], w, h)
		x2, y2 := detector.PixelAt(hand.Points[conn[1]], w, h)
		gocv.Line(frame, image.Pt(x1, y1), image.Pt(x2, y2), skeletonBoneColor, 1)
	}
	for _, p := range hand.Points {
		x, y := detector.PixelAt(p, w, h)
		gocv.Circle(frame, image.Pt(x, y), 3, skeletonJointColor, -1)
	}
}

// drawHUD writes the live thickness readout in the top-left corner.
func (a *App) drawHUD(frame *gocv.Mat) {
	text := fmt.Sprintf("Thickness: %d", a.state.Thickness())
	gocv.PutText(frame, text, image.Pt(2, 35), gocv.FontHersheySimplex, 0.85, paint.White, 2)
}

// composeIdleFrame prepares the display frame when drawing is disabled
// or the scene is static: mirrored, with the toolbar and HUD drawn but
// no detection run. Keeps the disabled view identical to the active one
// minus the hand overlay.
func (a *App) composeIdleFrame(frame *gocv.Mat) {
	gocv.Flip(*frame, frame, 1)
	a.toolbar.DrawColorBoxes(frame)
	a.toolbar.DrawToolBoxes(frame)
	a.drawHUD(frame)
}

// publishFrame encodes the display frame and stores it alongside the
// detection result for the HTTP viewer.
func (a *App) publishFrame(frame *gocv.Mat, hands []detector.HandLandmarks) {
	buf, err := gocv.IMEncode(".jpg", *frame)
	if err != nil {
		log.Printf("Error encoding frame: %v", err)
		return
	}
	data := make([]byte, buf.Len())
	copy(data, buf.GetBytes())
	buf.Close()

	a.publishLive(data)
	a.publishHands(hands, time.Now().UnixMilli())
}

// ProcessAndPublish runs one externally supplied frame through the
// painter and publishes the result for the HTTP viewer. Alternate
// frontends use it to drive the painter without a camera.
func (a *App) ProcessAndPublish(frame *gocv.Mat) ([]detector.HandLandmarks, error) {
	hands, err := a.processFrame(frame)
	a.publishFrame(frame, hands)
	return hands, err
}

// Run drives the windowed painter: two windows, one for the mirrored
// live frame and one for the canvas. Blocks until the user presses ESC
// or the camera fails. The caller still owns Close.
func (a *App) Run() error {
	if err := a.camera.Open(); err != nil {
		return fmt.Errorf("open camera: %w", err)
	}
	a.camera.SetFPS(ActiveFPS)

	liveWindow := gocv.NewWindow(a.config.WindowName)
	defer liveWindow.Close()
	canvasWindow := gocv.NewWindow(a.config.WindowName + " - Canvas")
	defer canvasWindow.Close()

	for {
		frame, err := a.camera.ReadFrame()
		if err != nil {
			return fmt.Errorf("read frame: %w", err)
		}

		if a.IsEnabled() {
			hands, perr := a.processFrame(frame)
			if perr != nil {
				log.Printf("Frame skipped: %v", perr)
			}
			a.publishFrame(frame, hands)
		} else {
			a.composeIdleFrame(frame)
			a.publishFrame(frame, nil)
		}

		liveWindow.IMShow(*frame)
		canvas := a.state.Canvas()
		canvasWindow.IMShow(canvas)
		frame.Close()

		if gocv.WaitKey(1) == 27 { // ESC
			return nil
		}
	}
}

// Start begins the headless pipeline. Unlike Run it opens no windows;
// the HTTP viewer is the only way to observe the frames.
func (a *App) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	// Don't start if already running
	if a.stopCh != nil {
		return nil
	}

	if err := a.camera.Open(); err != nil {
		return err
	}
	a.camera.SetFPS(IdleFPS)

	a.stopCh = make(chan struct{})
	go a.runPipeline(a.stopCh)

	log.Println("Headless pipeline started")
	return nil
}

// Stop halts the headless pipeline. The camera and detector stay open
// so Start can resume; Close releases them.
func (a *App) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stopCh != nil {
		close(a.stopCh)
		a.stopCh = nil
	}
	log.Println("Headless pipeline stopped")
}

// runPipeline is the headless frame loop. Motion gating keeps the CPU
// cost down while nobody is in front of the camera: frames are read at
// IdleFPS and hand detection is skipped until the scene changes, then
// the loop runs at ActiveFPS until motion has been absent for
// IdleTimeoutMs.
func (a *App) runPipeline(stopCh chan struct{}) {
	activeMode := false
	lastMotionTime := time.Now()

	frameInterval := time.Second / time.Duration(IdleFPS)
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			if !a.IsEnabled() {
				continue
			}

			frame, err := a.Camera().ReadFrame()
			if err != nil {
				log.Printf("Error reading frame: %v", err)
				continue
			}

			motionDetected, _ := a.motion.Detect(frame)

			if motionDetected {
				lastMotionTime = time.Now()

				if !activeMode {
					activeMode = true
					a.Camera().SetFPS(ActiveFPS)
					frameInterval = time.Second / time.Duration(ActiveFPS)
					ticker.Reset(frameInterval)
					log.Println("Switched to active mode")
				}
			} else if activeMode {
				if time.Since(lastMotionTime) > time.Duration(IdleTimeoutMs)*time.Millisecond {
					activeMode = false
					a.Camera().SetFPS(IdleFPS)
					frameInterval = time.Second / time.Duration(IdleFPS)
					ticker.Reset(frameInterval)
					log.Println("Switched to idle mode")
				}
			}

			// While idle only the live snapshot is refreshed; detection
			// and drawing wait for motion.
			if !activeMode {
				a.composeIdleFrame(frame)
				a.publishFrame(frame, nil)
				frame.Close()
				continue
			}

			hands, perr := a.processFrame(frame)
			if perr != nil {
				log.Printf("Frame skipped: %v", perr)
			}
			a.publishFrame(frame, hands)
			frame.Close()
		}
	}
}
