package detector

import (
	"gocv.io/x/gocv"
)

// MockDetector is a test implementation of the Detector interface.
// It allows tests to control the detection results.
type MockDetector struct {
	hands []HandLandmarks
	err   error
}

// NewMockDetector creates a new MockDetector instance.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// SetHands sets the hands that will be returned by Detect.
func (m *MockDetector) SetHands(hands []HandLandmarks) {
	m.hands = hands
}

// SetError sets the error that will be returned by Detect.
func (m *MockDetector) SetError(err error) {
	m.err = err
}

// Detect returns the pre-configured hands or error.
func (m *MockDetector) Detect(frame *gocv.Mat) ([]HandLandmarks, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.hands, nil
}

// Close is a no-op for the mock detector.
func (m *MockDetector) Close() error {
	return nil
}

// FistLandmarks returns a preset HandLandmarks with every finger curled,
// so neither the drawing nor the selection channel fires.
func FistLandmarks() HandLandmarks {
	landmarks := HandLandmarks{
		Handedness: "Right",
		Score:      0.95,
	}

	landmarks.Points[Wrist] = Point3D{X: 0.5, Y: 0.85, Z: 0.0}

	// Thumb tucked across the palm
	landmarks.Points[ThumbCMC] = Point3D{X: 0.55, Y: 0.80, Z: 0.0}
	landmarks.Points[ThumbMCP] = Point3D{X: 0.57, Y: 0.75, Z: 0.0}
	landmarks.Points[ThumbIP] = Point3D{X: 0.55, Y: 0.72, Z: -0.02}
	landmarks.Points[ThumbTip] = Point3D{X: 0.52, Y: 0.73, Z: -0.03}

	// Each finger curled: tip below its PIP and DIP (larger Y)
	curl := func(mcp, pip, dip, tip int, x float64) {
		landmarks.Points[mcp] = Point3D{X: x, Y: 0.70, Z: 0.0}
		landmarks.Points[pip] = Point3D{X: x, Y: 0.66, Z: -0.04}
		landmarks.Points[dip] = Point3D{X: x - 0.02, Y: 0.70, Z: -0.04}
		landmarks.Points[tip] = Point3D{X: x - 0.03, Y: 0.74, Z: -0.02}
	}
	curl(IndexMCP, IndexPIP, IndexDIP, IndexTip, 0.55)
	curl(MiddleMCP, MiddlePIP, MiddleDIP, MiddleTip, 0.50)
	curl(RingMCP, RingPIP, RingDIP, RingTip, 0.45)
	curl(PinkyMCP, PinkyPIP, PinkyDIP, PinkyTip, 0.40)

	return landmarks
}

// IndexUpLandmarks returns a preset HandLandmarks with the index finger
// extended so its tip sits at the given normalized position. All other
// fingers are curled.
func IndexUpLandmarks(tipX, tipY float64) HandLandmarks {
	landmarks := FistLandmarks()

	landmarks.Points[IndexTip] = Point3D{X: tipX, Y: tipY, Z: 0.0}
	landmarks.Points[IndexDIP] = Point3D{X: tipX, Y: tipY + 0.06, Z: 0.0}
	landmarks.Points[IndexPIP] = Point3D{X: tipX, Y: tipY + 0.12, Z: 0.0}
	landmarks.Points[IndexMCP] = Point3D{X: tipX, Y: tipY + 0.20, Z: 0.0}

	return landmarks
}

// PinkyUpLandmarks returns a preset HandLandmarks with the pinky finger
// extended so its tip sits at the given normalized position. All other
// fingers are curled.
func PinkyUpLandmarks(tipX, tipY float64) HandLandmarks {
	landmarks := FistLandmarks()

	landmarks.Points[PinkyTip] = Point3D{X: tipX, Y: tipY, Z: 0.0}
	landmarks.Points[PinkyDIP] = Point3D{X: tipX, Y: tipY + 0.05, Z: 0.0}
	landmarks.Points[PinkyPIP] = Point3D{X: tipX, Y: tipY + 0.10, Z: 0.0}
	landmarks.Points[PinkyMCP] = Point3D{X: tipX, Y: tipY + 0.16, Z: 0.0}

	return landmarks
}
