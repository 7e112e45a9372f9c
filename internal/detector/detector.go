package detector

import "gocv.io/x/gocv"

// Detector defines the interface for hand detection implementations.
type Detector interface {
	// Detect analyzes a video frame and returns detected hand landmarks.
	// Returns an empty slice if no hand is detected.
	Detect(frame *gocv.Mat) ([]HandLandmarks, error)

	// Close releases any resources held by the detector.
	Close() error
}

// Config holds configuration options for hand detection.
type Config struct {
	// MaxHands is the maximum number of hands to detect (default: 1).
	MaxHands int

	// MinConfidence is the minimum detection confidence threshold (0.0-1.0).
	MinConfidence float64

	// MinTrackingConf is the minimum tracking confidence threshold (0.0-1.0).
	MinTrackingConf float64
}

// DefaultConfig returns a Config with sensible default values.
// The painter tracks a single hand.
func DefaultConfig() Config {
	return Config{
		MaxHands:        1,
		MinConfidence:   0.5,
		MinTrackingConf: 0.5,
	}
}

// filterHands applies the detection config to a raw detector result:
// the hand list is capped at MaxHands, then hands scoring below
// MinConfidence are dropped. A MaxHands of zero leaves the count
// unlimited.
func filterHands(hands []HandLandmarks, config Config) []HandLandmarks {
	if config.MaxHands > 0 && len(hands) > config.MaxHands {
		hands = hands[:config.MaxHands]
	}

	out := make([]HandLandmarks, 0, len(hands))
	for _, h := range hands {
		if h.Score < config.MinConfidence {
			continue
		}
		out = append(out, h)
	}
	return out
}
