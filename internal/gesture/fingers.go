// Package gesture classifies per-finger up/down state from hand landmarks.
package gesture

import "github.com/ayusman/rangoli/internal/detector"

// IsFingerUp reports whether a finger is pointing upward. A finger is up
// when its tip sits strictly above both the PIP and DIP joints (smaller Y,
// image origin top-left). The thumb is structurally excluded: its IP joint
// does not follow the same vertical convention, so passing detector.ThumbIP
// as the pip index always reports down.
//
// Pure function of its inputs; landmarks change every frame, so callers
// must reevaluate per frame.
func IsFingerUp(hand *detector.HandLandmarks, tip, dip, pip int) bool {
	if hand == nil {
		return false
	}
	if pip == detector.ThumbIP {
		return false
	}
	return hand.Points[tip].Y < hand.Points[pip].Y &&
		hand.Points[tip].Y < hand.Points[dip].Y
}

// Fingers holds the derived up/down state of the fingers the painter
// tracks. Recomputed every frame, never persisted.
type Fingers struct {
	Index bool
	Pinky bool
}

// Classify derives the tracked finger states for one frame's hand.
func Classify(hand *detector.HandLandmarks) Fingers {
	return Fingers{
		Index: IsFingerUp(hand, detector.IndexTip, detector.IndexDIP, detector.IndexPIP),
		Pinky: IsFingerUp(hand, detector.PinkyTip, detector.PinkyDIP, detector.PinkyPIP),
	}
}
