package detector

import (
	"errors"
	"testing"
)

func TestPixelAt(t *testing.T) {
	tests := []struct {
		name          string
		point         Point3D
		width, height int
		wantX, wantY  int
	}{
		{
			name:  "center of frame",
			point: Point3D{X: 0.5, Y: 0.5},
			width: 800, height: 450,
			wantX: 400, wantY: 225,
		},
		{
			name:  "origin",
			point: Point3D{X: 0, Y: 0},
			width: 800, height: 450,
			wantX: 0, wantY: 0,
		},
		{
			name:  "truncates toward zero",
			point: Point3D{X: 0.999, Y: 0.999},
			width: 1000, height: 700,
			wantX: 999, wantY: 699,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := PixelAt(tt.point, tt.width, tt.height)
			if x != tt.wantX || y != tt.wantY {
				t.Errorf("PixelAt() = (%d, %d), want (%d, %d)", x, y, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestConnections(t *testing.T) {
	t.Run("all indices are valid landmarks", func(t *testing.T) {
		for _, c := range Connections {
			for _, idx := range c {
				if idx < 0 || idx >= NumLandmarks {
					t.Errorf("connection %v references invalid landmark %d", c, idx)
				}
			}
		}
	})

	t.Run("every fingertip is connected", func(t *testing.T) {
		tips := []int{ThumbTip, IndexTip, MiddleTip, RingTip, PinkyTip}
		for _, tip := range tips {
			found := false
			for _, c := range Connections {
				if c[0] == tip || c[1] == tip {
					found = true
					break
				}
			}
			if !found {
				t.Errorf("fingertip %d has no connection", tip)
			}
		}
	})
}

func TestFilterHands(t *testing.T) {
	scored := func(score float64) HandLandmarks {
		h := IndexUpLandmarks(0.5, 0.4)
		h.Score = score
		return h
	}

	tests := []struct {
		name   string
		hands  []HandLandmarks
		config Config
		want   int
	}{
		{
			name:   "empty result passes through",
			hands:  nil,
			config: DefaultConfig(),
			want:   0,
		},
		{
			name:   "score below the gate is dropped",
			hands:  []HandLandmarks{scored(0.49)},
			config: DefaultConfig(),
			want:   0,
		},
		{
			name:   "score at the gate is kept",
			hands:  []HandLandmarks{scored(0.5)},
			config: DefaultConfig(),
			want:   1,
		},
		{
			name:   "second hand is truncated",
			hands:  []HandLandmarks{scored(0.9), scored(0.8)},
			config: DefaultConfig(),
			want:   1,
		},
		{
			name:   "zero MaxHands leaves the count unlimited",
			hands:  []HandLandmarks{scored(0.9), scored(0.8)},
			config: Config{MaxHands: 0, MinConfidence: 0.5},
			want:   2,
		},
		{
			name:   "truncation runs before the score gate",
			hands:  []HandLandmarks{scored(0.3), scored(0.9)},
			config: DefaultConfig(),
			want:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := filterHands(tt.hands, tt.config)
			if len(got) != tt.want {
				t.Errorf("filterHands() returned %d hands, want %d", len(got), tt.want)
			}
		})
	}
}

func TestMockDetector(t *testing.T) {
	t.Run("returns empty hands by default", func(t *testing.T) {
		mock := NewMockDetector()

		hands, err := mock.Detect(nil)

		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		if hands != nil {
			t.Errorf("expected nil hands, got %v", hands)
		}
	})

	t.Run("returns configured hands", func(t *testing.T) {
		mock := NewMockDetector()

		mock.SetHands([]HandLandmarks{IndexUpLandmarks(0.5, 0.4)})

		hands, err := mock.Detect(nil)

		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		if len(hands) != 1 {
			t.Errorf("expected 1 hand, got %d", len(hands))
		}
	})

	t.Run("returns configured error", func(t *testing.T) {
		mock := NewMockDetector()

		expectedErr := errors.New("detection failed")
		mock.SetError(expectedErr)

		hands, err := mock.Detect(nil)

		if err != expectedErr {
			t.Errorf("expected error %v, got %v", expectedErr, err)
		}
		if hands != nil {
			t.Errorf("expected nil hands when error is set, got %v", hands)
		}
	})

	t.Run("Close returns nil", func(t *testing.T) {
		mock := NewMockDetector()

		if err := mock.Close(); err != nil {
			t.Errorf("expected Close to return nil, got %v", err)
		}
	})

	t.Run("implements Detector interface", func(t *testing.T) {
		var _ Detector = (*MockDetector)(nil)
	})
}

func TestFistLandmarks(t *testing.T) {
	landmarks := FistLandmarks()

	t.Run("has handedness and score", func(t *testing.T) {
		if landmarks.Handedness != "Right" {
			t.Errorf("expected handedness Right, got %s", landmarks.Handedness)
		}
		if landmarks.Score < 0.9 {
			t.Errorf("expected score >= 0.9, got %f", landmarks.Score)
		}
	})

	t.Run("all fingers are curled", func(t *testing.T) {
		fingers := []struct {
			name          string
			tip, dip, pip int
		}{
			{"index", IndexTip, IndexDIP, IndexPIP},
			{"middle", MiddleTip, MiddleDIP, MiddlePIP},
			{"ring", RingTip, RingDIP, RingPIP},
			{"pinky", PinkyTip, PinkyDIP, PinkyPIP},
		}
		for _, f := range fingers {
			if landmarks.Points[f.tip].Y < landmarks.Points[f.pip].Y &&
				landmarks.Points[f.tip].Y < landmarks.Points[f.dip].Y {
				t.Errorf("%s finger appears extended, should be curled", f.name)
			}
		}
	})
}

func TestIndexUpLandmarks(t *testing.T) {
	landmarks := IndexUpLandmarks(0.3, 0.25)

	t.Run("index tip at requested position", func(t *testing.T) {
		tip := landmarks.Points[IndexTip]
		if tip.X != 0.3 || tip.Y != 0.25 {
			t.Errorf("index tip = (%f, %f), want (0.3, 0.25)", tip.X, tip.Y)
		}
	})

	t.Run("index tip above both joints", func(t *testing.T) {
		if landmarks.Points[IndexTip].Y >= landmarks.Points[IndexPIP].Y {
			t.Error("index tip should be above index PIP")
		}
		if landmarks.Points[IndexTip].Y >= landmarks.Points[IndexDIP].Y {
			t.Error("index tip should be above index DIP")
		}
	})

	t.Run("pinky remains curled", func(t *testing.T) {
		if landmarks.Points[PinkyTip].Y < landmarks.Points[PinkyPIP].Y &&
			landmarks.Points[PinkyTip].Y < landmarks.Points[PinkyDIP].Y {
			t.Error("pinky should be curled")
		}
	})
}

func TestPinkyUpLandmarks(t *testing.T) {
	landmarks := PinkyUpLandmarks(0.45, 0.03)

	t.Run("pinky tip at requested position", func(t *testing.T) {
		tip := landmarks.Points[PinkyTip]
		if tip.X != 0.45 || tip.Y != 0.03 {
			t.Errorf("pinky tip = (%f, %f), want (0.45, 0.03)", tip.X, tip.Y)
		}
	})

	t.Run("pinky tip above both joints", func(t *testing.T) {
		if landmarks.Points[PinkyTip].Y >= landmarks.Points[PinkyPIP].Y {
			t.Error("pinky tip should be above pinky PIP")
		}
		if landmarks.Points[PinkyTip].Y >= landmarks.Points[PinkyDIP].Y {
			t.Error("pinky tip should be above pinky DIP")
		}
	})

	t.Run("index remains curled", func(t *testing.T) {
		if landmarks.Points[IndexTip].Y < landmarks.Points[IndexPIP].Y &&
			landmarks.Points[IndexTip].Y < landmarks.Points[IndexDIP].Y {
			t.Error("index should be curled")
		}
	})
}
