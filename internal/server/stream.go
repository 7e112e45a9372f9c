package server

import (
	"fmt"
	"net/http"
	"time"
)

// StreamFPS is the frame rate for MJPEG streams.
const StreamFPS = 15

// FrameSource supplies JPEG snapshots for streaming. The paint pipeline
// publishes frames; stream handlers never touch the camera themselves.
type FrameSource interface {
	Snapshot() ([]byte, error)
}

// FrameSourceFunc adapts a function to the FrameSource interface.
type FrameSourceFunc func() ([]byte, error)

// Snapshot calls f.
func (f FrameSourceFunc) Snapshot() ([]byte, error) { return f() }

// StreamHandler serves MJPEG frames from a FrameSource.
type StreamHandler struct {
	source FrameSource
}

// NewStreamHandler creates a new StreamHandler with the given source.
func NewStreamHandler(source FrameSource) *StreamHandler {
	return &StreamHandler{source: source}
}

// ServeHTTP streams MJPEG frames to connected clients until the client
// disconnects.
func (h *StreamHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "multipart/x-mixed-replace; boundary=frame")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	interval := time.Second / StreamFPS
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-ticker.C:
		}

		data, err := h.source.Snapshot()
		if err != nil || len(data) == 0 {
			continue
		}

		fmt.Fprintf(w, "--frame\r\n")
		fmt.Fprintf(w, "Content-Type: image/jpeg\r\n")
		fmt.Fprintf(w, "Content-Length: %d\r\n\r\n", len(data))
		w.Write(data)
		fmt.Fprintf(w, "\r\n")

		if f, ok := w.(http.Flusher); ok {
			f.Flush()
		}
	}
}
