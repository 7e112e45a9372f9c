package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/ayusman/rangoli/internal/app"
	"github.com/ayusman/rangoli/internal/server"
	"github.com/ayusman/rangoli/internal/store"
	"github.com/ayusman/rangoli/internal/tray"
)

func main() {
	cameraID := flag.Int("camera", 0, "camera device ID")
	addr := flag.String("addr", ":8080", "HTTP viewer listen address")
	headless := flag.Bool("headless", false, "run without windows, controlled from the system tray")
	debug := flag.Bool("debug", false, "log fingertip positions per frame")
	flag.Parse()

	fmt.Println("Rangoli - Gesture Painter")

	// Initialize the store
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Fatalf("Failed to get home directory: %v", err)
	}

	dbDir := filepath.Join(homeDir, ".rangoli")
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	dbPath := filepath.Join(dbDir, "rangoli.db")
	st, err := store.New(dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer st.Close()

	painter := app.New(app.Config{
		Store:    st,
		CameraID: *cameraID,
		Debug:    *debug,
	})
	defer painter.Close()

	// Find web directory
	webDir := findWebDir()
	if webDir != "" {
		fmt.Printf("Serving static files from: %s\n", webDir)
	}

	srv := server.New(server.Config{
		StaticDir: webDir,
		State:     painter,
		Live:      server.FrameSourceFunc(painter.SnapshotLive),
		Canvas:    server.FrameSourceFunc(painter.SnapshotCanvas),
		Hands:     painter,
	})

	go func() {
		fmt.Printf("Viewer listening on %s\n", *addr)
		if err := srv.ListenAndServe(*addr); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	if *headless {
		runHeadless(painter, *addr)
		return
	}

	// A camera failure ends the run, but the deferred Close calls must
	// still release the devices and finish the session row.
	if err := painter.Run(); err != nil {
		log.Printf("Painter failed: %v", err)
	}
}

// runHeadless starts the motion-gated pipeline and blocks on the system
// tray until Quit is clicked.
func runHeadless(painter *app.App, addr string) {
	if err := painter.Start(); err != nil {
		log.Printf("Failed to start pipeline: %v", err)
		return
	}

	t := tray.New()
	t.OnToggle(func(enabled bool) {
		painter.SetEnabled(enabled)
	})
	t.OnClear(func() {
		painter.ClearCanvas()
	})
	t.OnOpenViewer(func() {
		openBrowser(viewerURL(addr))
	})
	t.OnQuit(func() {
		painter.Stop()
	})
	t.SetStatus(painter.ColorName())

	t.Run()
}

// viewerURL turns a listen address like ":8080" into a browsable URL.
func viewerURL(addr string) string {
	if addr != "" && addr[0] == ':' {
		return "http://localhost" + addr
	}
	return "http://" + addr
}

// openBrowser opens the URL with the platform's default browser.
func openBrowser(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	if err := cmd.Start(); err != nil {
		log.Printf("Failed to open browser: %v", err)
	}
}

// findWebDir searches for the web directory in common locations.
// It checks: "web", "../web", "../../web", and ~/.rangoli/web.
// Returns the first existing directory or empty string if none found.
func findWebDir() string {
	// Check relative paths from current working directory
	relativePaths := []string{"web", "../web", "../../web"}
	for _, p := range relativePaths {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			absPath, err := filepath.Abs(p)
			if err == nil {
				return absPath
			}
			return p
		}
	}

	// Check home directory
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	homeWebDir := filepath.Join(homeDir, ".rangoli", "web")
	if info, err := os.Stat(homeWebDir); err == nil && info.IsDir() {
		return homeWebDir
	}

	return ""
}
