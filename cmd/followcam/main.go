// followcam - track a selected object in a video stream and re-frame the
// output so it stays centered and magnified, like a camera operator's
// zoom-and-follow shot.
package main

import (
	"flag"
	"fmt"
	"image"
	"os"
	"time"

	"gocv.io/x/gocv"

	"followcam/internal/config"
	"followcam/internal/log"
	"followcam/pkg/capture"
	"followcam/pkg/compositor"
	"followcam/pkg/overlay"
	"followcam/pkg/tracking"
	"followcam/pkg/viewport"
	"followcam/pkg/web"
)

const (
	windowTitle       = "followcam"
	selectWindowTitle = "Select Object to Track"
	fpsReportInterval = 15 * time.Second
)

func main() {
	os.Exit(run())
}

func run() int {
	source := flag.String("source", config.Source(config.DefaultSource), "Video source: camera index (0, 1, ...) or video file path")
	zoom := flag.Float64("zoom", tracking.DefaultZoom, "Zoom factor (1.0-5.0)")
	smoothing := flag.Float64("smoothing", tracking.DefaultSmoothing, "Camera movement smoothing (0.0-1.0)")
	trackerName := flag.String("tracker", config.Tracker(config.DefaultTracker), "Tracker backend: csrt, kcf or mil")
	webAddr := flag.String("web", config.WebAddr(""), "Preview dashboard listen address (e.g. :8080, empty = disabled)")
	logLevel := flag.String("log-level", "info", "Log level: debug, info, warn, error")
	flag.Parse()

	log.Init(*logLevel)

	cfg := tracking.NewConfig(*zoom, *smoothing)
	factory, err := tracking.NewBackendFactory(*trackerName)
	if err != nil {
		log.Error("invalid tracker backend", "err", err)
		return 1
	}

	src, err := capture.Open(*source)
	if err != nil {
		log.Error("could not open video source", "source", *source, "err", err)
		return 1
	}
	defer src.Close()

	frame := gocv.NewMat()
	defer frame.Close()

	if !src.Read(&frame) {
		log.Error("could not read from video source", "source", *source)
		return 1
	}
	frameSize := src.Size()
	if err := viewport.Validate(frameSize, cfg.ZoomFactor); err != nil {
		log.Error("unusable source resolution", "err", err)
		return 1
	}

	printBanner()

	session := tracking.NewSession(cfg, factory)
	defer session.Close()

	if err := session.Select(frame, selectTarget(frame)); err != nil {
		fmt.Println("No object selected. Exiting.")
		return 1
	}
	fmt.Println("Tracking started! Press 'q' to quit.")

	var server *web.Server
	if *webAddr != "" {
		server = web.NewServer(*webAddr)
		server.StartAsync()
		defer server.Shutdown()
	}

	window := gocv.NewWindow(windowTitle)
	defer window.Close()

	renderer := overlay.NewRenderer()
	output := gocv.NewMat()
	defer output.Close()

	var (
		fps          float64
		reportFrames int
		lastReport   = time.Now()
		wantSelect   = false
	)

	for {
		if !src.Read(&frame) {
			log.Info("end of stream", "source", *source)
			return 0
		}

		if wantSelect {
			wantSelect = false
			if err := session.Select(frame, selectTarget(frame)); err != nil {
				log.Warn("no object selected, continuing", "err", err)
			} else {
				fmt.Println("New object selected!")
			}
		}

		res := session.Advance(frame)
		if res.Ok {
			// One transform per frame, shared by the crop and the
			// overlay re-projection
			vp := viewport.Compute(frameSize, res.Focus, cfg.ZoomFactor)
			compositor.Render(frame, vp, &output)
			renderer.DrawTarget(&output, compositor.ProjectBox(vp, res.Box))
			renderer.DrawStatus(&output, cfg.ZoomFactor, session.State().String())
		} else {
			frame.CopyTo(&output)
			renderer.DrawStatus(&output, cfg.ZoomFactor, session.State().String())
			if session.State() == tracking.StateLost {
				renderer.DrawLost(&output)
			}
		}
		renderer.DrawHelp(&output)

		window.IMShow(output)

		reportFrames++
		if elapsed := time.Since(lastReport); elapsed >= fpsReportInterval {
			fps = float64(reportFrames) / elapsed.Seconds()
			log.Info("pipeline report",
				"fps", fmt.Sprintf("%.1f", fps),
				"state", session.State().String(),
				"track", session.TrackID())
			reportFrames = 0
			lastReport = time.Now()
		}

		if server != nil {
			publish(server, session, cfg, res, *trackerName, fps, output)
		}

		switch window.WaitKey(1) {
		case 'q', 27: // q or ESC
			log.Info("user quit")
			return 0
		case 'r':
			session.RequestSelection()
			wantSelect = true
		}
	}
}

// selectTarget runs the interactive ROI selection on its own window.
// A cancelled drag comes back as an empty rectangle, which Select rejects.
func selectTarget(frame gocv.Mat) image.Rectangle {
	win := gocv.NewWindow(selectWindowTitle)
	defer win.Close()
	return win.SelectROI(frame)
}

// publish pushes the current frame and session state to the dashboard.
func publish(server *web.Server, session *tracking.Session, cfg tracking.Config, res tracking.Result, backend string, fps float64, output gocv.Mat) {
	server.UpdateState(func(st *web.FollowState) {
		st.State = session.State().String()
		st.TrackID = session.TrackID()
		st.Backend = backend
		st.Zoom = cfg.ZoomFactor
		st.Smoothing = cfg.Smoothing
		st.FPS = fps
		st.Frames = session.Frames()
		if res.Ok {
			st.FocusX = res.Focus.X
			st.FocusY = res.Focus.Y
		}
	})

	if server.Viewers() == 0 {
		return // skip the JPEG encode when nobody is watching
	}
	buf, err := gocv.IMEncode(gocv.JPEGFileExt, output)
	if err != nil {
		log.Debug("preview encode failed", "err", err)
		return
	}
	// Copy out of the native buffer: the broadcast outlives this call
	data := make([]byte, len(buf.GetBytes()))
	copy(data, buf.GetBytes())
	buf.Close()
	server.PublishFrame(data)
}

func printBanner() {
	fmt.Println("followcam - zoom and follow object tracker")
	fmt.Println("==========================================")
	fmt.Println("Instructions:")
	fmt.Println("  - A window will open showing the video feed")
	fmt.Println("  - Select an object to track by drawing a box around it")
	fmt.Println("  - Press 'q' to quit")
	fmt.Println("  - Press 'r' to reselect object")
	fmt.Println()
}
