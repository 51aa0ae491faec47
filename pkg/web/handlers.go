package web

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"followcam/pkg/hub"
)

// handleStatus returns the current session state
func (s *Server) handleStatus(c *fiber.Ctx) error {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return c.JSON(s.state)
}

// handleStatusWS streams session-state updates to a client
func (s *Server) handleStatusWS(c *websocket.Conn) {
	// Send the current state immediately so the page renders something
	// before the next update arrives
	s.stateMu.RLock()
	c.WriteJSON(s.state)
	s.stateMu.RUnlock()

	hub.NewClient(s.statusHub, c).Run()
}

// handlePreviewWS streams JPEG output frames to a client
func (s *Server) handlePreviewWS(c *websocket.Conn) {
	hub.NewClient(s.previewHub, c).Run()
}

// handleIndex serves the single-page dashboard
func (s *Server) handleIndex(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.SendString(indexHTML)
}

const indexHTML = `<!DOCTYPE html>
<html>
<head>
<title>followcam</title>
<style>
  body { background: #111; color: #0f0; font-family: monospace; margin: 20px; }
  img { max-width: 100%; border: 1px solid #333; }
  #status { margin-top: 8px; white-space: pre; color: #9f9; }
</style>
</head>
<body>
<h3>followcam preview</h3>
<img id="preview" alt="waiting for frames...">
<div id="status"></div>
<script>
  const proto = location.protocol === "https:" ? "wss" : "ws";
  const img = document.getElementById("preview");
  const status = document.getElementById("status");

  const preview = new WebSocket(proto + "://" + location.host + "/ws/preview");
  preview.binaryType = "blob";
  preview.onmessage = (ev) => {
    const url = URL.createObjectURL(ev.data);
    const old = img.src;
    img.src = url;
    if (old) URL.revokeObjectURL(old);
  };

  const state = new WebSocket(proto + "://" + location.host + "/ws/status");
  state.onmessage = (ev) => {
    const st = JSON.parse(ev.data);
    status.textContent =
      "state: " + st.state + "  track: " + (st.track_id || "-") +
      "\nzoom: " + st.zoom + "x  smoothing: " + st.smoothing +
      "  backend: " + st.backend +
      "\nfocus: (" + st.focus_x.toFixed(1) + ", " + st.focus_y.toFixed(1) + ")" +
      "  fps: " + st.fps.toFixed(1) + "  frames: " + st.frames;
  };
</script>
</body>
</html>`
