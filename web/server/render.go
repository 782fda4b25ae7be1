package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"net/http"
	"strconv"
	"time"

	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/output"
	"github.com/df07/go-sphere-tracer/pkg/renderer"
	"github.com/df07/go-sphere-tracer/pkg/scene"
)

// TileUpdate represents a single finished tile sent via SSE
type TileUpdate struct {
	TileID     int    `json:"tileId"`
	X          int    `json:"x"`
	Y          int    `json:"y"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	ImageData  string `json:"imageData"`  // Base64 encoded PNG of just this tile
	TileNumber int    `json:"tileNumber"` // Tiles finished so far (1-based)
	TotalTiles int    `json:"totalTiles"` // Total number of tiles in the image
}

// RenderingPipeline contains the configured scene and raytracer
type RenderingPipeline struct {
	Scene     *scene.Scene
	Raytracer *renderer.Raytracer
}

// setupRenderingPipeline creates the scene and a raytracer logging to logger
func (s *Server) setupRenderingPipeline(req *RenderRequest, logger core.Logger) (*RenderingPipeline, error) {
	sceneObj, err := s.createScene(req)
	if err != nil {
		return nil, err
	}

	config := renderer.DefaultRenderConfig()
	config.Seed = req.Seed

	return &RenderingPipeline{
		Scene:     sceneObj,
		Raytracer: sceneObj.NewRaytracer(config, logger),
	}, nil
}

func newRenderID() string {
	return fmt.Sprintf("render-%d", time.Now().UnixNano())
}

// handleRender renders the whole frame and responds with the encoded image
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	renderID := newRenderID()
	pipeline, err := s.setupRenderingPipeline(req, NewWebLogger(renderID, nil, s.logger))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	img, stats := pipeline.Raytracer.Render(nil)

	var buf bytes.Buffer
	if err := output.Encode(&buf, img, req.Format); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", req.Format.ContentType())
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("X-Render-Id", renderID)
	w.Header().Set("X-Render-Time-Ms", strconv.FormatInt(stats.Elapsed.Milliseconds(), 10))
	w.Header().Set("X-Rays-Cast", strconv.Itoa(stats.RaysCast))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// handleRenderStream renders the frame and streams every finished tile, the
// render log and the final statistics as Server-Sent Events
func (s *Server) handleRenderStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming not supported")
		return
	}
	setSSEHeaders(w)
	events := &sseWriter{w: w, flusher: flusher}

	req, err := s.parseRenderRequest(r)
	if err != nil {
		events.send("error", fmt.Sprintf("Invalid request: %v", err))
		return
	}

	consoleChan := make(chan ConsoleMessage, 50)
	pipeline, err := s.setupRenderingPipeline(req, NewWebLogger(newRenderID(), consoleChan, s.logger))
	if err != nil {
		events.send("error", err.Error())
		return
	}

	// The tile callback runs on this goroutine, so all writes to w stay here
	img, stats := pipeline.Raytracer.Render(func(tc renderer.TileCompletion) {
		events.drainConsole(consoleChan)
		if r.Context().Err() != nil {
			return
		}
		update, err := newTileUpdate(tc)
		if err != nil {
			s.logger.Warningf("encoding tile %d: %v", tc.TileID, err)
			return
		}
		events.sendJSON("tile", update)
	})
	events.drainConsole(consoleChan)

	events.sendJSON("complete", newStats(img.Width(), img.Height(), stats))
}

func newTileUpdate(tc renderer.TileCompletion) (TileUpdate, error) {
	data, err := encodeTilePNG(tc.Raster, tc.Bounds)
	if err != nil {
		return TileUpdate{}, err
	}
	return TileUpdate{
		TileID:     tc.TileID,
		X:          tc.Bounds.Min.X,
		Y:          tc.Bounds.Min.Y,
		Width:      tc.Bounds.Dx(),
		Height:     tc.Bounds.Dy(),
		ImageData:  data,
		TileNumber: tc.Completed,
		TotalTiles: tc.Total,
	}, nil
}

// encodeTilePNG crops bounds out of img and returns it as base64 PNG
func encodeTilePNG(img image.Image, bounds image.Rectangle) (string, error) {
	tile := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(tile, tile.Bounds(), img, bounds.Min, draw.Src)

	var buf bytes.Buffer
	if err := png.Encode(&buf, tile); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// setSSEHeaders sets the required headers for Server-Sent Events
func setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
}

// sseWriter writes events to a single streaming response. It is not safe
// for concurrent use.
type sseWriter struct {
	w       http.ResponseWriter
	flusher http.Flusher
	failed  bool
}

func (e *sseWriter) send(event, data string) {
	if e.failed {
		return
	}
	if _, err := fmt.Fprintf(e.w, "event: %s\ndata: %s\n\n", event, data); err != nil {
		// Client went away
		e.failed = true
		return
	}
	e.flusher.Flush()
}

func (e *sseWriter) sendJSON(event string, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		e.send("error", err.Error())
		return
	}
	e.send(event, string(data))
}

// drainConsole forwards every queued console message without blocking
func (e *sseWriter) drainConsole(consoleChan <-chan ConsoleMessage) {
	for {
		select {
		case msg := <-consoleChan:
			e.sendJSON("console", msg)
		default:
			return
		}
	}
}
