package server

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/df07/go-sphere-tracer/pkg/log"
	"github.com/df07/go-sphere-tracer/pkg/output"
	"github.com/df07/go-sphere-tracer/pkg/renderer"
	"github.com/df07/go-sphere-tracer/pkg/scene"
)

// Request limits
const (
	minWidth   = 16
	maxWidth   = 2000
	maxSamples = 10000
	maxDepth   = 500
)

// Server handles web requests for the sphere tracer
type Server struct {
	port      int
	scenesDir string
	logger    log.Logger
}

// NewServer creates a new web server. Scene files are discovered in scenesDir.
func NewServer(port int, scenesDir string) *Server {
	return &Server{
		port:      port,
		scenesDir: scenesDir,
		logger:    log.New("web"),
	}
}

// RenderRequest represents a render request from the client. Zero camera
// fields keep the scene's own settings.
type RenderRequest struct {
	Scene           string        `json:"scene"`           // Scene id (built-in id or scene file id)
	Width           int           `json:"width"`           // Image width
	SamplesPerPixel int           `json:"samplesPerPixel"` // Samples per pixel
	MaxDepth        int           `json:"maxDepth"`        // Maximum ray segments per path
	Seed            int64         `json:"seed"`            // Master seed
	Format          output.Format `json:"format"`          // Image encoding
}

// Stats represents render statistics
type Stats struct {
	Width            int     `json:"width"`
	Height           int     `json:"height"`
	TotalPixels      int     `json:"totalPixels"`
	TotalSamples     int     `json:"totalSamples"`
	SamplesPerPixel  int     `json:"samplesPerPixel"`
	RaysCast         int     `json:"raysCast"`
	Tiles            int     `json:"tiles"`
	Workers          int     `json:"workers"`
	AverageLuminance float64 `json:"averageLuminance"`
	ElapsedMs        int64   `json:"elapsedMs"`
}

func newStats(width, height int, stats renderer.RenderStats) Stats {
	return Stats{
		Width:            width,
		Height:           height,
		TotalPixels:      stats.TotalPixels,
		TotalSamples:     stats.TotalSamples,
		SamplesPerPixel:  stats.SamplesPerPixel,
		RaysCast:         stats.RaysCast,
		Tiles:            stats.Tiles,
		Workers:          stats.Workers,
		AverageLuminance: stats.AverageLuminance,
		ElapsedMs:        stats.Elapsed.Milliseconds(),
	}
}

// Handler returns the HTTP handler serving every API endpoint
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/render", s.handleRender)
	mux.HandleFunc("/api/render/stream", s.handleRenderStream)
	mux.HandleFunc("/api/inspect", s.handleInspect)
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/scenes", s.handleScenes)
	mux.HandleFunc("/api/scene-config", s.handleSceneConfig)
	return mux
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Noticef("starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists built-in scenes and discovered scene files
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	response, err := scene.ListAllScenes(s.scenesDir)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, response)
}

// parseRenderRequest parses and validates render parameters from the URL
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	query := r.URL.Query()
	req := &RenderRequest{Scene: query.Get("scene")}
	if req.Scene == "" {
		req.Scene = "default"
	}

	var err error
	if req.Width, err = parseIntParam(query, "width", 0, minWidth, maxWidth); err != nil {
		return nil, err
	}
	if req.SamplesPerPixel, err = parseIntParam(query, "spp", 0, 1, maxSamples); err != nil {
		return nil, err
	}
	if req.MaxDepth, err = parseIntParam(query, "depth", 0, 1, maxDepth); err != nil {
		return nil, err
	}
	seed, err := parseIntParam(query, "seed", renderer.DefaultSeed, 0, math.MaxInt32)
	if err != nil {
		return nil, err
	}
	req.Seed = int64(seed)

	req.Format = output.FormatPNG
	if name := query.Get("format"); name != "" {
		if req.Format, err = output.ParseFormat(name); err != nil {
			return nil, err
		}
	}

	return req, nil
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// createScene builds the requested scene with the request's camera overrides.
// Only built-in ids and files discovered in the scenes directory are accepted.
func (s *Server) createScene(req *RenderRequest) (*scene.Scene, error) {
	sc, err := s.loadScene(req.Scene, req.Seed)
	if err != nil {
		return nil, err
	}

	if req.Width > 0 {
		sc.CameraConfig.Width = req.Width
	}
	if req.SamplesPerPixel > 0 {
		sc.CameraConfig.SamplesPerPixel = req.SamplesPerPixel
	}
	if req.MaxDepth > 0 {
		sc.CameraConfig.MaxDepth = req.MaxDepth
	}
	return sc, nil
}

func (s *Server) loadScene(id string, seed int64) (*scene.Scene, error) {
	if !strings.HasSuffix(strings.ToLower(id), ".json") {
		return scene.NewBuiltinScene(id, seed)
	}

	files, err := scene.ListJSONScenes(s.scenesDir)
	if err != nil {
		return nil, err
	}
	for _, info := range files {
		if info.ID == id {
			return scene.Load(info.FilePath, seed)
		}
	}
	return nil, fmt.Errorf("%w: %q", scene.ErrUnknownScene, id)
}

// handleSceneConfig returns the default configuration for a scene
func (s *Server) handleSceneConfig(w http.ResponseWriter, r *http.Request) {
	sceneName := r.URL.Query().Get("scene")
	if sceneName == "" {
		sceneName = "default"
	}

	sceneObj, err := s.loadScene(sceneName, renderer.DefaultSeed)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	config := sceneObj.CameraConfig
	camera := sceneObj.NewCamera()
	response := map[string]interface{}{
		"scene":   sceneName,
		"name":    sceneObj.Name,
		"objects": sceneObj.GetPrimitiveCount(),
		"defaults": map[string]interface{}{
			"width":           camera.Width(),
			"height":          camera.Height(),
			"aspectRatio":     config.AspectRatio,
			"samplesPerPixel": camera.SamplesPerPixel(),
			"maxDepth":        config.MaxDepth,
			"vfov":            config.VFov,
			"defocusAngle":    config.DefocusAngle,
			"focusDistance":   config.FocusDistance,
		},
		"limits": map[string]interface{}{
			"width":           map[string]int{"min": minWidth, "max": maxWidth},
			"samplesPerPixel": map[string]int{"min": 1, "max": maxSamples},
			"maxDepth":        map[string]int{"min": 1, "max": maxDepth},
		},
	}

	writeJSON(w, http.StatusOK, response)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
