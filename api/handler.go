package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"

	"github.com/facturaIA/receipt-extraction-core/internal/config"
	"github.com/facturaIA/receipt-extraction-core/internal/model"
	"github.com/facturaIA/receipt-extraction-core/internal/pipeline"
)

const Version = "1.0.0"

// Handler handles HTTP requests for receipt extraction.
type Handler struct {
	config   *config.Config
	pipeline *pipeline.Pipeline
}

// NewHandler creates a new API handler.
func NewHandler(cfg *config.Config) *Handler {
	return &Handler{
		config:   cfg,
		pipeline: pipeline.New(cfg.RepairOCRText),
	}
}

// SetupRoutes configures the HTTP routes.
func (h *Handler) SetupRoutes() *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/api/extract-receipt", h.ExtractReceipt).Methods("POST")
	router.HandleFunc("/health", h.Health).Methods("GET")
	return router
}

// extractRequest is the JSON body of POST /api/extract-receipt: already
// OCR'd lines, per §1's Non-goal on OCR itself.
type extractRequest struct {
	Lines []model.Line `json:"lines"`
}

// ExtractReceipt runs the extraction core over an already-OCR'd line set
// and returns the resulting Record.
func (h *Handler) ExtractReceipt(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	requestID := uuid.New().String()
	start := time.Now()

	var req extractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		tl.Log(tl.Warning, palette.PurpleBold, "[%s] bad request body: %s", requestID, err)
		h.sendError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}

	record := h.pipeline.Extract(req.Lines)

	tl.Log(
		tl.Info1, palette.Cyan, "[%s] extracted %s, %s items in %s",
		requestID, record.ReceiptType, fmt.Sprintf("%d", len(record.Items)), time.Since(start),
	)

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(record)
}

// HealthResponse reports process health, trimmed to the collaborators this
// service actually depends on (no OCR engine, database, or storage client
// to probe here).
type HealthResponse struct {
	Status    string      `json:"status"`
	Version   string      `json:"version"`
	Timestamp string      `json:"timestamp"`
	Uptime    string      `json:"uptime"`
	Memory    MemoryStats `json:"memory"`
}

// MemoryStats reports runtime memory usage.
type MemoryStats struct {
	Allocated string `json:"allocated"`
	Total     string `json:"total"`
	System    string `json:"system"`
}

var startTime = time.Now()

// Health reports process health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	response := HealthResponse{
		Status:    "healthy",
		Version:   Version,
		Timestamp: time.Now().Format(time.RFC3339),
		Uptime:    time.Since(startTime).String(),
		Memory: MemoryStats{
			Allocated: fmt.Sprintf("%.2f MB", float64(m.Alloc)/1024/1024),
			Total:     fmt.Sprintf("%.2f MB", float64(m.TotalAlloc)/1024/1024),
			System:    fmt.Sprintf("%.2f MB", float64(m.Sys)/1024/1024),
		},
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)
}

func (h *Handler) sendError(w http.ResponseWriter, statusCode int, message string) {
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
