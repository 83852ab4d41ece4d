package main

import (
	"fmt"
	"net/http"
	"os"

	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"

	"github.com/facturaIA/receipt-extraction-core/api"
	"github.com/facturaIA/receipt-extraction-core/internal/config"
)

func main() {
	cfg, e := config.Load("config.yaml")
	if e != nil {
		tl.Log(tl.Error, palette.RedBold, "failed to load config: %s", e)
		os.Exit(1)
	}

	handler := api.NewHandler(cfg)
	router := handler.SetupRoutes()

	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	tl.Log(tl.Notice, palette.BlueBold, "Starting receipt extraction service on '%s'", addr)
	tl.Log(tl.Info1, palette.Cyan, "%s", "  POST /api/extract-receipt  - extract a structured record from OCR lines")
	tl.Log(tl.Info1, palette.Cyan, "%s", "  GET  /health               - health check")

	if err := http.ListenAndServe(addr, router); err != nil {
		tl.Log(tl.Error, palette.RedBold, "server failed: %s", err)
		os.Exit(1)
	}
}
