package main

import (
	"fmt"
	"net/http"
	"time"

	"pdfpilot/internal/api"
	"pdfpilot/internal/config"
	"pdfpilot/internal/db"
	"pdfpilot/internal/llm"
	"pdfpilot/internal/log"
	"pdfpilot/internal/services"
)

func main() {
	cfg := config.Load()
	log.SetLevel(cfg.LogLevel)

	conn, err := db.Open(cfg.Database)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer conn.Close()

	completer := llm.NewClient(cfg.APIKey, cfg.APIBase, cfg.ModelID)

	runService := services.NewRunService(conn)
	answerService := services.NewAnswerService(completer, runService, cfg.MaxSteps, cfg.MemoryWindow)

	server := api.NewServer(answerService, runService)

	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	log.Infof("listening on %s with model %s", addr, cfg.ModelID)

	// Agent runs hold the response open across many model calls, so the
	// write timeout is long.
	srv := &http.Server{
		Addr:         addr,
		Handler:      server.Handler(),
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 15 * time.Minute,
	}

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server failed: %v", err)
	}
}
