package main

import (
	"log"

	"github.com/joho/godotenv"

	"instock/internal/config"
	"instock/internal/logging"
	"instock/internal/session"
	"instock/internal/stockapi"
	"instock/internal/web"
	"instock/internal/web/templates"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	logger, cleanup, err := logging.New(cfg.LogLevel, cfg.LogFormat, cfg.LogFile)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer cleanup()

	api := stockapi.New(cfg.APIURL, stockapi.DefaultMessages(), logger)
	sessions := session.NewCookieStore("instock")

	server := web.NewServer(api, sessions, templates.FS, logger)
	if err := server.ListenAndServe(cfg.ListenAddr); err != nil {
		logger.Error("server error", "error", err)
	}
}
