package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/campus-voice/campusvoice/src/CVApi/config"
	"github.com/campus-voice/campusvoice/src/CVApi/docstore"
	"github.com/campus-voice/campusvoice/src/CVApi/gate"
	"github.com/campus-voice/campusvoice/src/CVApi/moderation"
	"github.com/campus-voice/campusvoice/src/CVApi/store"
	"github.com/campus-voice/campusvoice/src/CVApi/webserver"
	"github.com/campus-voice/campusvoice/src/shared/ai"
)

func main() {
	cfg := config.Load()

	var docs docstore.Store
	switch cfg.Docstore {
	case "mysql":
		if cfg.MySQLDSN == "" {
			log.Fatalf("DOCSTORE=mysql requires MYSQL_DSN")
		}
		docs = docstore.MustMySQL(cfg.MySQLDSN)
	default:
		docs = docstore.MustRedis(cfg.RedisURL)
	}

	ctx := context.Background()
	board, err := store.LoadProposals(ctx, docs)
	if err != nil {
		log.Fatalf("load proposals: %v", err)
	}
	news, err := store.LoadAnnouncements(ctx, docs)
	if err != nil {
		log.Fatalf("load announcements: %v", err)
	}

	mod := moderation.New(ai.NewClient(ai.FactoryConfig{
		Provider:  cfg.AIProvider,
		OpenAIKey: cfg.OpenAIKey,
		ClaudeKey: cfg.ClaudeKey,
		Model:     cfg.AIModel,
	}))
	g := gate.New(mod, board)

	router := webserver.New(cfg, g, board, news)

	httpSrv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("CampusVoice API listening on port %s (docstore: %s)", cfg.Port, cfg.Docstore)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http: %v", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	shutCtx, cancelShut := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShut()
	_ = httpSrv.Shutdown(shutCtx)
}
