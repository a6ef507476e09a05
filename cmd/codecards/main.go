package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/SaptaAjiSadewo/flashcard-rpg/internal/config"
	"github.com/SaptaAjiSadewo/flashcard-rpg/internal/deck"
	"github.com/SaptaAjiSadewo/flashcard-rpg/internal/importer"
	"github.com/SaptaAjiSadewo/flashcard-rpg/internal/seed"
	"github.com/SaptaAjiSadewo/flashcard-rpg/internal/storage"
	"github.com/SaptaAjiSadewo/flashcard-rpg/internal/web"
)

func main() {
	cfg, err := config.LoadArgs(os.Args[1:])
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	store, err := storage.Open(cfg.DB)
	if err != nil {
		slog.Error("failed to open store", "db", cfg.DB, "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("store opened", "db", cfg.DB)

	mgr := deck.NewManager(store)

	// Repair runs before anything reads the chapters, so earlier storage
	// corruption cannot leak into views or cascades.
	if _, err := mgr.RepairCorruption(); err != nil {
		slog.Error("chapter repair failed", "error", err)
		os.Exit(1)
	}

	if cfg.Import {
		importer.Run(mgr, cfg.Sources, cfg.Repos)
		return
	}

	if cfg.Seed {
		if err := seed.Run(mgr); err != nil {
			slog.Error("failed to seed sample deck", "error", err)
			os.Exit(1)
		}
	}

	server, err := web.NewServer(mgr)
	if err != nil {
		slog.Error("failed to build server", "error", err)
		os.Exit(1)
	}

	slog.Info("listening", "addr", cfg.Listen)
	if err := http.ListenAndServe(cfg.Listen, server); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
