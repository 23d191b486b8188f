package main

import (
	"context"
	"encoding/json"
	"flag"
	"io"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/vncsmyrnk/ballotwizard/internal/adapters/clock"
	"github.com/vncsmyrnk/ballotwizard/internal/adapters/storage"
	"github.com/vncsmyrnk/ballotwizard/internal/adapters/storage/file"
	"github.com/vncsmyrnk/ballotwizard/internal/config"
	"github.com/vncsmyrnk/ballotwizard/internal/core/ports"
	"github.com/vncsmyrnk/ballotwizard/internal/core/services"
)

type verdict struct {
	Key       string    `json:"key"`
	Usable    bool      `json:"usable"`
	IsRecent  bool      `json:"isRecent,omitempty"`
	Timestamp time.Time `json:"timestamp,omitzero"`
	Title     string    `json:"title,omitempty"`
	Score     int       `json:"completionScore,omitempty"`
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg, err := config.ParseEnv()
	if err != nil {
		log.Fatal(err)
	}

	flag.StringVar(&cfg.Storage, "storage", cfg.Storage, "Storage backend (memory, file, sqlite, postgres)")
	flag.StringVar(&cfg.StorageDir, "dir", cfg.StorageDir, "Slot directory for file storage")
	flag.StringVar(&cfg.SQLitePath, "sqlite-path", cfg.SQLitePath, "Database path for sqlite storage")
	flag.StringVar(&cfg.AutoSaveKey, "key", cfg.AutoSaveKey, "Slot key")
	clearSlot := flag.Bool("clear", false, "Delete the slot after inspecting it")
	list := flag.Bool("list", false, "List the slot keys of file storage instead of inspecting one")
	flag.Parse()

	if *list {
		store, err := file.NewStore(cfg.StorageDir)
		if err != nil {
			log.Fatal(err)
		}
		if err := listSlots(os.Stdout, store); err != nil {
			log.Fatalf("Error listing slots: %v", err)
		}
		return
	}

	store, closeStore, err := storage.Open(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer closeStore()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	opts := services.AutoSaveOptions{
		Key:       cfg.AutoSaveKey,
		Delay:     cfg.AutoSaveDelay,
		MaxAge:    cfg.AutoSaveMaxAge,
		RecentAge: cfg.AutoSaveRecentAge,
	}
	if err := inspect(ctx, os.Stdout, store, opts, *clearSlot); err != nil {
		log.Fatalf("Error writing verdict: %v", err)
	}
}

type slotLister interface {
	Keys() ([]string, error)
}

// listSlots writes the stored slot keys as a JSON array.
func listSlots(out io.Writer, store slotLister) error {
	keys, err := store.Keys()
	if err != nil {
		return err
	}
	if keys == nil {
		keys = []string{}
	}
	return json.NewEncoder(out).Encode(keys)
}

// inspect writes the recovery verdict for the slot as JSON.
func inspect(ctx context.Context, out io.Writer, store ports.ScratchStore, opts services.AutoSaveOptions, clearSlot bool) error {
	saver := services.NewAutoSaver(store, clock.NewSystem(), nil, opts)

	v := verdict{Key: opts.Key}
	if rec, ok := saver.Load(ctx); ok {
		v.Usable = true
		v.IsRecent = rec.IsRecent
		v.Timestamp = rec.Timestamp
		v.Title = rec.Data.Title
		v.Score = services.NewCompletionScorer().Score(rec.Data)
	}
	if clearSlot {
		saver.Clear(ctx)
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
