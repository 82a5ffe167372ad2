package main

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"smartassist/internal/repository"
	"smartassist/internal/service"
	"smartassist/pkg/config"
	"smartassist/pkg/logger"
	"smartassist/pkg/postgres"

	"go.uber.org/zap"
)

// Bulk-ingests every PDF in the docs directory into the vector index.
// A hash cache skips files that have not changed since the last run, so
// the command is safe to re-run after dropping new documents in.

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Logger.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	appLogger := logger.Get()

	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := postgres.EnsureSchema(ctx, db, appLogger); err != nil {
		appLogger.Fatal("Failed to ensure database schema", zap.Error(err))
	}

	chunkRepo := repository.NewChunkRepository(db, appLogger)
	embedder := service.NewOllamaEmbedder(&cfg.Ollama, appLogger)
	ingestService := service.NewIngestService(chunkRepo, embedder, &cfg.RAG, appLogger)

	appLogger.Info("Starting document seeding", zap.String("dir", cfg.RAG.UploadDir))

	cacheFile := filepath.Join(cfg.RAG.UploadDir, ".seed_cache.json")
	if err := seedFromPDFs(ctx, cfg.RAG.UploadDir, cacheFile, chunkRepo, ingestService, appLogger); err != nil {
		appLogger.Fatal("Failed to seed documents", zap.Error(err))
	}

	appLogger.Info("Document seeding completed")
}

// ProcessedFile records one already-ingested PDF in the cache
type ProcessedFile struct {
	FilePath    string    `json:"file_path"`
	FileHash    string    `json:"file_hash"`
	ProcessedAt time.Time `json:"processed_at"`
}

type CacheData struct {
	ProcessedFiles map[string]ProcessedFile `json:"processed_files"` // key: file path
}

func loadCache(cacheFile string) (*CacheData, error) {
	cache := &CacheData{
		ProcessedFiles: make(map[string]ProcessedFile),
	}

	if _, err := os.Stat(cacheFile); os.IsNotExist(err) {
		return cache, nil
	}

	data, err := os.ReadFile(cacheFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read cache file: %w", err)
	}
	if len(data) == 0 {
		return cache, nil
	}

	if err := json.Unmarshal(data, cache); err != nil {
		return nil, fmt.Errorf("failed to parse cache file: %w", err)
	}

	return cache, nil
}

func saveCache(cacheFile string, cache *CacheData) error {
	data, err := json.MarshalIndent(cache, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal cache: %w", err)
	}

	if err := os.WriteFile(cacheFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write cache file: %w", err)
	}

	return nil
}

func fileHash(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%x", md5.Sum(data)), nil
}

func seedFromPDFs(
	ctx context.Context,
	dir, cacheFile string,
	chunkRepo *repository.ChunkRepository,
	ingestService *service.IngestService,
	appLogger *zap.Logger,
) error {
	cache, err := loadCache(cacheFile)
	if err != nil {
		appLogger.Warn("Failed to load seed cache, reprocessing everything", zap.Error(err))
		cache = &CacheData{ProcessedFiles: make(map[string]ProcessedFile)}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	processed := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".pdf") {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		hash, err := fileHash(path)
		if err != nil {
			appLogger.Warn("Failed to hash file, skipping", zap.String("file", path), zap.Error(err))
			continue
		}

		if cached, ok := cache.ProcessedFiles[path]; ok && cached.FileHash == hash {
			appLogger.Debug("File unchanged, skipping", zap.String("file", path))
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			appLogger.Warn("Failed to read file, skipping", zap.String("file", path), zap.Error(err))
			continue
		}

		// A changed file replaces its previous chunks
		if err := chunkRepo.DeleteBySource(ctx, entry.Name()); err != nil {
			appLogger.Warn("Failed to clear previous chunks", zap.String("file", entry.Name()), zap.Error(err))
		}

		chunks, err := ingestService.IngestPDF(ctx, data, entry.Name())
		if err != nil {
			appLogger.Error("Failed to ingest file", zap.String("file", path), zap.Error(err))
			continue
		}

		cache.ProcessedFiles[path] = ProcessedFile{
			FilePath:    path,
			FileHash:    hash,
			ProcessedAt: time.Now(),
		}
		processed++

		appLogger.Info("File ingested",
			zap.String("file", entry.Name()),
			zap.Int("chunks", chunks),
		)
	}

	if err := saveCache(cacheFile, cache); err != nil {
		appLogger.Warn("Failed to save seed cache", zap.Error(err))
	}

	appLogger.Info("Seeding pass finished", zap.Int("files_processed", processed))
	return nil
}
