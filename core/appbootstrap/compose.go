package appbootstrap

import (
	"context"
	"database/sql"
	"fmt"

	"nis2-copilot/api"
	"nis2-copilot/config"
	"nis2-copilot/core/blob"
	"nis2-copilot/core/drafts"
	"nis2-copilot/core/intake"
	"nis2-copilot/core/llm"
	"nis2-copilot/core/store"
	"nis2-copilot/core/utils"
)

type runtimeComposition struct {
	serverDeps api.ServerDeps
	sweeper    *blob.Sweeper
}

func composeRuntime(ctx context.Context, cfg *config.AppConfig, db *sql.DB, logger *utils.Logger) (*runtimeComposition, error) {
	var audits store.AuditStore
	if db != nil {
		audits = store.NewAuditStore(db)
	}

	var blobs blob.Store
	var sweeper *blob.Sweeper
	switch cfg.Storage.Backend {
	case "", "local":
		local, err := blob.NewLocalStore(cfg.Storage)
		if err != nil {
			return nil, fmt.Errorf("local storage: %w", err)
		}
		blobs = local
		sweeper = blob.NewSweeper(cfg.Retention, local, logger)
	case "s3":
		s3Store, err := blob.NewS3Store(ctx, cfg.Storage.S3, cfg.Storage.PublicBaseURL)
		if err != nil {
			return nil, fmt.Errorf("s3 storage: %w", err)
		}
		blobs = s3Store
	default:
		return nil, fmt.Errorf("unsupported storage backend %q", cfg.Storage.Backend)
	}

	aiClient := llm.NewClient(cfg.AI)
	generator := drafts.NewGenerator(aiClient, logger)
	intakeSvc := intake.NewService(cfg, blobs, generator, audits, logger)

	return &runtimeComposition{
		serverDeps: api.ServerDeps{
			IntakeSvc: intakeSvc,
			AI:        aiClient,
		},
		sweeper: sweeper,
	}, nil
}
