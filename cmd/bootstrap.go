package cmd

import (
	"context"
	"fmt"
	"time"

	"catalog-sync/core/config"
	"catalog-sync/core/database"
	"catalog-sync/core/journal"
	"catalog-sync/core/logger"
	"catalog-sync/core/shopify"
	"catalog-sync/core/storage"
	"catalog-sync/feature/catalog"
	"catalog-sync/feature/catalog/handles"
	"catalog-sync/feature/catalog/store/graphql"

	"go.uber.org/zap"
)

// runtime is the wiring shared by the sync, gc and start commands.
type runtime struct {
	cfg     *config.Config
	logger  *zap.Logger
	service *catalog.Service
}

// bootstrap loads configuration and builds the catalog service. Missing store
// credentials fail here, before any item is processed.
func bootstrap() (*runtime, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	sourceClient, err := shopify.NewClient(cfg.Source, l)
	if err != nil {
		return nil, fmt.Errorf("source store: %w", err)
	}
	targetClient, err := shopify.NewClient(cfg.Target, l)
	if err != nil {
		return nil, fmt.Errorf("target store: %w", err)
	}

	// Object storage is only needed for a remote handle list or report archival.
	var client storage.Client
	if cfg.Catalog.HandlesObject != "" || cfg.Server.ArchiveReports {
		client, err = storage.NewClient(cfg.Storage)
		if err != nil {
			return nil, fmt.Errorf("failed to create storage client: %w", err)
		}
	}
	archiveBucket := ""
	if cfg.Server.ArchiveReports {
		timeout := time.Duration(max(cfg.Storage.TimeoutSeconds, 1)) * time.Second
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		err := storage.RequireBucket(ctx, client, cfg.Storage.Bucket)
		cancel()
		if err != nil {
			l.Warn("Report archival disabled", zap.Error(err))
		} else {
			archiveBucket = cfg.Storage.Bucket
		}
	}

	var j *journal.Journal
	if cfg.Catalog.Journal {
		j, err = openJournal(cfg.Database, l)
		if err != nil {
			l.Warn("Run journal disabled", zap.Error(err))
			j = nil
		}
	}

	svc := catalog.NewService(
		graphql.New(sourceClient, l.With(zap.String("side", "source"))),
		graphql.New(targetClient, l.With(zap.String("side", "target"))),
		client,
		archiveBucket,
		j,
		catalog.Config{
			Handles: handles.Source{
				File:   cfg.Catalog.HandlesFile,
				Bucket: cfg.Storage.Bucket,
				Object: cfg.Catalog.HandlesObject,
			},
			OwnerTypes: cfg.Catalog.OwnerTypeList(),
			CacheTTL:   time.Duration(cfg.Catalog.CacheTTLSeconds) * time.Second,
		},
		l,
	)

	return &runtime{cfg: cfg, logger: l, service: svc}, nil
}

func openJournal(cfg database.Config, l *zap.Logger) (*journal.Journal, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, err
	}
	j := journal.New(db, l)
	if err := j.Migrate(); err != nil {
		return nil, err
	}
	if err := j.Verify(); err != nil {
		return nil, err
	}
	l.Info("Run journal enabled", zap.String("driver", cfg.Driver))
	return j, nil
}
