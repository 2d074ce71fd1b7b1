package syncer

import (
	"context"
	"strings"

	"catalog-sync/core/reconcile"
	"catalog-sync/feature/catalog/models"
	"catalog-sync/feature/catalog/store"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Kinds used when reporting results.
const (
	KindDefinition          = "definition"
	KindInstance            = "instance"
	KindAttributeDefinition = "attribute-definition"
	KindAttribute           = "attribute"
	KindFile                = "file"
	KindCollection          = "collection"
	KindPage                = "page"
	KindMenu                = "menu"
	KindProduct             = "product"
)

// Write limits of the target API.
const (
	attributeChunkSize = 250
	fileChunkSize      = 250
)

// DefaultOwnerTypes are the owners whose attribute definitions are synced.
var DefaultOwnerTypes = []string{"PAGE", "PRODUCT", "PRODUCTVARIANT"}

// Syncer reconciles one target store against one source store.
//
// A Syncer holds the state of a single run (definition indexes and cycle
// guards) and is not safe for concurrent use. Create one per run.
type Syncer struct {
	source store.Store
	target store.Store
	logger *zap.Logger
	runner *reconcile.Runner

	ownerTypes []string
	dryRun     bool

	defsLoaded     bool
	sourceDefsByID *reconcile.Index[models.Definition]
	targetDefs     *reconcile.Index[models.Definition]

	defsActive      guard
	defsDeferred    guard
	instancesActive guard
}

// Option customizes a Syncer.
type Option func(*Syncer)

// WithReporter sends per-item results to r instead of the log.
func WithReporter(r reconcile.Reporter) Option {
	return func(s *Syncer) {
		s.runner = reconcile.NewRunner(s.logger, r)
	}
}

// WithOwnerTypes overrides DefaultOwnerTypes.
func WithOwnerTypes(ownerTypes []string) Option {
	return func(s *Syncer) {
		if len(ownerTypes) > 0 {
			s.ownerTypes = ownerTypes
		}
	}
}

// WithDryRun makes garbage collection report what it would delete
// without deleting it.
func WithDryRun(dryRun bool) Option {
	return func(s *Syncer) {
		s.dryRun = dryRun
	}
}

// New creates a Syncer copying from source into target.
func New(source, target store.Store, logger *zap.Logger, opts ...Option) *Syncer {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Syncer{
		source:          source,
		target:          target,
		logger:          logger,
		runner:          reconcile.NewRunner(logger, nil),
		ownerTypes:      DefaultOwnerTypes,
		defsActive:      guard{},
		defsDeferred:    guard{},
		instancesActive: guard{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func definitionType(d models.Definition) string { return d.Type }
func definitionID(d models.Definition) string   { return d.ID }

// isPlatformType reports whether a definition type is owned by the platform.
func isPlatformType(typ string) bool {
	return strings.Contains(typ, "shopify--")
}

// isPlatformNamespace reports whether an attribute namespace is owned by the platform.
func isPlatformNamespace(namespace string) bool {
	return strings.Contains(namespace, "shopify")
}

// loadDefinitions reads both sides' definitions once per run.
func (s *Syncer) loadDefinitions(ctx context.Context) error {
	if s.defsLoaded {
		return nil
	}

	var sourceDefs, targetDefs []models.Definition
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		sourceDefs, err = s.source.ListDefinitions(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		targetDefs, err = s.target.ListDefinitions(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	s.sourceDefsByID = reconcile.NewIndex("definition", reconcile.SideSource, definitionID, sourceDefs)
	s.targetDefs = reconcile.NewIndex("definition", reconcile.SideTarget, definitionType, targetDefs)
	s.defsLoaded = true
	s.logger.Debug("Definitions loaded",
		zap.Int("source", len(sourceDefs)),
		zap.Int("target", len(targetDefs)))
	return nil
}

// reportNested reports an item written while syncing another one.
func (s *Syncer) reportNested(ctx context.Context, kind, key string, outcome reconcile.Outcome) {
	if outcome == reconcile.Unchanged || outcome == reconcile.Skipped {
		return
	}
	s.runner.Report(ctx, reconcile.Result{Kind: kind, Key: key, Outcome: outcome})
}
