package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"catalog-sync/core/journal"
	"catalog-sync/core/logger"
	"catalog-sync/core/reconcile"
	"catalog-sync/core/storage"
	"catalog-sync/feature/catalog/handles"
	"catalog-sync/feature/catalog/store"
	"catalog-sync/feature/catalog/syncer"

	"go.uber.org/zap"
)

// Pass kinds accepted by Run and Start.
const (
	KindDefinitions          = "definitions"
	KindInstances            = "instances"
	KindAttributeDefinitions = "attribute-definitions"
	KindAttributes           = "attributes"
	KindFiles                = "files"
	KindCollections          = "collections"
	KindPages                = "pages"
	KindMenus                = "menus"
	KindProducts             = "products"
	KindAll                  = "all"

	KindGCDefinitions          = "gc-definitions"
	KindGCInstances            = "gc-instances"
	KindGCAttributeDefinitions = "gc-attribute-definitions"
	KindGCCollections          = "gc-collections"
)

// SyncKinds lists the sync passes in the order KindAll runs them.
var SyncKinds = []string{
	KindFiles,
	KindCollections,
	KindDefinitions,
	KindAttributeDefinitions,
	KindPages,
	KindMenus,
	KindProducts,
	KindAttributes,
}

// GCKinds lists the garbage collection passes.
var GCKinds = []string{
	KindGCDefinitions,
	KindGCInstances,
	KindGCAttributeDefinitions,
	KindGCCollections,
}

var (
	ErrBusy         = errors.New("a run is already in progress")
	ErrUnknownKind  = errors.New("unknown pass kind")
	ErrTypeRequired = errors.New("definition type is required")
	ErrNoJournal    = errors.New("run journal is disabled")
)

// Config tunes the passes run by the service.
type Config struct {
	Handles    handles.Source
	OwnerTypes []string
	// CacheTTL caches source point reads for the length of a run. Zero disables it.
	CacheTTL time.Duration
}

// RunOptions parameterize a single pass.
type RunOptions struct {
	// Type is the definition type for instance passes.
	Type string `json:"type,omitempty"`
	// DryRun reports what gc passes would delete without deleting.
	DryRun bool `json:"dry_run,omitempty"`
}

// Status describes the service's current and last run.
type Status struct {
	Running string             `json:"running,omitempty"`
	Last    *reconcile.Summary `json:"last,omitempty"`
}

// Service runs sync and gc passes, one at a time.
type Service struct {
	source  store.Store
	target  store.Store
	client  storage.Client
	bucket  string
	journal *journal.Journal
	cfg     Config
	logger  *zap.Logger

	mu      sync.Mutex
	running string
	last    *reconcile.Summary
}

// NewService creates a new catalog service. client and j may be nil, in which
// case reports are not archived and runs are not journaled.
func NewService(source, target store.Store, client storage.Client, bucket string, j *journal.Journal, cfg Config, logger *zap.Logger) *Service {
	return &Service{
		source:  source,
		target:  target,
		client:  client,
		bucket:  bucket,
		journal: j,
		cfg:     cfg,
		logger:  logger,
	}
}

// Validate checks that kind names a pass and that opts carry what it needs.
func Validate(kind string, opts RunOptions) error {
	switch kind {
	case KindInstances, KindGCInstances:
		if opts.Type == "" {
			return fmt.Errorf("%w for %s", ErrTypeRequired, kind)
		}
		return nil
	case KindAll:
		return nil
	}
	for _, k := range SyncKinds {
		if k == kind {
			return nil
		}
	}
	for _, k := range GCKinds {
		if k == kind {
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrUnknownKind, kind)
}

// Run executes one pass and blocks until it finishes.
func (s *Service) Run(ctx context.Context, kind string, opts RunOptions) (reconcile.Summary, error) {
	if err := Validate(kind, opts); err != nil {
		return reconcile.Summary{Kind: kind}, err
	}
	if !s.acquire(kind) {
		return reconcile.Summary{Kind: kind}, ErrBusy
	}
	defer s.release()
	return s.run(ctx, kind, opts)
}

// Start executes one pass in the background. It fails fast when the pass is
// invalid or another run is in progress.
func (s *Service) Start(kind string, opts RunOptions) error {
	if err := Validate(kind, opts); err != nil {
		return err
	}
	if !s.acquire(kind) {
		return ErrBusy
	}
	go func() {
		defer s.release()
		if _, err := s.run(context.Background(), kind, opts); err != nil {
			s.logger.Error("Background run failed", zap.String("pass", kind), zap.Error(err))
		}
	}()
	return nil
}

// Status returns the running pass, if any, and the summary of the last one.
func (s *Service) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Status{Running: s.running, Last: s.last}
}

// Runs lists journaled runs, most recent first.
func (s *Service) Runs(ctx context.Context, limit int) ([]journal.Run, error) {
	if s.journal == nil {
		return nil, ErrNoJournal
	}
	return s.journal.Runs(ctx, limit)
}

// Failures lists the failed items of a journaled run.
func (s *Service) Failures(ctx context.Context, runID string) ([]journal.Failure, error) {
	if s.journal == nil {
		return nil, ErrNoJournal
	}
	return s.journal.Failures(ctx, runID)
}

func (s *Service) acquire(kind string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running != "" {
		return false
	}
	s.running = kind
	return true
}

func (s *Service) release() {
	s.mu.Lock()
	s.running = ""
	s.mu.Unlock()
}

func (s *Service) run(ctx context.Context, kind string, opts RunOptions) (reconcile.Summary, error) {
	started := time.Now()

	var run *journal.Run
	if s.journal != nil {
		r, err := s.journal.Start(ctx, kind)
		if err != nil {
			s.logger.Warn("Failed to journal run start", zap.String("pass", kind), zap.Error(err))
		} else {
			run = r
		}
	}

	runID := ""
	if run != nil {
		runID = run.ID
	}
	log := logger.WithRun(s.logger, kind, runID)

	reporters := reconcile.MultiReporter{reconcile.NewLogReporter(log)}
	if run != nil {
		reporters = append(reporters, s.journal.Reporter(run))
	}

	source := s.source
	if s.cfg.CacheTTL > 0 {
		source = store.NewCached(s.source, s.cfg.CacheTTL)
	}
	sy := syncer.New(source, s.target, log,
		syncer.WithReporter(reporters),
		syncer.WithOwnerTypes(s.cfg.OwnerTypes),
		syncer.WithDryRun(opts.DryRun),
	)

	log.Info("Starting pass", zap.Bool("dry_run", opts.DryRun))
	summary, err := s.dispatch(ctx, sy, kind, opts)
	summary.Kind = kind
	if summary.StartedAt.IsZero() {
		summary.StartedAt = started
	}
	if summary.FinishedAt.IsZero() {
		summary.FinishedAt = time.Now()
	}

	if err != nil {
		log.Error("Pass aborted", zap.Error(err))
	} else {
		log.Info("Pass finished",
			zap.Int("total", summary.Total),
			zap.Int("changed", summary.Changed()),
			zap.Int("failed", summary.Failed),
			zap.Duration("elapsed", summary.FinishedAt.Sub(summary.StartedAt)))
	}

	if run != nil {
		if ferr := s.journal.Finish(ctx, run, summary); ferr != nil {
			log.Warn("Failed to journal run finish", zap.Error(ferr))
		}
	}
	s.archive(ctx, log, kind, runID, summary)

	s.mu.Lock()
	s.last = &summary
	s.mu.Unlock()

	return summary, err
}

func (s *Service) dispatch(ctx context.Context, sy *syncer.Syncer, kind string, opts RunOptions) (reconcile.Summary, error) {
	switch kind {
	case KindDefinitions:
		return sy.SyncDefinitions(ctx)
	case KindInstances:
		return sy.SyncInstancesOf(ctx, opts.Type)
	case KindAttributeDefinitions:
		return sy.SyncAttributeDefinitions(ctx)
	case KindAttributes:
		list, err := s.handles(ctx)
		if err != nil {
			return reconcile.Summary{}, err
		}
		return sy.SyncAttributes(ctx, list), nil
	case KindFiles:
		return sy.SyncFiles(ctx)
	case KindCollections:
		return sy.SyncCollections(ctx)
	case KindPages:
		return sy.SyncPages(ctx)
	case KindMenus:
		return sy.SyncMenus(ctx)
	case KindProducts:
		list, err := s.handles(ctx)
		if err != nil {
			return reconcile.Summary{}, err
		}
		return sy.SyncProducts(ctx, list), nil
	case KindAll:
		return s.all(ctx, sy, opts)
	case KindGCDefinitions:
		return sy.GarbageCollectDefinitions(ctx)
	case KindGCInstances:
		return sy.GarbageCollectInstances(ctx, opts.Type)
	case KindGCAttributeDefinitions:
		return sy.GarbageCollectAttributeDefinitions(ctx)
	case KindGCCollections:
		return sy.GarbageCollectCollections(ctx)
	}
	return reconcile.Summary{}, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
}

// all runs every sync pass on one syncer so the identifier maps and cycle
// guards are shared. A pass that cannot start is recorded as a failure and
// the rest still run.
func (s *Service) all(ctx context.Context, sy *syncer.Syncer, opts RunOptions) (reconcile.Summary, error) {
	var total reconcile.Summary
	for _, kind := range SyncKinds {
		if err := ctx.Err(); err != nil {
			return total, err
		}
		summary, err := s.dispatch(ctx, sy, kind, opts)
		if err != nil {
			s.logger.Error("Pass failed to start", zap.String("pass", kind), zap.Error(err))
			summary.Record(reconcile.Result{Kind: kind, Key: kind, Outcome: reconcile.Failed, Err: err})
		}
		total.Merge(summary)
	}
	return total, nil
}

func (s *Service) handles(ctx context.Context) ([]string, error) {
	src := s.cfg.Handles
	if src.Bucket == "" {
		src.Bucket = s.bucket
	}
	list, err := handles.Load(ctx, s.client, src)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("Loaded product handles", zap.Int("count", len(list)))
	return list, nil
}

// archive writes the summary to the bucket. Archival is best effort.
func (s *Service) archive(ctx context.Context, log *zap.Logger, kind, runID string, summary reconcile.Summary) {
	if s.client == nil || s.bucket == "" {
		return
	}
	name := runID
	if name == "" {
		name = summary.StartedAt.UTC().Format("20060102T150405Z")
	}
	key := fmt.Sprintf("reports/%s/%s.json", kind, name)
	if err := storage.WriteJSON(ctx, s.client, s.bucket, key, summary); err != nil {
		log.Warn("Failed to archive run summary", zap.String("object", key), zap.Error(err))
		return
	}
	log.Debug("Archived run summary", zap.String("object", key))
}
