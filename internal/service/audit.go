package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/preciousgifts/sugar-backend/internal/domain"
	"github.com/preciousgifts/sugar-backend/internal/repository"
	"github.com/preciousgifts/sugar-backend/pkg/pagination"
)

// AuditConfig gates which entries the audit service persists. Empty Levels
// or Modules means "all".
type AuditConfig struct {
	Enabled bool
	Levels  []string
	Modules []string
}

// AuditService persists structured application events to the logs table.
// Writes are best effort: a failed insert is reported to the process log
// and otherwise ignored, so auditing can never fail a request.
type AuditService struct {
	logRepo repository.LogRepository
	seqRepo repository.SequenceRepository
	cfg     AuditConfig
	levels  map[string]struct{}
	modules map[string]struct{}
	logger  *slog.Logger
}

// NewAuditService creates a new audit service.
func NewAuditService(
	logRepo repository.LogRepository,
	seqRepo repository.SequenceRepository,
	cfg AuditConfig,
	logger *slog.Logger,
) *AuditService {
	s := &AuditService{
		logRepo: logRepo,
		seqRepo: seqRepo,
		cfg:     cfg,
		levels:  make(map[string]struct{}, len(cfg.Levels)),
		modules: make(map[string]struct{}, len(cfg.Modules)),
		logger:  logger,
	}
	for _, l := range cfg.Levels {
		s.levels[l] = struct{}{}
	}
	for _, m := range cfg.Modules {
		s.modules[m] = struct{}{}
	}
	return s
}

// Record persists one audit entry if the configured gates allow it.
func (s *AuditService) Record(ctx context.Context, level, module, message string, fields map[string]any) {
	if !s.shouldRecord(level, module) {
		return
	}

	id, err := s.seqRepo.Next(ctx, seqLog)
	if err != nil {
		s.logger.WarnContext(ctx, "audit id assignment failed", slog.String("error", err.Error()))
		return
	}

	entry := &domain.LogEntry{
		ID:        id,
		Level:     level,
		Module:    module,
		Message:   message,
		Context:   fields,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.logRepo.Create(ctx, entry); err != nil {
		s.logger.WarnContext(ctx, "audit write failed",
			slog.String("module", module),
			slog.String("error", err.Error()),
		)
	}
}

// List returns persisted audit entries created at or after since, newest
// first.
func (s *AuditService) List(ctx context.Context, since time.Time, p pagination.Params) (pagination.Result[domain.LogEntry], error) {
	entries, total, err := s.logRepo.List(ctx, since, p)
	if err != nil {
		return pagination.Result[domain.LogEntry]{}, err
	}
	return pagination.NewResult(entries, total, p), nil
}

func (s *AuditService) shouldRecord(level, module string) bool {
	if s == nil || !s.cfg.Enabled {
		return false
	}
	if len(s.levels) > 0 {
		if _, ok := s.levels[level]; !ok {
			return false
		}
	}
	if len(s.modules) > 0 {
		if _, ok := s.modules[module]; !ok {
			return false
		}
	}
	return true
}
