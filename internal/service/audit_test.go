package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/preciousgifts/sugar-backend/internal/domain"
	"github.com/preciousgifts/sugar-backend/pkg/pagination"
)

func newTestAuditService(logRepo *mockLogRepository, seqRepo *mockSequenceRepository, cfg AuditConfig) *AuditService {
	return NewAuditService(logRepo, seqRepo, cfg, newTestLogger())
}

func TestAuditRecord_PersistsEntry(t *testing.T) {
	logRepo := new(mockLogRepository)
	seqRepo := new(mockSequenceRepository)
	svc := newTestAuditService(logRepo, seqRepo, AuditConfig{Enabled: true})
	ctx := context.Background()

	seqRepo.On("Next", ctx, "logId").Return(int64(1), nil)
	logRepo.On("Create", ctx, mock.MatchedBy(func(e *domain.LogEntry) bool {
		return e.ID == 1 &&
			e.Level == domain.LogLevelInfo &&
			e.Module == "ratings" &&
			e.Message == "rating submitted" &&
			e.Context["rating_id"] == int64(21)
	})).Return(nil)

	svc.Record(ctx, domain.LogLevelInfo, "ratings", "rating submitted", map[string]any{"rating_id": int64(21)})

	logRepo.AssertExpectations(t)
	seqRepo.AssertExpectations(t)
}

func TestAuditRecord_DisabledWritesNothing(t *testing.T) {
	logRepo := new(mockLogRepository)
	seqRepo := new(mockSequenceRepository)
	svc := newTestAuditService(logRepo, seqRepo, AuditConfig{Enabled: false})
	ctx := context.Background()

	svc.Record(ctx, domain.LogLevelInfo, "ratings", "rating submitted", nil)

	logRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	seqRepo.AssertNotCalled(t, "Next", mock.Anything, mock.Anything)
}

func TestAuditRecord_LevelGate(t *testing.T) {
	logRepo := new(mockLogRepository)
	seqRepo := new(mockSequenceRepository)
	svc := newTestAuditService(logRepo, seqRepo, AuditConfig{
		Enabled: true,
		Levels:  []string{domain.LogLevelWarn, domain.LogLevelError},
	})
	ctx := context.Background()

	seqRepo.On("Next", ctx, "logId").Return(int64(1), nil)
	logRepo.On("Create", ctx, mock.AnythingOfType("*domain.LogEntry")).Return(nil)

	svc.Record(ctx, domain.LogLevelInfo, "products", "ignored", nil)
	svc.Record(ctx, domain.LogLevelError, "products", "recorded", nil)

	logRepo.AssertNumberOfCalls(t, "Create", 1)
}

func TestAuditRecord_ModuleGate(t *testing.T) {
	logRepo := new(mockLogRepository)
	seqRepo := new(mockSequenceRepository)
	svc := newTestAuditService(logRepo, seqRepo, AuditConfig{
		Enabled: true,
		Modules: []string{"ratings"},
	})
	ctx := context.Background()

	seqRepo.On("Next", ctx, "logId").Return(int64(1), nil)
	logRepo.On("Create", ctx, mock.AnythingOfType("*domain.LogEntry")).Return(nil)

	svc.Record(ctx, domain.LogLevelInfo, "products", "ignored", nil)
	svc.Record(ctx, domain.LogLevelInfo, "ratings", "recorded", nil)

	logRepo.AssertNumberOfCalls(t, "Create", 1)
}

func TestAuditRecord_WriteFailureIsSwallowed(t *testing.T) {
	logRepo := new(mockLogRepository)
	seqRepo := new(mockSequenceRepository)
	svc := newTestAuditService(logRepo, seqRepo, AuditConfig{Enabled: true})
	ctx := context.Background()

	seqRepo.On("Next", ctx, "logId").Return(int64(1), nil)
	logRepo.On("Create", ctx, mock.AnythingOfType("*domain.LogEntry")).Return(assert.AnError)

	// Must not panic or surface the failure.
	svc.Record(ctx, domain.LogLevelInfo, "ratings", "rating submitted", nil)

	logRepo.AssertExpectations(t)
}

func TestAuditRecord_NilServiceIsNoOp(t *testing.T) {
	var svc *AuditService

	svc.Record(context.Background(), domain.LogLevelInfo, "ratings", "rating submitted", nil)
}

func TestAuditList(t *testing.T) {
	logRepo := new(mockLogRepository)
	seqRepo := new(mockSequenceRepository)
	svc := newTestAuditService(logRepo, seqRepo, AuditConfig{Enabled: true})
	ctx := context.Background()

	since := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	p := pagination.Params{Page: 1, PerPage: 10}
	entries := []domain.LogEntry{
		{ID: 2, Level: domain.LogLevelError, Module: "products"},
		{ID: 1, Level: domain.LogLevelInfo, Module: "ratings"},
	}
	logRepo.On("List", ctx, since, p).Return(entries, 2, nil)

	result, err := svc.List(ctx, since, p)

	require.NoError(t, err)
	assert.Len(t, result.Data, 2)
	assert.Equal(t, 2, result.TotalCount)
}
