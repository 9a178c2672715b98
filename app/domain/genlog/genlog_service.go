package genlog

import (
	"context"
	"time"

	"tileworld.ai/sprite-gateway/app/utils/logger"
)

// Kind labels what a generation call was for.
type Kind string

const (
	KindCold     Kind = "cold"
	KindReorient Kind = "reorient"
	KindEdit     Kind = "edit"
	KindTexture  Kind = "texture"
)

// Record is one generation call, successful or not.
type Record struct {
	ID          uint
	Kind        Kind
	ObjectKey   string
	Orientation string
	Prompt      string
	Backend     string
	ImageURL    string
	DurationMs  int64
	Success     bool
	ErrorText   string
	CreatedAt   time.Time
}

type RecordRepository interface {
	Create(ctx context.Context, record *Record) error
	List(ctx context.Context, limit int) ([]Record, error)
}

// Service records generation calls for observability. Logging failures are
// reported but never fail the call being recorded.
type Service struct {
	repo RecordRepository
}

func NewService(repo RecordRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Record(ctx context.Context, record *Record) {
	if s == nil || s.repo == nil {
		return
	}
	if err := s.repo.Create(ctx, record); err != nil {
		logger.GetLogger().Warnf("genlog: unable to record generation call: %v", err)
	}
}

func (s *Service) List(ctx context.Context, limit int) ([]Record, error) {
	if s == nil || s.repo == nil {
		return nil, nil
	}
	return s.repo.List(ctx, limit)
}
