package codepattern

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	codepatternerrors "go-hrms/internal/codepattern/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=codepattern_service.go -destination=mock/codepattern_service_mock.go -package=mock
type Service interface {
	GetPattern(ctx context.Context, companyID string) (PatternResponse, error)
	UpdatePattern(ctx context.Context, companyID string, req UpdatePatternRequest) (PatternResponse, error)
	// AllocateCode menghitung kandidat kode berikutnya untuk keluarga prefix
	// yang sedang aktif. Caller yang menulis baris employee; race diatasi di
	// storage lewat unique index + retry di sisi caller.
	AllocateCode(ctx context.Context, companyID string) (string, error)
	AllocateCodeTx(ctx context.Context, tx *sql.Tx, companyID string) (string, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("codepattern.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("codepattern.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) GetPattern(ctx context.Context, companyID string) (PatternResponse, error) {
	if _, err := uuid.Parse(companyID); err != nil {
		return PatternResponse{}, codepatternerrors.ErrInvalidCompanyID
	}

	pattern, err := s.patternForCompany(ctx, s.repo, companyID)
	if err != nil {
		return PatternResponse{}, err
	}
	return mapToResponse(companyID, pattern), nil
}

func (s *service) UpdatePattern(ctx context.Context, companyID string, req UpdatePatternRequest) (PatternResponse, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return PatternResponse{}, codepatternerrors.ErrInvalidCompanyID
	}
	if strings.TrimSpace(req.Prefix) == "" {
		return PatternResponse{}, codepatternerrors.ErrInvalidPrefix
	}
	if req.MinDigits < 1 || req.MinDigits > 10 {
		return PatternResponse{}, codepatternerrors.ErrInvalidMinDigits
	}

	pattern := Pattern{
		Prefix:    req.Prefix,
		Separator: req.Separator,
		MinDigits: req.MinDigits,
	}.Normalize()

	row := &CodePattern{
		ID:        uuid.New(),
		CompanyID: companyUUID,
		Prefix:    pattern.Prefix,
		Separator: pattern.Separator,
		MinDigits: pattern.MinDigits,
		UpdatedAt: time.Now().UTC(),
	}
	if err := s.repo.Upsert(ctx, row); err != nil {
		s.logger.Error("update code pattern persist failed",
			zap.String("company_id", companyID),
			zap.Error(err),
		)
		return PatternResponse{}, err
	}

	// Berlaku untuk kode yang digenerate setelah ini; kode lama tidak diubah.
	s.logger.Info("code pattern updated",
		zap.String("company_id", companyID),
		zap.String("prefix", pattern.Prefix),
		zap.Int("min_digits", pattern.MinDigits),
	)
	return mapToResponse(companyID, pattern), nil
}

func (s *service) AllocateCode(ctx context.Context, companyID string) (string, error) {
	return s.allocate(ctx, s.repo, companyID)
}

func (s *service) AllocateCodeTx(ctx context.Context, tx *sql.Tx, companyID string) (string, error) {
	return s.allocate(ctx, s.repo.WithTx(tx), companyID)
}

func (s *service) allocate(ctx context.Context, repo Repository, companyID string) (string, error) {
	if _, err := uuid.Parse(companyID); err != nil {
		return "", codepatternerrors.ErrInvalidCompanyID
	}

	pattern, err := s.patternForCompany(ctx, repo, companyID)
	if err != nil {
		return "", err
	}

	codes, err := repo.ListEmployeeCodes(ctx, companyID)
	if err != nil {
		s.logger.Error("allocate code list existing failed",
			zap.String("company_id", companyID),
			zap.Error(err),
		)
		return "", err
	}

	code := NextCode(codes, pattern)
	s.logger.Debug("employee code allocated",
		zap.String("company_id", companyID),
		zap.String("code", code),
	)
	return code, nil
}

func (s *service) patternForCompany(ctx context.Context, repo Repository, companyID string) (Pattern, error) {
	row, err := repo.FindByCompany(ctx, companyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return DefaultPattern(), nil
		}
		return Pattern{}, err
	}
	return Pattern{
		Prefix:    row.Prefix,
		Separator: row.Separator,
		MinDigits: row.MinDigits,
	}.Normalize(), nil
}

func mapToResponse(companyID string, p Pattern) PatternResponse {
	return PatternResponse{
		CompanyID: companyID,
		Prefix:    p.Prefix,
		Separator: p.Separator,
		MinDigits: p.MinDigits,
		Preview:   Format(1, p),
	}
}
