package codepattern

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeRepo struct {
	findByCompanyFn     func(ctx context.Context, companyID string) (*CodePattern, error)
	upsertFn            func(ctx context.Context, pattern *CodePattern) error
	listEmployeeCodesFn func(ctx context.Context, companyID string) ([]string, error)
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository { return f }
func (f *fakeRepo) FindByCompany(ctx context.Context, companyID string) (*CodePattern, error) {
	return f.findByCompanyFn(ctx, companyID)
}
func (f *fakeRepo) Upsert(ctx context.Context, pattern *CodePattern) error {
	return f.upsertFn(ctx, pattern)
}
func (f *fakeRepo) ListEmployeeCodes(ctx context.Context, companyID string) ([]string, error) {
	return f.listEmployeeCodesFn(ctx, companyID)
}

func TestService_AllocateCode(t *testing.T) {
	companyID := uuid.New().String()
	ctx := context.Background()

	repo := &fakeRepo{
		findByCompanyFn: func(ctx context.Context, cid string) (*CodePattern, error) {
			return &CodePattern{Prefix: "ACQ", Separator: "-", MinDigits: 3}, nil
		},
		listEmployeeCodesFn: func(ctx context.Context, cid string) ([]string, error) {
			return []string{"ACQ-001", "ACQ-005", "ACQ-003"}, nil
		},
	}

	svc := NewService(repo)
	code, err := svc.AllocateCode(ctx, companyID)
	assert.NoError(t, err)
	assert.Equal(t, "ACQ-006", code)
}

func TestService_AllocateCode_DefaultPatternWhenUnconfigured(t *testing.T) {
	companyID := uuid.New().String()

	repo := &fakeRepo{
		findByCompanyFn: func(ctx context.Context, cid string) (*CodePattern, error) {
			return nil, gorm.ErrRecordNotFound
		},
		listEmployeeCodesFn: func(ctx context.Context, cid string) ([]string, error) {
			return nil, nil
		},
	}

	svc := NewService(repo)
	code, err := svc.AllocateCode(context.Background(), companyID)
	assert.NoError(t, err)
	assert.Equal(t, "EMP-0001", code)
}

func TestService_AllocateCode_RestartsOnPrefixChange(t *testing.T) {
	companyID := uuid.New().String()

	// Pattern sudah diganti ke HRX; kode ACQ lama tidak memberi constraint.
	repo := &fakeRepo{
		findByCompanyFn: func(ctx context.Context, cid string) (*CodePattern, error) {
			return &CodePattern{Prefix: "HRX", Separator: "-", MinDigits: 4}, nil
		},
		listEmployeeCodesFn: func(ctx context.Context, cid string) ([]string, error) {
			return []string{"ACQ-099", "ACQ-100"}, nil
		},
	}

	svc := NewService(repo)
	code, err := svc.AllocateCode(context.Background(), companyID)
	assert.NoError(t, err)
	assert.Equal(t, "HRX-0001", code)
}

func TestService_AllocateCode_InvalidCompanyID(t *testing.T) {
	svc := NewService(&fakeRepo{})
	_, err := svc.AllocateCode(context.Background(), "not-a-uuid")
	assert.Error(t, err)
}

func TestService_UpdatePattern(t *testing.T) {
	companyID := uuid.New().String()

	var saved CodePattern
	repo := &fakeRepo{
		upsertFn: func(ctx context.Context, pattern *CodePattern) error {
			saved = *pattern
			return nil
		},
	}

	svc := NewService(repo)
	resp, err := svc.UpdatePattern(context.Background(), companyID, UpdatePatternRequest{
		Prefix:    "acq",
		Separator: "-",
		MinDigits: 3,
	})
	assert.NoError(t, err)
	assert.Equal(t, "ACQ", resp.Prefix)
	assert.Equal(t, "ACQ-001", resp.Preview)
	assert.Equal(t, "ACQ", saved.Prefix)
}

func TestService_UpdatePattern_Invalid(t *testing.T) {
	companyID := uuid.New().String()
	svc := NewService(&fakeRepo{})

	_, err := svc.UpdatePattern(context.Background(), companyID, UpdatePatternRequest{Prefix: "  ", MinDigits: 3})
	assert.Error(t, err)

	_, err = svc.UpdatePattern(context.Background(), companyID, UpdatePatternRequest{Prefix: "ACQ", MinDigits: 11})
	assert.Error(t, err)
}
