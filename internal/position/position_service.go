package position

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	positionerrors "go-hrms/internal/position/errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const (
	positionCacheTTL     = 30 * time.Minute
	PositionAllKeyPrefix = "positions:all:"
)

func GetPositionAllKey(companyID string) string {
	return PositionAllKeyPrefix + companyID
}

//go:generate mockgen -source=position_service.go -destination=mock/position_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, companyID string, req CreatePositionRequest) (PositionResponse, error)
	GetAll(ctx context.Context, companyID string) ([]PositionResponse, error)
	GetByID(ctx context.Context, companyID, id string) (PositionResponse, error)
	Update(ctx context.Context, companyID, id string, req UpdatePositionRequest) (PositionResponse, error)
	Delete(ctx context.Context, companyID, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("position.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("position.service")
	}
	return &service{db: db, repo: repo, rdb: rdb, sf: &singleflight.Group{}, logger: l}
}

func (s *service) Create(
	ctx context.Context,
	companyID string,
	req CreatePositionRequest,
) (PositionResponse, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return PositionResponse{}, positionerrors.ErrInvalidCompanyID
	}

	deptUUID, err := uuid.Parse(req.DepartmentID)
	if err != nil {
		return PositionResponse{}, positionerrors.ErrInvalidDepartmentID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PositionResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	post := &Position{
		ID:           uuid.New(),
		Name:         req.Name,
		Description:  req.Description,
		CompanyID:    companyUUID,
		DepartmentID: deptUUID,
	}

	if err := qtx.Create(ctx, post); err != nil {
		return PositionResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return PositionResponse{}, err
	}

	s.invalidateCache(ctx, companyID)

	return mapToResponse(*post), nil
}

func (s *service) GetAll(
	ctx context.Context,
	companyID string,
) ([]PositionResponse, error) {
	cacheKey := GetPositionAllKey(companyID)

	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, cacheKey).Result()
		if err == nil {
			var resp []PositionResponse
			if err := json.Unmarshal([]byte(cached), &resp); err == nil {
				return resp, nil
			}
		}
	}

	// Singleflight mencegah stampede query saat cache kosong.
	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		positions, err := s.repo.FindAllByCompany(ctx, companyID)
		if err != nil {
			return nil, err
		}

		resp := mapToListResponse(positions)

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, cacheKey, string(jsonData), positionCacheTTL)
			}
		}

		return resp, nil
	})

	if err != nil {
		return nil, err
	}

	return v.([]PositionResponse), nil
}

func (s *service) GetByID(
	ctx context.Context,
	companyID, id string,
) (PositionResponse, error) {
	post, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PositionResponse{}, positionerrors.ErrPositionNotFound
		}
		return PositionResponse{}, err
	}

	return mapToResponse(*post), nil
}

func (s *service) Update(
	ctx context.Context,
	companyID, id string,
	req UpdatePositionRequest,
) (PositionResponse, error) {
	deptUUID, err := uuid.Parse(req.DepartmentID)
	if err != nil {
		return PositionResponse{}, positionerrors.ErrInvalidDepartmentID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PositionResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	post, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PositionResponse{}, positionerrors.ErrPositionNotFound
		}
		return PositionResponse{}, err
	}

	post.Name = req.Name
	post.Description = req.Description
	post.DepartmentID = deptUUID

	if err := qtx.Update(ctx, post); err != nil {
		return PositionResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return PositionResponse{}, err
	}

	s.invalidateCache(ctx, companyID)

	return mapToResponse(*post), nil
}

func (s *service) Delete(
	ctx context.Context,
	companyID, id string,
) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if err := qtx.Delete(ctx, companyID, id); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	// Invalidasi cache setelah data di DB resmi terhapus.
	s.invalidateCache(ctx, companyID)

	return nil
}

func (s *service) invalidateCache(ctx context.Context, companyID string) {
	if s.rdb == nil {
		return
	}
	cacheKey := GetPositionAllKey(companyID)
	if err := s.rdb.Del(ctx, cacheKey).Err(); err != nil {
		s.logger.Warn("invalidate position cache failed",
			zap.String("cache_key", cacheKey),
			zap.Error(err),
		)
	}
}

func mapToResponse(post Position) PositionResponse {
	resp := PositionResponse{
		ID:          post.ID.String(),
		Name:        post.Name,
		Description: post.Description,
		CompanyID:   post.CompanyID.String(),
	}
	if post.DepartmentID != uuid.Nil {
		resp.DepartmentID = post.DepartmentID.String()
	}
	if post.Department != nil {
		resp.DepartmentName = post.Department.Name
	}
	if !post.CreatedAt.IsZero() {
		resp.CreatedAt = post.CreatedAt.Format(time.RFC3339)
	}
	if !post.UpdatedAt.IsZero() {
		resp.UpdatedAt = post.UpdatedAt.Format(time.RFC3339)
	}
	return resp
}

func mapToListResponse(posts []Position) []PositionResponse {
	res := make([]PositionResponse, len(posts))
	for i, d := range posts {
		res[i] = mapToResponse(d)
	}
	return res
}
