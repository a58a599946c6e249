package asset

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	asseterrors "go-hrms/internal/asset/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const (
	StatusAvailable = "AVAILABLE"
	StatusAssigned  = "ASSIGNED"
	StatusRetired   = "RETIRED"
)

//go:generate mockgen -source=asset_service.go -destination=mock/asset_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, companyID string, req CreateAssetRequest) (AssetResponse, error)
	GetAll(ctx context.Context, companyID, employeeID string) ([]AssetResponse, error)
	GetByID(ctx context.Context, companyID, id string) (AssetResponse, error)
	Update(ctx context.Context, companyID, id string, req UpdateAssetRequest) (AssetResponse, error)
	Assign(ctx context.Context, companyID, id string, req AssignAssetRequest) (AssetResponse, error)
	Return(ctx context.Context, companyID, id string) (AssetResponse, error)
	Retire(ctx context.Context, companyID, id string) (AssetResponse, error)
	Delete(ctx context.Context, companyID, id string) error
}

type service struct {
	db   *sql.DB
	repo Repository
}

func NewService(db *sql.DB, repo Repository) Service {
	return &service{db: db, repo: repo}
}

func (s *service) Create(
	ctx context.Context,
	companyID string,
	req CreateAssetRequest,
) (AssetResponse, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return AssetResponse{}, asseterrors.ErrInvalidCompanyID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AssetResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	asset := &Asset{
		ID:        uuid.New(),
		CompanyID: companyUUID,
		AssetCode: strings.TrimSpace(req.AssetCode),
		Name:      req.Name,
		Category:  req.Category,
		Status:    StatusAvailable,
	}

	if err := qtx.Create(ctx, asset); err != nil {
		return AssetResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return AssetResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*asset), nil
}

func (s *service) GetAll(
	ctx context.Context,
	companyID, employeeID string,
) ([]AssetResponse, error) {
	var (
		assets []Asset
		err    error
	)
	if employeeID != "" {
		if _, parseErr := uuid.Parse(employeeID); parseErr != nil {
			return nil, asseterrors.ErrInvalidEmployeeID
		}
		assets, err = s.repo.FindAllByHolder(ctx, companyID, employeeID)
	} else {
		assets, err = s.repo.FindAllByCompany(ctx, companyID)
	}
	if err != nil {
		return nil, err
	}

	return mapToListResponse(assets), nil
}

func (s *service) GetByID(
	ctx context.Context,
	companyID, id string,
) (AssetResponse, error) {
	asset, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return AssetResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*asset), nil
}

func (s *service) Update(
	ctx context.Context,
	companyID, id string,
	req UpdateAssetRequest,
) (AssetResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AssetResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	asset, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return AssetResponse{}, mapRepositoryError(err)
	}

	asset.Name = req.Name
	asset.Category = req.Category

	if err := qtx.Update(ctx, asset); err != nil {
		return AssetResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return AssetResponse{}, err
	}

	return mapToResponse(*asset), nil
}

func (s *service) Assign(
	ctx context.Context,
	companyID, id string,
	req AssignAssetRequest,
) (AssetResponse, error) {
	employeeUUID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return AssetResponse{}, asseterrors.ErrInvalidEmployeeID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AssetResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	asset, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return AssetResponse{}, mapRepositoryError(err)
	}

	if asset.Status == StatusRetired {
		return AssetResponse{}, asseterrors.ErrAssetRetired
	}
	if asset.Status != StatusAvailable {
		return AssetResponse{}, asseterrors.ErrAssetNotAvailable
	}

	belongs, err := qtx.EmployeeBelongsToCompany(ctx, companyID, req.EmployeeID)
	if err != nil {
		return AssetResponse{}, err
	}
	if !belongs {
		return AssetResponse{}, asseterrors.ErrEmployeeNotInCompany
	}

	now := time.Now().UTC()
	asset.Status = StatusAssigned
	asset.HolderID = &employeeUUID
	asset.AssignedAt = &now
	asset.ReturnedAt = nil
	asset.Holder = nil

	if err := qtx.Update(ctx, asset); err != nil {
		return AssetResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return AssetResponse{}, err
	}

	return mapToResponse(*asset), nil
}

func (s *service) Return(
	ctx context.Context,
	companyID, id string,
) (AssetResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AssetResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	asset, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return AssetResponse{}, mapRepositoryError(err)
	}

	if asset.Status != StatusAssigned {
		return AssetResponse{}, asseterrors.ErrAssetNotAssigned
	}

	now := time.Now().UTC()
	asset.Status = StatusAvailable
	asset.HolderID = nil
	asset.Holder = nil
	asset.ReturnedAt = &now

	if err := qtx.Update(ctx, asset); err != nil {
		return AssetResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return AssetResponse{}, err
	}

	return mapToResponse(*asset), nil
}

func (s *service) Retire(
	ctx context.Context,
	companyID, id string,
) (AssetResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AssetResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	asset, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return AssetResponse{}, mapRepositoryError(err)
	}

	// Aset yang masih dipegang harus dikembalikan dulu.
	if asset.Status == StatusAssigned {
		return AssetResponse{}, asseterrors.ErrAssetNotAvailable
	}
	if asset.Status == StatusRetired {
		return AssetResponse{}, asseterrors.ErrAssetRetired
	}

	asset.Status = StatusRetired

	if err := qtx.Update(ctx, asset); err != nil {
		return AssetResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return AssetResponse{}, err
	}

	return mapToResponse(*asset), nil
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

	asset, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return mapRepositoryError(err)
	}
	if asset.Status == StatusAssigned {
		return asseterrors.ErrDeleteAssignedAsset
	}

	if err := qtx.Delete(ctx, companyID, id); err != nil {
		return err
	}

	return tx.Commit()
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return asseterrors.ErrAssetNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_assets_code" {
			return asseterrors.ErrAssetCodeAlreadyExists
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_assets_code") {
		return asseterrors.ErrAssetCodeAlreadyExists
	}

	return err
}

func mapToResponse(asset Asset) AssetResponse {
	resp := AssetResponse{
		ID:        asset.ID.String(),
		CompanyID: asset.CompanyID.String(),
		AssetCode: asset.AssetCode,
		Name:      asset.Name,
		Category:  asset.Category,
		Status:    asset.Status,
	}
	if asset.HolderID != nil {
		v := asset.HolderID.String()
		resp.HolderID = &v
	}
	if asset.Holder != nil {
		resp.HolderName = asset.Holder.FullName
	}
	if asset.AssignedAt != nil {
		v := asset.AssignedAt.Format(time.RFC3339)
		resp.AssignedAt = &v
	}
	if asset.ReturnedAt != nil {
		v := asset.ReturnedAt.Format(time.RFC3339)
		resp.ReturnedAt = &v
	}
	return resp
}

func mapToListResponse(assets []Asset) []AssetResponse {
	resp := make([]AssetResponse, len(assets))
	for i, asset := range assets {
		resp[i] = mapToResponse(asset)
	}
	return resp
}
