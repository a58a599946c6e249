package company

import (
	"context"
	"errors"
	"strings"

	companyerrors "go-hrms/internal/company/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var validRegistrationTypes = map[RegistrationType]bool{
	RegistrationTypeNPWP: true,
	RegistrationTypeNIB:  true,
	RegistrationTypeSIUP: true,
	RegistrationTypeEIN:  true,
	RegistrationTypeUEN:  true,
}

//go:generate mockgen -destination=mock/company_service_mock.go -package=mock . Service
type Service interface {
	GetByID(ctx context.Context, id string) (*CompanyResponse, error)
	GetByEmail(ctx context.Context, email string) (*CompanyResponse, error)
	Update(ctx context.Context, id string, req UpdateCompanyRequest) (*CompanyResponse, error)

	UpsertRegistration(ctx context.Context, companyID string, req UpsertCompanyRegistrationRequest) error
	ListRegistrations(ctx context.Context, companyID string) ([]CompanyRegistrationResponse, error)
	DeleteRegistration(ctx context.Context, companyID string, regType RegistrationType) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) GetByID(ctx context.Context, id string) (*CompanyResponse, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, companyerrors.ErrInvalidCompanyID
	}

	comp, err := s.repo.GetByID(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, companyerrors.ErrCompanyNotFound
		}
		return nil, err
	}

	return s.mapToResponse(comp), nil
}

func (s *service) GetByEmail(ctx context.Context, email string) (*CompanyResponse, error) {
	comp, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, companyerrors.ErrCompanyNotFound
		}
		return nil, err
	}

	return s.mapToResponse(comp), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateCompanyRequest) (*CompanyResponse, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, companyerrors.ErrInvalidCompanyID
	}

	comp, err := s.repo.GetByID(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, companyerrors.ErrCompanyNotFound
		}
		return nil, err
	}

	if req.Name != "" {
		comp.Name = req.Name
	}
	if req.RegistrationNumber != "" {
		comp.RegistrationNumber = req.RegistrationNumber
	}
	if req.IsActive != nil {
		comp.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, comp); err != nil {
		return nil, err
	}

	return s.mapToResponse(comp), nil
}

func (s *service) UpsertRegistration(ctx context.Context, companyID string, req UpsertCompanyRegistrationRequest) error {
	id, err := uuid.Parse(companyID)
	if err != nil {
		return companyerrors.ErrInvalidCompanyID
	}

	if !validRegistrationTypes[req.Type] {
		return companyerrors.ErrInvalidRegistrationType
	}

	if strings.TrimSpace(req.Number) == "" {
		return companyerrors.ErrMissingRequiredFields
	}

	reg := &CompanyRegistration{
		CompanyID: id,
		Type:      req.Type,
		Number:    strings.TrimSpace(req.Number),
		IssuedAt:  req.IssuedAt,
	}

	return s.repo.UpsertRegistration(ctx, reg)
}

func (s *service) ListRegistrations(ctx context.Context, companyID string) ([]CompanyRegistrationResponse, error) {
	id, err := uuid.Parse(companyID)
	if err != nil {
		return nil, companyerrors.ErrInvalidCompanyID
	}

	regs, err := s.repo.GetRegistrationsByCompanyID(ctx, id)
	if err != nil {
		return nil, err
	}

	var result []CompanyRegistrationResponse
	for _, r := range regs {
		result = append(result, CompanyRegistrationResponse{
			ID:        r.ID.String(),
			Type:      r.Type,
			Number:    r.Number,
			IssuedAt:  r.IssuedAt,
			CreatedAt: r.CreatedAt,
			UpdatedAt: r.UpdatedAt,
		})
	}

	return result, nil
}

func (s *service) DeleteRegistration(
	ctx context.Context,
	companyID string,
	regType RegistrationType,
) error {
	id, err := uuid.Parse(companyID)
	if err != nil {
		return companyerrors.ErrInvalidCompanyID
	}

	if !validRegistrationTypes[regType] {
		return companyerrors.ErrInvalidRegistrationType
	}

	if err := s.repo.DeleteRegistration(ctx, id, regType); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return companyerrors.ErrRegistrationNotFound
		}
		return err
	}

	return nil
}

func (s *service) mapToResponse(c *Company) *CompanyResponse {
	return &CompanyResponse{
		ID:                 c.ID.String(),
		Name:               c.Name,
		Email:              c.Email,
		RegistrationNumber: c.RegistrationNumber,
		IsActive:           c.IsActive,
	}
}
