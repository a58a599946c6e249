package rbac

import (
	"errors"
	"strings"
	"sync"

	"go-hrms/internal/domain"
	rbacerrors "go-hrms/internal/rbac/errors"

	"github.com/casbin/casbin/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=rbac_service.go -destination=mock/rbac_service_mock.go -package=mock
type Service interface {
	LoadCompanyPolicy(companyID string) error
	Enforce(req domain.EnforceRequest) (bool, error)

	ListRoles(companyID string) ([]domain.RoleResponse, error)
	GetRole(id string) (*domain.RoleResponse, error)
	CreateRole(companyID string, req domain.CreateRoleRequest) (domain.RoleResponse, error)
	UpdateRole(id string, req domain.UpdateRoleRequest) (domain.RoleResponse, error)
	DeleteRole(id string) error
	ListPermissions() ([]domain.PermissionResponse, error)
}

type service struct {
	repo     Repository
	enforcer *casbin.Enforcer
	logger   *zap.Logger
	mu       sync.Mutex
}

func NewService(repo Repository, enforcer *casbin.Enforcer, logger ...*zap.Logger) Service {
	l := zap.L().Named("rbac.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rbac.service")
	}
	return &service{
		repo:     repo,
		enforcer: enforcer,
		logger:   l,
	}
}

func (s *service) LoadCompanyPolicy(companyID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.loadCompanyPolicyUnlocked(companyID)
}

func (s *service) loadCompanyPolicyUnlocked(companyID string) error {
	s.enforcer.ClearPolicy()

	employeeRoles, err := s.repo.GetEmployeeRoles(companyID)
	if err != nil {
		return err
	}

	for _, er := range employeeRoles {
		_, err := s.enforcer.AddGroupingPolicy(
			er.EmployeeID,
			er.RoleID,
			companyID,
		)
		if err != nil {
			return err
		}
	}

	rolePerms, err := s.repo.GetRolePermissions(companyID)
	if err != nil {
		return err
	}

	for _, rp := range rolePerms {
		_, err := s.enforcer.AddPolicy(
			rp.RoleID,
			companyID,
			rp.Resource,
			rp.Action,
		)
		if err != nil {
			return err
		}
	}

	s.logger.Debug("rbac policy loaded",
		zap.String("company_id", companyID),
		zap.Int("employee_roles", len(employeeRoles)),
		zap.Int("role_permissions", len(rolePerms)),
	)

	return nil
}

// Enforce memuat ulang policy company terkait sebelum setiap cek.
// Enforcer dipakai bersama, jadi load dan cek dilindungi satu mutex.
func (s *service) Enforce(req domain.EnforceRequest) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.loadCompanyPolicyUnlocked(req.CompanyID); err != nil {
		return false, err
	}

	allowed, err := s.enforcer.Enforce(
		req.EmployeeID,
		req.CompanyID,
		req.Resource,
		req.Action,
	)
	if err != nil {
		s.logger.Error("rbac enforce failed",
			zap.String("employee_id", req.EmployeeID),
			zap.String("company_id", req.CompanyID),
			zap.String("resource", req.Resource),
			zap.String("action", req.Action),
			zap.Error(err),
		)
		return false, err
	}

	s.logger.Debug("rbac enforce result",
		zap.String("employee_id", req.EmployeeID),
		zap.String("resource", req.Resource),
		zap.String("action", req.Action),
		zap.Bool("allowed", allowed),
	)

	return allowed, nil
}

func (s *service) ListRoles(companyID string) ([]domain.RoleResponse, error) {
	roles, err := s.repo.ListRoles(companyID)
	if err != nil {
		return nil, err
	}

	resp := make([]domain.RoleResponse, 0, len(roles))
	for _, role := range roles {
		perms, err := s.repo.GetPermissionsByRoleID(role.ID)
		if err != nil {
			return nil, err
		}
		resp = append(resp, mapRoleToResponse(role, perms))
	}
	return resp, nil
}

func (s *service) GetRole(id string) (*domain.RoleResponse, error) {
	role, err := s.repo.GetRoleByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, rbacerrors.ErrRoleNotFound
		}
		return nil, err
	}

	perms, err := s.repo.GetPermissionsByRoleID(role.ID)
	if err != nil {
		return nil, err
	}

	resp := mapRoleToResponse(*role, perms)
	return &resp, nil
}

func (s *service) CreateRole(companyID string, req domain.CreateRoleRequest) (domain.RoleResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.RoleResponse{}, rbacerrors.ErrRoleNameRequired
	}

	if existing, err := s.repo.GetRoleByName(companyID, name); err == nil && existing != nil {
		return domain.RoleResponse{}, rbacerrors.ErrRoleNameAlreadyExists
	}

	role := &RoleRow{
		CompanyID:   companyID,
		Name:        name,
		Description: req.Description,
	}
	if err := s.repo.CreateRole(role); err != nil {
		return domain.RoleResponse{}, err
	}

	if len(req.Permissions) > 0 {
		if err := s.repo.UpdateRolePermissions(role.ID, req.Permissions); err != nil {
			return domain.RoleResponse{}, err
		}
	}

	perms, err := s.repo.GetPermissionsByRoleID(role.ID)
	if err != nil {
		return domain.RoleResponse{}, err
	}

	return mapRoleToResponse(*role, perms), nil
}

func (s *service) UpdateRole(id string, req domain.UpdateRoleRequest) (domain.RoleResponse, error) {
	role, err := s.repo.GetRoleByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RoleResponse{}, rbacerrors.ErrRoleNotFound
		}
		return domain.RoleResponse{}, err
	}

	if name := strings.TrimSpace(req.Name); name != "" {
		role.Name = name
	}
	if req.Description != "" {
		role.Description = req.Description
	}

	if err := s.repo.UpdateRole(role); err != nil {
		return domain.RoleResponse{}, err
	}

	if req.Permissions != nil {
		if err := s.repo.UpdateRolePermissions(role.ID, req.Permissions); err != nil {
			return domain.RoleResponse{}, err
		}
	}

	perms, err := s.repo.GetPermissionsByRoleID(role.ID)
	if err != nil {
		return domain.RoleResponse{}, err
	}

	return mapRoleToResponse(*role, perms), nil
}

func (s *service) DeleteRole(id string) error {
	if _, err := s.repo.GetRoleByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return rbacerrors.ErrRoleNotFound
		}
		return err
	}
	return s.repo.DeleteRole(id)
}

func (s *service) ListPermissions() ([]domain.PermissionResponse, error) {
	perms, err := s.repo.ListPermissions()
	if err != nil {
		return nil, err
	}

	resp := make([]domain.PermissionResponse, 0, len(perms))
	for _, p := range perms {
		resp = append(resp, domain.PermissionResponse{
			ID:       p.ID,
			Resource: p.Resource,
			Action:   p.Action,
			Label:    p.Label,
			Category: p.Category,
		})
	}
	return resp, nil
}

func mapRoleToResponse(role RoleRow, perms []PermissionRow) domain.RoleResponse {
	permPairs := make([]string, 0, len(perms))
	for _, p := range perms {
		permPairs = append(permPairs, p.Resource+":"+p.Action)
	}
	return domain.RoleResponse{
		ID:          role.ID,
		Name:        role.Name,
		Description: role.Description,
		Permissions: permPairs,
	}
}
