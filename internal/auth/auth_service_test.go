package auth_test

import (
	"context"
	"testing"

	"go-hrms/internal/attendance"
	"go-hrms/internal/auth"
	autherrors "go-hrms/internal/auth/errors"
	"go-hrms/internal/domain"
	"go-hrms/internal/employee"
	employeeerrors "go-hrms/internal/employee/errors"

	"database/sql"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fakeAuthRepo struct {
	byEmail   map[string]*auth.User
	byID      map[string]*auth.User
	createErr error
}

func newFakeAuthRepo() *fakeAuthRepo {
	return &fakeAuthRepo{
		byEmail: make(map[string]*auth.User),
		byID:    make(map[string]*auth.User),
	}
}

func (f *fakeAuthRepo) Create(ctx context.Context, user *auth.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	if _, exists := f.byEmail[user.Email]; exists {
		return gorm.ErrDuplicatedKey
	}
	f.byEmail[user.Email] = user
	f.byID[user.ID.String()] = user
	return nil
}

func (f *fakeAuthRepo) GetByEmail(ctx context.Context, email string) (*auth.User, error) {
	user, ok := f.byEmail[email]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (f *fakeAuthRepo) GetByID(ctx context.Context, id uuid.UUID) (*auth.User, error) {
	user, ok := f.byID[id.String()]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

type fakeRBACService struct {
	loadedCompanies []string
}

func (f *fakeRBACService) LoadCompanyPolicy(companyID string) error {
	f.loadedCompanies = append(f.loadedCompanies, companyID)
	return nil
}

func (f *fakeRBACService) Enforce(req domain.EnforceRequest) (bool, error) { return true, nil }
func (f *fakeRBACService) ListRoles(companyID string) ([]domain.RoleResponse, error) {
	return nil, nil
}
func (f *fakeRBACService) GetRole(id string) (*domain.RoleResponse, error) { return nil, nil }
func (f *fakeRBACService) CreateRole(companyID string, req domain.CreateRoleRequest) (domain.RoleResponse, error) {
	return domain.RoleResponse{}, nil
}
func (f *fakeRBACService) UpdateRole(id string, req domain.UpdateRoleRequest) (domain.RoleResponse, error) {
	return domain.RoleResponse{}, nil
}
func (f *fakeRBACService) DeleteRole(id string) error                            { return nil }
func (f *fakeRBACService) ListPermissions() ([]domain.PermissionResponse, error) { return nil, nil }

type fakeEmployeeRepo struct {
	employees map[string]*employee.Employee
}

func newFakeEmployeeRepo() *fakeEmployeeRepo {
	return &fakeEmployeeRepo{employees: make(map[string]*employee.Employee)}
}

func (f *fakeEmployeeRepo) WithTx(tx *sql.Tx) employee.Repository { return f }

func (f *fakeEmployeeRepo) Create(ctx context.Context, empl *employee.Employee) error {
	f.employees[empl.ID.String()] = empl
	return nil
}

func (f *fakeEmployeeRepo) FindAllByCompany(ctx context.Context, companyID string) ([]employee.Employee, error) {
	return nil, nil
}

func (f *fakeEmployeeRepo) FindOptionsByCompany(ctx context.Context, companyID string) ([]employee.Employee, error) {
	return nil, nil
}

func (f *fakeEmployeeRepo) FindByIDAndCompany(ctx context.Context, companyID string, id string) (*employee.Employee, error) {
	empl, ok := f.employees[id]
	if !ok || empl.CompanyID.String() != companyID {
		return nil, gorm.ErrRecordNotFound
	}
	return empl, nil
}

func (f *fakeEmployeeRepo) GetDepartmentIDByPosition(ctx context.Context, companyID, positionID string) (string, error) {
	return "", nil
}

func (f *fakeEmployeeRepo) Update(ctx context.Context, empl *employee.Employee) error { return nil }

func (f *fakeEmployeeRepo) Delete(ctx context.Context, companyID string, id string) error {
	return nil
}

func (f *fakeEmployeeRepo) WorkingHours(ctx context.Context, companyID, employeeID string) (attendance.WorkWindow, error) {
	return attendance.WorkWindow{}, nil
}

func seedUser(t *testing.T, repo *fakeAuthRepo, password string) *auth.User {
	t.Helper()

	pw, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	assert.NoError(t, err)

	employeeID := uuid.New()
	user := &auth.User{
		ID:         uuid.New(),
		EmployeeID: &employeeID,
		CompanyID:  uuid.New(),
		Email:      "admin@example.com",
		Name:       "Admin",
		Password:   string(pw),
		Role:       "EMPLOYEE",
		IsActive:   true,
	}
	repo.byEmail[user.Email] = user
	repo.byID[user.ID.String()] = user
	return user
}

func TestService_Login(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	repo := newFakeAuthRepo()
	rbacSvc := &fakeRBACService{}
	service := auth.NewService(repo, rbacSvc, newFakeEmployeeRepo())
	ctx := context.Background()

	user := seedUser(t, repo, "password123")

	t.Run("Success Login", func(t *testing.T) {
		token, refreshToken, resp, err := service.Login(ctx, user.Email, "password123")

		assert.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.NotEmpty(t, refreshToken)
		assert.Equal(t, user.Email, resp.Email)
		assert.Equal(t, user.CompanyID.String(), resp.CompanyID)
		assert.Contains(t, rbacSvc.loadedCompanies, user.CompanyID.String())
	})

	t.Run("Wrong Password", func(t *testing.T) {
		_, _, _, err := service.Login(ctx, user.Email, "wrongpass")
		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("Unknown Email", func(t *testing.T) {
		_, _, _, err := service.Login(ctx, "nobody@example.com", "password123")
		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("Inactive User", func(t *testing.T) {
		user.IsActive = false
		defer func() { user.IsActive = true }()

		_, _, _, err := service.Login(ctx, user.Email, "password123")
		assert.ErrorIs(t, err, autherrors.ErrUserInactive)
	})
}

func TestService_RefreshToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	repo := newFakeAuthRepo()
	service := auth.NewService(repo, &fakeRBACService{}, newFakeEmployeeRepo())
	ctx := context.Background()

	user := seedUser(t, repo, "password123")

	_, refreshToken, _, err := service.Login(ctx, user.Email, "password123")
	assert.NoError(t, err)

	newAccess, newRefresh, resp, err := service.RefreshToken(ctx, refreshToken)

	assert.NoError(t, err)
	assert.NotEmpty(t, newAccess)
	assert.NotEmpty(t, newRefresh)
	assert.Equal(t, user.ID.String(), resp.ID)

	t.Run("Garbage Token", func(t *testing.T) {
		_, _, _, err := service.RefreshToken(ctx, "not-a-jwt")
		assert.ErrorIs(t, err, autherrors.ErrInvalidRefreshToken)
	})
}

func TestService_Register(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	repo := newFakeAuthRepo()
	employeeRepo := newFakeEmployeeRepo()
	service := auth.NewService(repo, &fakeRBACService{}, employeeRepo)
	ctx := context.Background()

	t.Run("Success Register", func(t *testing.T) {
		cID := uuid.New()
		eID := uuid.New()
		employeeRepo.employees[eID.String()] = &employee.Employee{
			ID:        eID,
			CompanyID: cID,
			FullName:  "John Doe",
		}

		req := auth.RegisterRequest{
			CompanyID:  cID.String(),
			EmployeeID: eID.String(),
			Email:      "user@example.com",
			Name:       "John Doe",
			Password:   "password123",
		}

		resp, err := service.Register(ctx, req)

		assert.NoError(t, err)
		assert.Equal(t, req.Email, resp.Email)
		assert.Equal(t, cID.String(), resp.CompanyID)
		assert.Equal(t, eID.String(), resp.EmployeeID)
	})

	t.Run("Employee Not Found", func(t *testing.T) {
		req := auth.RegisterRequest{
			CompanyID:  uuid.NewString(),
			EmployeeID: uuid.NewString(),
			Email:      "ghost@example.com",
			Password:   "password123",
		}

		_, err := service.Register(ctx, req)
		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
	})

	t.Run("Duplicate Email", func(t *testing.T) {
		cID := uuid.New()
		eID := uuid.New()
		employeeRepo.employees[eID.String()] = &employee.Employee{
			ID:        eID,
			CompanyID: cID,
		}

		req := auth.RegisterRequest{
			CompanyID:  cID.String(),
			EmployeeID: eID.String(),
			Email:      "user@example.com",
			Password:   "password123",
		}

		_, err := service.Register(ctx, req)
		assert.ErrorIs(t, err, autherrors.ErrEmailAlreadyRegistered)
	})
}
