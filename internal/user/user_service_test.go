package user

import (
	"context"
	"testing"

	usererrors "go-hrms/internal/user/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fakeUserRepo struct {
	users map[string]*User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*User)}
}

func (f *fakeUserRepo) Create(ctx context.Context, u *User) error {
	for _, existing := range f.users {
		if existing.Email == u.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	f.users[u.ID.String()] = u
	return nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, companyID string, id string) (*User, error) {
	u, ok := f.users[id]
	if !ok || u.CompanyID.String() != companyID {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) FindAllByCompany(ctx context.Context, companyID string) ([]User, error) {
	var out []User
	for _, u := range f.users {
		if u.CompanyID.String() == companyID {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) FindAllByCompanyWithRoles(ctx context.Context, companyID string) ([]UserWithRolesRow, error) {
	var out []UserWithRolesRow
	for _, u := range f.users {
		if u.CompanyID.String() == companyID {
			out = append(out, UserWithRolesRow{
				ID:         u.ID.String(),
				EmployeeID: u.EmployeeID.String(),
				Email:      u.Email,
				IsActive:   u.IsActive,
				RolesRaw:   "HR,MANAGER",
				CreatedAt:  u.CreatedAt,
			})
		}
	}
	return out, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, u *User) error {
	f.users[u.ID.String()] = u
	return nil
}

type fakeRoleAssigner struct {
	assigned map[string]string // employeeID -> roleName
}

func (f *fakeRoleAssigner) AssignRoleToEmployee(companyID, employeeID, roleName string) error {
	if f.assigned == nil {
		f.assigned = make(map[string]string)
	}
	f.assigned[employeeID] = roleName
	return nil
}

func TestUserService_Create(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewService(repo)
	ctx := context.Background()

	companyID := uuid.NewString()
	req := CreateUserRequest{
		EmployeeID: uuid.NewString(),
		Email:      "budi@example.com",
		Password:   "password123",
	}

	resp, err := svc.Create(ctx, companyID, req)

	assert.NoError(t, err)
	assert.Equal(t, req.Email, resp.Email)
	assert.True(t, resp.IsActive)

	// Password tersimpan sebagai hash bcrypt
	created := repo.users[resp.ID]
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("password123")))

	_, err = svc.Create(ctx, companyID, req)
	assert.ErrorIs(t, err, usererrors.ErrUserAlreadyExists)
}

func TestUserService_Create_InvalidCompanyID(t *testing.T) {
	svc := NewService(newFakeUserRepo())

	_, err := svc.Create(context.Background(), "bukan-uuid", CreateUserRequest{
		EmployeeID: uuid.NewString(),
		Email:      "x@example.com",
		Password:   "password123",
	})

	assert.ErrorIs(t, err, usererrors.ErrInvalidCompanyID)
}

func TestUserService_ChangePassword(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewService(repo)
	ctx := context.Background()

	companyID := uuid.New()
	hashed, _ := bcrypt.GenerateFromPassword([]byte("oldpass123"), bcrypt.DefaultCost)
	u := &User{
		ID:         uuid.New(),
		CompanyID:  companyID,
		EmployeeID: uuid.New(),
		Email:      "budi@example.com",
		Password:   string(hashed),
		IsActive:   true,
	}
	repo.users[u.ID.String()] = u

	err := svc.ChangePassword(ctx, companyID.String(), u.ID.String(), "salah", "newpass123")
	assert.ErrorIs(t, err, usererrors.ErrWrongPassword)

	err = svc.ChangePassword(ctx, companyID.String(), u.ID.String(), "oldpass123", "newpass123")
	assert.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("newpass123")))
}

func TestUserService_ToggleStatus(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewService(repo)
	ctx := context.Background()

	companyID := uuid.New()
	u := &User{
		ID:         uuid.New(),
		CompanyID:  companyID,
		EmployeeID: uuid.New(),
		Email:      "budi@example.com",
		IsActive:   true,
	}
	repo.users[u.ID.String()] = u

	err := svc.ToggleStatus(ctx, companyID.String(), u.ID.String(), false)
	assert.NoError(t, err)
	assert.False(t, u.IsActive)

	err = svc.ToggleStatus(ctx, companyID.String(), uuid.NewString(), false)
	assert.ErrorIs(t, err, usererrors.ErrUserNotFound)
}

func TestUserService_AssignRole(t *testing.T) {
	repo := newFakeUserRepo()
	assigner := &fakeRoleAssigner{}
	svc := NewService(repo, assigner)
	ctx := context.Background()

	companyID := uuid.New()
	employeeID := uuid.New()
	u := &User{
		ID:         uuid.New(),
		CompanyID:  companyID,
		EmployeeID: employeeID,
		Email:      "budi@example.com",
	}
	repo.users[u.ID.String()] = u

	err := svc.AssignRole(ctx, companyID.String(), u.ID.String(), "  HR ")
	assert.NoError(t, err)
	assert.Equal(t, "HR", assigner.assigned[employeeID.String()])
}

func TestUserService_AssignRole_NotConfigured(t *testing.T) {
	svc := NewService(newFakeUserRepo())

	err := svc.AssignRole(context.Background(), uuid.NewString(), uuid.NewString(), "HR")
	assert.ErrorIs(t, err, usererrors.ErrRoleAssignerNotConfigured)
}

func TestUserService_GetAllWithRoles(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewService(repo)
	ctx := context.Background()

	companyID := uuid.New()
	u := &User{
		ID:         uuid.New(),
		CompanyID:  companyID,
		EmployeeID: uuid.New(),
		Email:      "budi@example.com",
		IsActive:   true,
	}
	repo.users[u.ID.String()] = u

	resp, err := svc.GetAllWithRoles(ctx, companyID.String())

	assert.NoError(t, err)
	assert.Len(t, resp, 1)
	assert.Equal(t, []string{"HR", "MANAGER"}, resp[0].Roles)
}
