package department

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	departmenterrors "go-hrms/internal/department/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeDepartmentRepo struct {
	departments map[string]*Department
	findCalls   int
}

func newFakeDepartmentRepo() *fakeDepartmentRepo {
	return &fakeDepartmentRepo{departments: make(map[string]*Department)}
}

func (f *fakeDepartmentRepo) WithTx(tx *sql.Tx) Repository { return f }

func (f *fakeDepartmentRepo) Create(ctx context.Context, dept *Department) error {
	f.departments[dept.ID.String()] = dept
	return nil
}

func (f *fakeDepartmentRepo) FindAllByCompany(ctx context.Context, companyID string) ([]Department, error) {
	f.findCalls++
	var out []Department
	for _, d := range f.departments {
		if d.CompanyID.String() == companyID {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (f *fakeDepartmentRepo) FindByIDAndCompany(ctx context.Context, companyID string, id string) (*Department, error) {
	d, ok := f.departments[id]
	if !ok || d.CompanyID.String() != companyID {
		return nil, gorm.ErrRecordNotFound
	}
	return d, nil
}

func (f *fakeDepartmentRepo) Update(ctx context.Context, dept *Department) error {
	f.departments[dept.ID.String()] = dept
	return nil
}

func (f *fakeDepartmentRepo) Delete(ctx context.Context, companyID string, id string) error {
	delete(f.departments, id)
	return nil
}

func TestDepartmentService_Create_InvalidatesCache(t *testing.T) {
	db, sqlMock, _ := sqlmock.New()
	defer db.Close()

	rdb, redisMock := redismock.NewClientMock()
	repo := newFakeDepartmentRepo()
	svc := NewService(db, repo, rdb)

	companyID := uuid.NewString()

	sqlMock.ExpectBegin()
	sqlMock.ExpectCommit()
	redisMock.ExpectDel(departmentAllKey(companyID)).SetVal(1)

	resp, err := svc.Create(context.Background(), companyID, CreateDepartmentRequest{
		Name:        "HR",
		Description: "Human resources",
	})

	assert.NoError(t, err)
	assert.Equal(t, "HR", resp.Name)
	assert.Len(t, repo.departments, 1)
	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func TestDepartmentService_GetAll_CacheHit(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	rdb, redisMock := redismock.NewClientMock()
	repo := newFakeDepartmentRepo()
	svc := NewService(db, repo, rdb)

	companyID := uuid.NewString()
	cached := []DepartmentResponse{
		{ID: uuid.NewString(), Name: "HR"},
		{ID: uuid.NewString(), Name: "IT"},
	}
	jsonResp, _ := json.Marshal(cached)

	redisMock.ExpectGet(departmentAllKey(companyID)).SetVal(string(jsonResp))

	resp, err := svc.GetAll(context.Background(), companyID)

	assert.NoError(t, err)
	assert.Len(t, resp, 2)
	assert.Equal(t, "HR", resp[0].Name)
	// Cache hit: repo tidak pernah disentuh
	assert.Equal(t, 0, repo.findCalls)
	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func TestDepartmentService_GetAll_CacheMiss(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	rdb, redisMock := redismock.NewClientMock()
	repo := newFakeDepartmentRepo()
	svc := NewService(db, repo, rdb)

	companyID := uuid.New()
	dept := &Department{
		ID:        uuid.New(),
		Name:      "Finance",
		CompanyID: companyID,
	}
	repo.departments[dept.ID.String()] = dept

	redisMock.ExpectGet(departmentAllKey(companyID.String())).RedisNil()
	redisMock.Regexp().ExpectSet(departmentAllKey(companyID.String()), `.*Finance.*`, 30*time.Minute).SetVal("OK")

	resp, err := svc.GetAll(context.Background(), companyID.String())

	assert.NoError(t, err)
	assert.Len(t, resp, 1)
	assert.Equal(t, "Finance", resp[0].Name)
	assert.Equal(t, 1, repo.findCalls)
	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func TestDepartmentService_GetByID_NotFound(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	rdb, _ := redismock.NewClientMock()
	svc := NewService(db, newFakeDepartmentRepo(), rdb)

	_, err := svc.GetByID(context.Background(), uuid.NewString(), uuid.NewString())
	assert.ErrorIs(t, err, departmenterrors.ErrDepartmentNotFound)
}

func TestDepartmentService_Update(t *testing.T) {
	db, sqlMock, _ := sqlmock.New()
	defer db.Close()

	rdb, redisMock := redismock.NewClientMock()
	repo := newFakeDepartmentRepo()
	svc := NewService(db, repo, rdb)

	companyID := uuid.New()
	dept := &Department{
		ID:        uuid.New(),
		Name:      "Old HR",
		CompanyID: companyID,
	}
	repo.departments[dept.ID.String()] = dept

	sqlMock.ExpectBegin()
	sqlMock.ExpectCommit()
	redisMock.ExpectDel(departmentAllKey(companyID.String())).SetVal(1)

	resp, err := svc.Update(context.Background(), companyID.String(), dept.ID.String(), UpdateDepartmentRequest{
		Name: "HR Updated",
	})

	assert.NoError(t, err)
	assert.Equal(t, "HR Updated", resp.Name)
	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func TestDepartmentService_Delete(t *testing.T) {
	db, sqlMock, _ := sqlmock.New()
	defer db.Close()

	rdb, redisMock := redismock.NewClientMock()
	repo := newFakeDepartmentRepo()
	svc := NewService(db, repo, rdb)

	companyID := uuid.New()
	dept := &Department{ID: uuid.New(), Name: "HR", CompanyID: companyID}
	repo.departments[dept.ID.String()] = dept

	sqlMock.ExpectBegin()
	sqlMock.ExpectCommit()
	redisMock.ExpectDel(departmentAllKey(companyID.String())).SetVal(1)

	err := svc.Delete(context.Background(), companyID.String(), dept.ID.String())

	assert.NoError(t, err)
	assert.Empty(t, repo.departments)
	assert.NoError(t, redisMock.ExpectationsWereMet())
}
