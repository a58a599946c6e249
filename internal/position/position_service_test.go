package position

import (
	"context"
	"database/sql"
	"encoding/json"
	"sync"
	"testing"
	"time"

	positionerrors "go-hrms/internal/position/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakePositionRepo struct {
	mu        sync.Mutex
	positions map[string]*Position
	findCalls int
	findDelay time.Duration
}

func newFakePositionRepo() *fakePositionRepo {
	return &fakePositionRepo{positions: make(map[string]*Position)}
}

func (f *fakePositionRepo) WithTx(tx *sql.Tx) Repository { return f }

func (f *fakePositionRepo) Create(ctx context.Context, post *Position) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.positions[post.ID.String()] = post
	return nil
}

func (f *fakePositionRepo) FindAllByCompany(ctx context.Context, companyID string) ([]Position, error) {
	f.mu.Lock()
	f.findCalls++
	f.mu.Unlock()

	if f.findDelay > 0 {
		time.Sleep(f.findDelay)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	var out []Position
	for _, p := range f.positions {
		if p.CompanyID.String() == companyID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakePositionRepo) FindByIDAndCompany(ctx context.Context, companyID string, id string) (*Position, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.positions[id]
	if !ok || p.CompanyID.String() != companyID {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (f *fakePositionRepo) Update(ctx context.Context, post *Position) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.positions[post.ID.String()] = post
	return nil
}

func (f *fakePositionRepo) Delete(ctx context.Context, companyID string, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.positions, id)
	return nil
}

func TestPositionService_Create(t *testing.T) {
	db, sqlMock, _ := sqlmock.New()
	defer db.Close()

	rdb, redisMock := redismock.NewClientMock()
	repo := newFakePositionRepo()
	svc := NewService(db, repo, rdb)

	companyID := uuid.NewString()
	deptID := uuid.NewString()

	sqlMock.ExpectBegin()
	sqlMock.ExpectCommit()
	redisMock.ExpectDel(GetPositionAllKey(companyID)).SetVal(1)

	resp, err := svc.Create(context.Background(), companyID, CreatePositionRequest{
		Name:         "Backend Engineer",
		DepartmentID: deptID,
	})

	assert.NoError(t, err)
	assert.Equal(t, "Backend Engineer", resp.Name)
	assert.Equal(t, deptID, resp.DepartmentID)
	assert.Len(t, repo.positions, 1)
	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func TestPositionService_Create_InvalidDepartmentID(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	rdb, _ := redismock.NewClientMock()
	svc := NewService(db, newFakePositionRepo(), rdb)

	_, err := svc.Create(context.Background(), uuid.NewString(), CreatePositionRequest{
		Name:         "Backend Engineer",
		DepartmentID: "bukan-uuid",
	})

	assert.ErrorIs(t, err, positionerrors.ErrInvalidDepartmentID)
}

func TestPositionService_GetAll_CacheHit(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	rdb, redisMock := redismock.NewClientMock()
	repo := newFakePositionRepo()
	svc := NewService(db, repo, rdb)

	companyID := uuid.NewString()
	cached := []PositionResponse{{ID: uuid.NewString(), Name: "QA Engineer"}}
	jsonResp, _ := json.Marshal(cached)

	redisMock.ExpectGet(GetPositionAllKey(companyID)).SetVal(string(jsonResp))

	resp, err := svc.GetAll(context.Background(), companyID)

	assert.NoError(t, err)
	assert.Len(t, resp, 1)
	assert.Equal(t, "QA Engineer", resp[0].Name)
	assert.Equal(t, 0, repo.findCalls)
	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func TestPositionService_GetAll_CacheMiss(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	rdb, redisMock := redismock.NewClientMock()
	repo := newFakePositionRepo()
	svc := NewService(db, repo, rdb)

	companyID := uuid.New()
	post := &Position{
		ID:           uuid.New(),
		Name:         "Data Analyst",
		CompanyID:    companyID,
		DepartmentID: uuid.New(),
	}
	repo.positions[post.ID.String()] = post

	redisMock.ExpectGet(GetPositionAllKey(companyID.String())).RedisNil()
	redisMock.Regexp().ExpectSet(GetPositionAllKey(companyID.String()), `.*Data Analyst.*`, 30*time.Minute).SetVal("OK")

	resp, err := svc.GetAll(context.Background(), companyID.String())

	assert.NoError(t, err)
	assert.Len(t, resp, 1)
	assert.Equal(t, "Data Analyst", resp[0].Name)
	assert.Equal(t, 1, repo.findCalls)
	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func TestPositionService_GetAll_SingleflightCollapsesConcurrentMisses(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	// Tanpa redis, semua request lewat singleflight langsung ke repo.
	repo := newFakePositionRepo()
	repo.findDelay = 50 * time.Millisecond
	svc := NewService(db, repo, nil)

	companyID := uuid.New()
	post := &Position{
		ID:           uuid.New(),
		Name:         "DevOps Engineer",
		CompanyID:    companyID,
		DepartmentID: uuid.New(),
	}
	repo.positions[post.ID.String()] = post

	const callers = 5
	var wg sync.WaitGroup
	wg.Add(callers)
	for i := 0; i < callers; i++ {
		go func() {
			defer wg.Done()
			resp, err := svc.GetAll(context.Background(), companyID.String())
			assert.NoError(t, err)
			assert.Len(t, resp, 1)
		}()
	}
	wg.Wait()

	repo.mu.Lock()
	calls := repo.findCalls
	repo.mu.Unlock()
	assert.Less(t, calls, callers)
}

func TestPositionService_GetByID_NotFound(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	svc := NewService(db, newFakePositionRepo(), nil)

	_, err := svc.GetByID(context.Background(), uuid.NewString(), uuid.NewString())
	assert.ErrorIs(t, err, positionerrors.ErrPositionNotFound)
}

func TestPositionService_Update(t *testing.T) {
	db, sqlMock, _ := sqlmock.New()
	defer db.Close()

	rdb, redisMock := redismock.NewClientMock()
	repo := newFakePositionRepo()
	svc := NewService(db, repo, rdb)

	companyID := uuid.New()
	newDeptID := uuid.New()
	post := &Position{
		ID:           uuid.New(),
		Name:         "Junior Engineer",
		CompanyID:    companyID,
		DepartmentID: uuid.New(),
	}
	repo.positions[post.ID.String()] = post

	sqlMock.ExpectBegin()
	sqlMock.ExpectCommit()
	redisMock.ExpectDel(GetPositionAllKey(companyID.String())).SetVal(1)

	resp, err := svc.Update(context.Background(), companyID.String(), post.ID.String(), UpdatePositionRequest{
		Name:         "Senior Engineer",
		DepartmentID: newDeptID.String(),
	})

	assert.NoError(t, err)
	assert.Equal(t, "Senior Engineer", resp.Name)
	assert.Equal(t, newDeptID.String(), resp.DepartmentID)
	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func TestPositionService_Delete(t *testing.T) {
	db, sqlMock, _ := sqlmock.New()
	defer db.Close()

	rdb, redisMock := redismock.NewClientMock()
	repo := newFakePositionRepo()
	svc := NewService(db, repo, rdb)

	companyID := uuid.New()
	post := &Position{ID: uuid.New(), Name: "Intern", CompanyID: companyID, DepartmentID: uuid.New()}
	repo.positions[post.ID.String()] = post

	sqlMock.ExpectBegin()
	sqlMock.ExpectCommit()
	redisMock.ExpectDel(GetPositionAllKey(companyID.String())).SetVal(1)

	err := svc.Delete(context.Background(), companyID.String(), post.ID.String())

	assert.NoError(t, err)
	assert.Empty(t, repo.positions)
	assert.NoError(t, redisMock.ExpectationsWereMet())
}
