package employeesalary

import (
	"context"
	"database/sql"
	"testing"
	"time"

	employeesalaryerrors "go-hrms/internal/employeesalary/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeSalaryRepo struct {
	salaries  map[string]*EmployeeSalary
	createErr error
}

func newFakeSalaryRepo() *fakeSalaryRepo {
	return &fakeSalaryRepo{salaries: make(map[string]*EmployeeSalary)}
}

func (f *fakeSalaryRepo) WithTx(tx *sql.Tx) Repository { return f }

func (f *fakeSalaryRepo) Create(ctx context.Context, salary *EmployeeSalary) error {
	if f.createErr != nil {
		return f.createErr
	}
	for _, s := range f.salaries {
		if s.EmployeeID == salary.EmployeeID && s.EffectiveDate.Equal(salary.EffectiveDate) {
			return employeesalaryerrors.ErrSalaryEffectiveDateAlreadyExists
		}
	}
	clone := *salary
	clone.EmployeeName = "Test Employee"
	f.salaries[salary.ID.String()] = &clone
	return nil
}

func (f *fakeSalaryRepo) FindAllByCompany(ctx context.Context, companyID string) ([]EmployeeSalary, error) {
	out := make([]EmployeeSalary, 0, len(f.salaries))
	for _, s := range f.salaries {
		out = append(out, *s)
	}
	return out, nil
}

func (f *fakeSalaryRepo) FindAllByCompanyAndEmployee(ctx context.Context, companyID, employeeID string) ([]EmployeeSalary, error) {
	var out []EmployeeSalary
	for _, s := range f.salaries {
		if s.EmployeeID.String() == employeeID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeSalaryRepo) FindByIDAndCompany(ctx context.Context, companyID string, id string) (*EmployeeSalary, error) {
	s, ok := f.salaries[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *s
	return &clone, nil
}

func (f *fakeSalaryRepo) FindCurrentByEmployee(ctx context.Context, companyID, employeeID string) (*EmployeeSalary, error) {
	var current *EmployeeSalary
	today := time.Now().UTC()
	for _, s := range f.salaries {
		if s.EmployeeID.String() != employeeID || s.EffectiveDate.After(today) {
			continue
		}
		if current == nil || s.EffectiveDate.After(current.EffectiveDate) {
			current = s
		}
	}
	if current == nil {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *current
	return &clone, nil
}

func (f *fakeSalaryRepo) Delete(ctx context.Context, companyID string, id string) error {
	delete(f.salaries, id)
	return nil
}

func TestCreateSalary_Success(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := newFakeSalaryRepo()
	svc := NewService(db, repo)

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.Create(context.Background(), uuid.NewString(), CreateEmployeeSalaryRequest{
		EmployeeID:    uuid.NewString(),
		BaseSalary:    7500000,
		EffectiveDate: "2025-04-01",
	})

	assert.NoError(t, err)
	assert.Equal(t, 7500000, resp.BaseSalary)
	assert.Equal(t, "2025-04-01", resp.EffectiveDate)
	assert.Equal(t, "Test Employee", resp.EmployeeName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateSalary_DuplicateEffectiveDate(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := newFakeSalaryRepo()
	svc := NewService(db, repo)

	companyID := uuid.NewString()
	employeeID := uuid.NewString()
	req := CreateEmployeeSalaryRequest{
		EmployeeID:    employeeID,
		BaseSalary:    7500000,
		EffectiveDate: "2025-04-01",
	}

	mock.ExpectBegin()
	mock.ExpectCommit()
	_, err := svc.Create(context.Background(), companyID, req)
	assert.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err = svc.Create(context.Background(), companyID, req)
	assert.ErrorIs(t, err, employeesalaryerrors.ErrSalaryEffectiveDateAlreadyExists)
}

func TestCreateSalary_InvalidEmployeeID(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	svc := NewService(db, newFakeSalaryRepo())

	_, err := svc.Create(context.Background(), uuid.NewString(), CreateEmployeeSalaryRequest{
		EmployeeID:    "not-a-uuid",
		BaseSalary:    1000,
		EffectiveDate: "2025-04-01",
	})

	assert.ErrorIs(t, err, employeesalaryerrors.ErrInvalidEmployeeID)
}

func TestCreateSalary_InvalidEffectiveDate(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	svc := NewService(db, newFakeSalaryRepo())

	_, err := svc.Create(context.Background(), uuid.NewString(), CreateEmployeeSalaryRequest{
		EmployeeID:    uuid.NewString(),
		BaseSalary:    1000,
		EffectiveDate: "01-04-2025",
	})

	assert.ErrorIs(t, err, employeesalaryerrors.ErrInvalidEffectiveDate)
}

func TestUpdateSalary_CreatesNewHistoryRow(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := newFakeSalaryRepo()
	svc := NewService(db, repo)

	companyID := uuid.NewString()
	employeeID := uuid.NewString()

	mock.ExpectBegin()
	mock.ExpectCommit()
	created, err := svc.Create(context.Background(), companyID, CreateEmployeeSalaryRequest{
		EmployeeID:    employeeID,
		BaseSalary:    7500000,
		EffectiveDate: "2025-04-01",
	})
	assert.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectCommit()
	updated, err := svc.Update(context.Background(), companyID, created.ID, UpdateEmployeeSalaryRequest{
		EmployeeID:    employeeID,
		BaseSalary:    8000000,
		EffectiveDate: "2025-07-01",
	})
	assert.NoError(t, err)

	// Revisi menjadi baris baru, baris lama tetap ada.
	assert.NotEqual(t, created.ID, updated.ID)
	assert.Equal(t, 8000000, updated.BaseSalary)
	assert.Len(t, repo.salaries, 2)

	old, err := svc.GetByID(context.Background(), companyID, created.ID)
	assert.NoError(t, err)
	assert.Equal(t, 7500000, old.BaseSalary)
}

func TestUpdateSalary_NotFound(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	svc := NewService(db, newFakeSalaryRepo())

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := svc.Update(context.Background(), uuid.NewString(), uuid.NewString(), UpdateEmployeeSalaryRequest{
		EmployeeID:    uuid.NewString(),
		BaseSalary:    1000,
		EffectiveDate: "2025-04-01",
	})

	assert.ErrorIs(t, err, employeesalaryerrors.ErrSalaryNotFound)
}

func TestGetCurrent_PicksLatestEffectiveRow(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := newFakeSalaryRepo()
	svc := NewService(db, repo)

	companyID := uuid.NewString()
	employeeID := uuid.NewString()

	for _, row := range []struct {
		base int
		date string
	}{
		{7000000, "2024-01-01"},
		{7500000, "2025-01-01"},
	} {
		mock.ExpectBegin()
		mock.ExpectCommit()
		_, err := svc.Create(context.Background(), companyID, CreateEmployeeSalaryRequest{
			EmployeeID:    employeeID,
			BaseSalary:    row.base,
			EffectiveDate: row.date,
		})
		assert.NoError(t, err)
	}

	current, err := svc.GetCurrent(context.Background(), companyID, employeeID)

	assert.NoError(t, err)
	assert.Equal(t, 7500000, current.BaseSalary)
	assert.Equal(t, "2025-01-01", current.EffectiveDate)
}

func TestGetCurrent_NoRows(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	svc := NewService(db, newFakeSalaryRepo())

	_, err := svc.GetCurrent(context.Background(), uuid.NewString(), uuid.NewString())

	assert.ErrorIs(t, err, employeesalaryerrors.ErrSalaryNotFound)
}

func TestDeleteSalary_Success(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := newFakeSalaryRepo()
	svc := NewService(db, repo)

	companyID := uuid.NewString()
	mock.ExpectBegin()
	mock.ExpectCommit()
	created, err := svc.Create(context.Background(), companyID, CreateEmployeeSalaryRequest{
		EmployeeID:    uuid.NewString(),
		BaseSalary:    7500000,
		EffectiveDate: "2025-04-01",
	})
	assert.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectCommit()
	err = svc.Delete(context.Background(), companyID, created.ID)

	assert.NoError(t, err)
	assert.Empty(t, repo.salaries)
}
