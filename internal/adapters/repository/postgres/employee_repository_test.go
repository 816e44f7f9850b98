package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/ogurasousui/codex-grpc-employee/internal/core/employee"
	pgdb "github.com/ogurasousui/codex-grpc-employee/internal/platform/db/postgres"
	pgxmock "github.com/pashagolub/pgxmock/v4"
)

var employeeColumnNames = []string{"id", "first_name", "last_name", "email"}

type stubRow struct {
	scanFn func(dest ...any) error
}

func (s stubRow) Scan(dest ...any) error {
	return s.scanFn(dest...)
}

func newMockRepo(t *testing.T) (pgxmock.PgxPoolIface, *EmployeeRepository) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	t.Cleanup(mock.Close)

	return mock, NewEmployeeRepository(mock)
}

func TestScanEmployee_Success(t *testing.T) {
	t.Parallel()

	row := stubRow{scanFn: func(dest ...any) error {
		if len(dest) != 4 {
			return errors.New("unexpected dest length")
		}
		*(dest[0].(*int64)) = 7
		*(dest[1].(*string)) = "Vijay"
		*(dest[2].(*string)) = "Singh"
		*(dest[3].(*string)) = "vijay@gmail.com"
		return nil
	}}

	emp, err := scanEmployee(row)
	if err != nil {
		t.Fatalf("scanEmployee returned error: %v", err)
	}

	want := employee.Employee{ID: 7, FirstName: "Vijay", LastName: "Singh", Email: "vijay@gmail.com"}
	if *emp != want {
		t.Fatalf("expected %+v, got %+v", want, emp)
	}
}

func TestFindOptional_NoRows(t *testing.T) {
	t.Parallel()

	emp, found, err := findOptional(stubRow{scanFn: func(dest ...any) error {
		return pgx.ErrNoRows
	}})
	if err != nil || found || emp != nil {
		t.Fatalf("expected absent result, got emp=%+v found=%t err=%v", emp, found, err)
	}
}

func TestTranslatePgError(t *testing.T) {
	t.Parallel()

	uniqueErr := &pgconn.PgError{Code: uniqueViolationCode, ConstraintName: "employees_email_key"}
	if !errors.Is(translatePgError(uniqueErr), employee.ErrEmployeeAlreadyExists) {
		t.Fatalf("expected unique violation to map to ErrEmployeeAlreadyExists")
	}

	other := errors.New("other")
	if translatePgError(other) != other {
		t.Fatalf("unexpected translation for generic error")
	}

	if translatePgError(nil) != nil {
		t.Fatalf("nil must stay nil")
	}
}

func TestEmployeeRepository_Save_Insert(t *testing.T) {
	t.Parallel()

	mock, repo := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO employees (first_name, last_name, email)")).
		WithArgs("Vijay", "Singh", "vijay@gmail.com").
		WillReturnRows(pgxmock.NewRows(employeeColumnNames).AddRow(int64(1), "Vijay", "Singh", "vijay@gmail.com"))

	saved, err := repo.Save(context.Background(), &employee.Employee{FirstName: "Vijay", LastName: "Singh", Email: "vijay@gmail.com"})
	if err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if saved.ID != 1 {
		t.Fatalf("expected generated id 1, got %d", saved.ID)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestEmployeeRepository_Save_Update(t *testing.T) {
	t.Parallel()

	mock, repo := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE employees")).
		WithArgs("Aashu", "Singh", "aashu@gmail.com", int64(3)).
		WillReturnRows(pgxmock.NewRows(employeeColumnNames).AddRow(int64(3), "Aashu", "Singh", "aashu@gmail.com"))

	updated, err := repo.Save(context.Background(), &employee.Employee{ID: 3, FirstName: "Aashu", LastName: "Singh", Email: "aashu@gmail.com"})
	if err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if updated.ID != 3 || updated.FirstName != "Aashu" {
		t.Fatalf("unexpected employee: %+v", updated)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestEmployeeRepository_Save_UpdateMissingRow(t *testing.T) {
	t.Parallel()

	mock, repo := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE employees")).
		WithArgs("Aashu", "Singh", "aashu@gmail.com", int64(99)).
		WillReturnRows(pgxmock.NewRows(employeeColumnNames))

	_, err := repo.Save(context.Background(), &employee.Employee{ID: 99, FirstName: "Aashu", LastName: "Singh", Email: "aashu@gmail.com"})
	if !errors.Is(err, employee.ErrEmployeeNotFound) {
		t.Fatalf("expected ErrEmployeeNotFound, got %v", err)
	}
}

func TestEmployeeRepository_Save_UniqueViolation(t *testing.T) {
	t.Parallel()

	mock, repo := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO employees")).
		WithArgs("Vijay", "Singh", "vijay@gmail.com").
		WillReturnError(&pgconn.PgError{Code: uniqueViolationCode, ConstraintName: "employees_email_key"})

	_, err := repo.Save(context.Background(), &employee.Employee{FirstName: "Vijay", LastName: "Singh", Email: "vijay@gmail.com"})
	if !errors.Is(err, employee.ErrEmployeeAlreadyExists) {
		t.Fatalf("expected ErrEmployeeAlreadyExists, got %v", err)
	}
}

func TestEmployeeRepository_FindAll(t *testing.T) {
	t.Parallel()

	mock, repo := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY id")).
		WillReturnRows(pgxmock.NewRows(employeeColumnNames).
			AddRow(int64(1), "Vijay", "Singh", "vijay@gmail.com").
			AddRow(int64(2), "Aashu", "Singh", "aashu@gmail.com"))

	employees, err := repo.FindAll(context.Background())
	if err != nil {
		t.Fatalf("FindAll returned error: %v", err)
	}
	if len(employees) != 2 || employees[1].Email != "aashu@gmail.com" {
		t.Fatalf("unexpected employees: %+v", employees)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestEmployeeRepository_FindAll_Empty(t *testing.T) {
	t.Parallel()

	mock, repo := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM employees")).
		WillReturnRows(pgxmock.NewRows(employeeColumnNames))

	employees, err := repo.FindAll(context.Background())
	if err != nil {
		t.Fatalf("FindAll returned error: %v", err)
	}
	if employees == nil || len(employees) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", employees)
	}
}

func TestEmployeeRepository_FindByID(t *testing.T) {
	t.Parallel()

	mock, repo := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE id = $1")).
		WithArgs(int64(1)).
		WillReturnRows(pgxmock.NewRows(employeeColumnNames).AddRow(int64(1), "Vijay", "Singh", "vijay@gmail.com"))
	mock.ExpectQuery(regexp.QuoteMeta("WHERE id = $1")).
		WithArgs(int64(2)).
		WillReturnRows(pgxmock.NewRows(employeeColumnNames))

	emp, found, err := repo.FindByID(context.Background(), 1)
	if err != nil || !found || emp.FirstName != "Vijay" {
		t.Fatalf("expected employee 1, got emp=%+v found=%t err=%v", emp, found, err)
	}

	emp, found, err = repo.FindByID(context.Background(), 2)
	if err != nil || found || emp != nil {
		t.Fatalf("expected absent result, got emp=%+v found=%t err=%v", emp, found, err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestEmployeeRepository_FindByEmail_Error(t *testing.T) {
	t.Parallel()

	mock, repo := newMockRepo(t)

	connErr := errors.New("connection refused")
	mock.ExpectQuery(regexp.QuoteMeta("WHERE email = $1")).
		WithArgs("vijay@gmail.com").
		WillReturnError(connErr)

	_, found, err := repo.FindByEmail(context.Background(), "vijay@gmail.com")
	if !errors.Is(err, connErr) || found {
		t.Fatalf("expected store error to propagate, got found=%t err=%v", found, err)
	}
}

func TestEmployeeRepository_DeleteByID_MissingIsNoop(t *testing.T) {
	t.Parallel()

	mock, repo := newMockRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM employees WHERE id = $1")).
		WithArgs(int64(5)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	if err := repo.DeleteByID(context.Background(), 5); err != nil {
		t.Fatalf("DeleteByID returned error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestEmployeeRepository_FindByNameVariants(t *testing.T) {
	t.Parallel()

	type finder func(r *EmployeeRepository) (*employee.Employee, error)

	cases := []struct {
		name     string
		fragment string
		args     []any
		call     finder
	}{
		{
			name:     "positional",
			fragment: "WHERE first_name = $1 AND last_name = $2",
			args:     []any{"Vijay", "Singh"},
			call: func(r *EmployeeRepository) (*employee.Employee, error) {
				return r.FindByName(context.Background(), "Vijay", "Singh")
			},
		},
		{
			name:     "named",
			fragment: "WHERE first_name = @first_name AND last_name = @last_name",
			args:     []any{pgx.NamedArgs{"first_name": "Vijay", "last_name": "Singh"}},
			call: func(r *EmployeeRepository) (*employee.Employee, error) {
				return r.FindByNameNamedArgs(context.Background(), "Vijay", "Singh")
			},
		},
		{
			name:     "native",
			fragment: "(e.first_name, e.last_name) = ($1::text, $2::text)",
			args:     []any{"Vijay", "Singh"},
			call: func(r *EmployeeRepository) (*employee.Employee, error) {
				return r.FindByNameNative(context.Background(), "Vijay", "Singh")
			},
		},
		{
			name:     "native named",
			fragment: "(e.first_name, e.last_name) = (@first_name::text, @last_name::text)",
			args:     []any{pgx.NamedArgs{"first_name": "Vijay", "last_name": "Singh"}},
			call: func(r *EmployeeRepository) (*employee.Employee, error) {
				return r.FindByNameNativeNamedArgs(context.Background(), "Vijay", "Singh")
			},
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			mock, repo := newMockRepo(t)

			mock.ExpectQuery(regexp.QuoteMeta(tc.fragment)).
				WithArgs(tc.args...).
				WillReturnRows(pgxmock.NewRows(employeeColumnNames).AddRow(int64(1), "Vijay", "Singh", "vijay@gmail.com"))
			mock.ExpectQuery(regexp.QuoteMeta(tc.fragment)).
				WithArgs(tc.args...).
				WillReturnRows(pgxmock.NewRows(employeeColumnNames))
			mock.ExpectQuery(regexp.QuoteMeta(tc.fragment)).
				WithArgs(tc.args...).
				WillReturnRows(pgxmock.NewRows(employeeColumnNames).
					AddRow(int64(1), "Vijay", "Singh", "vijay@gmail.com").
					AddRow(int64(2), "Vijay", "Singh", "vijay.singh@gmail.com"))

			emp, err := tc.call(repo)
			if err != nil || emp.ID != 1 {
				t.Fatalf("expected single match, got emp=%+v err=%v", emp, err)
			}

			if _, err := tc.call(repo); !errors.Is(err, employee.ErrNoResult) {
				t.Fatalf("expected ErrNoResult, got %v", err)
			}

			if _, err := tc.call(repo); !errors.Is(err, employee.ErrNonUniqueResult) {
				t.Fatalf("expected ErrNonUniqueResult, got %v", err)
			}

			if err := mock.ExpectationsWereMet(); err != nil {
				t.Fatalf("unmet expectations: %v", err)
			}
		})
	}
}

func TestEmployeeRepository_UsesTransactionFromContext(t *testing.T) {
	t.Parallel()

	mock, repo := newMockRepo(t)

	mock.ExpectBeginTx(pgx.TxOptions{AccessMode: pgx.ReadOnly})
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY id")).
		WillReturnRows(pgxmock.NewRows(employeeColumnNames))
	mock.ExpectCommit()

	tm := pgdb.NewTransactionManager(mock)
	err := tm.WithinReadOnly(context.Background(), func(ctx context.Context) error {
		_, err := repo.FindAll(ctx)
		return err
	})
	if err != nil {
		t.Fatalf("FindAll in transaction returned error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
