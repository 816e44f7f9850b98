package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/ogurasousui/codex-grpc-employee/internal/core/employee"
	msqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

const employeeColumns = `id, first_name, last_name, email`

const (
	findByNameQuery = `
        SELECT ` + employeeColumns + `
          FROM employees
         WHERE first_name = ? AND last_name = ?
         LIMIT 2`
	findByNameNamedQuery = `
        SELECT ` + employeeColumns + `
          FROM employees
         WHERE first_name = :first_name AND last_name = :last_name
         LIMIT 2`
	findByNameNativeQuery = `
        SELECT e.id, e.first_name, e.last_name, e.email
          FROM employees AS e
         WHERE (e.first_name, e.last_name) = (?1, ?2)
         LIMIT 2`
	findByNameNativeNamedQuery = `
        SELECT e.id, e.first_name, e.last_name, e.email
          FROM employees AS e
         WHERE (e.first_name, e.last_name) = (@first_name, @last_name)
         LIMIT 2`
)

// DBTX は *sql.DB と *sql.Tx の共通インターフェースです。
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// EmployeeRepository は SQLite を利用した社員永続化の実装です。
type EmployeeRepository struct {
	db DBTX
}

// NewEmployeeRepository は EmployeeRepository を生成します。
func NewEmployeeRepository(db DBTX) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

// Save は ID が 0 なら新規作成し、それ以外は該当行を上書きします。
func (r *EmployeeRepository) Save(ctx context.Context, e *employee.Employee) (*employee.Employee, error) {
	var row *sql.Row
	if e.ID == 0 {
		row = r.db.QueryRowContext(ctx, `
        INSERT INTO employees (first_name, last_name, email)
        VALUES (?, ?, ?)
        RETURNING `+employeeColumns,
			e.FirstName, e.LastName, e.Email)
	} else {
		row = r.db.QueryRowContext(ctx, `
        UPDATE employees
           SET first_name = ?, last_name = ?, email = ?
         WHERE id = ?
        RETURNING `+employeeColumns,
			e.FirstName, e.LastName, e.Email, e.ID)
	}

	saved, err := scanEmployee(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, employee.ErrEmployeeNotFound
		}
		return nil, translateSQLiteError(err)
	}
	return saved, nil
}

// FindAll は全社員を ID 順で返します。
func (r *EmployeeRepository) FindAll(ctx context.Context) ([]*employee.Employee, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+employeeColumns+` FROM employees ORDER BY id`)
	if err != nil {
		return nil, translateSQLiteError(err)
	}
	defer rows.Close()

	employees := make([]*employee.Employee, 0)
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, emp)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return employees, nil
}

// FindByID は ID で社員を取得します。
func (r *EmployeeRepository) FindByID(ctx context.Context, id int64) (*employee.Employee, bool, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+employeeColumns+` FROM employees WHERE id = ?`, id)
	return findOptional(row)
}

// FindByEmail はメールアドレスで社員を取得します。
func (r *EmployeeRepository) FindByEmail(ctx context.Context, email string) (*employee.Employee, bool, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+employeeColumns+` FROM employees WHERE email = ?`, email)
	return findOptional(row)
}

// DeleteByID は社員を削除します。該当行が無くてもエラーにしません。
func (r *EmployeeRepository) DeleteByID(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM employees WHERE id = ?`, id); err != nil {
		return translateSQLiteError(err)
	}
	return nil
}

// FindByName は位置パラメータの構造化クエリで氏名検索します。
func (r *EmployeeRepository) FindByName(ctx context.Context, firstName, lastName string) (*employee.Employee, error) {
	return r.findSingle(ctx, findByNameQuery, firstName, lastName)
}

// FindByNameNamedArgs は名前付きパラメータの構造化クエリで氏名検索します。
func (r *EmployeeRepository) FindByNameNamedArgs(ctx context.Context, firstName, lastName string) (*employee.Employee, error) {
	return r.findSingle(ctx, findByNameNamedQuery, sql.Named("first_name", firstName), sql.Named("last_name", lastName))
}

// FindByNameNative は SQLite の行値比較と番号付きパラメータで氏名検索します。
func (r *EmployeeRepository) FindByNameNative(ctx context.Context, firstName, lastName string) (*employee.Employee, error) {
	return r.findSingle(ctx, findByNameNativeQuery, firstName, lastName)
}

// FindByNameNativeNamedArgs は SQLite の行値比較と @ 形式の名前付きパラメータで氏名検索します。
func (r *EmployeeRepository) FindByNameNativeNamedArgs(ctx context.Context, firstName, lastName string) (*employee.Employee, error) {
	return r.findSingle(ctx, findByNameNativeNamedQuery, sql.Named("first_name", firstName), sql.Named("last_name", lastName))
}

func (r *EmployeeRepository) findSingle(ctx context.Context, query string, args ...any) (*employee.Employee, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, translateSQLiteError(err)
	}
	defer rows.Close()

	var found []*employee.Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		found = append(found, emp)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	switch len(found) {
	case 0:
		return nil, employee.ErrNoResult
	case 1:
		return found[0], nil
	default:
		return nil, employee.ErrNonUniqueResult
	}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEmployee(row scanner) (*employee.Employee, error) {
	var e employee.Employee
	if err := row.Scan(&e.ID, &e.FirstName, &e.LastName, &e.Email); err != nil {
		return nil, err
	}
	return &e, nil
}

func findOptional(row *sql.Row) (*employee.Employee, bool, error) {
	found, err := scanEmployee(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, translateSQLiteError(err)
	}
	return found, true, nil
}

func translateSQLiteError(err error) error {
	if err == nil {
		return nil
	}

	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) && sqliteErr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE {
		return fmt.Errorf("%w: %s", employee.ErrEmployeeAlreadyExists, sqliteErr.Error())
	}
	if strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return fmt.Errorf("%w: %s", employee.ErrEmployeeAlreadyExists, err.Error())
	}

	return err
}
