package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/ogurasousui/codex-grpc-employee/internal/core/employee"
	pgdb "github.com/ogurasousui/codex-grpc-employee/internal/platform/db/postgres"
)

const (
	uniqueViolationCode = "23505"

	employeeColumns = `id, first_name, last_name, email`
)

const (
	findByNameQuery = `
        SELECT ` + employeeColumns + `
          FROM employees
         WHERE first_name = $1 AND last_name = $2
         LIMIT 2
    `
	findByNameNamedQuery = `
        SELECT ` + employeeColumns + `
          FROM employees
         WHERE first_name = @first_name AND last_name = @last_name
         LIMIT 2
    `
	findByNameNativeQuery = `
        SELECT e.id, e.first_name, e.last_name, e.email
          FROM employees AS e
         WHERE (e.first_name, e.last_name) = ($1::text, $2::text)
         LIMIT 2
    `
	findByNameNativeNamedQuery = `
        SELECT e.id, e.first_name, e.last_name, e.email
          FROM employees AS e
         WHERE (e.first_name, e.last_name) = (@first_name::text, @last_name::text)
         LIMIT 2
    `
)

// EmployeeRepository は PostgreSQL を利用した社員永続化の実装です。
type EmployeeRepository struct {
	pool pgdb.Queryer
}

// NewEmployeeRepository は EmployeeRepository を生成します。
func NewEmployeeRepository(pool pgdb.Queryer) *EmployeeRepository {
	return &EmployeeRepository{pool: pool}
}

// Save は ID が 0 なら新規作成し、それ以外は該当行を上書きします。
func (r *EmployeeRepository) Save(ctx context.Context, e *employee.Employee) (*employee.Employee, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)

	var row pgx.Row
	if e.ID == 0 {
		row = exec.QueryRow(ctx, `
        INSERT INTO employees (first_name, last_name, email)
        VALUES ($1, $2, $3)
        RETURNING `+employeeColumns,
			e.FirstName, e.LastName, e.Email)
	} else {
		row = exec.QueryRow(ctx, `
        UPDATE employees
           SET first_name = $1,
               last_name = $2,
               email = $3
         WHERE id = $4
        RETURNING `+employeeColumns,
			e.FirstName, e.LastName, e.Email, e.ID)
	}

	saved, err := scanEmployee(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, employee.ErrEmployeeNotFound
		}
		return nil, translatePgError(err)
	}
	return saved, nil
}

// FindAll は全社員を ID 順で返します。
func (r *EmployeeRepository) FindAll(ctx context.Context) ([]*employee.Employee, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, `
        SELECT `+employeeColumns+`
          FROM employees
         ORDER BY id
    `)
	if err != nil {
		return nil, translatePgError(err)
	}
	defer rows.Close()

	employees := make([]*employee.Employee, 0)
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, translatePgError(err)
		}
		employees = append(employees, emp)
	}
	if err := rows.Err(); err != nil {
		return nil, translatePgError(err)
	}

	return employees, nil
}

// FindByID は ID で社員を取得します。
func (r *EmployeeRepository) FindByID(ctx context.Context, id int64) (*employee.Employee, bool, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        SELECT `+employeeColumns+`
          FROM employees
         WHERE id = $1
    `, id)
	return findOptional(row)
}

// FindByEmail はメールアドレスで社員を取得します。
func (r *EmployeeRepository) FindByEmail(ctx context.Context, email string) (*employee.Employee, bool, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        SELECT `+employeeColumns+`
          FROM employees
         WHERE email = $1
    `, email)
	return findOptional(row)
}

// DeleteByID は社員を削除します。該当行が無くてもエラーにしません。
func (r *EmployeeRepository) DeleteByID(ctx context.Context, id int64) error {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	if _, err := exec.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id); err != nil {
		return translatePgError(err)
	}
	return nil
}

// FindByName は位置パラメータの構造化クエリで氏名検索します。
func (r *EmployeeRepository) FindByName(ctx context.Context, firstName, lastName string) (*employee.Employee, error) {
	return r.findSingle(ctx, findByNameQuery, firstName, lastName)
}

// FindByNameNamedArgs は名前付きパラメータの構造化クエリで氏名検索します。
func (r *EmployeeRepository) FindByNameNamedArgs(ctx context.Context, firstName, lastName string) (*employee.Employee, error) {
	return r.findSingle(ctx, findByNameNamedQuery, nameArgs(firstName, lastName))
}

// FindByNameNative は PostgreSQL の行値比較を位置パラメータで実行します。
func (r *EmployeeRepository) FindByNameNative(ctx context.Context, firstName, lastName string) (*employee.Employee, error) {
	return r.findSingle(ctx, findByNameNativeQuery, firstName, lastName)
}

// FindByNameNativeNamedArgs は PostgreSQL の行値比較を名前付きパラメータで実行します。
func (r *EmployeeRepository) FindByNameNativeNamedArgs(ctx context.Context, firstName, lastName string) (*employee.Employee, error) {
	return r.findSingle(ctx, findByNameNativeNamedQuery, nameArgs(firstName, lastName))
}

func nameArgs(firstName, lastName string) pgx.NamedArgs {
	return pgx.NamedArgs{
		"first_name": firstName,
		"last_name":  lastName,
	}
}

// findSingle は最大 2 行を読み、件数に応じて ErrNoResult / ErrNonUniqueResult を返します。
func (r *EmployeeRepository) findSingle(ctx context.Context, query string, args ...any) (*employee.Employee, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, query, args...)
	if err != nil {
		return nil, translatePgError(err)
	}
	defer rows.Close()

	var found []*employee.Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, translatePgError(err)
		}
		found = append(found, emp)
	}
	if err := rows.Err(); err != nil {
		return nil, translatePgError(err)
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

func findOptional(row pgx.Row) (*employee.Employee, bool, error) {
	found, err := scanEmployee(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, translatePgError(err)
	}
	return found, true, nil
}

func scanEmployee(row pgx.Row) (*employee.Employee, error) {
	var e employee.Employee
	if err := row.Scan(&e.ID, &e.FirstName, &e.LastName, &e.Email); err != nil {
		return nil, err
	}
	return &e, nil
}

func translatePgError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		return fmt.Errorf("%w: %s", employee.ErrEmployeeAlreadyExists, pgErr.ConstraintName)
	}

	return err
}
