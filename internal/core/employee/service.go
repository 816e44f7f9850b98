package employee

import (
	"context"
	"fmt"
)

// TransactionManager はトランザクション制御の抽象化です。
type TransactionManager interface {
	WithinReadOnly(ctx context.Context, fn func(context.Context) error) error
	WithinReadWrite(ctx context.Context, fn func(context.Context) error) error
}

type noopTransactionManager struct{}

func (noopTransactionManager) WithinReadOnly(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

func (noopTransactionManager) WithinReadWrite(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

// Service は社員に関するユースケースをまとめます。
type Service struct {
	repo Repository
	tx   TransactionManager
}

// UseCase は社員ユースケースの公開インターフェースです。
type UseCase interface {
	SaveEmployee(ctx context.Context, in SaveEmployeeInput) (*Employee, error)
	GetAllEmployees(ctx context.Context) ([]*Employee, error)
	GetEmployeeByID(ctx context.Context, in GetEmployeeInput) (*Employee, bool, error)
	UpdateEmployee(ctx context.Context, in UpdateEmployeeInput) (*Employee, error)
	DeleteEmployee(ctx context.Context, in DeleteEmployeeInput) error
	FindEmployeeByName(ctx context.Context, in FindEmployeeByNameInput) (*Employee, error)
}

// NewService は Service を生成します。tx が nil の場合はトランザクションを張りません。
func NewService(repo Repository, tx TransactionManager) *Service {
	if tx == nil {
		tx = noopTransactionManager{}
	}
	return &Service{repo: repo, tx: tx}
}

// SaveEmployeeInput は社員登録時の入力です。
type SaveEmployeeInput struct {
	FirstName string
	LastName  string
	Email     string
}

// UpdateEmployeeInput は社員更新時の入力です。指定された値で全フィールドを上書きします。
type UpdateEmployeeInput struct {
	ID        int64
	FirstName string
	LastName  string
	Email     string
}

// GetEmployeeInput は社員取得時の入力です。
type GetEmployeeInput struct {
	ID int64
}

// DeleteEmployeeInput は社員削除時の入力です。
type DeleteEmployeeInput struct {
	ID int64
}

// FindEmployeeByNameInput は氏名検索時の入力です。Query が空の場合は QueryPositional を使います。
type FindEmployeeByNameInput struct {
	FirstName string
	LastName  string
	Query     QueryKind
}

// SaveEmployee は新しい社員を登録します。
// 同じメールアドレスの社員が既に存在する場合は ErrEmployeeAlreadyExists を返し、保存は行いません。
func (s *Service) SaveEmployee(ctx context.Context, in SaveEmployeeInput) (*Employee, error) {
	emp := &Employee{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
	}

	var saved *Employee
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		if err := s.ensureEmailNotExists(txCtx, emp.Email); err != nil {
			return err
		}

		result, err := s.repo.Save(txCtx, emp)
		if err != nil {
			return err
		}

		saved = result
		return nil
	}); err != nil {
		return nil, err
	}

	return saved, nil
}

// GetAllEmployees は全社員を返します。0 件の場合も空スライスを返します。
func (s *Service) GetAllEmployees(ctx context.Context) ([]*Employee, error) {
	var employees []*Employee
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		found, err := s.repo.FindAll(txCtx)
		if err != nil {
			return err
		}
		employees = found
		return nil
	}); err != nil {
		return nil, err
	}

	if employees == nil {
		employees = []*Employee{}
	}
	return employees, nil
}

// GetEmployeeByID は社員を取得します。存在しない場合は found=false を返します。
func (s *Service) GetEmployeeByID(ctx context.Context, in GetEmployeeInput) (*Employee, bool, error) {
	var (
		result *Employee
		found  bool
	)
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		emp, ok, err := s.repo.FindByID(txCtx, in.ID)
		if err != nil {
			return err
		}
		result, found = emp, ok
		return nil
	}); err != nil {
		return nil, false, err
	}

	return result, found, nil
}

// UpdateEmployee は既存社員を上書き保存します。メールアドレスの重複チェックは行いません。
func (s *Service) UpdateEmployee(ctx context.Context, in UpdateEmployeeInput) (*Employee, error) {
	if in.ID <= 0 {
		return nil, fmt.Errorf("id: %w", ErrInvalidID)
	}

	emp := &Employee{
		ID:        in.ID,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
	}

	var updated *Employee
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		result, err := s.repo.Save(txCtx, emp)
		if err != nil {
			return err
		}
		updated = result
		return nil
	}); err != nil {
		return nil, err
	}

	return updated, nil
}

// DeleteEmployee は社員を削除します。存在しない ID でもエラーにはなりません。
func (s *Service) DeleteEmployee(ctx context.Context, in DeleteEmployeeInput) error {
	return s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		return s.repo.DeleteByID(txCtx, in.ID)
	})
}

// FindEmployeeByName は指定されたクエリ表現で氏名が一致する社員を 1 件取得します。
func (s *Service) FindEmployeeByName(ctx context.Context, in FindEmployeeByNameInput) (*Employee, error) {
	kind := in.Query
	if kind == "" {
		kind = QueryPositional
	}
	if !kind.valid() {
		return nil, ErrInvalidQueryKind
	}

	first, last := in.FirstName, in.LastName

	var result *Employee
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		var (
			emp *Employee
			err error
		)
		switch kind {
		case QueryNamed:
			emp, err = s.repo.FindByNameNamedArgs(txCtx, first, last)
		case QueryNative:
			emp, err = s.repo.FindByNameNative(txCtx, first, last)
		case QueryNativeNamed:
			emp, err = s.repo.FindByNameNativeNamedArgs(txCtx, first, last)
		default:
			emp, err = s.repo.FindByName(txCtx, first, last)
		}
		if err != nil {
			return err
		}
		result = emp
		return nil
	}); err != nil {
		return nil, err
	}

	return result, nil
}

func (s *Service) ensureEmailNotExists(ctx context.Context, email string) error {
	_, found, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if found {
		return ErrEmployeeAlreadyExists
	}
	return nil
}
