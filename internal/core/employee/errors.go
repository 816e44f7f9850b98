package employee

import "errors"

var (
	// ErrEmployeeAlreadyExists はメールアドレスが既に登録済みの場合に返却されます。
	ErrEmployeeAlreadyExists = errors.New("employee: already exists")
	// ErrEmployeeNotFound は更新対象の社員が存在しない場合に返却されます。
	ErrEmployeeNotFound = errors.New("employee: not found")
	// ErrNoResult は氏名検索で一致する社員がいない場合に返却されます。
	ErrNoResult = errors.New("employee: no result")
	// ErrNonUniqueResult は氏名検索で複数の社員が一致した場合に返却されます。
	ErrNonUniqueResult = errors.New("employee: non-unique result")

	ErrInvalidID        = errors.New("employee: invalid id")
	ErrInvalidQueryKind = errors.New("employee: invalid query kind")
)
