package employee

import "context"

// Repository は社員永続化の抽象です。
//
// FindByID / FindByEmail は該当なしをエラーではなく found=false で表します。
// DeleteByID は存在しない ID に対しても成功します。
type Repository interface {
	Save(ctx context.Context, employee *Employee) (*Employee, error)
	FindAll(ctx context.Context) ([]*Employee, error)
	FindByID(ctx context.Context, id int64) (*Employee, bool, error)
	FindByEmail(ctx context.Context, email string) (*Employee, bool, error)
	DeleteByID(ctx context.Context, id int64) error
	NameFinder
}

// NameFinder は氏名による単一社員検索の 4 つの表現を提供します。
// 一致なしは ErrNoResult、複数一致は ErrNonUniqueResult を返します。
type NameFinder interface {
	FindByName(ctx context.Context, firstName, lastName string) (*Employee, error)
	FindByNameNamedArgs(ctx context.Context, firstName, lastName string) (*Employee, error)
	FindByNameNative(ctx context.Context, firstName, lastName string) (*Employee, error)
	FindByNameNativeNamedArgs(ctx context.Context, firstName, lastName string) (*Employee, error)
}
