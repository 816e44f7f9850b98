package employee

// Employee は社員エンティティです。ID はストアが採番し、0 は未保存を表します。
type Employee struct {
	ID        int64
	FirstName string
	LastName  string
	Email     string
}

// QueryKind は氏名検索クエリの表現方法を表します。
type QueryKind string

const (
	// QueryPositional は位置パラメータを用いた構造化クエリです。
	QueryPositional QueryKind = "positional"
	// QueryNamed は名前付きパラメータを用いた構造化クエリです。
	QueryNamed QueryKind = "named"
	// QueryNative は方言固有の SQL を位置パラメータで実行します。
	QueryNative QueryKind = "native"
	// QueryNativeNamed は方言固有の SQL を名前付きパラメータで実行します。
	QueryNativeNamed QueryKind = "native_named"
)

func (k QueryKind) valid() bool {
	switch k {
	case QueryPositional, QueryNamed, QueryNative, QueryNativeNamed:
		return true
	default:
		return false
	}
}
