// Package codec は gRPC のメッセージを JSON で運ぶコーデックを提供します。
//
// protobuf メッセージ (emptypb.Empty など) は protojson、それ以外の構造体は encoding/json で扱います。
// クライアントは grpc.CallContentSubtype(Name) を指定して利用します。
package codec

import (
	"encoding/json"
	"fmt"

	"google.golang.org/grpc/encoding"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
)

// Name はコーデックのコンテンツサブタイプです (application/grpc+json)。
const Name = "json"

var unmarshalOptions = protojson.UnmarshalOptions{DiscardUnknown: true}

// JSON は encoding.Codec の実装です。
type JSON struct{}

func init() {
	encoding.RegisterCodec(JSON{})
}

// Name はコーデック名を返します。
func (JSON) Name() string {
	return Name
}

// Marshal は v を JSON に変換します。
func (JSON) Marshal(v any) ([]byte, error) {
	if m, ok := v.(proto.Message); ok {
		return protojson.Marshal(m)
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("codec: marshal %T: %w", v, err)
	}
	return b, nil
}

// Unmarshal は JSON を v に読み込みます。空のペイロードはゼロ値として扱います。
func (JSON) Unmarshal(data []byte, v any) error {
	if len(data) == 0 {
		return nil
	}
	if m, ok := v.(proto.Message); ok {
		return unmarshalOptions.Unmarshal(data, m)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("codec: unmarshal %T: %w", v, err)
	}
	return nil
}
