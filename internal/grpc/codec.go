package grpc

import (
	"encoding/json"

	"google.golang.org/grpc/encoding"
)

// codecName content-subtype, под которым клиенты вызывают сервис: application/grpc+json
const codecName = "json"

// jsonCodec сериализует сообщения сервиса в JSON вместо protobuf
type jsonCodec struct{}

func (jsonCodec) Marshal(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v interface{}) error {
	return json.Unmarshal(data, v)
}

func (jsonCodec) Name() string {
	return codecName
}

func init() {
	encoding.RegisterCodec(jsonCodec{})
}
