package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
)

// queryer общий интерфейс *sql.DB и *sql.Tx для чтения
type queryer interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// encodeJSON сериализует значение для TEXT-колонки
func encodeJSON(v interface{}) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to encode column: %w", err)
	}
	return string(data), nil
}

// decodeJSON читает TEXT-колонку; пустая строка и NULL оставляют значение нулевым
func decodeJSON(raw sql.NullString, v interface{}) error {
	if !raw.Valid || raw.String == "" || raw.String == "null" {
		return nil
	}
	if err := json.Unmarshal([]byte(raw.String), v); err != nil {
		return fmt.Errorf("failed to decode column: %w", err)
	}
	return nil
}

// nonNil гарантирует сериализацию пустого списка как []
func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
