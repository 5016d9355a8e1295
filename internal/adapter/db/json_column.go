package db

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// jsonColumn stores V in a MySQL JSON column.
type jsonColumn[T any] struct {
	V T
}

func (c jsonColumn[T]) Value() (driver.Value, error) {
	data, err := json.Marshal(c.V)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func (c *jsonColumn[T]) Scan(src any) error {
	var data []byte
	switch value := src.(type) {
	case nil:
		var zero T
		c.V = zero
		return nil
	case []byte:
		data = value
	case string:
		data = []byte(value)
	default:
		return fmt.Errorf("json column: unsupported source type %T", src)
	}
	return json.Unmarshal(data, &c.V)
}
