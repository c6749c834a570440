package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// OptionList stores a question's answer options as a JSON text column.
type OptionList []string

func (o OptionList) Value() (driver.Value, error) {
	b, err := json.Marshal([]string(o))
	if err != nil {
		return nil, fmt.Errorf("failed to serialize options: %w", err)
	}
	return string(b), nil
}

func (o *OptionList) Scan(src interface{}) error {
	var data []byte
	switch v := src.(type) {
	case string:
		data = []byte(v)
	case []byte:
		data = v
	case nil:
		*o = nil
		return nil
	default:
		return fmt.Errorf("unsupported options column type %T", src)
	}
	return json.Unmarshal(data, (*[]string)(o))
}
