package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"course-compass/internal/domain"
)

// StringSlice stores a string list as a JSON array in a CLOB column.
type StringSlice []string

// Value implements the driver.Valuer interface
func (s StringSlice) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	data, err := json.Marshal([]string(s))
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements the sql.Scanner interface
func (s *StringSlice) Scan(value interface{}) error {
	data, err := jsonBytes(value)
	if err != nil {
		return fmt.Errorf("StringSlice Scan: %w", err)
	}
	if data == nil {
		*s = StringSlice{}
		return nil
	}
	return json.Unmarshal(data, (*[]string)(s))
}

// MilestoneList stores milestones as a JSON array in a CLOB column.
type MilestoneList []domain.Milestone

// Value implements the driver.Valuer interface
func (m MilestoneList) Value() (driver.Value, error) {
	if m == nil {
		return "[]", nil
	}
	data, err := json.Marshal([]domain.Milestone(m))
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements the sql.Scanner interface
func (m *MilestoneList) Scan(value interface{}) error {
	data, err := jsonBytes(value)
	if err != nil {
		return fmt.Errorf("MilestoneList Scan: %w", err)
	}
	if data == nil {
		*m = MilestoneList{}
		return nil
	}
	return json.Unmarshal(data, (*[]domain.Milestone)(m))
}

// jsonBytes returns nil for NULL, empty and "null" column values.
func jsonBytes(value interface{}) ([]byte, error) {
	var data []byte
	switch v := value.(type) {
	case nil:
		return nil, nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return nil, fmt.Errorf("unsupported type %T", value)
	}
	if len(data) == 0 || string(data) == "null" {
		return nil, nil
	}
	return data, nil
}
