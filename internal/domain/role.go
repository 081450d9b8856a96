package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Role 封闭枚举：只有 author / reader 两种
type Role uint8

const (
	RoleReader Role = iota + 1
	RoleAuthor
)

func (r Role) String() string {
	switch r {
	case RoleAuthor:
		return "author"
	case RoleReader:
		return "reader"
	}
	return ""
}

func (r Role) Valid() bool { return r == RoleAuthor || r == RoleReader }

func ParseRole(s string) (Role, error) {
	switch s {
	case "author":
		return RoleAuthor, nil
	case "reader":
		return RoleReader, nil
	}
	return 0, fmt.Errorf("unknown role %q", s)
}

func (r Role) MarshalJSON() ([]byte, error) { return json.Marshal(r.String()) }

func (r *Role) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	v, err := ParseRole(s)
	if err != nil {
		return err
	}
	*r = v
	return nil
}

// Value 入库存字符串，方便直接看表
func (r Role) Value() (driver.Value, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("invalid role %d", r)
	}
	return r.String(), nil
}

func (r *Role) Scan(src any) error {
	var s string
	switch v := src.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	default:
		return fmt.Errorf("scan role: unsupported type %T", src)
	}
	p, err := ParseRole(s)
	if err != nil {
		return err
	}
	*r = p
	return nil
}

type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusInactive Status = "INACTIVE"
)

func (s Status) Valid() bool { return s == StatusActive || s == StatusInactive }
