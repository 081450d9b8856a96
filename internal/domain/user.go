package domain

import (
	"context"
	"strings"
	"time"
)

type User struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	FirstName    string    `gorm:"size:64;not null" json:"firstName"`
	MiddleName   string    `gorm:"size:64" json:"middleName,omitempty"`
	LastName     string    `gorm:"size:64;not null" json:"lastName"`
	DOB          time.Time `gorm:"column:dob" json:"dob"`
	Email        string    `gorm:"uniqueIndex;size:191;not null" json:"email"`
	PhoneNo      string    `gorm:"size:32;not null" json:"phoneNo"`
	PasswordHash string    `gorm:"size:100;not null" json:"-"`
	Role         Role      `gorm:"type:varchar(16);not null" json:"role"`
	CreatedAt    time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (User) TableName() string { return "users" }

func (u *User) Principal() Principal {
	return Principal{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

func (u *User) Ref() UserRef {
	if u == nil {
		return UserRef{}
	}
	return UserRef{ID: u.ID, FirstName: u.FirstName, LastName: u.LastName}
}

func (u *User) View() UserView {
	return UserView{
		ID:         u.ID,
		FirstName:  u.FirstName,
		MiddleName: u.MiddleName,
		LastName:   u.LastName,
		Email:      u.Email,
		PhoneNo:    u.PhoneNo,
		Role:       u.Role,
		CreatedAt:  u.CreatedAt,
	}
}

// Principal 鉴权后挂到请求上的最小用户投影，显式传给 service
type Principal struct {
	ID        string    `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

func (p Principal) Is(r Role) bool { return p.Role == r }

// UserView /users 列表与详情的投影（不含密码、生日）
type UserView struct {
	ID         string    `json:"id"`
	FirstName  string    `json:"firstName"`
	MiddleName string    `json:"middleName,omitempty"`
	LastName   string    `json:"lastName"`
	Email      string    `json:"email"`
	PhoneNo    string    `json:"phoneNo"`
	Role       Role      `json:"role"`
	CreatedAt  time.Time `json:"createdAt"`
}

type UserRef struct {
	ID        string `json:"id,omitempty"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

func (r UserRef) FullName() string {
	return strings.TrimSpace(r.FirstName + " " + r.LastName)
}

// NormalizeEmail 统一小写 + 去空白，注册、登录、种子数据都走这里
func NormalizeEmail(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

type UserRepository interface {
	Create(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context, offset, limit int) ([]User, int64, error)
	ListByRole(ctx context.Context, role Role) ([]User, error)
}
