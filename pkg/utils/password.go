package utils

import (
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// DefaultCost 注册时的 bcrypt 成本
const DefaultCost = 12

func HashPassword(pw string, cost int) (string, error) {
	if cost == 0 {
		cost = DefaultCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(pw), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func CheckPassword(pw, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(pw)) == nil
}

func NewID() string { return uuid.NewString() }
