// Package auth はパスワード認証とトークンの発行・検証を提供する。
package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultBcryptCost はbcryptのコストパラメータのデフォルト値。
const DefaultBcryptCost = 10

// Hasher はパスワードの一方向ハッシュ化と照合のインターフェース。
type Hasher interface {
	// Hash は平文パスワードからハッシュを生成する。
	Hash(plaintext string) (string, error)
	// Verify は平文パスワードがハッシュと一致するかを定数時間で照合する。
	Verify(plaintext, digest string) bool
}

// BcryptHasher はbcryptによるHasherの実装。
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher はBcryptHasherを生成する。
// costがbcryptの有効範囲外の場合はDefaultBcryptCostを使用する。
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultBcryptCost
	}
	return &BcryptHasher{cost: cost}
}

// Hash は平文パスワードからbcryptハッシュを生成する。
func (h *BcryptHasher) Hash(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(digest), nil
}

// Verify は平文パスワードがbcryptハッシュと一致するかを照合する。
func (h *BcryptHasher) Verify(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}

// compile-time interface check
var _ Hasher = (*BcryptHasher)(nil)
