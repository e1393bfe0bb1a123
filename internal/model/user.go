// Package model はドメインモデルを定義する。
package model

import "time"

// User はサービス利用ユーザーを表す。
// PasswordHashはbcryptハッシュであり、APIレスポンスには決して含めない。
type User struct {
	ID           string
	Name         string
	UserName     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Claim はトークンに埋め込まれるユーザーの識別情報を表す。
// Userレコードからトークン発行時に導出され、独立した永続化は持たない。
type Claim struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ToClaim はUserレコードからトークン用のClaimを導出する。
func (u *User) ToClaim() Claim {
	return Claim{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
	}
}
