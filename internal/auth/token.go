package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/hitoshi/notewise/internal/model"
)

// signingMethod は受理する唯一の署名アルゴリズム。
// 発行・検証の双方で固定し、アルゴリズム置換攻撃を防ぐ。
var signingMethod = jwt.SigningMethodHS256

// Claims はトークンに埋め込むJWTクレーム。
// subjectにはユーザーのメールアドレスを設定する。
type Claims struct {
	jwt.RegisteredClaims
	User model.Claim `json:"user"`
}

// TokenService はトークンの発行と検証を提供する。
// 秘密鍵とTTLは構築時に渡され、以降は不変として扱う。
// サーバー側に発行済みトークンの状態は一切保持しない。
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService はTokenServiceを生成する。
func NewTokenService(secret []byte, ttl time.Duration) *TokenService {
	return &TokenService{
		secret: secret,
		ttl:    ttl,
	}
}

// Issue は認証済みユーザーのクレームに対して署名付きトークンを発行する。
// issued-atは現在時刻、expiryは現在時刻+TTLとなる。
func (s *TokenService) Issue(claim model.Claim) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(signingMethod, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   claim.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
		User: claim,
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// Verify はトークン文字列の署名・アルゴリズム・有効期限を検証し、
// 埋め込まれたクレームを復元する。
// 署名不正・アルゴリズム不一致・期限切れ・形式不正のいずれの場合も、
// 原因を区別しない同一のAuthenticationErrorを返す。
func (s *TokenService) Verify(tokenString string) (model.Claim, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, s.keyFunc,
		jwt.WithValidMethods([]string{signingMethod.Alg()}),
	)
	if err != nil {
		return model.Claim{}, model.NewInvalidTokenError()
	}
	if !token.Valid {
		return model.Claim{}, model.NewInvalidTokenError()
	}

	return claims.User, nil
}

// keyFunc は検証鍵を返す。署名アルゴリズムがHS256以外のトークンは拒否する。
func (s *TokenService) keyFunc(token *jwt.Token) (any, error) {
	if token.Method.Alg() != signingMethod.Alg() {
		return nil, fmt.Errorf("unexpected signing method: %s", token.Method.Alg())
	}
	return s.secret, nil
}
