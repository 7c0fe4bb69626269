package service

import (
	"errors"
	"strings"
	"time"

	"github.com/handmade-next/internal/config"
	"github.com/handmade-next/internal/constants"

	"github.com/golang-jwt/jwt/v5"
)

// ErrTokenInvalid 令牌无效
var ErrTokenInvalid = errors.New("invalid token")

// JWTClaims 操作人令牌声明
type JWTClaims struct {
	ActorID  string `json:"actor_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// Actor 转换为操作人
func (c *JWTClaims) Actor() Actor {
	return Actor{ID: c.ActorID, Username: c.Username, Role: c.Role}
}

// TokenService 令牌签发与解析（登录由外部身份服务完成）
type TokenService struct {
	cfg config.JWTConfig
}

// NewTokenService 创建令牌服务
func NewTokenService(cfg config.JWTConfig) *TokenService {
	return &TokenService{cfg: cfg}
}

// Issue 为操作人签发令牌
func (s *TokenService) Issue(actor Actor) (string, time.Time, error) {
	role := strings.ToLower(strings.TrimSpace(actor.Role))
	switch role {
	case constants.RoleAdmin, constants.RoleSeller, constants.RoleCustomer:
	default:
		return "", time.Time{}, ErrTokenInvalid
	}
	if strings.TrimSpace(actor.ID) == "" {
		return "", time.Time{}, ErrTokenInvalid
	}
	hours := s.cfg.ExpireHours
	if hours <= 0 {
		hours = 24
	}
	now := time.Now()
	expiresAt := now.Add(time.Duration(hours) * time.Hour)

	claims := JWTClaims{
		ActorID:  strings.TrimSpace(actor.ID),
		Username: strings.TrimSpace(actor.Username),
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.cfg.Issuer,
			Subject:   strings.TrimSpace(actor.ID),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.cfg.SecretKey))
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// Parse 解析并校验令牌
func (s *TokenService) Parse(tokenString string) (*JWTClaims, error) {
	options := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if s.cfg.Issuer != "" {
		options = append(options, jwt.WithIssuer(s.cfg.Issuer))
	}
	parser := jwt.NewParser(options...)
	token, err := parser.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.SecretKey), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*JWTClaims)
	if !ok || !token.Valid || strings.TrimSpace(claims.ActorID) == "" {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
