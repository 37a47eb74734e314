// Package auth authenticates the administrator and issues the JWTs guarding content management.
package auth

import (
	"github.com/dgrijalva/jwt-go"
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"

	"github.com/trezcool/videoteca/core"
)

const (
	SigningMethod = "HS256"
	audience      = "Videoteca"
	RoleAdmin     = "admin"
)

var (
	// errors
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrNoAdminPassword      = errors.New("admin password not configured")
)

// Claims represents the authorization claims transmitted via a JWT.
type Claims struct {
	jwt.StandardClaims
	Username string   `json:"username,omitempty"`
	IsAdmin  bool     `json:"is_admin,omitempty"`
	Roles    []string `json:"roles,omitempty"`
}

// NewAdminClaims returns the claims of the administrator `username`, valid for conf.Server.JWTExpirationDelta.
func NewAdminClaims(username string, conf *core.Config) *Claims {
	now := core.NowFunc()
	return &Claims{
		StandardClaims: jwt.StandardClaims{
			Issuer:    conf.AppName,
			Subject:   username,
			Audience:  audience,
			ExpiresAt: now.Add(conf.Server.JWTExpirationDelta).Unix(),
			IssuedAt:  now.Unix(),
		},
		Username: username,
		IsAdmin:  true,
		Roles:    []string{RoleAdmin},
	}
}

// GenerateToken generates a signed JWT token string representing the Claims.
func GenerateToken(claims *Claims, secretKey string) (string, error) {
	token := jwt.NewWithClaims(jwt.GetSigningMethod(SigningMethod), claims)
	ss, err := token.SignedString([]byte(secretKey))
	if err != nil {
		return "", errors.Wrap(err, "signing token")
	}
	return ss, nil
}

// ParseToken verifies a signed token and returns its claims.
func ParseToken(token, secretKey string) (*Claims, error) {
	claims := new(Claims)
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != SigningMethod {
			return nil, errors.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return []byte(secretKey), nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "parsing token")
	}
	return claims, nil
}

// Authenticate checks the administrator credentials against the configured bcrypt hash.
func Authenticate(username, password string, conf *core.Config) (*Claims, error) {
	if conf.Admin.PasswordHash == "" {
		return nil, ErrNoAdminPassword
	}
	if core.CleanString(username) != conf.Admin.Username {
		_ = bcrypt.CompareHashAndPassword([]byte(conf.Admin.PasswordHash), []byte(password))
		return nil, ErrAuthenticationFailed
	}
	if err := bcrypt.CompareHashAndPassword([]byte(conf.Admin.PasswordHash), []byte(password)); err != nil {
		return nil, ErrAuthenticationFailed
	}
	return NewAdminClaims(conf.Admin.Username, conf), nil
}

// HashPassword returns the bcrypt hash to configure as the admin password hash.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", errors.New("empty password")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", errors.Wrap(err, "hashing password")
	}
	return string(hash), nil
}
