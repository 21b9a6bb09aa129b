package jwt

import (
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// Service verifies device tokens minted by the external identity service.
// Staff identity rides in the token claims; this core never issues
// user-facing credentials.
type Service interface {
	JWTAuth() *jwtauth.JWTAuth
	StaffIDFromClaims(claims map[string]interface{}) (string, bool)
}

type JWTService struct {
	secretKey string
	tokenAuth *jwtauth.JWTAuth
}

func NewJWTService(secretKey string) Service {
	return &JWTService{
		secretKey: secretKey,
		tokenAuth: jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

// StaffIDFromClaims extracts the staff identity from verified token claims.
func (j *JWTService) StaffIDFromClaims(claims map[string]interface{}) (string, bool) {
	staffID, ok := claims["staff_id"].(string)
	if !ok || staffID == "" {
		return "", false
	}
	return staffID, true
}
