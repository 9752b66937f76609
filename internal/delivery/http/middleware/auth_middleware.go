package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/auth"

	"github.com/gin-gonic/gin"
)

// TokenVerifier is satisfied by *auth.Verifier.
type TokenVerifier interface {
	Verify(tokenString string) (*auth.Claims, error)
}

// AuthMiddleware rejects requests without a valid bearer token.
func AuthMiddleware(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			response.Error(c, http.StatusUnauthorized, "Authorization header or auth_token cookie required", gin.H{"kind": "unauthorized"})
			c.Abort()
			return
		}
		if !authenticate(c, verifier, tokenString) {
			response.Error(c, http.StatusUnauthorized, "Invalid token", gin.H{"kind": "unauthorized"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// OptionalAuthMiddleware identifies the caller when a token is present and lets anonymous requests through.
// A present but invalid token is still rejected.
func OptionalAuthMiddleware(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString != "" && !authenticate(c, verifier, tokenString) {
			response.Error(c, http.StatusUnauthorized, "Invalid token", gin.H{"kind": "unauthorized"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireRole aborts with 403 unless the caller has one of roles.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(string(domain.KeyUserRole))
		for _, r := range roles {
			if role == r {
				c.Next()
				return
			}
		}
		response.Error(c, http.StatusForbidden, "You do not have access to this resource", gin.H{"kind": "forbidden"})
		c.Abort()
	}
}

// Identity returns the authenticated caller, or nil for anonymous requests.
func Identity(c *gin.Context) *domain.Identity {
	userID := c.GetInt64(string(domain.KeyUserID))
	if userID <= 0 {
		return nil
	}
	return &domain.Identity{
		UserID:    userID,
		CompanyID: c.GetInt64(string(domain.KeyCompanyID)),
		Role:      c.GetString(string(domain.KeyUserRole)),
	}
}

func bearerToken(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); header != "" {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	if cookie, err := c.Cookie("auth_token"); err == nil {
		return cookie
	}
	return ""
}

func authenticate(c *gin.Context, verifier TokenVerifier, tokenString string) bool {
	claims, err := verifier.Verify(tokenString)
	if err != nil {
		return false
	}
	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || userID <= 0 {
		return false
	}

	c.Set(string(domain.KeyUserID), userID)
	c.Set(string(domain.KeyUserRole), claims.Role)
	if claims.Role == domain.RoleCompany && claims.CompanyID > 0 {
		c.Set(string(domain.KeyCompanyID), claims.CompanyID)
	}
	return true
}
