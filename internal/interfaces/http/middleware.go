package http

import (
	"net/http"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"project_karcis/internal/entities"
	"project_karcis/internal/interfaces"
	"project_karcis/internal/usecases"
)

// Context keys set by AuthRequired.
const (
	ctxKeyUser      = "current_user"
	ctxKeyClaims    = "current_claims"
	ctxKeyToken     = "current_token"
	ctxKeyRequestID = "request_id"
)

type Middleware struct {
	signer       *usecases.TokenSigner
	users        interfaces.UserStore
	tokens       interfaces.TokenStore
	log          zerolog.Logger
	rateLimiters map[string]*rate.Limiter
	mu           sync.Mutex
}

func NewMiddleware(signer *usecases.TokenSigner, users interfaces.UserStore,
	tokens interfaces.TokenStore, log zerolog.Logger) *Middleware {
	return &Middleware{
		signer:       signer,
		users:        users,
		tokens:       tokens,
		log:          log,
		rateLimiters: make(map[string]*rate.Limiter),
	}
}

// AuthRequired validates the bearer token, checks server-side revocation,
// reloads the user, and enforces role membership when roles are given. The
// chain is fail-fast; database errors surface as 500.
func (m *Middleware) AuthRequired(roles ...int32) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortError(c, http.StatusUnauthorized, "Authorization header required", CodeUnauthorized)
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			abortError(c, http.StatusUnauthorized, "Invalid authorization header format. Expected 'Bearer <token>'", CodeUnauthorized)
			return
		}
		token := parts[1]

		revoked, err := m.tokens.IsRevoked(c.Request.Context(), token)
		if err != nil {
			m.log.Error().Err(err).Msg("revocation check failed")
			abortError(c, http.StatusInternalServerError, "An internal error occurred", CodeInternal)
			return
		}
		if revoked {
			abortError(c, http.StatusUnauthorized, "Token has been revoked", CodeUnauthorized)
			return
		}

		claims, err := m.signer.Verify(token)
		if err != nil {
			abortError(c, http.StatusUnauthorized, "Invalid token", CodeUnauthorized)
			return
		}

		// Role source of truth is the fresh user row, not the claim
		user, err := m.users.FindBy(c.Request.Context(), interfaces.LookupByID,
			strconv.FormatInt(claims.ID, 10))
		if err != nil {
			m.log.Error().Err(err).Msg("user reload failed")
			abortError(c, http.StatusInternalServerError, "An internal error occurred", CodeInternal)
			return
		}
		if user == nil {
			abortError(c, http.StatusUnauthorized, "User not found or has been deleted", CodeUnauthorized)
			return
		}

		if len(roles) > 0 && !slices.Contains(roles, user.RoleID) {
			abortError(c, http.StatusForbidden, "Insufficient permissions", CodeForbidden)
			return
		}

		c.Set(ctxKeyUser, *user)
		c.Set(ctxKeyClaims, claims)
		c.Set(ctxKeyToken, token)
		c.Next()
	}
}

// CurrentUser returns the user resolved by AuthRequired.
func CurrentUser(c *gin.Context) (entities.User, bool) {
	v, ok := c.Get(ctxKeyUser)
	if !ok {
		return entities.User{}, false
	}
	user, ok := v.(entities.User)
	return user, ok
}

// CurrentClaims returns the verified token claims.
func CurrentClaims(c *gin.Context) (*usecases.Claims, bool) {
	v, ok := c.Get(ctxKeyClaims)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*usecases.Claims)
	return claims, ok
}

// CurrentToken returns the raw bearer token.
func CurrentToken(c *gin.Context) (string, bool) {
	v, ok := c.Get(ctxKeyToken)
	if !ok {
		return "", false
	}
	token, ok := v.(string)
	return token, ok
}

// RateLimitPerUser limits requests per resolved user (must follow AuthRequired)
func (m *Middleware) RateLimitPerUser(r rate.Limit, b int) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			abortError(c, http.StatusUnauthorized, "User identity not found for rate limiting", CodeUnauthorized)
			return
		}
		key := strconv.FormatInt(user.ID, 10)

		m.mu.Lock()
		limiter, exists := m.rateLimiters[key]
		if !exists {
			limiter = rate.NewLimiter(r, b)
			m.rateLimiters[key] = limiter
		}
		m.mu.Unlock()

		if !limiter.Allow() {
			abortError(c, http.StatusTooManyRequests, "Rate limit exceeded", "RATE_LIMITED")
			return
		}

		c.Next()
	}
}

// CORSMiddleware allows Cross-Origin requests
func (m *Middleware) CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, PATCH, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

// SecurityHeaders adds security headers to prevent common attacks
func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("X-Content-Type-Options", "nosniff")
		c.Writer.Header().Set("X-Frame-Options", "DENY")
		c.Writer.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Next()
	}
}

// RequestSizeLimiter limits request body size to prevent DoS
func RequestSizeLimiter(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// RequestID tags every request with an id, echoed in the X-Request-ID header.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(ctxKeyRequestID, id)
		c.Writer.Header().Set("X-Request-ID", id)
		c.Next()
	}
}

// RequestLogger logs one structured line per request.
func RequestLogger(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("duration", time.Since(start)).
			Str("request_id", c.GetString(ctxKeyRequestID)).
			Msg("request")
	}
}
