package mockapi

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/crossorg/hrconsole/internal/platform"
	"github.com/crossorg/hrconsole/internal/session"
)

// SessionCookie carries the token for cookie-based clients.
const SessionCookie = "hrconsole_token"

const (
	ctxUserKey     = "mockapi.user"
	ctxEnvelopeKey = "mockapi.envelope_code"
)

// Claims identifies the user behind a token.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

func (s *Server) issueToken(u *userRecord) (string, error) {
	now := time.Now()
	claims := &Claims{
		Role: u.UserRole,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(u.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *Server) parseToken(raw string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}

func checkPassword(u *userRecord, password string) bool {
	return bcrypt.CompareHashAndPassword(u.passwordHash, []byte(password)) == nil
}

func tokenFromRequest(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); h != "" {
		parts := strings.SplitN(h, " ", 2)
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
	}
	if cookie, err := c.Cookie(SessionCookie); err == nil {
		return cookie
	}
	return ""
}

// requireLogin resolves the caller or answers with the not-logged-in code.
func (s *Server) requireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := tokenFromRequest(c)
		if raw == "" {
			s.metrics.TokensDenied.WithLabelValues("missing").Inc()
			fail(c, CodeNotLogin, "未登录")
			c.Abort()
			return
		}
		claims, err := s.parseToken(raw)
		if err != nil {
			s.log.Debug("rejected token", "path", c.Request.URL.Path, "error", err.Error())
			reason := "invalid"
			if errors.Is(err, jwt.ErrTokenExpired) {
				reason = "expired"
			}
			s.metrics.TokensDenied.WithLabelValues(reason).Inc()
			fail(c, CodeNotLogin, "未登录")
			c.Abort()
			return
		}
		id, _ := strconv.ParseInt(claims.Subject, 10, 64)

		s.data.mu.Lock()
		u := s.data.userByID(id)
		var caller platform.User
		active := u != nil && !u.disabled
		if active {
			caller = u.User
		}
		s.data.mu.Unlock()
		if !active {
			s.metrics.TokensDenied.WithLabelValues("inactive").Inc()
			fail(c, CodeNotLogin, "未登录")
			c.Abort()
			return
		}
		c.Set(ctxUserKey, caller)
		c.Next()
	}
}

// requireRoles must run after requireLogin.
func requireRoles(roles ...session.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		u := currentUser(c)
		role := session.ParseRole(u.UserRole)
		for _, r := range roles {
			if r == role {
				c.Next()
				return
			}
		}
		fail(c, CodeNoAuth, "无权限")
		c.Abort()
	}
}

// currentUser returns a copy of the authenticated caller.
func currentUser(c *gin.Context) platform.User {
	v, _ := c.Get(ctxUserKey)
	u, _ := v.(platform.User)
	return u
}

func (s *Server) setSessionCookie(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, token, maxAge, "/", "", false, true)
}
