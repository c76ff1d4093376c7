package middleware

import (
	"errors"
	"net/http"
	"strings"

	"petmatch-be/internal/token"

	"github.com/gin-gonic/gin"
)

const emailKey = "user_email"

// RequireAuth validates the bearer token on the request and stores its
// subject email in the context. The purpose parameter decides which token
// class the endpoint accepts (session or password reset).
func RequireAuth(tokens *token.Service, purpose token.Purpose) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Missing or invalid authorization header"})
			return
		}

		email, err := tokens.Verify(strings.TrimPrefix(header, "Bearer "), purpose)
		if err != nil {
			msg := "Invalid token"
			if errors.Is(err, token.ErrExpiredToken) {
				msg = "Token expired"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": msg})
			return
		}

		c.Set(emailKey, email)
		c.Next()
	}
}

// UserEmail returns the authenticated email stored by RequireAuth
func UserEmail(c *gin.Context) string {
	return c.GetString(emailKey)
}
