package middleware

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/vjorihoxha/tiktak-vjori/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// IngressAuth validates a bearer JWT on inbound requests when
// INGRESS_JWT_SECRET is configured. Without the secret the service runs
// open, which is the expected mode behind a trusted gateway.
func IngressAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		secret := os.Getenv("INGRESS_JWT_SECRET")
		if secret == "" {
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		tokenString, found := strings.CutPrefix(authHeader, "Bearer ")
		if !found || tokenString == "" {
			response.Error(c, http.StatusUnauthorized, "Token not found")
			c.Abort()
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method")
			}
			return []byte(secret), nil
		})

		if err != nil || !token.Valid {
			msg := "Invalid token"
			if err != nil && strings.Contains(err.Error(), "expired") {
				msg = "Token expired"
			}
			response.Error(c, http.StatusUnauthorized, msg)
			c.Abort()
			return
		}

		if claims, ok := token.Claims.(jwt.MapClaims); ok {
			if sub, _ := claims["sub"].(string); sub != "" {
				c.Set("caller_id", sub)
			}
		}

		c.Next()
	}
}
