package webserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/campus-voice/campusvoice/src/CVApi/types"
)

const identityKey = "identity"

func issueJWT(who types.Identity, secret []byte) (string, error) {
	claims := jwt.MapClaims{
		"sub":  who.ID,
		"name": who.DisplayName,
		"role": who.Role,
		"grp":  who.Group,
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(24 * time.Hour).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func JWTMiddleware(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if !strings.HasPrefix(h, "Bearer ") {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		tok, err := jwt.Parse(h[7:], func(t *jwt.Token) (interface{}, error) { return secret, nil })
		if err != nil || !tok.Valid {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		claims, ok := tok.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		c.Set(identityKey, types.Identity{
			ID:          strClaim(claims, "sub"),
			DisplayName: strClaim(claims, "name"),
			Role:        strClaim(claims, "role"),
			Group:       strClaim(claims, "grp"),
		})
		c.Next()
	}
}

// AdminMiddleware requires an administrator identity; runs after
// JWTMiddleware.
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !currentIdentity(c).IsAdmin() {
			c.JSON(http.StatusForbidden, gin.H{"err": "admin access required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

func currentIdentity(c *gin.Context) types.Identity {
	v, ok := c.Get(identityKey)
	if !ok {
		return types.Identity{}
	}
	who, _ := v.(types.Identity)
	return who
}

func strClaim(claims jwt.MapClaims, key string) string {
	s, _ := claims[key].(string)
	return s
}
