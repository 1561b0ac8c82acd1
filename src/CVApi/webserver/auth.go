package webserver

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/campus-voice/campusvoice/src/CVApi/types"
)

// Auth issues sessions for the demo email/password login. The member and
// admin passwords are configured at deploy time; the submitted password
// picks the role. Credentials are never persisted.
type Auth struct {
	jwtSecret  []byte
	memberHash []byte
	adminHash  []byte
}

func NewAuth(secret []byte, memberPassword, adminPassword string) Auth {
	memberHash, err := bcrypt.GenerateFromPassword([]byte(memberPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("auth: hash member password: %v", err)
	}
	adminHash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("auth: hash admin password: %v", err)
	}
	return Auth{jwtSecret: secret, memberHash: memberHash, adminHash: adminHash}
}

func (a Auth) Login(c *gin.Context) {
	var req struct {
		Email       string `json:"email" binding:"required,email,max=255"`
		DisplayName string `json:"displayName" binding:"required,min=1,max=64"`
		Password    string `json:"password" binding:"required,max=128"`
		Group       string `json:"group" binding:"max=64"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}

	var role string
	switch {
	case bcrypt.CompareHashAndPassword(a.adminHash, []byte(req.Password)) == nil:
		role = types.RoleAdmin
	case bcrypt.CompareHashAndPassword(a.memberHash, []byte(req.Password)) == nil:
		role = types.RoleMember
	default:
		log.Printf("auth: failed login for %s from %s", req.Email, c.ClientIP())
		c.JSON(http.StatusUnauthorized, gin.H{"err": "invalid credentials"})
		return
	}

	who := types.Identity{
		ID:          req.Email,
		DisplayName: req.DisplayName,
		Role:        role,
		Group:       req.Group,
	}
	token, err := issueJWT(who, a.jwtSecret)
	if err != nil {
		log.Printf("auth: issue token for %s: %v", req.Email, err)
		c.JSON(http.StatusInternalServerError, gin.H{"err": "failed to create session"})
		return
	}

	log.Printf("auth: %s logged in as %s", req.Email, role)
	c.JSON(http.StatusOK, gin.H{"token": token, "identity": who})
}
