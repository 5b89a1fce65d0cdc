package main

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/http"
	"strings"
	"time"

	"kasapi/models"
	"kasapi/store"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var errInvalidCredentials = &apiError{status: http.StatusUnauthorized, message: "Invalid email or password"}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// registerUser validates the signup payload, hashes the password and
// persists the user. The returned user never carries the hash in JSON.
func registerUser(s store.Store, name, email, password string) (*models.User, error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)
	if name == "" {
		return nil, badRequest("name is required")
	}
	if email == "" {
		return nil, badRequest("email is required")
	}
	if len(password) < 6 { // basic password policy
		return nil, badRequest("password too short (min 6)")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &models.User{Name: name, Email: email, PasswordHash: hashed}
	if err := s.CreateUser(user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, badRequest("email already registered")
		}
		return nil, err
	}
	return user, nil
}

// authenticate resolves email+password to a user. The error is identical for
// unknown email and wrong password so existence is not leaked.
func authenticate(s store.Store, email, password string) (*models.User, error) {
	user, err := s.UserByEmail(normalizeEmail(email))
	if err != nil {
		return nil, errInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)) != nil {
		return nil, errInvalidCredentials
	}
	return user, nil
}

func issueAccessToken(userID uint) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"uid": userID,
		"exp": time.Now().Add(24 * time.Hour).Unix(),
	})
	return token.SignedString(jwtSecret)
}

// parseAccessToken returns the embedded user id. Expiry is reported as
// jwt.ErrTokenExpired via the error chain so callers can distinguish it.
func parseAccessToken(tokenString string) (uint, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrInvalidKeyType
		}
		return jwtSecret, nil
	})
	if err != nil {
		return 0, err
	}
	if !token.Valid {
		return 0, jwt.ErrTokenUnverifiable
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, jwt.ErrTokenInvalidClaims
	}
	uid, ok := claims["uid"].(float64)
	if !ok || uid < 1 {
		return 0, jwt.ErrTokenInvalidClaims
	}
	return uint(uid), nil
}

// authMiddleware gates protected routes per the bearer-token contract and
// stores the authenticated user id in the gin context.
func (a *api) authMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "authorization_required"})
			return
		}
		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "invalid_token"})
			return
		}
		uid, err := parseAccessToken(strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			msg := "invalid_token"
			if errors.Is(err, jwt.ErrTokenExpired) {
				msg = "token_expired"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": msg})
			return
		}
		c.Set("userID", uid)
		c.Next()
	}
}

func hashRefreshToken(token string) string {
	h := sha256.Sum256([]byte(token))
	return hex.EncodeToString(h[:])
}

// createRefreshToken generates a random refresh token, stores its hash with expiry and returns the raw token string
func createRefreshToken(s store.Store, userID uint) (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	token := hex.EncodeToString(b)
	rt := models.RefreshToken{UserID: userID, TokenHash: hashRefreshToken(token), ExpiresAt: time.Now().Add(30 * 24 * time.Hour)}
	if err := s.StoreRefreshToken(&rt); err != nil {
		return "", err
	}
	return token, nil
}

func (a *api) loginHandler(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	user, err := authenticate(a.store, req.Email, req.Password)
	if err != nil {
		respondErr(c, err)
		return
	}
	accessToken, err := issueAccessToken(user.ID)
	if err != nil {
		respondErr(c, err)
		return
	}
	refreshToken, err := createRefreshToken(a.store, user.ID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"accessToken": accessToken, "refreshToken": refreshToken, "user": user})
}

// refreshHandler exchanges a refresh token for a new access token and rotates the refresh token
func (a *api) refreshHandler(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refreshToken" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	rt, err := a.store.RefreshTokenByHash(hashRefreshToken(req.RefreshToken))
	if err != nil || rt.Revoked || time.Now().After(rt.ExpiresAt) {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid or expired refresh token"})
		return
	}
	accessToken, err := issueAccessToken(rt.UserID)
	if err != nil {
		respondErr(c, err)
		return
	}
	// rotate: revoke the presented token and issue a fresh one
	if err := a.store.RevokeRefreshToken(rt.ID); err != nil {
		respondErr(c, err)
		return
	}
	refreshToken, err := createRefreshToken(a.store, rt.UserID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"accessToken": accessToken, "refreshToken": refreshToken})
}

// logoutHandler revokes a given refresh token
func (a *api) logoutHandler(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refreshToken" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	rt, err := a.store.RefreshTokenByHash(hashRefreshToken(req.RefreshToken))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "refresh token not found"})
		return
	}
	if err := a.store.RevokeRefreshToken(rt.ID); err != nil {
		respondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
