package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/D6nnisAd/Celeste-Emerald/models"
	"github.com/D6nnisAd/Celeste-Emerald/store"
	"github.com/D6nnisAd/Celeste-Emerald/utils"
)

// UserAccounts is the account-facing slice of the user store.
type UserAccounts interface {
	CreateUser(ctx context.Context, email string, hashedPassword []byte) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	CreateProfile(ctx context.Context, uid int, fullName, username, email string) (*models.Profile, error)
}

// SessionWatcher is notified when the admin session ends so background
// dashboard polling can stop.
type SessionWatcher interface {
	Deactivate()
}

type AuthHandlers struct {
	Users   UserAccounts
	Watcher SessionWatcher
}

func NewAuthHandlers(users UserAccounts, watcher SessionWatcher) *AuthHandlers {
	return &AuthHandlers{Users: users, Watcher: watcher}
}

// Register creates the identity account, then writes the initial profile
// record. The two writes are not transactional: a profile failure after the
// account exists is propagated to the caller without rolling the account back.
func (h *AuthHandlers) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	_, err := h.Users.GetUserByEmail(c.Request.Context(), req.Email)
	if err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "User with this email already exists"})
		return
	}
	if !errors.Is(err, store.ErrUserNotFound) {
		log.Printf("ERROR: Database error during registration email check: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check user existence"})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("ERROR: Failed to hash password for %s: %v", req.Email, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process password"})
		return
	}

	user, err := h.Users.CreateUser(c.Request.Context(), req.Email, hashedPassword)
	if err != nil {
		log.Printf("ERROR: Failed to create user in DB for email %s: %v", req.Email, err)
		if errors.Is(err, store.ErrUserExists) {
			c.JSON(http.StatusConflict, gin.H{"error": "User with this email already exists"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register user"})
		}
		return
	}

	if _, err := h.Users.CreateProfile(c.Request.Context(), user.ID, req.FullName, req.Username, req.Email); err != nil {
		log.Printf("ERROR: Account %d created but profile write failed: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save user profile"})
		return
	}

	log.Printf("User registered successfully: ID=%d, Email=%s", user.ID, user.Email)
	// Identity fields are echoed back so the client can mirror them locally.
	c.JSON(http.StatusCreated, gin.H{
		"message":  "User registered successfully",
		"uid":      user.ID,
		"email":    user.Email,
		"fullName": req.FullName,
		"username": req.Username,
	})
}

// Login handles user authentication and JWT token creation.
func (h *AuthHandlers) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	user, err := h.Users.GetUserByEmail(c.Request.Context(), req.Email)
	if err != nil {
		log.Printf("Login failed for email %s: %v", req.Email, err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	err = bcrypt.CompareHashAndPassword(user.HashedPassword, []byte(req.Password))
	if err != nil {
		log.Printf("Login failed for email %s: password mismatch", req.Email)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	tokenString, err := utils.GenerateJWT(user)
	if err != nil {
		log.Printf("ERROR: Failed to generate JWT for user %d: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate authentication token"})
		return
	}

	c.SetCookie(
		"jwt_token",
		tokenString,
		int(utils.SessionDuration.Seconds()),
		"/",
		"",
		false,
		true,
	)

	log.Printf("User logged in: ID=%d, Email=%s. JWT issued.", user.ID, user.Email)
	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"uid":     user.ID,
		"email":   user.Email,
	})
}

// Logout clears the session cookie and stops dashboard polling. It is best
// effort and always succeeds.
func (h *AuthHandlers) Logout(c *gin.Context) {
	c.SetCookie(
		"jwt_token",
		"",
		-1,
		"/",
		"",
		false,
		true,
	)

	if h.Watcher != nil {
		h.Watcher.Deactivate()
	}

	log.Println("User logged out (JWT cookie cleared).")
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully", "redirect": "index.html"})
}
