package session

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Manager is the authentication gate in front of the inventory data layer.
// The device's biometric check happens outside this process; what the gate
// tracks is whether an unlocked session currently exists, optionally guarded
// by a fallback PIN. The data layer itself has no authentication logic and
// simply trusts this boolean.
type Manager struct {
	jwtSecret     []byte
	pinHash       []byte // bcrypt hash; empty means no PIN fallback configured
	tokenDuration time.Duration

	mu        sync.RWMutex
	loggedIn  bool
	userName  string
	lastLogin time.Time
}

// NewManager creates a session manager. pinHash is a bcrypt hash of the
// fallback unlock PIN and may be empty, in which case Unlock accepts any pin
// (the biometric prompt already vouched for the user).
func NewManager(jwtSecret, pinHash string) *Manager {
	return &Manager{
		jwtSecret:     []byte(jwtSecret),
		pinHash:       []byte(pinHash),
		tokenDuration: 24 * time.Hour,
	}
}

// Unlock opens a session and returns a JWT for subsequent requests.
func (m *Manager) Unlock(pin, userName string) (string, error) {
	if len(m.pinHash) > 0 {
		if err := bcrypt.CompareHashAndPassword(m.pinHash, []byte(pin)); err != nil {
			return "", fmt.Errorf("invalid credentials")
		}
	}

	now := time.Now()

	m.mu.Lock()
	m.loggedIn = true
	m.userName = userName
	m.lastLogin = now
	m.mu.Unlock()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sid":  uuid.New().String(),
		"name": userName,
		"exp":  now.Add(m.tokenDuration).Unix(),
		"iat":  now.Unix(),
	})

	tokenString, err := token.SignedString(m.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenString, nil
}

// ValidateToken parses and validates a session token.
func (m *Manager) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.jwtSecret, nil
	})
	if err != nil {
		log.Printf("Token validation error: %v", err)
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, fmt.Errorf("invalid token")
}

// Authenticated reports whether an unlocked session exists.
func (m *Manager) Authenticated() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.loggedIn
}

// UserName returns the name recorded at unlock time.
func (m *Manager) UserName() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.userName
}

// LastLogin returns the time of the most recent unlock, zero if none.
func (m *Manager) LastLogin() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastLogin
}

// Logout closes the session. Already-issued tokens stop being honored because
// the middleware also checks the Authenticated flag.
func (m *Manager) Logout() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loggedIn = false
	m.userName = ""
}
