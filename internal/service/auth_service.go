package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/qforge/qforge-backend/internal/config"
	"github.com/qforge/qforge-backend/internal/model"
	"github.com/qforge/qforge-backend/internal/repository"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
)

// Common auth errors.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrSessionInvalidated = errors.New("session invalidated")
)

// Claims extends JWT standard claims with app-specific fields.
type Claims struct {
	jwt.RegisteredClaims
	TeacherID int    `json:"teacher_id"`
	Name      string `json:"name,omitempty"`
}

// AuthService handles teacher authentication, JWT, and session tracking.
type AuthService struct {
	cfg         *config.Config
	rdb         *redis.Client
	teacherRepo *repository.TeacherRepository
}

// NewAuthService creates a new AuthService.
func NewAuthService(cfg *config.Config, rdb *redis.Client, teacherRepo *repository.TeacherRepository) *AuthService {
	return &AuthService{cfg: cfg, rdb: rdb, teacherRepo: teacherRepo}
}

// Login verifies credentials and returns the teacher with a fresh JWT.
func (s *AuthService) Login(ctx context.Context, email, password string) (*model.Teacher, string, error) {
	teacher, err := s.teacherRepo.GetByEmail(ctx, email)
	if err != nil {
		// Deliberately indistinguishable from a wrong password.
		return nil, "", ErrInvalidCredentials
	}

	if err := s.CheckPassword(teacher.PasswordHash, password); err != nil {
		return nil, "", err
	}

	token, err := s.GenerateToken(ctx, teacher.ID, teacher.Name)
	if err != nil {
		return nil, "", err
	}

	return teacher, token, nil
}

// GetTeacher fetches a teacher profile by ID.
func (s *AuthService) GetTeacher(ctx context.Context, teacherID int) (*model.Teacher, error) {
	return s.teacherRepo.GetByID(ctx, teacherID)
}

// HashPassword hashes a password with the configured bcrypt cost.
func (s *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cfg.BcryptCost)
	return string(hash), err
}

// CheckPassword compares a plaintext password against a bcrypt hash.
func (s *AuthService) CheckPassword(hash, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// GenerateToken creates a JWT for a teacher and records the session JTI in
// Redis. A fresh login overwrites any previous session, invalidating the
// older token on its next request.
func (s *AuthService) GenerateToken(ctx context.Context, teacherID int, name string) (string, error) {
	jti := uuid.New().String()
	now := time.Now()

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			Subject:   strconv.Itoa(teacherID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.JWTExpiry)),
		},
		TeacherID: teacherID,
		Name:      name,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	// Session expiry matches the JWT's.
	key := config.CacheKey.TeacherSessionKey(teacherID)
	if err := s.rdb.Set(ctx, key, jti, s.cfg.JWTExpiry).Err(); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}

	return signed, nil
}

// ValidateToken parses and validates a JWT, returning the claims.
func (s *AuthService) ValidateToken(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}

	return claims, nil
}

// ValidateSession checks that the token's JTI matches the active session.
func (s *AuthService) ValidateSession(ctx context.Context, teacherID int, jti string) error {
	key := config.CacheKey.TeacherSessionKey(teacherID)
	stored, err := s.rdb.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrSessionInvalidated
		}
		return fmt.Errorf("check session: %w", err)
	}
	if stored != jti {
		return ErrSessionInvalidated
	}
	return nil
}

// ClearSession removes a teacher's active session (logout).
func (s *AuthService) ClearSession(ctx context.Context, teacherID int) error {
	return s.rdb.Del(ctx, config.CacheKey.TeacherSessionKey(teacherID)).Err()
}
