package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"course-compass/internal/config"
	"course-compass/internal/domain"
	"course-compass/internal/dto"
	"course-compass/internal/logger"
)

const (
	googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"
	tokenTypeAccess   = "access"
	tokenTypeRefresh  = "refresh"
)

var (
	ErrInvalidJWTToken       = errors.New("invalid jwt token")
	ErrFailedToExchangeToken = errors.New("failed to exchange oauth token")
	ErrFailedToGetUserInfo   = errors.New("failed to get user info from google")
)

// AuthService defines the interface for authentication operations.
type AuthService interface {
	Register(ctx context.Context, req dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error)
	ValidateJWT(ctx context.Context, tokenString string) (*dto.AuthClaims, error)
	GetProfile(ctx context.Context, userID string) (*dto.UserProfileResponse, error)
	GoogleEnabled() bool
	GetGoogleLoginURL(state string) string
	HandleGoogleCallback(ctx context.Context, code string) (*dto.AuthResponse, error)
}

type authServiceImpl struct {
	userRepo     domain.UserRepository
	jwtCfg       config.JWTConfig
	oauth2Config *oauth2.Config
	googleOn     bool
	userInfoURL  string
	bcryptCost   int
}

// NewAuthService creates a new instance of AuthService.
func NewAuthService(userRepo domain.UserRepository, cfg *config.Config) (AuthService, error) {
	if len(cfg.JWT.SecretKey) < 8 {
		return nil, errors.New("jwt.secret_key must be at least 8 characters")
	}
	return &authServiceImpl{
		userRepo: userRepo,
		jwtCfg:   cfg.JWT,
		oauth2Config: &oauth2.Config{
			ClientID:     cfg.GoogleOAuth.ClientID,
			ClientSecret: cfg.GoogleOAuth.ClientSecret,
			RedirectURL:  cfg.GoogleOAuth.RedirectURL,
			Scopes:       []string{"https://www.googleapis.com/auth/userinfo.email", "https://www.googleapis.com/auth/userinfo.profile"},
			Endpoint:     google.Endpoint,
		},
		googleOn:    cfg.GoogleOAuth.Enabled(),
		userInfoURL: googleUserInfoURL,
		bcryptCost:  bcrypt.DefaultCost,
	}, nil
}

func (s *authServiceImpl) Register(ctx context.Context, req dto.RegisterRequest) (*dto.AuthResponse, error) {
	email := normalizeEmail(req.Email)
	existing, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, domain.NewInternalError("failed to look up user", err)
	}
	if existing != nil {
		return nil, domain.NewConflictError("a user with this email already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, domain.NewInternalError("failed to hash password", err)
	}

	user := domain.NewUser(strings.TrimSpace(req.Name), email)
	user.PasswordHash = string(hash)
	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	logger.Get().Info("User registered", zap.String("userID", user.ID))
	return s.authResponse(user)
}

func (s *authServiceImpl) Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.GetUserByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		return nil, domain.NewInternalError("failed to look up user", err)
	}
	// Same message for unknown email and wrong password.
	if user == nil || user.PasswordHash == "" {
		return nil, domain.NewUnauthorizedError("invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, domain.NewUnauthorizedError("invalid email or password")
	}
	return s.authResponse(user)
}

func (s *authServiceImpl) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	claims, err := s.ValidateJWT(ctx, refreshToken)
	if err != nil {
		return nil, domain.NewUnauthorizedError("invalid refresh token")
	}
	if claims.TokenType != tokenTypeRefresh {
		return nil, domain.NewUnauthorizedError("not a refresh token")
	}

	user, err := s.userRepo.GetUserByID(ctx, claims.UserID)
	if err != nil {
		return nil, domain.NewInternalError("failed to look up user", err)
	}
	if user == nil {
		return nil, domain.NewUnauthorizedError("user no longer exists")
	}
	return s.issueTokens(user)
}

func (s *authServiceImpl) ValidateJWT(ctx context.Context, tokenString string) (*dto.AuthClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &dto.AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtCfg.SecretKey), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			logger.Get().Debug("JWT token expired")
		} else {
			logger.Get().Warn("JWT validation failed", zap.Error(err))
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidJWTToken, err)
	}

	if claims, ok := token.Claims.(*dto.AuthClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, ErrInvalidJWTToken
}

func (s *authServiceImpl) GetProfile(ctx context.Context, userID string) (*dto.UserProfileResponse, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, domain.NewInternalError("failed to look up user", err)
	}
	if user == nil {
		return nil, domain.NewNotFoundError("user not found")
	}
	profile := toProfile(user)
	return &profile, nil
}

func (s *authServiceImpl) GoogleEnabled() bool {
	return s.googleOn
}

func (s *authServiceImpl) GetGoogleLoginURL(state string) string {
	return s.oauth2Config.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

// HandleGoogleCallback exchanges the code, then finds the user by Google ID,
// links an existing account with the same email, or creates a new one.
func (s *authServiceImpl) HandleGoogleCallback(ctx context.Context, code string) (*dto.AuthResponse, error) {
	googleToken, err := s.oauth2Config.Exchange(ctx, code)
	if err != nil {
		return nil, domain.NewUnauthorizedError(ErrFailedToExchangeToken.Error()).WithContext("cause", err.Error())
	}

	info, err := s.fetchGoogleUser(ctx, googleToken)
	if err != nil {
		return nil, domain.NewInternalError(ErrFailedToGetUserInfo.Error(), err)
	}

	user, err := s.userRepo.GetUserByGoogleID(ctx, info.ID)
	if err != nil {
		return nil, domain.NewInternalError("failed to look up user", err)
	}
	if user == nil {
		user, err = s.userRepo.GetUserByEmail(ctx, normalizeEmail(info.Email))
		if err != nil {
			return nil, domain.NewInternalError("failed to look up user", err)
		}
		if user != nil {
			user.GoogleID = info.ID
			if err := s.userRepo.UpdateUser(ctx, user); err != nil {
				return nil, err
			}
			logger.Get().Info("Linked Google account", zap.String("userID", user.ID))
		} else {
			name := info.Name
			if name == "" {
				name = info.Email
			}
			user = domain.NewUser(name, normalizeEmail(info.Email))
			user.GoogleID = info.ID
			if err := s.userRepo.CreateUser(ctx, user); err != nil {
				return nil, err
			}
			logger.Get().Info("New user created via Google OAuth", zap.String("userID", user.ID))
		}
	}
	return s.authResponse(user)
}

func (s *authServiceImpl) fetchGoogleUser(ctx context.Context, token *oauth2.Token) (*dto.GoogleUserInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.userInfoURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.oauth2Config.Client(ctx, token).Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo returned status %d", resp.StatusCode)
	}

	var info dto.GoogleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("failed to decode user info: %w", err)
	}
	if info.ID == "" || info.Email == "" {
		return nil, errors.New("google user info is incomplete")
	}
	return &info, nil
}

func (s *authServiceImpl) authResponse(user *domain.User) (*dto.AuthResponse, error) {
	tokens, err := s.issueTokens(user)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{User: toProfile(user), Tokens: *tokens}, nil
}

func (s *authServiceImpl) issueTokens(user *domain.User) (*dto.TokenResponse, error) {
	now := time.Now()
	access, err := s.createJWT(user.ID, now, s.jwtCfg.AccessTTL, tokenTypeAccess)
	if err != nil {
		return nil, domain.NewInternalError("failed to create access token", err)
	}
	refresh, err := s.createJWT(user.ID, now, s.jwtCfg.RefreshTTL, tokenTypeRefresh)
	if err != nil {
		return nil, domain.NewInternalError("failed to create refresh token", err)
	}
	return &dto.TokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "Bearer",
		ExpiresAt:    now.Add(s.jwtCfg.AccessTTL),
	}, nil
}

func (s *authServiceImpl) createJWT(userID string, now time.Time, ttl time.Duration, tokenType string) (string, error) {
	claims := dto.AuthClaims{
		UserID:    userID,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Subject:   userID,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtCfg.SecretKey))
}

func toProfile(u *domain.User) dto.UserProfileResponse {
	return dto.UserProfileResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		HasGoogle: u.GoogleID != "",
		CreatedAt: u.CreatedAt,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
