package identity

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/postbook/postbook/internal/authz"
	"github.com/postbook/postbook/internal/hash"
	"github.com/postbook/postbook/internal/logging"
	"github.com/postbook/postbook/internal/models"
	"github.com/postbook/postbook/internal/repo"
)

// Failure messages returned to callers. Each refresh rejection keeps its own
// reason, they are never collapsed.
const (
	MsgUserExists         = "User with this email address already exists"
	MsgUserNotFound       = "User does not exist"
	MsgInvalidCredentials = "User/password combination is wrong"
	MsgValidation         = "Email and password must not be empty"
	MsgInvalidToken       = "Invalid token"
	MsgTokenNotExpired    = "This token hasn't expired yet"
	MsgRefreshNotFound    = "This refresh token does not exist"
	MsgRefreshExpired     = "This refresh token has expired"
	MsgRefreshInvalidated = "This refresh token has been invalidated"
	MsgRefreshUsed        = "This refresh token has been used"
	MsgRefreshMismatch    = "This refresh token does not match this JWT"
)

// Result reports an authentication attempt: either Success with a token pair
// or a non-empty error message list, never both.
type Result struct {
	Success      bool     `json:"success"`
	Token        string   `json:"token,omitempty"`
	RefreshToken string   `json:"refreshToken,omitempty"`
	Errors       []string `json:"errors,omitempty"`
}

func fail(messages ...string) *Result {
	return &Result{Errors: messages}
}

type Service struct {
	Repo            *repo.GormRepo
	Secret          []byte
	TokenLifetime   time.Duration
	RefreshLifetime time.Duration

	// Now is the clock source; defaults to time.Now.
	Now func() time.Time
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// Register creates a user with the default Poster role and tags.view claim,
// then issues a token pair.
func (s *Service) Register(ctx context.Context, email, password string) (*Result, error) {
	l := logging.FromContext(ctx).With("svc", "identity.register")

	if email == "" || password == "" {
		return fail(MsgValidation), nil
	}

	pwHash, err := hash.HashPassword(password)
	if err != nil {
		l.Error("register_failed", "reason", "cannot hash password", "error", err)
		return nil, err
	}

	user := models.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: pwHash,
	}
	if err := s.Repo.CreateUser(ctx, &user); err != nil {
		if errors.Is(err, repo.ErrUserExists) {
			l.Warn("register_failed", "reason", "duplicate email")
			return fail(MsgUserExists), nil
		}
		return nil, err
	}

	if err := s.Repo.GrantRole(ctx, &user, authz.RolePoster); err != nil {
		return nil, err
	}
	user.Roles = append(user.Roles, models.Role{Name: authz.RolePoster})
	if err := s.Repo.AddClaim(ctx, &user, authz.ClaimTagsView, "true"); err != nil {
		return nil, err
	}

	l.Info("user_registered", "user_id", user.ID)
	return s.IssueTokens(ctx, &user)
}

func (s *Service) Login(ctx context.Context, email, password string) (*Result, error) {
	l := logging.FromContext(ctx).With("svc", "identity.login")

	if email == "" || password == "" {
		return fail(MsgValidation), nil
	}

	user, err := s.Repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrUserNotFound) {
			l.Warn("login_failed", "reason", "unknown user")
			return fail(MsgUserNotFound), nil
		}
		return nil, err
	}

	if !hash.CheckPassword(user.PasswordHash, password) {
		l.Warn("login_failed", "reason", "bad password")
		return fail(MsgInvalidCredentials), nil
	}

	return s.IssueTokens(ctx, user)
}

// IssueTokens signs an access token embedding the user's identity, roles and
// stored claims, and persists a refresh token keyed by the new jti.
func (s *Service) IssueTokens(ctx context.Context, user *models.User) (*Result, error) {
	now := s.now()
	jti := uuid.NewString()

	claims := AccessClaims{
		Email:  user.Email,
		UserID: user.ID.String(),
		Claims: make(map[string]string, len(user.Claims)),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Email,
			ID:        jti,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.TokenLifetime)),
		},
	}
	for _, r := range user.Roles {
		claims.Roles = append(claims.Roles, r.Name)
	}
	for _, c := range user.Claims {
		claims.Claims[c.Name] = c.Value
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.Secret)
	if err != nil {
		return nil, err
	}

	refresh := models.RefreshToken{
		Token:     uuid.NewString(),
		JTI:       jti,
		UserID:    user.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.RefreshLifetime),
	}
	if err := s.Repo.CreateRefreshToken(ctx, &refresh); err != nil {
		return nil, err
	}

	return &Result{
		Success:      true,
		Token:        signed,
		RefreshToken: refresh.Token,
	}, nil
}

// Refresh redeems a refresh token for a fresh pair. The access token must be
// decodable (expired is fine, a bad signature or algorithm is not) and must
// already have expired; the stored refresh token must be live, unused, not
// invalidated and bound to the access token's jti. Consumption is a
// compare-and-set so a replayed token is accepted at most once.
func (s *Service) Refresh(ctx context.Context, accessToken, refreshToken string) (*Result, error) {
	l := logging.FromContext(ctx).With("svc", "identity.refresh")

	claims, err := DecodeExpiredToken(accessToken, s.Secret)
	if err != nil {
		l.Warn("refresh_rejected", "reason", "undecodable access token")
		return fail(MsgInvalidToken), nil
	}

	now := s.now()
	if claims.ExpiresAt != nil && claims.ExpiresAt.Time.After(now) {
		return fail(MsgTokenNotExpired), nil
	}

	stored, err := s.Repo.GetRefreshToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, repo.ErrRefreshNotFound) {
			return fail(MsgRefreshNotFound), nil
		}
		return nil, err
	}

	switch {
	case now.After(stored.ExpiresAt):
		return fail(MsgRefreshExpired), nil
	case stored.Invalidated:
		return fail(MsgRefreshInvalidated), nil
	case stored.Used:
		return fail(MsgRefreshUsed), nil
	case stored.JTI != claims.ID:
		return fail(MsgRefreshMismatch), nil
	}

	if err := s.Repo.ConsumeRefreshToken(ctx, refreshToken); err != nil {
		if errors.Is(err, repo.ErrAlreadyRedeemed) {
			l.Warn("refresh_rejected", "reason", "concurrent redemption")
			return fail(MsgRefreshUsed), nil
		}
		return nil, err
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return fail(MsgInvalidToken), nil
	}
	user, err := s.Repo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrUserNotFound) {
			return fail(MsgInvalidToken), nil
		}
		return nil, err
	}

	l.Info("refresh_redeemed", "user_id", user.ID)
	return s.IssueTokens(ctx, user)
}
