// Package auth implements credential verification and token issuance. It
// orchestrates the user store, the password hasher, and the token codec, and
// collapses their precise failures into the generic categories clients are
// allowed to see.
package auth

import (
	"context"
	stderrors "errors"

	apperrors "github.com/skillsenselab/authd/errors"
	"github.com/skillsenselab/authd/logger"
	"github.com/skillsenselab/authd/observability"
	"github.com/skillsenselab/authd/password"
	"github.com/skillsenselab/authd/token"
	"github.com/skillsenselab/authd/user"
)

const tracerName = "github.com/skillsenselab/authd/auth"

// SignUpInput carries the fields needed to register an account.
type SignUpInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// Profile is the public view of an account returned by SignUp. Sign-up does
// not authenticate, so no tokens are issued here.
type Profile struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Username  string `json:"username"`
}

// TokenPair is an access/refresh token pair bound to one subject.
type TokenPair struct {
	AccessToken  string `json:"token"`
	RefreshToken string `json:"refreshToken"`
}

// Service verifies credentials and issues tokens.
type Service struct {
	store   user.Store
	hasher  password.Hasher
	codec   *token.Codec
	log     *logger.Logger
	metrics *observability.AuthMetrics
}

// NewService creates the authentication service. metrics may be nil.
func NewService(store user.Store, hasher password.Hasher, codec *token.Codec,
	log *logger.Logger, metrics *observability.AuthMetrics) *Service {
	return &Service{
		store:   store,
		hasher:  hasher,
		codec:   codec,
		log:     log.WithComponent("auth"),
		metrics: metrics,
	}
}

// Codec exposes the token codec for the request-interception layer.
func (s *Service) Codec() *token.Codec { return s.codec }

// SignUp registers a new account with role USER and returns its profile.
func (s *Service) SignUp(ctx context.Context, in SignUpInput) (*Profile, error) {
	ctx, span := observability.Tracer(tracerName).Start(ctx, "auth.signup")
	defer span.End()

	_, err := s.store.FindByEmail(ctx, in.Email)
	switch {
	case err == nil:
		s.metrics.RecordSignUp(ctx, observability.OutcomeRejected)
		return nil, apperrors.AlreadyExists("account")
	case !stderrors.Is(err, user.ErrNotFound):
		s.metrics.RecordSignUp(ctx, observability.OutcomeError)
		return nil, apperrors.StoreUnavailable(err)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		s.metrics.RecordSignUp(ctx, observability.OutcomeRejected)
		return nil, apperrors.Validation("Password does not meet the security requirements.").WithCause(err)
	}

	acct, err := s.store.Save(ctx, &user.Account{
		Email:        in.Email,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		PasswordHash: hash,
		Role:         user.RoleUser,
	})
	if err != nil {
		s.metrics.RecordSignUp(ctx, observability.OutcomeError)
		return nil, apperrors.StoreUnavailable(err)
	}

	s.metrics.RecordSignUp(ctx, observability.OutcomeOK)
	s.log.Info("account created", logger.Fields(
		logger.FieldEmail, acct.Email,
		logger.FieldRole, string(acct.Role),
	))

	return &Profile{
		FirstName: acct.FirstName,
		LastName:  acct.LastName,
		Email:     acct.Email,
		Username:  acct.Email,
	}, nil
}

// SignIn verifies the credentials and mints an access/refresh token pair.
// Unknown email and wrong password produce the identical error.
func (s *Service) SignIn(ctx context.Context, email, pw string) (*TokenPair, error) {
	ctx, span := observability.Tracer(tracerName).Start(ctx, "auth.signin")
	defer span.End()

	acct, err := s.verify(ctx, email, pw)
	if err != nil {
		outcome := observability.OutcomeRejected
		if apperrors.HasCode(err, apperrors.ErrCodeUserStoreUnavailable) {
			outcome = observability.OutcomeError
		}
		s.metrics.RecordSignIn(ctx, outcome)
		return nil, err
	}

	pair, err := s.issue(acct.Email)
	if err != nil {
		s.metrics.RecordSignIn(ctx, observability.OutcomeError)
		return nil, err
	}

	s.metrics.RecordSignIn(ctx, observability.OutcomeOK)
	s.log.Info("signed in", logger.Fields(logger.FieldEmail, acct.Email))
	return pair, nil
}

// Refresh mints a new access token from a valid refresh token. The refresh
// token itself is echoed back unchanged — this service does not rotate them,
// so a leaked refresh token stays usable until its original expiry.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	ctx, span := observability.Tracer(tracerName).Start(ctx, "auth.refresh")
	defer span.End()

	// Read the claimed subject first; a tampered or malformed token fails here.
	subject, err := s.codec.Subject(refreshToken)
	if err != nil {
		s.metrics.RecordRefresh(ctx, observability.OutcomeRejected)
		return nil, apperrors.RefreshRejected().WithCause(err)
	}

	acct, err := s.store.FindByEmail(ctx, subject)
	if err != nil {
		if stderrors.Is(err, user.ErrNotFound) {
			s.metrics.RecordRefresh(ctx, observability.OutcomeRejected)
			return nil, apperrors.NotFound("user")
		}
		s.metrics.RecordRefresh(ctx, observability.OutcomeError)
		return nil, apperrors.StoreUnavailable(err)
	}

	if !s.codec.IsValidFor(refreshToken, acct.Email) {
		s.metrics.RecordRefresh(ctx, observability.OutcomeRejected)
		return nil, apperrors.RefreshRejected()
	}

	access, err := s.codec.Access(acct.Email)
	if err != nil {
		s.metrics.RecordRefresh(ctx, observability.OutcomeError)
		return nil, apperrors.Internal(err)
	}

	s.metrics.RecordRefresh(ctx, observability.OutcomeOK)
	s.log.Debug("access token refreshed", logger.Fields(logger.FieldEmail, acct.Email))
	return &TokenPair{AccessToken: access, RefreshToken: refreshToken}, nil
}

// ResolvePrincipal looks up the account named by email and returns its
// principal view. Used by the request authenticator to bind identities.
func (s *Service) ResolvePrincipal(ctx context.Context, email string) (*Principal, error) {
	acct, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		if stderrors.Is(err, user.ErrNotFound) {
			return nil, apperrors.NotFound("user")
		}
		return nil, apperrors.StoreUnavailable(err)
	}
	return PrincipalOf(acct), nil
}

// verify checks the identifier/secret pair against the store. Both failure
// modes collapse to InvalidCredentials; only a store outage is distinct.
func (s *Service) verify(ctx context.Context, email, pw string) (*user.Account, error) {
	acct, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		if stderrors.Is(err, user.ErrNotFound) {
			return nil, apperrors.InvalidCredentials().WithCause(err)
		}
		return nil, apperrors.StoreUnavailable(err)
	}
	if err := s.hasher.Verify(pw, acct.PasswordHash); err != nil {
		return nil, apperrors.InvalidCredentials().WithCause(err)
	}
	return acct, nil
}

func (s *Service) issue(subject string) (*TokenPair, error) {
	access, err := s.codec.Access(subject)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	refresh, err := s.codec.Refresh(subject, nil)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
