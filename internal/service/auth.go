package service

import (
	"context"
	"strings"

	"github.com/clerk/clerk-sdk-go/v2"
	clerkuser "github.com/clerk/clerk-sdk-go/v2/user"
	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"

	"github.com/pressroomhq/pressroom/internal/model"
	"github.com/pressroomhq/pressroom/internal/repository"
	"github.com/pressroomhq/pressroom/internal/server"
)

// StaffRole is the Clerk organization role that grants staff privileges.
const StaffRole = "admin"

// AuthService owns the Clerk integration and the local user mirror.
type AuthService struct {
	server *server.Server
	repos  *repository.Repositories
}

// NewAuthService initializes the Clerk SDK with the configured secret key.
func NewAuthService(s *server.Server, repos *repository.Repositories) *AuthService {
	clerk.SetKey(s.Config.Auth.SecretKey)
	return &AuthService{
		server: s,
		repos:  repos,
	}
}

// IsStaff reports whether the given organization role grants staff access.
func (s *AuthService) IsStaff(role string) bool {
	return role == StaffRole
}

// EnsureUser returns the local user row for the authenticated subject,
// creating it from the Clerk profile on first sight. The staff flag is
// refreshed from the request's organization role on every call, so role
// changes in Clerk take effect without a resync job.
func (s *AuthService) EnsureUser(ctx context.Context, userID, role string) (*model.User, error) {
	staff := s.IsStaff(role)

	u, err := s.repos.Users.GetByID(ctx, userID)
	if err == nil {
		if u.IsStaff != staff {
			u.IsStaff = staff
			if err := s.repos.Users.Upsert(ctx, u); err != nil {
				return nil, err
			}
		}
		return u, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	clerkUser, err := clerkuser.Get(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch user from Clerk")
	}

	u = &model.User{
		ID:       userID,
		Username: usernameFrom(clerkUser),
		Email:    primaryEmail(clerkUser),
		IsStaff:  staff,
	}

	if err := s.repos.Users.Upsert(ctx, u); err != nil {
		return nil, err
	}

	return u, nil
}

func usernameFrom(u *clerk.User) string {
	if u.Username != nil && *u.Username != "" {
		return *u.Username
	}

	var parts []string
	if u.FirstName != nil && *u.FirstName != "" {
		parts = append(parts, *u.FirstName)
	}
	if u.LastName != nil && *u.LastName != "" {
		parts = append(parts, *u.LastName)
	}
	if len(parts) > 0 {
		return strings.Join(parts, " ")
	}

	if email := primaryEmail(u); email != "" {
		return strings.SplitN(email, "@", 2)[0]
	}

	return u.ID
}

func primaryEmail(u *clerk.User) string {
	for _, addr := range u.EmailAddresses {
		if addr == nil {
			continue
		}
		if u.PrimaryEmailAddressID != nil && addr.ID == *u.PrimaryEmailAddressID {
			return addr.EmailAddress
		}
	}
	if len(u.EmailAddresses) > 0 && u.EmailAddresses[0] != nil {
		return u.EmailAddresses[0].EmailAddress
	}
	return ""
}
