package elecid

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Source loads the external profile and account info of one user.
type Source struct {
	profiles Repository
	users    UserDirectory
}

func NewSource(profiles Repository, users UserDirectory) *Source {
	return &Source{profiles: profiles, users: users}
}

// Fetch returns the user's profile and account info; either may be nil.
func (s *Source) Fetch(ctx context.Context, userID uuid.UUID) (*Profile, *UserInfo, error) {
	p, err := s.profiles.GetByUser(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("load elec-id profile: %w", err)
	}
	var info *UserInfo
	if s.users != nil {
		info, err = s.users.UserInfo(ctx, userID)
		if err != nil {
			return nil, nil, fmt.Errorf("load user info: %w", err)
		}
	}
	return p, info, nil
}
