package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/elecmate/cvbuilder/pkg/elecid"
)

// Directory exposes account details as Elec-ID user info (name and email used to prefill a CV).
type Directory struct {
	repo UserRepository
}

func NewDirectory(repo UserRepository) *Directory { return &Directory{repo: repo} }

func (d *Directory) UserInfo(ctx context.Context, userID uuid.UUID) (*elecid.UserInfo, error) {
	u, err := d.repo.GetByID(ctx, userID)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &elecid.UserInfo{FullName: u.FullName, Email: u.Email}, nil
}
