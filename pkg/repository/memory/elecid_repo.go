package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/elecmate/cvbuilder/pkg/elecid"
)

// ElecIDRepository keeps Elec-ID profiles in process memory.
type ElecIDRepository struct {
	mu       sync.RWMutex
	profiles map[uuid.UUID]elecid.Profile
}

func NewElecIDRepository() *ElecIDRepository {
	return &ElecIDRepository{profiles: make(map[uuid.UUID]elecid.Profile)}
}

func (r *ElecIDRepository) GetByUser(_ context.Context, userID uuid.UUID) (*elecid.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.profiles[userID]
	if !ok {
		return nil, nil
	}
	cp := copyProfile(p)
	return &cp, nil
}

func (r *ElecIDRepository) Replace(_ context.Context, userID uuid.UUID, p elecid.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles[userID] = copyProfile(p)
	return nil
}

func copyProfile(p elecid.Profile) elecid.Profile {
	return elecid.Profile{
		Skills:         append([]elecid.Skill{}, p.Skills...),
		Qualifications: append([]elecid.Qualification{}, p.Qualifications...),
		WorkHistory:    append([]elecid.WorkHistory{}, p.WorkHistory...),
		Training:       append([]elecid.Training{}, p.Training...),
	}
}
