package cv_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elecmate/cvbuilder/pkg/cv"
	"github.com/elecmate/cvbuilder/pkg/repository/memory"
)

func newService(t *testing.T) (cv.UseCase, *[]cv.Event) {
	t.Helper()
	events := cv.NewNotifier()
	var seen []cv.Event
	events.Subscribe(func(_ context.Context, e cv.Event) { seen = append(seen, e) })
	return cv.NewService(memory.NewCVRepository(), events), &seen
}

func TestCreate_FirstCVIsPrimary(t *testing.T) {
	ctx := context.Background()
	svc, seen := newService(t)
	user := uuid.New()

	first, err := svc.Create(ctx, user, cv.Draft{Title: "  Main  "})
	require.NoError(t, err)
	second, err := svc.Create(ctx, user, cv.Draft{})
	require.NoError(t, err)

	assert.True(t, first.IsPrimary)
	assert.Equal(t, "Main", first.Title)
	assert.False(t, second.IsPrimary)
	assert.Equal(t, "Untitled CV", second.Title)
	assert.Equal(t, int64(1), first.Version)
	require.Len(t, *seen, 2)
	assert.Equal(t, cv.EventCreated, (*seen)[0].Kind)
}

func TestCreate_SanitizesLists(t *testing.T) {
	svc, _ := newService(t)
	draft := cv.Draft{
		Skills:         []string{"Fault Finding", " fault finding ", "", "Testing"},
		Certifications: []string{"AM2", "am2"},
		Experience:     []cv.WorkExperience{{JobTitle: "Electrician"}},
	}

	got, err := svc.Create(context.Background(), uuid.New(), draft)
	require.NoError(t, err)
	assert.Equal(t, []string{"Fault Finding", "Testing"}, got.Skills)
	assert.Equal(t, []string{"AM2"}, got.Certifications)
	require.Len(t, got.Experience, 1)
	assert.NotEmpty(t, got.Experience[0].ID)
	assert.Empty(t, draft.Experience[0].ID, "draft must not be modified")
	assert.NotNil(t, got.Education)
}

func TestCreate_RequiresUser(t *testing.T) {
	svc, _ := newService(t)
	_, err := svc.Create(context.Background(), uuid.Nil, cv.Draft{})
	var verr cv.ErrValidation
	assert.ErrorAs(t, err, &verr)
}

func TestPrimary_NoneIsNil(t *testing.T) {
	svc, _ := newService(t)
	got, err := svc.Primary(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSetPrimary(t *testing.T) {
	ctx := context.Background()
	svc, seen := newService(t)
	user := uuid.New()
	first, _ := svc.Create(ctx, user, cv.Draft{})
	second, _ := svc.Create(ctx, user, cv.Draft{})

	require.NoError(t, svc.SetPrimary(ctx, user, second.ID))
	got, err := svc.Primary(ctx, user)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, second.ID, got.ID)

	old, err := svc.Get(ctx, user, first.ID)
	require.NoError(t, err)
	assert.False(t, old.IsPrimary)

	// both the demoted and the promoted CV are announced
	last := (*seen)[len(*seen)-2:]
	assert.Equal(t, []cv.Event{
		{Kind: cv.EventPrimaryChanged, UserID: user, CVID: first.ID},
		{Kind: cv.EventPrimaryChanged, UserID: user, CVID: second.ID},
	}, last)

	n := len(*seen)
	require.NoError(t, svc.SetPrimary(ctx, user, second.ID))
	require.Len(t, *seen, n+1, "re-selecting the primary CV announces it once")
}

func TestOtherUsersCVIsNotFound(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)
	owner := uuid.New()
	c, _ := svc.Create(ctx, owner, cv.Draft{})
	stranger := uuid.New()

	_, err := svc.Get(ctx, stranger, c.ID)
	assert.ErrorIs(t, err, cv.ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, stranger, c.ID), cv.ErrNotFound)
	assert.ErrorIs(t, svc.SetPrimary(ctx, stranger, c.ID), cv.ErrNotFound)
	_, err = svc.Completeness(ctx, stranger, c.ID)
	assert.ErrorIs(t, err, cv.ErrNotFound)
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	svc, seen := newService(t)
	user := uuid.New()
	c, _ := svc.Create(ctx, user, cv.Draft{Title: "Main", Skills: []string{"Testing"}})

	skills := []string{"Testing", "Solar PV", "solar pv"}
	title := "Updated"
	got, err := svc.Update(ctx, user, c.ID, cv.Patch{Title: &title, Skills: &skills})
	require.NoError(t, err)
	assert.Equal(t, "Updated", got.Title)
	assert.Equal(t, []string{"Testing", "Solar PV"}, got.Skills)
	assert.Equal(t, int64(2), got.Version)
	assert.Equal(t, cv.EventUpdated, (*seen)[len(*seen)-1].Kind)

	stale := int64(1)
	_, err = svc.Update(ctx, user, c.ID, cv.Patch{Title: &title, Version: &stale})
	assert.ErrorIs(t, err, cv.ErrVersionConflict)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	svc, seen := newService(t)
	user := uuid.New()
	c, _ := svc.Create(ctx, user, cv.Draft{})

	require.NoError(t, svc.Delete(ctx, user, c.ID))
	_, err := svc.Get(ctx, user, c.ID)
	assert.ErrorIs(t, err, cv.ErrNotFound)
	items, err := svc.List(ctx, user)
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Equal(t, cv.EventDeleted, (*seen)[len(*seen)-1].Kind)
}

func TestNotifier_NilIsNoop(t *testing.T) {
	var n *cv.Notifier
	assert.NotPanics(t, func() { n.Publish(context.Background(), cv.Event{}) })
}
