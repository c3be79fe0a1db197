package library

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) Create(ctx context.Context, b *Book) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *mockRepo) GetByID(ctx context.Context, id, ownerID string) (Book, error) {
	args := m.Called(ctx, id, ownerID)
	return args.Get(0).(Book), args.Error(1)
}

func (m *mockRepo) ListByOwner(ctx context.Context, ownerID string, category *Category) ([]Book, error) {
	args := m.Called(ctx, ownerID, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Book), args.Error(1)
}

func (m *mockRepo) Update(ctx context.Context, b *Book) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *mockRepo) Delete(ctx context.Context, id, ownerID string) error {
	args := m.Called(ctx, id, ownerID)
	return args.Error(0)
}

func newTestService(repo *mockRepo) *Service {
	return NewService(repo, NewHub(), zap.NewNop())
}

func TestService_UpdateSetsFinishedAtOnce(t *testing.T) {
	ctx := context.Background()
	stored := Book{
		ID:       "b1",
		OwnerID:  "u1",
		Title:    "Solaris",
		Author:   "Stanislaw Lem",
		Category: CategoryReading,
		AddedAt:  time.Now().Add(-24 * time.Hour),
	}

	repo := new(mockRepo)
	s := newTestService(repo)

	frozen := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return frozen }

	repo.On("GetByID", ctx, "b1", "u1").Return(stored, nil).Once()
	repo.On("Update", ctx, mock.Anything).Return(nil)
	repo.On("ListByOwner", ctx, "u1", (*Category)(nil)).Return([]Book{}, nil)

	finished := CategoryFinished
	updated, err := s.Update(ctx, "b1", "u1", Patch{Category: &finished})
	require.NoError(t, err)
	require.NotNil(t, updated.FinishedAt)
	assert.Equal(t, frozen, *updated.FinishedAt)
	assert.Equal(t, CategoryFinished, updated.Category)

	// Updating an already-finished book must not move the timestamp.
	repo.On("GetByID", ctx, "b1", "u1").Return(updated, nil).Once()
	s.now = func() time.Time { return frozen.Add(48 * time.Hour) }

	again, err := s.Update(ctx, "b1", "u1", Patch{Category: &finished})
	require.NoError(t, err)
	require.NotNil(t, again.FinishedAt)
	assert.Equal(t, frozen, *again.FinishedAt)
}

func TestService_UpdateRejectsOutOfRangeRating(t *testing.T) {
	ctx := context.Background()
	repo := new(mockRepo)
	s := newTestService(repo)

	for _, rating := range []int{0, 6, -1, 42} {
		r := rating
		_, err := s.Update(ctx, "b1", "u1", Patch{Rating: &r})
		assert.ErrorIs(t, err, ErrInvalidRating)
	}
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)

	repo.On("GetByID", ctx, "b1", "u1").Return(Book{ID: "b1", OwnerID: "u1", Category: CategoryOwned}, nil)
	repo.On("Update", ctx, mock.Anything).Return(nil)
	repo.On("ListByOwner", ctx, "u1", (*Category)(nil)).Return([]Book{}, nil)

	five := 5
	updated, err := s.Update(ctx, "b1", "u1", Patch{Rating: &five})
	require.NoError(t, err)
	require.NotNil(t, updated.Rating)
	assert.Equal(t, 5, *updated.Rating)
}

func TestService_CreateValidation(t *testing.T) {
	ctx := context.Background()
	repo := new(mockRepo)
	s := newTestService(repo)

	err := s.Create(ctx, &Book{Author: "Someone", Category: CategoryOwned})
	assert.ErrorIs(t, err, ErrTitleRequired)

	err = s.Create(ctx, &Book{Title: "Something", Category: CategoryOwned})
	assert.ErrorIs(t, err, ErrAuthorRequired)

	err = s.Create(ctx, &Book{Title: "Something", Author: "Someone", Category: "shelfless"})
	assert.Error(t, err)

	bad := 9
	err = s.Create(ctx, &Book{Title: "Something", Author: "Someone", Category: CategoryOwned, Rating: &bad})
	assert.ErrorIs(t, err, ErrInvalidRating)

	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_CreateFinishedStampsFinishedAt(t *testing.T) {
	ctx := context.Background()
	repo := new(mockRepo)
	s := newTestService(repo)

	frozen := time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return frozen }

	repo.On("Create", ctx, mock.Anything).Return(nil)
	repo.On("ListByOwner", ctx, "u1", (*Category)(nil)).Return([]Book{}, nil)

	b := Book{OwnerID: "u1", Title: "Roadside Picnic", Author: "Strugatsky", Category: CategoryFinished}
	require.NoError(t, s.Create(ctx, &b))
	require.NotNil(t, b.FinishedAt)
	assert.Equal(t, frozen, *b.FinishedAt)
}

func TestService_MutationsPublishSnapshots(t *testing.T) {
	ctx := context.Background()
	repo := new(mockRepo)
	hub := NewHub()
	s := NewService(repo, hub, zap.NewNop())

	sub := hub.Subscribe("u1", nil)
	defer sub.Cancel()

	shelf := []Book{{ID: "b1", OwnerID: "u1", Title: "Blindsight", Author: "Peter Watts", Category: CategoryReading}}
	repo.On("Create", ctx, mock.Anything).Return(nil)
	repo.On("ListByOwner", ctx, "u1", (*Category)(nil)).Return(shelf, nil)

	b := shelf[0]
	require.NoError(t, s.Create(ctx, &b))

	select {
	case snapshot := <-sub.C:
		require.Len(t, snapshot, 1)
		assert.Equal(t, "Blindsight", snapshot[0].Title)
	case <-time.After(time.Second):
		t.Fatal("expected a snapshot after create")
	}
}

func TestService_SubscribeSeedsCurrentSnapshot(t *testing.T) {
	ctx := context.Background()
	repo := new(mockRepo)
	hub := NewHub()
	s := NewService(repo, hub, zap.NewNop())

	shelf := []Book{
		{ID: "b1", OwnerID: "u1", Category: CategoryReading},
		{ID: "b2", OwnerID: "u1", Category: CategoryWishlist},
	}
	repo.On("ListByOwner", ctx, "u1", (*Category)(nil)).Return(shelf, nil)

	reading := CategoryReading
	sub, err := s.Subscribe(ctx, "u1", &reading)
	require.NoError(t, err)
	defer sub.Cancel()

	select {
	case snapshot := <-sub.C:
		require.Len(t, snapshot, 1, "seed snapshot must honor the category filter")
		assert.Equal(t, "b1", snapshot[0].ID)
	case <-time.After(time.Second):
		t.Fatal("expected a seed snapshot")
	}
}
