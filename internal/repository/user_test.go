package repository

import (
	"errors"
	"testing"

	"github.com/metaraffle/backend/internal/entity"
	"github.com/metaraffle/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func Test_userRepository_CreateIfNotExists(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)
	repo := NewUserRepository()

	// The existing balance is kept.
	err := repo.CreateIfNotExists(ctx, &entity.User{Base: entity.Base{ID: testutil.User3.ID}, Points: 1000})
	require.NoError(t, err)

	user, err := repo.GetByID(ctx, testutil.User3.ID)
	require.NoError(t, err)
	require.Equal(t, testutil.User3.Points, user.Points)

	err = repo.CreateIfNotExists(ctx, &entity.User{Base: entity.Base{ID: "new-user"}, Points: 1000})
	require.NoError(t, err)

	user, err = repo.GetByID(ctx, "new-user")
	require.NoError(t, err)
	require.Equal(t, uint64(1000), user.Points)
	require.Equal(t, entity.UserRole, user.Role)
}

func Test_userRepository_Points(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)
	repo := NewUserRepository()

	require.NoError(t, repo.DecreasePoints(ctx, testutil.User3.ID, 50))

	err := repo.DecreasePoints(ctx, testutil.User3.ID, 1)
	require.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	require.NoError(t, repo.IncreasePoints(ctx, testutil.User3.ID, 30))

	err = repo.IncreasePoints(ctx, "invalid-user", 30)
	require.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	user, err := repo.GetByID(ctx, testutil.User3.ID)
	require.NoError(t, err)
	require.Equal(t, uint64(30), user.Points)

	total, err := repo.TotalPoints(ctx)
	require.NoError(t, err)
	require.Equal(t, testutil.User1.Points+testutil.User2.Points+30, total)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(len(testutil.Users)), count)
}
