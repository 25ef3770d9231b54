package mongo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/passengerdesk/auth-service/internal/core/domain"
)

const usersNS = "passenger_auth.users"

func TestUserRepository_FindByUsername(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("found", func(mt *mtest.T) {
		repo := NewUserRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, usersNS, mtest.FirstBatch, bson.D{
			{Key: "username", Value: "staff2"},
			{Key: "full_name", Value: "Staff Two"},
			{Key: "email", Value: "staff2@example.com"},
			{Key: "hashed_password", Value: "fakehashedstaff2"},
			{Key: "disabled", Value: true},
			{Key: "role", Value: "staff"},
		}))

		u, err := repo.FindByUsername(context.Background(), "staff2")
		require.NoError(mt, err)
		assert.Equal(mt, "staff2", u.Username)
		assert.Equal(mt, "fakehashedstaff2", u.HashedPassword)
		assert.True(mt, u.Disabled)
		assert.Equal(mt, domain.RoleStaff, u.Role)
	})

	mt.Run("no documents maps to user not found", func(mt *mtest.T) {
		repo := NewUserRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, usersNS, mtest.FirstBatch))

		_, err := repo.FindByUsername(context.Background(), "ghost")
		assert.ErrorIs(mt, err, domain.ErrUserNotFound)
	})

	mt.Run("server error is not a missing user", func(mt *mtest.T) {
		repo := NewUserRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    2,
			Name:    "BadValue",
			Message: "bad filter",
		}))

		_, err := repo.FindByUsername(context.Background(), "passenger1")
		require.Error(mt, err)
		assert.NotErrorIs(mt, err, domain.ErrNotFound)
	})
}

func TestUserRepository_EnsureIndexes(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("success", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		require.NoError(mt, NewUserRepository(mt.DB).EnsureIndexes(context.Background()))

		evt := mt.GetStartedEvent()
		require.NotNil(mt, evt)
		assert.Equal(mt, "createIndexes", evt.CommandName)
	})

	mt.Run("failure", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    2,
			Name:    "BadValue",
			Message: "index options conflict",
		}))
		assert.Error(mt, NewUserRepository(mt.DB).EnsureIndexes(context.Background()))
	})
}

func TestUserRepository_Seed(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("upserts every user", func(mt *mtest.T) {
		users := []*domain.User{
			{Username: "passenger1", HashedPassword: "fakehashedpass1", Role: domain.RolePassenger},
			{Username: "staff1", HashedPassword: "fakehashedstaff1", Role: domain.RoleStaff},
		}
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 2},
			bson.E{Key: "nModified", Value: 0},
		))

		require.NoError(mt, NewUserRepository(mt.DB).Seed(context.Background(), users))

		evt := mt.GetStartedEvent()
		require.NotNil(mt, evt)
		assert.Equal(mt, "update", evt.CommandName)
	})

	mt.Run("empty input sends nothing", func(mt *mtest.T) {
		require.NoError(mt, NewUserRepository(mt.DB).Seed(context.Background(), nil))
		assert.Nil(mt, mt.GetStartedEvent())
	})
}
