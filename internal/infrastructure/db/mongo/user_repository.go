package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/passengerdesk/auth-service/internal/core/domain"
)

const usersCollection = "users"

// UserRepository reads user records from MongoDB. The service never writes
// to it at request time; Seed runs once at start-up.
type UserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{coll: db.Collection(usersCollection)}
}

type mongoUser struct {
	Username       string `bson:"username"`
	FullName       string `bson:"full_name,omitempty"`
	Email          string `bson:"email,omitempty"`
	HashedPassword string `bson:"hashed_password"`
	Disabled       bool   `bson:"disabled"`
	Role           string `bson:"role"`
}

func toMongoUser(u *domain.User) mongoUser {
	return mongoUser{
		Username:       u.Username,
		FullName:       u.FullName,
		Email:          u.Email,
		HashedPassword: u.HashedPassword,
		Disabled:       u.Disabled,
		Role:           string(u.Role),
	}
}

func (m mongoUser) toDomain() *domain.User {
	return &domain.User{
		Username:       m.Username,
		FullName:       m.FullName,
		Email:          m.Email,
		HashedPassword: m.HashedPassword,
		Disabled:       m.Disabled,
		Role:           domain.Role(m.Role),
	}
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	var mu mongoUser
	if err := r.coll.FindOne(ctx, bson.M{"username": username}).Decode(&mu); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return mu.toDomain(), nil
}

// EnsureIndexes creates the unique username index.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create username index: %w", err)
	}
	return nil
}

// Seed upserts users by username so repeated start-ups converge on the same
// records.
func (r *UserRepository) Seed(ctx context.Context, users []*domain.User) error {
	if len(users) == 0 {
		return nil
	}

	models := make([]mongo.WriteModel, 0, len(users))
	for _, u := range users {
		models = append(models, mongo.NewReplaceOneModel().
			SetFilter(bson.M{"username": u.Username}).
			SetReplacement(toMongoUser(u)).
			SetUpsert(true))
	}

	if _, err := r.coll.BulkWrite(ctx, models, options.BulkWrite().SetOrdered(false)); err != nil {
		return fmt.Errorf("seed users: %w", err)
	}
	return nil
}
