package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	authdomain "altweb/internal/auth/domain"
)

// userRepository implements UserRepository on a MongoDB collection.
type userRepository struct {
	c *mongo.Collection
}

// NewUserRepository creates a user repository backed by the "users"
// collection of db.
func NewUserRepository(db *mongo.Database) UserRepository {
	return &userRepository{c: db.Collection("users")}
}

// EnsureIndexes creates the unique email index. Called once at startup.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("users").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("idx_users_email"),
	})
	return err
}

func (r *userRepository) Create(ctx context.Context, user *authdomain.User) error {
	user.ID = primitive.NewObjectID()
	user.Email = authdomain.NormalizeEmail(user.Email)
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	if _, err := r.c.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateEmail
		}
		return err
	}
	return nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*authdomain.User, error) {
	var user authdomain.User
	err := r.c.FindOne(ctx, bson.M{"email": authdomain.NormalizeEmail(email)}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*authdomain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	var user authdomain.User
	err = r.c.FindOne(ctx, bson.M{"_id": oid}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Save(ctx context.Context, user *authdomain.User) error {
	user.UpdatedAt = time.Now()
	_, err := r.c.ReplaceOne(ctx, bson.M{"_id": user.ID}, user)
	if err != nil && mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateEmail
	}
	return err
}
