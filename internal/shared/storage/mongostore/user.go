package mongostore

import (
	"context"
	"time"

	"docs-admin/internal/shared/model"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// ============================================================================
// UserStore
// ============================================================================

func (s *Store) CreateUser(ctx context.Context, user *model.User) error {
	return insertOne(ctx, s.col(ColUsers), user)
}

func (s *Store) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	return findOne[model.User](ctx, s.col(ColUsers), bson.D{{Key: "_id", Value: id}})
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	return findOne[model.User](ctx, s.col(ColUsers), bson.D{{Key: "username", Value: username}})
}

func (s *Store) FindUserByUsernameOrEmail(ctx context.Context, username, email string) (*model.User, error) {
	filter := bson.D{{Key: "$or", Value: bson.A{
		bson.D{{Key: "username", Value: username}},
		bson.D{{Key: "email", Value: email}},
	}}}
	return findOne[model.User](ctx, s.col(ColUsers), filter)
}

func (s *Store) UpdateUser(ctx context.Context, user *model.User) error {
	return updateFields(ctx, s.col(ColUsers), user.ID, bson.D{
		{Key: "username", Value: user.Username},
		{Key: "name", Value: user.Name},
		{Key: "email", Value: user.Email},
		{Key: "updated_at", Value: time.Now()},
	})
}

func (s *Store) SetUserLoggedIn(ctx context.Context, id string, loggedIn bool) error {
	return updateFields(ctx, s.col(ColUsers), id, bson.D{
		{Key: "logged_in", Value: loggedIn},
		{Key: "updated_at", Value: time.Now()},
	})
}

func (s *Store) DeleteUser(ctx context.Context, id string) error {
	return deleteByID(ctx, s.col(ColUsers), id)
}

// ListUsers 按创建顺序（created_at 升序）返回全部用户
func (s *Store) ListUsers(ctx context.Context) ([]*model.User, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	return findMany[model.User](ctx, s.col(ColUsers), bson.D{}, opts)
}
