package mongostore

import (
	"context"

	"docs-admin/internal/shared/model"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// ============================================================================
// RoleStore
// ============================================================================

func (s *Store) CreateRole(ctx context.Context, role *model.Role) error {
	return insertOne(ctx, s.col(ColRoles), role)
}

func (s *Store) GetRoleByTitle(ctx context.Context, title string) (*model.Role, error) {
	return findOne[model.Role](ctx, s.col(ColRoles), bson.D{{Key: "title", Value: title}})
}

func (s *Store) ListRoles(ctx context.Context) ([]*model.Role, error) {
	opts := options.Find().SetSort(bson.D{{Key: "access_level", Value: 1}})
	return findMany[model.Role](ctx, s.col(ColRoles), bson.D{}, opts)
}
