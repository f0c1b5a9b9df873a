package mongostore

import (
	"context"

	"docs-admin/internal/shared/model"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// ============================================================================
// DocumentStore
// ============================================================================

func (s *Store) CreateDocument(ctx context.Context, doc *model.Document) error {
	return insertOne(ctx, s.col(ColDocuments), doc)
}

func (s *Store) GetDocument(ctx context.Context, id string) (*model.Document, error) {
	return findOne[model.Document](ctx, s.col(ColDocuments), bson.D{{Key: "_id", Value: id}})
}

func (s *Store) UpdateDocument(ctx context.Context, doc *model.Document) error {
	return updateFields(ctx, s.col(ColDocuments), doc.ID, bson.D{
		{Key: "title", Value: doc.Title},
		{Key: "content", Value: doc.Content},
	})
}

func (s *Store) DeleteDocument(ctx context.Context, id string) error {
	return deleteByID(ctx, s.col(ColDocuments), id)
}

// ListDocuments 按创建时间倒序返回全部文档
func (s *Store) ListDocuments(ctx context.Context) ([]*model.Document, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date_created", Value: -1}})
	return findMany[model.Document](ctx, s.col(ColDocuments), bson.D{}, opts)
}

// ListDocumentsByOwner 按创建时间正序返回指定所有者的文档
func (s *Store) ListDocumentsByOwner(ctx context.Context, ownerID string) ([]*model.Document, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date_created", Value: 1}})
	return findMany[model.Document](ctx, s.col(ColDocuments), bson.D{{Key: "owner_id", Value: ownerID}}, opts)
}
