package repositories

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/techbizloanindia/Dms-Bizloan-Pvt-Ltd-sub001/internal/adapters/persistence/models"
	"github.com/techbizloanindia/Dms-Bizloan-Pvt-Ltd-sub001/internal/core/domain"
)

// documentRepository implements DocumentRepository interface
type documentRepository struct {
	collection *mongo.Collection
}

// NewDocumentRepository creates a new document repository
func NewDocumentRepository(db *mongo.Database) DocumentRepository {
	return &documentRepository{collection: db.Collection("documents")}
}

// FindByLoanKey finds documents whose loan key matches under either
// legacy alias, newest upload first. The descending order is a hard
// contract: callers render "most recent first".
func (r *documentRepository) FindByLoanKey(ctx context.Context, loanKey string) ([]*models.Document, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"loanId": loanKey},
		bson.M{"loanNumber": loanKey},
	}}

	opts := options.Find().SetSort(bson.D{{Key: "uploadedAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	docs := []*models.Document{}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// GetByID gets a document by ID. Malformed ids are reported as
// not-found, not as a server error.
func (r *documentRepository) GetByID(ctx context.Context, id string) (*models.Document, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrDocumentNotFound
	}

	var doc models.Document
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrDocumentNotFound
		}
		return nil, err
	}
	return &doc, nil
}

// List lists all documents with pagination, newest upload first
func (r *documentRepository) List(ctx context.Context, offset, limit int) ([]*models.Document, int64, error) {
	total, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "uploadedAt", Value: -1}}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	docs := []*models.Document{}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, 0, err
	}
	return docs, total, nil
}

// CountUnresolvable counts records violating the resolvability
// invariant: no loan key under any alias, or no locator under any alias.
func (r *documentRepository) CountUnresolvable(ctx context.Context) (int64, error) {
	noLoanKey := bson.A{}
	for _, alias := range models.LoanKeyAliases {
		noLoanKey = append(noLoanKey, bson.M{"$or": bson.A{
			bson.M{alias: bson.M{"$exists": false}},
			bson.M{alias: ""},
		}})
	}

	noLocator := bson.A{}
	for _, alias := range []string{"path", "s3Key", "bucketKey", "fileKey"} {
		noLocator = append(noLocator, bson.M{"$or": bson.A{
			bson.M{alias: bson.M{"$exists": false}},
			bson.M{alias: ""},
		}})
	}

	filter := bson.M{"$or": bson.A{
		bson.M{"$and": noLoanKey},
		bson.M{"$and": noLocator},
	}}

	return r.collection.CountDocuments(ctx, filter)
}
