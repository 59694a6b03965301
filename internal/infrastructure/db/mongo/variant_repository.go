package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mugstore/backoffice/internal/core/domain"
)

const collectionProductVariants = "product_variants"

type VariantRepository struct {
	col *mongo.Collection
}

func NewVariantRepository(db *mongo.Database) *VariantRepository {
	return &VariantRepository{col: db.Collection(collectionProductVariants)}
}

func (r *VariantRepository) Insert(ctx context.Context, v *domain.ProductVariant) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, v)
	if mongo.IsDuplicateKeyError(err) {
		return domain.ErrVariantExists
	}
	return err
}

func (r *VariantRepository) Update(ctx context.Context, v *domain.ProductVariant) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": v.ID}, v)
	if mongo.IsDuplicateKeyError(err) {
		return domain.ErrVariantExists
	}
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrVariantNotFound
	}
	return nil
}

func (r *VariantRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrVariantNotFound
	}
	return nil
}

func (r *VariantRepository) FindByID(ctx context.Context, id string) (*domain.ProductVariant, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var v domain.ProductVariant
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&v)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrVariantNotFound
		}
		return nil, err
	}
	return &v, nil
}

// ListByProduct returns the variants ordered by sort_order.
func (r *VariantRepository) ListByProduct(ctx context.Context, productID string) ([]*domain.ProductVariant, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "sort_order", Value: 1}})
	cur, err := r.col.Find(ctx, bson.M{"product_id": productID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var variants []*domain.ProductVariant
	if err := cur.All(ctx, &variants); err != nil {
		return nil, err
	}
	return variants, nil
}

// DeleteByProduct removes every variant of a deleted product.
func (r *VariantRepository) DeleteByProduct(ctx context.Context, productID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.DeleteMany(ctx, bson.M{"product_id": productID})
	return err
}

// EnsureIndexes creates the unique sku index on product_variants.
func (r *VariantRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "sku", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "product_id", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
