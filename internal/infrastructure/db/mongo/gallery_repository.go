package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mugstore/backoffice/internal/core/domain"
)

const collectionProductImages = "product_images"

// GalleryRepository persists per-product gallery images.
type GalleryRepository struct {
	col *mongo.Collection
}

func NewGalleryRepository(db *mongo.Database) *GalleryRepository {
	return &GalleryRepository{col: db.Collection(collectionProductImages)}
}

func (r *GalleryRepository) Insert(ctx context.Context, img *domain.ProductImage) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, img)
	return err
}

func (r *GalleryRepository) Update(ctx context.Context, img *domain.ProductImage) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": img.ID}, img)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrImageNotFound
	}
	return nil
}

func (r *GalleryRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrImageNotFound
	}
	return nil
}

func (r *GalleryRepository) FindByID(ctx context.Context, id string) (*domain.ProductImage, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var img domain.ProductImage
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&img)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrImageNotFound
		}
		return nil, err
	}
	return &img, nil
}

// ListByProduct returns the gallery ordered by sort_order.
func (r *GalleryRepository) ListByProduct(ctx context.Context, productID string) ([]*domain.ProductImage, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "sort_order", Value: 1}})
	cur, err := r.col.Find(ctx, bson.M{"product_id": productID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var images []*domain.ProductImage
	if err := cur.All(ctx, &images); err != nil {
		return nil, err
	}
	return images, nil
}

// DeleteByProduct removes every gallery image of a deleted product.
func (r *GalleryRepository) DeleteByProduct(ctx context.Context, productID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.DeleteMany(ctx, bson.M{"product_id": productID})
	return err
}
