package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mugstore/backoffice/internal/core/domain"
	"github.com/mugstore/backoffice/internal/core/ports"
)

const (
	collectionOrders    = "orders"
	collectionCustomers = "customers"
)

// DashboardRepository runs the read-only aggregation pipelines behind the
// dashboard. Orders and customers are written by the storefront; this service
// only reads them.
type DashboardRepository struct {
	products  *mongo.Collection
	orders    *mongo.Collection
	customers *mongo.Collection
}

func NewDashboardRepository(db *mongo.Database) *DashboardRepository {
	return &DashboardRepository{
		products:  db.Collection(collectionProducts),
		orders:    db.Collection(collectionOrders),
		customers: db.Collection(collectionCustomers),
	}
}

func (r *DashboardRepository) CountActiveProducts(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	return r.products.CountDocuments(ctx, bson.M{"status": domain.StatusActive})
}

func (r *DashboardRepository) CountCustomers(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	return r.customers.CountDocuments(ctx, bson.M{})
}

func (r *DashboardRepository) CountOrders(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	return r.orders.CountDocuments(ctx, bson.M{})
}

// RecentOrders returns the newest orders first.
func (r *DashboardRepository) RecentOrders(ctx context.Context, limit int) ([]*domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))

	cur, err := r.orders.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var orders []*domain.Order
	if err := cur.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// SalesSince aggregates completed|shipped orders created at or after from.
func (r *DashboardRepository) SalesSince(ctx context.Context, from time.Time) (ports.SalesWindow, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"created_at": bson.M{"$gte": from},
			"status":     bson.M{"$in": bson.A{domain.OrderCompleted, domain.OrderShipped}},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":         nil,
			"total_sales": bson.M{"$sum": "$total_amount"},
			"order_count": bson.M{"$sum": 1},
			"avg_value":   bson.M{"$avg": "$total_amount"},
		}}},
	}

	cur, err := r.orders.Aggregate(ctx, pipeline)
	if err != nil {
		return ports.SalesWindow{}, err
	}
	defer cur.Close(ctx)

	var rows []struct {
		TotalSales float64 `bson:"total_sales"`
		OrderCount int64   `bson:"order_count"`
		AvgValue   float64 `bson:"avg_value"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return ports.SalesWindow{}, err
	}
	if len(rows) == 0 {
		return ports.SalesWindow{}, nil
	}

	return ports.SalesWindow{
		TotalSales:    rows[0].TotalSales,
		OrderCount:    rows[0].OrderCount,
		AvgOrderValue: rows[0].AvgValue,
	}, nil
}

// LowStock returns active products at or below the threshold, lowest stock
// first, id as the tiebreaker so rankings are reproducible.
func (r *DashboardRepository) LowStock(ctx context.Context, threshold, limit int) ([]*domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{
		"status":         domain.StatusActive,
		"stock_quantity": bson.M{"$lte": threshold},
	}
	opts := options.Find().
		SetSort(bson.D{
			{Key: "stock_quantity", Value: 1},
			{Key: "_id", Value: 1},
		}).
		SetLimit(int64(limit))

	cur, err := r.products.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var products []*domain.Product
	if err := cur.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// Popular ranks products by how many order lines reference them, id as the
// tiebreaker.
func (r *DashboardRepository) Popular(ctx context.Context, limit int) ([]ports.PopularProduct, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$unwind", Value: "$items"}},
		{{Key: "$group", Value: bson.M{
			"_id":         "$items.product_id",
			"order_count": bson.M{"$sum": 1},
		}}},
		{{Key: "$sort", Value: bson.D{
			{Key: "order_count", Value: -1},
			{Key: "_id", Value: 1},
		}}},
		{{Key: "$limit", Value: limit}},
		{{Key: "$lookup", Value: bson.M{
			"from":         collectionProducts,
			"localField":   "_id",
			"foreignField": "_id",
			"as":           "product",
		}}},
	}

	cur, err := r.orders.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var rows []struct {
		ID         string `bson:"_id"`
		OrderCount int64  `bson:"order_count"`
		Product    []struct {
			Name string `bson:"name"`
		} `bson:"product"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}

	popular := make([]ports.PopularProduct, 0, len(rows))
	for _, row := range rows {
		p := ports.PopularProduct{ProductID: row.ID, OrderCount: row.OrderCount}
		if len(row.Product) > 0 {
			p.Name = row.Product[0].Name
		}
		popular = append(popular, p)
	}
	return popular, nil
}
