// Package cartrepo stores carts in MongoDB, one document per cart line.
package cartrepo

import (
	"context"
	"fmt"
	"time"

	"warehouse/internal/core/domain/model/cart"
	"warehouse/internal/core/domain/model/kernel"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const CollectionName = "cart_items"

// CartItemDocument is one line of a customer's cart.
type CartItemDocument struct {
	CustomerID string    `bson:"customerId"`
	ProductID  string    `bson:"productId"`
	Quantity   int       `bson:"quantity"`
	CreatedAt  time.Time `bson:"createdAt"`
	UpdatedAt  time.Time `bson:"updatedAt"`
}

// MongoCartRepository implements CartRepository over a MongoDB collection.
type MongoCartRepository struct {
	collection *mongo.Collection
}

func NewMongoCartRepository(db *mongo.Database) *MongoCartRepository {
	return &MongoCartRepository{collection: db.Collection(CollectionName)}
}

// EnsureIndexes creates the unique (customerId, productId) index that keeps
// one document per cart line.
func (r *MongoCartRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "customerId", Value: 1}, {Key: "productId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// Get returns the customer's cart, oldest line first.
func (r *MongoCartRepository) Get(ctx context.Context, customerID kernel.UUID) (*cart.Cart, error) {
	cursor, err := r.collection.Find(ctx,
		bson.M{"customerId": customerID.String()},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}}),
	)
	if err != nil {
		return nil, err
	}

	var docs []CartItemDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	items := make([]cart.Item, 0, len(docs))
	for _, doc := range docs {
		productID, err := kernel.UUIDFromString(doc.ProductID)
		if err != nil {
			return nil, fmt.Errorf("cart line %q: %w", doc.ProductID, err)
		}
		items = append(items, cart.Item{ProductID: productID, Quantity: doc.Quantity})
	}
	return cart.RestoreCart(customerID, items)
}

// SetItem upserts the line, or deletes it when quantity is zero.
func (r *MongoCartRepository) SetItem(
	ctx context.Context,
	customerID kernel.UUID,
	productID kernel.UUID,
	quantity int,
) error {
	c, err := cart.NewCart(customerID)
	if err != nil {
		return err
	}
	if err := c.SetItem(productID, quantity); err != nil {
		return err
	}

	filter := bson.M{"customerId": customerID.String(), "productId": productID.String()}
	if quantity == 0 {
		_, err := r.collection.DeleteOne(ctx, filter)
		return err
	}

	now := time.Now().UTC()
	_, err = r.collection.UpdateOne(ctx, filter,
		bson.M{
			"$set":         bson.M{"quantity": quantity, "updatedAt": now},
			"$setOnInsert": bson.M{"createdAt": now},
		},
		options.Update().SetUpsert(true),
	)
	if mongo.IsDuplicateKeyError(err) {
		// A concurrent upsert inserted the line first; retry as a plain update.
		_, err = r.collection.UpdateOne(ctx, filter, bson.M{"$set": bson.M{"quantity": quantity, "updatedAt": now}})
	}
	return err
}

// Clear removes every line of the customer's cart.
func (r *MongoCartRepository) Clear(ctx context.Context, customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	_, err := r.collection.DeleteMany(ctx, bson.M{"customerId": customerID.String()})
	return err
}
