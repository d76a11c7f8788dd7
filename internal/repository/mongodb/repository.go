// Package mongodb persists the operational collections. All list reads
// pre-filter soft-deleted documents; deletes only stamp deleted_at.
package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	customersCollection      = "customers"
	jobsCollection           = "jobs"
	expensesCollection       = "expenses"
	assetsCollection         = "assets"
	stockLogsCollection      = "stock_logs"
	settingsCollection       = "settings"
	auditLogsCollection      = "audit_logs"
	monthlyReportsCollection = "monthly_reports"

	settingsDocumentID = "settings"
)

// notDeleted matches documents whose deletion stamp is absent or null.
var notDeleted = bson.M{"deleted_at": nil}

// Repository is the MongoDB adapter for every collection the app owns.
type Repository struct {
	client *mongo.Client
	dbName string
	now    func() time.Time
}

// NewRepository connects to MongoDB and verifies the connection.
func NewRepository(ctx context.Context, uri string, dbName string) (*Repository, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	// Ping the database to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &Repository{client: client, dbName: dbName, now: time.Now}, nil
}

// Close closes the MongoDB connection.
func (r *Repository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}

func (r *Repository) collection(name string) *mongo.Collection {
	return r.client.Database(r.dbName).Collection(name)
}

func newID() string {
	return primitive.NewObjectID().Hex()
}

func (r *Repository) listInto(ctx context.Context, collName string, out any) error {
	cursor, err := r.collection(collName).Find(ctx, notDeleted)
	if err != nil {
		return fmt.Errorf("find %s: %w", collName, err)
	}
	if err := cursor.All(ctx, out); err != nil {
		return fmt.Errorf("decode %s: %w", collName, err)
	}
	return nil
}

func (r *Repository) findByID(ctx context.Context, collName, id string, out any) (bool, error) {
	filter := bson.M{"_id": id, "deleted_at": nil}
	err := r.collection(collName).FindOne(ctx, filter).Decode(out)
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("find %s %s: %w", collName, id, err)
	}
	return true, nil
}

func (r *Repository) upsertByID(ctx context.Context, collName, id string, doc any) error {
	opts := options.Replace().SetUpsert(true)
	if _, err := r.collection(collName).ReplaceOne(ctx, bson.M{"_id": id}, doc, opts); err != nil {
		return fmt.Errorf("save %s %s: %w", collName, id, err)
	}
	return nil
}

func (r *Repository) softDelete(ctx context.Context, collName, id string) error {
	update := bson.M{"$set": bson.M{"deleted_at": r.now().UTC()}}
	result, err := r.collection(collName).UpdateOne(ctx, bson.M{"_id": id, "deleted_at": nil}, update)
	if err != nil {
		return fmt.Errorf("soft delete %s %s: %w", collName, id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("soft delete %s %s: %w", collName, id, mongo.ErrNoDocuments)
	}
	return nil
}
