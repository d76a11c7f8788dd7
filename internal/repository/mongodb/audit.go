package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/linsamsir/pro-erp/internal/domain/models"
)

// AppendAuditEntry inserts one audit entry. Entries are never updated.
func (r *Repository) AppendAuditEntry(ctx context.Context, entry models.AuditEntry) error {
	if entry.ID == "" {
		entry.ID = newID()
	}
	if _, err := r.collection(auditLogsCollection).InsertOne(ctx, entry); err != nil {
		return fmt.Errorf("append audit entry: %w", err)
	}
	return nil
}

// EvictOldestAuditEntries deletes the oldest entries until at most cap
// remain, FIFO by timestamp.
func (r *Repository) EvictOldestAuditEntries(ctx context.Context, cap int) error {
	coll := r.collection(auditLogsCollection)

	total, err := coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("count audit entries: %w", err)
	}
	excess := total - int64(cap)
	if excess <= 0 {
		return nil
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: 1}}).
		SetLimit(excess).
		SetProjection(bson.M{"_id": 1})
	cursor, err := coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return fmt.Errorf("find oldest audit entries: %w", err)
	}

	var oldest []struct {
		ID string `bson:"_id"`
	}
	if err := cursor.All(ctx, &oldest); err != nil {
		return fmt.Errorf("decode oldest audit entries: %w", err)
	}

	ids := make([]string, 0, len(oldest))
	for _, doc := range oldest {
		ids = append(ids, doc.ID)
	}
	if _, err := coll.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}}); err != nil {
		return fmt.Errorf("evict audit entries: %w", err)
	}
	return nil
}

// ListAuditEntries returns the most recent entries, newest first.
func (r *Repository) ListAuditEntries(ctx context.Context, limit int) ([]models.AuditEntry, error) {
	if limit <= 0 {
		limit = 100
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(int64(limit))
	cursor, err := r.collection(auditLogsCollection).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find audit entries: %w", err)
	}

	var entries []models.AuditEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("decode audit entries: %w", err)
	}
	return entries, nil
}

// SaveMonthlyReport stores a generated report snapshot. Snapshots are
// insert-only; regenerating a month adds a new document.
func (r *Repository) SaveMonthlyReport(ctx context.Context, report models.MonthlyReport) error {
	if _, err := r.collection(monthlyReportsCollection).InsertOne(ctx, report); err != nil {
		return fmt.Errorf("insert monthly report %s: %w", report.Month, err)
	}
	return nil
}
