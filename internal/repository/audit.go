package repository

import (
	"context"
	"time"

	"societyhub/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gorm.io/gorm"
)

// IAuditLogRepository persists superadmin actions
type IAuditLogRepository interface {
	Create(ctx context.Context, entry *model.SuperadminLog) error
	List(ctx context.Context, limit int) ([]model.SuperadminLog, error)
}

// GormAuditLogRepository keeps the log in the main database
type GormAuditLogRepository struct {
	db *gorm.DB
}

func NewGormAuditLogRepository(db *gorm.DB) IAuditLogRepository {
	return &GormAuditLogRepository{db: db}
}

func (r *GormAuditLogRepository) Create(ctx context.Context, entry *model.SuperadminLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *GormAuditLogRepository) List(ctx context.Context, limit int) ([]model.SuperadminLog, error) {
	logs := []model.SuperadminLog{}
	err := r.db.WithContext(ctx).Order("id DESC").Limit(limit).Find(&logs).Error
	return logs, err
}

// MongoAuditLogRepository writes the log to a MongoDB collection
type MongoAuditLogRepository struct {
	collection *mongo.Collection
}

func NewMongoAuditLogRepository(db *mongo.Database) IAuditLogRepository {
	return &MongoAuditLogRepository{collection: db.Collection("superadmin_logs")}
}

func (r *MongoAuditLogRepository) Create(ctx context.Context, entry *model.SuperadminLog) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	_, err := r.collection.InsertOne(ctx, entry)
	return err
}

func (r *MongoAuditLogRepository) List(ctx context.Context, limit int) ([]model.SuperadminLog, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}).SetLimit(int64(limit))
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	logs := []model.SuperadminLog{}
	if err := cursor.All(ctx, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}
