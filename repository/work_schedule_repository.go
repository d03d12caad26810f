package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"Sistem-Absensi-Karyawan/config"
	"Sistem-Absensi-Karyawan/models"
)

var ErrScheduleNotFound = errors.New("jadwal tidak ditemukan")

type WorkScheduleRepository struct {
	collection *mongo.Collection
}

func NewWorkScheduleRepository() *WorkScheduleRepository {
	return &WorkScheduleRepository{
		collection: config.GetCollection(config.WorkScheduleCollection),
	}
}

func (r *WorkScheduleRepository) Create(ctx context.Context, schedule *models.WorkSchedule) (*models.WorkSchedule, error) {
	schedule.ID = primitive.NewObjectID()
	schedule.CreatedAt = time.Now()
	schedule.UpdatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, schedule)
	if err != nil {
		return nil, fmt.Errorf("gagal menyimpan jadwal kerja: %w", err)
	}
	return schedule, nil
}

func (r *WorkScheduleRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.WorkSchedule, error) {
	var schedule models.WorkSchedule
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&schedule)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrScheduleNotFound
		}
		return nil, fmt.Errorf("gagal mencari jadwal kerja: %w", err)
	}
	return &schedule, nil
}

// FindAll mengembalikan semua aturan jadwal; dipakai juga oleh
// services.ScheduleResolver lewat interface WorkScheduleSource.
func (r *WorkScheduleRepository) FindAll(ctx context.Context) ([]models.WorkSchedule, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("gagal mengambil jadwal kerja: %w", err)
	}
	defer cursor.Close(ctx)

	var schedules []models.WorkSchedule
	if err = cursor.All(ctx, &schedules); err != nil {
		return nil, fmt.Errorf("gagal decode jadwal kerja: %w", err)
	}
	return schedules, nil
}

func (r *WorkScheduleRepository) UpdateByID(ctx context.Context, id primitive.ObjectID, payload *models.WorkScheduleUpdatePayload) error {
	update := bson.M{
		"$set": bson.M{
			"date":            payload.Date,
			"start_time":      payload.StartTime,
			"end_time":        payload.EndTime,
			"note":            payload.Note,
			"recurrence_rule": payload.RecurrenceRule,
			"updated_at":      time.Now(),
		},
	}

	result, err := r.collection.UpdateByID(ctx, id, update)
	if err != nil {
		return fmt.Errorf("gagal update jadwal kerja: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrScheduleNotFound
	}
	return nil
}

func (r *WorkScheduleRepository) DeleteByID(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("gagal menghapus jadwal kerja: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrScheduleNotFound
	}
	return nil
}
