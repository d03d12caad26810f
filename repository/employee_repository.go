package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"Sistem-Absensi-Karyawan/config"
	"Sistem-Absensi-Karyawan/models"
)

type EmployeeRepository struct {
	collection *mongo.Collection
}

func NewEmployeeRepository() *EmployeeRepository {
	return &EmployeeRepository{
		collection: config.GetCollection(config.EmployeeCollection),
	}
}

func (r *EmployeeRepository) CreateEmployee(ctx context.Context, employee *models.Employee) error {
	employee.ID = primitive.NewObjectID()
	employee.CreatedAt = time.Now()
	employee.UpdatedAt = time.Now()
	employee.IsFirstLogin = true

	_, err := r.collection.InsertOne(ctx, employee)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("email atau employee_id sudah terdaftar")
		}
		return fmt.Errorf("gagal membuat karyawan: %w", err)
	}
	return nil
}

func (r *EmployeeRepository) FindByEmail(ctx context.Context, email string) (*models.Employee, error) {
	var employee models.Employee
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&employee)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("gagal menemukan karyawan berdasarkan email: %w", err)
	}
	return &employee, nil
}

func (r *EmployeeRepository) FindByEmployeeID(ctx context.Context, employeeID string) (*models.Employee, error) {
	var employee models.Employee
	err := r.collection.FindOne(ctx, bson.M{"employee_id": employeeID}).Decode(&employee)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("gagal menemukan karyawan berdasarkan employee_id: %w", err)
	}
	return &employee, nil
}

func (r *EmployeeRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Employee, error) {
	var employee models.Employee
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&employee)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("gagal menemukan karyawan berdasarkan ID: %w", err)
	}
	return &employee, nil
}

func (r *EmployeeRepository) UpdateEmployee(ctx context.Context, id primitive.ObjectID, updateData bson.M) error {
	updateData["updated_at"] = time.Now()
	update := bson.M{"$set": updateData}

	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("email atau employee_id sudah terdaftar")
		}
		return fmt.Errorf("gagal mengupdate karyawan: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("karyawan tidak ditemukan")
	}
	return nil
}

func (r *EmployeeRepository) DeleteEmployee(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("gagal menghapus karyawan: %w", err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("karyawan tidak ditemukan")
	}
	return nil
}

func (r *EmployeeRepository) GetAllEmployees(ctx context.Context, filter bson.M, page, limit int64) ([]models.Employee, int64, error) {
	findOptions := options.Find()
	findOptions.SetSkip((page - 1) * limit)
	findOptions.SetLimit(limit)
	findOptions.SetSort(bson.D{{Key: "name", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, 0, fmt.Errorf("gagal menemukan karyawan: %w", err)
	}
	defer cursor.Close(ctx)

	var employees []models.Employee
	if err = cursor.All(ctx, &employees); err != nil {
		return nil, 0, fmt.Errorf("gagal mendecode karyawan: %w", err)
	}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("gagal menghitung karyawan: %w", err)
	}

	return employees, total, nil
}

func (r *EmployeeRepository) UpdatePassword(ctx context.Context, id primitive.ObjectID, hashedPassword string) error {
	update := bson.M{
		"$set": bson.M{
			"password":     hashedPassword,
			"isFirstLogin": false,
			"updated_at":   time.Now(),
		},
	}
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("gagal mengupdate password karyawan: %w", err)
	}
	return nil
}

func (r *EmployeeRepository) CountEmployees(ctx context.Context, filter bson.M) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("gagal menghitung karyawan: %w", err)
	}
	return count, nil
}
