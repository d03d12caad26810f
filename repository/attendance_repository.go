package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"Sistem-Absensi-Karyawan/config"
	"Sistem-Absensi-Karyawan/models"
)

type AttendanceRepository interface {
	// --- Methods for Attendance ---
	FindByEmployeeAndDate(ctx context.Context, employeeID, date string) (*models.Attendance, error)
	UpsertCheckIn(ctx context.Context, record *models.Attendance) (bool, error)
	ApplyCheckOut(ctx context.Context, record *models.Attendance) (bool, error)
	FindByEmployeeAndDateRange(ctx context.Context, employeeID, startDate, endDate string) ([]models.Attendance, error)
	FindByDateRange(ctx context.Context, startDate, endDate string) ([]models.Attendance, error)
	FindAllByEmployee(ctx context.Context, employeeID string) ([]models.Attendance, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) error
	FindRangeWithEmployeeDetails(ctx context.Context, startDate, endDate, status string) ([]models.AttendanceWithEmployee, error)
	CountByDateAndStatus(ctx context.Context, date, status string) (int64, error)

	// --- Methods for QRCode ---
	CreateQRCode(ctx context.Context, qrCode *models.QRCode) error
	FindQRCodeByValue(ctx context.Context, code string) (*models.QRCode, error)
	FindActiveQRCodeByDate(ctx context.Context, date string) (*models.QRCode, error)
	MarkQRCodeAsUsed(ctx context.Context, qrCodeID primitive.ObjectID, employeeID string) error
}

type attendanceRepository struct {
	attendanceCollection *mongo.Collection
	qrCodeCollection     *mongo.Collection
}

func NewAttendanceRepository() AttendanceRepository {
	return &attendanceRepository{
		attendanceCollection: config.GetCollection(config.AttendanceCollection),
		qrCodeCollection:     config.GetCollection(config.QRCodeCollection),
	}
}

func (r *attendanceRepository) FindByEmployeeAndDate(ctx context.Context, employeeID, date string) (*models.Attendance, error) {
	var attendance models.Attendance
	filter := bson.M{"employee_id": employeeID, "date": date}
	err := r.attendanceCollection.FindOne(ctx, filter).Decode(&attendance)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("gagal mencari absensi berdasarkan karyawan dan tanggal: %w", err)
	}
	return &attendance, nil
}

// UpsertCheckIn menulis check-in secara atomik: filter hanya cocok bila
// record hari itu belum punya check_in. Bila record sudah ter-check-in,
// upsert mencoba insert dan menabrak indeks unik (employee_id, date);
// duplicate key dilaporkan sebagai conflict, bukan error.
func (r *attendanceRepository) UpsertCheckIn(ctx context.Context, record *models.Attendance) (bool, error) {
	filter := bson.M{
		"employee_id": record.EmployeeID,
		"date":        record.Date,
		"check_in":    bson.M{"$exists": false},
	}
	update := bson.M{
		"$set": bson.M{
			"check_in":         record.CheckIn,
			"status":           record.Status,
			"grade":            record.Grade,
			"total_time_spent": record.TotalTimeSpent,
			"updated_at":       record.UpdatedAt,
		},
		"$setOnInsert": bson.M{
			"_id":        primitive.NewObjectID(),
			"created_at": record.CreatedAt,
		},
	}

	res, err := r.attendanceCollection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return true, nil
		}
		return false, fmt.Errorf("gagal menyimpan check-in: %w", err)
	}

	if res.UpsertedID != nil {
		if oid, ok := res.UpsertedID.(primitive.ObjectID); ok {
			record.ID = oid
		}
	}
	return false, nil
}

// ApplyCheckOut menulis check-out hanya bila check_in sudah ada dan
// check_out belum; guard dan tulis adalah satu operasi atomik.
func (r *attendanceRepository) ApplyCheckOut(ctx context.Context, record *models.Attendance) (bool, error) {
	filter := bson.M{
		"employee_id": record.EmployeeID,
		"date":        record.Date,
		"check_in":    bson.M{"$exists": true},
		"check_out":   bson.M{"$exists": false},
	}
	update := bson.M{
		"$set": bson.M{
			"check_out":        record.CheckOut,
			"total_time_spent": record.TotalTimeSpent,
			"grade":            record.Grade,
			"updated_at":       record.UpdatedAt,
		},
	}

	res, err := r.attendanceCollection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("gagal menyimpan check-out: %w", err)
	}
	return res.MatchedCount > 0, nil
}

func (r *attendanceRepository) FindByEmployeeAndDateRange(ctx context.Context, employeeID, startDate, endDate string) ([]models.Attendance, error) {
	filter := bson.M{
		"employee_id": employeeID,
		"date":        bson.M{"$gte": startDate, "$lte": endDate},
	}
	return r.findSortedByDate(ctx, filter)
}

func (r *attendanceRepository) FindByDateRange(ctx context.Context, startDate, endDate string) ([]models.Attendance, error) {
	filter := bson.M{
		"date": bson.M{"$gte": startDate, "$lte": endDate},
	}
	return r.findSortedByDate(ctx, filter)
}

func (r *attendanceRepository) findSortedByDate(ctx context.Context, filter bson.M) ([]models.Attendance, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})

	cursor, err := r.attendanceCollection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("gagal mencari absensi: %w", err)
	}
	defer cursor.Close(ctx)

	var results []models.Attendance
	if err = cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("gagal decode hasil absensi: %w", err)
	}

	if len(results) == 0 {
		return []models.Attendance{}, nil
	}
	return results, nil
}

func (r *attendanceRepository) FindAllByEmployee(ctx context.Context, employeeID string) ([]models.Attendance, error) {
	filter := bson.M{"employee_id": employeeID}
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})

	cursor, err := r.attendanceCollection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("gagal mencari riwayat absensi karyawan: %w", err)
	}
	defer cursor.Close(ctx)

	var results []models.Attendance
	if err = cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("gagal decode riwayat absensi: %w", err)
	}

	if len(results) == 0 {
		return []models.Attendance{}, nil
	}
	return results, nil
}

func (r *attendanceRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	update := bson.M{
		"$set": bson.M{
			"status":     status,
			"updated_at": time.Now(),
		},
	}
	res, err := r.attendanceCollection.UpdateByID(ctx, id, update)
	if err != nil {
		return fmt.Errorf("gagal update status absensi: %w", err)
	}
	if res.MatchedCount == 0 {
		return errors.New("absensi tidak ditemukan")
	}
	return nil
}

func (r *attendanceRepository) FindRangeWithEmployeeDetails(ctx context.Context, startDate, endDate, status string) ([]models.AttendanceWithEmployee, error) {
	match := bson.D{{Key: "date", Value: bson.D{{Key: "$gte", Value: startDate}, {Key: "$lte", Value: endDate}}}}
	if status != "" {
		match = append(match, bson.E{Key: "status", Value: status})
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$sort", Value: bson.D{{Key: "date", Value: 1}, {Key: "employee_id", Value: 1}}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: config.EmployeeCollection},
			{Key: "localField", Value: "employee_id"},
			{Key: "foreignField", Value: "employee_id"},
			{Key: "as", Value: "employeeDetails"},
		}}},
		{{Key: "$unwind", Value: "$employeeDetails"}},
		{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: "$_id"},
			{Key: "employee_id", Value: 1},
			{Key: "date", Value: 1},
			{Key: "check_in", Value: 1},
			{Key: "check_out", Value: 1},
			{Key: "total_time_spent", Value: 1},
			{Key: "status", Value: 1},
			{Key: "grade", Value: 1},
			{Key: "employee_name", Value: "$employeeDetails.name"},
			{Key: "employee_email", Value: "$employeeDetails.email"},
			{Key: "employee_position", Value: "$employeeDetails.position"},
			{Key: "employee_department", Value: "$employeeDetails.department"},
		}}},
	}

	cursor, err := r.attendanceCollection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("gagal aggregation untuk riwayat kehadiran admin: %w", err)
	}
	defer cursor.Close(ctx)

	var results []models.AttendanceWithEmployee
	if err = cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("gagal decode hasil aggregation riwayat kehadiran: %w", err)
	}

	if len(results) == 0 {
		return []models.AttendanceWithEmployee{}, nil
	}
	return results, nil
}

func (r *attendanceRepository) CountByDateAndStatus(ctx context.Context, date, status string) (int64, error) {
	count, err := r.attendanceCollection.CountDocuments(ctx, bson.M{"date": date, "status": status})
	if err != nil {
		return 0, fmt.Errorf("gagal menghitung absensi: %w", err)
	}
	return count, nil
}

func (r *attendanceRepository) CreateQRCode(ctx context.Context, qrCode *models.QRCode) error {
	_, err := r.qrCodeCollection.InsertOne(ctx, qrCode)
	if err != nil {
		return fmt.Errorf("gagal membuat QR Code: %w", err)
	}
	return nil
}

func (r *attendanceRepository) FindQRCodeByValue(ctx context.Context, value string) (*models.QRCode, error) {
	var qrCode models.QRCode
	err := r.qrCodeCollection.FindOne(ctx, bson.M{"code": value}).Decode(&qrCode)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("gagal mencari QR Code: %w", err)
	}
	return &qrCode, nil
}

func (r *attendanceRepository) FindActiveQRCodeByDate(ctx context.Context, date string) (*models.QRCode, error) {
	var qrCode models.QRCode

	filter := bson.M{
		"date":       date,
		"expires_at": bson.M{"$gt": time.Now()},
	}
	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})

	err := r.qrCodeCollection.FindOne(ctx, filter, opts).Decode(&qrCode)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("gagal mencari QR Code aktif: %w", err)
	}
	return &qrCode, nil
}

func (r *attendanceRepository) MarkQRCodeAsUsed(ctx context.Context, qrCodeID primitive.ObjectID, employeeID string) error {
	filter := bson.M{"_id": qrCodeID}
	update := bson.M{
		"$addToSet": bson.M{"used_by": employeeID},
		"$set":      bson.M{"updated_at": time.Now()},
	}

	_, err := r.qrCodeCollection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("gagal menandai QR Code sebagai sudah digunakan: %w", err)
	}
	return nil
}
