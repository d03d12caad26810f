package config

import (
	"context"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

var MongoConn *mongo.Client

var DBName string = "absensi-karyawan-db"
var EmployeeCollection string = "employees"
var AttendanceCollection string = "attendances"
var WorkScheduleCollection string = "work_schedules"
var QRCodeCollection string = "qr_codes"

func MongoConnect() {

	mongoURI := os.Getenv("MONGOSTRING")

	if mongoURI == "" {
		log.Fatal("MONGOSTRING belum di setting di env. coba setting dulu")
	}

	client, err := mongo.NewClient(options.Client().ApplyURI(mongoURI))
	if err != nil {
		log.Fatalf("Failed to create MongoDB client: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err = client.Connect(ctx)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	err = client.Ping(ctx, readpref.Primary())
	if err != nil {
		log.Fatalf("Failed to ping MongoDB: %v", err)
	}

	log.Println("Connected to MongoDB!")
	MongoConn = client
}

// InitDatabase membuat indeks yang dibutuhkan aplikasi.
// Indeks unik (employee_id, date) adalah penjaga utama aturan
// "satu record absensi per karyawan per hari", termasuk saat ada
// dua request check-in yang balapan.
func InitDatabase() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	attendanceIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "employee_id", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			// Index tanggal untuk range query admin (semua karyawan).
			Keys: bson.D{{Key: "date", Value: 1}},
		},
	}
	if _, err := GetCollection(AttendanceCollection).Indexes().CreateMany(ctx, attendanceIndexes); err != nil {
		log.Fatalf("Gagal membuat indeks attendance: %v", err)
	}

	employeeIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "employee_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	if _, err := GetCollection(EmployeeCollection).Indexes().CreateMany(ctx, employeeIndexes); err != nil {
		log.Fatalf("Gagal membuat indeks employee: %v", err)
	}

	qrIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "code", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := GetCollection(QRCodeCollection).Indexes().CreateOne(ctx, qrIndex); err != nil {
		log.Fatalf("Gagal membuat indeks QR code: %v", err)
	}

	log.Println("Indeks database berhasil dibuat")
}

func GetCollection(collectionName string) *mongo.Collection {
	if MongoConn == nil {
		log.Fatal("MongoDB untuk client tidak di inisialisasi. Panggil MongoConnect() first")
	}
	return MongoConn.Database(DBName).Collection(collectionName)
}

func DisconnectDB() {
	if MongoConn != nil {
		if err := MongoConn.Disconnect(context.Background()); err != nil {
			log.Fatalf("Error disconnecting from MongoDB: %v", err)
		}
		log.Println("Disconnect from MongoDB")
	}
}
