package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"bajarun-backend/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func envOrDefault(key, def string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	return value
}

func mysqlDSNFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	user := u.User.Username()
	pass, _ := u.User.Password()
	host := u.Hostname()
	port := u.Port()
	if port == "" {
		port = "3306"
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", fmt.Errorf("mysql url missing database name")
	}

	q := u.Query()
	if q.Get("charset") == "" {
		q.Set("charset", "utf8mb4")
	}
	if q.Get("parseTime") == "" {
		q.Set("parseTime", "True")
	}
	if q.Get("loc") == "" {
		q.Set("loc", "Local")
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", user, pass, host, port, dbName, q.Encode()), nil
}

func resolveMySQLDSN() (string, error) {
	raw := strings.TrimSpace(os.Getenv("MYSQL_URL"))
	if raw == "" {
		raw = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	}

	if raw != "" {
		if strings.HasPrefix(raw, "mysql://") {
			return mysqlDSNFromURL(raw)
		}
		return raw, nil
	}

	user := envOrDefault("DB_USER", "root")
	pass := envOrDefault("DB_PASS", "")
	host := envOrDefault("DB_HOST", "127.0.0.1")
	port := envOrDefault("DB_PORT", "3306")
	dbName := envOrDefault("DB_NAME", "bajarun_db")

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		user, pass, host, port, dbName,
	), nil
}

// SeedDatabase is idempotent: it only inserts rows when the relevant table is
// empty, so restarting the server never duplicates inventory.
func SeedDatabase() {
	// ---------------- Admins ----------------
	var adminCount int64
	DB.Model(&models.Admin{}).Count(&adminCount)
	if adminCount == 0 {
		hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("warning: failed to hash default admin password: %v", err)
		} else {
			admin := models.Admin{
				FullName: "Admin User",
				Username: "admin@bajarun.local",
				Password: string(hash),
			}
			if err := DB.Create(&admin).Error; err != nil {
				log.Printf("warning: failed to create default admin: %v", err)
			} else {
				log.Println("Default admin seeded")
			}
		}
	}

	// ---------------- Tour settings ----------------
	var settingCount int64
	DB.Model(&models.TourSetting{}).Count(&settingCount)
	if settingCount == 0 {
		setting := models.TourSetting{Name: "Baja Run", Year: time.Now().Year()}
		if err := DB.Create(&setting).Error; err != nil {
			log.Printf("warning: failed to seed tour settings: %v", err)
		} else {
			log.Println("Tour settings seeded")
		}
	}

	// ---------------- Room inventory ----------------
	var roomCount int64
	DB.Model(&models.RoomInventoryEntry{}).Count(&roomCount)
	if roomCount > 0 {
		log.Println("Room inventory already seeded")
		return
	}

	twin := datatypes.NewJSONSlice([]string{"bed-1", "bed-2"})
	single := datatypes.NewJSONSlice([]string{"bed-1"})

	rooms := make([]models.RoomInventoryEntry, 0, len(LodgingNights)*4)
	for _, day := range LodgingNights {
		rooms = append(rooms,
			models.RoomInventoryEntry{
				RoomID: fmt.Sprintf("n%d-cabana-1", day), Day: day,
				SuiteName: "Cabana", RoomNumber: "1", Beds: twin,
			},
			models.RoomInventoryEntry{
				RoomID: fmt.Sprintf("n%d-casita-2", day), Day: day,
				SuiteName: "Casita", RoomNumber: "2", Beds: single,
			},
			models.RoomInventoryEntry{
				RoomID: fmt.Sprintf("n%d-camping", day), Day: day,
				SuiteName: "Camping", IsCamping: true,
			},
			models.RoomInventoryEntry{
				RoomID: fmt.Sprintf("n%d-own", day), Day: day,
				SuiteName: "On Their Own", IsOwnAccommodation: true,
			},
		)
	}
	if err := DB.Create(&rooms).Error; err != nil {
		log.Printf("warning: failed to seed room inventory: %v", err)
	} else {
		log.Println("Room inventory seeded")
	}
}

func ConnectDatabase() error {
	dsn, err := resolveMySQLDSN()
	if err != nil {
		return err
	}

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: time.Second,
			LogLevel:      logger.Warn,
			Colorful:      true,
		},
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{Logger: newLogger})
	if err != nil {
		return err
	}

	DB = db

	if err := DB.AutoMigrate(
		&models.Admin{},
		&models.TourSetting{},
		&models.Rider{},
		&models.NightSelection{},
		&models.RoommatePreference{},
		&models.RoomInventoryEntry{},
		&models.NightAssignments{},
	); err != nil {
		return err
	}

	SeedDatabase()
	return nil
}
