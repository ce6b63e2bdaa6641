// Package seed bootstraps the database with the default admin account and a
// starter set of Kenyan reservoirs so the service is usable out of the box.
package seed

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	authdomain "github.com/majilabs/oasis/internal/auth/domain"
	"github.com/majilabs/oasis/internal/auth/password"
	reservoirdomain "github.com/majilabs/oasis/internal/reservoir/domain"
	"gorm.io/gorm"
)

const (
	defaultAdminEmail    = "admin@waterapp.ke"
	defaultAdminPassword = "admin123"
	defaultAdminName     = "Admin User"

	sampleUserEmail    = "john@example.com"
	sampleUserPassword = "password123"
	sampleUserName     = "John Doe"
)

// EnsureAdmin seeds the default admin and a sample user when the users table
// is empty. Safe to run on every startup.
func EnsureAdmin(db *gorm.DB, node *snowflake.Node) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&authdomain.User{}).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		now := time.Now().UTC()

		adminHash, err := password.Hash(defaultAdminPassword)
		if err != nil {
			return err
		}
		admin := authdomain.User{
			ID:           node.Generate(),
			FullName:     defaultAdminName,
			Email:        defaultAdminEmail,
			PasswordHash: adminHash,
			Role:         authdomain.RoleAdmin,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := tx.Create(&admin).Error; err != nil {
			return err
		}

		userHash, err := password.Hash(sampleUserPassword)
		if err != nil {
			return err
		}
		sample := authdomain.User{
			ID:           node.Generate(),
			FullName:     sampleUserName,
			Email:        sampleUserEmail,
			PasswordHash: userHash,
			Role:         authdomain.RoleUser,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		return tx.Create(&sample).Error
	})
}

type sampleReservoir struct {
	name         string
	county       string
	subCounty    string
	ward         string
	latitude     float64
	longitude    float64
	totalM3      float64
	levelM3      float64
	quality      string
	managedBy    string
	description  string
	contactPhone string
	contactEmail string
}

var sampleReservoirs = []sampleReservoir{
	{"Ndakaini Dam", "Nairobi", "Gatundu North", "Ndakaini", -0.9833, 36.8167, 70000000, 49000000,
		reservoirdomain.QualityGood, "Nairobi Water and Sewerage Company",
		"Nairobi's main water source", "+254-20-123456", "info@nairobiwater.co.ke"},
	{"Ruiru Dam", "Nairobi", "Ruiru", "Ruiru", -1.1500, 36.9500, 15000000, 9000000,
		reservoirdomain.QualityGood, "Nairobi Water and Sewerage Company",
		"Secondary water source for Nairobi", "+254-20-123457", "info@nairobiwater.co.ke"},
	{"Karimenu II Dam", "Kiambu", "Gatundu North", "Karimenu", -1.0167, 36.8167, 26000000, 18200000,
		reservoirdomain.QualityExcellent, "Athwater Limited",
		"Major water project for Nairobi metropolitan", "+254-20-123458", "info@athwater.co.ke"},
	{"Lake Nakuru", "Nakuru", "Nakuru East", "Nakuru East", -0.3667, 36.0833, 100000000, 35000000,
		reservoirdomain.QualityFair, "Nakuru Water and Sanitation Company",
		"Natural lake with water treatment", "+254-51-123456", "info@nakuruwater.co.ke"},
	{"Mbaraki Reservoir", "Mombasa", "Mvita", "Mbaraki", -4.0500, 39.6667, 50000000, 20000000,
		reservoirdomain.QualityGood, "Mombasa Water and Sanitation Company",
		"Main water storage for Mombasa", "+254-41-123456", "info@mombasawater.co.ke"},
	{"Kisumu Water Works", "Kisumu", "Kisumu Central", "Kisumu Central", -0.1000, 34.7500, 30000000, 12000000,
		reservoirdomain.QualityGood, "Kisumu Water and Sanitation Company",
		"Water treatment and storage facility", "+254-57-123456", "info@kisumuwater.co.ke"},
	{"Eldoret Dam", "Uasin Gishu", "Eldoret East", "Eldoret East", 0.5167, 35.2833, 25000000, 8750000,
		reservoirdomain.QualityGood, "Eldoret Water and Sanitation Company",
		"Water storage for Eldoret town", "+254-53-123456", "info@eldoretwater.co.ke"},
	{"Thika High Level Dam", "Kiambu", "Thika Town", "Thika Town", -1.0333, 37.0833, 40000000, 28000000,
		reservoirdomain.QualityExcellent, "Thika Water and Sewerage Company",
		"High-level water storage for Thika", "+254-67-123456", "info@thikawater.co.ke"},
	{"Chania Dam", "Nyeri", "Nyeri Central", "Nyeri Central", -0.4167, 36.9500, 20000000, 8000000,
		reservoirdomain.QualityGood, "Nyeri Water and Sanitation Company",
		"Water storage for Nyeri town", "+254-61-123456", "info@nyeriwater.co.ke"},
	{"Machakos Water Works", "Machakos", "Machakos Town", "Machakos Town", -1.5167, 37.2667, 15000000, 6000000,
		reservoirdomain.QualityFair, "Machakos Water and Sanitation Company",
		"Water treatment and storage", "+254-44-123456", "info@machakoswater.co.ke"},
	{"Kitui Dam", "Kitui", "Kitui Central", "Kitui Central", -1.3667, 38.0167, 10000000, 2500000,
		reservoirdomain.QualityPoor, "Kitui Water and Sanitation Company",
		"Severely low water levels", "+254-44-123457", "info@kituiwater.co.ke"},
	{"Garissa Reservoir", "Garissa", "Garissa Township", "Garissa Township", -0.4500, 39.6500, 8000000, 1600000,
		reservoirdomain.QualityPoor, "Garissa Water and Sanitation Company",
		"Critical water shortage", "+254-46-123456", "info@garissawater.co.ke"},
}

// EnsureSampleReservoirs seeds the starter reservoir set when the table is
// empty. Safe to run on every startup.
func EnsureSampleReservoirs(db *gorm.DB, node *snowflake.Node) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&reservoirdomain.Reservoir{}).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		now := time.Now().UTC()
		for _, s := range sampleReservoirs {
			rec := reservoirdomain.Reservoir{
				ID:              node.Generate(),
				Name:            s.name,
				County:          s.county,
				SubCounty:       s.subCounty,
				Ward:            s.ward,
				Latitude:        s.latitude,
				Longitude:       s.longitude,
				TotalCapacityM3: s.totalM3,
				CurrentLevelM3:  s.levelM3,
				WaterQuality:    s.quality,
				Status:          reservoirdomain.StatusOperational,
				ManagedBy:       s.managedBy,
				Description:     s.description,
				ContactPhone:    s.contactPhone,
				ContactEmail:    s.contactEmail,
				LastUpdated:     now,
				CreatedAt:       now,
				UpdatedAt:       now,
			}
			// Rough estimate assuming daily draw of 1% of the current level.
			if s.levelM3 > 0 {
				runout := now.AddDate(0, 0, 100)
				rec.EstimatedRunoutDate = &runout
			}
			if err := tx.Create(&rec).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
