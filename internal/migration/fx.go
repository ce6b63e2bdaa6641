package migration

import (
	"github.com/bwmarrin/snowflake"
	authdomain "github.com/majilabs/oasis/internal/auth/domain"
	"github.com/majilabs/oasis/internal/config"
	reservoirdomain "github.com/majilabs/oasis/internal/reservoir/domain"
	"github.com/majilabs/oasis/internal/seed"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config, node *snowflake.Node) error {
		if cfg.DBType == "postgres" {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := RunMigrations(sqlDB); err != nil {
				return err
			}
		} else {
			if err := conn.AutoMigrate(
				&authdomain.User{},
				&authdomain.Session{},
				&reservoirdomain.Reservoir{},
			); err != nil {
				return err
			}
		}

		if err := seed.EnsureAdmin(conn, node); err != nil {
			return err
		}
		if cfg.SeedSampleData {
			return seed.EnsureSampleReservoirs(conn, node)
		}
		return nil
	}),
)
