// Package database opens the primary store and runs migrations.
package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ngoa-long/tamquoc/backend/internal/config"
	"github.com/ngoa-long/tamquoc/backend/internal/models"
)

// Open connects per the configured driver and runs automigration.
func Open(cfg config.DatabaseConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "postgres":
		dialector = postgres.Open(cfg.DSN)
	case "sqlite":
		dialector = sqlite.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// OpenTest opens an in-memory sqlite store for tests.
func OpenTest() (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate applies the schema for every persistence model.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Player{},
		&models.PityState{},
		&models.HeroTemplate{},
		&models.PlayerHero{},
		&models.SkillTemplate{},
		&models.HeroSkill{},
		&models.EquipmentSet{},
		&models.EquipmentTemplate{},
		&models.PlayerEquipment{},
		&models.MountTemplate{},
		&models.PlayerMount{},
		&models.Chapter{},
		&models.Stage{},
		&models.EnemyTemplate{},
		&models.StageProgress{},
		&models.BattleRecord{},
		&models.GachaRecord{},
		&models.Team{},
		&models.TeamMember{},
	)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}
