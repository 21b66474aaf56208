package infra

import (
	"fmt"

	"github.com/Xdennizhu20X/back-abg/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate to
// create / update all tables, then applies the idempotent SQL patches that
// AutoMigrate cannot express (partial indexes).
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, err
	}

	return db, nil
}

// RunMigrations applies the full schema. Safe to re-run: AutoMigrate is
// incremental and every patch guards itself with an existence check.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Usuario{},
		&model.Predio{},
		&model.Movilizacion{},
		&model.Animal{},
		&model.Ave{},
		&model.Transporte{},
		&model.Validacion{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent DDL that GORM tags cannot express.
func applySchemaPatches(db *gorm.DB) error {
	patches := []struct{ descr, sql string }{
		// Partial index for the hourly escalation sweep: it only ever scans
		// rows still in "pendiente".
		{"partial index movilizaciones pendientes", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_movilizaciones_pendientes') THEN
    CREATE INDEX idx_movilizaciones_pendientes
        ON movilizaciones (fecha_solicitud)
        WHERE estado = 'pendiente';
  END IF;
END $$`},
		// Admin listings filter by requester name with an unanchored ILIKE,
		// which only a trigram index can serve.
		{"trgm index on usuarios.nombre", `
DO $$ BEGIN
  CREATE EXTENSION IF NOT EXISTS pg_trgm;
  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_usuarios_nombre_trgm') THEN
    CREATE INDEX idx_usuarios_nombre_trgm ON usuarios USING gin (nombre gin_trgm_ops);
  END IF;
END $$`},
	}

	for _, p := range patches {
		if err := db.Exec(p.sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", p.descr, err)
		}
	}
	return nil
}
