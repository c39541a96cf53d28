package db

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
)

// Migrate applies the schema file at path. The statements are written with
// IF NOT EXISTS guards so running this on every startup is safe.
func Migrate(conn *sql.DB, path string, logger *logrus.Logger) error {
	schema, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read schema file %s: %w", path, err)
	}

	if _, err := conn.Exec(string(schema)); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}

	logger.Info("Database schema is up to date")
	return nil
}
