package db

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

func connect(databaseURL string) (*sql.DB, error) {
	if databaseURL == "" {
		return nil, fmt.Errorf("database URL cannot be empty")
	}

	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	err = db.Ping()
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	return db, nil
}

// Connect tries the primary URL first and falls back to the secondary one,
// so a local dev database can stand in when the managed one is unreachable.
func Connect(primaryURL, fallbackURL string, logger *logrus.Logger) (*sql.DB, error) {
	conn, err := connect(primaryURL)
	if err == nil {
		return conn, nil
	}

	if fallbackURL == "" {
		return nil, err
	}

	logger.Warnf("Primary database connection failed (%v), trying fallback", err)
	conn, fallbackErr := connect(fallbackURL)
	if fallbackErr != nil {
		return nil, fmt.Errorf("primary: %v; fallback: %w", err, fallbackErr)
	}

	logger.Info("Connected to fallback database")
	return conn, nil
}
