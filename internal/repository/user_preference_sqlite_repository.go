package repository

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"weather-assistant/internal/models"
	"weather-assistant/internal/utils"

	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"
)

//go:embed sql/create-user-preferences.sql
var createUserPreferencesSQL string

//go:embed sql/upsert-language.sql
var upsertLanguageSQL string

//go:embed sql/get-language.sql
var getLanguageSQL string

const sqliteDriver = "sqlite3"

// sqliteUserPreferenceRepository keeps preferences in a local database file.
// The file is opened for each operation and closed again, nothing stays connected between commands.
type sqliteUserPreferenceRepository struct {
	logger *logrus.Entry
	path   string
}

func NewSQLiteUserPreferenceRepository(logger *logrus.Entry, path string) (utils.UserPreferenceRepository, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("sqlite path is empty")
	}
	return &sqliteUserPreferenceRepository{
		logger: logger,
		path:   path,
	}, nil
}

func (r *sqliteUserPreferenceRepository) SetLanguage(ctx context.Context, userID, language string) error {
	db, err := r.open(ctx)
	if err != nil {
		return err
	}
	defer r.close(db)

	if _, err := db.ExecContext(ctx, upsertLanguageSQL, userID, language); err != nil {
		r.logger.WithError(err).Error("Failed to save user preference to SQLite")
		return fmt.Errorf("failed to save user preference: %w", err)
	}

	r.logger.WithFields(logrus.Fields{
		"userId":   userID,
		"language": language,
	}).Info("Successfully saved user preference")

	return nil
}

func (r *sqliteUserPreferenceRepository) GetLanguage(ctx context.Context, userID string) (*models.UserPreference, error) {
	db, err := r.open(ctx)
	if err != nil {
		return nil, err
	}
	defer r.close(db)

	var pref models.UserPreference
	err = db.QueryRowContext(ctx, getLanguageSQL, userID).Scan(&pref.UserID, &pref.Language)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.logger.WithError(err).Error("Failed to get user preference from SQLite")
		return nil, fmt.Errorf("failed to get user preference: %w", err)
	}

	return &pref, nil
}

func (r *sqliteUserPreferenceRepository) open(ctx context.Context) (*sql.DB, error) {
	dsn, err := buildDSN(r.path)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(sqliteDriver, dsn)
	if err != nil {
		return nil, fmt.Errorf("db open: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, createUserPreferencesSQL); err != nil {
		r.close(db)
		return nil, fmt.Errorf("db schema: %w", err)
	}

	return db, nil
}

func (r *sqliteUserPreferenceRepository) close(db *sql.DB) {
	if err := db.Close(); err != nil {
		r.logger.WithError(err).Warn("Failed to close SQLite database")
	}
}

func buildDSN(path string) (string, error) {
	// Ensure directory exists for the database file
	dir := filepath.Dir(strings.TrimPrefix(path, "file:"))
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	// busy_timeout: another invocation may hold the write lock for a moment
	params := "_busy_timeout=5000"

	if strings.HasPrefix(path, "file:") {
		sep := "?"
		if strings.Contains(path, "?") {
			sep = "&"
		}
		return path + sep + params, nil
	}

	return fmt.Sprintf("file:%s?%s", path, params), nil
}
