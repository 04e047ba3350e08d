package main

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("CHANNEL_SECRET", "secret")
	t.Setenv("CHANNEL_TOKEN", "token")
	t.Setenv("WUNDERGROUND_API_KEY", "key")
	t.Setenv("WUNDERGROUND_PWS_ID", "IBERLIN123")
	t.Setenv("USER_TABLE_NAME", "")
	t.Setenv("USER_DB_PATH", "")
	t.Setenv("HTTP_TIMEOUT", "")
}

func TestGetEnvironmentVariables(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		setRequiredEnv(t)

		envVars, err := getEnvironmentVariables()
		if err != nil {
			t.Fatalf("getEnvironmentVariables: %v", err)
		}
		if envVars.userDBPath != defaultUserDBPath {
			t.Errorf("userDBPath = %q", envVars.userDBPath)
		}
		if envVars.httpTimeout != defaultHTTPTimeout {
			t.Errorf("httpTimeout = %v", envVars.httpTimeout)
		}
		if envVars.wundergroundPWSID != "IBERLIN123" {
			t.Errorf("wundergroundPWSID = %q", envVars.wundergroundPWSID)
		}
	})

	t.Run("Overrides", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("USER_TABLE_NAME", "user-preferences")
		t.Setenv("USER_DB_PATH", "/tmp/prefs.db")
		t.Setenv("HTTP_TIMEOUT", "3s")

		envVars, err := getEnvironmentVariables()
		if err != nil {
			t.Fatalf("getEnvironmentVariables: %v", err)
		}
		if envVars.userTableName != "user-preferences" || envVars.userDBPath != "/tmp/prefs.db" || envVars.httpTimeout != 3*time.Second {
			t.Errorf("unexpected env vars: %+v", envVars)
		}
	})

	t.Run("Missing required", func(t *testing.T) {
		for _, key := range []string{"CHANNEL_SECRET", "CHANNEL_TOKEN", "WUNDERGROUND_API_KEY", "WUNDERGROUND_PWS_ID"} {
			setRequiredEnv(t)
			t.Setenv(key, "")
			if _, err := getEnvironmentVariables(); err == nil {
				t.Errorf("expected error when %s is missing", key)
			}
		}
	})

	t.Run("Invalid timeout", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("HTTP_TIMEOUT", "soon")
		if _, err := getEnvironmentVariables(); err == nil {
			t.Error("expected error for invalid HTTP_TIMEOUT")
		}
	})
}

func TestNewUserPreferenceRepository_SQLite(t *testing.T) {
	envVars := &EnvVars{userDBPath: t.TempDir() + "/users.db"}

	repo, err := newUserPreferenceRepository(logrus.NewEntry(logrus.New()), envVars)
	if err != nil {
		t.Fatalf("newUserPreferenceRepository: %v", err)
	}
	if repo == nil {
		t.Fatal("newUserPreferenceRepository returned nil")
	}
}
