package database

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/himarpl/himarpl-api/pkg/config"
)

func TestDSNPrefersURL(t *testing.T) {
	cfg := config.DatabaseConfig{URL: "postgres://u:p@db:5432/himarpl", Host: "ignored"}
	assert.Equal(t, "postgres://u:p@db:5432/himarpl", DSN(cfg))
}

func TestDSNFromParts(t *testing.T) {
	cfg := config.DatabaseConfig{Host: "localhost", Port: 5432, User: "postgres", Password: "secret", Name: "himarpl", SSLMode: "disable"}
	assert.Equal(t, "host=localhost port=5432 user=postgres password=secret dbname=himarpl sslmode=disable", DSN(cfg))
}
