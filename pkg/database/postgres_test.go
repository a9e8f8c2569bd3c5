package database

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/smartedu-api/pkg/config"
)

func TestDSN(t *testing.T) {
	dsn := DSN(config.DatabaseConfig{Host: "db", Port: 5432, User: "smart", Password: "edu", Name: "smartedu", SSLMode: "disable"})

	assert.Equal(t, "host=db port=5432 user=smart password=edu dbname=smartedu sslmode=disable", dsn)
}
