package db

import (
	"strings"
	"testing"
)

func TestMigrationsEmbedded(t *testing.T) {
	b, err := migrationsFS.ReadFile("migrations/0001_init.up.sql")
	if err != nil {
		t.Fatal(err)
	}
	sql := string(b)
	for _, table := range []string{"users", "listings", "bookings", "reviews", "auth_tokens", "audit_logs"} {
		if !strings.Contains(sql, "CREATE TABLE IF NOT EXISTS "+table+" ") {
			t.Errorf("table %s missing from initial migration", table)
		}
	}
	if !strings.Contains(sql, "ON DELETE CASCADE") {
		t.Error("foreign keys must cascade")
	}
}
