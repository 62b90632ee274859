package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nkhandel/dietplanner-backend/pkg/migrate"
)

func TestMigrationsDirIsValid(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("migrations dir failed validation: %v", err)
	}
}

func TestOrdersMigrationContainsSchemas(t *testing.T) {
	content := readMigration(t, "*_create_orders_tables.sql")

	checks := []string{
		"CREATE TABLE IF NOT EXISTS orders",
		"CREATE TABLE IF NOT EXISTS order_items",
		"CREATE INDEX IF NOT EXISTS idx_orders_user_id",
		"CREATE INDEX IF NOT EXISTS idx_order_items_order_id",
		"product_kind text NOT NULL",
		"unit_price numeric(10,2) NOT NULL",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestStockAlertsMigrationHasUniqueProductIndex(t *testing.T) {
	content := readMigration(t, "*_create_stock_alerts_table.sql")

	if !strings.Contains(content, "CREATE UNIQUE INDEX IF NOT EXISTS idx_stock_alerts_product") {
		t.Error("stock alerts migration must enforce one row per product")
	}
	if !strings.Contains(content, "alert_sent boolean NOT NULL DEFAULT false") {
		t.Error("stock alerts migration must default alert_sent to false")
	}
}

func TestDietPlansMigrationEnforcesUserGoalUniqueness(t *testing.T) {
	content := readMigration(t, "*_create_diet_plans_table.sql")

	if !strings.Contains(content, "CREATE UNIQUE INDEX IF NOT EXISTS idx_diet_plans_user_goal") {
		t.Error("diet plans migration must enforce one plan per user and goal")
	}
}

func readMigration(t *testing.T, pattern string) string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join("migrations", pattern))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no migration matching %q found", pattern)
	}
	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	return string(data)
}
