package postgres

import (
	"context"
	"database/sql"
	"os"
	"testing"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/recordgate/recordgate/record"
)

func TestPostgresStore(t *testing.T) {
	// Skip if no PostgreSQL connection is available
	dsn := os.Getenv("PG_TEST_DSN")
	if dsn == "" {
		t.Skip("Skipping PostgreSQL store test: PG_TEST_DSN not set")
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Fatalf("Failed to connect to PostgreSQL: %v", err)
	}
	defer db.Close()

	st, err := New(db)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}

	ctx := context.Background()

	if _, err := db.ExecContext(ctx, `TRUNCATE records`); err != nil {
		t.Fatalf("Failed to truncate records: %v", err)
	}

	john := record.New().
		Set("name", record.String("John Doe")).
		Set("age", record.Number(30))

	t.Run("Append", func(t *testing.T) {
		if err := st.Append(ctx, john); err != nil {
			t.Fatalf("Failed to append record: %v", err)
		}
	})

	t.Run("All", func(t *testing.T) {
		all, err := st.All(ctx)
		if err != nil {
			t.Fatalf("Failed to read records: %v", err)
		}

		if len(all) != 1 {
			t.Fatalf("Expected 1 record, got %d", len(all))
		}

		name, _ := all[0].Get("name")
		if name.Text() != "John Doe" {
			t.Errorf("Expected name John Doe, got %s", name.Text())
		}
	})

	t.Run("Len", func(t *testing.T) {
		n, err := st.Len(ctx)
		if err != nil {
			t.Fatalf("Failed to count records: %v", err)
		}

		if n != 1 {
			t.Errorf("Expected 1 record, got %d", n)
		}
	})
}
