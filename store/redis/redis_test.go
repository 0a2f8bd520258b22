package redis

import (
	"context"
	"io"
	"os"
	"testing"

	"github.com/google/uuid"

	"github.com/recordgate/recordgate/record"
)

func TestRedisStore(t *testing.T) {
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("Skipping Redis store test: REDIS_TEST_ADDR not set")
	}

	st, err := New(&Config{
		Addr: addr,
		Key:  "recordgate:test:" + uuid.New().String(),
	})
	if err != nil {
		t.Fatalf("Failed to connect to Redis: %v", err)
	}

	defer func() {
		if closer, ok := st.(io.Closer); ok {
			_ = closer.Close()
		}
	}()

	ctx := context.Background()

	john := record.New().
		Set("name", record.String("John Doe")).
		Set("age", record.Number(30))
	jane := record.New().
		Set("name", record.String("Jane Smith"))

	if err := st.Append(ctx, john); err != nil {
		t.Fatalf("Failed to append record: %v", err)
	}

	if err := st.Append(ctx, jane); err != nil {
		t.Fatalf("Failed to append record: %v", err)
	}

	all, err := st.All(ctx)
	if err != nil {
		t.Fatalf("Failed to read records: %v", err)
	}

	if len(all) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(all))
	}

	name, _ := all[0].Get("name")
	if name.Text() != "John Doe" {
		t.Errorf("Expected first record John Doe, got %s", name.Text())
	}

	n, err := st.Len(ctx)
	if err != nil {
		t.Fatalf("Failed to count records: %v", err)
	}

	if n != 2 {
		t.Errorf("Expected 2 records, got %d", n)
	}
}
