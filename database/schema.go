// Define table schema structures
package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type TableSchema struct {
	Name        string         `json:"name"`
	Columns     []ColumnSchema `json:"columns"`
	Description string         `json:"description"`
}

type ColumnSchema struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Nullable    bool   `json:"nullable"`
	Description string `json:"description"`
}

// DatabaseSchema is listed in creation order.
var DatabaseSchema = []TableSchema{
	{
		Name:        "events",
		Description: "Stores events tickets are sold for",
		Columns: []ColumnSchema{
			{Name: "id", Type: "bigserial PRIMARY KEY", Nullable: false, Description: "Primary key"},
			{Name: "organizer", Type: "varchar(100)", Nullable: false, Description: "Slug of the organizer"},
			{Name: "slug", Type: "varchar(100)", Nullable: false, Description: "Event slug used in URLs"},
			{Name: "name", Type: "varchar(200)", Nullable: false, Description: "Display name of the event"},
		},
	},
	{
		Name:        "items",
		Description: "Stores the products sold for an event",
		Columns: []ColumnSchema{
			{Name: "id", Type: "bigserial PRIMARY KEY", Nullable: false, Description: "Primary key"},
			{Name: "event_id", Type: "bigint REFERENCES events(id)", Nullable: false, Description: "Reference to events table"},
			{Name: "name", Type: "varchar(200)", Nullable: false, Description: "Item name"},
			{Name: "admission", Type: "boolean", Nullable: false, Description: "Whether the item grants admission"},
		},
	},
	{
		Name:        "orders",
		Description: "Stores orders",
		Columns: []ColumnSchema{
			{Name: "id", Type: "bigserial PRIMARY KEY", Nullable: false, Description: "Primary key"},
			{Name: "event_id", Type: "bigint REFERENCES events(id)", Nullable: false, Description: "Reference to events table"},
			{Name: "status", Type: "char(1)", Nullable: false, Description: "n pending, p paid, e expired, c canceled"},
			{Name: "datetime", Type: "timestamptz", Nullable: false, Description: "When the order was placed"},
		},
	},
	{
		Name:        "order_positions",
		Description: "Stores the single tickets of an order",
		Columns: []ColumnSchema{
			{Name: "id", Type: "bigserial PRIMARY KEY", Nullable: false, Description: "Primary key"},
			{Name: "order_id", Type: "bigint REFERENCES orders(id)", Nullable: false, Description: "Reference to orders table"},
			{Name: "item_id", Type: "bigint REFERENCES items(id)", Nullable: false, Description: "Reference to items table"},
		},
	},
}

// CreateTableSQL renders the idempotent DDL for a table.
func CreateTableSQL(table TableSchema) string {
	var b strings.Builder
	fmt.Fprintf(&b, "CREATE TABLE IF NOT EXISTS %s (", pq.QuoteIdentifier(table.Name))
	for i, col := range table.Columns {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s %s", pq.QuoteIdentifier(col.Name), col.Type)
		if !col.Nullable {
			b.WriteString(" NOT NULL")
		}
	}
	b.WriteString(")")
	return b.String()
}

func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	for _, table := range DatabaseSchema {
		if _, err := pool.Exec(ctx, CreateTableSQL(table)); err != nil {
			return fmt.Errorf("create table %s: %w", table.Name, err)
		}
	}
	_, err := pool.Exec(ctx, `CREATE UNIQUE INDEX IF NOT EXISTS events_organizer_slug ON events (organizer, slug)`)
	if err != nil {
		return fmt.Errorf("create index: %w", err)
	}
	return nil
}
