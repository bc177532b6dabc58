package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/schollz/progressbar/v3"
)

// SeedResult reports the identities the demo data was created with.
type SeedResult struct {
	Pricebooks map[string]string
	Parents    map[string]string
}

type seedProduct struct {
	id       string
	name     string
	code     string
	desc     string
	family   string
	standard float64
	premium  float64 // 0 means not listed in the premium book
}

var seedProducts = []seedProduct{
	{"prod-001", "GenWatt Diesel 200kW", "GC1020", "Mid-range diesel generator", "Power", 25000, 23500},
	{"prod-002", "GenWatt Diesel 1000kW", "GC1060", "Industrial diesel generator", "Power", 100000, 92000},
	{"prod-003", "GenWatt Propane 100kW", "GC1040", "Entry propane generator", "Power", 15000, 0},
	{"prod-004", "SLA: Bronze", "SL9020", "Basic support agreement", "Support", 2000, 1800},
	{"prod-005", "SLA: Silver", "SL9040", "Priority support agreement", "Support", 5000, 4500},
	{"prod-006", "SLA: Gold", "SL9060", "Around-the-clock support", "Support", 12000, 10000},
	{"prod-007", "Installation: Standard", "IN7010", "On-site installation service", "Services", 3500, 3500},
	{"prod-008", "Installation: Industrial", "IN7030", "Heavy-site installation service", "Services", 8500, 8000},
	{"prod-009", "Annual Maintenance", "MA5010", "Yearly maintenance visit", "Services", 1200, 1100},
	{"prod-010", "Remote Monitoring", "RM3010", "Cloud fleet monitoring subscription", "Software", 900, 850},
	{"prod-011", "Fleet Analytics", "RM3030", "Usage analytics add-on", "Software", 1500, 0},
	{"prod-012", "Operator Training", "TR2010", "Two-day operator training", "Services", 1800, 1800},
}

type seedField struct {
	set      string
	apiName  string
	label    string
	typ      string
	position int
}

var seedFields = []seedField{
	{fieldSetProductTable, "Name", "Product Name", "STRING", 1},
	{fieldSetProductTable, "ProductCode", "Product Code", "STRING", 2},
	{fieldSetProductTable, "Family", "Product Family", "STRING", 3},

	{fieldSetFilter, "Name", "Product Name", "STRING", 1},
	{fieldSetFilter, "ProductCode", "Product Code", "STRING", 2},
	{fieldSetFilter, "Family", "Product Family", "STRING", 3},
	{fieldSetFilter, "Description", "Product Description", "STRING", 4},

	{fieldSetConfiguration, "Product2Id", "Product", "REFERENCE", 1},
	{fieldSetConfiguration, "Quantity", "Quantity", "DOUBLE", 2},
	{fieldSetConfiguration, "UnitPrice", "Sales Price", "CURRENCY", 3},
	{fieldSetConfiguration, "ListPrice", "List Price", "CURRENCY", 4},
	{fieldSetConfiguration, "ServiceDate", "Service Date", "DATE", 5},
	{fieldSetConfiguration, "Description", "Line Description", "STRING", 6},
}

// Seed loads the demo catalog, price books, field sets and one parent
// record per kind. Seeding is idempotent; existing rows are left alone.
func (s *SQLiteStore) Seed(ctx context.Context, out io.Writer) (*SeedResult, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if out == nil {
		out = io.Discard
	}

	books := map[string]string{
		"Standard Price Book": "pb-standard",
		"Premium Price Book":  "pb-premium",
	}
	if _, err := s.db.ExecContext(ctx,
		"INSERT OR IGNORE INTO pricebooks (id, name, is_standard) VALUES (?, ?, 1), (?, ?, 0)",
		"pb-standard", "Standard Price Book", "pb-premium", "Premium Price Book"); err != nil {
		return nil, fmt.Errorf("failed to seed price books: %w", err)
	}

	bar := progressbar.NewOptions(len(seedProducts),
		progressbar.OptionSetWriter(out),
		progressbar.OptionSetDescription("Seeding catalog"))
	for i, p := range seedProducts {
		if _, err := s.db.ExecContext(ctx,
			"INSERT OR IGNORE INTO products (id, name, product_code, description, family) VALUES (?, ?, ?, ?, ?)",
			p.id, p.name, p.code, p.desc, p.family); err != nil {
			return nil, fmt.Errorf("failed to seed product %s: %w", p.name, err)
		}
		if _, err := s.db.ExecContext(ctx,
			"INSERT OR IGNORE INTO pricebook_entries (id, pricebook_id, product_id, unit_price) VALUES (?, ?, ?, ?)",
			fmt.Sprintf("pbe-std-%03d", i+1), "pb-standard", p.id, p.standard); err != nil {
			return nil, fmt.Errorf("failed to seed standard entry for %s: %w", p.name, err)
		}
		if p.premium > 0 {
			if _, err := s.db.ExecContext(ctx,
				"INSERT OR IGNORE INTO pricebook_entries (id, pricebook_id, product_id, unit_price) VALUES (?, ?, ?, ?)",
				fmt.Sprintf("pbe-prm-%03d", i+1), "pb-premium", p.id, p.premium); err != nil {
				return nil, fmt.Errorf("failed to seed premium entry for %s: %w", p.name, err)
			}
		}
		_ = bar.Add(1)
	}

	parents := map[string]string{
		"Opportunity": "opp-0001",
		"Quote":       "quo-0001",
		"Order":       "ord-0001",
	}
	if _, err := s.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO parent_records (id, kind, name) VALUES
			('opp-0001', 'Opportunity', 'Acme Generators - Renewal'),
			('quo-0001', 'Quote', 'Acme Generators - Q2 Quote'),
			('ord-0001', 'Order', 'Acme Generators - Install Order')`); err != nil {
		return nil, fmt.Errorf("failed to seed parent records: %w", err)
	}

	for _, f := range seedFields {
		if _, err := s.db.ExecContext(ctx,
			"INSERT OR IGNORE INTO field_sets (set_name, api_name, label, field_type, position) VALUES (?, ?, ?, ?, ?)",
			f.set, f.apiName, f.label, f.typ, f.position); err != nil {
			return nil, fmt.Errorf("failed to seed field set %s/%s: %w", f.set, f.apiName, err)
		}
	}

	return &SeedResult{Pricebooks: books, Parents: parents}, nil
}
