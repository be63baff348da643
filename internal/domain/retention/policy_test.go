package retention

import (
	"testing"
	"time"

	"github.com/medstock/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
)

func TestDefaultPolicies(t *testing.T) {
	policies := DefaultPolicies()

	assert.NoError(t, ValidatePolicies(policies))
	tables := make([]string, 0, len(policies))
	for _, p := range policies {
		tables = append(tables, p.Table)
		assert.Equal(t, 6, p.RetentionMonths)
	}
	assert.Equal(t, []string{"users", "vendors", "items", "purchase_orders"}, tables)
}

func TestPolicy_Validate(t *testing.T) {
	tests := []struct {
		name   string
		policy Policy
		field  string
	}{
		{"injection in table", Policy{Table: "users; DROP TABLE x", KeyColumn: "id", RetentionMonths: 6}, "table"},
		{"empty column", Policy{Table: "users", KeyColumn: "", RetentionMonths: 6}, "key_column"},
		{"zero retention", Policy{Table: "users", KeyColumn: "id", RetentionMonths: 0}, "retention_months"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.policy.Validate(), shared.NewValidationError(tt.field, ""))
		})
	}
}

func TestValidatePolicies_Duplicate(t *testing.T) {
	err := ValidatePolicies([]Policy{
		{Table: "users", KeyColumn: "id", RetentionMonths: 6},
		{Table: "users", KeyColumn: "id", RetentionMonths: 12},
	})
	assert.Error(t, err)
}

func TestPolicy_Cutoff(t *testing.T) {
	now := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	p := Policy{Table: "vendors", KeyColumn: "id", RetentionMonths: 6}

	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), p.Cutoff(now))
}

func TestManifest_Add(t *testing.T) {
	m := NewManifest(TriggerManual, false, time.Now())
	m.Add(TableResult{Table: "users", Candidates: 2, Purged: 1, Failed: 1})
	m.Add(TableResult{Table: "items", Error: "query failed"})

	assert.Equal(t, 2, m.Totals.Candidates)
	assert.Equal(t, 1, m.Totals.Purged)
	assert.Equal(t, 1, m.Totals.TableFails)
	assert.True(t, m.PartiallyFailed())
}
