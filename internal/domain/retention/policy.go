// Package retention describes how long soft-deleted rows are kept before the
// cleanup job purges them.
package retention

import (
	"fmt"
	"regexp"
	"time"

	"github.com/medstock/backend/internal/domain/shared"
)

var identifierRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Policy governs one soft-deletable table
type Policy struct {
	Table           string `json:"table" mapstructure:"table"`
	KeyColumn       string `json:"key_column" mapstructure:"key_column"`
	RetentionMonths int    `json:"retention_months" mapstructure:"retention_months"`
}

// DefaultPolicies returns the governed tables in processing order
func DefaultPolicies() []Policy {
	return []Policy{
		{Table: "users", KeyColumn: "id", RetentionMonths: 6},
		{Table: "vendors", KeyColumn: "id", RetentionMonths: 6},
		{Table: "items", KeyColumn: "id", RetentionMonths: 6},
		{Table: "purchase_orders", KeyColumn: "id", RetentionMonths: 6},
	}
}

// Validate checks that the policy names safe SQL identifiers and a positive
// retention period
func (p Policy) Validate() error {
	if !identifierRegex.MatchString(p.Table) {
		return shared.NewValidationError("table", fmt.Sprintf("invalid table identifier %q", p.Table))
	}
	if !identifierRegex.MatchString(p.KeyColumn) {
		return shared.NewValidationError("key_column", fmt.Sprintf("invalid key column identifier %q", p.KeyColumn))
	}
	if p.RetentionMonths <= 0 {
		return shared.NewValidationError("retention_months", "retention_months must be positive")
	}
	return nil
}

// Cutoff returns the instant before which deleted rows are eligible. Rows
// updated exactly at the cutoff are kept.
func (p Policy) Cutoff(now time.Time) time.Time {
	return now.AddDate(0, -p.RetentionMonths, 0)
}

// ValidatePolicies validates every policy and rejects duplicate tables
func ValidatePolicies(policies []Policy) error {
	seen := make(map[string]bool, len(policies))
	for _, p := range policies {
		if err := p.Validate(); err != nil {
			return err
		}
		if seen[p.Table] {
			return shared.NewValidationError("table", fmt.Sprintf("duplicate retention policy for %q", p.Table))
		}
		seen[p.Table] = true
	}
	return nil
}
