package report

import (
	"testing"

	"github.com/medstock/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
)

func TestParseType(t *testing.T) {
	for _, s := range []string{"inventory", "pending-pos", "vendor-performance"} {
		got, err := ParseType(s)
		assert.NoError(t, err)
		assert.Equal(t, Type(s), got)
	}

	_, err := ParseType("sales")
	assert.Equal(t, shared.CodeValidation, shared.CodeOf(err))
}
