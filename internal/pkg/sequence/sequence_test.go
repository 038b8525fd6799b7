package sequence_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"estoqueti/internal/pkg/sequence"
)

func TestNext_RequestIDs(t *testing.T) {
	assert.Equal(t, "ID_00003", sequence.Next("ID_", []string{"ID_00001", "ID_00002"}, 5))
	assert.Equal(t, "ID_00001", sequence.Next("ID_", nil, 5))
}

func TestNext_UsesMaximumNotCount(t *testing.T) {
	assert.Equal(t, "ID_00011", sequence.Next("ID_", []string{"ID_00010", "ID_00002"}, 5))
}

func TestNext_DATCodes(t *testing.T) {
	existing := []string{"DAT-001", "DAT-010", "DAT-007"}
	assert.Equal(t, "DAT-011", sequence.Next("DAT-", existing, 3))
}

func TestNext_IgnoresMalformed(t *testing.T) {
	assert.Equal(t, "DAT-001", sequence.Next("DAT-", []string{"sem-numero", ""}, 3))
}

func TestNext_WidthOverflow(t *testing.T) {
	assert.Equal(t, "DAT-1000", sequence.Next("DAT-", []string{"DAT-999"}, 3))
}
