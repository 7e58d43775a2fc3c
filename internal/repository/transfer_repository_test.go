package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"garasiku/internal/domain"
)

func TestOpenStatuses(t *testing.T) {
	statuses := openStatuses()

	assert.Len(t, statuses, len(domain.OpenTransferStatuses))
	for i, s := range domain.OpenTransferStatuses {
		assert.Equal(t, string(s), statuses[i])
		assert.False(t, s.Terminal(), "open status %s must not be terminal", s)
	}
}
