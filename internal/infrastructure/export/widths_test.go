package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestColumnWidths(t *testing.T) {
	assert.Equal(t, []int{3, 3, 2, 2, 2}, columnWidths(5))
	assert.Equal(t, []int{12}, columnWidths(1))
	assert.Len(t, columnWidths(20), gridSize)
	assert.Nil(t, columnWidths(0))
}
