package fn

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestT(t *testing.T) {
	assert.Equal(t, "yes", T(true, "yes", "no"))
	assert.Equal(t, 2, T(false, 1, 2))
}
