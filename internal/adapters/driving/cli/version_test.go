package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVersionCmd(t *testing.T) {
	_, _, cleanup := setupTestServices()
	defer cleanup()

	out, err := executeCommand("version")

	assert.NoError(t, err)
	assert.Contains(t, out, "hledej version")
}
