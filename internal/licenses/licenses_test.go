package licenses

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLicenseText_NotEmpty(t *testing.T) {
	assert.NotEmpty(t, LicenseText())
	assert.NotContains(t, LicenseText(), "\n\n\n", "trailing newlines should be trimmed")
}

func TestThirdPartyText_ListsKnownDependency(t *testing.T) {
	assert.Contains(t, ThirdPartyText(), "github.com/spf13/cobra")
}
