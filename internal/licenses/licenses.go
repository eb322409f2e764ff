package licenses

import (
	_ "embed"
	"strings"
)

//go:embed assets/LICENSE
var licenseText string

//go:embed assets/THIRD_PARTY_NOTICES
var thirdPartyText string

// LicenseText returns this module's own license text.
func LicenseText() string {
	return strings.TrimRight(licenseText, "\n")
}

// ThirdPartyText returns the bundled third-party notices for this
// module's dependency tree.
func ThirdPartyText() string {
	return strings.TrimRight(thirdPartyText, "\n")
}
