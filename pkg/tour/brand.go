package tour

import "strings"

// Placeholders substituted in page text.
const (
	BrandPlaceholder  = "@BRAND@"
	VendorPlaceholder = "@VENDOR@"
)

// Branding holds the product naming substituted into page text.
type Branding struct {
	Brand  string
	Vendor string
}

// Apply replaces every @BRAND@ and @VENDOR@ token in s.
func (b Branding) Apply(s string) string {
	if !strings.Contains(s, "@") {
		return s
	}
	return strings.NewReplacer(
		BrandPlaceholder, b.Brand,
		VendorPlaceholder, b.Vendor,
	).Replace(s)
}
