package content

import "github.com/microcosm-cc/bluemonday"

// SanitizeHTML applies sanitization rules to HTML input, stripping
// unsupported tags and attributes.
func SanitizeHTML() TransformerFunc {
	htmlSanitizer := sanitizer()
	return func(input []byte) ([]byte, error) {
		return htmlSanitizer.SanitizeBytes(input), nil
	}
}

// sanitizer is a modification of [bluemonday.UGCPolicy].
// Differences:
//
//   - Target _blank and noreferrer for links
//   - Images allowed (post bodies embed their own media)
func sanitizer() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()
	policy.RequireNoReferrerOnLinks(true)
	policy.AddTargetBlankToFullyQualifiedLinks(true)
	policy.AllowAttrs("id").OnElements("h1", "h2", "h3", "h4", "h5", "h6")
	return policy
}
