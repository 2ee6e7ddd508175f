package dialect

import "strings"

// AttributePrefix namespaces every attribute this package creates in the
// viewer.
const AttributePrefix = "jv_"

// AttributeName converts a feature name into a safe viewer attribute name.
// Characters outside [A-Za-z0-9_] become '_'. Names ending in "color" get a
// trailing '_' since the viewer treats such attributes as colours.
func AttributeName(feature string) string {
	var sb strings.Builder
	sb.Grow(len(AttributePrefix) + len(feature) + 1)
	sb.WriteString(AttributePrefix)
	for _, r := range feature {
		if isAttributeRune(r) {
			sb.WriteRune(r)
		} else {
			sb.WriteByte('_')
		}
	}
	name := sb.String()
	if strings.HasSuffix(name, "color") {
		name += "_"
	}
	return name
}

func isAttributeRune(r rune) bool {
	return r == '_' ||
		(r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z') ||
		(r >= '0' && r <= '9')
}

// QuoteValue wraps value in single quotes, escaping embedded quotes as a
// numeric character reference.
func QuoteValue(value string) string {
	return "'" + strings.ReplaceAll(value, "'", "&#39;") + "'"
}
