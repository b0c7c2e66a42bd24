package vanilla

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	helpPolicyOnce sync.Once
	helpPolicy     *bluemonday.Policy
)

// sanitizeHelpText keeps inline emphasis in translated help text and drops
// every other element. Locale files may come from disk, so their text is not
// trusted. The result is already HTML-escaped.
func sanitizeHelpText(raw string) string {
	helpPolicyOnce.Do(func() {
		helpPolicy = bluemonday.NewPolicy()
		helpPolicy.AllowElements("b", "strong", "em", "i", "code")
	})
	return strings.TrimSpace(helpPolicy.Sanitize(raw))
}
