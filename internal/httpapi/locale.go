package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/goliatone/go-paramedit/pkg/render"
)

const (
	// LangParam selects a display language for the current and later requests.
	LangParam = "lang"
	// LangCookieName stores the chosen display language.
	LangCookieName = "paramedit_lang"
)

// LocaleCatalog translates display text and matches requested locales to
// the loaded ones.
type LocaleCatalog interface {
	render.Translator
	Match(candidates ...string) string
	MatchAcceptLanguage(header string) string
}

// resolveLocale picks the display language from ?lang=, the language cookie,
// then Accept-Language. The bool reports whether the choice came from the
// query and should be persisted.
func resolveLocale(r *http.Request, catalog LocaleCatalog, fallback string) (string, bool) {
	if catalog == nil {
		return fallback, false
	}
	if lang := strings.TrimSpace(r.URL.Query().Get(LangParam)); lang != "" {
		return catalog.Match(lang), true
	}
	if cookie, err := r.Cookie(LangCookieName); err == nil && strings.TrimSpace(cookie.Value) != "" {
		return catalog.Match(cookie.Value), false
	}
	if accept := strings.TrimSpace(r.Header.Get("Accept-Language")); accept != "" {
		return catalog.MatchAcceptLanguage(accept), false
	}
	return catalog.Match(fallback), false
}

func setLanguageCookie(w http.ResponseWriter, path, locale string) {
	http.SetCookie(w, &http.Cookie{
		Name:     LangCookieName,
		Value:    locale,
		Path:     path,
		MaxAge:   int((365 * 24 * time.Hour).Seconds()),
		SameSite: http.SameSiteLaxMode,
	})
}
