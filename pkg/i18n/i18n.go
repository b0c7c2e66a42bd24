// Package i18n loads the editor's display-text catalogs and resolves locales.
// Catalogs are YAML files registered into an x/text message catalog; the
// Catalog type satisfies render.Translator.
package i18n

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-paramedit/pkg/render"
)

// DefaultLocale is used when nothing else matches.
const DefaultLocale = "en"

// ErrMissingMessage reports a key absent from the matched locale.
var ErrMissingMessage = errors.New("i18n: missing message")

//go:embed locales/*.yaml
var embeddedLocales embed.FS

type catalogFile struct {
	Locale   string            `yaml:"locale"`
	Messages map[string]string `yaml:"messages"`
}

// Catalog holds every loaded locale.
type Catalog struct {
	builder  *catalog.Builder
	tags     []language.Tag
	names    []string
	messages map[string]map[string]string
	matcher  language.Matcher
	fallback int
}

var _ render.Translator = (*Catalog)(nil)

// Default loads the embedded catalogs.
func Default() (*Catalog, error) {
	return Load(embeddedLocales)
}

// Load reads every locales/*.yaml file in files. The default locale must be
// present.
func Load(files fs.FS) (*Catalog, error) {
	paths, err := fs.Glob(files, "locales/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("i18n: glob catalogs: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("i18n: no catalog files found")
	}
	sort.Strings(paths)

	c := &Catalog{
		builder:  catalog.NewBuilder(catalog.Fallback(language.Make(DefaultLocale))),
		messages: make(map[string]map[string]string),
		fallback: -1,
	}
	for _, path := range paths {
		data, err := fs.ReadFile(files, path)
		if err != nil {
			return nil, fmt.Errorf("i18n: read %s: %w", path, err)
		}
		var file catalogFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("i18n: parse %s: %w", path, err)
		}
		if err := c.add(path, file); err != nil {
			return nil, err
		}
	}
	if c.fallback < 0 {
		return nil, fmt.Errorf("i18n: default locale %q is not defined", DefaultLocale)
	}
	c.matcher = language.NewMatcher(c.tags)
	return c, nil
}

func (c *Catalog) add(path string, file catalogFile) error {
	locale := strings.TrimSpace(file.Locale)
	if locale == "" {
		return fmt.Errorf("i18n: %s: locale is required", path)
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return fmt.Errorf("i18n: %s: parse locale %q: %w", path, locale, err)
	}
	name := tag.String()
	if _, exists := c.messages[name]; exists {
		return fmt.Errorf("i18n: %s: locale %q defined twice", path, name)
	}

	messages := make(map[string]string, len(file.Messages))
	for key, value := range file.Messages {
		key = strings.TrimSpace(key)
		if key == "" {
			return fmt.Errorf("i18n: %s: message key cannot be blank", path)
		}
		if err := c.builder.SetString(tag, key, value); err != nil {
			return fmt.Errorf("i18n: %s: register %q: %w", path, key, err)
		}
		messages[key] = value
	}

	if name == DefaultLocale {
		c.fallback = len(c.tags)
	}
	c.tags = append(c.tags, tag)
	c.names = append(c.names, name)
	c.messages[name] = messages
	return nil
}

// Locales returns the loaded locale names in load order.
func (c *Catalog) Locales() []string {
	return append([]string(nil), c.names...)
}

// Match returns the loaded locale closest to any of the candidates, in
// priority order. Blank or unparseable candidates are skipped.
func (c *Catalog) Match(candidates ...string) string {
	var tags []language.Tag
	for _, candidate := range candidates {
		candidate = strings.TrimSpace(candidate)
		if candidate == "" {
			continue
		}
		tag, err := language.Parse(candidate)
		if err != nil {
			continue
		}
		tags = append(tags, tag)
	}
	return c.matchTags(tags)
}

// MatchAcceptLanguage resolves an Accept-Language header value.
func (c *Catalog) MatchAcceptLanguage(header string) string {
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil {
		return c.names[c.fallback]
	}
	return c.matchTags(tags)
}

// Supports reports whether locale parses to a loaded locale exactly.
func (c *Catalog) Supports(locale string) bool {
	tag, err := language.Parse(strings.TrimSpace(locale))
	if err != nil {
		return false
	}
	_, ok := c.messages[tag.String()]
	return ok
}

func (c *Catalog) matchTags(tags []language.Tag) string {
	if len(tags) == 0 {
		return c.names[c.fallback]
	}
	_, index, confidence := c.matcher.Match(tags...)
	if confidence == language.No || index < 0 || index >= len(c.names) {
		return c.names[c.fallback]
	}
	return c.names[index]
}

// Translate formats key for the closest loaded locale. Keys missing from that
// locale return ErrMissingMessage so callers can fall back.
func (c *Catalog) Translate(locale, key string, args ...any) (string, error) {
	name := c.Match(locale)
	if _, ok := c.messages[name][key]; !ok {
		return "", fmt.Errorf("%w: %s/%s", ErrMissingMessage, name, key)
	}
	printer := message.NewPrinter(language.MustParse(name), message.Catalog(c.builder))
	return printer.Sprintf(key, args...), nil
}
