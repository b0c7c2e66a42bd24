// Package themes builds the go-theme manifest for the editor and resolves a
// selection into the renderer configuration the HTML surface consumes.
package themes

import (
	"fmt"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-paramedit/internal/appconfig"
	"github.com/goliatone/go-paramedit/pkg/renderers/vanilla"
)

const manifestVersion = "1.0.0"

// Manifest turns the configured theme into a go-theme manifest. Assets are
// served under assetPrefix.
func Manifest(cfg appconfig.ThemeConfig, assetPrefix string) *theme.Manifest {
	manifest := &theme.Manifest{
		Name:    strings.TrimSpace(cfg.Name),
		Version: manifestVersion,
		Tokens:  copyMap(cfg.Tokens),
		Assets: theme.Assets{
			Prefix: strings.TrimRight(assetPrefix, "/"),
			Files: map[string]string{
				vanilla.StylesheetName: vanilla.StylesheetName,
			},
		},
	}
	if len(cfg.Variants) > 0 {
		manifest.Variants = make(map[string]theme.Variant, len(cfg.Variants))
		for name, tokens := range cfg.Variants {
			manifest.Variants[name] = theme.Variant{Tokens: copyMap(tokens)}
		}
	}
	return manifest
}

type manifestRegistry interface {
	Register(manifest *theme.Manifest) error
}

// Selector picks manifests by theme name, falling back to configured
// defaults. Manifests are validated through a go-theme registry on add.
type Selector struct {
	registry       manifestRegistry
	manifests      map[string]*theme.Manifest
	defaultTheme   string
	defaultVariant string
}

var _ theme.ThemeSelector = (*Selector)(nil)

// NewSelector registers every manifest. The first one becomes the default
// theme unless defaultTheme names another.
func NewSelector(defaultTheme, defaultVariant string, manifests ...*theme.Manifest) (*Selector, error) {
	s := &Selector{
		registry:       theme.NewRegistry(),
		manifests:      make(map[string]*theme.Manifest, len(manifests)),
		defaultTheme:   strings.TrimSpace(defaultTheme),
		defaultVariant: strings.TrimSpace(defaultVariant),
	}
	for _, manifest := range manifests {
		if manifest == nil {
			continue
		}
		if err := s.registry.Register(manifest); err != nil {
			return nil, fmt.Errorf("themes: register %q: %w", manifest.Name, err)
		}
		s.manifests[manifest.Name] = manifest
		if s.defaultTheme == "" {
			s.defaultTheme = manifest.Name
		}
	}
	if _, ok := s.manifests[s.defaultTheme]; !ok {
		return nil, fmt.Errorf("themes: default theme %q is not registered", s.defaultTheme)
	}
	return s, nil
}

// Select resolves name and variant. Blank values use the defaults; a variant
// the manifest does not define selects the base tokens.
func (s *Selector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = s.defaultTheme
	}
	manifest, ok := s.manifests[name]
	if !ok {
		return nil, fmt.Errorf("themes: unknown theme %q", name)
	}
	variant = strings.TrimSpace(variant)
	if variant == "" {
		variant = s.defaultVariant
	}
	return &theme.Selection{Theme: name, Variant: variant, Manifest: manifest}, nil
}

// Variants lists the variant names of the default theme, sorted.
func (s *Selector) Variants() []string {
	manifest := s.manifests[s.defaultTheme]
	names := make([]string, 0, len(manifest.Variants))
	for name := range manifest.Variants {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RendererConfig merges base and variant values of a selection. Tokens become
// CSS custom properties named "--<token>".
func RendererConfig(sel *theme.Selection) *theme.RendererConfig {
	if sel == nil || sel.Manifest == nil {
		return nil
	}
	manifest := sel.Manifest
	variant, hasVariant := manifest.Variants[sel.Variant]

	tokens := copyMap(manifest.Tokens)
	partials := copyMap(manifest.Templates)
	files := copyMap(manifest.Assets.Files)
	prefix := manifest.Assets.Prefix
	if hasVariant {
		tokens = mergeMap(tokens, variant.Tokens)
		partials = mergeMap(partials, variant.Templates)
		files = mergeMap(files, variant.Assets.Files)
		if p := strings.TrimSpace(variant.Assets.Prefix); p != "" {
			prefix = p
		}
	}

	cssVars := make(map[string]string, len(tokens))
	for key, value := range tokens {
		cssVars["--"+strings.TrimPrefix(key, "--")] = value
	}

	prefix = strings.TrimRight(prefix, "/")
	return &theme.RendererConfig{
		Theme:    sel.Theme,
		Variant:  sel.Variant,
		Partials: partials,
		Tokens:   tokens,
		CSSVars:  cssVars,
		AssetURL: func(key string) string {
			file, ok := files[key]
			if !ok || file == "" {
				return ""
			}
			if strings.HasPrefix(file, "/") || strings.Contains(file, "://") {
				return file
			}
			return prefix + "/" + file
		},
	}
}

// Resolve selects and converts in one step.
func (s *Selector) Resolve(name, variant string) (*theme.RendererConfig, error) {
	sel, err := s.Select(name, variant)
	if err != nil {
		return nil, err
	}
	return RendererConfig(sel), nil
}

func copyMap(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for key, value := range in {
		out[key] = value
	}
	return out
}

func mergeMap(base, override map[string]string) map[string]string {
	if base == nil {
		base = make(map[string]string, len(override))
	}
	for key, value := range override {
		base[key] = value
	}
	return base
}
