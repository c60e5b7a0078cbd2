package navigation

import (
	"context"
	"fmt"
	"strings"
	"sync"

	urlkit "github.com/goliatone/go-urlkit"

	"github.com/amara-beauty/storefront-cms/locales"
)

// routePrefix marks an href that names a urlkit route instead of a literal
// path, e.g. "route:product.detail?slug=mela-serum".
const routePrefix = "route:"

// HrefResolver turns a stored item href into the locale-aware path served
// to the storefront.
type HrefResolver interface {
	Resolve(ctx context.Context, locale string, item *Item) (string, error)
}

// PrefixResolver localizes literal hrefs by applying the locale path
// prefix. External links, anchors, and already-absolute URLs pass through
// untouched.
type PrefixResolver struct{}

// NewPrefixResolver creates the default href resolver.
func NewPrefixResolver() *PrefixResolver {
	return &PrefixResolver{}
}

func (r *PrefixResolver) Resolve(_ context.Context, locale string, item *Item) (string, error) {
	if item == nil {
		return "", nil
	}
	return localizePath(locale, item.Href), nil
}

// URLKitResolverOptions configures the route-manager backed resolver.
type URLKitResolverOptions struct {
	Manager      *urlkit.RouteManager
	LocaleGroups map[string]string
}

// URLKitResolver resolves "route:" hrefs through a go-urlkit RouteManager
// with one route group per locale, and falls back to prefix localization
// for literal hrefs.
type URLKitResolver struct {
	manager      *urlkit.RouteManager
	localeGroups map[string]string

	mu         sync.RWMutex
	groupCache map[string]*urlkit.Group
}

// NewURLKitResolver constructs a resolver backed by go-urlkit.
func NewURLKitResolver(opts URLKitResolverOptions) *URLKitResolver {
	return &URLKitResolver{
		manager:      opts.Manager,
		localeGroups: opts.LocaleGroups,
		groupCache:   map[string]*urlkit.Group{},
	}
}

func (r *URLKitResolver) Resolve(_ context.Context, locale string, item *Item) (string, error) {
	if item == nil {
		return "", nil
	}
	href := strings.TrimSpace(item.Href)
	if !strings.HasPrefix(href, routePrefix) {
		return localizePath(locale, href), nil
	}
	if r.manager == nil {
		return "", fmt.Errorf("navigation: route manager not configured")
	}

	route, params := splitRouteRef(strings.TrimPrefix(href, routePrefix))
	if route == "" {
		return "", fmt.Errorf("navigation: empty route reference in %q", item.Href)
	}

	group, err := r.groupForLocale(locale)
	if err != nil {
		return "", err
	}
	builder, err := safeBuilder(group, route)
	if err != nil {
		return "", err
	}
	for key, value := range params {
		builder.WithParam(key, value)
	}
	return builder.Build()
}

func (r *URLKitResolver) groupForLocale(locale string) (*urlkit.Group, error) {
	name := locales.Normalize(locale)
	if r.localeGroups != nil {
		if mapped, ok := r.localeGroups[name]; ok && strings.TrimSpace(mapped) != "" {
			name = strings.TrimSpace(mapped)
		}
	}

	r.mu.RLock()
	group, ok := r.groupCache[name]
	r.mu.RUnlock()
	if ok {
		return group, nil
	}

	group, err := lookupGroup(r.manager, name)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	r.groupCache[name] = group
	r.mu.Unlock()
	return group, nil
}

// localizePath applies the locale prefix to site-relative paths. The
// default locale stays unprefixed.
func localizePath(locale, href string) string {
	href = strings.TrimSpace(href)
	if href == "" || !strings.HasPrefix(href, "/") {
		return href
	}
	prefix := locales.PathPrefix(locale)
	if prefix == "" {
		return href
	}
	if href == prefix || strings.HasPrefix(href, prefix+"/") {
		return href
	}
	if href == "/" {
		return prefix
	}
	return prefix + href
}

// splitRouteRef parses "name?k=v&k2=v2" into the route name and its params.
func splitRouteRef(ref string) (string, map[string]any) {
	name, rawParams, found := strings.Cut(ref, "?")
	params := map[string]any{}
	if found {
		for _, pair := range strings.Split(rawParams, "&") {
			key, value, ok := strings.Cut(pair, "=")
			if !ok || key == "" {
				continue
			}
			params[key] = value
		}
	}
	return strings.TrimSpace(name), params
}

func safeBuilder(group *urlkit.Group, route string) (builder *urlkit.Builder, err error) {
	if group == nil {
		return nil, fmt.Errorf("navigation: urlkit group is nil")
	}
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("navigation: urlkit builder panic: %v", rec)
		}
	}()
	builder = group.Builder(route)
	return builder, err
}

func lookupGroup(manager *urlkit.RouteManager, name string) (group *urlkit.Group, err error) {
	if manager == nil {
		return nil, fmt.Errorf("navigation: route manager not configured")
	}
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("navigation: route group %q not found", name)
		}
	}()
	group = manager.Group(name)
	return group, err
}
