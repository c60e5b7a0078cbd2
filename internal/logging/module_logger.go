package logging

import (
	"context"

	"github.com/amara-beauty/storefront-cms/pkg/interfaces"
)

const (
	rootModule       = "storefront"
	catalogModule    = "storefront.catalog"
	blogModule       = "storefront.blog"
	pagesModule      = "storefront.pages"
	navigationModule = "storefront.navigation"
	settingsModule   = "storefront.settings"
	mediaModule      = "storefront.media"
	httpModule       = "storefront.http"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The returned logger attaches
// the module identifier as structured context so downstream entries can be
// filtered predictably.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// CatalogLogger returns the logger namespace reserved for catalog services.
func CatalogLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, catalogModule)
}

// BlogLogger returns the logger namespace reserved for blog services.
func BlogLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, blogModule)
}

// PagesLogger returns the logger namespace reserved for page services.
func PagesLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, pagesModule)
}

// NavigationLogger returns the logger namespace reserved for navigation services.
func NavigationLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, navigationModule)
}

// SettingsLogger returns the logger namespace reserved for site settings.
func SettingsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, settingsModule)
}

// MediaLogger returns the logger namespace reserved for the media proxy.
func MediaLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, mediaModule)
}

// HTTPLogger returns the logger namespace reserved for HTTP handlers.
func HTTPLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, httpModule)
}

// NoOp returns a logger that drops every log entry. It satisfies the Logger
// contract so services can safely operate when logging is disabled.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
