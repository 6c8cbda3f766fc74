package logging

import (
	"context"

	"github.com/agrisite/cropsite/pkg/interfaces"
)

const (
	rootModule      = "site"
	catalogModule   = "site.catalog"
	storeModule     = "site.store"
	i18nModule      = "site.i18n"
	staticgenModule = "site.staticgen"
	httpModule      = "site.http"
	seedModule      = "site.seed"
	studioModule    = "site.studio"
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

// CatalogLogger returns the logger namespace reserved for the catalog query layer.
func CatalogLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, catalogModule)
}

// StoreLogger returns the logger namespace reserved for the document store client.
func StoreLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, storeModule)
}

// I18NLogger returns the logger namespace reserved for translation resolution.
func I18NLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, i18nModule)
}

// StaticGenLogger returns the logger namespace reserved for pre-render runs.
func StaticGenLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, staticgenModule)
}

// HTTPLogger returns the logger namespace reserved for the public route surface.
func HTTPLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, httpModule)
}

// SeedLogger returns the logger namespace reserved for markdown import runs.
func SeedLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, seedModule)
}

// StudioLogger returns the logger namespace reserved for authoring-side helpers.
func StudioLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, studioModule)
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

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
