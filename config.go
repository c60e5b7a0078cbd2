package storefront

import "github.com/amara-beauty/storefront-cms/internal/runtimeconfig"

var (
	ErrDefaultLocaleUnsupported = runtimeconfig.ErrDefaultLocaleUnsupported
	ErrDatabaseDriverUnknown    = runtimeconfig.ErrDatabaseDriverUnknown
	ErrDatabaseDSNRequired      = runtimeconfig.ErrDatabaseDSNRequired
	ErrStorageZoneRequired      = runtimeconfig.ErrStorageZoneRequired
	ErrStorageAccessKeyRequired = runtimeconfig.ErrStorageAccessKeyRequired
	ErrStoragePullZoneRequired  = runtimeconfig.ErrStoragePullZoneRequired
	ErrImportDirRequired        = runtimeconfig.ErrImportDirRequired
	ErrLoggingProviderRequired  = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown   = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid      = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid     = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config           = runtimeconfig.Config
	DatabaseConfig   = runtimeconfig.DatabaseConfig
	StorageConfig    = runtimeconfig.StorageConfig
	CacheConfig      = runtimeconfig.CacheConfig
	NavigationConfig = runtimeconfig.NavigationConfig
	ImportConfig     = runtimeconfig.ImportConfig
	Features         = runtimeconfig.Features
	LoggingConfig    = runtimeconfig.LoggingConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
