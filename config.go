package cms

import "github.com/sumeshkk123/cloud-sub008/internal/runtimeconfig"

var (
	ErrDefaultLocaleRequired       = runtimeconfig.ErrDefaultLocaleRequired
	ErrDefaultLocaleNotConfigured  = runtimeconfig.ErrDefaultLocaleNotConfigured
	ErrStorageProviderUnknown      = runtimeconfig.ErrStorageProviderUnknown
	ErrStorageDSNRequired          = runtimeconfig.ErrStorageDSNRequired
	ErrCacheTTLInvalid             = runtimeconfig.ErrCacheTTLInvalid
	ErrAdminBasePathInvalid        = runtimeconfig.ErrAdminBasePathInvalid
	ErrTranslationProviderUnknown  = runtimeconfig.ErrTranslationProviderUnknown
	ErrTranslationEndpointRequired = runtimeconfig.ErrTranslationEndpointRequired
	ErrTranslationRateLimitInvalid = runtimeconfig.ErrTranslationRateLimitInvalid
	ErrSeedDirRequired             = runtimeconfig.ErrSeedDirRequired
	ErrPublicAPIRequiresIconRender = runtimeconfig.ErrPublicAPIRequiresIconRender
	ErrLoggingProviderRequired     = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown      = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid         = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid        = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config            = runtimeconfig.Config
	I18NConfig        = runtimeconfig.I18NConfig
	StorageConfig     = runtimeconfig.StorageConfig
	CacheConfig       = runtimeconfig.CacheConfig
	AdminConfig       = runtimeconfig.AdminConfig
	TranslationConfig = runtimeconfig.TranslationConfig
	IconsConfig       = runtimeconfig.IconsConfig
	SeedConfig        = runtimeconfig.SeedConfig
	Features          = runtimeconfig.Features
	LoggingConfig     = runtimeconfig.LoggingConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
