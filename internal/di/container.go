package di

import (
	"context"
	"fmt"
	"time"

	repocache "github.com/goliatone/go-repository-cache/cache"
	urlkit "github.com/goliatone/go-urlkit"
	"github.com/uptrace/bun"

	blogsvc "github.com/amara-beauty/storefront-cms/internal/blog"
	catalogsvc "github.com/amara-beauty/storefront-cms/internal/catalog"
	localessvc "github.com/amara-beauty/storefront-cms/internal/locales"
	"github.com/amara-beauty/storefront-cms/internal/logging"
	"github.com/amara-beauty/storefront-cms/internal/logging/gologger"
	mediasvc "github.com/amara-beauty/storefront-cms/internal/media"
	"github.com/amara-beauty/storefront-cms/internal/media/bunny"
	navigationsvc "github.com/amara-beauty/storefront-cms/internal/navigation"
	pagessvc "github.com/amara-beauty/storefront-cms/internal/pages"
	"github.com/amara-beauty/storefront-cms/internal/runtimeconfig"
	settingssvc "github.com/amara-beauty/storefront-cms/internal/settings"
	"github.com/amara-beauty/storefront-cms/pkg/interfaces"
)

// Container wires module dependencies. Without a bun.DB it runs entirely on
// in-memory repositories, which is what the unit tests and demo binaries use.
type Container struct {
	Config runtimeconfig.Config

	bunDB          *bun.DB
	storage        interfaces.StorageProvider
	auth           interfaces.AuthService
	loggerProvider interfaces.LoggerProvider

	cacheTTL      time.Duration
	cacheService  repocache.CacheService
	keySerializer repocache.KeySerializer

	localeRepo   localessvc.Repository
	productRepo  catalogsvc.ProductRepository
	categoryRepo catalogsvc.CategoryRepository
	postRepo     blogsvc.PostRepository
	pageRepo     pagessvc.PageRepository
	staticRepo   pagessvc.StaticPageRepository
	navRepo      navigationsvc.ItemRepository
	settingsRepo settingssvc.Repository
	assetRepo    mediasvc.AssetRepository
	folderRepo   mediasvc.FolderRepository

	routeManager *urlkit.RouteManager
	hrefResolver navigationsvc.HrefResolver

	localeSvc   localessvc.Service
	catalogSvc  catalogsvc.Service
	blogSvc     blogsvc.Service
	pageSvc     pagessvc.Service
	staticSvc   pagessvc.StaticService
	navSvc      navigationsvc.Service
	settingsSvc settingssvc.Service
	mediaSvc    mediasvc.Service
	importer    *blogsvc.Importer
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithBunDB binds persistent repositories to the provided database.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
	}
}

// WithStorage overrides the CDN storage provider.
func WithStorage(sp interfaces.StorageProvider) Option {
	return func(c *Container) {
		c.storage = sp
	}
}

// WithAuth overrides the admin token verifier.
func WithAuth(ap interfaces.AuthService) Option {
	return func(c *Container) {
		c.auth = ap
	}
}

// WithCache overrides the repository cache service and key serializer.
func WithCache(service repocache.CacheService, serializer repocache.KeySerializer) Option {
	return func(c *Container) {
		c.cacheService = service
		c.keySerializer = serializer
	}
}

// WithLoggerProvider overrides the logger provider used for module loggers.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithHrefResolver overrides the navigation href resolver.
func WithHrefResolver(resolver navigationsvc.HrefResolver) Option {
	return func(c *Container) {
		c.hrefResolver = resolver
	}
}

// WithCatalogService overrides the default catalog service binding.
func WithCatalogService(svc catalogsvc.Service) Option {
	return func(c *Container) {
		c.catalogSvc = svc
	}
}

// WithPageService overrides the default page service binding.
func WithPageService(svc pagessvc.Service) Option {
	return func(c *Container) {
		c.pageSvc = svc
	}
}

// WithNavigationService overrides the default navigation service binding.
func WithNavigationService(svc navigationsvc.Service) Option {
	return func(c *Container) {
		c.navSvc = svc
	}
}

// NewContainer creates a container with the provided configuration.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cacheTTL := cfg.Cache.DefaultTTL
	if cacheTTL <= 0 {
		cacheTTL = time.Minute
	}

	c := &Container{
		Config:       cfg,
		cacheTTL:     cacheTTL,
		localeRepo:   localessvc.NewMemoryRepository(),
		productRepo:  catalogsvc.NewMemoryProductRepository(),
		categoryRepo: catalogsvc.NewMemoryCategoryRepository(),
		postRepo:     blogsvc.NewMemoryPostRepository(),
		pageRepo:     pagessvc.NewMemoryPageRepository(),
		staticRepo:   pagessvc.NewMemoryStaticPageRepository(),
		navRepo:      navigationsvc.NewMemoryItemRepository(),
		settingsRepo: settingssvc.NewMemoryRepository(),
		assetRepo:    mediasvc.NewMemoryAssetRepository(),
		folderRepo:   mediasvc.NewMemoryFolderRepository(),
	}

	for _, opt := range opts {
		opt(c)
	}

	if err := c.configureLogging(); err != nil {
		return nil, err
	}
	c.configureCacheDefaults()
	c.configureRepositories()
	if err := c.configureStorage(); err != nil {
		return nil, err
	}
	c.configureNavigation()
	c.configureServices()

	if err := c.localeSvc.EnsureSupported(context.Background()); err != nil {
		return nil, fmt.Errorf("di: seed locales: %w", err)
	}

	return c, nil
}

func (c *Container) configureLogging() error {
	if c.loggerProvider != nil || !c.Config.Features.Logger {
		return nil
	}

	switch c.Config.Logging.Provider {
	case "gologger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     c.Config.Logging.Level,
			Format:    c.Config.Logging.Format,
			AddSource: c.Config.Logging.AddSource,
		})
		if err != nil {
			return err
		}
		c.loggerProvider = provider
	default:
		// console provider is the zero-value path, module loggers fall
		// back to no-op until the host injects one
	}
	return nil
}

func (c *Container) configureCacheDefaults() {
	if !c.Config.Cache.Enabled {
		return
	}

	if c.cacheService == nil {
		cfg := repocache.DefaultConfig()
		if c.cacheTTL > 0 {
			cfg.TTL = c.cacheTTL
		}
		service, err := repocache.NewCacheService(cfg)
		if err == nil {
			c.cacheService = service
		}
	}

	if c.cacheService != nil && c.keySerializer == nil {
		c.keySerializer = repocache.NewDefaultKeySerializer()
	}
}

func (c *Container) configureRepositories() {
	if c.bunDB == nil {
		return
	}

	c.localeRepo = localessvc.NewBunRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
	c.productRepo = catalogsvc.NewBunProductRepository(c.bunDB)
	c.categoryRepo = catalogsvc.NewBunCategoryRepository(c.bunDB)
	c.postRepo = blogsvc.NewBunPostRepository(c.bunDB)
	c.pageRepo = pagessvc.NewBunPageRepository(c.bunDB)
	c.staticRepo = pagessvc.NewBunStaticPageRepository(c.bunDB)
	c.navRepo = navigationsvc.NewBunItemRepository(c.bunDB)
	c.settingsRepo = settingssvc.NewBunRepository(c.bunDB)
	c.assetRepo = mediasvc.NewBunAssetRepository(c.bunDB)
	c.folderRepo = mediasvc.NewBunFolderRepository(c.bunDB)
}

func (c *Container) configureStorage() error {
	if c.storage != nil {
		return nil
	}
	if !c.Config.Features.MediaLibrary {
		c.storage = noopStorage{}
		return nil
	}

	client, err := bunny.NewClient(bunny.Config{
		StorageEndpoint: c.Config.Storage.Endpoint,
		StorageZone:     c.Config.Storage.Zone,
		AccessKey:       c.Config.Storage.AccessKey,
		PullZoneURL:     c.Config.Storage.PullZoneURL,
		Timeout:         c.Config.Storage.Timeout,
	})
	if err != nil {
		return err
	}
	c.storage = client
	return nil
}

func (c *Container) configureNavigation() {
	if c.hrefResolver != nil {
		return
	}

	navCfg := c.Config.Navigation
	if navCfg.RouteConfig == nil {
		c.hrefResolver = navigationsvc.NewPrefixResolver()
		return
	}

	manager := urlkit.NewRouteManager(navCfg.RouteConfig)
	c.routeManager = manager
	c.hrefResolver = navigationsvc.NewURLKitResolver(navigationsvc.URLKitResolverOptions{
		Manager:      manager,
		LocaleGroups: navCfg.LocaleGroups,
	})
}

func (c *Container) configureServices() {
	provider := c.loggerProvider

	c.localeSvc = localessvc.NewService(c.localeRepo)

	if c.catalogSvc == nil {
		c.catalogSvc = catalogsvc.NewService(c.productRepo, c.categoryRepo, c.localeRepo,
			catalogsvc.WithLogger(logging.CatalogLogger(provider)))
	}
	if c.blogSvc == nil {
		c.blogSvc = blogsvc.NewService(c.postRepo, c.localeRepo,
			blogsvc.WithLogger(logging.BlogLogger(provider)))
	}
	if c.pageSvc == nil {
		c.pageSvc = pagessvc.NewService(c.pageRepo, c.localeRepo,
			pagessvc.WithLogger(logging.PagesLogger(provider)))
	}
	if c.staticSvc == nil {
		c.staticSvc = pagessvc.NewStaticService(c.staticRepo, c.localeRepo,
			pagessvc.WithStaticLogger(logging.PagesLogger(provider)))
	}
	if c.navSvc == nil {
		c.navSvc = navigationsvc.NewService(c.navRepo, c.localeRepo,
			navigationsvc.WithLogger(logging.NavigationLogger(provider)),
			navigationsvc.WithHrefResolver(c.hrefResolver))
	}
	if c.settingsSvc == nil {
		c.settingsSvc = settingssvc.NewService(c.settingsRepo,
			settingssvc.WithLogger(logging.SettingsLogger(provider)))
	}
	if c.mediaSvc == nil {
		c.mediaSvc = mediasvc.NewService(c.assetRepo, c.folderRepo, c.storage,
			mediasvc.WithLogger(logging.MediaLogger(provider)))
	}
	if c.importer == nil {
		c.importer = blogsvc.NewImporter(c.blogSvc, c.postRepo,
			blogsvc.WithImporterLogger(logging.BlogLogger(provider)))
	}
}

// LoggerProvider exposes the configured logger provider, possibly nil.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// StorageProvider exposes the configured storage implementation.
func (c *Container) StorageProvider() interfaces.StorageProvider {
	return c.storage
}

// AuthService exposes the configured auth service, possibly nil when the
// host has not wired one.
func (c *Container) AuthService() interfaces.AuthService {
	return c.auth
}

// RouteManager exposes the urlkit route manager when navigation routes are
// configured.
func (c *Container) RouteManager() *urlkit.RouteManager {
	return c.routeManager
}

// LocaleService returns the configured locale service.
func (c *Container) LocaleService() localessvc.Service {
	return c.localeSvc
}

// CatalogService returns the configured catalog service.
func (c *Container) CatalogService() catalogsvc.Service {
	return c.catalogSvc
}

// BlogService returns the configured blog service.
func (c *Container) BlogService() blogsvc.Service {
	return c.blogSvc
}

// BlogImporter returns the configured markdown importer.
func (c *Container) BlogImporter() *blogsvc.Importer {
	return c.importer
}

// PageService returns the configured page service.
func (c *Container) PageService() pagessvc.Service {
	return c.pageSvc
}

// StaticPageService returns the configured static page service.
func (c *Container) StaticPageService() pagessvc.StaticService {
	return c.staticSvc
}

// NavigationService returns the configured navigation service.
func (c *Container) NavigationService() navigationsvc.Service {
	return c.navSvc
}

// SettingsService returns the configured settings service.
func (c *Container) SettingsService() settingssvc.Service {
	return c.settingsSvc
}

// MediaService returns the configured media service.
func (c *Container) MediaService() mediasvc.Service {
	return c.mediaSvc
}
