package factory

import (
	"time"

	"github.com/hwpaige/launchboard/api"
	"github.com/hwpaige/launchboard/cache"
	"github.com/hwpaige/launchboard/config"
	"github.com/hwpaige/launchboard/fetcher"
	"github.com/hwpaige/launchboard/normalizer"
	"github.com/hwpaige/launchboard/scheduler"
	"github.com/hwpaige/launchboard/service"
	"github.com/hwpaige/launchboard/storage"
	"github.com/hwpaige/launchboard/weather"
)

type componentsHandler struct {
	archive   service.Archive
	service   api.Service
	server    Server
	scheduler Scheduler
}

// NewComponentsHandler creates a new components handler wiring the whole
// fetch -> normalize -> cache -> archive -> aggregate -> serve pipeline
func NewComponentsHandler(
	serviceKeyApi string,
	cfg config.Config,
) (*componentsHandler, error) {
	launchFetcher := fetcher.NewHTTPFetcher(
		cfg.Upstream.BaseURL,
		cfg.Upstream.PageSize,
		time.Duration(cfg.Upstream.RequestTimeoutInSeconds)*time.Second,
	)

	launchCache, err := cache.NewLaunchCache(cache.ArgsLaunchCache{
		Fetcher:    launchFetcher,
		Normalizer: normalizer.NewNormalizer(),
		TTL:        time.Duration(cfg.Cache.TTLInSeconds) * time.Second,
		Limit:      cfg.Upstream.Limit,
		DataDir:    cfg.Cache.DataDir,
	})
	if err != nil {
		return nil, err
	}

	archive, err := storage.NewSQLiteArchive(cfg.Archive.DBPath, cfg.Archive.RetentionSeconds)
	if err != nil {
		return nil, err
	}

	launchService, err := service.NewLaunchService(service.ArgsLaunchService{
		Cache:    launchCache,
		Archive:  archive,
		Vehicles: cfg.VehicleCategories,
	})
	if err != nil {
		_ = archive.Close()
		return nil, err
	}

	weatherClient := weather.NewHTTPWeatherClient(
		cfg.Weather.BaseURL,
		time.Duration(cfg.Weather.RequestTimeoutInSeconds)*time.Second,
	)

	server, err := api.NewServer(api.ArgsWebServer{
		ServiceKeyApi:  serviceKeyApi,
		ListenAddress:  cfg.ListenAddress,
		Service:        launchService,
		Weather:        weatherClient,
		GeneralHandler: api.CORSMiddleware,
	})
	if err != nil {
		_ = archive.Close()
		return nil, err
	}

	refreshScheduler, err := scheduler.NewRefreshScheduler(
		launchService,
		time.Duration(cfg.RefreshIntervalInSeconds)*time.Second,
	)
	if err != nil {
		_ = archive.Close()
		return nil, err
	}

	return &componentsHandler{
		archive:   archive,
		service:   launchService,
		server:    server,
		scheduler: refreshScheduler,
	}, nil
}

// GetService returns the launch service component
func (ch *componentsHandler) GetService() api.Service {
	return ch.service
}

// GetServer returns the server component
func (ch *componentsHandler) GetServer() Server {
	return ch.server
}

// Start starts the inner components
func (ch *componentsHandler) Start() error {
	ch.server.Start()
	return ch.scheduler.Start()
}

// Close closes the inner components
func (ch *componentsHandler) Close() {
	ch.scheduler.Stop()
	_ = ch.server.Close()
	_ = ch.archive.Close()
}
