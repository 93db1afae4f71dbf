package api

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/multiversx/mx-chain-core-go/core/check"
	logger "github.com/multiversx/mx-chain-logger-go"

	"github.com/hwpaige/launchboard/cache"
	"github.com/hwpaige/launchboard/common"
)

var log = logger.GetOrCreate("api")

// ArgsWebServer defines the web server arguments
type ArgsWebServer struct {
	ServiceKeyApi  string
	ListenAddress  string
	Service        Service
	Weather        WeatherClient
	GeneralHandler func(http.Handler) http.Handler
}

type server struct {
	router         *gin.Engine
	httpServer     *http.Server
	service        Service
	weather        WeatherClient
	serviceKey     string
	listenAddr     string
	generalHandler func(http.Handler) http.Handler
	wg             sync.WaitGroup
}

// NewServer initializes the Gin engine and mounts all routes
func NewServer(args ArgsWebServer) (*server, error) {
	if check.IfNil(args.Service) {
		return nil, errors.New("service is required")
	}
	if check.IfNil(args.Weather) {
		return nil, errors.New("weather client is required")
	}
	if args.GeneralHandler == nil {
		return nil, errors.New("nil http handler")
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	s := &server{
		router:         router,
		service:        args.Service,
		weather:        args.Weather,
		serviceKey:     args.ServiceKeyApi,
		listenAddr:     args.ListenAddress,
		generalHandler: args.GeneralHandler,
	}

	s.setupRoutes()
	return s, nil
}

func (s *server) setupRoutes() {
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "launchboard"})
	})

	api := s.router.Group("/api")

	api.GET("/launches/:category", s.handleGetLaunches)
	api.GET("/series/:category", s.handleGetSeries)
	api.GET("/series/:category/status", s.handleGetStatusSeries)
	api.GET("/history/series", s.handleGetHistorySeries)
	api.GET("/weather", s.handleGetWeather)

	// the kiosk's manual refresh button, guarded by the service key
	api.POST("/launches/:category/refresh", s.authAPIKey(), s.handleRefresh)
}

// Start listens and serves connections
func (s *server) Start() {
	handler := s.generalHandler(s.router)

	s.httpServer = &http.Server{
		Addr:    s.listenAddr,
		Handler: handler,
	}

	ln, err := net.Listen("tcp", s.listenAddr)
	if err != nil {
		log.Error("failed to listen", "error", err)
		return
	}
	s.listenAddr = ln.Addr().String()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		log.Info("starting HTTP server", "address", s.listenAddr)

		err := s.httpServer.Serve(ln)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server failed", "error", err)
		}
	}()
}

// Address returns the actual listen address
func (s *server) Address() string {
	return s.listenAddr
}

// Close gracefully stops the server
func (s *server) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			return err
		}
	}
	s.wg.Wait()
	return nil
}

// --- Middlewares ---

func (s *server) authAPIKey() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader("X-Api-Key")
		if key != s.serviceKey {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// --- Handlers ---

func parseCategory(c *gin.Context) (common.Category, bool) {
	category, err := common.ParseCategory(c.Param("category"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return "", false
	}

	return category, true
}

func parseYear(c *gin.Context) (int, bool) {
	rawYear := c.Query("year")
	if rawYear == "" {
		return time.Now().UTC().Year(), true
	}

	year, err := strconv.Atoi(rawYear)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid year"})
		return 0, false
	}

	return year, true
}

func parseMode(c *gin.Context) (common.SeriesMode, bool) {
	rawMode := c.DefaultQuery("mode", string(common.ModeMonthly))
	mode, err := common.ParseSeriesMode(rawMode)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return "", false
	}

	return mode, true
}

func respondServiceError(c *gin.Context, err error) {
	if errors.Is(err, cache.ErrCacheMiss) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no data available yet"})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

func (s *server) handleGetLaunches(c *gin.Context) {
	category, ok := parseCategory(c)
	if !ok {
		return
	}

	snapshot, degraded, err := s.service.GetRecords(c.Request.Context(), category)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"records":   snapshot.Records,
		"fetchedAt": snapshot.FetchedAt,
		"degraded":  degraded,
	})
}

func (s *server) handleGetSeries(c *gin.Context) {
	category, ok := parseCategory(c)
	if !ok {
		return
	}
	year, ok := parseYear(c)
	if !ok {
		return
	}
	mode, ok := parseMode(c)
	if !ok {
		return
	}

	series, degraded, err := s.service.GetSeries(c.Request.Context(), category, year, mode)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"series": series, "degraded": degraded})
}

func (s *server) handleGetStatusSeries(c *gin.Context) {
	category, ok := parseCategory(c)
	if !ok {
		return
	}
	year, ok := parseYear(c)
	if !ok {
		return
	}

	breakdown, degraded, err := s.service.GetStatusSeries(c.Request.Context(), category, year)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"statuses": breakdown, "degraded": degraded})
}

func (s *server) handleGetHistorySeries(c *gin.Context) {
	year, ok := parseYear(c)
	if !ok {
		return
	}
	mode, ok := parseMode(c)
	if !ok {
		return
	}

	series, err := s.service.GetHistorySeries(c.Request.Context(), year, mode)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"series": series})
}

func (s *server) handleGetWeather(c *gin.Context) {
	lat, err := strconv.ParseFloat(c.Query("lat"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid lat"})
		return
	}
	lon, err := strconv.ParseFloat(c.Query("lon"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid lon"})
		return
	}

	c.JSON(http.StatusOK, s.weather.Fetch(c.Request.Context(), lat, lon))
}

func (s *server) handleRefresh(c *gin.Context) {
	category, ok := parseCategory(c)
	if !ok {
		return
	}

	snapshot, err := s.service.Refresh(c.Request.Context(), category)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	log.Debug("manual refresh completed", "category", category, "records", len(snapshot.Records))

	c.JSON(http.StatusOK, gin.H{
		"ok":        true,
		"records":   len(snapshot.Records),
		"fetchedAt": snapshot.FetchedAt,
	})
}

// IsInterfaceNil returns true if the value under the interface is nil
func (s *server) IsInterfaceNil() bool {
	return s == nil
}
