package server

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"holdings-observer/src/analysis"
	"holdings-observer/src/identity"
	"holdings-observer/src/logger"
	"holdings-observer/src/models"
	"holdings-observer/src/series"

	"github.com/gin-gonic/gin"
)

// -----------------------------------------------------------------------------
// APIServer
// -----------------------------------------------------------------------------

type APIServer struct {
	Config *models.MConfig
	Logger *logger.Logger
	engine *gin.Engine

	Settlement  *series.Store[models.MSettlementHolding]
	Accumulated *series.Store[models.MAccumulatedHolding]
	Momentum    *analysis.MomentumAnalyzer
	AccAnalyzer *analysis.AccumulatedAnalyzer
	Enricher    *analysis.Enricher
	ReloadFunc  func() // kicks both dataset loaders

	// WebSocket clients
	clients    map[*Client]struct{}
	broadcast  chan models.MReloadEvent // Strongly typed and Buffered Queue
	register   chan *Client
	unregister chan *Client

	// Last reload event per dataset, replayed to clients on connect
	lastEvents map[string]models.MReloadEvent
	stateMutex sync.RWMutex
}

// -----------------------------------------------------------------------------
// Constructor
// -----------------------------------------------------------------------------

func NewAPIServer(
	cfg *models.MConfig,
	log *logger.Logger,
	settlement *series.Store[models.MSettlementHolding],
	accumulated *series.Store[models.MAccumulatedHolding],
	momentum *analysis.MomentumAnalyzer,
	accAnalyzer *analysis.AccumulatedAnalyzer,
	enricher *analysis.Enricher,
) *APIServer {
	// Set Gin mode
	if cfg.LogLevel != "DEBUG" {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &APIServer{
		Config:      cfg,
		Logger:      log,
		engine:      gin.Default(),
		Settlement:  settlement,
		Accumulated: accumulated,
		Momentum:    momentum,
		AccAnalyzer: accAnalyzer,
		Enricher:    enricher,
		clients:     make(map[*Client]struct{}),
		// Buffered channel so a burst of reload events never blocks a loader
		broadcast:  make(chan models.MReloadEvent, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		lastEvents: make(map[string]models.MReloadEvent),
	}

	// Add CORS Middleware
	s.engine.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// setup web routes
	s.setupRoutes()
	return s
}

// -----------------------------------------------------------------------------
// Route Setup
// -----------------------------------------------------------------------------

func (s *APIServer) setupRoutes() {
	// Static analyst UI
	if s.Config.PublicDir != "" {
		s.engine.Static("/app", s.Config.PublicDir)
	}

	// Settlement dataset
	s.engine.GET("/api/health", s.getHealth)
	s.engine.GET("/api/data", s.getData)
	s.engine.GET("/api/stocks", s.getStocks)
	s.engine.GET("/api/stock/:code", s.getStock)
	s.engine.GET("/api/top-momentum", s.getTopMomentum)
	s.engine.GET("/api/top-holdings", s.getTopHoldings)
	s.engine.POST("/api/reload", s.postReload)

	// Accumulated dataset
	s.engine.GET("/api/akd/data", s.getAkdData)
	s.engine.GET("/api/akd/stocks", s.getAkdStocks)
	s.engine.GET("/api/akd/stock/:code", s.getAkdStock)
	s.engine.GET("/api/akd/top-sales", s.getAkdTopSales)
	s.engine.GET("/api/akd/all-stocks", s.getAkdAllStocks)

	// WebSocket endpoint
	s.engine.GET("/ws", s.handleWebSocket)
}

// -----------------------------------------------------------------------------
// Server Lifecycle
// -----------------------------------------------------------------------------

func (s *APIServer) Start() error {
	addr := fmt.Sprintf("%s:%d", s.Config.Host, s.Config.Port)
	s.Logger.Info("Starting server on %s", addr)

	go s.handleWebsockets()

	return s.engine.Run(addr)
}

// -----------------------------------------------------------------------------

func (s *APIServer) Stop() error {
	// Clean shutdown
	close(s.broadcast)
	close(s.register)
	close(s.unregister)
	return nil
}

// -----------------------------------------------------------------------------
// Route Handlers
// -----------------------------------------------------------------------------

func (s *APIServer) getHealth(c *gin.Context) {
	s.stateMutex.RLock()
	connections := len(s.clients)
	s.stateMutex.RUnlock()

	c.JSON(200, gin.H{
		"status":           "ok",
		"settlement_days":  s.Settlement.Len(),
		"accumulated_days": s.Accumulated.Len(),
		"connections":      connections,
	})
}

// -----------------------------------------------------------------------------

func (s *APIServer) getData(c *gin.Context) {
	if s.Settlement.Len() == 0 {
		c.JSON(503, gin.H{"error": "data not loaded yet"})
		return
	}

	days := s.Settlement.Days()
	c.JSON(200, gin.H{
		"days":  len(days),
		"dates": s.Settlement.Dates(),
		"data":  days,
	})
}

// -----------------------------------------------------------------------------

func (s *APIServer) getStocks(c *gin.Context) {
	if s.Settlement.Len() == 0 {
		c.JSON(503, gin.H{"error": "data not loaded yet"})
		return
	}

	stocks := identity.FilterDelistedCodes(s.Settlement.AllCodes())
	c.JSON(200, gin.H{
		"stocks": stocks,
		"count":  len(stocks),
	})
}

// -----------------------------------------------------------------------------

func (s *APIServer) getStock(c *gin.Context) {
	if s.Settlement.Len() == 0 {
		c.JSON(503, gin.H{"error": "data not loaded yet"})
		return
	}

	code := strings.ToUpper(c.Param("code"))
	momentum := s.Settlement.SeriesFor(code)
	if len(momentum) == 0 {
		c.JSON(404, gin.H{"error": "stock not found"})
		return
	}

	history := s.Settlement.RankHistory(code)
	trend := s.Momentum.ClassifyTrend(history, s.Config.Momentum.LookbackDays)

	c.JSON(200, gin.H{
		"code":     code,
		"momentum": momentum,
		"analysis": trend,
	})
}

// -----------------------------------------------------------------------------

func (s *APIServer) getTopMomentum(c *gin.Context) {
	if s.Settlement.Len() == 0 {
		c.JSON(503, gin.H{"error": "data not loaded yet"})
		return
	}

	lookBackDays := queryInt(c, "days", s.Config.Momentum.LookbackDays)
	minPoints := queryInt(c, "minPoints", s.Config.Momentum.MinSamples)
	limit := queryInt(c, "limit", s.Config.Momentum.TopLimit)

	top := s.Momentum.TopMomentum(minPoints, lookBackDays)

	kept := make([]models.MStockMomentum, 0, len(top))
	for _, entry := range top {
		if !identity.IsDelisted(entry.Code) {
			kept = append(kept, entry)
		}
	}

	total := len(kept)
	if limit > 0 && limit < len(kept) {
		kept = kept[:limit]
	}

	c.JSON(200, gin.H{
		"look_back_days": lookBackDays,
		"top_stocks":     kept,
		"total":          total,
	})
}

// -----------------------------------------------------------------------------

func (s *APIServer) getTopHoldings(c *gin.Context) {
	day, ok := s.Settlement.LatestOrFor("")
	if !ok {
		c.JSON(503, gin.H{"error": "data not loaded yet"})
		return
	}

	limit := queryInt(c, "limit", 0)
	holdings := day.Holdings
	if limit > 0 && limit < len(holdings) {
		holdings = holdings[:limit]
	}

	kept := make([]models.MSettlementHolding, 0, len(holdings))
	for _, h := range holdings {
		if !identity.IsDelisted(h.Code) {
			kept = append(kept, h)
		}
	}

	c.JSON(200, gin.H{
		"date":     day.Date,
		"holdings": kept,
	})
}

// -----------------------------------------------------------------------------

func (s *APIServer) postReload(c *gin.Context) {
	if s.ReloadFunc == nil {
		c.JSON(503, gin.H{"error": "reload not wired"})
		return
	}

	// Each loader is individually non-reentrant; a concurrent request is a
	// no-op per dataset.
	go s.ReloadFunc()
	c.JSON(202, gin.H{"message": "reloading datasets"})
}

// -----------------------------------------------------------------------------
// Accumulated dataset handlers
// -----------------------------------------------------------------------------

func (s *APIServer) getAkdData(c *gin.Context) {
	if s.Accumulated.Len() == 0 {
		c.JSON(503, gin.H{"error": "accumulated data not loaded yet"})
		return
	}

	days := s.Accumulated.Days()
	c.JSON(200, gin.H{
		"days":  len(days),
		"dates": s.Accumulated.Dates(),
		"data":  days,
	})
}

// -----------------------------------------------------------------------------

func (s *APIServer) getAkdStocks(c *gin.Context) {
	if s.Accumulated.Len() == 0 {
		c.JSON(503, gin.H{"error": "accumulated data not loaded yet"})
		return
	}

	stocks := identity.FilterDelistedCodes(s.Accumulated.AllCodes())
	c.JSON(200, gin.H{
		"stocks": stocks,
		"count":  len(stocks),
	})
}

// -----------------------------------------------------------------------------

func (s *APIServer) getAkdStock(c *gin.Context) {
	if s.Accumulated.Len() == 0 {
		c.JSON(503, gin.H{"error": "accumulated data not loaded yet"})
		return
	}

	code := strings.ToUpper(c.Param("code"))
	data := s.Enricher.Enrich(code)
	if len(data) == 0 {
		c.JSON(404, gin.H{"error": "stock not found"})
		return
	}

	c.JSON(200, gin.H{
		"code": code,
		"data": data,
	})
}

// -----------------------------------------------------------------------------

func (s *APIServer) getAkdTopSales(c *gin.Context) {
	if s.Accumulated.Len() == 0 {
		c.JSON(503, gin.H{"error": "accumulated data not loaded yet"})
		return
	}

	limit := queryInt(c, "limit", 20)
	top, date := s.AccAnalyzer.TopSales(limit, c.Query("date"))

	c.JSON(200, gin.H{
		"date":       date,
		"top_stocks": top,
		"total":      len(top),
	})
}

// -----------------------------------------------------------------------------

func (s *APIServer) getAkdAllStocks(c *gin.Context) {
	if s.Accumulated.Len() == 0 {
		c.JSON(503, gin.H{"error": "accumulated data not loaded yet"})
		return
	}

	all, date := s.AccAnalyzer.AllByNet(c.Query("date"))
	kept := make([]models.MAccumulatedHolding, 0, len(all))
	for _, h := range all {
		if !identity.IsDelisted(h.Code) {
			kept = append(kept, h)
		}
	}

	c.JSON(200, gin.H{
		"stocks": kept,
		"total":  len(kept),
		"date":   date,
	})
}

// -----------------------------------------------------------------------------
// Helpers
// -----------------------------------------------------------------------------

func queryInt(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return fallback
	}
	return v
}
