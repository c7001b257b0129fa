// Package api exposes recorded scans and on-demand scanning over HTTP.
package api

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"PatternScout/internal/recorder"
	"PatternScout/internal/scanner"
)

// Server wraps the gin engine and its dependencies.
type Server struct {
	engine   *gin.Engine
	scanner  *scanner.Scanner
	recorder recorder.Recorder
	srv      *http.Server
}

// NewServer builds the router. chartDir, when non-empty, is served under
// /charts so rendered pages are reachable from a browser.
func NewServer(sc *scanner.Scanner, rec recorder.Recorder, chartDir string) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.Default()

	s := &Server{engine: engine, scanner: sc, recorder: rec}

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "time": time.Now().Format(time.RFC3339)})
	})

	apiGroup := engine.Group("/api")
	{
		apiGroup.GET("/scans/latest", s.latestScans)
		apiGroup.GET("/scans/:symbol", s.scansForSymbol)
		apiGroup.GET("/patterns", s.recentPatterns)
		apiGroup.GET("/price/:symbol", s.currentPrice)
		apiGroup.POST("/scan/:symbol", s.scanNow)
	}

	if chartDir != "" {
		engine.Static("/charts", chartDir)
	}
	return s
}

// Start runs the HTTP server until Shutdown is called.
func (s *Server) Start(addr string) {
	s.srv = &http.Server{Addr: addr, Handler: s.engine}
	go func() {
		log.Printf("[INFO] API listening on %s", addr)
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("[ERROR] API server: %v", err)
		}
	}()
}

// Shutdown stops the HTTP server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.srv == nil {
		return nil
	}
	return s.srv.Shutdown(ctx)
}

func (s *Server) latestScans(c *gin.Context) {
	limit := parseLimit(c.Query("limit"), 20)
	scans, err := s.recorder.LatestScans(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(scans), "scans": scans})
}

func (s *Server) scansForSymbol(c *gin.Context) {
	symbol := strings.ToUpper(c.Param("symbol"))
	limit := parseLimit(c.Query("limit"), 20)
	scans, err := s.recorder.ScansForSymbol(symbol, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"symbol": symbol, "count": len(scans), "scans": scans})
}

func (s *Server) recentPatterns(c *gin.Context) {
	limit := parseLimit(c.Query("limit"), 50)
	matches, err := s.recorder.RecentMatches(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(matches), "patterns": matches})
}

func (s *Server) currentPrice(c *gin.Context) {
	symbol := strings.ToUpper(c.Param("symbol"))
	price, err := s.scanner.Collector.Fetcher.FetchCurrentPrice(symbol)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"symbol": symbol,
		"price":  price,
		"source": s.scanner.Collector.Fetcher.Name(),
		"time":   time.Now().Format(time.RFC3339),
	})
}

func (s *Server) scanNow(c *gin.Context) {
	symbol := strings.ToUpper(c.Param("symbol"))
	report, err := s.scanner.Scan(symbol)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	if err := s.recorder.RecordScan(report); err != nil {
		log.Printf("[ERROR] record scan %s: %v", symbol, err)
	}
	c.JSON(http.StatusOK, report)
}

func parseLimit(raw string, def int) int {
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 || n > 500 {
		return def
	}
	return n
}
