// Package configserver serves validated searchbox value configurations over
// HTTP so searchboxes can be pointed at a URL locator.
package configserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"segbox/internal/debug"
	appErrors "segbox/internal/errors"
	"segbox/internal/valuecfg"
)

// DefaultAddr is the listen address used when none is configured.
const DefaultAddr = ":8765"

var extensions = []string{".json", ".yaml", ".yml"}

// Server serves the configuration documents found in a directory.
type Server struct {
	dir string
}

// New creates a server over dir.
func New(dir string) *Server {
	return &Server{dir: dir}
}

// Handler builds the gin router.
func (s *Server) Handler() http.Handler {
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{http.MethodGet, http.MethodHead, http.MethodOptions}

	r := gin.New()
	r.Use(
		cors.New(corsConfig),
		gin.Recovery(),
		requestLogger(),
	)

	r.HEAD("/healthz", s.HealthHandler)
	r.GET("/healthz", s.HealthHandler)
	r.GET("/configs", s.ListHandler)
	r.HEAD("/configs/:name", s.ConfigHandler)
	r.GET("/configs/:name", s.ConfigHandler)
	return r
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		debug.Log("config server request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"elapsed", time.Since(start).String(),
		)
	}
}

// HealthHandler reports liveness.
func (s *Server) HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ListHandler lists the configuration names available in the directory.
func (s *Server) ListHandler(c *gin.Context) {
	names, err := s.names()
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"configs": names})
}

// ConfigHandler serves the validated document for :name as JSON.
func (s *Server) ConfigHandler(c *gin.Context) {
	name := c.Param("name")
	if !validName(name) {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid config name %q", name)})
		return
	}

	path, ok := s.resolve(name)
	if !ok {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("config %q not found", name)})
		return
	}

	cfg, err := valuecfg.LoadFile(path)
	if err == nil {
		cfg, err = valuecfg.Validate(cfg)
	}
	if err != nil {
		debug.Error(err, "serve config", "name", name, "path", path)
		status := http.StatusUnprocessableEntity
		if appErrors.IsCode(err, appErrors.CodeConfigLoad) {
			status = http.StatusInternalServerError
		}
		c.AbortWithStatusJSON(status, gin.H{"error": err.Error(), "code": appErrors.CodeOf(err)})
		return
	}

	c.JSON(http.StatusOK, cfg)
}

func validName(name string) bool {
	return name != "" && name != "." && name != ".." &&
		!strings.ContainsAny(name, `/\`) && filepath.Base(name) == name
}

func (s *Server) resolve(name string) (string, bool) {
	for _, ext := range extensions {
		path := filepath.Join(s.dir, name+ext)
		if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
			return path, true
		}
	}
	return "", false
}

func (s *Server) names() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read config dir: %w", err)
	}
	names := []string{}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := filepath.Ext(e.Name())
		if !slices.Contains(extensions, ext) {
			continue
		}
		name := strings.TrimSuffix(e.Name(), ext)
		if !slices.Contains(names, name) {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names, nil
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	if addr == "" {
		addr = DefaultAddr
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		debug.Log("config server listening", "addr", addr, "dir", s.dir)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
