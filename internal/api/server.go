package api

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"finds/internal/catalog"
	"finds/internal/domain"
	"finds/internal/github"
	"finds/internal/issueform"
	"finds/internal/store"
)

// Server is the HTTP surface the static catalog frontend talks to.
type Server struct {
	store *store.Store
	svc   *catalog.Service
	log   logrus.FieldLogger
}

// NewServer builds the API server.
func NewServer(st *store.Store, svc *catalog.Service, logger logrus.FieldLogger) *Server {
	return &Server{
		store: st,
		svc:   svc,
		log:   logger.WithField("component", "api"),
	}
}

// Router constructs the Gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())

	r.GET("/healthz", s.handleHealth)

	api := r.Group("/api")
	{
		api.GET("/products", s.handleListProducts)
		api.GET("/categories", s.handleListCategories)
		api.POST("/products", s.handleCreateProduct)
		api.POST("/uploads", s.handleUpload)
	}
	return r
}

// Run serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.Router()}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	s.log.WithField("addr", addr).Info("API listening")

	select {
	case <-ctx.Done():
		return srv.Shutdown(context.Background())
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// productsResponse is what the frontend renders: the filtered list plus
// a status line explaining where the data came from.
type productsResponse struct {
	Source  string           `json:"source"`
	Status  string           `json:"status"`
	Items   []domain.Product `json:"items"`
	Count   int              `json:"count"`
	Stale   bool             `json:"stale,omitempty"`
	Refresh bool             `json:"refreshed,omitempty"`
}

func (s *Server) handleListProducts(c *gin.Context) {
	force := c.Query("refresh") == "1" || c.Query("refresh") == "true"

	products, status := s.store.Load(c.Request.Context(), force)
	filtered := domain.Filter(products, c.Query("category"), c.Query("q"))

	c.JSON(http.StatusOK, productsResponse{
		Source:  string(status.Source),
		Status:  status.Message,
		Items:   filtered,
		Count:   len(filtered),
		Stale:   status.Stale,
		Refresh: force,
	})
}

func (s *Server) handleListCategories(c *gin.Context) {
	products, _ := s.store.Load(c.Request.Context(), false)
	c.JSON(http.StatusOK, gin.H{"categories": domain.Categories(products)})
}

// createProductRequest mirrors the issue-form fields.
type createProductRequest struct {
	PinURL         string   `json:"pinUrl"`
	DestinationURL string   `json:"destinationUrl"`
	ImageURL       string   `json:"imageUrl"`
	Title          string   `json:"title"`
	Category       string   `json:"category"`
	Tags           []string `json:"tags"`
	Notes          string   `json:"notes"`
}

func (s *Server) handleCreateProduct(c *gin.Context) {
	var req createProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON payload: " + err.Error()})
		return
	}

	p, err := s.svc.Submit(c.Request.Context(), issueform.Fields{
		PinURL:         req.PinURL,
		DestinationURL: req.DestinationURL,
		ImageURL:       req.ImageURL,
		Title:          req.Title,
		Category:       req.Category,
		Tags:           req.Tags,
		Notes:          req.Notes,
	})
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"product": p})
}

type uploadRequest struct {
	Name          string `json:"name" binding:"required"`
	ContentBase64 string `json:"content_base64" binding:"required"`
}

func (s *Server) handleUpload(c *gin.Context) {
	var req uploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON payload: " + err.Error()})
		return
	}

	content, err := decodeBase64(req.ContentBase64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "content_base64 is not valid base64"})
		return
	}

	rawURL, err := s.svc.UploadImage(c.Request.Context(), req.Name, content)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"url": rawURL})
}

// writeError maps the gateway failure classes onto HTTP statuses with
// actionable messages.
func (s *Server) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, catalog.ErrInvalidSubmission):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, github.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": err.Error(),
			"hint":  "set a personal access token with issues:write (and contents:write for uploads) via `finds auth` or FINDS_TOKEN",
		})
	case errors.Is(err, github.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	}
}

func decodeBase64(s string) ([]byte, error) {
	return base64.StdEncoding.DecodeString(s)
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		s.log.WithFields(logrus.Fields{
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
			"status": c.Writer.Status(),
		}).Debug("Request handled")
	}
}
