package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"numcmp/app"
	"numcmp/domain/core"
	"numcmp/domain/sample"
	"numcmp/internal"
	apperrors "numcmp/internal/errors"
)

// Server exposes the comparison service as a JSON API.
type Server struct {
	router  *gin.Engine
	service *app.CompareService
	logger  *internal.Logger

	defaultIterations int
	defaultSeed       int64
}

// NewServer creates the API server and registers its routes.
func NewServer(service *app.CompareService, defaultIterations int, defaultSeed int64, logger *internal.Logger) *Server {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	s := &Server{
		router:            gin.Default(),
		service:           service,
		logger:            logger,
		defaultIterations: defaultIterations,
		defaultSeed:       defaultSeed,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := s.router.Group("/api")
	{
		api.POST("/compare", s.handleCompare)
		api.GET("/runs", s.handleListRuns)
		api.GET("/runs/:id", s.handleGetRun)
	}
}

// Run starts the HTTP server on the given address.
func (s *Server) Run(addr string) error {
	s.logger.Info("api server listening on %s", addr)
	return s.router.Run(addr)
}

type compareRequest struct {
	Baseline   []float64 `json:"baseline" binding:"required"`
	Target     []float64 `json:"target" binding:"required"`
	Iterations int       `json:"iterations"`
	Seed       *int64    `json:"seed"`
	Save       bool      `json:"save"`
}

func (s *Server) handleCompare(c *gin.Context) {
	var req compareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	baseline, err := sample.New(req.Baseline)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "baseline: " + err.Error()})
		return
	}
	target, err := sample.New(req.Target)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "target: " + err.Error()})
		return
	}

	svcReq := app.CompareRequest{
		BaselineRef: "inline",
		TargetRef:   "inline",
		Iterations:  req.Iterations,
		Seed:        s.defaultSeed,
		Save:        req.Save,
	}
	if svcReq.Iterations <= 0 {
		svcReq.Iterations = s.defaultIterations
	}
	if req.Seed != nil {
		svcReq.Seed = *req.Seed
	}

	outcome, err := s.service.CompareSamples(c.Request.Context(), svcReq, baseline, target)
	if err != nil {
		s.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, outcome)
}

func (s *Server) handleListRuns(c *gin.Context) {
	runs, err := s.service.ListRuns(c.Request.Context(), 50)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"runs": runs})
}

func (s *Server) handleGetRun(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid run id"})
		return
	}

	run, err := s.service.GetRun(c.Request.Context(), id)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, run)
}

func (s *Server) renderError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case core.IsInvalidArgument(err), errors.Is(err, core.ErrNonFinite):
		status = http.StatusBadRequest
	case core.IsNotFoundError(err), apperrors.GetCode(err) == apperrors.CodeNotFound:
		status = http.StatusNotFound
	}

	s.logger.Error("request failed: %v", err)
	c.JSON(status, gin.H{"error": err.Error(), "code": apperrors.GetCode(err)})
}
