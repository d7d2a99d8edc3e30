package server

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"bagelbot/internal/engine"
	"bagelbot/internal/evaluation"
	"bagelbot/internal/monitoring"
	"bagelbot/internal/session"
)

// Server exposes the dialogue engine over HTTP and WebSocket. Each session's
// turns arrive one request at a time, so no locking is needed around an
// order: load, process, save.
type Server struct {
	router    *gin.Engine
	engine    *engine.Engine
	store     *session.Store
	metrics   *monitoring.Metrics
	evaluator *evaluation.Evaluator
}

// New creates the API server and its routes
func New(eng *engine.Engine, store *session.Store, metrics *monitoring.Metrics) *Server {
	s := &Server{
		router:    gin.Default(),
		engine:    eng,
		store:     store,
		metrics:   metrics,
		evaluator: evaluation.NewEvaluator(),
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
		api.POST("/sessions", s.handleCreateSession)
		api.GET("/sessions/:id", s.handleGetSession)
		api.GET("/sessions/:id/report", s.handleSessionReport)
		api.POST("/sessions/:id/messages", s.handleMessage)
	}
	s.router.GET("/ws/:id", s.handleChat)
}

// Router returns the Gin router
func (s *Server) Router() *gin.Engine {
	return s.router
}

func (s *Server) handleCreateSession(c *gin.Context) {
	order, err := s.store.Create()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create session"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"session_id": order.ID})
}

func (s *Server) handleGetSession(c *gin.Context) {
	order, err := s.store.Load(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}
	c.JSON(http.StatusOK, order)
}

// MessageRequest is one turn of user input
type MessageRequest struct {
	Text string `json:"text" binding:"required"`
}

func (s *Server) handleMessage(c *gin.Context) {
	var req MessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text is required"})
		return
	}

	order, err := s.store.Load(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}

	start := time.Now()
	reply, order := s.engine.Process(c.Request.Context(), req.Text, order)
	if s.metrics != nil {
		s.metrics.ObserveTurn("processed", time.Since(start))
	}

	if err := s.store.Save(order); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save session"})
		return
	}
	s.recordTurn(order.ID, req.Text, reply)
	c.JSON(http.StatusOK, gin.H{"reply": reply, "order": order})
}

// recordTurn appends to the session transcript. Transcripts feed the
// post-hoc conversation report, so a write failure degrades that report
// rather than the turn itself.
func (s *Server) recordTurn(sessionID, userText, reply string) {
	if err := s.store.AppendTurn(sessionID, userText, reply); err != nil {
		log.Printf("failed to record turn for session %s: %v", sessionID, err)
	}
}

func (s *Server) handleSessionReport(c *gin.Context) {
	order, err := s.store.Load(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}
	records, err := s.store.Transcript(order.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load transcript"})
		return
	}
	turns := make([]evaluation.Turn, len(records))
	for i, r := range records {
		turns[i] = evaluation.Turn{UserText: r.UserText, Reply: r.Reply}
	}
	report := s.evaluator.Evaluate(&order, turns)
	c.JSON(http.StatusOK, report)
}
