package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/abhisek/lumen/internal/content"
	"github.com/abhisek/lumen/internal/knowledge"
	"github.com/abhisek/lumen/internal/queue"
	"github.com/abhisek/lumen/internal/tutor"
)

type errorResponse struct {
	Error string `json:"error"`
}

func badRequest(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse{Error: msg})
}

// generationFailed reports an upstream model failure with the message a
// learner would see.
func generationFailed(c *gin.Context, err error) {
	_ = c.Error(err)
	c.AbortWithStatusJSON(http.StatusBadGateway, errorResponse{Error: tutor.UserMessage(err)})
}

func internalError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.AbortWithStatusJSON(http.StatusInternalServerError, errorResponse{Error: "internal error"})
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type lessonRequest struct {
	Topic      string `json:"topic" binding:"required"`
	Difficulty string `json:"difficulty"`
}

func (s *Server) createLesson(c *gin.Context) {
	var req lessonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "topic is required")
		return
	}
	d := s.deps.Difficulty
	if req.Difficulty != "" {
		var err error
		if d, err = content.ParseDifficulty(req.Difficulty); err != nil {
			badRequest(c, err.Error())
			return
		}
	}
	sec, err := s.deps.Tutor.GenerateLesson(c.Request.Context(), req.Topic, d)
	if err != nil {
		generationFailed(c, err)
		return
	}
	c.JSON(http.StatusOK, sec)
}

type topicRequest struct {
	Topic string `json:"topic" binding:"required"`
}

func (s *Server) relatedTopics(c *gin.Context) {
	var req topicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "topic is required")
		return
	}
	topics, err := s.deps.Tutor.RelatedTopics(c.Request.Context(), req.Topic)
	if err != nil {
		generationFailed(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"topics": topics})
}

func (s *Server) listHistory(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"items": s.deps.History.List()})
}

func (s *Server) clearHistory(c *gin.Context) {
	if err := s.deps.History.Clear(c.Request.Context()); err != nil {
		internalError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type knowledgeResponse struct {
	Struggling []knowledge.Item `json:"struggling"`
	InProgress []knowledge.Item `json:"inProgress"`
	Mastered   []knowledge.Item `json:"mastered"`
}

func (s *Server) knowledgeMap(c *gin.Context) {
	g := s.deps.Knowledge.ByStatus()
	c.JSON(http.StatusOK, knowledgeResponse{
		Struggling: nonNil(g.Struggling),
		InProgress: nonNil(g.InProgress),
		Mastered:   nonNil(g.Mastered),
	})
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// feed serves the cached feed, generating one when the cache is empty or
// refresh=true is given. A refresh avoids titles already shown.
func (s *Server) feed(c *gin.Context) {
	ctx := c.Request.Context()
	cached := tutor.LoadFeed(ctx, s.deps.Store)
	if len(cached) > 0 && c.Query("refresh") != "true" {
		c.JSON(http.StatusOK, gin.H{"items": cached})
		return
	}

	existing := make([]string, len(cached))
	for i, it := range cached {
		existing[i] = it.Title
	}
	var topics []string
	if q := c.Query("topics"); q != "" {
		for _, t := range strings.Split(q, ",") {
			if t = strings.TrimSpace(t); t != "" {
				topics = append(topics, t)
			}
		}
	}
	items, err := s.deps.Tutor.Feed(ctx, existing, topics)
	if err != nil {
		generationFailed(c, err)
		return
	}
	if err := tutor.SaveFeed(ctx, s.deps.Store, items); err != nil {
		s.deps.Log.Warn("caching feed failed", "error", err)
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (s *Server) listQueue(c *gin.Context) {
	entries, err := s.deps.Queue.List(c.Request.Context())
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": nonNil(entries)})
}

func (s *Server) addToQueue(c *gin.Context) {
	var req topicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "topic is required")
		return
	}
	e, err := s.deps.Queue.Add(c.Request.Context(), req.Topic)
	switch {
	case errors.Is(err, queue.ErrDuplicate):
		c.JSON(http.StatusOK, e)
	case errors.Is(err, queue.ErrEmptyTopic):
		badRequest(c, "topic is required")
	case err != nil:
		internalError(c, err)
	default:
		c.JSON(http.StatusCreated, e)
	}
}
