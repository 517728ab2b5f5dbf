package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/abhisek/edupath/internal/curriculum"
	"github.com/abhisek/edupath/internal/export"
	"github.com/abhisek/edupath/internal/generation"
	"github.com/abhisek/edupath/internal/progress"
	"github.com/abhisek/edupath/internal/search"
	"github.com/abhisek/edupath/internal/session"
	"github.com/abhisek/edupath/internal/store"
)

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type pathSummary struct {
	progress.PathProgress
	Status progress.Status `json:"status"`
}

func (s *Server) listPaths(c *gin.Context) {
	limit := -1
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			respondError(c, http.StatusBadRequest, "bad_request", fmt.Errorf("invalid limit %q", raw))
			return
		}
		limit = n
	}

	all, err := s.pathProgress(c.Request.Context())
	if err != nil {
		s.internalError(c, "list paths", err)
		return
	}

	recent := progress.Recent(all, limit)
	out := make([]pathSummary, len(recent))
	for i, p := range recent {
		out[i] = pathSummary{PathProgress: p, Status: p.Status()}
	}
	c.JSON(http.StatusOK, gin.H{"paths": out})
}

func (s *Server) getPath(c *gin.Context) {
	path, ok := s.loadPath(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, path)
}

type generateBody struct {
	Topic          string  `json:"topic"`
	DurationDays   int     `json:"duration_days"`
	SkillLevel     string  `json:"skill_level"`
	DailyTimeHours float64 `json:"daily_time_hours"`
	Goals          string  `json:"goals"`
}

func (s *Server) createPath(c *gin.Context) {
	if s.deps.Generator == nil {
		respondError(c, http.StatusServiceUnavailable, "generation_disabled",
			errors.New("no LLM provider is configured"))
		return
	}

	var body generateBody
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}

	res, err := s.deps.Generator.Generate(c.Request.Context(), generation.Request{
		Topic:          body.Topic,
		DurationDays:   body.DurationDays,
		SkillLevel:     curriculum.SkillLevel(body.SkillLevel),
		DailyTimeHours: body.DailyTimeHours,
		Goals:          body.Goals,
	})

	var verr *generation.ValidationError
	var gerr *generation.GenerationError
	switch {
	case errors.As(err, &verr):
		respondFields(c, http.StatusBadRequest, "invalid_request", err, verr.Fields)
		return
	case errors.As(err, &gerr) && gerr.Stage == generation.StageGenerate:
		respondError(c, http.StatusBadGateway, "generation_failed",
			errors.New("failed to generate a learning path, please try again"))
		return
	case err != nil:
		s.internalError(c, "generate path", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"path":       res.Path,
		"link":       res.Link.String(),
		"session":    res.Link.APIPath(),
		"elapsed_ms": res.Elapsed.Milliseconds(),
	})
}

func (s *Server) getProgress(c *gin.Context) {
	path, ok := s.loadPath(c)
	if !ok {
		return
	}
	rs, err := s.recordStore(c.Request.Context(), path)
	if err != nil {
		s.internalError(c, "load progress", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"path_id":    path.ID,
		"total_days": path.DurationDays,
		"records":    rs.Records(),
		"completion": rs.Completion(),
	})
}

type progressBody struct {
	Field string `json:"field"`
	Value any    `json:"value"`
}

func (s *Server) setProgress(c *gin.Context) {
	day, err := strconv.Atoi(c.Param("day"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "bad_request", fmt.Errorf("invalid day %q", c.Param("day")))
		return
	}

	var body progressBody
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	change, err := changeFromBody(body)
	if err != nil {
		respondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}

	path, ok := s.loadPath(c)
	if !ok {
		return
	}
	rs, err := s.recordStore(c.Request.Context(), path)
	if err != nil {
		s.internalError(c, "load progress", err)
		return
	}

	rec, err := rs.SetField(c.Request.Context(), day, change)
	if errors.Is(err, progress.ErrDayOutOfRange) {
		respondError(c, http.StatusBadRequest, "day_out_of_range", err)
		return
	}
	if err != nil {
		s.internalError(c, "save progress", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"record":     rec,
		"completion": rs.Completion(),
	})
}

func changeFromBody(body progressBody) (progress.Change, error) {
	field, err := progress.ParseField(body.Field)
	if err != nil {
		return progress.Change{}, err
	}
	if field.IsTask() {
		done, ok := body.Value.(bool)
		if !ok {
			return progress.Change{}, fmt.Errorf("%s expects a boolean value", field)
		}
		return progress.SetTask(field, done), nil
	}
	text, ok := body.Value.(string)
	if !ok {
		return progress.Change{}, fmt.Errorf("%s expects a string value", field)
	}
	return progress.SetNotes(text), nil
}

func (s *Server) openSession(c *gin.Context) {
	sess, err := session.Open(c.Request.Context(), s.sessionDeps(), c.Param("id"), c.Query("day"))
	if errors.Is(err, store.ErrNotFound) {
		respondError(c, http.StatusNotFound, "not_found", fmt.Errorf("learning path %q not found", c.Param("id")))
		return
	}
	if err != nil {
		s.internalError(c, "open session", err)
		return
	}

	first, last := sess.Bounds()
	resp := gin.H{
		"path_id":    sess.Path().ID,
		"title":      sess.Path().Title,
		"active_day": sess.ActiveDay(),
		"first_day":  first,
		"last_day":   last,
		"record":     sess.Record(),
		"completion": sess.Completion(),
		"link":       sess.Link().String(),
		"overview":   sess.Overview(),
	}
	if m, ok := sess.Module(); ok {
		resp["module"] = m
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) exportPath(c *gin.Context) {
	path, ok := s.loadPath(c)
	if !ok {
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.FileName(path)))
	c.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte(export.Markdown(path)))
}

func (s *Server) search(c *gin.Context) {
	q := c.Query("q")
	if search.Blank(q) {
		c.JSON(http.StatusOK, gin.H{"query": q, "results": []search.Result{}})
		return
	}

	paths, err := s.deps.Paths.ListPaths(c.Request.Context(), 0)
	if err != nil {
		s.internalError(c, "search paths", err)
		return
	}

	results := search.Search(q, paths, search.Catalog())
	resp := gin.H{"query": q, "results": results}
	if len(results) == 0 {
		resp["suggested_topic"] = strings.TrimSpace(q)
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) stats(c *gin.Context) {
	all, err := s.pathProgress(c.Request.Context())
	if err != nil {
		s.internalError(c, "load stats", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"stats":  progress.Summarize(all),
		"recent": progress.Recent(all, progress.RecentPathsLimit),
	})
}

func (s *Server) pathProgress(ctx context.Context) ([]progress.PathProgress, error) {
	paths, err := s.deps.Paths.ListPaths(ctx, 0)
	if err != nil {
		return nil, err
	}
	days := make(map[string]int, len(paths))
	for _, p := range paths {
		days[p.ID] = p.DurationDays
	}
	completion, err := s.deps.Progress.CompletionByPath(ctx, days)
	if err != nil {
		return nil, err
	}

	out := make([]progress.PathProgress, len(paths))
	for i, p := range paths {
		out[i] = progress.PathProgress{Path: p, Completion: completion[p.ID]}
	}
	return out, nil
}

// loadPath fetches the :id path, answering 404 or 500 itself on failure.
func (s *Server) loadPath(c *gin.Context) (curriculum.LearningPath, bool) {
	id := c.Param("id")
	path, err := s.deps.Paths.GetPath(c.Request.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		respondError(c, http.StatusNotFound, "not_found", fmt.Errorf("learning path %q not found", id))
		return path, false
	}
	if err != nil {
		s.internalError(c, "load path", err)
		return path, false
	}
	return path, true
}

func (s *Server) internalError(c *gin.Context, op string, err error) {
	s.logger.Error(op, zap.Error(err), zap.String("path", c.Request.URL.Path))
	respondError(c, http.StatusInternalServerError, "internal", errors.New("internal server error"))
}
