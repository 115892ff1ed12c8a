package interviews

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hareesh3232/Mock-test-interview/internal/jobs"
	"github.com/hareesh3232/Mock-test-interview/internal/llm"
	"github.com/hareesh3232/Mock-test-interview/internal/resumes"
	"github.com/hareesh3232/Mock-test-interview/internal/shared/server/middleware"
	"github.com/hareesh3232/Mock-test-interview/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches interview routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/generate", h.generate)
	rg.POST("/start", h.start)
	rg.POST("/submit", h.submit)
	rg.GET("/:id/status", h.status)
	rg.GET("/:id/results", h.results)
}

type generateRequest struct {
	ResumeID      string `json:"resumeId"`
	JobID         string `json:"jobId"`
	QuestionCount int    `json:"questionCount"`
}

func (h *Handler) generate(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if req.ResumeID == "" || req.JobID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "resumeId and jobId are required", nil)
		return
	}

	questions, err := h.Svc.Generate(c.Request.Context(), userID, req.ResumeID, req.JobID, req.QuestionCount)
	if err != nil {
		switch {
		case errors.Is(err, resumes.ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "resume not found", nil)
		case errors.Is(err, jobs.ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "job not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to generate questions", nil)
		}
		return
	}

	respond.JSON(c, http.StatusOK, gin.H{
		"resumeId":       req.ResumeID,
		"jobId":          req.JobID,
		"questions":      questions,
		"totalQuestions": len(questions),
	})
}

type startRequest struct {
	ResumeID  string         `json:"resumeId"`
	JobID     string         `json:"jobId"`
	Questions []llm.Question `json:"questions"`
}

func (h *Handler) start(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req startRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	interview, err := h.Svc.Start(c.Request.Context(), userID, req.ResumeID, req.JobID, req.Questions)
	if err != nil {
		switch {
		case errors.Is(err, resumes.ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "resume not found", nil)
		case errors.Is(err, jobs.ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "job not found", nil)
		default:
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		}
		return
	}

	respond.JSON(c, http.StatusCreated, gin.H{
		"interviewId":          interview.ID,
		"resumeId":             interview.ResumeID,
		"jobId":                interview.JobID,
		"questions":            interview.Questions,
		"currentQuestionIndex": 0,
		"totalQuestions":       len(interview.Questions),
		"status":               interview.Status,
	})
}

type submitRequest struct {
	InterviewID   string `json:"interviewId"`
	QuestionIndex *int   `json:"questionIndex"`
	Answer        string `json:"answer"`
}

func (h *Handler) submit(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if req.InterviewID == "" || req.QuestionIndex == nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "interviewId and questionIndex are required", nil)
		return
	}

	result, err := h.Svc.Submit(c.Request.Context(), userID, req.InterviewID, *req.QuestionIndex, req.Answer)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "interview not found", nil)
		case errors.Is(err, ErrCompleted):
			respond.Error(c, http.StatusConflict, "already_completed", "interview already completed", nil)
		case errors.Is(err, ErrOutOfOrder):
			respond.Error(c, http.StatusConflict, "out_of_order", err.Error(), nil)
		case errors.Is(err, ErrInvalidIndex):
			respond.Error(c, http.StatusBadRequest, "validation_error", "invalid question index", nil)
		default:
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		}
		return
	}

	respond.JSON(c, http.StatusOK, result)
}

func (h *Handler) status(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	view, err := h.Svc.Status(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "interview not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch interview status", nil)
		}
		return
	}
	respond.JSON(c, http.StatusOK, view)
}

func (h *Handler) results(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	interview, answers, err := h.Svc.Results(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "interview not found", nil)
		case errors.Is(err, ErrNotCompleted):
			respond.Error(c, http.StatusConflict, "not_completed", "interview not completed yet", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch interview results", nil)
		}
		return
	}

	qaViews := make([]gin.H, 0, len(answers))
	for _, answer := range answers {
		qaViews = append(qaViews, gin.H{
			"questionIndex": answer.QuestionIndex,
			"question":      answer.QuestionText,
			"answer":        answer.AnswerText,
			"questionType":  answer.QuestionType,
			"scores": gin.H{
				"technical":     answer.TechnicalScore,
				"communication": answer.CommunicationScore,
				"relevance":     answer.RelevanceScore,
				"overall":       answer.OverallScore,
			},
			"feedback":    answer.Feedback,
			"strengths":   answer.Strengths,
			"weaknesses":  answer.Weaknesses,
			"suggestions": answer.Suggestions,
		})
	}

	resp := gin.H{
		"interviewId": interview.ID,
		"resumeId":    interview.ResumeID,
		"jobId":       interview.JobID,
		"status":      interview.Status,
		"scores": gin.H{
			"technical":     interview.TechnicalScore,
			"communication": interview.CommunicationScore,
			"overall":       interview.OverallScore,
		},
		"finalFeedback": interview.Feedback,
		"qaPairs":       qaViews,
		"startedAt":     interview.StartedAt.Format(time.RFC3339),
	}
	if interview.CompletedAt != nil {
		resp["completedAt"] = interview.CompletedAt.Format(time.RFC3339)
	}
	respond.JSON(c, http.StatusOK, resp)
}
