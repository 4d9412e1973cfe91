package handler

import (
    "context"
    "net/http"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/canidoac/webcasares/internal/middleware"
    "github.com/canidoac/webcasares/internal/model"
    "github.com/canidoac/webcasares/internal/repository"
)

// SurveyHandler serves the front-page polls and the admin survey panel.
type SurveyHandler struct {
    Surveys *repository.SurveyRepo
    Reval   *Revalidator
}

func NewSurveyHandler(s *repository.SurveyRepo, reval *Revalidator) *SurveyHandler {
    return &SurveyHandler{Surveys: s, Reval: reval}
}

type surveyPart struct {
    ID       uint64               `json:"id"`
    Question string               `json:"question"`
    Active   bool                 `json:"active"`
    ClosesAt *time.Time           `json:"closes_at"`
    Options  []model.SurveyOption `json:"options"`
}

// List handles GET /api/surveys: active surveys with running tallies.
func (h *SurveyHandler) List(c echo.Context) error {
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    surveys, options, err := h.Surveys.ListActive(ctx)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load surveys failed"})
    }
    parts := make([]surveyPart, 0, len(surveys))
    for _, s := range surveys {
        parts = append(parts, surveyPart{
            ID: s.ID, Question: s.Question, Active: s.Active,
            ClosesAt: s.ClosesAt, Options: options[s.ID],
        })
    }
    return c.JSON(http.StatusOK, echo.Map{"surveys": parts})
}

type createSurveyReq struct {
    Question string   `json:"question"`
    Options  []string `json:"options"`
    ClosesAt *string  `json:"closes_at"`
}

// Create handles POST /api/admin/surveys.
func (h *SurveyHandler) Create(c echo.Context) error {
    var req createSurveyReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    req.Question = strings.TrimSpace(req.Question)
    if req.Question == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "question is required"})
    }
    labels := make([]string, 0, len(req.Options))
    for _, o := range req.Options {
        if o = strings.TrimSpace(o); o != "" {
            labels = append(labels, o)
        }
    }
    if len(labels) < 2 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "at least two options required"})
    }
    s := model.Survey{Question: req.Question, Active: true}
    if req.ClosesAt != nil && *req.ClosesAt != "" {
        t, err := time.Parse(time.RFC3339, *req.ClosesAt)
        if err != nil {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid closes_at format"})
        }
        s.ClosesAt = &t
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    id, err := h.Surveys.Create(ctx, &s, labels)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create survey failed"})
    }
    h.Reval.Revalidate(ctx)
    s.ID = id
    return c.JSON(http.StatusCreated, echo.Map{"survey": s})
}

type voteReq struct {
    OptionID uint64 `json:"option_id"`
}

// Vote handles POST /api/surveys/:id/vote: one vote per member.
func (h *SurveyHandler) Vote(c echo.Context) error {
    uid, ok := middleware.Identity(c)
    if !ok {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    id, err := getID(c)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    var req voteReq
    if err := c.Bind(&req); err != nil || req.OptionID == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "option_id is required"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    if err := h.Surveys.Vote(ctx, id, req.OptionID, uid.UserID); err != nil {
        switch err {
        case repository.ErrNotFound:
            return c.JSON(http.StatusNotFound, echo.Map{"error": "survey or option not found"})
        case repository.ErrConflict:
            return c.JSON(http.StatusConflict, echo.Map{"error": "already voted or survey closed"})
        default:
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "vote failed"})
        }
    }
    h.Reval.Revalidate(ctx)
    return c.NoContent(http.StatusNoContent)
}

// Close handles POST /api/admin/surveys/:id/close.
func (h *SurveyHandler) Close(c echo.Context) error {
    id, err := getID(c)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    if err := h.Surveys.Close(ctx, id); err != nil {
        if err == repository.ErrNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "survey not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "close survey failed"})
    }
    h.Reval.Revalidate(ctx)
    return c.NoContent(http.StatusNoContent)
}
