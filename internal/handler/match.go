package handler

import (
    "context"
    "net/http"
    "strconv"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/canidoac/webcasares/internal/model"
    "github.com/canidoac/webcasares/internal/repository"
)

// MatchHandler serves the public match calendar and the admin fixture
// panel.
type MatchHandler struct {
    Matches *repository.MatchRepo
    Reval   *Revalidator
}

func NewMatchHandler(m *repository.MatchRepo, reval *Revalidator) *MatchHandler {
    return &MatchHandler{Matches: m, Reval: reval}
}

// List handles GET /api/matches?year=2026&month=8&discipline_id=3.
// Year and month default to the current month.
func (h *MatchHandler) List(c echo.Context) error {
    now := time.Now().UTC()
    year, _ := strconv.Atoi(c.QueryParam("year"))
    if year == 0 {
        year = now.Year()
    }
    monthNum, _ := strconv.Atoi(c.QueryParam("month"))
    if monthNum < 1 || monthNum > 12 {
        monthNum = int(now.Month())
    }
    disciplineID, _ := strconv.ParseUint(c.QueryParam("discipline_id"), 10, 64)

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    items, err := h.Matches.ListByMonth(ctx, year, time.Month(monthNum), disciplineID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load matches failed"})
    }
    return c.JSON(http.StatusOK, echo.Map{"matches": items, "year": year, "month": monthNum})
}

type matchReq struct {
    DisciplineID uint64  `json:"discipline_id"`
    HomeTeam     string  `json:"home_team"`
    AwayTeam     string  `json:"away_team"`
    Venue        string  `json:"venue"`
    KickoffAt    string  `json:"kickoff_at"`
    HomeScore    *uint32 `json:"home_score"`
    AwayScore    *uint32 `json:"away_score"`
}

func (r matchReq) toModel() (model.Match, error) {
    m := model.Match{
        DisciplineID: r.DisciplineID,
        HomeTeam:     strings.TrimSpace(r.HomeTeam),
        AwayTeam:     strings.TrimSpace(r.AwayTeam),
        Venue:        strings.TrimSpace(r.Venue),
        HomeScore:    r.HomeScore,
        AwayScore:    r.AwayScore,
    }
    t, err := time.Parse(time.RFC3339, strings.TrimSpace(r.KickoffAt))
    if err != nil {
        return m, err
    }
    m.KickoffAt = t
    return m, nil
}

// Create handles POST /api/admin/matches.
func (h *MatchHandler) Create(c echo.Context) error {
    var req matchReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    if req.DisciplineID == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "discipline_id is required"})
    }
    if strings.TrimSpace(req.HomeTeam) == "" || strings.TrimSpace(req.AwayTeam) == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "home_team and away_team are required"})
    }
    m, err := req.toModel()
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid kickoff_at format"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    id, err := h.Matches.Create(ctx, &m)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create match failed"})
    }
    h.Reval.Revalidate(ctx)
    m.ID = id
    return c.JSON(http.StatusCreated, echo.Map{"match": m})
}

// Update handles PUT /api/admin/matches/:id, including score entry.
func (h *MatchHandler) Update(c echo.Context) error {
    id, err := getID(c)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    var req matchReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    m, err := req.toModel()
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid kickoff_at format"})
    }
    m.ID = id

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    if err := h.Matches.Update(ctx, &m); err != nil {
        if err == repository.ErrNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "match not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update match failed"})
    }
    h.Reval.Revalidate(ctx)
    return c.JSON(http.StatusOK, echo.Map{"match": m})
}

// Delete handles DELETE /api/admin/matches/:id.
func (h *MatchHandler) Delete(c echo.Context) error {
    id, err := getID(c)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    if err := h.Matches.Delete(ctx, id); err != nil {
        if err == repository.ErrNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "match not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete match failed"})
    }
    h.Reval.Revalidate(ctx)
    return c.NoContent(http.StatusNoContent)
}
