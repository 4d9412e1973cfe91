package handler

import (
    "context"
    "net/http"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/canidoac/webcasares/internal/model"
    "github.com/canidoac/webcasares/internal/repository"
)

// ClubHandler serves the public club identity, sponsor strip and
// discipline list, plus their admin panels.
type ClubHandler struct {
    Info        *repository.ClubInfoRepo
    Sponsors    *repository.SponsorRepo
    Disciplines *repository.DisciplineRepo
    Reval       *Revalidator
}

func NewClubHandler(info *repository.ClubInfoRepo, sponsors *repository.SponsorRepo, disciplines *repository.DisciplineRepo, reval *Revalidator) *ClubHandler {
    return &ClubHandler{Info: info, Sponsors: sponsors, Disciplines: disciplines, Reval: reval}
}

// GetInfo handles GET /api/club.
func (h *ClubHandler) GetInfo(c echo.Context) error {
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    info, err := h.Info.Get(ctx)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load club info failed"})
    }
    return c.JSON(http.StatusOK, echo.Map{"club": info})
}

type clubInfoReq struct {
    Name         string  `json:"name"`
    Description  string  `json:"description"`
    CrestURL     *string `json:"crest_url"`
    ContactEmail string  `json:"contact_email"`
    ContactPhone string  `json:"contact_phone"`
    Address      string  `json:"address"`
    InstagramURL *string `json:"instagram_url"`
    FacebookURL  *string `json:"facebook_url"`
}

// UpdateInfo handles PUT /api/admin/club.
func (h *ClubHandler) UpdateInfo(c echo.Context) error {
    var req clubInfoReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    info := model.ClubInfo{
        Name: strings.TrimSpace(req.Name), Description: req.Description,
        CrestURL: req.CrestURL, ContactEmail: req.ContactEmail,
        ContactPhone: req.ContactPhone, Address: req.Address,
        InstagramURL: req.InstagramURL, FacebookURL: req.FacebookURL,
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    if err := h.Info.Update(ctx, &info); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update club info failed"})
    }
    h.Reval.Revalidate(ctx)
    return c.JSON(http.StatusOK, echo.Map{"club": info})
}

// ListSponsors handles GET /api/sponsors.
func (h *ClubHandler) ListSponsors(c echo.Context) error {
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    items, err := h.Sponsors.ListActive(ctx)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load sponsors failed"})
    }
    return c.JSON(http.StatusOK, echo.Map{"sponsors": items})
}

type sponsorReq struct {
    Name     string  `json:"name"`
    LogoURL  *string `json:"logo_url"`
    WebURL   *string `json:"web_url"`
    Position uint32  `json:"position"`
    Active   bool    `json:"active"`
}

// CreateSponsor handles POST /api/admin/sponsors.
func (h *ClubHandler) CreateSponsor(c echo.Context) error {
    var req sponsorReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    if strings.TrimSpace(req.Name) == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
    }
    s := model.Sponsor{
        Name: strings.TrimSpace(req.Name), LogoURL: req.LogoURL,
        WebURL: req.WebURL, Position: req.Position, Active: req.Active,
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    id, err := h.Sponsors.Create(ctx, &s)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create sponsor failed"})
    }
    h.Reval.Revalidate(ctx)
    s.ID = id
    return c.JSON(http.StatusCreated, echo.Map{"sponsor": s})
}

// UpdateSponsor handles PUT /api/admin/sponsors/:id.
func (h *ClubHandler) UpdateSponsor(c echo.Context) error {
    id, err := getID(c)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    var req sponsorReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    s := model.Sponsor{
        ID: id, Name: strings.TrimSpace(req.Name), LogoURL: req.LogoURL,
        WebURL: req.WebURL, Position: req.Position, Active: req.Active,
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    if err := h.Sponsors.Update(ctx, &s); err != nil {
        if err == repository.ErrNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "sponsor not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update sponsor failed"})
    }
    h.Reval.Revalidate(ctx)
    return c.JSON(http.StatusOK, echo.Map{"sponsor": s})
}

// DeleteSponsor handles DELETE /api/admin/sponsors/:id.
func (h *ClubHandler) DeleteSponsor(c echo.Context) error {
    id, err := getID(c)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    if err := h.Sponsors.Delete(ctx, id); err != nil {
        if err == repository.ErrNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "sponsor not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete sponsor failed"})
    }
    h.Reval.Revalidate(ctx)
    return c.NoContent(http.StatusNoContent)
}

// ListDisciplines handles GET /api/disciplines.
func (h *ClubHandler) ListDisciplines(c echo.Context) error {
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    items, err := h.Disciplines.ListActive(ctx)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load disciplines failed"})
    }
    return c.JSON(http.StatusOK, echo.Map{"disciplines": items})
}

type disciplineReq struct {
    Name        string  `json:"name"`
    Description string  `json:"description"`
    ImageURL    *string `json:"image_url"`
    Active      bool    `json:"active"`
}

// CreateDiscipline handles POST /api/admin/disciplines.
func (h *ClubHandler) CreateDiscipline(c echo.Context) error {
    var req disciplineReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    if strings.TrimSpace(req.Name) == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
    }
    d := model.Discipline{
        Name: strings.TrimSpace(req.Name), Description: req.Description,
        ImageURL: req.ImageURL, Active: req.Active,
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    id, err := h.Disciplines.Create(ctx, &d)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create discipline failed"})
    }
    h.Reval.Revalidate(ctx)
    d.ID = id
    return c.JSON(http.StatusCreated, echo.Map{"discipline": d})
}

// UpdateDiscipline handles PUT /api/admin/disciplines/:id.
func (h *ClubHandler) UpdateDiscipline(c echo.Context) error {
    id, err := getID(c)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    var req disciplineReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    d := model.Discipline{
        ID: id, Name: strings.TrimSpace(req.Name), Description: req.Description,
        ImageURL: req.ImageURL, Active: req.Active,
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    if err := h.Disciplines.Update(ctx, &d); err != nil {
        if err == repository.ErrNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "discipline not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update discipline failed"})
    }
    h.Reval.Revalidate(ctx)
    return c.JSON(http.StatusOK, echo.Map{"discipline": d})
}

// DeleteDiscipline handles DELETE /api/admin/disciplines/:id. A
// discipline with scheduled fixtures cannot be removed.
func (h *ClubHandler) DeleteDiscipline(c echo.Context) error {
    id, err := getID(c)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    if err := h.Disciplines.Delete(ctx, id); err != nil {
        switch err {
        case repository.ErrNotFound:
            return c.JSON(http.StatusNotFound, echo.Map{"error": "discipline not found"})
        case repository.ErrConflict:
            return c.JSON(http.StatusConflict, echo.Map{"error": "discipline has fixtures"})
        default:
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete discipline failed"})
        }
    }
    h.Reval.Revalidate(ctx)
    return c.NoContent(http.StatusNoContent)
}
