package handler

import (
    "context"
    "log"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/canidoac/webcasares/internal/model"
    "github.com/canidoac/webcasares/internal/queue"
    "github.com/canidoac/webcasares/internal/repository"
)

// StatusStore is the slice of the status repository the admin status
// endpoints need. *repository.StatusRepo satisfies it; tests substitute
// an in-memory fake.
type StatusStore interface {
    ListDefinitions(ctx context.Context) ([]model.SiteStatusDefinition, error)
    GetDefinition(ctx context.Context, id uint64) (model.SiteStatusDefinition, error)
    UpdateDefinition(ctx context.Context, id uint64, p repository.DefinitionPatch) error
    ReadConfig(ctx context.Context) (model.SiteStatusConfig, error)
    SetActiveStatus(ctx context.Context, statusID uint64) error
    UpdateToggles(ctx context.Context, showBanner bool, bannerText string, showPopup bool, popupText string, registrationEnabled bool) error
}

// StatusPublisher announces availability flips to the message broker.
// Publish failures never fail the request.
type StatusPublisher interface {
    PublishStatusChanged(ctx context.Context, ev queue.StatusChangedEvent) error
}

// StatusHandler serves the admin site-status endpoints. Authorization
// (403 for non-admins) is applied by the route group's RequireAdmin
// middleware.
type StatusHandler struct {
    Store     StatusStore
    Publisher StatusPublisher
    Reval     *Revalidator
}

func NewStatusHandler(store StatusStore, pub StatusPublisher, reval *Revalidator) *StatusHandler {
    return &StatusHandler{Store: store, Publisher: pub, Reval: reval}
}

// statusDefPart is the wire shape of one status definition.
type statusDefPart struct {
    ID                 uint64  `json:"id"`
    StatusKey          string  `json:"status_key"`
    Title              string  `json:"title"`
    Message            string  `json:"message"`
    MediaType          string  `json:"media_type"`
    MediaURL           *string `json:"media_url"`
    ShowCountdown      bool    `json:"show_countdown"`
    LaunchDate         *string `json:"launch_date"`
    RedirectURL        *string `json:"redirect_url"`
    AutoSwitchToOnline bool    `json:"auto_switch_to_online"`
    FinalVideoURL      *string `json:"final_video_url"`
}

func toStatusDefPart(d model.SiteStatusDefinition) statusDefPart {
    p := statusDefPart{
        ID:                 d.ID,
        StatusKey:          d.StatusKey,
        Title:              d.Title,
        Message:            d.Message,
        MediaType:          d.MediaType,
        MediaURL:           d.MediaURL,
        ShowCountdown:      d.ShowCountdown,
        RedirectURL:        d.RedirectURL,
        AutoSwitchToOnline: d.AutoSwitchToOnline,
        FinalVideoURL:      d.FinalVideoURL,
    }
    if d.LaunchDate != nil {
        s := d.LaunchDate.UTC().Format(time.RFC3339)
        p.LaunchDate = &s
    }
    return p
}

// Get handles GET /api/admin/site-status. Reading self-heals a missing
// config row: the repository creates it pointing at the online status
// (else the first definition, else id 1). A second read returns the
// same activeStatusId and never creates a second row.
func (h *StatusHandler) Get(c echo.Context) error {
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    defs, err := h.Store.ListDefinitions(ctx)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load statuses failed"})
    }
    cfg, err := h.Store.ReadConfig(ctx)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load config failed"})
    }
    parts := make([]statusDefPart, 0, len(defs))
    for _, d := range defs {
        parts = append(parts, toStatusDefPart(d))
    }
    return c.JSON(http.StatusOK, echo.Map{
        "statuses":       parts,
        "activeStatusId": cfg.ActiveStatusID,
    })
}

// statusUpdateReq is the PUT body. activeStatusId switches the active
// status; statusId plus optional fields partial-updates one definition.
// Only fields present in the body are written.
type statusUpdateReq struct {
    ActiveStatusID     *uint64 `json:"activeStatusId"`
    StatusID           *uint64 `json:"statusId"`
    Title              *string `json:"title"`
    Message            *string `json:"message"`
    MediaType          *string `json:"media_type"`
    MediaURL           *string `json:"media_url"`
    ShowCountdown      *bool   `json:"show_countdown"`
    LaunchDate         *string `json:"launch_date"`
    RedirectURL        *string `json:"redirect_url"`
    AutoSwitchToOnline *bool   `json:"auto_switch_to_online"`
    FinalVideoURL      *string `json:"final_video_url"`
}

// Put handles PUT /api/admin/site-status.
func (h *StatusHandler) Put(c echo.Context) error {
    var req statusUpdateReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    if req.ActiveStatusID == nil && req.StatusID == nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "activeStatusId or statusId required"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    if req.ActiveStatusID != nil {
        def, err := h.Store.GetDefinition(ctx, *req.ActiveStatusID)
        if err != nil {
            if err == repository.ErrNotFound {
                return c.JSON(http.StatusNotFound, echo.Map{"error": "status not found"})
            }
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load status failed"})
        }
        if err := h.Store.SetActiveStatus(ctx, def.ID); err != nil {
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update active status failed"})
        }
        h.publishChange(ctx, def)
        h.Reval.Revalidate(ctx)
        return c.JSON(http.StatusOK, echo.Map{"activeStatusId": def.ID})
    }

    patch := repository.DefinitionPatch{
        Title:              req.Title,
        Message:            req.Message,
        MediaType:          req.MediaType,
        MediaURL:           req.MediaURL,
        ShowCountdown:      req.ShowCountdown,
        RedirectURL:        req.RedirectURL,
        AutoSwitchToOnline: req.AutoSwitchToOnline,
        FinalVideoURL:      req.FinalVideoURL,
    }
    if req.LaunchDate != nil {
        if *req.LaunchDate == "" {
            patch.ClearLaunchDate = true
        } else {
            t, err := time.Parse(time.RFC3339, *req.LaunchDate)
            if err != nil {
                return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid launch_date format"})
            }
            patch.LaunchDate = &t
        }
    }
    if err := h.Store.UpdateDefinition(ctx, *req.StatusID, patch); err != nil {
        if err == repository.ErrNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "status not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update status failed"})
    }
    h.Reval.Revalidate(ctx)
    fresh, err := h.Store.GetDefinition(ctx, *req.StatusID)
    if err != nil {
        return c.JSON(http.StatusOK, echo.Map{"updated": true})
    }
    return c.JSON(http.StatusOK, toStatusDefPart(fresh))
}

type togglesReq struct {
    ShowBanner          bool   `json:"show_banner"`
    BannerText          string `json:"banner_text"`
    ShowPopup           bool   `json:"show_popup"`
    PopupText           string `json:"popup_text"`
    RegistrationEnabled bool   `json:"registration_enabled"`
}

// PutToggles handles PUT /api/admin/site-toggles: the banner, popup and
// registration switches that ride on the singleton config row.
func (h *StatusHandler) PutToggles(c echo.Context) error {
    var req togglesReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    if err := h.Store.UpdateToggles(ctx, req.ShowBanner, req.BannerText, req.ShowPopup, req.PopupText, req.RegistrationEnabled); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update toggles failed"})
    }
    h.Reval.Revalidate(ctx)
    return c.NoContent(http.StatusNoContent)
}

// publishChange emits a status.changed event; failures are logged only.
func (h *StatusHandler) publishChange(ctx context.Context, def model.SiteStatusDefinition) {
    if h.Publisher == nil {
        return
    }
    ev := queue.StatusChangedEvent{
        StatusID:  def.ID,
        StatusKey: def.StatusKey,
        ChangedAt: time.Now().UTC().Format(time.RFC3339),
        Source:    "admin",
    }
    if err := h.Publisher.PublishStatusChanged(ctx, ev); err != nil {
        log.Printf("site-status: publish change event failed: %v", err)
    }
}
