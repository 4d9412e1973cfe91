package repository

import (
    "context"
    "database/sql"
    "strings"
    "time"

    "github.com/canidoac/webcasares/internal/model"
)

// configRowID is the fixed primary key of the singleton site_config row.
const configRowID = 1

// StatusRepo owns the site availability aggregate: the singleton
// site_config row and the site_status_definitions table. It exposes
// exactly two mutations for the config row (self-healing read and
// SetActiveStatus) so upserts do not get scattered across call sites.
type StatusRepo struct{ DB *sql.DB }

func NewStatusRepo(db *sql.DB) *StatusRepo { return &StatusRepo{DB: db} }

const definitionCols = "id,status_key,title,message,media_type,media_url,show_countdown,launch_date,redirect_url,auto_switch_to_online,final_video_url,created_at,updated_at"

func scanDefinition(row interface{ Scan(...any) error }) (model.SiteStatusDefinition, error) {
    var d model.SiteStatusDefinition
    err := row.Scan(&d.ID, &d.StatusKey, &d.Title, &d.Message, &d.MediaType, &d.MediaURL,
        &d.ShowCountdown, &d.LaunchDate, &d.RedirectURL, &d.AutoSwitchToOnline, &d.FinalVideoURL,
        &d.CreatedAt, &d.UpdatedAt)
    return d, err
}

// ListDefinitions returns every status definition ordered by id.
func (r *StatusRepo) ListDefinitions(ctx context.Context) ([]model.SiteStatusDefinition, error) {
    rows, err := r.DB.QueryContext(ctx,
        "SELECT "+definitionCols+" FROM site_status_definitions ORDER BY id")
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    var out []model.SiteStatusDefinition
    for rows.Next() {
        d, err := scanDefinition(rows)
        if err != nil {
            return nil, err
        }
        out = append(out, d)
    }
    return out, rows.Err()
}

// GetDefinition fetches one status definition by id.
func (r *StatusRepo) GetDefinition(ctx context.Context, id uint64) (model.SiteStatusDefinition, error) {
    d, err := scanDefinition(r.DB.QueryRowContext(ctx,
        "SELECT "+definitionCols+" FROM site_status_definitions WHERE id=? LIMIT 1", id))
    if err == sql.ErrNoRows {
        return d, ErrNotFound
    }
    return d, err
}

// GetDefinitionByKey fetches one status definition by its status key.
func (r *StatusRepo) GetDefinitionByKey(ctx context.Context, key string) (model.SiteStatusDefinition, error) {
    d, err := scanDefinition(r.DB.QueryRowContext(ctx,
        "SELECT "+definitionCols+" FROM site_status_definitions WHERE status_key=? LIMIT 1", key))
    if err == sql.ErrNoRows {
        return d, ErrNotFound
    }
    return d, err
}

// DefinitionPatch carries the optional fields of a partial definition
// update. Only non-nil fields are written. Empty strings on nullable
// columns clear them to NULL.
type DefinitionPatch struct {
    Title              *string
    Message            *string
    MediaType          *string
    MediaURL           *string
    ShowCountdown      *bool
    LaunchDate         *time.Time
    ClearLaunchDate    bool
    RedirectURL        *string
    AutoSwitchToOnline *bool
    FinalVideoURL      *string
}

// UpdateDefinition applies a partial update to one status definition.
// Fields absent from the patch keep their stored value.
func (r *StatusRepo) UpdateDefinition(ctx context.Context, id uint64, p DefinitionPatch) error {
    sets := make([]string, 0, 10)
    args := make([]any, 0, 10)
    set := func(col string, v any) {
        sets = append(sets, col+"=?")
        args = append(args, v)
    }
    if p.Title != nil {
        set("title", *p.Title)
    }
    if p.Message != nil {
        set("message", *p.Message)
    }
    if p.MediaType != nil {
        set("media_type", *p.MediaType)
    }
    if p.MediaURL != nil {
        set("media_url", nullIfEmpty(*p.MediaURL))
    }
    if p.ShowCountdown != nil {
        set("show_countdown", *p.ShowCountdown)
    }
    if p.LaunchDate != nil {
        set("launch_date", *p.LaunchDate)
    } else if p.ClearLaunchDate {
        set("launch_date", nil)
    }
    if p.RedirectURL != nil {
        set("redirect_url", nullIfEmpty(*p.RedirectURL))
    }
    if p.AutoSwitchToOnline != nil {
        set("auto_switch_to_online", *p.AutoSwitchToOnline)
    }
    if p.FinalVideoURL != nil {
        set("final_video_url", nullIfEmpty(*p.FinalVideoURL))
    }
    if len(sets) == 0 {
        return nil
    }
    sets = append(sets, "updated_at=CURRENT_TIMESTAMP")
    args = append(args, id)
    res, err := r.DB.ExecContext(ctx,
        "UPDATE site_status_definitions SET "+strings.Join(sets, ",")+" WHERE id=?", args...)
    if err != nil {
        return err
    }
    if n, _ := res.RowsAffected(); n == 0 {
        // Distinguish "no such row" from "nothing changed".
        var one int
        if err := r.DB.QueryRowContext(ctx,
            "SELECT 1 FROM site_status_definitions WHERE id=?", id).Scan(&one); err == sql.ErrNoRows {
            return ErrNotFound
        }
    }
    return nil
}

func nullIfEmpty(s string) any {
    if strings.TrimSpace(s) == "" {
        return nil
    }
    return s
}

// ReadConfig returns the singleton config row, creating it with a
// sensible default status when missing: prefer the online definition,
// else the first available definition, else id 1. Failure to insert is
// reported to the caller, who still treats the site as online for the
// current request.
func (r *StatusRepo) ReadConfig(ctx context.Context) (model.SiteStatusConfig, error) {
    cfg, err := r.readConfigRow(ctx)
    if err == nil {
        return cfg, nil
    }
    if err != sql.ErrNoRows {
        return cfg, err
    }
    defaultID := r.defaultStatusID(ctx)
    _, err = r.DB.ExecContext(ctx,
        "INSERT INTO site_config (id, active_status_id, show_banner, banner_text, show_popup, popup_text, registration_enabled) VALUES (?,?,FALSE,'',FALSE,'',TRUE) ON DUPLICATE KEY UPDATE id=id",
        configRowID, defaultID)
    if err != nil {
        return model.SiteStatusConfig{}, err
    }
    return r.readConfigRow(ctx)
}

func (r *StatusRepo) readConfigRow(ctx context.Context) (model.SiteStatusConfig, error) {
    var c model.SiteStatusConfig
    err := r.DB.QueryRowContext(ctx,
        "SELECT id,active_status_id,show_banner,banner_text,show_popup,popup_text,registration_enabled,updated_at FROM site_config WHERE id=? LIMIT 1",
        configRowID).Scan(&c.ID, &c.ActiveStatusID, &c.ShowBanner, &c.BannerText,
        &c.ShowPopup, &c.PopupText, &c.RegistrationEnabled, &c.UpdatedAt)
    return c, err
}

// defaultStatusID picks the status a fresh config row points at.
func (r *StatusRepo) defaultStatusID(ctx context.Context) uint64 {
    var id uint64
    err := r.DB.QueryRowContext(ctx,
        "SELECT id FROM site_status_definitions WHERE status_key=? LIMIT 1",
        model.StatusOnline).Scan(&id)
    if err == nil {
        return id
    }
    err = r.DB.QueryRowContext(ctx,
        "SELECT id FROM site_status_definitions ORDER BY id LIMIT 1").Scan(&id)
    if err == nil {
        return id
    }
    return configRowID
}

// SetActiveStatus upserts the config row's active status by fixed id 1.
// Concurrent admin edits resolve as last write wins at the store level.
func (r *StatusRepo) SetActiveStatus(ctx context.Context, statusID uint64) error {
    _, err := r.DB.ExecContext(ctx,
        "INSERT INTO site_config (id, active_status_id) VALUES (?,?) ON DUPLICATE KEY UPDATE active_status_id=VALUES(active_status_id), updated_at=CURRENT_TIMESTAMP",
        configRowID, statusID)
    return err
}

// UpdateToggles writes the presentation toggles of the config row.
func (r *StatusRepo) UpdateToggles(ctx context.Context, showBanner bool, bannerText string, showPopup bool, popupText string, registrationEnabled bool) error {
    _, err := r.DB.ExecContext(ctx,
        "UPDATE site_config SET show_banner=?, banner_text=?, show_popup=?, popup_text=?, registration_enabled=?, updated_at=CURRENT_TIMESTAMP WHERE id=?",
        showBanner, bannerText, showPopup, popupText, registrationEnabled, configRowID)
    return err
}

// Active implements gate.StatusSource: exactly one config lookup and,
// when an active status id is set, one definition lookup. A missing
// config row or missing definition yields (nil, nil), which the gate
// treats as online. It never self-heals; that is the admin read path's
// job, keeping the per-request path to two cheap SELECTs.
func (r *StatusRepo) Active(ctx context.Context) (*model.SiteStatusDefinition, error) {
    var activeID *uint64
    err := r.DB.QueryRowContext(ctx,
        "SELECT active_status_id FROM site_config WHERE id=? LIMIT 1", configRowID).Scan(&activeID)
    if err == sql.ErrNoRows {
        return nil, nil
    }
    if err != nil {
        return nil, err
    }
    if activeID == nil {
        return nil, nil
    }
    d, err := r.GetDefinition(ctx, *activeID)
    if err == ErrNotFound {
        return nil, nil
    }
    if err != nil {
        return nil, err
    }
    return &d, nil
}

// SwitchToOnline implements countdown.StatusSwitcher by pointing the
// config row at the online definition.
func (r *StatusRepo) SwitchToOnline(ctx context.Context) error {
    d, err := r.GetDefinitionByKey(ctx, model.StatusOnline)
    if err != nil {
        return err
    }
    return r.SetActiveStatus(ctx, d.ID)
}
