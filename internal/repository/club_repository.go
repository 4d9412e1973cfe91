package repository

import (
    "context"
    "database/sql"

    "github.com/canidoac/webcasares/internal/model"
)

// clubInfoRowID is the fixed primary key of the singleton club_info row.
const clubInfoRowID = 1

// ClubInfoRepo owns the singleton club_info row.
type ClubInfoRepo struct{ DB *sql.DB }

func NewClubInfoRepo(db *sql.DB) *ClubInfoRepo { return &ClubInfoRepo{DB: db} }

// Get returns the club identity row, creating an empty one when the
// site has not been configured yet.
func (r *ClubInfoRepo) Get(ctx context.Context) (model.ClubInfo, error) {
    var c model.ClubInfo
    err := r.DB.QueryRowContext(ctx,
        "SELECT id,name,description,crest_url,contact_email,contact_phone,address,instagram_url,facebook_url,updated_at FROM club_info WHERE id=? LIMIT 1",
        clubInfoRowID).Scan(&c.ID, &c.Name, &c.Description, &c.CrestURL, &c.ContactEmail,
        &c.ContactPhone, &c.Address, &c.InstagramURL, &c.FacebookURL, &c.UpdatedAt)
    if err == sql.ErrNoRows {
        if _, err := r.DB.ExecContext(ctx,
            "INSERT INTO club_info (id, name, description, contact_email, contact_phone, address) VALUES (?,'','','','','') ON DUPLICATE KEY UPDATE id=id",
            clubInfoRowID); err != nil {
            return c, err
        }
        return r.Get(ctx)
    }
    return c, err
}

// Update rewrites the club identity row.
func (r *ClubInfoRepo) Update(ctx context.Context, c *model.ClubInfo) error {
    _, err := r.DB.ExecContext(ctx,
        "UPDATE club_info SET name=?, description=?, crest_url=?, contact_email=?, contact_phone=?, address=?, instagram_url=?, facebook_url=?, updated_at=CURRENT_TIMESTAMP WHERE id=?",
        c.Name, c.Description, c.CrestURL, c.ContactEmail, c.ContactPhone, c.Address,
        c.InstagramURL, c.FacebookURL, clubInfoRowID)
    return err
}

// SponsorRepo mirrors the 'sponsors' table.
type SponsorRepo struct{ DB *sql.DB }

func NewSponsorRepo(db *sql.DB) *SponsorRepo { return &SponsorRepo{DB: db} }

// ListActive returns active sponsors in display order.
func (r *SponsorRepo) ListActive(ctx context.Context) ([]model.Sponsor, error) {
    rows, err := r.DB.QueryContext(ctx,
        "SELECT id,name,logo_url,web_url,position,active,created_at FROM sponsors WHERE active=TRUE ORDER BY position,id")
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    var out []model.Sponsor
    for rows.Next() {
        var s model.Sponsor
        if err := rows.Scan(&s.ID, &s.Name, &s.LogoURL, &s.WebURL, &s.Position, &s.Active, &s.CreatedAt); err != nil {
            return nil, err
        }
        out = append(out, s)
    }
    return out, rows.Err()
}

// Create inserts a sponsor and returns its id.
func (r *SponsorRepo) Create(ctx context.Context, s *model.Sponsor) (uint64, error) {
    res, err := r.DB.ExecContext(ctx,
        "INSERT INTO sponsors (name, logo_url, web_url, position, active) VALUES (?,?,?,?,?)",
        s.Name, s.LogoURL, s.WebURL, s.Position, s.Active)
    if err != nil {
        return 0, err
    }
    id, err := res.LastInsertId()
    return uint64(id), err
}

// Update rewrites a sponsor.
func (r *SponsorRepo) Update(ctx context.Context, s *model.Sponsor) error {
    res, err := r.DB.ExecContext(ctx,
        "UPDATE sponsors SET name=?, logo_url=?, web_url=?, position=?, active=? WHERE id=?",
        s.Name, s.LogoURL, s.WebURL, s.Position, s.Active, s.ID)
    if err != nil {
        return err
    }
    if n, _ := res.RowsAffected(); n == 0 {
        var one int
        if err := r.DB.QueryRowContext(ctx, "SELECT 1 FROM sponsors WHERE id=?", s.ID).Scan(&one); err == sql.ErrNoRows {
            return ErrNotFound
        }
    }
    return nil
}

// Delete removes a sponsor.
func (r *SponsorRepo) Delete(ctx context.Context, id uint64) error {
    res, err := r.DB.ExecContext(ctx, "DELETE FROM sponsors WHERE id=?", id)
    if err != nil {
        return err
    }
    if n, _ := res.RowsAffected(); n == 0 {
        return ErrNotFound
    }
    return nil
}

// DisciplineRepo mirrors the 'disciplines' table.
type DisciplineRepo struct{ DB *sql.DB }

func NewDisciplineRepo(db *sql.DB) *DisciplineRepo { return &DisciplineRepo{DB: db} }

// ListActive returns active disciplines ordered by name.
func (r *DisciplineRepo) ListActive(ctx context.Context) ([]model.Discipline, error) {
    rows, err := r.DB.QueryContext(ctx,
        "SELECT id,name,description,image_url,active,created_at FROM disciplines WHERE active=TRUE ORDER BY name")
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    var out []model.Discipline
    for rows.Next() {
        var d model.Discipline
        if err := rows.Scan(&d.ID, &d.Name, &d.Description, &d.ImageURL, &d.Active, &d.CreatedAt); err != nil {
            return nil, err
        }
        out = append(out, d)
    }
    return out, rows.Err()
}

// Create inserts a discipline and returns its id.
func (r *DisciplineRepo) Create(ctx context.Context, d *model.Discipline) (uint64, error) {
    res, err := r.DB.ExecContext(ctx,
        "INSERT INTO disciplines (name, description, image_url, active) VALUES (?,?,?,?)",
        d.Name, d.Description, d.ImageURL, d.Active)
    if err != nil {
        return 0, err
    }
    id, err := res.LastInsertId()
    return uint64(id), err
}

// Update rewrites a discipline.
func (r *DisciplineRepo) Update(ctx context.Context, d *model.Discipline) error {
    res, err := r.DB.ExecContext(ctx,
        "UPDATE disciplines SET name=?, description=?, image_url=?, active=? WHERE id=?",
        d.Name, d.Description, d.ImageURL, d.Active, d.ID)
    if err != nil {
        return err
    }
    if n, _ := res.RowsAffected(); n == 0 {
        var one int
        if err := r.DB.QueryRowContext(ctx, "SELECT 1 FROM disciplines WHERE id=?", d.ID).Scan(&one); err == sql.ErrNoRows {
            return ErrNotFound
        }
    }
    return nil
}

// Delete removes a discipline. Fixtures referencing it block deletion.
func (r *DisciplineRepo) Delete(ctx context.Context, id uint64) error {
    var n int
    if err := r.DB.QueryRowContext(ctx,
        "SELECT COUNT(*) FROM matches WHERE discipline_id=?", id).Scan(&n); err != nil {
        return err
    }
    if n > 0 {
        return ErrConflict
    }
    res, err := r.DB.ExecContext(ctx, "DELETE FROM disciplines WHERE id=?", id)
    if err != nil {
        return err
    }
    if c, _ := res.RowsAffected(); c == 0 {
        return ErrNotFound
    }
    return nil
}
