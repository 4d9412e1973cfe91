package repository

import (
    "context"
    "database/sql"
    "time"

    "github.com/canidoac/webcasares/internal/model"
)

// MatchRepo mirrors the 'matches' table backing the match calendar.
type MatchRepo struct{ DB *sql.DB }

func NewMatchRepo(db *sql.DB) *MatchRepo { return &MatchRepo{DB: db} }

const matchCols = "id,discipline_id,home_team,away_team,venue,kickoff_at,home_score,away_score,created_at,updated_at"

func scanMatch(row interface{ Scan(...any) error }) (model.Match, error) {
    var m model.Match
    err := row.Scan(&m.ID, &m.DisciplineID, &m.HomeTeam, &m.AwayTeam, &m.Venue,
        &m.KickoffAt, &m.HomeScore, &m.AwayScore, &m.CreatedAt, &m.UpdatedAt)
    return m, err
}

// ListByMonth returns fixtures whose kickoff falls inside the given
// month, ordered chronologically. disciplineID 0 means all disciplines.
func (r *MatchRepo) ListByMonth(ctx context.Context, year int, month time.Month, disciplineID uint64) ([]model.Match, error) {
    from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
    to := from.AddDate(0, 1, 0)
    q := "SELECT " + matchCols + " FROM matches WHERE kickoff_at >= ? AND kickoff_at < ?"
    args := []any{from, to}
    if disciplineID != 0 {
        q += " AND discipline_id = ?"
        args = append(args, disciplineID)
    }
    q += " ORDER BY kickoff_at"
    rows, err := r.DB.QueryContext(ctx, q, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    var out []model.Match
    for rows.Next() {
        m, err := scanMatch(rows)
        if err != nil {
            return nil, err
        }
        out = append(out, m)
    }
    return out, rows.Err()
}

// Create inserts a fixture and returns its id.
func (r *MatchRepo) Create(ctx context.Context, m *model.Match) (uint64, error) {
    res, err := r.DB.ExecContext(ctx,
        "INSERT INTO matches (discipline_id, home_team, away_team, venue, kickoff_at, home_score, away_score) VALUES (?,?,?,?,?,?,?)",
        m.DisciplineID, m.HomeTeam, m.AwayTeam, m.Venue, m.KickoffAt, m.HomeScore, m.AwayScore)
    if err != nil {
        return 0, err
    }
    id, err := res.LastInsertId()
    return uint64(id), err
}

// Update rewrites a fixture, including recording the final score.
func (r *MatchRepo) Update(ctx context.Context, m *model.Match) error {
    res, err := r.DB.ExecContext(ctx,
        "UPDATE matches SET discipline_id=?, home_team=?, away_team=?, venue=?, kickoff_at=?, home_score=?, away_score=?, updated_at=CURRENT_TIMESTAMP WHERE id=?",
        m.DisciplineID, m.HomeTeam, m.AwayTeam, m.Venue, m.KickoffAt, m.HomeScore, m.AwayScore, m.ID)
    if err != nil {
        return err
    }
    if n, _ := res.RowsAffected(); n == 0 {
        var one int
        if err := r.DB.QueryRowContext(ctx, "SELECT 1 FROM matches WHERE id=?", m.ID).Scan(&one); err == sql.ErrNoRows {
            return ErrNotFound
        }
    }
    return nil
}

// Delete removes a fixture.
func (r *MatchRepo) Delete(ctx context.Context, id uint64) error {
    res, err := r.DB.ExecContext(ctx, "DELETE FROM matches WHERE id=?", id)
    if err != nil {
        return err
    }
    if n, _ := res.RowsAffected(); n == 0 {
        return ErrNotFound
    }
    return nil
}
