package repository

import (
    "context"
    "database/sql"
    "strings"

    "github.com/canidoac/webcasares/internal/model"
)

// SurveyRepo mirrors the 'surveys', 'survey_options' and 'survey_votes'
// tables. Votes are unique per (survey, user) at the schema level.
type SurveyRepo struct{ DB *sql.DB }

func NewSurveyRepo(db *sql.DB) *SurveyRepo { return &SurveyRepo{DB: db} }

// ListActive returns surveys currently accepting votes, each with its
// options and the running tallies.
func (r *SurveyRepo) ListActive(ctx context.Context) ([]model.Survey, map[uint64][]model.SurveyOption, error) {
    rows, err := r.DB.QueryContext(ctx,
        "SELECT id,question,active,closes_at,created_at FROM surveys WHERE active=TRUE ORDER BY created_at DESC")
    if err != nil {
        return nil, nil, err
    }
    defer rows.Close()
    var surveys []model.Survey
    for rows.Next() {
        var s model.Survey
        if err := rows.Scan(&s.ID, &s.Question, &s.Active, &s.ClosesAt, &s.CreatedAt); err != nil {
            return nil, nil, err
        }
        surveys = append(surveys, s)
    }
    if err := rows.Err(); err != nil {
        return nil, nil, err
    }
    options := make(map[uint64][]model.SurveyOption, len(surveys))
    for _, s := range surveys {
        opts, err := r.Options(ctx, s.ID)
        if err != nil {
            return nil, nil, err
        }
        options[s.ID] = opts
    }
    return surveys, options, nil
}

// Options returns the options of a survey ordered by id.
func (r *SurveyRepo) Options(ctx context.Context, surveyID uint64) ([]model.SurveyOption, error) {
    rows, err := r.DB.QueryContext(ctx,
        "SELECT id,survey_id,label,votes FROM survey_options WHERE survey_id=? ORDER BY id", surveyID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    var out []model.SurveyOption
    for rows.Next() {
        var o model.SurveyOption
        if err := rows.Scan(&o.ID, &o.SurveyID, &o.Label, &o.Votes); err != nil {
            return nil, err
        }
        out = append(out, o)
    }
    return out, rows.Err()
}

// Create inserts a survey with its options in one transaction.
func (r *SurveyRepo) Create(ctx context.Context, s *model.Survey, labels []string) (uint64, error) {
    tx, err := r.DB.BeginTx(ctx, nil)
    if err != nil {
        return 0, err
    }
    defer tx.Rollback()
    res, err := tx.ExecContext(ctx,
        "INSERT INTO surveys (question, active, closes_at) VALUES (?,?,?)",
        s.Question, s.Active, s.ClosesAt)
    if err != nil {
        return 0, err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return 0, err
    }
    for _, label := range labels {
        if _, err := tx.ExecContext(ctx,
            "INSERT INTO survey_options (survey_id, label, votes) VALUES (?,?,0)", id, label); err != nil {
            return 0, err
        }
    }
    if err := tx.Commit(); err != nil {
        return 0, err
    }
    return uint64(id), nil
}

// Vote records one vote per user per survey and bumps the option tally.
// A second vote by the same user yields ErrConflict and leaves the
// tallies untouched.
func (r *SurveyRepo) Vote(ctx context.Context, surveyID, optionID, userID uint64) error {
    tx, err := r.DB.BeginTx(ctx, nil)
    if err != nil {
        return err
    }
    defer tx.Rollback()
    var active bool
    err = tx.QueryRowContext(ctx,
        "SELECT active FROM surveys WHERE id=? LIMIT 1", surveyID).Scan(&active)
    if err == sql.ErrNoRows {
        return ErrNotFound
    }
    if err != nil {
        return err
    }
    if !active {
        return ErrConflict
    }
    if _, err := tx.ExecContext(ctx,
        "INSERT INTO survey_votes (survey_id, option_id, user_id) VALUES (?,?,?)",
        surveyID, optionID, userID); err != nil {
        if strings.Contains(strings.ToLower(err.Error()), "1062") {
            return ErrConflict
        }
        return err
    }
    res, err := tx.ExecContext(ctx,
        "UPDATE survey_options SET votes=votes+1 WHERE id=? AND survey_id=?", optionID, surveyID)
    if err != nil {
        return err
    }
    if n, _ := res.RowsAffected(); n == 0 {
        return ErrNotFound
    }
    return tx.Commit()
}

// Close stops a survey from accepting votes.
func (r *SurveyRepo) Close(ctx context.Context, id uint64) error {
    res, err := r.DB.ExecContext(ctx,
        "UPDATE surveys SET active=FALSE WHERE id=?", id)
    if err != nil {
        return err
    }
    if n, _ := res.RowsAffected(); n == 0 {
        return ErrNotFound
    }
    return nil
}
