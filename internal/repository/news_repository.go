package repository

import (
    "context"
    "database/sql"
    "strings"

    "github.com/canidoac/webcasares/internal/model"
)

// NewsRepo mirrors the 'news', 'news_likes' and 'news_comments' tables.
type NewsRepo struct{ DB *sql.DB }

func NewNewsRepo(db *sql.DB) *NewsRepo { return &NewsRepo{DB: db} }

const newsCols = "id,title,body,image_url,published,published_at,author_id,created_at,updated_at"

func scanNews(row interface{ Scan(...any) error }) (model.News, error) {
    var n model.News
    err := row.Scan(&n.ID, &n.Title, &n.Body, &n.ImageURL, &n.Published, &n.PublishedAt,
        &n.AuthorID, &n.CreatedAt, &n.UpdatedAt)
    return n, err
}

// ListPublished returns published articles newest first, for the
// front-page carousel.
func (r *NewsRepo) ListPublished(ctx context.Context, limit int) ([]model.News, error) {
    if limit <= 0 {
        limit = 20
    }
    rows, err := r.DB.QueryContext(ctx,
        "SELECT "+newsCols+" FROM news WHERE published=TRUE ORDER BY published_at DESC LIMIT ?", limit)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    var out []model.News
    for rows.Next() {
        n, err := scanNews(rows)
        if err != nil {
            return nil, err
        }
        out = append(out, n)
    }
    return out, rows.Err()
}

// GetByID fetches one article.
func (r *NewsRepo) GetByID(ctx context.Context, id uint64) (model.News, error) {
    n, err := scanNews(r.DB.QueryRowContext(ctx,
        "SELECT "+newsCols+" FROM news WHERE id=? LIMIT 1", id))
    if err == sql.ErrNoRows {
        return n, ErrNotFound
    }
    return n, err
}

// Create inserts an article and returns its id.
func (r *NewsRepo) Create(ctx context.Context, n *model.News) (uint64, error) {
    res, err := r.DB.ExecContext(ctx,
        "INSERT INTO news (title, body, image_url, published, published_at, author_id) VALUES (?,?,?,?,?,?)",
        n.Title, n.Body, n.ImageURL, n.Published, n.PublishedAt, n.AuthorID)
    if err != nil {
        return 0, err
    }
    id, err := res.LastInsertId()
    return uint64(id), err
}

// Update rewrites the editable fields of an article.
func (r *NewsRepo) Update(ctx context.Context, n *model.News) error {
    res, err := r.DB.ExecContext(ctx,
        "UPDATE news SET title=?, body=?, image_url=?, published=?, published_at=?, updated_at=CURRENT_TIMESTAMP WHERE id=?",
        n.Title, n.Body, n.ImageURL, n.Published, n.PublishedAt, n.ID)
    if err != nil {
        return err
    }
    if c, _ := res.RowsAffected(); c == 0 {
        var one int
        if err := r.DB.QueryRowContext(ctx, "SELECT 1 FROM news WHERE id=?", n.ID).Scan(&one); err == sql.ErrNoRows {
            return ErrNotFound
        }
    }
    return nil
}

// Delete removes an article together with its likes and comments.
func (r *NewsRepo) Delete(ctx context.Context, id uint64) error {
    tx, err := r.DB.BeginTx(ctx, nil)
    if err != nil {
        return err
    }
    defer tx.Rollback()
    if _, err := tx.ExecContext(ctx, "DELETE FROM news_likes WHERE news_id=?", id); err != nil {
        return err
    }
    if _, err := tx.ExecContext(ctx, "DELETE FROM news_comments WHERE news_id=?", id); err != nil {
        return err
    }
    res, err := tx.ExecContext(ctx, "DELETE FROM news WHERE id=?", id)
    if err != nil {
        return err
    }
    if n, _ := res.RowsAffected(); n == 0 {
        return ErrNotFound
    }
    return tx.Commit()
}

// Like records one like per user per article. A repeated like removes
// the previous one (toggle semantics), returning the new liked state.
func (r *NewsRepo) Like(ctx context.Context, newsID, userID uint64) (bool, error) {
    res, err := r.DB.ExecContext(ctx,
        "DELETE FROM news_likes WHERE news_id=? AND user_id=?", newsID, userID)
    if err != nil {
        return false, err
    }
    if n, _ := res.RowsAffected(); n > 0 {
        return false, nil
    }
    _, err = r.DB.ExecContext(ctx,
        "INSERT INTO news_likes (news_id, user_id) VALUES (?,?)", newsID, userID)
    if err != nil {
        if strings.Contains(strings.ToLower(err.Error()), "1062") {
            return true, nil
        }
        return false, err
    }
    return true, nil
}

// LikeCount returns the number of likes on an article.
func (r *NewsRepo) LikeCount(ctx context.Context, newsID uint64) (uint64, error) {
    var n uint64
    err := r.DB.QueryRowContext(ctx,
        "SELECT COUNT(*) FROM news_likes WHERE news_id=?", newsID).Scan(&n)
    return n, err
}

// AddComment appends a member comment to an article.
func (r *NewsRepo) AddComment(ctx context.Context, c *model.NewsComment) (uint64, error) {
    res, err := r.DB.ExecContext(ctx,
        "INSERT INTO news_comments (news_id, user_id, body) VALUES (?,?,?)",
        c.NewsID, c.UserID, c.Body)
    if err != nil {
        return 0, err
    }
    id, err := res.LastInsertId()
    return uint64(id), err
}

// ListComments returns the comments of an article oldest first.
func (r *NewsRepo) ListComments(ctx context.Context, newsID uint64) ([]model.NewsComment, error) {
    rows, err := r.DB.QueryContext(ctx,
        "SELECT id,news_id,user_id,body,created_at FROM news_comments WHERE news_id=? ORDER BY created_at", newsID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    var out []model.NewsComment
    for rows.Next() {
        var c model.NewsComment
        if err := rows.Scan(&c.ID, &c.NewsID, &c.UserID, &c.Body, &c.CreatedAt); err != nil {
            return nil, err
        }
        out = append(out, c)
    }
    return out, rows.Err()
}

// DeleteComment removes a comment. Non-admin callers may only delete
// their own comments; attempting another member's comment yields
// ErrForbidden.
func (r *NewsRepo) DeleteComment(ctx context.Context, id, userID uint64, isAdmin bool) error {
    var owner uint64
    err := r.DB.QueryRowContext(ctx,
        "SELECT user_id FROM news_comments WHERE id=? LIMIT 1", id).Scan(&owner)
    if err == sql.ErrNoRows {
        return ErrNotFound
    }
    if err != nil {
        return err
    }
    if !isAdmin && owner != userID {
        return ErrForbidden
    }
    _, err = r.DB.ExecContext(ctx, "DELETE FROM news_comments WHERE id=?", id)
    return err
}
