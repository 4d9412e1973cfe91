package repository

import (
    "context"
    "database/sql"
    "fmt"
    "strings"

    "github.com/canidoac/webcasares/internal/model"
    "github.com/canidoac/webcasares/internal/utils"
)

// UserRepo mirrors the 'users' table.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

const userCols = "id,email,password_hash,role_id,first_name,last_name,member_number,email_verified,is_active,created_at,updated_at"

func scanUser(row interface{ Scan(...any) error }) (model.User, error) {
    var u model.User
    err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.RoleID, &u.FirstName, &u.LastName,
        &u.MemberNumber, &u.EmailVerified, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
    return u, err
}

// Create inserts a member, assigns a member number derived from the new
// id and returns the id.
func (r *UserRepo) Create(ctx context.Context, email, password, firstName, lastName string, roleID uint8, cost int) (uint64, error) {
    email = strings.ToLower(strings.TrimSpace(email))
    hash, err := utils.HashPassword(password, cost)
    if err != nil {
        return 0, err
    }
    res, err := r.DB.ExecContext(ctx,
        "INSERT INTO users (email, password_hash, role_id, first_name, last_name) VALUES (?,?,?,?,?)",
        email, hash, roleID, firstName, lastName)
    if err != nil {
        if strings.Contains(strings.ToLower(err.Error()), "1062") {
            return 0, ErrEmailExists
        }
        return 0, err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return 0, err
    }
    // Member number printed on the generated membership card.
    num := fmt.Sprintf("CDC-%05d", id)
    if _, err := r.DB.ExecContext(ctx,
        "UPDATE users SET member_number=? WHERE id=?", num, id); err != nil {
        return 0, err
    }
    return uint64(id), nil
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
    email = strings.ToLower(strings.TrimSpace(email))
    u, err := scanUser(r.DB.QueryRowContext(ctx,
        "SELECT "+userCols+" FROM users WHERE email=? LIMIT 1", email))
    if err == sql.ErrNoRows {
        return u, ErrNotFound
    }
    return u, err
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
    u, err := scanUser(r.DB.QueryRowContext(ctx,
        "SELECT "+userCols+" FROM users WHERE id=? LIMIT 1", id))
    if err == sql.ErrNoRows {
        return u, ErrNotFound
    }
    return u, err
}

// List returns all users ordered by id, for the admin user panel.
func (r *UserRepo) List(ctx context.Context) ([]model.User, error) {
    rows, err := r.DB.QueryContext(ctx, "SELECT "+userCols+" FROM users ORDER BY id")
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    var out []model.User
    for rows.Next() {
        u, err := scanUser(rows)
        if err != nil {
            return nil, err
        }
        out = append(out, u)
    }
    return out, rows.Err()
}

// UpdateRole changes a user's role.
func (r *UserRepo) UpdateRole(ctx context.Context, id uint64, roleID uint8) error {
    res, err := r.DB.ExecContext(ctx,
        "UPDATE users SET role_id=?, updated_at=CURRENT_TIMESTAMP WHERE id=?", roleID, id)
    if err != nil {
        return err
    }
    if n, _ := res.RowsAffected(); n == 0 {
        return ErrNotFound
    }
    return nil
}

// UpdateProfile writes the display fields a member may edit. The
// handler reissues the session cookie afterwards so the cookie never
// drifts from the stored profile.
func (r *UserRepo) UpdateProfile(ctx context.Context, id uint64, firstName, lastName string) error {
    res, err := r.DB.ExecContext(ctx,
        "UPDATE users SET first_name=?, last_name=?, updated_at=CURRENT_TIMESTAMP WHERE id=?",
        firstName, lastName, id)
    if err != nil {
        return err
    }
    if n, _ := res.RowsAffected(); n == 0 {
        return ErrNotFound
    }
    return nil
}

// RoleRepo mirrors the 'roles' table.
type RoleRepo struct{ DB *sql.DB }

func NewRoleRepo(db *sql.DB) *RoleRepo { return &RoleRepo{DB: db} }

// List returns all roles ordered by id.
func (r *RoleRepo) List(ctx context.Context) ([]model.Role, error) {
    rows, err := r.DB.QueryContext(ctx, "SELECT id,name FROM roles ORDER BY id")
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    var out []model.Role
    for rows.Next() {
        var role model.Role
        if err := rows.Scan(&role.ID, &role.Name); err != nil {
            return nil, err
        }
        out = append(out, role)
    }
    return out, rows.Err()
}
