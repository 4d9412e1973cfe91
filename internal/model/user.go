package model

import "time"

// Well-known role identifiers seeded by the migrations. Privilege
// resolution for the availability gate compares against the admin and
// developer roles only; everything else is resolved through the
// role-permission tables by the admin panels.
const (
    RoleAdmin     uint8 = 1
    RoleDeveloper uint8 = 2
    RoleMember    uint8 = 3
)

// User represents a member record as stored in the `users` table.
// The json tags are omitted because these structs are used internally
// by the repository layer; handlers define separate response types.
//
// Fields:
//  ID            – primary key identifier of the user.
//  Email         – unique email address.
//  PasswordHash  – bcrypt hashed password.
//  RoleID        – foreign key into the roles table (tinyint).
//  FirstName     – display name shown on the membership card.
//  LastName      – display surname.
//  MemberNumber  – printed on the generated membership card (nullable).
//  EmailVerified – whether the address has been confirmed.
//  IsActive      – whether the account is active.
//  CreatedAt     – timestamp of creation.
//  UpdatedAt     – timestamp of last update.
type User struct {
    ID            uint64    // users.id
    Email         string    // users.email
    PasswordHash  string    // users.password_hash
    RoleID        uint8     // users.role_id (references roles.id)
    FirstName     string    // users.first_name
    LastName      string    // users.last_name
    MemberNumber  *string   // users.member_number (nullable)
    EmailVerified bool      // users.email_verified
    IsActive      bool      // users.is_active
    CreatedAt     time.Time // users.created_at
    UpdatedAt     time.Time // users.updated_at
}

// Role represents a row in the `roles` table. It maps a small integer
// ID to a role name; users reference this table via RoleID.
//
// Fields:
//  ID   – numeric identifier of the role.
//  Name – unique role name (e.g. ADMIN, DEVELOPER, MEMBER).
type Role struct {
    ID   uint8  // roles.id
    Name string // roles.name
}
