package utils

import "golang.org/x/crypto/bcrypt"

// HashPassword hashes a member password with bcrypt. Costs outside the
// valid bcrypt range are clamped rather than rejected so a misconfigured
// BCRYPT_COST cannot break registration.
func HashPassword(plain string, cost int) (string, error) {
    if cost < bcrypt.MinCost {
        cost = bcrypt.DefaultCost
    }
    if cost > bcrypt.MaxCost {
        cost = bcrypt.MaxCost
    }
    b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
    if err != nil {
        return "", err
    }
    return string(b), nil
}

// VerifyPassword compares a stored hash with a login attempt in constant
// time. It returns false for any mismatch or malformed hash.
func VerifyPassword(hash, plain string) bool {
    return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
