package domain

// RoleManager is the only role permitted to authenticate and decide claims.
const RoleManager = "Manager"

type User struct {
	ID           int64
	Username     string
	PasswordHash string // argon2id PHC string
	Role         string
}

func (u User) IsManager() bool { return u.Role == RoleManager }
