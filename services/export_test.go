package services

var (
	HashPassword   = hashPassword
	VerifyPassword = verifyPassword
)
