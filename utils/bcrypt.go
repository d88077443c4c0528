package utils

import (
	"os"
	"strconv"

	"golang.org/x/crypto/bcrypt"
)

// bcryptCost reads BCRYPT_COST so staging can run cheaper hashes than
// production; out-of-range or unset values fall back to the bcrypt default.
func bcryptCost() int {
	v, err := strconv.Atoi(os.Getenv("BCRYPT_COST"))
	if err != nil || v < bcrypt.MinCost || v > bcrypt.MaxCost {
		return bcrypt.DefaultCost
	}
	return v
}

func HashPassword(plain string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(plain), bcryptCost())
}

func ComparePassword(hashed string, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
}
