package repository

import "golang.org/x/crypto/bcrypt"

// Work factor for password hashing. bcrypt embeds it in the encoded hash,
// so it can be raised later without invalidating existing records.
const bcryptCost = 10

// HashPassword hashes a password using bcrypt with a fresh random salt.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	return string(bytes), err
}

// CheckPasswordHash compares a password with a hash in constant time.
// A wrong password returns false, never an error.
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
