package crypto

import "golang.org/x/crypto/bcrypt"

// HashPassword hashes a password with bcrypt at the default cost. The
// salt is generated per call and embedded in the returned hash, so the
// same password never hashes to the same string twice.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword reports whether password matches the bcrypt hash.
func VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
