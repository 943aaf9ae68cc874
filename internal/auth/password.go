package auth

import "golang.org/x/crypto/bcrypt"

var dummyHash []byte

func init() {
	// Hash of a throwaway value, compared against when a login names an
	// unknown username so the request still costs one bcrypt comparison.
	h, err := bcrypt.GenerateFromPassword([]byte("medtrack.dummy"), bcrypt.DefaultCost)
	if err == nil {
		dummyHash = h
	}
}

// HashPassword generates a bcrypt hash of the password.
func HashPassword(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

// CheckPassword compares a bcrypt hashed password with its possible plaintext
// equivalent. Returns true if the password and hash match, false otherwise.
func CheckPassword(password, hashedPassword string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	return err == nil
}

// BurnComparison performs a bcrypt comparison that always fails, keeping
// login latency comparable whether or not the username exists.
func BurnComparison(password string) {
	_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
}
