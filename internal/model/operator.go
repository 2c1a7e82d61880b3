package model

import (
	"golang.org/x/crypto/bcrypt"
)

// Operator is the single shop account allowed to use the API. It lives in
// configuration, not in the ledger.
type Operator struct {
	Name         string `json:"name"`
	PasswordHash string `json:"-"`
}

// SetPassword hashes and sets the operator's password
func (o *Operator) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	o.PasswordHash = string(hashedPassword)
	return nil
}

// CheckPassword verifies if the provided password matches the stored hash
func (o *Operator) CheckPassword(password string) bool {
	if o.PasswordHash == "" {
		return false
	}
	err := bcrypt.CompareHashAndPassword([]byte(o.PasswordHash), []byte(password))
	return err == nil
}
