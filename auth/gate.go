// Package auth holds the admin gate: a shared access key, a single admin
// account and the bearer tokens issued after a successful login.
package auth

import (
	"crypto/subtle"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

// Gate compares submitted secrets against the configured ones.
type Gate struct {
	accessKey    []byte
	username     string
	passwordHash []byte
}

// NewGate hashes the admin password once so it is never compared in plain text.
func NewGate(accessKey, username, password string, cost int) (*Gate, error) {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return nil, errors.Wrap(err, "hashing admin password")
	}
	return &Gate{
		accessKey:    []byte(accessKey),
		username:     username,
		passwordHash: hash,
	}, nil
}

func (g *Gate) VerifyKey(code string) bool {
	return subtle.ConstantTimeCompare([]byte(code), g.accessKey) == 1
}

func (g *Gate) Login(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(g.username)) == 1
	// always run bcrypt so a wrong username costs the same as a wrong password
	passOK := bcrypt.CompareHashAndPassword(g.passwordHash, []byte(password)) == nil
	return userOK && passOK
}
