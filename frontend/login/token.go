package login

import (
	"strings"

	"github.com/google/uuid"
)

// newSessionToken returns two random UUIDs joined without dashes.
func newSessionToken() string {
	return strings.ReplaceAll(uuid.NewString()+uuid.NewString(), "-", "")
}
