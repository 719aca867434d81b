package keygen

import (
	"github.com/google/uuid"

	"filegate/internal/domain"
)

// Func produces a new storage key on every call.
type Func func() string

// New returns a random (v4) UUID with the PDF extension appended.
// uuid.New panics if the system entropy source fails; that is treated as fatal.
func New() string {
	return uuid.New().String() + domain.PDFExtension
}
