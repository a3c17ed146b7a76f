package handlers

import (
	"bytes"
	"encoding/json"

	"github.com/seu-repo/clinic-advisor/internal/domain"
	"github.com/seu-repo/clinic-advisor/internal/ports"
)

// decodeProfile validates an embedded profile document. Absent or null
// documents yield ErrProfileRequired.
func decodeProfile(profiles ports.ProfileService, raw json.RawMessage) (*domain.ClinicProfile, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, domain.ErrProfileRequired
	}
	return profiles.Decode(trimmed)
}
