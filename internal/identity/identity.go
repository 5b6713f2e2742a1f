// Package identity maps submitters — authenticated or anonymous — onto the
// identifiers the rest of the system uses.
package identity

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"feednbounce-backend/internal/models"
)

// GuestPrefix tags generated guest ids; its presence on a submitter id is
// what marks a feedback record as guest-authored.
const GuestPrefix = "GST"

const userPrefix = "USR"

// Identity describes a resolved submitter. For registered users all three
// fields come from verified token claims; for guests only ExternalUserID
// (a fresh GST id) and the guest role are set.
type Identity struct {
	InternalID     string
	ExternalUserID string
	Role           string
}

func (i Identity) IsAdmin() bool { return i.Role == models.RoleAdmin }

// NewGuest synthesizes an identity for an anonymous submitter.
func NewGuest() Identity {
	return Identity{
		ExternalUserID: NewGuestID(),
		Role:           models.RoleGuest,
	}
}

// NewGuestID generates a guest id: GST + the last 8 digits of unix millis
// + 4 random characters. Practically unique at expected scale, not
// cryptographically guaranteed.
func NewGuestID() string {
	return taggedID(GuestPrefix)
}

// NewExternalUserID generates the stable business key assigned to a user
// at registration.
func NewExternalUserID() string {
	return taggedID(userPrefix)
}

func taggedID(prefix string) string {
	millis := strconv.FormatInt(time.Now().UnixMilli(), 10)
	if len(millis) > 8 {
		millis = millis[len(millis)-8:]
	}
	random := strings.ReplaceAll(uuid.NewString(), "-", "")
	return prefix + millis + strings.ToUpper(random[:4])
}

// IsGuestID reports whether a submitter id carries the guest tag.
func IsGuestID(id string) bool {
	return strings.HasPrefix(id, GuestPrefix)
}
