package domain

import (
	"time"

	"github.com/google/uuid"
)

// SignupRecord is a waitlist signup. At most one live record exists per
// normalized email per retention partition; DedupKey is the fingerprint
// of the normalized email and enforces that together with Partition.
type SignupRecord struct {
	ID          uuid.UUID `db:"id"`
	Partition   string    `db:"partition"`
	DedupKey    string    `db:"dedup_key"`
	Email       string    `db:"email"`
	UTMSource   *string   `db:"utm_source"`
	UTMMedium   *string   `db:"utm_medium"`
	UTMCampaign *string   `db:"utm_campaign"`
	Tags        []string  `db:"tags"`
	Referrer    *string   `db:"referrer"`
	Consent     bool      `db:"consent"`
	CreatedAt   time.Time `db:"created_at"`
}
