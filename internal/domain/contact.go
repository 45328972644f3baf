package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Topic classifies a contact message.
type Topic string

const (
	TopicGeneral   Topic = "general"
	TopicInvestor  Topic = "investor"
	TopicPress     Topic = "press"
	TopicClinician Topic = "clinician"
)

// ParseTopic returns the Topic matching s (case-insensitive) and whether
// it is one of the known topics.
func ParseTopic(s string) (Topic, bool) {
	switch Topic(strings.ToLower(strings.TrimSpace(s))) {
	case TopicGeneral:
		return TopicGeneral, true
	case TopicInvestor:
		return TopicInvestor, true
	case TopicPress:
		return TopicPress, true
	case TopicClinician:
		return TopicClinician, true
	}
	return "", false
}

// topicKeywords is an ordered rule list, not a classifier: the first
// category whose keyword appears in the message wins.
var topicKeywords = []struct {
	topic    Topic
	keywords []string
}{
	{TopicInvestor, []string{"invest", "funding"}},
	{TopicPress, []string{"press", "media", "article"}},
	{TopicClinician, []string{"clinic", "doctor", "patient"}},
}

// InferTopic scans the lowercased message body for keyword sets and
// returns the first matching category, or TopicGeneral when none match.
// Check order: investor, press, clinician.
func InferTopic(message string) Topic {
	lower := strings.ToLower(message)
	for _, rule := range topicKeywords {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.topic
			}
		}
	}
	return TopicGeneral
}

// ContactRecord is a single contact-form submission. Contact intake is
// never deduplicated; every validated submission becomes a new record
// keyed by (day partition, content hash).
type ContactRecord struct {
	ID        uuid.UUID `db:"id"`
	Partition string    `db:"partition"`
	RowKey    string    `db:"row_key"`
	Email     string    `db:"email"`
	Message   string    `db:"message"`
	Topic     Topic     `db:"topic"`
	Priority  bool      `db:"priority"`
	UserAgent string    `db:"user_agent"`
	CreatedAt time.Time `db:"created_at"`
}
