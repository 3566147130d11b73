package apikey

import (
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

// MaxDescriptionLength is the maximum amount of characters an API key description may consist of
const MaxDescriptionLength = 256

// Key represents an API key used to access the register API
type Key struct {
	ID           uuid.UUID    `json:"id"`
	Key          []byte       `json:"-"`
	Description  string       `json:"description"`
	Quota        int64        `json:"quota"`
	UsedQuota    int64        `json:"used_quota"`
	Capabilities Capabilities `json:"capabilities"`
}

// SanitizeDescription trims the given description and cuts it off at MaxDescriptionLength characters
func SanitizeDescription(description string) string {
	description = strings.TrimSpace(description)
	if utf8.RuneCountInString(description) <= MaxDescriptionLength {
		return description
	}
	return string([]rune(description)[:MaxDescriptionLength])
}
