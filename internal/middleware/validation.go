package middleware

import (
	"regexp"
	"strings"

	"github.com/gofiber/fiber/v3"
)

// Field length limits matching database schema constraints.
const (
	MaxChannelIDLen = 32  // channels.channel_id VARCHAR(32)
	MaxUserIDLen    = 64  // user_profiles.user_id VARCHAR(64)
	MaxChannelInput = 256 // free-form channel field (handle or URL)
)

var (
	// channelIDRe matches canonical channel IDs: alphanumeric, dash, underscore.
	channelIDRe = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
	// userIDRe matches user IDs: hex hashes up to 64 chars.
	userIDRe = regexp.MustCompile(`^[0-9a-f]+$`)
)

// ErrorResponse is a helper that returns a standard API error response.
func ErrorResponse(c fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    code,
			"message": message,
		},
	})
}

// ValidateChannelID checks that a canonical channel ID is well-formed.
func ValidateChannelID(id string) (string, string) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", "channelId is required"
	}
	if len(id) > MaxChannelIDLen {
		return "", "channelId must be at most 32 characters"
	}
	if !channelIDRe.MatchString(id) {
		return "", "channelId contains invalid characters"
	}
	return id, ""
}

// ValidateChannelInput checks the free-form channel field of an
// add-competitor request (raw ID, handle, or URL). Shape resolution is the
// resolver's job; this only rejects blank or absurdly long input.
func ValidateChannelInput(input string) (string, string) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", "channel is required"
	}
	if len(input) > MaxChannelInput {
		return "", "channel must be at most 256 characters"
	}
	return input, ""
}

// ValidateUserID checks that a user ID is a valid hex hash.
func ValidateUserID(id string) (string, string) {
	id = strings.TrimSpace(strings.ToLower(id))
	if id == "" {
		return "", "userId is required"
	}
	if len(id) > MaxUserIDLen {
		return "", "userId must be at most 64 characters"
	}
	if !userIDRe.MatchString(id) {
		return "", "userId must be a hexadecimal hash"
	}
	return id, ""
}
