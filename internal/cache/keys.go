package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
)

const (
	GlobalKeyPrefix = "coursecompass"
)

// GenerateCacheKey builds prefix:service:object:identifier, appending
// paramsKey joined by "_" when given.
func GenerateCacheKey(serviceName, objectType, identifier string, paramsKey ...string) string {
	baseKey := strings.Join([]string{GlobalKeyPrefix, serviceName, objectType, identifier}, ":")
	if len(paramsKey) > 0 {
		return strings.Join([]string{baseKey, strings.Join(paramsKey, "_")}, ":")
	}
	return baseKey
}

// HashKey shortens free-form input such as a URL into a stable key segment.
func HashKey(parts ...string) string {
	sum := sha256.Sum256([]byte(strings.Join(parts, "\x00")))
	return hex.EncodeToString(sum[:])[:32]
}

// DashboardKey is the per-user dashboard snapshot key.
func DashboardKey(userID string) string {
	return GenerateCacheKey("dashboard", "summary", userID)
}

// CourseExtractionKey identifies an extraction by URL, weekly hours and anchor date.
func CourseExtractionKey(url string, hoursPerWeek int, day string) string {
	return GenerateCacheKey("course", "extraction", HashKey(strings.TrimSpace(url)), strconv.Itoa(hoursPerWeek), day)
}
