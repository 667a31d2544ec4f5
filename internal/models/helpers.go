package models

import (
	"strings"
)

// Slugify lowercases s, turns spaces and underscores into dashes and drops
// anything outside [a-z0-9-]. Runs of spaces are not collapsed.
func Slugify(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			b.WriteRune(r)
		case r == ' ', r == '_':
			b.WriteByte('-')
		}
	}
	return b.String()
}

func canonicalToken(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	return strings.NewReplacer("-", "_", " ", "_").Replace(s)
}

// ParseProjectType accepts the canonical names plus the short forms used on
// the command line ("event", "portrait").
func ParseProjectType(s string) (ProjectType, bool) {
	switch canonicalToken(s) {
	case "EVENT", "WEDDING":
		return ProjectEvent, true
	case "PORTRAIT_SESSION", "PORTRAIT", "SESSION":
		return ProjectPortraitSession, true
	}
	return "", false
}

// ParseDeliveryMode accepts the canonical names plus "digital" and "album".
func ParseDeliveryMode(s string) (DeliveryMode, bool) {
	switch canonicalToken(s) {
	case "DIGITAL_ONLY", "DIGITAL":
		return DeliveryDigitalOnly, true
	case "DIGITAL_PLUS_ALBUM", "ALBUM", "DIGITAL_ALBUM":
		return DeliveryDigitalPlusAlbum, true
	}
	return "", false
}

// ParseChoice accepts "", the canonical names, and "in-person"/"presencial".
func ParseChoice(s string) (Choice, bool) {
	switch canonicalToken(s) {
	case "":
		return ChoiceNone, true
	case "ONLINE":
		return ChoiceOnline, true
	case "IN_PERSON", "INPERSON", "PRESENCIAL":
		return ChoiceInPerson, true
	}
	return "", false
}
