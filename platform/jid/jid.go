// Package jid turns loosely formatted WhatsApp identifiers (phone numbers,
// group ids, already-qualified addresses) into canonical JIDs.
// This is part of the platform layer and contains no business logic.
//
// All functions are pure and safe for concurrent use. None of them fail:
// malformed input falls through to a user address, possibly with an empty
// user part.
package jid

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Known JID servers.
const (
	UserServer      = "s.whatsapp.net"
	GroupServer     = "g.us"
	LIDServer       = "lid"
	BroadcastServer = "broadcast"
)

const (
	legacyGroupMinLen = 24
	largeGroupMinLen  = 18
)

// Class is the address class an identifier resolves to.
type Class int

const (
	// ClassUserNumber is a phone number that went through country normalization.
	ClassUserNumber Class = iota
	// ClassCanonicalUser is an input already addressed to s.whatsapp.net.
	ClassCanonicalUser
	// ClassGroup is an input already addressed to g.us.
	ClassGroup
	// ClassAnonymousLink is an input addressed to lid.
	ClassAnonymousLink
	// ClassBroadcast is an input addressed to a broadcast list.
	ClassBroadcast
	// ClassLegacyGroup is a hyphenated creator-timestamp group id.
	ClassLegacyGroup
	// ClassLargeGroup is a digit-only group id of 18 or more digits.
	ClassLargeGroup
)

var classNames = map[Class]string{
	ClassUserNumber:    "user_number",
	ClassCanonicalUser: "canonical_user",
	ClassGroup:         "group",
	ClassAnonymousLink: "anonymous_link",
	ClassBroadcast:     "broadcast",
	ClassLegacyGroup:   "legacy_group",
	ClassLargeGroup:    "large_group",
}

func (c Class) String() string {
	if name, ok := classNames[c]; ok {
		return name
	}
	return "unknown"
}

// Passthrough reports whether the class returns its input untouched.
func (c Class) Passthrough() bool {
	switch c {
	case ClassCanonicalUser, ClassGroup, ClassAnonymousLink, ClassBroadcast:
		return true
	default:
		return false
	}
}

// passthroughServers is checked before broadcast, which is checked before
// any digit-based inference.
var passthroughServers = []struct {
	server string
	class  Class
}{
	{GroupServer, ClassGroup},
	{UserServer, ClassCanonicalUser},
	{LIDServer, ClassAnonymousLink},
	{BroadcastServer, ClassBroadcast},
}

// Address is a classified identifier.
type Address struct {
	Class  Class
	User   string
	Server string

	// raw holds the session-stripped input for passthrough classes.
	raw string
}

// String returns the canonical identifier.
func (a Address) String() string {
	if a.Class.Passthrough() {
		return a.raw
	}
	return a.User + "@" + a.Server
}

// Normalize returns the canonical JID for raw.
func Normalize(raw string) string {
	return Parse(raw).String()
}

// Parse classifies raw and, for phone-number-like input, cleans and
// normalizes its digits.
func Parse(raw string) Address {
	stripped := StripSession(raw)

	if addr, ok := matchServer(stripped); ok {
		return addr
	}

	cleaned := clean(stripped)

	if strings.Contains(cleaned, "-") && utf8.RuneCountInString(cleaned) >= legacyGroupMinLen {
		return Address{Class: ClassLegacyGroup, User: keep(cleaned, isDigitOrHyphen), Server: GroupServer}
	}

	digits := keep(cleaned, isDigit)
	if len(digits) >= largeGroupMinLen {
		return Address{Class: ClassLargeGroup, User: digits, Server: GroupServer}
	}

	return Address{Class: ClassUserNumber, User: FormatBR(FormatMXAR(digits)), Server: UserServer}
}

// StripSession removes every ":<digits>" session or device qualifier.
func StripSession(raw string) string {
	if !strings.Contains(raw, ":") {
		return raw
	}

	var b strings.Builder
	b.Grow(len(raw))
	for i := 0; i < len(raw); i++ {
		if raw[i] == ':' && i+1 < len(raw) && isDigit(rune(raw[i+1])) {
			i++
			for i+1 < len(raw) && isDigit(rune(raw[i+1])) {
				i++
			}
			continue
		}
		b.WriteByte(raw[i])
	}
	return b.String()
}

// matchServer looks for a known server among the '@'-separated segments of
// s, ignoring surrounding whitespace. Segments must match exactly, so a
// suffix such as "@g.us.evil" matches nothing. The input is kept as is.
func matchServer(s string) (Address, bool) {
	parts := strings.Split(s, "@")
	if len(parts) < 2 {
		return Address{}, false
	}

	for _, p := range passthroughServers {
		for _, segment := range parts[1:] {
			if strings.TrimSpace(segment) == p.server {
				user := strings.TrimSpace(parts[0])
				return Address{Class: p.class, User: user, Server: p.server, raw: s}, true
			}
		}
	}
	return Address{}, false
}

// clean drops whitespace, '+', and parentheses, then truncates at the first
// ':' and the first '@'.
func clean(s string) string {
	s = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == '+' || r == '(' || r == ')' {
			return -1
		}
		return r
	}, s)

	if i := strings.IndexByte(s, ':'); i >= 0 {
		s = s[:i]
	}
	if i := strings.IndexByte(s, '@'); i >= 0 {
		s = s[:i]
	}
	return s
}

func keep(s string, allowed func(rune) bool) string {
	return strings.Map(func(r rune) rune {
		if allowed(r) {
			return r
		}
		return -1
	}, s)
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isDigitOrHyphen(r rune) bool {
	return isDigit(r) || r == '-'
}
