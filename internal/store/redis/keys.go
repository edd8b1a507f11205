package redis

import (
	"fmt"
	"strings"
)

const (
	// KeyPrefixSession is the prefix for every session-scoped key
	KeyPrefixSession = "ytdown:session:"
)

// SessionKey returns the Redis key for a value inside a session namespace
func SessionKey(sessionID, key string) string {
	return KeyPrefixSession + sessionID + ":" + key
}

// SessionPattern returns the SCAN pattern matching every key of every session
func SessionPattern() string {
	return KeyPrefixSession + "*"
}

// ExtractSessionID extracts the session ID from a Redis key
func ExtractSessionID(key string) (string, error) {
	if !strings.HasPrefix(key, KeyPrefixSession) || len(key) <= len(KeyPrefixSession) {
		return "", fmt.Errorf("invalid session key: %s", key)
	}
	rest := key[len(KeyPrefixSession):]
	i := strings.IndexByte(rest, ':')
	if i <= 0 {
		return "", fmt.Errorf("invalid session key: %s", key)
	}
	return rest[:i], nil
}
