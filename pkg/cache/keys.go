package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// Hash returns the hex SHA-256 of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// digestKey builds "<namespace>:<sha256>" over the JSON encoding of parts.
// Struct fields encode in declaration order, so equal inputs give equal keys.
func digestKey(namespace string, parts ...any) string {
	data, err := json.Marshal(parts)
	if err != nil {
		panic("cache: unencodable key part: " + err.Error())
	}
	return namespace + ":" + Hash(data)
}
