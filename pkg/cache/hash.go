package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
)

// keyVersion is bumped whenever the stored search result layout changes,
// so stale entries are never decoded into the new shape.
const keyVersion = "v1"

// hashKey joins the parts with '|' and returns "prefix:<sha256 hex>".
func hashKey(prefix string, parts ...string) string {
	sum := sha256.Sum256([]byte(strings.Join(parts, "|")))
	return prefix + ":" + hex.EncodeToString(sum[:])
}

// searchParts lists the fields of a search key in a fixed order.
func searchParts(graphHash string, opts SearchKeyOpts) []string {
	return []string{
		keyVersion,
		graphHash,
		strconv.Itoa(opts.Trials),
		strconv.FormatUint(opts.Seed, 10),
	}
}

// Hash returns the hex SHA-256 of data. Graph hashes and file cache names
// both use it.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
