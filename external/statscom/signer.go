package statscom

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"time"

	"github.com/valyala/bytebufferpool"
)

// Sign returns the request signature: hex SHA-256 of key, secret and unix seconds.
func Sign(apiKey, secret string, ts time.Time) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	_, _ = buf.WriteString(apiKey)
	_, _ = buf.WriteString(secret)
	buf.B = strconv.AppendInt(buf.B, ts.Unix(), 10)

	sum := sha256.Sum256(buf.B)
	return hex.EncodeToString(sum[:])
}
