package forward

import (
	"crypto/sha256"
	"encoding/hex"

	"encore.app/proxy/model"
)

// fingerprint hashes the parts of a request that identify what was asked
// for. It is stored next to a record so key reuse can be spotted.
func fingerprint(req *model.InboundRequest) string {
	h := sha256.New()
	h.Write([]byte(req.Method))
	h.Write([]byte{0})
	h.Write([]byte(req.Path))
	h.Write([]byte{0})
	h.Write([]byte(req.RawQuery))
	h.Write([]byte{0})
	h.Write(req.Body)
	return hex.EncodeToString(h.Sum(nil))
}
