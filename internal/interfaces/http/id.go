package http

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// newFormID returns a sortable unique identifier for a request form. The
// timestamp prefix keeps listings in creation order even across restarts.
func newFormID() string {
	suffix := make([]byte, 4)
	if _, err := rand.Read(suffix); err != nil {
		// rand.Read only fails when the OS entropy source is broken
		return fmt.Sprintf("RF%s%08x", time.Now().Format("20060102150405"), time.Now().UnixNano()%0x100000000)
	}
	return fmt.Sprintf("RF%s%s", time.Now().Format("20060102150405"), hex.EncodeToString(suffix))
}
