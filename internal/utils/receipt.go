package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewReceiptNumber builds a human-readable receipt number like
// "RCP-20260901-4F9A21D3" for printing on invoices.
func NewReceiptNumber() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("RCP-%s-%s", time.Now().Format("20060102"), suffix)
}
