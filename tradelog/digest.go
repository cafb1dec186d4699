package tradelog

import (
	"crypto/sha256"
	"fmt"
)

// chainTradeHash extends the running log digest with one record.
//
// Formula: SHA256(prev + "|" + tx_time + "|" + from + "|" + to + "|" +
// location + "|" + time + "|" + sprintf("%.6f", value))
//
// The value is formatted to exactly 6 decimal places to ensure consistent
// hashing regardless of how the float is represented in memory. The
// location renders through its default format, which is stable for the
// comparable region types the engine admits.
func chainTradeHash[R comparable](prev string, rec Record[R]) string {
	data := fmt.Sprintf("%s|%d|%d|%d|%v|%d|%.6f",
		prev, rec.TransactionTime, rec.From, rec.To, rec.Location, rec.Time, rec.Value)
	hash := sha256.Sum256([]byte(data))
	return fmt.Sprintf("%x", hash)
}
