package signature

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/hex"
)

// Verify 驗證 webhook 簽章：對原始 body bytes 做 HMAC-SHA1，與 header 帶來的
// 十六進位 digest 做 constant-time 比對。Universe 用的是 SHA-1。
func Verify(payload []byte, signature, secret string) bool {
	if signature == "" || secret == "" {
		return false
	}
	mac := hmac.New(sha1.New, []byte(secret))
	mac.Write(payload)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
