package respond

import "regexp"

var (
	// dsnPasswordPattern matches the password in URL-style DSNs.
	dsnPasswordPattern = regexp.MustCompile(`://([^:/@\s]+):([^@\s]+)@`)

	// mysqlPasswordPattern matches the password in go-sql-driver DSNs
	// ("user:pass@tcp(host:3306)/db").
	mysqlPasswordPattern = regexp.MustCompile(`([^\s:@/]+):([^\s@]+)@(tcp|unix)\(`)

	// apiKeyPattern matches an API key echoed back as a header value.
	apiKeyPattern = regexp.MustCompile(`(?i)(x-api-key[=:]\s*)\S+`)
)

// SanitizeError returns err's message with credentials masked.
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return SanitizeMessage(err.Error())
}

// SanitizeMessage masks credentials in msg.
func SanitizeMessage(msg string) string {
	msg = dsnPasswordPattern.ReplaceAllString(msg, "://$1:****@")
	msg = mysqlPasswordPattern.ReplaceAllString(msg, "$1:****@$3(")
	msg = apiKeyPattern.ReplaceAllString(msg, "${1}****")
	return msg
}
