package utils

import (
	"encoding/json"
	"regexp"
	"strings"
	"time"

	"keyless-stay/constants"
	"keyless-stay/types"

	"github.com/gofiber/fiber/v2"
)

var (
	phoneRegex         = regexp.MustCompile(constants.PhonePattern)
	authorizationRegex = regexp.MustCompile(`(?i)(authorization:\s*bearer\s+)\S+`)
	codeFieldRegex     = regexp.MustCompile(`("code"\s*:\s*")[0-9]+(")`)
)

// ValidatePhoneNumber validates phone number using the specified regex pattern
// Pattern: /^0[0-9]{9}$/
func ValidatePhoneNumber(phone string) bool {
	return phoneRegex.MatchString(strings.TrimSpace(phone))
}

// sanitizeRequestBody sanitizes request body for file uploads and large content
func sanitizeRequestBody(c *fiber.Ctx) string {
	contentType := c.Get("Content-Type")
	if strings.Contains(contentType, "multipart/form-data") {
		formData := make(map[string]interface{})

		if form, err := c.MultipartForm(); err == nil {
			for key, values := range form.Value {
				if len(values) > 0 {
					formData[key] = values[0]
				}
			}

			for key, files := range form.File {
				fileInfo := make([]map[string]interface{}, len(files))
				for i, file := range files {
					fileInfo[i] = map[string]interface{}{
						"filename": file.Filename,
						"size":     file.Size,
						"content":  "[FILE_CONTENT_REMOVED]",
					}
				}
				formData[key] = fileInfo
			}
		}

		if jsonBytes, err := json.Marshal(formData); err == nil {
			return string(jsonBytes)
		}
		return "[MULTIPART_FORM_DATA]"
	}

	body := string(c.Body())
	if len(body) > 1000 && (strings.Contains(body, "data:image/") ||
		strings.Contains(body, "base64") ||
		isLikelyBase64(body)) {
		return "[LARGE_REQUEST_BODY_WITH_POSSIBLE_FILE_CONTENT]"
	}

	return RedactAccessCodes(body)
}

// isLikelyBase64 detects if content looks like base64
func isLikelyBase64(content string) bool {
	if len(content) < 100 {
		return false
	}

	base64Chars := 0
	for _, char := range content {
		if (char >= 'A' && char <= 'Z') ||
			(char >= 'a' && char <= 'z') ||
			(char >= '0' && char <= '9') ||
			char == '+' || char == '/' || char == '=' {
			base64Chars++
		}
	}

	return float64(base64Chars)/float64(len(content)) > 0.8
}

// RedactAccessCodes hides the digits of any "code" JSON field.
func RedactAccessCodes(body string) string {
	return codeFieldRegex.ReplaceAllString(body, `${1}******${2}`)
}

// RedactAuthorization hides bearer tokens in a raw header block.
func RedactAuthorization(headers string) string {
	return authorizationRegex.ReplaceAllString(headers, `${1}[REDACTED]`)
}

// CreateSanitizedLogEntry creates a deep copied and sanitized log entry for logging
// This function handles file uploads, large content, and creates safe copies of all data
func CreateSanitizedLogEntry(c *fiber.Ctx, callerID string) types.LogEntry {
	method := string([]byte(c.Method()))
	url := string([]byte(c.OriginalURL()))
	requestBody := sanitizeRequestBody(c)
	responseBody := RedactAccessCodes(string(append([]byte(nil), c.Response().Body()...)))

	requestHeaders := make([]byte, len(c.Request().Header.Header()))
	copy(requestHeaders, c.Request().Header.Header())

	responseHeaders := make([]byte, len(c.Response().Header.Header()))
	copy(responseHeaders, c.Response().Header.Header())

	return types.LogEntry{
		Method:          method,
		URL:             url,
		RequestBody:     requestBody,
		ResponseBody:    responseBody,
		RequestHeaders:  RedactAuthorization(string(requestHeaders)),
		ResponseHeaders: string(responseHeaders),
		StatusCode:      c.Response().StatusCode(),
		CallerID:        callerID,
		CreatedAt:       time.Now().UTC(),
	}
}
