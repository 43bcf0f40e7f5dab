// Package drive builds the Google Drive API client used as the record store
// backend. Credentials come from GOOGLE_SERVICE_ACCOUNT_JSON_BASE64, which in
// practice arrives in several shapes (raw JSON pasted directly, base64 of
// UTF-8, base64 of UTF-16 produced by Windows shells), all tolerated here.
package drive

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf16"

	"golang.org/x/oauth2/google"
	drivev3 "google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

const (
	envServiceAccount = "GOOGLE_SERVICE_ACCOUNT_JSON_BASE64"
	envFolderID       = "GOOGLE_DRIVE_ADMIN_FOLDER_ID"
)

// EnvVars lists the env vars required to reach Drive, for health diagnostics.
func EnvVars() []string {
	return []string{envServiceAccount, envFolderID}
}

type serviceAccountKey struct {
	ClientEmail string `json:"client_email"`
	PrivateKey  string `json:"private_key"`
	ProjectID   string `json:"project_id"`
}

var whitespaceRe = regexp.MustCompile(`\s+`)

func decodeUTF16(b []byte, bigEndian bool) string {
	u := make([]uint16, 0, len(b)/2)
	for i := 0; i+1 < len(b); i += 2 {
		if bigEndian {
			u = append(u, uint16(b[i])<<8|uint16(b[i+1]))
		} else {
			u = append(u, uint16(b[i+1])<<8|uint16(b[i]))
		}
	}
	return strings.TrimPrefix(string(utf16.Decode(u)), "\uFEFF")
}

func decodeJSONText(b []byte) string {
	switch {
	case len(b) >= 2 && b[0] == 0xff && b[1] == 0xfe:
		return decodeUTF16(b[2:], false)
	case len(b) >= 2 && b[0] == 0xfe && b[1] == 0xff:
		return decodeUTF16(b[2:], true)
	case bytes.IndexByte(b, 0) >= 0:
		// Windows flows often base64-encode UTF-16LE JSON without a BOM.
		return decodeUTF16(b, false)
	default:
		return strings.TrimPrefix(string(b), "\uFEFF")
	}
}

func serviceAccountJSON(rawEnv string) ([]byte, error) {
	if rawEnv == "" {
		return nil, fmt.Errorf("variável de ambiente faltando: %s", envServiceAccount)
	}

	// Tolerate `KEY==<value>` paste accidents; base64 never starts with '='.
	raw := strings.TrimLeft(strings.TrimSpace(rawEnv), "=")

	// Tolerate plain JSON for local usage.
	if strings.HasPrefix(raw, "{") {
		return []byte(raw), nil
	}

	normalized := whitespaceRe.ReplaceAllString(raw, "")
	decoded, err := base64.StdEncoding.DecodeString(normalized)
	if err != nil {
		decoded, err = base64.RawStdEncoding.DecodeString(normalized)
	}
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", envServiceAccount, err)
	}

	text := strings.TrimSpace(decodeJSONText(decoded))
	if !strings.HasPrefix(text, "{") {
		return nil, fmt.Errorf("invalid %s: decoded value is not JSON", envServiceAccount)
	}
	return []byte(text), nil
}

// ServiceAccountEmail returns the configured service-account email, or ""
// when credentials are absent or malformed. Used only to enrich error text.
func ServiceAccountEmail(rawEnv string) string {
	jsonKey, err := serviceAccountJSON(rawEnv)
	if err != nil {
		return ""
	}
	var key serviceAccountKey
	if err := json.Unmarshal(jsonKey, &key); err != nil {
		return ""
	}
	return key.ClientEmail
}

// NewService authenticates with the service-account key from the environment
// and returns a Drive API service scoped for full Drive access.
func NewService(ctx context.Context, rawEnv string) (*drivev3.Service, error) {
	jsonKey, err := serviceAccountJSON(rawEnv)
	if err != nil {
		return nil, err
	}

	jwtConfig, err := google.JWTConfigFromJSON(jsonKey, drivev3.DriveScope)
	if err != nil {
		return nil, fmt.Errorf("unable to parse service account key: %w", err)
	}

	svc, err := drivev3.NewService(ctx, option.WithTokenSource(jwtConfig.TokenSource(ctx)))
	if err != nil {
		return nil, fmt.Errorf("failed to create drive service: %w", err)
	}
	return svc, nil
}
