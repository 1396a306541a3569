package utils

import (
	"net/http"
	"path/filepath"
	"strings"
)

var contentTypes = map[string]string{
	".pdf":  "application/pdf",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
}

// Ext returns the lower-cased extension of a filename.
func Ext(filename string) string {
	return strings.ToLower(filepath.Ext(filename))
}

// ContentType resolves the content type from the extension and falls back
// to sniffing the bytes.
func ContentType(filename string, b []byte) string {
	if ct, ok := contentTypes[Ext(filename)]; ok {
		return ct
	}
	return http.DetectContentType(b)
}

func IsImageExt(ext string) bool {
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp":
		return true
	}
	return false
}

// SanitizeFilename strips directories and anything outside [A-Za-z0-9._-].
func SanitizeFilename(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	var sb strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			sb.WriteRune(r)
		case r == ' ':
			sb.WriteRune('_')
		}
	}
	out := sb.String()
	if strings.Trim(out, ".") == "" {
		return "file"
	}
	return out
}
