package validators

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NormalizeAssetPath validates a path relative to the asset root and returns
// its stored form: trimmed, with forward slashes, NFC-normalized.
//
// Absolute paths ("/x", "C:\x", "\\server\x"), traversal segments and empty
// segments are rejected.
func NormalizeAssetPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("%w: empty", ErrInvalidAssetPath)
	}

	if strings.HasPrefix(trimmed, "/") {
		return "", fmt.Errorf("%w: %q is absolute", ErrInvalidAssetPath, path)
	}
	if strings.HasPrefix(trimmed, `\\`) {
		return "", fmt.Errorf("%w: %q is a UNC path", ErrInvalidAssetPath, path)
	}
	if len(trimmed) >= 2 && isASCIILetter(trimmed[0]) && trimmed[1] == ':' {
		return "", fmt.Errorf("%w: %q has a drive letter", ErrInvalidAssetPath, path)
	}

	normalized := strings.ReplaceAll(trimmed, `\`, "/")
	for _, segment := range strings.Split(normalized, "/") {
		if segment == "" || segment == ".." {
			return "", fmt.Errorf("%w: %q has an empty or parent segment", ErrInvalidAssetPath, path)
		}
	}

	return norm.NFC.String(normalized), nil
}

func isASCIILetter(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}
