package fileutil

import (
	"bytes"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// Decode converts raw config-file bytes to a UTF-8 string. Arma
// addons are nominally ASCII/UTF-8 but old content occasionally ships
// Windows-1252 bytes (smart quotes, accented author names in
// comments); Decode strips a UTF-8 BOM if present, accepts the bytes
// as-is when they're already valid UTF-8, and otherwise falls back to
// a Windows-1252 transform rather than failing the whole parse over a
// handful of stray bytes. CRLF and lone CR line endings are normalized
// to LF.
func Decode(raw []byte) (string, error) {
	raw = bytes.TrimPrefix(raw, []byte{0xEF, 0xBB, 0xBF})
	raw = bytes.ReplaceAll(raw, []byte("\r\n"), []byte("\n"))
	raw = bytes.ReplaceAll(raw, []byte("\r"), []byte("\n"))

	if utf8.Valid(raw) {
		return string(raw), nil
	}

	decoded, _, err := transform.Bytes(charmap.Windows1252.NewDecoder(), raw)
	if err != nil {
		return "", err
	}
	return string(decoded), nil
}
