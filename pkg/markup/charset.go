package markup

import (
	"bytes"
	"fmt"
	"io"
	"mime"
	"regexp"
	"unicode/utf8"

	"golang.org/x/net/html/charset"
)

var prologEncoding = regexp.MustCompile(`^\s*<\?xml[^>]*?\sencoding\s*=\s*["']([A-Za-z0-9._:-]+)["']`)

// Decode converts raw SVG bytes into UTF-8 text for Parse. The charset is
// taken from contentType when it names one, then from the XML prolog, then
// sniffed: valid UTF-8 is kept, anything else goes through BOM detection
// with a windows-1252 fallback.
func Decode(data []byte, contentType string) (string, error) {
	if _, params, err := mime.ParseMediaType(contentType); err == nil && params["charset"] != "" {
		return decodeReader(data, contentType)
	}

	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	if m := prologEncoding.FindSubmatch(data); m != nil {
		enc, name := charset.Lookup(string(m[1]))
		if enc == nil {
			return "", fmt.Errorf("unsupported encoding %q", m[1])
		}
		if name == "utf-8" {
			return string(data), nil
		}
		out, err := enc.NewDecoder().Bytes(data)
		if err != nil {
			return "", fmt.Errorf("decode %s: %w", name, err)
		}
		return string(out), nil
	}

	if utf8.Valid(data) {
		return string(data), nil
	}
	return decodeReader(data, contentType)
}

func decodeReader(data []byte, contentType string) (string, error) {
	r, err := charset.NewReader(bytes.NewReader(data), contentType)
	if err != nil {
		return "", fmt.Errorf("detect charset: %w", err)
	}
	out, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("decode: %w", err)
	}
	return string(out), nil
}
