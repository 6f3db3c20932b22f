package gmail

import (
	"encoding/base64"
	"strings"

	"google.golang.org/api/gmail/v1"
)

type bodies struct {
	html string
	text string
}

// collectBodies walks a message part tree and keeps the first text/html and
// text/plain bodies it finds. Nested multipart containers are searched depth-first.
func collectBodies(part *gmail.MessagePart) (bodies, error) {
	var out bodies
	err := walk(part, &out)
	return out, err
}

func walk(part *gmail.MessagePart, out *bodies) error {
	if len(part.Parts) > 0 {
		for _, child := range part.Parts {
			if err := walk(child, out); err != nil {
				return err
			}
		}
		return nil
	}

	if part.Body == nil || part.Body.Data == "" {
		return nil
	}

	switch strings.ToLower(part.MimeType) {
	case "text/html":
		if out.html != "" {
			return nil
		}
		decoded, err := decodeBody(part.Body.Data)
		if err != nil {
			return err
		}
		out.html = decoded
	case "text/plain":
		if out.text != "" {
			return nil
		}
		decoded, err := decodeBody(part.Body.Data)
		if err != nil {
			return err
		}
		out.text = decoded
	}
	return nil
}

// decodeBody accepts base64url with or without padding.
func decodeBody(data string) (string, error) {
	raw, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(data, "="))
	if err != nil {
		return "", err
	}
	return strings.ToValidUTF8(string(raw), "�"), nil
}

func header(headers []*gmail.MessagePartHeader, name string) string {
	for _, h := range headers {
		if strings.EqualFold(h.Name, name) {
			return h.Value
		}
	}
	return ""
}
