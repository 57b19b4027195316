package roster

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ErrBadShare is returned for a share token that cannot be decoded.
var ErrBadShare = errors.New("invalid share token")

// shareParam is the query parameter carrying the token in share links.
const shareParam = "data"

// EncodeShare packs names and DOBs into a compact base64 token of the form
// base64("name,dob;name,dob").
func EncodeShare(people []Person) string {
	entries := make([]string, 0, len(people))
	for _, p := range people {
		entries = append(entries, p.Name+","+p.DOB)
	}
	return base64.StdEncoding.EncodeToString([]byte(strings.Join(entries, ";")))
}

// ShareURL appends the share token to base as the data query parameter.
func ShareURL(base string, people []Person) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("share url: %w", err)
	}
	q := u.Query()
	q.Set(shareParam, EncodeShare(people))
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// DecodeShare unpacks a token, a query-escaped token, or a full share link.
// Entries missing a name or DOB are dropped.
func DecodeShare(token string) ([]Person, error) {
	token = strings.TrimSpace(token)
	if strings.Contains(token, "://") || strings.Contains(token, "?"+shareParam+"=") {
		u, err := url.Parse(token)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadShare, err)
		}
		token = u.Query().Get(shareParam)
	} else if unescaped, err := url.PathUnescape(token); err == nil {
		token = unescaped
	}

	if token == "" {
		return nil, fmt.Errorf("%w: empty", ErrBadShare)
	}

	raw, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadShare, err)
	}

	var people []Person
	for _, entry := range strings.Split(string(raw), ";") {
		name, dobText := splitEntry(entry, ",")
		if name == "" || dobText == "" {
			continue
		}
		people = append(people, NewPerson(name, dobText))
	}
	return people, nil
}
