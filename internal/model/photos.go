package model

import "encoding/json"

// EncodePhotos serializes a photo URL list the way the items and ads tables
// store it: a JSON array in a text column, NULL when the list is empty.
func EncodePhotos(urls []string) *string {
	if len(urls) == 0 {
		return nil
	}
	b, err := json.Marshal(urls)
	if err != nil {
		return nil
	}
	s := string(b)
	return &s
}

// DecodePhotos parses a stored photos column. Malformed JSON yields an empty
// list rather than an error; a broken column must not make a row unreadable.
func DecodePhotos(raw *string) []string {
	if raw == nil || *raw == "" {
		return nil
	}
	var urls []string
	if err := json.Unmarshal([]byte(*raw), &urls); err != nil {
		return nil
	}
	return urls
}
