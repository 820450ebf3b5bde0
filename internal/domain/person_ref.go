package domain

import (
	"bytes"
	"encoding/json"
	"strings"
)

// PersonSummary is the embedded form of a person reference.
type PersonSummary struct {
	ID           string `json:"_id"`
	Name         string `json:"name,omitempty"`
	Mobile       string `json:"mobile,omitempty"`
	IsFreelancer bool   `json:"isFreelancer,omitempty"`
}

// PersonRef points at a person either by bare id or by an embedded summary.
// Upstream payloads use both shapes for the same field; read the id through
// ID only.
type PersonRef struct {
	id       string
	embedded *PersonSummary
}

func RefByID(id string) PersonRef {
	return PersonRef{id: strings.TrimSpace(id)}
}

func RefEmbedded(p PersonSummary) PersonRef {
	return PersonRef{embedded: &p}
}

// ID returns the referenced person id, or "" for an empty reference.
func (r PersonRef) ID() string {
	if r.embedded != nil {
		return r.embedded.ID
	}
	return r.id
}

// Embedded returns the summary when the reference was populated.
func (r PersonRef) Embedded() (PersonSummary, bool) {
	if r.embedded == nil {
		return PersonSummary{}, false
	}
	return *r.embedded, true
}

// Name is the embedded name when present.
func (r PersonRef) Name() string {
	if r.embedded != nil {
		return r.embedded.Name
	}
	return ""
}

func (r PersonRef) IsZero() bool {
	return r.ID() == ""
}

func (r PersonRef) MarshalJSON() ([]byte, error) {
	switch {
	case r.embedded != nil:
		return json.Marshal(r.embedded)
	case r.id != "":
		return json.Marshal(r.id)
	default:
		return []byte("null"), nil
	}
}

func (r *PersonRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*r = PersonRef{}
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	switch data[0] {
	case '"':
		var id string
		if err := json.Unmarshal(data, &id); err != nil {
			return err
		}
		*r = RefByID(id)
		return nil
	case '{':
		var raw struct {
			MongoID      string `json:"_id"`
			ID           string `json:"id"`
			Name         string `json:"name"`
			Mobile       string `json:"mobile"`
			IsFreelancer bool   `json:"isFreelancer"`
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		id := raw.MongoID
		if id == "" {
			id = raw.ID
		}
		*r = RefEmbedded(PersonSummary{
			ID:           strings.TrimSpace(id),
			Name:         raw.Name,
			Mobile:       raw.Mobile,
			IsFreelancer: raw.IsFreelancer,
		})
		return nil
	default:
		// numbers or other scalars are not ids we can match on
		return nil
	}
}
