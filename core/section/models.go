package section

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/pkg/errors"
)

// reserved keys are owned by the server and never stored in a Payload.
var reserved = []string{"id", "created_at", "updated_at"}

// Payload holds the client supplied fields of a Section. They are stored and returned verbatim.
type Payload map[string]interface{}

// Clean drops server owned keys.
func (p Payload) Clean() Payload {
	cleaned := make(Payload, len(p))
	for k, v := range p {
		cleaned[k] = v
	}
	for _, k := range reserved {
		delete(cleaned, k)
	}
	return cleaned
}

// Value encodes the payload as JSON text, ready for a JSONB column.
func (p Payload) Value() (driver.Value, error) {
	if p == nil {
		return "{}", nil
	}
	data, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// UnmarshalJSON keeps numbers as json.Number so that they are returned digit for digit.
func (p *Payload) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var m map[string]interface{}
	if err := dec.Decode(&m); err != nil {
		return err
	}
	*p = m
	return nil
}

func (p *Payload) Scan(src interface{}) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		*p = Payload{}
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("section.Payload: cannot scan %T", src)
	}
	return json.Unmarshal(data, p)
}

// Section is a class section. Apart from its id and timestamps, its shape is whatever the client sends.
type Section struct {
	ID        int
	Data      Payload
	CreatedAt time.Time // UTC
	UpdatedAt time.Time // UTC
}

// MarshalJSON flattens the payload next to the server owned fields.
func (s Section) MarshalJSON() ([]byte, error) {
	obj := make(map[string]interface{}, len(s.Data)+3)
	for k, v := range s.Data {
		obj[k] = v
	}
	obj["id"] = s.ID
	obj["created_at"] = s.CreatedAt
	obj["updated_at"] = s.UpdatedAt
	return json.Marshal(obj)
}

func (s *Section) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return errors.Wrap(err, "section must be a JSON object")
	}
	if v, ok := raw["id"]; ok {
		if err := json.Unmarshal(v, &s.ID); err != nil {
			return errors.Wrap(err, "decoding section id")
		}
	}
	if v, ok := raw["created_at"]; ok {
		_ = json.Unmarshal(v, &s.CreatedAt)
	}
	if v, ok := raw["updated_at"]; ok {
		_ = json.Unmarshal(v, &s.UpdatedAt)
	}

	var payload Payload
	if err := json.Unmarshal(data, &payload); err != nil {
		return err
	}
	s.Data = payload.Clean()
	return nil
}
