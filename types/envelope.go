package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Status is the value of the reserved "status" key every basket response carries.
type Status string

const (
	StatusOk    Status = "ok"
	StatusError Status = "error"
)

func (s Status) String() string {
	return string(s)
}

// Envelope is the uniform wrapper of a basket response.
// On the wire it is a flat JSON object: "status" is the only reserved key,
// every other top-level key is folded into Data.
//
//	{"status": "error", "desc": "Token not found", "code": 4}
//	^ Status: StatusError, Data: {"desc": "Token not found", "code": 4}
//
// Data is nil when the object has no keys besides "status".
// Numbers in Data are json.Number.
type Envelope struct {
	Status Status
	Data   map[string]any
}

var _ json.Unmarshaler = &Envelope{}
var _ fmt.Stringer = &Envelope{}

func (e *Envelope) UnmarshalJSON(b []byte) error {
	// Numbers stay json.Number so ids above 2^53 survive.
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	if raw == nil {
		return fmt.Errorf("envelope must be a JSON object, got null")
	}

	value, ok := raw["status"]
	if !ok {
		return fmt.Errorf("envelope is missing the 'status' key")
	}
	status, ok := value.(string)
	if !ok {
		return fmt.Errorf("envelope 'status' must be a string, got %T", value)
	}
	switch Status(status) {
	case StatusOk, StatusError:
	default:
		return fmt.Errorf("envelope has unknown status %q", status)
	}
	delete(raw, "status")
	if len(raw) == 0 {
		raw = nil
	}

	e.Status = Status(status)
	e.Data = raw
	return nil
}

// MarshalJSON writes the envelope back in its flat wire form.
func (e Envelope) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(e.Data)+1)
	for k, v := range e.Data {
		out[k] = v
	}
	out["status"] = e.Status
	return json.Marshal(out)
}

// String renders the compact JSON of Data, or the status word
// when the envelope carries no payload.
func (e *Envelope) String() string {
	if e == nil {
		return "<nil>"
	}
	if e.Data == nil {
		return e.Status.String()
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(e.Data); err != nil {
		return e.Status.String()
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

// Desc returns the human-readable error description basket sends
// with "error" envelopes, if any.
func (e *Envelope) Desc() string {
	if e == nil {
		return ""
	}
	desc, _ := e.Data["desc"].(string)
	return desc
}

// Code returns the numeric basket error code, or 0 when absent.
func (e *Envelope) Code() int {
	if e == nil {
		return 0
	}
	switch code := e.Data["code"].(type) {
	case json.Number:
		n, err := code.Int64()
		if err != nil {
			return 0
		}
		return int(n)
	case float64:
		return int(code)
	case int:
		return code
	}
	return 0
}
