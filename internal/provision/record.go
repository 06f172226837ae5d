package provision

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Payload is the JSON document stored in a record's data attribute and read
// by the DDNS update handler.
type Payload struct {
	ZoneID       string `json:"route_53_zone_id"`
	TTL          int    `json:"route_53_record_ttl"`
	SharedSecret string `json:"shared_secret"`
}

// Entry is one row of the hostname table.
type Entry struct {
	Hostname string
	Payload
}

// ParseTTL converts user supplied TTL text into seconds.
func ParseTTL(raw string) (int, error) {
	ttl, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not an integer", ErrInvalidTTL, raw)
	}
	if ttl < 0 {
		return 0, fmt.Errorf("%w: %d is negative", ErrInvalidTTL, ttl)
	}
	return ttl, nil
}

// Assemble builds the payload for a record. It never fills in defaults.
func Assemble(zoneID string, ttl int, secret string) (Payload, error) {
	if zoneID == "" {
		return Payload{}, fmt.Errorf("%w: zone id is empty", ErrZoneNotFound)
	}
	if ttl < 0 {
		return Payload{}, fmt.Errorf("%w: %d is negative", ErrInvalidTTL, ttl)
	}
	if secret == "" {
		return Payload{}, ErrEmptySecret
	}
	return Payload{ZoneID: zoneID, TTL: ttl, SharedSecret: secret}, nil
}

// Encode renders the payload in its stored form.
func (p Payload) Encode() (string, error) {
	b, err := json.Marshal(p)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// DecodePayload parses the stored form of a payload.
func DecodePayload(data string) (Payload, error) {
	var p Payload
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		return Payload{}, fmt.Errorf("%w: %v", ErrCorruptRecord, err)
	}
	return p, nil
}
