package timex

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// TickTime is a time.Time carried on the wire as an integer tick count.
type TickTime struct {
	time.Time
}

// MarshalJSON implements json.Marshaler.
func (t TickTime) MarshalJSON() ([]byte, error) {
	v, err := ToTicks(t.Time)
	if err != nil {
		return nil, err
	}
	return []byte(strconv.FormatInt(v, 10)), nil
}

// UnmarshalJSON implements json.Unmarshaler. JSON null leaves t unchanged.
func (t *TickTime) UnmarshalJSON(b []byte) error {
	v, ok, err := parseInt(b)
	if err != nil {
		return fmt.Errorf("tick timestamp: %w", err)
	}
	if ok {
		t.Time = FromTicks(v)
	}
	return nil
}

func parseInt(b []byte) (int64, bool, error) {
	if string(b) == "null" {
		return 0, false, nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return 0, false, err
	}
	v, err := n.Int64()
	if err != nil {
		return 0, false, err
	}
	return v, true, nil
}
