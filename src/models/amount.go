package models

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"

	"github.com/username/smarttax/backend/src/utils"
)

// Amount is a monetary value in whole KRW. Clients send amounts either as
// JSON numbers or as strings with thousands separators ("1,200,000,000");
// both decode to the floored whole-unit value, and anything unparseable
// decodes to 0.
type Amount int64

func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*a = 0
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			*a = 0
			return nil
		}
		*a = Amount(math.Floor(utils.ParseNumber(s)))
		return nil
	}

	f, err := strconv.ParseFloat(string(data), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		*a = 0
		return nil
	}
	*a = Amount(math.Floor(f))
	return nil
}

// Int64 returns the raw whole-KRW value.
func (a Amount) Int64() int64 {
	return int64(a)
}
