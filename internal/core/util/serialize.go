package util

import "encoding/json"

func Serialize(v any) (json.RawMessage, error) {
	data, err := json.Marshal(v)

	if err != nil {
		return json.RawMessage("[]"), err
	}

	return json.RawMessage(data), nil
}
