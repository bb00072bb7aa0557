package common

import (
	"encoding/json"
	"fmt"
	"io"
)

// DecodeJSONStrict 使用統一設定解析 JSON，禁止未知欄位與多餘資料
func DecodeJSONStrict(r io.Reader, v interface{}) error {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		return err
	}

	// 確保沒有多餘資料
	if _, err := dec.Token(); err != io.EOF {
		if err != nil {
			return err
		}
		return fmt.Errorf("unexpected extra JSON data")
	}
	return nil
}

// ToJSON 將結構體轉換為 JSON 位元組
func ToJSON(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}
