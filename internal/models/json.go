package models

import (
	"database/sql/driver"
	"encoding/json"
)

// JSON 多语言内容等半结构化字段
type JSON map[string]interface{}

// Value 实现 driver.Valuer 接口，以文本写入便于 sqlite json_extract 检索
func (j JSON) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	raw, err := json.Marshal(j)
	if err != nil {
		return nil, err
	}
	return string(raw), nil
}

// Scan 实现 sql.Scanner 接口（postgres 返回 []byte，sqlite 可能返回 string）
func (j *JSON) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*j = make(JSON)
		return nil
	case []byte:
		return json.Unmarshal(v, j)
	case string:
		return json.Unmarshal([]byte(v), j)
	default:
		return nil
	}
}

// Text 按语言取值，缺失时依次回退 vi-VN、en-US 与任意非空值
func (j JSON) Text(locale string) string {
	for _, key := range []string{locale, "vi-VN", "en-US"} {
		if s, ok := j[key].(string); ok && s != "" {
			return s
		}
	}
	for _, v := range j {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	return ""
}

// StringArray 字符串数组类型，用于存储 tags、images 等
type StringArray []string

// Value 实现 driver.Valuer 接口
func (s StringArray) Value() (driver.Value, error) {
	if s == nil {
		return nil, nil
	}
	raw, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(raw), nil
}

// Scan 实现 sql.Scanner 接口
func (s *StringArray) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*s = StringArray{}
		return nil
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return nil
	}
}
