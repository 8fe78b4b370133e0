package models

import (
	"encoding/json"
	"fmt"
)

// BlacklistResponse blacklist-query接口的响应体
// data缺失时视为空列表; 单条记录延迟解析,坏记录不影响整体
type BlacklistResponse struct {
	Data []json.RawMessage `json:"data"`
}

// BlacklistRecord data列表中的单条记录
type BlacklistRecord struct {
	// URL 可能包含多个以空白分隔的地址; nil表示字段缺失或为null
	URL *string `json:"url"`
}

// DecodeRecord 解析单条记录
// 返回: 记录和错误 (非对象、url不是字符串等)
func DecodeRecord(raw json.RawMessage) (BlacklistRecord, error) {
	var rec BlacklistRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return BlacklistRecord{}, fmt.Errorf("invalid record: %w", err)
	}
	return rec, nil
}

// HasURL 记录是否带有url字段
func (r BlacklistRecord) HasURL() bool {
	return r.URL != nil
}
