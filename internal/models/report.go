package models

import (
	"encoding/json"
	"time"
)

// RunStats 单次运行的统计
type RunStats struct {
	Records        int `json:"records"`         // data列表中的记录数
	SkippedRecords int `json:"skipped_records"` // 无url或无法解析的记录
	CandidateURLs  int `json:"candidate_urls"`  // 清洗去重后的URL数
	IPs            int `json:"ips"`
	FQDNURLs       int `json:"fqdn_urls"`
	FQDNs          int `json:"fqdns"`
	Discarded      int `json:"discarded"` // 无法分类而丢弃的URL
}

// FileCount 输出文件及写入行数
type FileCount struct {
	Name  string `json:"name"`
	Path  string `json:"path"`
	Count int    `json:"count"`
}

// RunReport 运行报告
type RunReport struct {
	RunID      string    `json:"run_id"`
	Endpoint   string    `json:"endpoint"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	Duration   float64   `json:"duration"` // 秒

	Stats RunStats    `json:"stats"`
	Files []FileCount `json:"files"`

	// FetchError 拉取失败时的错误信息
	FetchError string `json:"fetch_error,omitempty"`
	// NoContent 两类结果均为空,未写入任何文件
	NoContent bool `json:"no_content"`
}

// NewRunReport 创建运行报告并分配运行ID
func NewRunReport(endpoint string) *RunReport {
	return &RunReport{
		RunID:     generateID(),
		Endpoint:  endpoint,
		StartedAt: time.Now().UTC(),
		Files:     make([]FileCount, 0, 3),
	}
}

// Finish 记录结束时间
func (r *RunReport) Finish() {
	r.FinishedAt = time.Now().UTC()
	r.Duration = r.FinishedAt.Sub(r.StartedAt).Seconds()
}

// ToJSON 序列化为JSON
func (r *RunReport) ToJSON() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// FromJSON 从JSON反序列化
func (r *RunReport) FromJSON(data []byte) error {
	return json.Unmarshal(data, r)
}
