package fetcher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/RecoveryAshes/ema-blocklist/internal/models"
	"github.com/RecoveryAshes/ema-blocklist/internal/utils"
)

const (
	// DefaultEndpoint EMA黑名单查询接口
	DefaultEndpoint = "https://www.ema.com.ua/wp-json/api/blacklist-query"
	// DefaultCount 请求的记录数, 实际上不设上限
	DefaultCount = 1000000
	// DefaultTimeout 单次请求超时
	DefaultTimeout = 30 * time.Second
)

// Stage 拉取过程中出错的阶段
type Stage string

const (
	StageRequest Stage = "request" // 构造请求
	StageNetwork Stage = "network" // 连接/超时
	StageStatus  Stage = "status"  // 非2xx状态码
	StageDecode  Stage = "decode"  // 内容解压
	StageJSON    Stage = "json"    // JSON结构不符
)

// FetchError 拉取失败
type FetchError struct {
	Stage Stage
	Err   error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch blacklist (%s): %v", e.Stage, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// ErrBadStatus 非2xx响应
var ErrBadStatus = errors.New("unexpected status")

// Result 一次拉取的结果
type Result struct {
	URLs           models.URLSet
	Records        int
	SkippedRecords int
}

// Client 黑名单接口客户端
type Client struct {
	endpoint string
	count    int
	timeout  time.Duration
	headers  models.HeaderProvider
	http     *http.Client
}

// Option 客户端选项
type Option func(*Client)

// WithCount 设置count查询参数
func WithCount(count int) Option {
	return func(c *Client) {
		if count > 0 {
			c.count = count
		}
	}
}

// WithTimeout 设置请求超时
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithHeaders 设置请求头提供者
func WithHeaders(p models.HeaderProvider) Option {
	return func(c *Client) {
		c.headers = p
	}
}

// WithHTTPClient 替换底层http.Client, 超时仍由WithTimeout控制
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// NewClient 创建客户端, endpoint为空时使用DefaultEndpoint
func NewClient(endpoint string, opts ...Option) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	c := &Client{
		endpoint: strings.TrimSpace(endpoint),
		count:    DefaultCount,
		timeout:  DefaultTimeout,
		http:     &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.http.Timeout = c.timeout
	return c
}

// Endpoint 带查询参数的完整请求地址
func (c *Client) Endpoint() (string, error) {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set("count", strconv.Itoa(c.count))
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// FetchURLs 拉取并清洗黑名单, 任何失败都记录日志并返回空集合
// 调用方无法区分"没有条目"和"拉取失败"
func (c *Client) FetchURLs(ctx context.Context) models.URLSet {
	res, err := c.Fetch(ctx)
	if err != nil {
		utils.Error(err, "failed to fetch blacklist")
		return make(models.URLSet)
	}
	return res.URLs
}

// Fetch 拉取并清洗黑名单
// 返回: 结果和 *FetchError
func (c *Client) Fetch(ctx context.Context) (*Result, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	target, err := c.Endpoint()
	if err != nil {
		return nil, &FetchError{Stage: StageRequest, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, &FetchError{Stage: StageRequest, Err: err}
	}
	if c.headers != nil {
		headers, err := c.headers.GetHeaders()
		if err != nil {
			return nil, &FetchError{Stage: StageRequest, Err: err}
		}
		for name, values := range headers {
			req.Header[name] = values
		}
	}

	utils.Debugf("GET %s", target)
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &FetchError{Stage: StageNetwork, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{
			Stage: StageStatus,
			Err:   fmt.Errorf("%w: %s", ErrBadStatus, resp.Status),
		}
	}

	body, err := decodeBody(resp.Header.Get("Content-Encoding"), resp.Body)
	if err != nil {
		return nil, &FetchError{Stage: StageDecode, Err: err}
	}
	defer body.Close()

	// 先读完再解析: 解压错误归入decode阶段, 尾部多余内容由Unmarshal拒绝
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, &FetchError{Stage: StageDecode, Err: err}
	}

	var payload models.BlacklistResponse
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, &FetchError{Stage: StageJSON, Err: err}
	}

	return collect(payload), nil
}

// collect 逐条解析记录并清洗, 坏记录跳过
func collect(payload models.BlacklistResponse) *Result {
	res := &Result{
		URLs:    make(models.URLSet),
		Records: len(payload.Data),
	}

	for _, raw := range payload.Data {
		rec, err := models.DecodeRecord(raw)
		if err != nil || !rec.HasURL() {
			res.SkippedRecords++
			continue
		}
		for _, u := range SplitRecord(*rec.URL) {
			res.URLs.Add(u)
		}
	}

	if res.SkippedRecords > 0 {
		utils.Debugf("skipped %d records without url", res.SkippedRecords)
	}
	utils.Debugf("collected %d unique urls from %d records", res.URLs.Len(), res.Records)
	return res
}
