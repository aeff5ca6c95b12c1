package catalog

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/shopsync/internal/logger"

	"github.com/go-resty/resty/v2"
)

const (
	defaultBaseURL = "https://dummyjson.com"
	defaultTimeout = 10 * time.Second

	defaultRetryWait = 500 * time.Millisecond
)

// ErrFetch 外部目录请求失败（网络、非 2xx 或响应无法解析）
var ErrFetch = errors.New("catalog fetch failed")

// Client 外部商品目录客户端
type Client struct {
	http *resty.Client
}

// Option 客户端可选配置
type Option func(*resty.Client)

// WithRetry 网络错误、429 与 5xx 时重试 count 次，wait 为首次退避时间
func WithRetry(count int, wait time.Duration) Option {
	return func(c *resty.Client) {
		if count <= 0 {
			return
		}
		if wait <= 0 {
			wait = defaultRetryWait
		}
		c.SetRetryCount(count).
			SetRetryWaitTime(wait).
			SetRetryMaxWaitTime(4 * wait).
			AddRetryCondition(func(resp *resty.Response, err error) bool {
				if err != nil {
					return true
				}
				if resp == nil {
					return false
				}
				return resp.StatusCode() == http.StatusTooManyRequests || resp.StatusCode() >= http.StatusInternalServerError
			})
	}
}

// NewClient 创建目录客户端
func NewClient(baseURL string, timeout time.Duration, opts ...Option) *Client {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json").
		OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
			logger.Debugw("catalog_response",
				"url", resp.Request.URL,
				"status", resp.StatusCode(),
				"elapsed_ms", resp.Time().Milliseconds(),
			)
			return nil
		})
	for _, opt := range opts {
		if opt != nil {
			opt(httpClient)
		}
	}
	return &Client{http: httpClient}
}

// ListProducts 分页拉取商品
func (c *Client) ListProducts(ctx context.Context, limit, skip int) (*ProductPage, error) {
	var page ProductPage
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"limit": strconv.Itoa(limit),
			"skip":  strconv.Itoa(skip),
		}).
		SetResult(&page).
		Get("/products")
	if err := checkResponse(resp, err, "products"); err != nil {
		logger.Warnw("catalog_fetch_products_failed", "limit", limit, "skip", skip, "error", err)
		return nil, err
	}
	logger.Debugw("catalog_products_fetched", "count", len(page.Products), "skip", skip, "total", page.Total)
	return &page, nil
}

// ListCategories 拉取全部分类
func (c *Client) ListCategories(ctx context.Context) ([]Category, error) {
	var categories []Category
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&categories).
		Get("/products/categories")
	if err := checkResponse(resp, err, "categories"); err != nil {
		logger.Warnw("catalog_fetch_categories_failed", "error", err)
		return nil, err
	}
	logger.Debugw("catalog_categories_fetched", "count", len(categories))
	return categories, nil
}

func checkResponse(resp *resty.Response, err error, resource string) error {
	if err != nil {
		return fmt.Errorf("%w: failed to fetch %s: %v", ErrFetch, resource, err)
	}
	if resp.IsError() {
		return fmt.Errorf("%w: failed to fetch %s: status %d", ErrFetch, resource, resp.StatusCode())
	}
	return nil
}
