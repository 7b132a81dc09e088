package client

import (
	"net/http"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/vartaverse/varta/cli/pkg/config"
	"github.com/vartaverse/varta/cli/pkg/logger"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const userAgent = "Varta-CLI/0.1.0"

var (
	mu            sync.RWMutex
	userClient    *resty.Client
	contentClient *resty.Client
	authToken     string
)

// Init initializes the user and content service clients from config
func Init() {
	InitWithURLs(config.UserServiceURL(), config.ContentServiceURL())
}

// InitWithURLs initializes both service clients against explicit base URLs
func InitWithURLs(userURL, contentURL string) {
	timeout := time.Duration(config.GetInt("api.timeout")) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	mu.Lock()
	defer mu.Unlock()
	userClient = newClient("users", userURL, timeout)
	contentClient = newClient("content", contentURL, timeout)
	if authToken != "" {
		userClient.SetAuthToken(authToken)
		contentClient.SetAuthToken(authToken)
	}
}

func newClient(service, baseURL string, timeout time.Duration) *resty.Client {
	c := resty.New()
	if config.GetBool("telemetry.enabled") {
		c = resty.NewWithClient(&http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)})
	}

	c.SetBaseURL(baseURL)
	c.SetTimeout(timeout)
	c.SetHeader("User-Agent", userAgent)
	c.SetHeader("Content-Type", "application/json")
	// Failures are surfaced to the user, never retried
	c.SetRetryCount(0)

	c.OnBeforeRequest(func(c *resty.Client, req *resty.Request) error {
		logger.Debug("HTTP Request", "service", service, "method", req.Method, "url", req.URL)
		return nil
	})

	c.OnAfterResponse(func(c *resty.Client, resp *resty.Response) error {
		logger.Debug("HTTP Response", "service", service, "status", resp.StatusCode(), "elapsed", resp.Time())
		return nil
	})

	return c
}

// Users returns the user service client
func Users() *resty.Client {
	mu.RLock()
	c := userClient
	mu.RUnlock()
	if c == nil {
		Init()
		mu.RLock()
		c = userClient
		mu.RUnlock()
	}
	return c
}

// Content returns the content service client
func Content() *resty.Client {
	mu.RLock()
	c := contentClient
	mu.RUnlock()
	if c == nil {
		Init()
		mu.RLock()
		c = contentClient
		mu.RUnlock()
	}
	return c
}

// SetAuthToken sets the bearer token on both service clients
func SetAuthToken(token string) {
	Users()
	mu.Lock()
	defer mu.Unlock()
	authToken = token
	userClient.SetAuthToken(token)
	contentClient.SetAuthToken(token)
}

// ClearAuthToken drops the bearer token from both service clients
func ClearAuthToken() {
	Users()
	mu.Lock()
	defer mu.Unlock()
	authToken = ""
	userClient.SetAuthToken("")
	contentClient.SetAuthToken("")
	userClient.Header.Del("Authorization")
	contentClient.Header.Del("Authorization")
}

// AuthToken returns the current bearer token, if any
func AuthToken() string {
	mu.RLock()
	defer mu.RUnlock()
	return authToken
}

// Reset drops both clients so the next call re-reads config
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	userClient = nil
	contentClient = nil
	authToken = ""
}
