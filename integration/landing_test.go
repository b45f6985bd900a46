package integration

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/akeren/betrayal-web/config"
	"github.com/akeren/betrayal-web/config/router"
	"github.com/akeren/betrayal-web/domain"
	"github.com/akeren/betrayal-web/internal/log"
	"github.com/akeren/betrayal-web/internal/view"
	"github.com/stretchr/testify/suite"
)

type LandingSiteTestSuite struct {
	suite.Suite
	server    *httptest.Server
	baseURL   string
	appConfig *config.ApplicationConfig
}

func (suite *LandingSiteTestSuite) SetupSuite() {
	logger := log.NewDiscardLogger()

	views, err := view.New()
	suite.Require().NoError(err)

	suite.appConfig = &config.ApplicationConfig{
		Logger: logger,
		Views:  views,
		Config: &config.AppConfig{
			RateLimitRequests:       1000,
			RateLimitWindow:         time.Minute,
			SignInRateLimitRequests: 1000,
			RequestTimeout:          30 * time.Second,
		},
		StartedAt: time.Now(),
	}

	suite.appConfig.RouterService = router.CreateRouterService(logger, nil, &router.RouterConfig{
		RateLimitRequests: suite.appConfig.Config.RateLimitRequests,
		RateLimitWindow:   suite.appConfig.Config.RateLimitWindow,
		RequestTimeout:    suite.appConfig.Config.RequestTimeout,
	})
	suite.appConfig.RouterService.SetViews(views)

	suite.Require().NoError(domain.SetupCoreDomain(suite.appConfig))

	suite.server = httptest.NewServer(suite.appConfig.RouterService.GetEngine())
	suite.baseURL = suite.server.URL
}

func (suite *LandingSiteTestSuite) TearDownSuite() {
	if suite.server != nil {
		suite.server.Close()
	}
	if suite.appConfig != nil {
		suite.appConfig.Cleanup()
	}
}

func (suite *LandingSiteTestSuite) readBody(resp *http.Response) string {
	body, err := io.ReadAll(resp.Body)
	suite.Require().NoError(err)
	return string(body)
}

func (suite *LandingSiteTestSuite) TestLandingPage() {
	resp, err := http.Get(suite.baseURL + "/")
	suite.Require().NoError(err)
	defer resp.Body.Close()

	suite.Equal(http.StatusOK, resp.StatusCode)
	suite.Equal("text/html; charset=utf-8", resp.Header.Get("Content-Type"))
	suite.NotEmpty(resp.Header.Get("X-Correlation-ID"))

	body := suite.readBody(resp)
	suite.Contains(body, "Welcome to Betrayal")
	suite.Contains(body, `type="email"`)
	suite.Contains(body, `type="password"`)
	suite.Contains(body, `href="/signup"`)
}

func (suite *LandingSiteTestSuite) TestCorrelationIDIsEchoed() {
	req, err := http.NewRequest(http.MethodGet, suite.baseURL+"/", nil)
	suite.Require().NoError(err)
	req.Header.Set("X-Correlation-ID", "test-correlation-id")

	resp, err := http.DefaultClient.Do(req)
	suite.Require().NoError(err)
	defer resp.Body.Close()

	suite.Equal("test-correlation-id", resp.Header.Get("X-Correlation-ID"))
}

func (suite *LandingSiteTestSuite) TestSubmitEmptyForm() {
	resp, err := http.PostForm(suite.baseURL+"/", url.Values{})
	suite.Require().NoError(err)
	defer resp.Body.Close()

	suite.Equal(http.StatusUnprocessableEntity, resp.StatusCode)
	suite.Contains(suite.readBody(resp), "Please fill out this field.")
}

func (suite *LandingSiteTestSuite) TestSubmitValidForm() {
	resp, err := http.PostForm(suite.baseURL+"/", url.Values{
		"email":    {"ada@example.com"},
		"password": {"never-echoed-secret"},
	})
	suite.Require().NoError(err)
	defer resp.Body.Close()

	suite.Equal(http.StatusNotImplemented, resp.StatusCode)

	body := suite.readBody(resp)
	suite.Contains(body, "Sign-in is not available yet.")
	suite.NotContains(body, "never-echoed-secret")
}

func (suite *LandingSiteTestSuite) TestStylesheet() {
	resp, err := http.Get(suite.baseURL + "/static/app.css")
	suite.Require().NoError(err)
	defer resp.Body.Close()

	suite.Equal(http.StatusOK, resp.StatusCode)
	suite.Contains(resp.Header.Get("Content-Type"), "text/css")
	suite.Contains(suite.readBody(resp), ".min-h-screen")
}

func (suite *LandingSiteTestSuite) TestSignupIsNotRouted() {
	resp, err := http.Get(suite.baseURL + "/signup")
	suite.Require().NoError(err)
	defer resp.Body.Close()

	suite.Equal(http.StatusNotFound, resp.StatusCode)
}

func (suite *LandingSiteTestSuite) TestHealthCheck() {
	resp, err := http.Get(suite.baseURL + "/health")
	suite.Require().NoError(err)
	defer resp.Body.Close()

	suite.Equal(http.StatusOK, resp.StatusCode)

	var response map[string]interface{}
	suite.Require().NoError(json.NewDecoder(resp.Body).Decode(&response))

	suite.Equal(float64(200), response["code"])
	suite.Contains(response["message"], "health check completed")

	data := response["data"].(map[string]interface{})
	suite.Equal(float64(1), data["views"])
	suite.Equal(float64(0), data["cache"])
	suite.Contains(data, "uptime")
}

func (suite *LandingSiteTestSuite) TestAPIHello() {
	resp, err := http.Get(suite.baseURL + "/api")
	suite.Require().NoError(err)
	defer resp.Body.Close()

	var response struct {
		Data string `json:"data"`
	}
	suite.Require().NoError(json.NewDecoder(resp.Body).Decode(&response))

	suite.Equal(http.StatusOK, resp.StatusCode)
	suite.Equal("Hello, World!", response.Data)
}

func (suite *LandingSiteTestSuite) TestAPIEcho() {
	resp, err := http.Post(suite.baseURL+"/api/echo", "application/json", strings.NewReader(`{"room":"lobby","players":4}`))
	suite.Require().NoError(err)
	defer resp.Body.Close()

	var response struct {
		Data map[string]interface{} `json:"data"`
	}
	suite.Require().NoError(json.NewDecoder(resp.Body).Decode(&response))

	suite.Equal(http.StatusOK, resp.StatusCode)
	suite.Equal(map[string]interface{}{"room": "lobby", "players": float64(4)}, response.Data)
}

func (suite *LandingSiteTestSuite) TestMetrics() {
	if os.Getenv("METRICS_ENABLED") == "false" {
		suite.T().Skip("metrics disabled")
	}

	resp, err := http.Get(suite.baseURL + "/metrics")
	suite.Require().NoError(err)
	defer resp.Body.Close()

	suite.Equal(http.StatusOK, resp.StatusCode)
	suite.Contains(suite.readBody(resp), "http_requests_total")
}

func TestLandingSiteTestSuite(t *testing.T) {
	suite.Run(t, new(LandingSiteTestSuite))
}
