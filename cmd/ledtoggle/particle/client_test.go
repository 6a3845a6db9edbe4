package particle

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const (
	testDevice = "photon-01"
	testToken  = "secret-token"
)

type request struct {
	Method string
	Path   string
	Query  url.Values
	Form   url.Values
}

// deviceCloud stands in for api.particle.io.
type deviceCloud struct {
	mu       sync.Mutex
	requests []request

	statusCode int
	statusBody string
	ledCode    int
}

func newDeviceCloud(t *testing.T, statusCode int, statusBody string) (*deviceCloud, *httptest.Server) {
	dc := &deviceCloud{
		statusCode: statusCode,
		statusBody: statusBody,
		ledCode:    http.StatusOK,
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req := request{
			Method: r.Method,
			Path:   r.URL.EscapedPath(),
			Query:  r.URL.Query(),
		}
		if r.Method == http.MethodPost {
			assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
			assert.NoError(t, r.ParseForm())
			req.Form = r.PostForm
		}
		dc.mu.Lock()
		dc.requests = append(dc.requests, req)
		ledCode := dc.ledCode
		dc.mu.Unlock()

		switch req.Path {
		case "/v1/devices/" + testDevice + "/led_status":
			w.WriteHeader(dc.statusCode)
			io.WriteString(w, dc.statusBody)
		case "/v1/devices/" + testDevice + "/led":
			w.WriteHeader(ledCode)
			io.WriteString(w, `{"id":"`+testDevice+`","connected":true,"return_value":1}`)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return dc, srv
}

func (dc *deviceCloud) Requests() []request {
	dc.mu.Lock()
	defer dc.mu.Unlock()
	return append([]request(nil), dc.requests...)
}

func newTestClient(srv *httptest.Server, log *zap.SugaredLogger) *Client {
	return New(Config{
		DeviceID:    testDevice,
		AccessToken: testToken,
		APIURL:      srv.URL,
		Timeout:     time.Second,
	}, WithHTTPClient(srv.Client()), WithLogger(log))
}

func Test_Toggle(t *testing.T) {
	tests := []struct {
		name string
		body string
		want Status
	}{
		{name: "on turns off", body: `{"result":"on"}`, want: Off},
		{name: "off turns on", body: `{"result":"off"}`, want: On},
		{name: "missing result", body: `{}`, want: On},
		{name: "null result", body: `{"result":null}`, want: On},
		{name: "numeric result", body: `{"result":1}`, want: On},
		{name: "unknown result", body: `{"result":"blinking"}`, want: On},
		{
			name: "full variable response",
			body: `{"cmd":"VarReturn","name":"led_status","result":"on","coreInfo":{"deviceID":"` + testDevice + `","connected":true}}`,
			want: Off,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			dc, srv := newDeviceCloud(t, http.StatusOK, test.body)
			client := newTestClient(srv, zap.NewNop().Sugar())

			res, err := Toggle(context.Background(), client, testDevice)
			require.NoError(t, err)
			assert.Equal(t, test.want, res)

			reqs := dc.Requests()
			require.Len(t, reqs, 2)

			assert.Equal(t, http.MethodGet, reqs[0].Method)
			assert.Equal(t, "/v1/devices/"+testDevice+"/led_status", reqs[0].Path)
			assert.Equal(t, testToken, reqs[0].Query.Get("access_token"))

			assert.Equal(t, http.MethodPost, reqs[1].Method)
			assert.Equal(t, "/v1/devices/"+testDevice+"/led", reqs[1].Path)
			assert.Equal(t, string(test.want), reqs[1].Form.Get("args"))
			assert.Equal(t, testToken, reqs[1].Form.Get("access_token"))
		})
	}
}

func Test_ToggleStatusFailures(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		body       string
		auth       bool
	}{
		{name: "server error", statusCode: http.StatusInternalServerError, body: `{"error":"boom"}`},
		{name: "offline device", statusCode: http.StatusBadRequest, body: `{"ok":false,"error":"Timed out."}`},
		{
			name:       "bad token",
			statusCode: http.StatusUnauthorized,
			body:       `{"error":"invalid_token","error_description":"The access token provided is invalid."}`,
			auth:       true,
		},
		{name: "not json", statusCode: http.StatusOK, body: `<html>maintenance</html>`},
		{name: "json array", statusCode: http.StatusOK, body: `["on"]`},
		{name: "json null", statusCode: http.StatusOK, body: `null`},
		{name: "empty body", statusCode: http.StatusOK, body: ``},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			dc, srv := newDeviceCloud(t, test.statusCode, test.body)
			client := newTestClient(srv, zap.NewNop().Sugar())

			_, err := Toggle(context.Background(), client, testDevice)
			require.Error(t, err)
			assert.Equal(t, test.auth, IsAuthFailure(err))
			assert.NotContains(t, err.Error(), testToken)

			reqs := dc.Requests()
			require.Len(t, reqs, 1)
			assert.Equal(t, http.MethodGet, reqs[0].Method)
		})
	}
}

func Test_StatusErrorMessage(t *testing.T) {
	_, srv := newDeviceCloud(t, http.StatusUnauthorized, `{"error":"invalid_token","error_description":"The access token provided is invalid."}`)
	client := newTestClient(srv, zap.NewNop().Sugar())

	_, err := client.LEDStatus(context.Background(), testDevice)
	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusUnauthorized, se.StatusCode)
	assert.Equal(t, "The access token provided is invalid.", se.Message)
	assert.Contains(t, err.Error(), "401")
}

func Test_ToggleUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	client := newTestClient(srv, zap.NewNop().Sugar())
	srv.Close()

	_, err := Toggle(context.Background(), client, testDevice)
	require.Error(t, err)
	assert.NotContains(t, err.Error(), testToken)
	assert.Contains(t, err.Error(), redacted)
}

func Test_LEDStatusBadAPIURL(t *testing.T) {
	client := New(Config{APIURL: "http://%zz", AccessToken: testToken})

	_, err := client.LEDStatus(context.Background(), testDevice)
	require.Error(t, err)
	assert.NotContains(t, err.Error(), testToken)
	assert.Contains(t, err.Error(), redacted)
}

func Test_SetLEDIgnoresReply(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	dc, srv := newDeviceCloud(t, http.StatusOK, `{"result":"off"}`)
	dc.mu.Lock()
	dc.ledCode = http.StatusBadRequest
	dc.mu.Unlock()
	client := newTestClient(srv, zap.New(core).Sugar())

	res, err := Toggle(context.Background(), client, testDevice)
	require.NoError(t, err)
	assert.Equal(t, On, res)
	assert.Equal(t, 1, logs.FilterMessage("device cloud did not accept the LED command").Len())
}

func Test_LEDStatusWarnsOnUnknownValue(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	_, srv := newDeviceCloud(t, http.StatusOK, `{"result":"dim"}`)
	client := newTestClient(srv, zap.New(core).Sugar())

	res, err := client.LEDStatus(context.Background(), testDevice)
	require.NoError(t, err)
	assert.Equal(t, Off, res)
	assert.Equal(t, 1, logs.FilterMessage("unrecognized LED status, treating it as off").Len())
}

func Test_New(t *testing.T) {
	c := New(Config{})
	assert.Equal(t, DefaultAPIURL, c.apiURL)
	assert.Equal(t, DefaultAPIURL+"/v1/devices/photon/led", c.deviceURL("photon", "led"))

	c = New(Config{APIURL: "http://localhost:8080/"})
	assert.Equal(t, "http://localhost:8080/v1/devices/my%20photon/led_status", c.deviceURL("my photon", "led_status"))
}

func Test_redactURL(t *testing.T) {
	assert.Equal(t,
		"https://api.particle.io/v1/devices/photon/led_status?access_token=REDACTED",
		redactURL("https://api.particle.io/v1/devices/photon/led_status?access_token=abc"))
	assert.Equal(t, "https://api.particle.io/v1/devices/photon/led", redactURL("https://api.particle.io/v1/devices/photon/led"))
}
