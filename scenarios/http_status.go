package scenarios

import (
	"fmt"
	"net/http"
	"net/http/httptest"

	"github.com/launchdarkly/go-test-helpers/v2/httphelpers"

	"github.com/launchdarkly/exude/firstclass"
)

// HTTPStatusCases checks, for each status, that a client sees the status a handler returns.
func HTTPStatusCases() ([]firstclass.Case, error) {
	var cases []firstclass.Case
	for _, status := range []int{200, 204, 301, 404, 503} {
		c, err := firstclass.NewTestCase(func(any) error {
			return checkStatus(httphelpers.HandlerWithStatus(status), status)
		})
		if err != nil {
			return nil, err
		}
		cases = append(cases, c)
	}
	return cases, nil
}

func checkStatus(handler http.Handler, expected int) error {
	var err error
	httphelpers.WithServer(handler, func(server *httptest.Server) {
		client := &http.Client{
			CheckRedirect: func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse },
		}
		var resp *http.Response
		if resp, err = client.Get(server.URL); err != nil {
			return
		}
		resp.Body.Close()
		if resp.StatusCode != expected {
			err = fmt.Errorf("expected status %d, got %d", expected, resp.StatusCode)
		}
	})
	return err
}
