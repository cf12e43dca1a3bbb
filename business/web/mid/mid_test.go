package mid_test

import (
	"context"
	"encoding/json"
	"errors"
	"expvar"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/ardanlabs/ledger/business/web/errs"
	"github.com/ardanlabs/ledger/business/web/mid"
	"github.com/ardanlabs/ledger/foundation/logger"
	"github.com/ardanlabs/ledger/foundation/web"
	"golang.org/x/time/rate"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func Test_Middleware(t *testing.T) {
	log, err := logger.New("TEST")
	if err != nil {
		t.Fatalf("Should be able to construct a logger: %s", err)
	}
	defer log.Sync()

	app := web.NewApp(
		make(chan os.Signal, 1),
		mid.Logger(log),
		mid.Errors(log),
		mid.Metrics(),
		mid.Panics(),
	)

	ok := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		return web.Respond(ctx, w, struct{ Status string }{"ok"}, http.StatusOK)
	}
	trusted := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		return errs.NewTrusted(errors.New("bad index"), http.StatusBadRequest)
	}
	untrusted := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		return errors.New("database secret")
	}
	panics := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		panic("boom")
	}

	app.Handle(http.MethodGet, "v1", "/ok", ok)
	app.Handle(http.MethodGet, "v1", "/limited", ok, mid.RateLimit(rate.NewLimiter(0, 1)))
	app.Handle(http.MethodGet, "v1", "/trusted", trusted)
	app.Handle(http.MethodGet, "v1", "/untrusted", untrusted)
	app.Handle(http.MethodGet, "v1", "/panics", panics)

	type table struct {
		name   string
		path   string
		status int
		errMsg string
	}

	tt := []table{
		{name: "ok", path: "/v1/ok", status: http.StatusOK},
		{name: "limitedfirst", path: "/v1/limited", status: http.StatusOK},
		{name: "limitedsecond", path: "/v1/limited", status: http.StatusTooManyRequests, errMsg: "rate limit exceeded, try again later"},
		{name: "trusted", path: "/v1/trusted", status: http.StatusBadRequest, errMsg: "bad index"},
		{name: "untrusted", path: "/v1/untrusted", status: http.StatusInternalServerError, errMsg: "Internal Server Error"},
		{name: "panics", path: "/v1/panics", status: http.StatusInternalServerError, errMsg: "Internal Server Error"},
	}

	t.Log("Given the need to process requests through the middleware.")
	{
		for testID, tst := range tt {
			t.Logf("\tTest %d:\tWhen calling %s.", testID, tst.path)
			{
				r := httptest.NewRequest(http.MethodGet, tst.path, nil)
				w := httptest.NewRecorder()
				app.ServeHTTP(w, r)

				if w.Code != tst.status {
					t.Fatalf("\t%s\tTest %d:\tShould receive status %d, got %d.", failed, testID, tst.status, w.Code)
				}
				t.Logf("\t%s\tTest %d:\tShould receive status %d.", success, testID, tst.status)

				if tst.errMsg == "" {
					continue
				}

				var resp errs.Response
				if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
					t.Fatalf("\t%s\tTest %d:\tShould be able to decode the response: %v", failed, testID, err)
				}
				if resp.Error != tst.errMsg {
					t.Fatalf("\t%s\tTest %d:\tShould receive %q, got %q.", failed, testID, tst.errMsg, resp.Error)
				}
				t.Logf("\t%s\tTest %d:\tShould receive %q.", success, testID, tst.errMsg)
			}
		}
	}
}

func Test_Metrics(t *testing.T) {
	app := web.NewApp(make(chan os.Signal, 1), mid.Metrics())

	ok := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		return web.Respond(ctx, w, struct{ Status string }{"ok"}, http.StatusOK)
	}
	fails := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		return errors.New("failed")
	}

	app.Handle(http.MethodGet, "v1", "/ok", ok)
	app.Handle(http.MethodGet, "v1", "/fails", fails)

	requests := expvar.Get("requests").(*expvar.Int)
	errCount := expvar.Get("errors").(*expvar.Int)
	goroutines := expvar.Get("goroutines").(*expvar.Int)

	t.Log("Given the need to count requests.")
	{
		t.Logf("\tTest 0:\tWhen handling 200 requests where every other one fails.")
		{
			startReq := requests.Value()
			startErr := errCount.Value()

			for i := range 200 {
				path := "/v1/ok"
				if i%2 == 1 {
					path = "/v1/fails"
				}
				app.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
			}

			if got := requests.Value() - startReq; got != 200 {
				t.Fatalf("\t%s\tTest 0:\tShould count 200 requests, got %d.", failed, got)
			}
			t.Logf("\t%s\tTest 0:\tShould count 200 requests.", success)

			if got := errCount.Value() - startErr; got != 100 {
				t.Fatalf("\t%s\tTest 0:\tShould count 100 errors, got %d.", failed, got)
			}
			t.Logf("\t%s\tTest 0:\tShould count 100 errors.", success)

			if goroutines.Value() == 0 {
				t.Fatalf("\t%s\tTest 0:\tShould record the goroutine count.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould record the goroutine count.", success)
		}
	}
}
