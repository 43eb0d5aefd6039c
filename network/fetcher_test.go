package network

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/iridum-cli/iridum/constant"
	"github.com/iridum-cli/iridum/source"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
)

func TestFetcher(t *testing.T) {
	Convey("Given a page server", t, func() {
		var hits atomic.Int32
		var agent atomic.Value

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits.Add(1)
			agent.Store(r.UserAgent())
			switch r.URL.Path {
			case "/ok":
				_, _ = w.Write([]byte("<html>ok</html>"))
			default:
				w.WriteHeader(http.StatusServiceUnavailable)
			}
		}))
		defer server.Close()

		fetcher := NewFetcher(WithClient(server.Client()))

		Convey("A 2xx page is returned as is", func() {
			body, err := fetcher.Fetch(context.Background(), server.URL+"/ok")
			So(err, ShouldBeNil)
			So(string(body), ShouldEqual, "<html>ok</html>")
			So(constant.UserAgents, ShouldContain, agent.Load())
		})

		Convey("A non-2xx status is a network error and is not retried", func() {
			_, err := fetcher.Fetch(context.Background(), server.URL+"/down")
			So(source.IsNetwork(err), ShouldBeTrue)
			So(hits.Load(), ShouldEqual, 1)

			netErr, ok := lo.ErrorsAs[*source.NetworkError](err)
			So(ok, ShouldBeTrue)
			So(netErr.Status, ShouldEqual, http.StatusServiceUnavailable)
		})

		Convey("A cancelled context aborts the request", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			_, err := fetcher.Fetch(ctx, server.URL+"/ok")
			So(source.IsNetwork(err), ShouldBeTrue)
		})
	})

	Convey("Given an unreachable host", t, func() {
		_, err := NewFetcher().Fetch(context.Background(), "http://127.0.0.1:1/")

		Convey("The transport failure is a network error", func() {
			So(source.IsNetwork(err), ShouldBeTrue)
		})
	})
}

func TestUserAgent(t *testing.T) {
	Convey("Given the process strategy", t, func() {
		headers := ProcessUserAgent()

		Convey("Every call carries the same agent", func() {
			first := headers().Get("User-Agent")
			for i := 0; i < 10; i++ {
				So(headers().Get("User-Agent"), ShouldEqual, first)
			}
			So(constant.UserAgents, ShouldContain, first)
		})
	})

	Convey("Given the rotating strategy", t, func() {
		headers := RotatingUserAgent()

		Convey("Agents always come from the pool", func() {
			for i := 0; i < 10; i++ {
				So(constant.UserAgents, ShouldContain, headers().Get("User-Agent"))
			}
		})
	})
}
