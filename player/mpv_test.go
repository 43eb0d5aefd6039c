package player

import (
	"bufio"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestMPVArgs(t *testing.T) {
	Convey("Given a resolved stream", t, func() {
		req := Request{
			URL:   "https://vix.test/playlist/1?b=1&token=t&expires=1",
			Title: "Dune\nPart One",
			Headers: map[string]string{
				"User-Agent": "Mozilla/5.0 (X11, Linux)",
				"Referer":    "https://vix.test/embed/1",
			},
		}

		Convey("Headers are passed sorted with commas escaped", func() {
			args, err := mpvArgs(req, "/tmp/s.sock")
			So(err, ShouldBeNil)
			So(args, ShouldContain, "--http-header-fields=Referer: https://vix.test/embed/1,User-Agent: Mozilla/5.0 (X11%2C Linux)")
			So(args, ShouldContain, "--force-media-title=Dune Part One")
			So(args, ShouldContain, "--input-ipc-server=/tmp/s.sock")
			So(args[len(args)-1], ShouldEqual, req.URL)
			So(args, ShouldNotContain, "--fullscreen")
		})

		Convey("Resume and fullscreen become flags", func() {
			req.Start = 61.4
			req.Fullscreen = true
			args, err := mpvArgs(req, "/tmp/s.sock")
			So(err, ShouldBeNil)
			So(args, ShouldContain, "--start=61")
			So(args, ShouldContain, "--fullscreen")
		})

		Convey("IINA receives mpv options after --args", func() {
			req.Fullscreen = true
			args, err := iinaArgs(req)
			So(err, ShouldBeNil)
			So(args[:3], ShouldResemble, []string{"-a", "IINA", req.URL})
			So(args, ShouldContain, "--mpv-fullscreen")
		})
	})

	Convey("Unsafe targets are rejected", t, func() {
		for _, target := range []string{"", "--script=evil.lua", "file:///etc/passwd", "https://x.test/\nfoo"} {
			_, err := mpvArgs(Request{URL: target}, "/tmp/s.sock")
			So(err, ShouldNotBeNil)
		}
	})
}

func TestNew(t *testing.T) {
	Convey("Players are picked by name", t, func() {
		p, err := New("MPV")
		So(err, ShouldBeNil)
		So(p, ShouldHaveSameTypeAs, &MPV{})

		_, err = New("vlc")
		So(err, ShouldNotBeNil)
	})
}

func TestReadReply(t *testing.T) {
	Convey("Given an IPC stream with events before the reply", t, func() {
		stream := strings.Join([]string{
			`{"event":"playback-restart"}`,
			`{"data":1,"error":"success","request_id":6}`,
			`{"data":42.5,"error":"success","request_id":7}`,
		}, "\n")

		Convey("The reply with the matching id is returned", func() {
			data, err := readReply(bufio.NewScanner(strings.NewReader(stream)), 7)
			So(err, ShouldBeNil)
			So(data, ShouldEqual, 42.5)
		})

		Convey("An mpv error is reported", func() {
			data := `{"error":"property unavailable","request_id":1}`
			_, err := readReply(bufio.NewScanner(strings.NewReader(data)), 1)
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "property unavailable")
		})

		Convey("A closed connection is an error", func() {
			_, err := readReply(bufio.NewScanner(strings.NewReader("")), 1)
			So(err, ShouldNotBeNil)
		})
	})
}
