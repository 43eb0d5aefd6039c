package version

import (
	"context"
	"errors"
	"testing"

	"github.com/iridum-cli/iridum/filesystem"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

type release struct {
	body  string
	err   error
	calls int
}

func (r *release) Fetch(context.Context, string) ([]byte, error) {
	r.calls++
	return []byte(r.body), r.err
}

func TestCompare(t *testing.T) {
	Convey("Versions compare by major, minor and patch", t, func() {
		for _, c := range []struct {
			a, b string
			want int
		}{
			{"0.3.0", "0.3.0", 0},
			{"v1.0.0", "0.9.9", 1},
			{"0.2.10", "0.3.0", -1},
		} {
			got, err := Compare(c.a, c.b)
			So(err, ShouldBeNil)
			So(got, ShouldEqual, c.want)
		}

		_, err := Compare("latest", "0.1.0")
		So(err, ShouldNotBeNil)
	})
}

func TestLatest(t *testing.T) {
	Convey("Given a release feed", t, func() {
		So(versionCacher().Set(""), ShouldBeNil)

		Convey("The tag is read once and then cached", func() {
			feed := &release{body: `{"tag_name":"v1.2.3"}`}
			v, err := latest(context.Background(), feed)
			So(err, ShouldBeNil)
			So(v, ShouldEqual, "1.2.3")

			v, err = latest(context.Background(), feed)
			So(err, ShouldBeNil)
			So(v, ShouldEqual, "1.2.3")
			So(feed.calls, ShouldEqual, 1)
		})

		Convey("An empty tag is an error", func() {
			_, err := latest(context.Background(), &release{body: `{}`})
			So(err, ShouldNotBeNil)
		})

		Convey("A fetch failure is returned", func() {
			_, err := latest(context.Background(), &release{err: errors.New("offline")})
			So(err, ShouldNotBeNil)
		})
	})
}
