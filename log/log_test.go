package log

import (
	"testing"

	"github.com/iridum-cli/iridum/filesystem"
	"github.com/iridum-cli/iridum/key"
	"github.com/iridum-cli/iridum/where"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestSetup(t *testing.T) {
	Convey("Given logging is disabled", t, func() {
		viper.Set(key.LogsWrite, false)

		Convey("Setup does nothing and entries are discarded", func() {
			So(Setup(), ShouldBeNil)
			So(func() { WithFields(Fields{"hop": "embed"}).Info("ignored") }, ShouldNotPanic)
		})
	})

	Convey("Given logging is enabled", t, func() {
		viper.Set(key.LogsWrite, true)
		viper.Set(key.LogsLevel, "debug")

		Convey("Setup creates a log file for today", func() {
			So(Setup(), ShouldBeNil)
			files := lo.Must(filesystem.API().ReadDir(where.Logs()))
			So(len(files), ShouldBeGreaterThan, 0)
		})

		Reset(func() {
			viper.Set(key.LogsWrite, false)
			enabled = false
		})
	})
}
