package config

import (
	"math"
	"testing"

	"github.com/iridum-cli/iridum/filesystem"
	"github.com/iridum-cli/iridum/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestSetup(t *testing.T) {
	Convey("Config Setup", t, func() {
		Convey("Should initialize without error", func() {
			err := Setup()
			So(err, ShouldBeNil)
		})

		Convey("Should have default values populated", func() {
			_ = Setup()
			for name := range Default {
				So(viper.Get(name), ShouldNotBeNil)
			}
		})

		Convey("Should register every defined key", func() {
			So(len(Default), ShouldEqual, key.DefinedFieldsCount)
		})

		Convey("EnvKeyReplacer should convert dots to underscores", func() {
			result := EnvKeyReplacer.Replace("site.base_domain")
			So(result, ShouldEqual, "site_base_domain")
		})
	})
}

func TestNormalizeDomain(t *testing.T) {
	Convey("Given a configured base domain", t, func() {
		Convey("The https prefix is stripped regardless of case and the host casing is kept", func() {
			So(NormalizeDomain("HTTPS://Example.com/"), ShouldEqual, "Example.com")
		})

		Convey("Trailing slashes are removed", func() {
			So(NormalizeDomain("example.com//"), ShouldEqual, "example.com")
		})

		Convey("A bare host is untouched", func() {
			So(NormalizeDomain("example.com"), ShouldEqual, "example.com")
		})
	})
}

func TestHoldSpeed(t *testing.T) {
	Convey("Hold speed", t, func() {
		Convey("Out of range values are clamped on read", func() {
			So(ClampHoldSpeed(0.1), ShouldEqual, MinHoldSpeed)
			So(ClampHoldSpeed(3), ShouldEqual, MaxHoldSpeed)
			So(ClampHoldSpeed(math.NaN()), ShouldEqual, DefaultHoldSpeed)
			So(ClampHoldSpeed(1.25), ShouldEqual, 1.25)
		})

		Convey("Out of range or off-step values are rejected on write", func() {
			So(Validate(key.PlayerHoldSpeed, 2.5), ShouldNotBeNil)
			So(Validate(key.PlayerHoldSpeed, 0.3), ShouldNotBeNil)
			So(Validate(key.PlayerHoldSpeed, 0.75), ShouldBeNil)
		})
	})
}

func TestCurrent(t *testing.T) {
	Convey("Given viper values", t, func() {
		_ = Setup()
		viper.Set(key.SiteBaseDomain, "https://Stream.test/")
		viper.Set(key.StreamPatch, true)
		viper.Set(key.ResolverWorkers, 0)

		Convey("Current returns a normalized snapshot", func() {
			s := Current()
			So(s.BaseDomain, ShouldEqual, "Stream.test")
			So(s.PatchStream, ShouldBeTrue)
			So(s.Workers, ShouldEqual, 1)
		})

		Reset(func() {
			for _, k := range []string{key.SiteBaseDomain, key.StreamPatch, key.ResolverWorkers} {
				viper.Set(k, Default[k].Value)
			}
		})
	})
}
