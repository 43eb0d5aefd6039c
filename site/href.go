package site

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/iridum-cli/iridum/util"
	"github.com/samber/mo"
)

var titleIDPattern = regexp.MustCompile(`/titles/(?P<id>\d+)`)

// TitleHref accepts a full title URL or its last path segment, such as 42-dune.
func TitleHref(arg, domain string) string {
	arg = strings.TrimSpace(arg)
	if strings.HasPrefix(arg, "http://") || strings.HasPrefix(arg, "https://") {
		return strings.TrimRight(arg, "/")
	}
	return fmt.Sprintf("https://%s/it/titles/%s", domain, strings.Trim(arg, "/"))
}

// TitleID extracts the numeric id from a title href.
func TitleID(href string) mo.Option[int] {
	id, err := strconv.Atoi(util.ReGroups(titleIDPattern, href)["id"])
	if err != nil {
		return mo.None[int]()
	}
	return mo.Some(id)
}
