// Package source defines the domain models of the streaming website and the errors raised while scraping it.
package source

import "fmt"

func cdnImage(domain, filename string) string {
	if filename == "" {
		return ""
	}
	return fmt.Sprintf("https://cdn.%s/images/%s", domain, filename)
}
