package service_test

import (
	"strings"

	"github.com/aaravmahajanofficial/helmet-storefront/internal/testutils"
)

func newMemCache() *testutils.MemoryCache {
	return testutils.NewMemoryCache()
}

func contains(s, sub string) bool {
	return strings.Contains(s, sub)
}
