package monomotapa

import "embed"

// Sources holds the handler source and its tests, displayed on /source
// and /unit-tests.
//
//go:embed handlers.go handlers_test.go
var Sources embed.FS
