package services

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/eventsqa/harness/internal/models"
	srvErrors "github.com/eventsqa/harness/pkg/errors"
)

// Target is the suite file and ginkgo focus that exercise one test type.
type Target struct {
	File  string
	Focus string
}

var defaultTargets = map[models.TestType]Target{
	models.TestTypeAccount:     {File: "account_test.go", Focus: "Account API"},
	models.TestTypeUser:        {File: "user_test.go", Focus: "User API"},
	models.TestTypeProfile:     {File: "profile_test.go", Focus: "Profile API"},
	models.TestTypeTagAffinity: {File: "tagaffinity_test.go", Focus: "TagAffinity API"},
	models.TestTypeEvent:       {File: "event_test.go", Focus: "Event API"},
	models.TestTypeUserEvent:   {File: "userevent_test.go", Focus: "UserEvent API"},
	models.TestTypeURL:         {File: "url_test.go", Focus: "Url API"},
	models.TestTypeCrawl:       {File: "crawl_test.go", Focus: "Crawl API"},
}

// testTypeOf reads the test_type field of data. Missing or unknown values fall back to account.
func testTypeOf(data map[string]any) models.TestType {
	if s, ok := data["test_type"].(string); ok {
		if _, known := defaultTargets[models.TestType(s)]; known {
			return models.TestType(s)
		}
	}
	return models.TestTypeAccount
}

// resolveTarget returns the target for testType and checks that its file exists in suiteDir.
func resolveTarget(suiteDir string, testType models.TestType) (Target, error) {
	t, ok := defaultTargets[testType]
	if !ok {
		t = defaultTargets[models.TestTypeAccount]
	}
	path := filepath.Join(suiteDir, t.File)
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return Target{}, srvErrors.NewTestFileNotFoundError(path)
	}
	return Target{File: path, Focus: t.Focus}, nil
}

// FocusPattern is the ginkgo focus regexp selecting the suite of testType and nothing else.
// Unknown test types select the account suite.
func FocusPattern(testType models.TestType) string {
	t, ok := defaultTargets[testType]
	if !ok {
		t = defaultTargets[models.TestTypeAccount]
	}
	return focusPattern(t.Focus)
}

// ginkgo matches the focus against the full spec text, so "Event API" would also pick up "UserEvent API".
func focusPattern(focus string) string {
	return `^` + regexp.QuoteMeta(focus) + `\b`
}

func focusArg(focus string) string {
	return fmt.Sprintf("-ginkgo.focus=%s", focusPattern(focus))
}
