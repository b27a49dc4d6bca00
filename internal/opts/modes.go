package opts

import "strconv"

// Allowed arguments for each argument-taking flag, in the order they are
// documented.
var (
	InstallValues = []string{"d", "n"}
	TestValues    = []string{"p", "t", "a", "d", "s"}
	DocValues     = []string{"h", "s"}
)

// InstallMode selects how the wrapped package is installed.
type InstallMode int

const (
	InstallNone InstallMode = iota
	// InstallDev is an editable install with the dev extras.
	InstallDev
	InstallNormal
)

func parseInstallMode(v string) (InstallMode, bool) {
	switch v {
	case "d":
		return InstallDev, true
	case "n":
		return InstallNormal, true
	}
	return InstallNone, false
}

// String returns the flag argument that selects m.
func (m InstallMode) String() string {
	switch m {
	case InstallNone:
		return ""
	case InstallDev:
		return "d"
	case InstallNormal:
		return "n"
	default:
		return invalidMode(int(m))
	}
}

// TestMode selects which test suite runs.
type TestMode int

const (
	TestNone TestMode = iota
	// TestProject runs this repository's test suite.
	TestProject
	// TestTools runs the dispatcher's own tests.
	TestTools
	// TestAll runs every discoverable test.
	TestAll
	// TestPackage runs the wrapped package's tests.
	TestPackage
	// TestStyle runs the style checker over the repository.
	TestStyle
)

func parseTestMode(v string) (TestMode, bool) {
	switch v {
	case "p":
		return TestProject, true
	case "t":
		return TestTools, true
	case "a":
		return TestAll, true
	case "d":
		return TestPackage, true
	case "s":
		return TestStyle, true
	}
	return TestNone, false
}

func (m TestMode) String() string {
	switch m {
	case TestNone:
		return ""
	case TestProject:
		return "p"
	case TestTools:
		return "t"
	case TestAll:
		return "a"
	case TestPackage:
		return "d"
	case TestStyle:
		return "s"
	default:
		return invalidMode(int(m))
	}
}

// DocMode selects how documentation is produced.
type DocMode int

const (
	DocNone DocMode = iota
	DocHTML
	DocServe
)

func parseDocMode(v string) (DocMode, bool) {
	switch v {
	case "h":
		return DocHTML, true
	case "s":
		return DocServe, true
	}
	return DocNone, false
}

func (m DocMode) String() string {
	switch m {
	case DocNone:
		return ""
	case DocHTML:
		return "h"
	case DocServe:
		return "s"
	default:
		return invalidMode(int(m))
	}
}

func invalidMode(m int) string {
	return "mode(" + strconv.Itoa(m) + ")"
}
