package main

// version is set at build time with -ldflags "-X main.version=...".
var version string

func versionString() string {
	if version == "" {
		return "sltools (devel)"
	}
	return "sltools " + version
}
