// Package version records the build version reported by the health,
// status, and info endpoints.
package version

// Version is the semantic version of the service. It can be overridden
// at build time:
//
//	go build -ldflags "-X github.com/jaekimandy/devops-demo/pkg/version.Version=1.2.3"
var Version = "1.0.0"
