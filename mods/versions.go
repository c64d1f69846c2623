package mods

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// populated at link time via -ldflags
var (
	versionString  = ""
	versionGitSHA  = ""
	buildTimestamp = ""
)

type Version struct {
	Major  int    `json:"major"`
	Minor  int    `json:"minor"`
	Patch  int    `json:"patch"`
	GitSHA string `json:"git"`
}

var _version *Version

func GetVersion() *Version {
	if _version == nil {
		v, err := semver.NewVersion(versionString)
		if err != nil {
			_version = &Version{}
		} else {
			_version = &Version{
				Major:  int(v.Major()),
				Minor:  int(v.Minor()),
				Patch:  int(v.Patch()),
				GitSHA: versionGitSHA,
			}
		}
	}
	return _version
}

func DisplayVersion() string {
	return strings.ToUpper(versionString)
}

func VersionString() string {
	return fmt.Sprintf("%s (%v %v)", strings.ToUpper(versionString), versionGitSHA, buildTimestamp)
}

func BuildCompiler() string {
	return runtime.Version()
}

func BuildTimestamp() string {
	return buildTimestamp
}
