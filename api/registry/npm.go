// Package registry looks up published package versions.
package registry

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/morikuni/failure/v2"
	"github.com/yomek/c7ctl/api/cache"
)

// ErrorCode defines error types for registry operations
type ErrorCode string

const (
	ErrPackageNotFound ErrorCode = "PackageNotFound"
)

func (c ErrorCode) ErrorCode() string {
	return string(c)
}

// npmPackument is the subset of the npm registry response we read
type npmPackument struct {
	DistTags map[string]string `json:"dist-tags"`
	Homepage string            `json:"homepage"`
}

// PackageInfo describes a published npm package
type PackageInfo struct {
	Name     string
	Latest   string
	Homepage string
}

// LatestNPM returns the latest published version of an npm package.
// Results are cached, forceUpdate bypasses the cache.
func LatestNPM(pkg string, forceUpdate bool) (PackageInfo, error) {
	c := cache.New[PackageInfo]("npm")
	return c.GetOrSet(pkg, func() (PackageInfo, error) {
		return fetchNPM(pkg)
	}, forceUpdate)
}

// npmRegistryBaseURL is a variable so tests can point it at a fake registry
var npmRegistryBaseURL = "https://registry.npmjs.org"

func fetchNPM(pkg string) (PackageInfo, error) {
	url := fmt.Sprintf("%s/%s", npmRegistryBaseURL, pkg)
	resp, err := http.Get(url)
	if err != nil {
		return PackageInfo{}, failure.Wrap(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return PackageInfo{}, failure.New(ErrPackageNotFound,
			failure.Message("Package information not found on the npm registry"),
			failure.Context{"pkg": pkg, "status": resp.Status},
		)
	}

	var info npmPackument
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return PackageInfo{}, failure.Wrap(err)
	}

	return PackageInfo{
		Name:     pkg,
		Latest:   info.DistTags["latest"],
		Homepage: info.Homepage,
	}, nil
}
