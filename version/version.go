// Package version checks for newer releases of mprisync.
package version

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/mprisync/mprisync/constant"
	"github.com/mprisync/mprisync/filesystem"
	"github.com/mprisync/mprisync/network"
	"github.com/mprisync/mprisync/util"
	"github.com/mprisync/mprisync/where"
	"github.com/metafates/gache"
)

// ReleasesURL is queried for the latest release.
const ReleasesURL = "https://api.github.com/repos/mprisync/mprisync/releases/latest"

var releaseCacher = gache.New[string](&gache.Options{
	Path:       where.Release(),
	Lifetime:   time.Hour * 24 * 2,
	FileSystem: &filesystem.GacheFs{},
})

// Latest returns the version of the latest release, cached for two days.
func Latest() (string, error) {
	cached, expired, err := releaseCacher.Get()
	if err != nil {
		return "", err
	}

	if !expired && cached != "" {
		return cached, nil
	}

	latest, err := fetchLatest(ReleasesURL)
	if err != nil {
		return "", err
	}

	_ = releaseCacher.Set(latest)
	return latest, nil
}

func fetchLatest(url string) (string, error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", constant.UserAgent)
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := network.Client.Do(req)
	if err != nil {
		return "", err
	}
	defer util.Ignore(resp.Body.Close)

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("release check: %s", resp.Status)
	}

	var release struct {
		TagName string `json:"tag_name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return "", err
	}

	if release.TagName == "" {
		return "", errors.New("empty tag name")
	}

	return strings.TrimPrefix(release.TagName, "v"), nil
}
