package service

import (
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"
)

// Fallbacks used when an environment signal is unavailable.
const (
	fallbackLocale     = "und"
	fallbackColorDepth = 24
	fallbackCPUCount   = 1
	fallbackPlatform   = "unknown"
)

// fingerprintSeparator joins the ordered fingerprint attributes.
const fingerprintSeparator = "|"

// SystemDeviceInfo reads fingerprint signals from the running environment.
//
// Attributes, in order: locale, standard timezone offset in minutes, display
// color depth, logical processor count, platform. The fingerprint is computed
// once at construction.
//
// The fingerprint is a convenience binding, not a secret. Locale changes,
// timezone moves, CPU changes or a different build platform all produce a
// different fingerprint, which makes previously encrypted values undecryptable.
type SystemDeviceInfo struct {
	fingerprint string
}

// NewSystemDeviceInfo collects the environment signals. colorDepth is supplied by
// the desktop shell since it cannot be read from a headless process; values <= 0
// fall back to 24.
func NewSystemDeviceInfo(colorDepth int) *SystemDeviceInfo {
	return &SystemDeviceInfo{
		fingerprint: buildFingerprint(
			detectLocale(os.Getenv),
			standardOffsetMinutes(time.Now(), time.Local),
			colorDepth,
			runtime.NumCPU(),
			runtime.GOOS+"/"+runtime.GOARCH,
		),
	}
}

// Fingerprint returns the fingerprint computed at construction.
func (s *SystemDeviceInfo) Fingerprint() string {
	return s.fingerprint
}

// StaticDeviceInfo returns a fixed fingerprint. Used in tests and tooling.
type StaticDeviceInfo string

// Fingerprint returns the static value.
func (s StaticDeviceInfo) Fingerprint() string {
	return string(s)
}

func buildFingerprint(locale string, offsetMinutes, colorDepth, cpuCount int, platform string) string {
	if locale == "" {
		locale = fallbackLocale
	}
	if colorDepth <= 0 {
		colorDepth = fallbackColorDepth
	}
	if cpuCount <= 0 {
		cpuCount = fallbackCPUCount
	}
	if platform == "" || platform == "/" {
		platform = fallbackPlatform
	}

	return strings.Join([]string{
		locale,
		strconv.Itoa(offsetMinutes),
		strconv.Itoa(colorDepth),
		strconv.Itoa(cpuCount),
		platform,
	}, fingerprintSeparator)
}

// detectLocale follows POSIX precedence: LC_ALL, LC_MESSAGES, LANG.
// The encoding and modifier suffixes are dropped ("en_US.UTF-8" -> "en_US").
func detectLocale(getenv func(string) string) string {
	for _, key := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		value := getenv(key)
		if value == "" {
			continue
		}
		if i := strings.IndexAny(value, ".@"); i >= 0 {
			value = value[:i]
		}
		if value == "" || value == "C" || value == "POSIX" {
			return fallbackLocale
		}
		return value
	}
	return fallbackLocale
}

// standardOffsetMinutes returns the zone's non-daylight UTC offset for the year
// of now, so the fingerprint does not change across DST transitions.
func standardOffsetMinutes(now time.Time, loc *time.Location) int {
	if loc == nil {
		return 0
	}
	_, jan := time.Date(now.Year(), time.January, 1, 12, 0, 0, 0, loc).Zone()
	_, jul := time.Date(now.Year(), time.July, 1, 12, 0, 0, 0, loc).Zone()
	offset := jan
	if jul < offset {
		offset = jul
	}
	return offset / 60
}

// String implements fmt.Stringer without exposing the raw fingerprint.
func (s *SystemDeviceInfo) String() string {
	return fmt.Sprintf("SystemDeviceInfo(%d attributes)", strings.Count(s.fingerprint, fingerprintSeparator)+1)
}
