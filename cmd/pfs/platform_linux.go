//go:build linux

package main

import (
	"github.com/clayne/physfs/pkg/platform"
	"github.com/clayne/physfs/pkg/posix"
)

func newHostPlatform() (platform.Platform, error) {
	return posix.New()
}
