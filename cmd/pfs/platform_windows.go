//go:build windows

package main

import (
	"github.com/clayne/physfs/pkg/platform"
	"github.com/clayne/physfs/pkg/winapi"
)

func newHostPlatform() (platform.Platform, error) {
	return winapi.New()
}
