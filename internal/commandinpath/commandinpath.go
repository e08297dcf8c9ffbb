// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package commandinpath resolves an executable name against the PATH environment variable.
package commandinpath

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/afero"
)

// ErrNotFound is returned when no executable with the given name exists on PATH.
var ErrNotFound = errors.New("executable not found in PATH")

// FsFactory returns the filesystem searched by Find.
var FsFactory = func() afero.Fs {
	return afero.NewOsFs()
}

// Find returns the full path of command.
// A command containing a path separator is checked as given and PATH is not consulted.
func Find(command string) (string, error) {
	return FindIn(FsFactory(), os.Getenv("PATH"), command)
}

// FindIn searches the directories in pathList for an executable named command.
func FindIn(fs afero.Fs, pathList, command string) (string, error) {
	if command == "" {
		return "", fmt.Errorf("%w: empty command", ErrNotFound)
	}

	if strings.ContainsRune(command, filepath.Separator) || strings.ContainsRune(command, '/') {
		for _, candidate := range candidates(command) {
			if isExecutable(fs, candidate) {
				return candidate, nil
			}
		}

		return "", fmt.Errorf("%w: %s", ErrNotFound, command)
	}

	for _, dir := range filepath.SplitList(pathList) {
		if dir == "" {
			dir = "."
		}

		for _, candidate := range candidates(filepath.Join(dir, command)) {
			if isExecutable(fs, candidate) {
				return candidate, nil
			}
		}
	}

	return "", fmt.Errorf("%w: %s", ErrNotFound, command)
}

func candidates(path string) []string {
	if runtime.GOOS != "windows" || filepath.Ext(path) != "" {
		return []string{path}
	}

	return []string{path, path + ".exe"}
}

func isExecutable(fs afero.Fs, path string) bool {
	info, err := fs.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}

	if runtime.GOOS == "windows" {
		return true
	}

	return info.Mode()&0o111 != 0
}
