/* SPDX-License-Identifier: MPL-2.0
 * Copyright 2025 Tejus Pratap <tejzpr@gmail.com>
 *
 * See CONTRIBUTORS.md for full contributor list.
 */

package credentials

import (
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/ini.v1"
)

// statConfigFile succeeds only for an existing regular file.
func statConfigFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%s is not a regular file: %w", path, fs.ErrNotExist)
	}
	return nil
}

// loadConfigFile reads the catapult section of an INI file and extracts the
// keys of family f. A missing section, key or value is a format error.
func loadConfigFile(f *family, path string) (triple, error) {
	formatError := func(err error) error {
		return &ConfigFormatError{
			ResolutionError: newError(f, fmt.Sprintf(helpConfigFormat, path), err),
			Path:            path,
		}
	}

	cfg, err := ini.Load(path)
	if err != nil {
		return triple{}, formatError(err)
	}

	section, err := cfg.GetSection(ConfigSection)
	if err != nil {
		return triple{}, formatError(err)
	}

	var values triple
	for i, key := range f.fileKeys {
		if !section.HasKey(key) {
			return triple{}, formatError(fmt.Errorf("key %q not found in section %q", key, ConfigSection))
		}
		values[i] = section.Key(key).String()
		if values[i] == "" {
			return triple{}, formatError(fmt.Errorf("key %q in section %q is empty", key, ConfigSection))
		}
	}

	return values, nil
}
