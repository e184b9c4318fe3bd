// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The a11-b10-restaurant-management-server Authors

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// parseEnv reads a [StructuredConfig] from the environment. Variable names
// join the envPrefix tags of the nested sections with the field's env tag,
// so StructuredConfig.Storage.DB.DSN is read from STORAGE_DB_DATABASE_URI.
// Unset variables leave their fields zero for the builder to merge over.
func parseEnv() (*StructuredConfig, error) {
	cfg, err := env.ParseAs[StructuredConfig]()
	if err != nil {
		return nil, fmt.Errorf("error getting env configs: %w", err)
	}

	return &cfg, nil
}
