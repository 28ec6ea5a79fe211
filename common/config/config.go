package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/sunthewhat/certificate-automation/common/util"
	"github.com/sunthewhat/certificate-automation/type/shared"
	"gopkg.in/yaml.v3"
)

const defaultRequestTimeout = 60

// LoadConfig reads and validates the YAML config at path.
func LoadConfig(path string) (*shared.Config, error) {
	yml, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	cfg, err := Parse(yml)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", path, err)
	}
	return cfg, nil
}

func Parse(yml []byte) (*shared.Config, error) {
	cfg := new(shared.Config)

	if err := yaml.Unmarshal(yml, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal: %w", err)
	}

	if err := util.ValidateStruct(cfg); err != nil {
		if msgs := util.GetValidationErrors(err); len(msgs) > 0 {
			return nil, errors.New(msgs[0])
		}
		return nil, err
	}

	switch *cfg.Storage {
	case "drive":
		if cfg.Drive == nil {
			return nil, errors.New("storage is drive but the drive section is missing")
		}
	case "minio":
		if cfg.MinIO == nil {
			return nil, errors.New("storage is minio but the minio section is missing")
		}
	}

	if cfg.RequestTimeout == nil {
		timeout := defaultRequestTimeout
		cfg.RequestTimeout = &timeout
	}
	if cfg.Renderer == nil {
		cfg.Renderer = new(shared.RendererConfig)
	}

	return cfg, nil
}
