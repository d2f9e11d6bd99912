package config

import (
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/pkg/errors"

	_ "github.com/joho/godotenv/autoload"
)

type LoadOptions struct {
	Validator *validator.Validate
	// ErrorUnused fails loading when the file has keys the config does not.
	ErrorUnused bool
}

// Load reads the JSON file at filePath into config. Values of the form
// ENV[NAME] are replaced by the environment variable NAME; a .env file in the
// working directory is loaded first.
func Load(filePath string, config any) error {
	return LoadWithOptions(filePath, config, LoadOptions{})
}

func LoadWithOptions(configFilePath string, config any, opts LoadOptions) error {
	configFile, err := os.Open(configFilePath)
	if err != nil {
		return errors.Wrap(err, "open config")
	}
	defer configFile.Close()

	return Decode(configFile, config, opts)
}

// Decode reads JSON from r into config the same way LoadWithOptions does.
func Decode(r io.Reader, config any, opts LoadOptions) error {
	configBytes, err := io.ReadAll(r)
	if err != nil {
		return errors.Wrap(err, "read config")
	}

	configMap := make(map[string]any)
	if err := json.Unmarshal(configBytes, &configMap); err != nil {
		return errors.Wrap(err, "parse config")
	}

	if newConfigMap, err := substituteEnvVars(configMap); err != nil {
		return err
	} else {
		configMap = newConfigMap.(map[string]any)
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           config,
		ErrorUnused:      opts.ErrorUnused,
		WeaklyTypedInput: true,
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
	})
	if err != nil {
		return errors.Wrap(err, "create config decoder")
	}
	if err := decoder.Decode(configMap); err != nil {
		return errors.Wrap(err, "decode config")
	}

	if opts.Validator != nil {
		if err := opts.Validator.Struct(config); err != nil {
			return errors.Wrap(err, "validate config")
		}
	}

	return nil
}

func substituteEnvVars(value any) (any, error) {
	switch v := value.(type) {
	case string:
		if strings.HasPrefix(v, "ENV[") && strings.HasSuffix(v, "]") {
			envVar := v[4 : len(v)-1]
			if value, ok := os.LookupEnv(envVar); ok {
				return value, nil
			} else {
				return nil, errors.Errorf("environment variable %s not found", envVar)
			}
		}
	case map[string]any:
		for key, value := range v {
			if newValue, err := substituteEnvVars(value); err != nil {
				return nil, err
			} else {
				v[key] = newValue
			}
		}
	case []any:
		for idx, value := range v {
			if newValue, err := substituteEnvVars(value); err != nil {
				return nil, err
			} else {
				v[idx] = newValue
			}
		}
	}

	return value, nil
}
