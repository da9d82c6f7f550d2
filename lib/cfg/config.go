package cfg

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

type ConfigKey string

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

var (
	configLocation = "/etc/app/"

	ErrKeyNotFound = errors.New("config key not found")
)

func SetConfigLocation(folder string) error {
	fi, err := os.Stat(folder)
	if os.IsNotExist(err) {
		return fmt.Errorf("folder '%s' does not exists", folder)
	}
	if err != nil {
		return fmt.Errorf("error reading folder '%s': %w", folder, err)
	}
	if !fi.IsDir() {
		return fmt.Errorf("config location '%s' must be a folder", folder)
	}
	configLocation = folder
	if !strings.HasSuffix(configLocation, "/") {
		configLocation += "/"
	}
	return nil
}

func Bytes(key ConfigKey) (value []byte, err error) {
	file := configLocation + string(key)
	value, err = os.ReadFile(file)
	if os.IsNotExist(err) {
		err = fmt.Errorf("error reading config file '%s': %w", file, ErrKeyNotFound)
		return
	}
	if err != nil {
		err = fmt.Errorf("error reading config file '%s': %w", file, err)
	}
	return
}

// String returns the value of key with surrounding whitespace removed,
// so files ending with a newline read as expected.
func String(key ConfigKey) (value string, err error) {
	raw, err := Bytes(key)
	if err != nil {
		return "", err
	}
	value = strings.TrimSpace(string(raw))
	return
}

// DetectFormat picks the decoder for a key based on its extension.
// Keys without a known extension are treated as JSON.
func DetectFormat(key ConfigKey) Format {
	switch strings.ToLower(filepath.Ext(string(key))) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".toml":
		return FormatTOML
	default:
		return FormatJSON
	}
}

func Decode[T any](format Format, raw []byte) (res T, err error) {
	switch format {
	case FormatJSON:
		err = json.Unmarshal(raw, &res)
	case FormatYAML:
		err = yaml.Unmarshal(raw, &res)
	case FormatTOML:
		err = toml.Unmarshal(raw, &res)
	default:
		err = fmt.Errorf("unsupported config format: %s", format)
	}
	return
}

func Object[T any](key ConfigKey) (res T, err error) {
	bytes, err := Bytes(key)
	if err != nil {
		return
	}
	res, err = Decode[T](DetectFormat(key), bytes)
	if err != nil {
		err = fmt.Errorf("error decoding config '%s': %w", key, err)
		return
	}
	return
}

// ObjectAny looks the key up as is and then with each supported extension,
// decoding the first file found.
func ObjectAny[T any](key ConfigKey) (res T, err error) {
	for _, ext := range []string{"", ".json", ".yaml", ".yml", ".toml"} {
		res, err = Object[T](key + ConfigKey(ext))
		if errors.Is(err, ErrKeyNotFound) {
			continue
		}
		return
	}
	return
}
