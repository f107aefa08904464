package conf

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Conf holds the runtime configuration of the grading workbench server.
// Values come from an optional TOML file and can be overridden per-field
// through environment variables.
type Conf struct {
	ListenAddr       string   `toml:"listen_addr"`
	SaveDir          string   `toml:"save_dir"`
	AutosaveSeconds  int      `toml:"autosave_seconds"`
	ImageMaxWidth    int      `toml:"image_max_width"`
	AllowedOrigins   []string `toml:"allowed_origins"`
	ImageFetchSecond int      `toml:"image_fetch_timeout_seconds"`
}

func Default() Conf {
	return Conf{
		ListenAddr:       ":8080",
		SaveDir:          ".essay_grades",
		AutosaveSeconds:  30,
		ImageMaxWidth:    1200,
		AllowedOrigins:   []string{"http://localhost:3000"},
		ImageFetchSecond: 10,
	}
}

// Read loads configuration from the given TOML file path. A missing file
// is not an error; defaults are used. Environment variables GRADEBENCH_ADDR,
// GRADEBENCH_SAVE_DIR and GRADEBENCH_AUTOSAVE_SECONDS override file values.
func Read(path string) (Conf, error) {
	c := Default()

	content, err := os.ReadFile(path)
	if err == nil {
		if err := toml.Unmarshal(content, &c); err != nil {
			return c, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return c, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if addr := os.Getenv("GRADEBENCH_ADDR"); addr != "" {
		c.ListenAddr = addr
	}
	if dir := os.Getenv("GRADEBENCH_SAVE_DIR"); dir != "" {
		c.SaveDir = dir
	}
	if secs := os.Getenv("GRADEBENCH_AUTOSAVE_SECONDS"); secs != "" {
		parsed, err := strconv.Atoi(secs)
		if err != nil {
			return c, fmt.Errorf("invalid GRADEBENCH_AUTOSAVE_SECONDS %q: %w", secs, err)
		}
		c.AutosaveSeconds = parsed
	}

	if c.AutosaveSeconds <= 0 {
		c.AutosaveSeconds = Default().AutosaveSeconds
	}
	if c.ImageMaxWidth <= 0 {
		c.ImageMaxWidth = Default().ImageMaxWidth
	}

	return c, nil
}

func (c Conf) AutosaveInterval() time.Duration {
	return time.Duration(c.AutosaveSeconds) * time.Second
}

func (c Conf) ImageFetchTimeout() time.Duration {
	if c.ImageFetchSecond <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.ImageFetchSecond) * time.Second
}
