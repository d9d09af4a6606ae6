package pipeline

import (
	"os"

	"github.com/BurntSushi/toml"

	errs "github.com/matzehuels/chromabench/pkg/errors"
)

// LoadConfig decodes a TOML config file into Options. Keys absent from the
// file keep their zero value, so defaults still apply afterwards:
//
//	input_dir = "./input_files"
//	trials = 5000
//	formats = ["csv", "json"]
//
//	[cache]
//	backend = "file"
func LoadConfig(path string) (Options, error) {
	var opts Options
	data, err := os.ReadFile(path)
	if err != nil {
		return opts, errs.Wrap(errs.ErrCodeFileNotFound, err, "read config %s", path)
	}
	md, err := toml.Decode(string(data), &opts)
	if err != nil {
		return opts, errs.Wrap(errs.ErrCodeInvalidConfig, err, "decode config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return opts, errs.New(errs.ErrCodeInvalidConfig, "unknown config key %q in %s", undecoded[0].String(), path)
	}
	return opts, nil
}
