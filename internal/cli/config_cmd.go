package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/rileyhilliard/sysdash/internal/config"
	"github.com/rileyhilliard/sysdash/internal/errors"
)

// configSetCommand changes one key in the active config file. The edited file
// must still load; otherwise the old contents are put back.
func configSetCommand(key, value string, out io.Writer) error {
	path, err := config.Find(cfgFile)
	if err != nil {
		return err
	}
	if path == "" {
		return errors.New(errors.ErrConfig,
			"No config file to edit",
			"Run 'sysdash init' to create one, or pass --config")
	}

	before, err := os.ReadFile(path)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Couldn't read "+path, "Check file permissions")
	}

	if err := config.Set(path, key, value); err != nil {
		return err
	}
	if _, err := config.Load(path); err != nil {
		if rerr := os.WriteFile(path, before, 0644); rerr != nil {
			return errors.WrapWithCode(rerr, errors.ErrConfig,
				"Couldn't restore "+path+" after a rejected change", "")
		}
		return err
	}

	fmt.Fprintf(out, "Set %s = %s in %s\n", key, value, path)
	return nil
}

// configPathCommand prints which config file would be loaded.
func configPathCommand(out io.Writer) error {
	path, err := config.Find(cfgFile)
	if err != nil {
		return err
	}
	if path == "" {
		fmt.Fprintln(out, "No config file found; using defaults and SYSDASH_* environment.")
		return nil
	}
	fmt.Fprintln(out, path)
	return nil
}
