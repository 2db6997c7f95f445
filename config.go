package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/apex/log"
	"github.com/spf13/viper"
)

type config struct {
	Verbose  bool
	Symbol   bool
	NoAlt    bool
	MBR      bool
	Probe    bool
	Color    bool
	Progress bool
}

// initConfig reads in config file and ENV variables if set.
func initConfig(v *viper.Viper, cfgFile string) error {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "gptdump"))
		}
		v.SetConfigType("yaml")
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("gptdump")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}
	log.Debugf("using config file %s", v.ConfigFileUsed())
	return nil
}

func loadConfig(v *viper.Viper) config {
	return config{
		Verbose:  v.GetBool("verbose"),
		Symbol:   v.GetBool("symbol"),
		NoAlt:    v.GetBool("noalt"),
		MBR:      v.GetBool("mbr"),
		Probe:    v.GetBool("probe"),
		Color:    v.GetBool("color"),
		Progress: v.GetBool("progress"),
	}
}
