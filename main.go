package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/apex/log"
	clihandler "github.com/apex/log/handlers/cli"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"gptdump/internal/gpt"
)

var appversion = "0.1.0"

// exitNoPermission matches the exit status used when a device cannot be read without privileges
const exitNoPermission = 13

var errMissingDevice = errors.New("missing DEVICE argument")

func newRootCmd() *cobra.Command {
	var cfgFile string
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "gptdump [flags] DEVICE",
		Short: "Dump the GUID Partition Table of a disk or disk image",
		Long: `Dump the GUID Partition Table of a disk or disk image.

Prints the primary header, the secondary header, the primary entries and
the secondary entries. Compressed images (.gz .zlib .bz2 .snappy .s2 .zst
.zip) are decompressed to a temporary file first.`,
		Version: appversion,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				_ = cmd.Usage()
				return errMissingDevice
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(v, cfgFile)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, loadConfig(v), args[0])
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/gptdump/config.yaml)")
	flags.Bool("verbose", false, "Enable verbose print")
	flags.Bool("symbol", false, "Print symbol name if possible")
	flags.Bool("noalt", false, "Do not dump secondary header and entries")
	flags.Bool("mbr", false, "Dump the boot record in LBA 0 first")
	flags.Bool("probe", false, "Detect the filesystem of each partition")
	flags.Bool("color", false, "Colorize section titles")
	flags.Bool("progress", true, "Show decompression progress on a terminal")
	for _, name := range []string{"verbose", "symbol", "noalt", "mbr", "probe", "color", "progress"} {
		_ = v.BindPFlag(name, flags.Lookup(name))
	}

	cmd.SetVersionTemplate("{{.Version}}\n")
	cmd.CompletionOptions.DisableDefaultCmd = true
	return cmd
}

func run(cmd *cobra.Command, cfg config, device string) error {
	if err := gpt.CheckHost(); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if cfg.Verbose {
		log.SetLevel(log.DebugLevel)
		fmt.Fprintln(out, appversion)
	}

	src, err := openSource(device, cfg.Progress)
	if err != nil {
		return err
	}
	defer src.Close()

	if cfg.Verbose {
		reportDevice(src.File)
	}

	fmt.Fprintf(out, "%s\n\n", device)

	return gpt.NewDumper(src, out, gpt.Options{
		Verbose: cfg.Verbose,
		Symbol:  cfg.Symbol,
		NoAlt:   cfg.NoAlt,
		MBR:     cfg.MBR,
		Probe:   cfg.Probe,
		Color:   cfg.Color,
	}).Dump()
}

func main() {
	log.SetHandler(clihandler.New(os.Stderr))

	if err := newRootCmd().Execute(); err != nil {
		if errors.Is(err, fs.ErrPermission) {
			log.Errorf("%v, try with elevated privileges", err)
			os.Exit(exitNoPermission)
		}
		log.Error(err.Error())
		os.Exit(1)
	}
}
