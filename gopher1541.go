// This file is part of Gopher1541.
//
// Gopher1541 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gopher1541 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gopher1541.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/gopher1541/gopher1541/curated"
	"github.com/gopher1541/gopher1541/environment"
	"github.com/gopher1541/gopher1541/hardware/preferences"
	"github.com/gopher1541/gopher1541/logger"
	"github.com/gopher1541/gopher1541/paths"
	"github.com/gopher1541/gopher1541/statsview"
	"github.com/gopher1541/gopher1541/version"
)

// logging is configured from the environment:
//
//	LOG_FORMAT		set to `json` for JSON logging
//	LOG_FORCE_COLORS	set to non-empty for forcing colorized log entries
//	LOG_LEVEL		`panic`, `fatal`, `error`, `warn`, `info`, `debug`, `trace`
func init() {
	log.SetOutput(os.Stderr)

	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else if os.Getenv("LOG_FORCE_COLORS") != "" {
		log.SetFormatter(&log.TextFormatter{
			ForceColors: true,
		})
	}

	level := os.Getenv("LOG_LEVEL")
	if level != "" {
		l, err := log.ParseLevel(level)
		if err != nil {
			log.Errorf("invalid log level: '%s'; valid levels are: panic, "+
				"fatal, error, warn, info, debug, trace", level)
		} else {
			log.SetLevel(l)
		}
	}
}

// logrusEcho passes entries from the central logger to logrus.
type logrusEcho struct{}

func (logrusEcho) Write(p []byte) (int, error) {
	log.Info(strings.TrimSpace(string(p)))
	return len(p), nil
}

// the preferences keys and the flags that set them
var bindings = []struct {
	key  string
	flag string
}{
	{"clock", "clock"},
	{"samplerate", "samplerate"},
	{"pilot", "pilot"},
	{"debug_stepper", "debug-stepper"},
	{"debug_bytes", "debug-bytes"},
	{"debug_tape", "debug-tape"},
	{"quiet", "quiet"},
}

// program state shared by the commands
type program struct {
	out io.Writer
	env *environment.Environment

	config    string
	echo      bool
	statsview bool
}

func addPreferenceFlags(flags *pflag.FlagSet) {
	def := preferences.NewPreferences()

	flags.Int("clock", def.ClockHz, "clock speed of the computer in Hz (GOPHER1541_CLOCK)")
	flags.Int("samplerate", def.SampleRate, "sample rate of rendered audio (GOPHER1541_SAMPLERATE)")
	flags.Int("pilot", def.PilotLength, "number of pulses in the pilot tone of an encoded tape (GOPHER1541_PILOT)")
	flags.Bool("debug-stepper", def.DebugStepper, "log movement of the drive head (GOPHER1541_DEBUG_STEPPER)")
	flags.Bool("debug-bytes", def.DebugBytes, "log every byte read by the drive (GOPHER1541_DEBUG_BYTES)")
	flags.Bool("debug-tape", def.DebugTape, "log tape encoding and decoding (GOPHER1541_DEBUG_TAPE)")
	flags.Bool("quiet", def.Quiet, "suppress logging (GOPHER1541_QUIET)")
}

// loadPreferences merges the configuration file, the environment and the
// command line flags, in increasing order of priority.
func (p *program) loadPreferences(flags *pflag.FlagSet) error {
	v := viper.New()

	if p.config != "" {
		v.SetConfigFile(p.config)
	} else {
		v.SetConfigName("gopher1541")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(paths.ResourcePath())
	}

	v.SetEnvPrefix("GOPHER1541")
	v.AutomaticEnv()

	for _, b := range bindings {
		if err := v.BindPFlag(b.key, flags.Lookup(b.flag)); err != nil {
			return err
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return curated.Errorf("configuration: %v", err)
		}
	} else {
		log.Debugf("configuration read from %s", v.ConfigFileUsed())
	}

	prefs := preferences.NewPreferences()
	if err := v.Unmarshal(prefs); err != nil {
		return curated.Errorf("configuration: %v", err)
	}
	if err := prefs.Validate(); err != nil {
		return curated.Errorf("configuration: %v", err)
	}

	p.env = environment.NewEnvironment(environment.MainEmulation, prefs)

	return nil
}

func newRootCommand(out io.Writer) *cobra.Command {
	p := &program{out: out}

	root := &cobra.Command{
		Use:           "gopher1541",
		Short:         "disk drive and datasette emulation utilities",
		Version:       version.String(),
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := p.loadPreferences(cmd.Root().PersistentFlags()); err != nil {
				return err
			}
			if p.echo {
				logger.SetEcho(logrusEcho{})
			} else {
				logger.SetEcho(nil)
			}
			if p.statsview {
				statsview.Launch(p.out)
			}
			return nil
		},
	}
	root.SetOut(out)

	flags := root.PersistentFlags()
	flags.StringVar(&p.config, "config", "", "configuration file")
	flags.BoolVar(&p.echo, "log", false, "echo the emulation log to the console")
	flags.BoolVar(&p.statsview, "statsview", false, "launch the runtime statistics server")
	addPreferenceFlags(flags)

	root.AddCommand(
		p.infoCommand(),
		p.tapCommand(),
		p.wavCommand(),
		p.importCommand(),
		p.readCommand(),
		p.memvizCommand(),
		p.memmapCommand(),
	)

	return root
}

func main() {
	err := newRootCommand(os.Stdout).Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "* %v\n", err)
		os.Exit(10)
	}
}
