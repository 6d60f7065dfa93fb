/*
Copyright © 2019 the InMAP authors.
This file is part of resgrid.

resgrid is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

resgrid is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with resgrid.  If not, see <http://www.gnu.org/licenses/>.
*/

package resgridutil

import (
	"fmt"

	"github.com/lnashier/viper"
	"github.com/spatialmodel/resgrid"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Cfg holds configuration information.
var Cfg *viper.Viper

var options []struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

func init() {
	// Options are the configuration options available to resgrid.
	options = []struct {
		name, usage, shorthand string
		defaultVal             interface{}
		flagsets               []*pflag.FlagSet
	}{
		{
			name: "config",
			usage: `
              config specifies the configuration file location.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "InputFile",
			usage: `
              InputFile is the path to the NetCDF grid file holding the
              ACTNUM mask, the property to be filled, and the cell
              thickness or layer interface depths. It can include
              environment variables.`,
			shorthand:  "i",
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{fillCmd.Flags()},
		},
		{
			name: "OutputFile",
			usage: `
              OutputFile is the path where the NetCDF grid file with the
              filled property should be written. It can include
              environment variables.`,
			shorthand:  "o",
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{fillCmd.Flags()},
		},
		{
			name: "Property",
			usage: `
              Property is the name of the grid property to be filled.`,
			shorthand:  "p",
			defaultVal: "PORO",
			flagsets:   []*pflag.FlagSet{fillCmd.Flags()},
		},
		{
			name: "DzVariable",
			usage: `
              DzVariable is the name of the variable in InputFile holding
              the thickness of each cell. If the input file doesn't contain
              this variable, thicknesses are calculated from the layer
              interface depths in ZInterfaceVariable.`,
			defaultVal: "DZ",
			flagsets:   []*pflag.FlagSet{fillCmd.Flags()},
		},
		{
			name: "ZInterfaceVariable",
			usage: `
              ZInterfaceVariable is the name of the variable in InputFile
              holding the depths of the layer interfaces of each column, with
              dimensions (zInterface, y, x).`,
			defaultVal: "ZINTERFACE",
			flagsets:   []*pflag.FlagSet{fillCmd.Flags()},
		},
		{
			name: "Background",
			usage: `
              Background is the property value marking cells to be filled.
              Use NaN to fill missing values.`,
			defaultVal: -999.0,
			flagsets:   []*pflag.FlagSet{fillCmd.Flags()},
		},
		{
			name: "MaxDz",
			usage: `
              MaxDz is the thickness threshold. Background cells with a
              thickness less than or equal to MaxDz are filled from the
              nearest active cell in the same column that is thicker than MaxDz.`,
			defaultVal: 0.0,
			flagsets:   []*pflag.FlagSet{fillCmd.Flags()},
		},
		{
			name: "IgnoreActnum",
			usage: `
              IgnoreActnum specifies whether inactive background cells
              should be filled as well as active ones.`,
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{fillCmd.Flags()},
		},
		{
			name: "ReportFile",
			usage: `
              ReportFile is the path where a TOML summary of the run should be
              written. If it is empty, no report is written.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{fillCmd.Flags()},
		},
		{
			name: "Verbosity",
			usage: `
              Verbosity sets the amount of logging: 0 logs only warnings and
              errors, 1 and 2 log progress, and 3 logs every filled cell.`,
			shorthand:  "v",
			defaultVal: 1,
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
	}

	Cfg = viper.New()

	// Set the prefix for configuration environment variables.
	Cfg.SetEnvPrefix("RESGRID")
	Cfg.AutomaticEnv()

	for _, option := range options {
		for i, set := range option.flagsets {
			if i != 0 { // We don't want to create the same flag twice.
				set.AddFlag(option.flagsets[0].Lookup(option.name))
				continue
			}
			switch option.defaultVal.(type) {
			case string:
				if option.shorthand == "" {
					set.String(option.name, option.defaultVal.(string), option.usage)
				} else {
					set.StringP(option.name, option.shorthand, option.defaultVal.(string), option.usage)
				}
			case bool:
				if option.shorthand == "" {
					set.Bool(option.name, option.defaultVal.(bool), option.usage)
				} else {
					set.BoolP(option.name, option.shorthand, option.defaultVal.(bool), option.usage)
				}
			case int:
				if option.shorthand == "" {
					set.Int(option.name, option.defaultVal.(int), option.usage)
				} else {
					set.IntP(option.name, option.shorthand, option.defaultVal.(int), option.usage)
				}
			case float64:
				if option.shorthand == "" {
					set.Float64(option.name, option.defaultVal.(float64), option.usage)
				} else {
					set.Float64P(option.name, option.shorthand, option.defaultVal.(float64), option.usage)
				}
			default:
				panic("invalid argument type")
			}
			Cfg.BindPFlag(option.name, set.Lookup(option.name))
		}
	}

	// Link the commands together.
	Root.AddCommand(versionCmd)
	Root.AddCommand(fillCmd)
	Root.AddCommand(guiCmd)
}

// setConfig finds and reads in the configuration file, if there is one.
func setConfig() error {
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		Cfg.SetConfigFile(cfgpath)
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("resgrid: problem reading configuration file: %v", err)
		}
	}
	return nil
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "resgrid",
	Short: "A toolkit for repairing reservoir grid properties.",
	Long: `resgrid repairs properties of structured 3D reservoir grids.
Use the subcommands specified below to access the functionality.

Refer to the subcommand documentation for configuration options and default settings.
Configuration can be changed by using a configuration file (and providing the
path to the file using the --config flag), by using command-line arguments,
or by setting environment variables in the format 'RESGRID_var' where 'var' is the
name of the variable to be set.
Refer to https://github.com/spf13/viper for additional configuration information.`,
	DisableAutoGenTag: true,
	SilenceUsage:      true,
	PersistentPreRunE: func(*cobra.Command, []string) error { return setConfig() },
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this version of resgrid.",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("resgrid v%s\n", resgrid.Version)
	},
	DisableAutoGenTag: true,
}

// fillCmd is a command that fills background values in a grid property.
var fillCmd = &cobra.Command{
	Use:   "fill",
	Short: "Fill background values in thin cells.",
	Long: `fill replaces background values of a grid property in cells that are
thinner than MaxDz with the value of the nearest active cell in the same
vertical column that is thicker than MaxDz. Cells above are preferred
over cells below at the same distance. Cells without such a neighbor are
left unchanged. The result is written to OutputFile together with the other
variables in InputFile.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		verbosity, err := intOption("Verbosity")
		if err != nil {
			return err
		}
		log := newLogger(cmd.OutOrStderr(), verbosity)

		inputFile, err := checkInputFile(Cfg.GetString("InputFile"))
		if err != nil {
			return err
		}
		outputFile, err := checkOutputFile(Cfg.GetString("OutputFile"))
		if err != nil {
			return err
		}
		background, err := floatOption("Background")
		if err != nil {
			return err
		}
		maxDz, err := floatOption("MaxDz")
		if err != nil {
			return err
		}
		ignoreActnum, err := boolOption("IgnoreActnum")
		if err != nil {
			return err
		}
		reportFile, err := checkReportFile(Cfg.GetString("ReportFile"))
		if err != nil {
			return err
		}

		_, err = Fill(
			log,
			inputFile,
			outputFile,
			Cfg.GetString("Property"),
			Cfg.GetString("DzVariable"),
			Cfg.GetString("ZInterfaceVariable"),
			background,
			maxDz,
			ignoreActnum,
			verbosity,
			reportFile,
		)
		return err
	},
	DisableAutoGenTag: true,
}
