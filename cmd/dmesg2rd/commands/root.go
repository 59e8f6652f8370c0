package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/laanwj/freedreno/internal/config"
	"github.com/laanwj/freedreno/internal/logging"
	"github.com/laanwj/freedreno/internal/rd"
)

var (
	cfgFile string
	verbose bool
	quiet   bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "dmesg2rd <dmesg.log> <out.rd>",
	Short: "Convert dmesg GPU command buffer dumps to an rd trace file",
	Long: `dmesg2rd reconstructs the GPU command buffers that the mlog kernel
patches dump into the kernel log and writes them out as a freedreno .rd
trace file for cffdump and other replay tools.

The input is an ordinary dmesg capture; unrelated kernel messages are
ignored. Conversion aborts if the capture is truncated or corrupted.`,
	Version:      "0.1.0",
	Args:         cobra.ExactArgs(2),
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		level := cfg.Logging.Level
		if verbose {
			level = "debug"
		}
		if quiet {
			level = "error"
		}
		return logging.Init(level, cfg.Logging.File, cfg.Logging.Console)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConvert(args[0], args[1])
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.dmesg2rd/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "quiet mode")
	rootCmd.Flags().Uint32("gpu-id", rd.DefaultGPUID, "device identifier written to the output")

	// Bind flags to viper
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
	viper.BindPFlag("gpu.id", rootCmd.Flags().Lookup("gpu-id"))
}

// initConfig reads in config file and ENV variables
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			os.Exit(1)
		}

		viper.AddConfigPath(home + "/.dmesg2rd")
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// Environment variables
	viper.SetEnvPrefix("DMESG2RD")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		if verbose {
			fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		}
	}
}
