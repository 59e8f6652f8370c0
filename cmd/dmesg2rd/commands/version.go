package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("dmesg2rd v0.1.0")
		fmt.Println("Converts mlog dmesg captures to freedreno rd traces")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
