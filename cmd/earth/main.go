package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/ChrisAdan/earth/internal/cli"
)

var rootCmd = &cobra.Command{
	Use:   "earth",
	Short: "Synthetic dataset generator",
}

func main() {
	_ = godotenv.Load()
	cli.SetupCLI(rootCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
