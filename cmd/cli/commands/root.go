package commands

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "engler-cli",
	Short:         "Management cli",
	Long:          `Служебные команды сайта: проверка почты и заведение аккаунтов.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func GetRootCmd() *cobra.Command {
	return rootCmd
}
