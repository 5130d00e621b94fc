package main

import (
	"github.com/spf13/cobra"
)

// rootOptions は全コマンド共通のフラグです。
type rootOptions struct {
	EnvFile string
}

// newRootCommand はCLIのルートコマンドを作成します。
func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "todo-api",
		Short:         "Todo list backend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&opts.EnvFile, "env-file", ".env", "path to a .env file (ignored when missing)")

	cmd.AddCommand(newServeCommand(opts))
	cmd.AddCommand(newVersionCommand())
	return cmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Println(version)
		},
	}
}
