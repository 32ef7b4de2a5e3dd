package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"okinoko-blade_arena/client"
	"okinoko-blade_arena/contract"
	"okinoko-blade_arena/internal/conf"
	"okinoko-blade_arena/internal/log"
)

type rootOptions struct {
	configFile string
	url        string
	token      string

	config *conf.ArenaConfig
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:          "arena",
		Short:        "Blade arena: turn-based duels over a key-value ledger",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			config, err := conf.Load(cmd.Context(), opts.configFile)
			if err != nil {
				return err
			}
			if opts.url != "" {
				config.Client.URL = &opts.url
			}
			if opts.token != "" {
				config.Client.Token = &opts.token
			}
			log.InitConfig(&config.Log)
			opts.config = config
			return nil
		},
	}
	cmd.PersistentFlags().StringVarP(&opts.configFile, "config", "c", "", "YAML config file")
	cmd.PersistentFlags().StringVar(&opts.url, "url", "", "API server URL (client commands)")
	cmd.PersistentFlags().StringVar(&opts.token, "token", "", "bearer token (client commands)")

	cmd.AddCommand(
		newServeCommand(opts),
		newTokenCommand(opts),
		newPlayerCommand(opts),
		newEquipCommand(opts),
		newBattleCommand(opts),
	)
	return cmd
}

func (opts *rootOptions) client(cmd *cobra.Command) (*client.Client, error) {
	return client.New(cmd.Context(), &opts.config.Client)
}

func printJSON(cmd *cobra.Command, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(b))
	return err
}

var classNames = map[string]contract.EquipmentClass{
	"longsword": contract.Longsword,
	"sabre":     contract.Sabre,
	"claymore":  contract.Claymore,
}

// parseClass accepts a class number or name.
func parseClass(cmd *cobra.Command, s string) (contract.EquipmentClass, error) {
	if class, ok := classNames[strings.ToLower(s)]; ok {
		return class, nil
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return contract.NoEquipment, fmt.Errorf("unknown equipment class %q", s)
	}
	return contract.ParseEquipmentClass(cmd.Context(), n)
}

// parseMove accepts "attack", "defend" or the choice number.
func parseMove(cmd *cobra.Command, s string) (contract.Move, error) {
	switch strings.ToLower(s) {
	case "attack":
		return contract.Attack, nil
	case "defend":
		return contract.Defend, nil
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return contract.NoMove, fmt.Errorf("unknown move %q", s)
	}
	return contract.ParseMove(cmd.Context(), n)
}
