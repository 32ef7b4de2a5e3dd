package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"okinoko-blade_arena/internal/httpapi"
	"okinoko-blade_arena/sdk"
)

func newTokenCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "token <address>",
		Short: "Sign a bearer token for an address with the configured secret",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tokens, err := httpapi.NewTokens(cmd.Context(), &opts.config.Auth)
			if err != nil {
				return err
			}
			token, err := tokens.Issue(sdk.Address(args[0]))
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
			return err
		},
	}
}

func newPlayerCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "player",
		Short: "Register and inspect players",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "register",
		Short: "Register the token's address",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := opts.client(cmd)
			if err != nil {
				return err
			}
			p, err := c.Register(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd, p)
		},
	}, &cobra.Command{
		Use:   "get <address>",
		Short: "Show a player's attributes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.client(cmd)
			if err != nil {
				return err
			}
			p, err := c.GetPlayer(cmd.Context(), sdk.Address(args[0]))
			if err != nil {
				return err
			}
			return printJSON(cmd, p)
		},
	}, &cobra.Command{
		Use:   "list",
		Short: "List registered addresses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := opts.client(cmd)
			if err != nil {
				return err
			}
			players, err := c.ListPlayers(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd, players)
		},
	})
	return cmd
}

func newEquipCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "equip",
		Short: "Forge, melt and inspect blades",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "forge <address> <class>",
		Short: "Equip a blade (longsword, sabre, claymore or 1-3)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			class, err := parseClass(cmd, args[1])
			if err != nil {
				return err
			}
			c, err := opts.client(cmd)
			if err != nil {
				return err
			}
			p, err := c.Equip(cmd.Context(), sdk.Address(args[0]), class)
			if err != nil {
				return err
			}
			return printJSON(cmd, p)
		},
	}, &cobra.Command{
		Use:   "melt <address>",
		Short: "Unequip the current blade",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.client(cmd)
			if err != nil {
				return err
			}
			p, err := c.Unequip(cmd.Context(), sdk.Address(args[0]))
			if err != nil {
				return err
			}
			return printJSON(cmd, p)
		},
	}, &cobra.Command{
		Use:   "balance <address> <class>",
		Short: "Show how many blades of a class an address holds",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			class, err := parseClass(cmd, args[1])
			if err != nil {
				return err
			}
			c, err := opts.client(cmd)
			if err != nil {
				return err
			}
			n, err := c.BalanceOf(cmd.Context(), sdk.Address(args[0]), class)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), n)
			return err
		},
	}, &cobra.Command{
		Use:   "metadata <class>",
		Short: "Show the metadata of a blade class",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			class, err := parseClass(cmd, args[0])
			if err != nil {
				return err
			}
			c, err := opts.client(cmd)
			if err != nil {
				return err
			}
			meta, err := c.EquipmentMetadata(cmd.Context(), class)
			if err != nil {
				return err
			}
			return printJSON(cmd, meta)
		},
	})
	return cmd
}

func newBattleCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "battle",
		Short: "Create, join and play battles",
	}

	var auto bool
	create := &cobra.Command{
		Use:   "create <name>",
		Short: "Open a battle, or start one against the bot with --auto",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.client(cmd)
			if err != nil {
				return err
			}
			b, err := c.CreateBattle(cmd.Context(), args[0], auto)
			if err != nil {
				return err
			}
			return printJSON(cmd, b)
		},
	}
	create.Flags().BoolVar(&auto, "auto", false, "seat the bot at once")

	cmd.AddCommand(create, &cobra.Command{
		Use:   "join <name>",
		Short: "Take the second seat of a pending battle",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.client(cmd)
			if err != nil {
				return err
			}
			b, err := c.JoinBattle(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd, b)
		},
	}, &cobra.Command{
		Use:   "bot <name>",
		Short: "Seat the bot in your pending battle",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.client(cmd)
			if err != nil {
				return err
			}
			b, err := c.ChallengeBot(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd, b)
		},
	}, &cobra.Command{
		Use:   "move <name> <attack|defend>",
		Short: "Submit this round's move",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			move, err := parseMove(cmd, args[1])
			if err != nil {
				return err
			}
			c, err := opts.client(cmd)
			if err != nil {
				return err
			}
			b, err := c.SubmitMove(cmd.Context(), args[0], move)
			if err != nil {
				return err
			}
			return printJSON(cmd, b)
		},
	}, &cobra.Command{
		Use:   "get <name>",
		Short: "Show a battle",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.client(cmd)
			if err != nil {
				return err
			}
			b, err := c.GetBattle(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd, b)
		},
	}, &cobra.Command{
		Use:   "list",
		Short: "List battle names",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := opts.client(cmd)
			if err != nil {
				return err
			}
			names, err := c.ListBattles(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd, names)
		},
	})
	return cmd
}
