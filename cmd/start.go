// Copyright © 2019 Andrei Gubarev <agubarev@protonmail.com>

package cmd

import (
	"context"
	"log"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/agubarev/firmtown/internal/core"
	"github.com/agubarev/firmtown/internal/server"
	"github.com/agubarev/firmtown/pkg/database"
	"github.com/agubarev/firmtown/pkg/device"
	"github.com/agubarev/firmtown/pkg/util"
)

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the registry server.",
	Long:  ``,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		logger, err := util.DefaultLogger(viper.GetBool("debug"), viper.GetString("log_dir"))
		if err != nil {
			log.Fatal(err)
		}

		s, err := newStore(logger)
		if err != nil {
			log.Fatal(err)
		}

		dm, err := device.NewManager(s)
		if err != nil {
			log.Fatal(err)
		}

		if err := dm.SetLogger(logger); err != nil {
			log.Fatal(err)
		}

		c, err := core.New(dm)
		if err != nil {
			log.Fatal(err)
		}

		if err := c.SetLogger(logger); err != nil {
			log.Fatal(err)
		}

		if err := c.Init(ctx); err != nil {
			log.Fatal(err)
		}

		addr := viper.GetString("listen_addr")
		if addr == "" {
			addr = ":8080"
		}

		log.Fatal(server.Run(ctx, c, addr))
	},
}

// newStore initializes a device store according to the configured backend
func newStore(logger *zap.Logger) (device.Store, error) {
	switch backend := viper.GetString("store"); backend {
	case "mysql":
		return device.NewMySQLStore(database.MySQLConnection())
	case "postgres":
		return device.NewPostgreSQLStore(database.PostgreSQLConnection(logger))
	case "memory":
		return device.NewMemoryStore(), nil
	case "badger", "":
		db, err := database.BadgerConnection(viper.GetString("badger_dir"))
		if err != nil {
			return nil, err
		}

		return device.NewBadgerStore(db)
	default:
		return nil, errors.Errorf("unsupported store backend: %s", backend)
	}
}

func init() {
	rootCmd.AddCommand(startCmd)

	startCmd.Flags().String("listen", ":8080", "address to listen on")
	startCmd.Flags().String("store", "badger", "store backend (badger, mysql, postgres, memory)")

	if err := viper.BindPFlag("listen_addr", startCmd.Flags().Lookup("listen")); err != nil {
		log.Fatal(err)
	}

	if err := viper.BindPFlag("store", startCmd.Flags().Lookup("store")); err != nil {
		log.Fatal(err)
	}
}
