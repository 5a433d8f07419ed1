package main

import (
	"os"
	"os/signal"
	"syscall"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/matst80/slask-table/pkg/messaging"
	"github.com/matst80/slask-table/pkg/tracking"
)

func newEventsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "events",
		Short: "Log the table view events published by serve",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			defer setupLogging(cfg)()

			conn, err := amqp.DialConfig(cfg.Rabbit.Url, amqp.Config{
				Properties: amqp.NewConnectionProperties(),
			})
			if err != nil {
				return err
			}
			defer conn.Close()
			ch, err := conn.Channel()
			if err != nil {
				return err
			}
			if err = messaging.DefineTopic(ch, cfg.Rabbit.Prefix, messaging.TableViewed); err != nil {
				return err
			}
			err = messaging.ListenToEvents(ch, cfg.Rabbit.Prefix, messaging.TableViewed, func(view tracking.TableView) error {
				fields := []zap.Field{
					zap.String("query", view.Query),
					zap.Int("page", view.Page),
					zap.Int("results", view.NumberOfResults),
				}
				if view.BaseEvent != nil {
					fields = append(fields, zap.String("session", view.SessionId))
				}
				zap.L().Info("table viewed", fields...)
				return nil
			})
			if err != nil {
				return err
			}
			zap.L().Info("listening for table views", zap.String("prefix", cfg.Rabbit.Prefix))

			stop := make(chan os.Signal, 1)
			signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
			<-stop
			return nil
		},
	}
}
