package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/muhammadolammi/interviewmate/internal/config"
	"github.com/muhammadolammi/interviewmate/internal/database"
	"github.com/muhammadolammi/interviewmate/internal/storage"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/streadway/amqp"
)

var conf *config.Configuration

var rootCmd = &cobra.Command{
	Use:   "interviewmate",
	Short: "Resume-driven technical interview assistant",
	Long: "InterviewMate analyzes a candidate resume, runs an intake questionnaire, asks " +
		"position-specific technical questions and scores the answers with Gemini.",
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		var err error
		conf, err = config.Load(config.DefaultFiles()...)
		if err != nil {
			return err
		}
		return conf.SetupLogger()
	},
}

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Consume interview commands from RabbitMQ",
	RunE:  runWorker,
}

func init() {
	rootCmd.AddCommand(workerCmd)
}

func runWorker(_ *cobra.Command, _ []string) error {
	if err := conf.ValidateWorker(); err != nil {
		return err
	}
	ctx := context.Background()

	db, err := sql.Open("postgres", conf.Database.URL)
	if err != nil {
		return errors.Wrap(err, "error opening db")
	}
	defer db.Close()

	r2, err := storage.NewR2(ctx, storage.R2Config{
		AccountID: conf.R2.AccountID,
		Bucket:    conf.R2.Bucket,
		AccessKey: conf.R2.AccessKey,
		SecretKey: conf.R2.SecretKey,
	})
	if err != nil {
		return err
	}

	gen, err := GetGenerator(ctx, conf)
	if err != nil {
		return err
	}

	conn, err := amqp.Dial(conf.RabbitMQ.URL)
	if err != nil {
		return errors.Wrap(err, "error connecting to RabbitMQ")
	}
	defer conn.Close()

	if err := declareUpdatesExchange(conn, conf.RabbitMQ.Exchange); err != nil {
		return err
	}

	workerConfig := WorkerConfig{
		DB:          database.New(db),
		Storage:     r2,
		Updates:     amqpPublisher{conn: conn, exchange: conf.RabbitMQ.Exchange},
		Interviewer: newInterviewer(gen, conf.Extract.Repair),
		RabbitConn:  conn,
		Queue:       conf.RabbitMQ.Queue,
	}

	log.WithField("workers", conf.RabbitMQ.Workers).Info("starting consumer pool")
	workerConfig.StartConsumerWorkerPool(conf.RabbitMQ.Workers)
	return nil
}

func declareUpdatesExchange(conn *amqp.Connection, exchange string) error {
	ch, err := conn.Channel()
	if err != nil {
		return errors.Wrap(err, "error opening rabbitmq channel")
	}
	defer ch.Close()

	err = ch.ExchangeDeclare(
		exchange, // name
		"topic",  // kind
		true,     // durable
		false,    // auto-delete
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
	return errors.Wrap(err, "failed to declare updates exchange")
}

func main() {
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
