package main

import (
	"context"
	"log"
	"net/http"

	"voxnote/analyzer"
	"voxnote/api/router"
	"voxnote/config"
	"voxnote/db"
	_ "voxnote/docs" // generated by swag
	"voxnote/engine"
	"voxnote/eventbus"
	"voxnote/gateway"
	"voxnote/logger"
	"voxnote/processor"
	"voxnote/repositories"
)

// @title           voxnote API
// @version         1.0
// @description     Transcript-to-article processing service
// @BasePath        /api/v1
func main() {
	config.InitApp()
	cfg := config.GetConfig()
	logger.Init(cfg.Logging.Level)

	if err := db.Init(context.Background()); err != nil {
		log.Fatal("failed to initialize MongoDB:", err)
	}

	store := repositories.NewStore(db.Database())

	var opts []gateway.Option
	if cfg.Debug.LogModelCalls {
		logRepo := repositories.NewModelCallLogRepository(db.Database())
		opts = append(opts, gateway.WithObserver(gateway.NewMongoObserver(logRepo)))
	}
	client := gateway.NewClient(cfg.Processing.ActiveModel, opts...)

	var publisher eventbus.Publisher = eventbus.NopPublisher{}
	if cfg.Kafka.Brokers != "" {
		kp, err := eventbus.NewKafkaPublisher(cfg.Kafka.Brokers)
		if err != nil {
			log.Fatal("failed to initialize Kafka producer:", err)
		}
		defer kp.Close()
		publisher = kp
	}

	svc := processor.NewService(store, analyzer.New(client), engine.New(store), publisher)

	r := router.New(svc)
	if err := r.Run(cfg.Server.Addr); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}
