// Package main отправляет одну заявку на возмещение расходов из командной строки.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mmeshcher/reintegro-form/internal/attachment"
	"github.com/mmeshcher/reintegro-form/internal/config"
	"github.com/mmeshcher/reintegro-form/internal/form"
	"github.com/mmeshcher/reintegro-form/internal/logging"
	"github.com/mmeshcher/reintegro-form/internal/model"
	"github.com/mmeshcher/reintegro-form/internal/webhook"
)

func main() {
	fields := map[string]*string{
		model.FieldFirstName:         flag.String("nombre", "", "first name"),
		model.FieldLastName:          flag.String("apellido", "", "last name"),
		model.FieldNationalID:        flag.String("dni", "", "national id"),
		model.FieldReimbursementType: flag.String("tipo", "", "reimbursement type"),
		model.FieldComments:          flag.String("comentarios", "", "comments"),
	}
	filePath := flag.String("file", "", "path to the attachment")

	cfg, err := config.Parse()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(2)
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger initialization error: %v\n", err)
		os.Exit(2)
	}
	defer logger.Sync()

	c := form.NewController(cfg.FormOptions(), webhook.NewClient(cfg.WebhookOptions(), nil), logger)

	c.OnStatus(func(s model.Status) {
		fmt.Println(s.Message)
	})

	for name, v := range fields {
		c.UpdateField(name, *v)
	}

	if *filePath != "" {
		if !attachment.Accepted(*filePath) {
			fmt.Fprintf(os.Stderr, "unsupported file type, accepted: %v\n", attachment.AcceptedExtensions)
			os.Exit(1)
		}
		f, err := attachment.NewLocalFile(*filePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "attachment error: %v\n", err)
			os.Exit(1)
		}
		c.UpdateFile(f)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := c.Submit(ctx); err != nil {
		logger.Sync()
		os.Exit(1)
	}
}
