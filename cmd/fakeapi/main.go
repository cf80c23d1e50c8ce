package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/jobintake/internal/fakeapi"
	"github.com/dmitrijs2005/jobintake/internal/logging"
	"github.com/gin-gonic/gin"
)

func main() {

	addr := flag.String("a", ":8080", "listen address")
	token := flag.String("token", "", "bearer token required on submissions (empty disables the check)")
	latency := flag.Duration("latency", 0, "artificial delay added to every request")
	maxResume := flag.Int64("max-resume", fakeapi.DefaultMaxResumeBytes, "maximum resume size in bytes")
	flag.Parse()

	gin.SetMode(gin.ReleaseMode)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	logger := logging.NewJSONLogger(os.Stdout)
	srv := fakeapi.NewServer(*addr, fakeapi.NewStore(fakeapi.SampleJobs()...), logger, fakeapi.Options{
		Token:          *token,
		MaxResumeBytes: *maxResume,
		Latency:        *latency,
	})

	if err := srv.Run(ctx); err != nil {
		log.Printf("%v", err)
		os.Exit(1)
	}

}
