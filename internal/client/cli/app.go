package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/dmitrijs2005/jobintake/internal/client/client"
	"github.com/dmitrijs2005/jobintake/internal/client/config"
	"github.com/dmitrijs2005/jobintake/internal/client/picker"
	"github.com/dmitrijs2005/jobintake/internal/client/services"
	"github.com/dmitrijs2005/jobintake/internal/filex"
	"github.com/dmitrijs2005/jobintake/internal/logging"
)

type App struct {
	config       *config.Config
	jobs         services.JobService
	applications services.ApplicationService
	session      services.SessionService
	picker       picker.Picker
	logger       logging.Logger
	db           *sql.DB
	reader       *bufio.Reader
	out          io.Writer
}

// NewApp opens the local database and wires the API client and services.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	dbPath, err := filex.EnsureParentDir(c.DBPath)
	if err != nil {
		return nil, fmt.Errorf("prepare database path: %w", err)
	}

	db, err := client.InitDatabase(ctx, dbPath)
	if err != nil {
		logger.Error(ctx, "error initializing database", "path", dbPath, "error", err)
		return nil, err
	}
	repos := client.NewRepositories(db)

	session := services.NewSessionService(repos.Metadata, c.AccessToken)

	apiClient := client.NewHTTPClient(c.APIBaseURL, &http.Client{},
		client.WithTokenSource(session.Token),
		client.WithSubmitTimeout(c.SubmitTimeout),
		client.WithLookupTimeout(c.LookupTimeout),
		client.WithLogger(logger.With("module", "api")),
	)

	var s3Picker picker.Picker
	if c.S3Enabled() {
		p, err := picker.NewS3Picker(ctx, picker.S3Config{
			Region:    c.S3Region,
			Endpoint:  c.S3Endpoint,
			AccessKey: c.S3AccessKey,
			SecretKey: c.S3SecretKey,
		})
		if err != nil {
			_ = db.Close()
			return nil, err
		}
		s3Picker = p
	}

	return &App{
		config:       c,
		jobs:         services.NewJobService(apiClient, logger),
		applications: services.NewApplicationService(apiClient, repos.Receipts, logger),
		session:      session,
		picker:       picker.NewRouter(picker.NewLocalPicker(), s3Picker),
		logger:       logger,
		db:           db,
		reader:       bufio.NewReader(os.Stdin),
		out:          os.Stdout,
	}, nil
}

func (a *App) Run(ctx context.Context) {
	defer a.Close()

	fmt.Fprintln(a.out, "Welcome to jobintake (type 'help' for commands)")
	runREPL(ctx, a, a.reader)
}

func (a *App) Close() {
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Warn(context.Background(), "closing database", "error", err)
		}
	}
}
