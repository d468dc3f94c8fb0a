package db

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/michael-freling/file-manager/internal/config"
	slogGorm "github.com/orandin/slog-gorm"
	"gorm.io/driver/sqlite" // Sqlite driver based on CGO
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	ErrRecordNotFound = gorm.ErrRecordNotFound
)

type Client struct {
	connection *gorm.DB
}

type clientOptions struct {
	gormLogger logger.Interface
}

type ClientOption func(*clientOptions)

func WithNopLogger() ClientOption {
	return func(c *clientOptions) {
		c.gormLogger = logger.Discard
	}
}

func WithGormLogger(l *slog.Logger) ClientOption {
	return func(c *clientOptions) {
		c.gormLogger = slogGorm.New(
			slogGorm.WithHandler(l.Handler()),
			slogGorm.WithTraceAll(), // trace all messages
		)
	}
}

type DSN string

func DSNFromFilePath(filePath string) DSN {
	return DSN(
		fmt.Sprintf("file:%s?cache=shared",
			filepath.Clean(filePath),
		),
	)
}

// DSNMemory returns a DSN of an in-memory database shared by connections with the same name
func DSNMemory(name string) DSN {
	return DSN(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
}

func (dsn DSN) String() string {
	return string(dsn)
}

// LoggerOptionFromConfig logs SQL queries only in development
func LoggerOptionFromConfig(conf config.Config, logger *slog.Logger) ClientOption {
	if conf.Environment == config.EnvironmentDevelopment {
		return WithGormLogger(logger)
	}
	return WithNopLogger()
}

func NewClient(dsn DSN, options ...ClientOption) (*Client, error) {
	opts := clientOptions{
		gormLogger: logger.Discard,
	}
	for _, option := range options {
		option(&opts)
	}

	connection, err := gorm.Open(sqlite.Open(dsn.String()), &gorm.Config{
		Logger: opts.gormLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("gorm.Open: %w", err)
	}

	return &Client{
		connection: connection,
	}, nil
}

func (client *Client) Close() error {
	sqlDB, err := client.connection.DB()
	if err != nil {
		return fmt.Errorf("connection.DB: %w", err)
	}
	return sqlDB.Close()
}

func (client *Client) Migrate() error {
	if err := client.connection.AutoMigrate(
		&File{},
		&User{},
		&Team{},
		&TeamMember{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return nil
}

// withContext returns a transaction in ctx if any
func (client *Client) withContext(ctx context.Context) *gorm.DB {
	if tx := transactionFromContext(ctx); tx != nil {
		return tx
	}
	return client.connection.WithContext(ctx)
}

// ORMClient is the base of the clients for each table
type ORMClient[Model any] struct {
	client *Client
}

// FindByValue returns the first record matching the non-zero fields of value, or ErrRecordNotFound
func FindByValue[Model any](ctx context.Context, client *Client, value Model) (Model, error) {
	var result Model
	err := client.withContext(ctx).Take(&result, value).Error
	return result, err
}

func GetAll[Model any](ctx context.Context, client *Client) ([]Model, error) {
	var values []Model
	err := client.withContext(ctx).Order("rowid").Find(&values).Error
	return values, err
}

func Create[Model any](ctx context.Context, client *Client, value *Model) error {
	return client.withContext(ctx).Create(value).Error
}

func BatchCreate[Model any](ctx context.Context, client *Client, values []Model) error {
	if len(values) == 0 {
		return nil
	}
	return client.withContext(ctx).Create(values).Error
}
