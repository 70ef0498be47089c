package service

import (
	"context"
	"io"
	"log/slog"

	"github.com/loganlanou/schemainspect/internal/inspector"
	"github.com/loganlanou/schemainspect/storage"
	"github.com/oklog/ulid/v2"
)

type Service struct {
	config *Config
	out    io.Writer
	open   inspector.Opener
}

// New returns a Service that opens databases through the storage package
// and writes its output to out.
func New(config *Config, out io.Writer) *Service {
	s := &Service{
		config: config,
		out:    out,
	}
	s.open = s.openStorage
	return s
}

func (s *Service) openStorage(ctx context.Context, path string) (inspector.Conn, error) {
	return storage.Open(ctx, storage.Options{
		Path:     path,
		Driver:   s.config.DB.Driver,
		ReadOnly: s.config.DB.ReadOnly,
	})
}

// Run performs one inspection of the configured table.
func (s *Service) Run(ctx context.Context) inspector.Result {
	runID := ulid.Make().String()
	logger := slog.With("run_id", runID)

	logger.Debug("inspection started",
		"database", s.config.DBPath,
		"table", s.config.TableName,
		"driver", s.config.DB.Driver,
		"read_only", s.config.DB.ReadOnly,
	)

	res := inspector.New(s.open, s.out, logger).Run(ctx, s.config.DBPath, s.config.TableName)

	logger.Debug("inspection finished", "state", res.State.String(), "columns", len(res.Columns))
	return res
}
