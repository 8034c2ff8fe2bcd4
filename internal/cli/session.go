package cli

import (
	"fmt"
	"log/slog"

	"github.com/roach88/paramedit/internal/config"
	"github.com/roach88/paramedit/internal/design"
	"github.com/roach88/paramedit/internal/mutator"
	"github.com/roach88/paramedit/internal/store"
)

// session is an open design document with its mutator.
type session struct {
	cfg     *config.Config
	logger  *slog.Logger
	store   *store.Store
	doc     *design.Document
	mutator *mutator.Mutator
}

func openSession(opts *RootOptions) (*session, error) {
	cfg, err := opts.config()
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "load configuration", err)
	}

	st, err := store.Open(cfg.Database)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, fmt.Sprintf("open database %s", cfg.Database), err)
	}

	logger := opts.Logger()
	doc := design.New(st, nil)
	return &session{
		cfg:    cfg,
		logger: logger,
		store:  st,
		doc:    doc,
		mutator: mutator.New(doc, doc,
			mutator.WithParser(doc.Parser()),
			mutator.WithLogger(logger),
		),
	}, nil
}

func (s *session) Close() error {
	return s.store.Close()
}

// openOrReport opens a session, reporting failures through f.
func openOrReport(opts *RootOptions, f *OutputFormatter) (*session, error) {
	s, err := openSession(opts)
	if err != nil {
		code := ErrCodeStore
		if opts.cfg == nil {
			code = ErrCodeConfig
		}
		if outErr := f.Error(code, err.Error(), nil); outErr != nil {
			return nil, outErr
		}
		return nil, err
	}
	return s, nil
}
