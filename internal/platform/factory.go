package platform

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/fieldmatch/pkg/adapters/ankiconnect"
	"github.com/aretw0/fieldmatch/pkg/adapters/vault"
	"github.com/aretw0/fieldmatch/pkg/core"
)

// New wires a core.Service to a collection adapter.
//
//	svc, err := fieldmatch.New("http://127.0.0.1:8765")
//	svc, err := fieldmatch.New("./notes", fieldmatch.WithAdapter("vault"))
//
// The target argument is adapter-specific: the AnkiConnect base URL, or the
// vault directory path.
func New(target string, opts ...Option) (*core.Service, error) {
	col, err := Open(target, opts...)
	if err != nil {
		return nil, err
	}
	return core.NewService(col), nil
}

// Open initializes a collection adapter without wrapping it in a service.
func Open(target string, opts ...Option) (core.Collection, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	logger := o.logger
	if logger == nil {
		logger = slog.Default()
	}

	col := o.collection
	if col == nil {
		switch o.adapter {
		case AdapterAnkiConnect:
			client := ankiconnect.NewClient(target, logger)
			if o.timeout > 0 {
				client = client.WithTimeout(o.timeout)
			}
			col = ankiconnect.NewCollection(client, logger)
		case AdapterVault:
			col = vault.NewCollection(vault.Config{
				Path:      target,
				Pattern:   o.pattern,
				MustExist: o.mustExist,
				Logger:    logger,
			})
		default:
			return nil, fmt.Errorf("unknown adapter: %s", o.adapter)
		}
	}

	if err := col.Initialize(context.Background()); err != nil {
		return nil, err
	}
	return col, nil
}
