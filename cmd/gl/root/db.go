package root

import (
	"context"

	"gamifylife/internal/app"
)

func openApp(ctx context.Context, opts ...app.Option) (*app.App, func(), error) {
	a, err := app.Open(ctx, cfg, logger, opts...)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		_ = a.Close()
	}
	return a, cleanup, nil
}
