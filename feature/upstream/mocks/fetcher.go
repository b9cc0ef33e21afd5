package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// Fetcher is a mock implementation of upstream.Fetcher
type Fetcher struct {
	mock.Mock
}

func (m *Fetcher) Fetch(ctx context.Context, pkgbase, destDir string) ([]string, error) {
	args := m.Called(ctx, pkgbase, destDir)
	if files, ok := args.Get(0).([]string); ok {
		return files, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Fetcher) Maintainer(ctx context.Context, pkgbase string) (string, error) {
	args := m.Called(ctx, pkgbase)
	return args.String(0), args.Error(1)
}
