package upstream_test

import (
	"context"
	"errors"
	"testing"

	"recipe-manager/feature/upstream"
	"recipe-manager/feature/upstream/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// The HTTP client and the test double implement the same contract.
var (
	_ upstream.Fetcher = (*upstream.Client)(nil)
	_ upstream.Fetcher = (*mocks.Fetcher)(nil)
)

func TestFetchErrorUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := &upstream.FetchError{Package: "tinygo", Err: cause}

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "tinygo")
}

func TestMockFetcher(t *testing.T) {
	fetcher := new(mocks.Fetcher)
	fetcher.On("Fetch", mock.Anything, "tinygo", "/tmp/tinygo").
		Return([]string{"PKGBUILD"}, nil)
	fetcher.On("Maintainer", mock.Anything, "tinygo").Return("someone", nil)

	files, err := fetcher.Fetch(context.Background(), "tinygo", "/tmp/tinygo")
	assert.NoError(t, err)
	assert.Equal(t, []string{"PKGBUILD"}, files)

	maintainer, err := fetcher.Maintainer(context.Background(), "tinygo")
	assert.NoError(t, err)
	assert.Equal(t, "someone", maintainer)

	fetcher.AssertExpectations(t)
}
