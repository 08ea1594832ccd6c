package notify_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/unitdesk/internal/core/notify"
)

func TestFromContext(t *testing.T) {
	t.Run("missing center", func(t *testing.T) {
		c, err := notify.FromContext(context.Background())
		assert.Nil(t, c)
		assert.ErrorIs(t, err, notify.ErrContextNotInitialized)
	})

	t.Run("stored center", func(t *testing.T) {
		center, _ := newTestCenter(t)
		ctx := notify.WithCenter(context.Background(), center)

		got, err := notify.FromContext(ctx)
		require.NoError(t, err)
		assert.Same(t, center, got)
	})

	t.Run("nil center counts as missing", func(t *testing.T) {
		ctx := notify.WithCenter(context.Background(), nil)
		_, err := notify.FromContext(ctx)
		assert.ErrorIs(t, err, notify.ErrContextNotInitialized)
	})
}

func TestMustFromContext_panics_outside_scope(t *testing.T) {
	assert.PanicsWithError(t, notify.ErrContextNotInitialized.Error(), func() {
		notify.MustFromContext(context.Background())
	})
}
