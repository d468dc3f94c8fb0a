package db

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type TestClient struct {
	*Client
}

// NewTestClient creates a migrated in-memory database only for t
func NewTestClient(t *testing.T, options ...ClientOption) TestClient {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	client, err := NewClient(DSNMemory(name), append([]ClientOption{WithNopLogger()}, options...)...)
	require.NoError(t, err)
	t.Cleanup(func() {
		client.Close()
	})
	require.NoError(t, client.Migrate())

	return TestClient{
		Client: client,
	}
}

func (client TestClient) Truncate(t *testing.T, models ...interface{}) {
	t.Helper()

	for _, model := range models {
		err := client.connection.Session(&gorm.Session{
			AllowGlobalUpdate: true,
		}).Delete(model).Error
		require.NoError(t, err)
	}
}

func LoadTestData[Model any](t *testing.T, client TestClient, values []Model) {
	t.Helper()

	require.NoError(t, BatchCreate(context.Background(), client.Client, values))
}
