//go:build integration

package storage

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"campdirectory/internal/config"
)

func TestMinIOClient_RoundTrip(t *testing.T) {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "minio/minio:latest",
		ExposedPorts: []string{"9000/tcp"},
		Env: map[string]string{
			"MINIO_ROOT_USER":     "minioadmin",
			"MINIO_ROOT_PASSWORD": "minioadmin",
		},
		Cmd:        []string{"server", "/data"},
		WaitingFor: wait.ForHTTP("/minio/health/live").WithPort("9000/tcp"),
	}
	c, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Terminate(ctx) })

	host, err := c.Host(ctx)
	require.NoError(t, err)
	port, err := c.MappedPort(ctx, "9000")
	require.NoError(t, err)

	cfg := &config.Config{}
	cfg.Storage.Driver = DriverMinIO
	cfg.MinIO = config.MinIO{
		Endpoint:   host + ":" + port.Port(),
		AccessKey:  "minioadmin",
		SecretKey:  "minioadmin",
		BucketName: "photos",
		Region:     "us-east-1",
	}

	s, err := New(ctx, cfg)
	require.NoError(t, err)
	m := s.(*MinIOClient)

	require.NoError(t, m.Upload(ctx, "photo_1.jpg", strings.NewReader("data"), 4, "image/jpeg"))

	url, err := m.PresignedURL(ctx, "photo_1.jpg", time.Minute)
	require.NoError(t, err)

	resp, err := http.Get(url)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	require.NoError(t, m.Delete(ctx, "photo_1.jpg"))
}
