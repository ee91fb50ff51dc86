//go:build integration

// Package testinfra starts throwaway containers for integration tests.
package testinfra

import (
	"context"
	"os/exec"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/pkg/errors"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	DefaultPostGISImage = "postgis/postgis:16-3.4-alpine"
	postgresPort        = nat.Port("5432/tcp")
)

// PostGISContainer is a running PostGIS server with its connection settings.
type PostGISContainer struct {
	testcontainers.Container
	Host     string
	Port     int
	User     string
	Password string
	Database string
}

// SkipIfNoDocker skips the test when the docker daemon does not answer.
func SkipIfNoDocker(t *testing.T) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if exec.CommandContext(ctx, "docker", "info").Run() != nil {
		t.Skip("Skipping test: Docker not available")
	}
}

func NewPostGISContainer(ctx context.Context) (*PostGISContainer, error) {
	pg := &PostGISContainer{User: "postgres", Password: "postgres", Database: "pfas"}

	req := testcontainers.ContainerRequest{
		Image:        DefaultPostGISImage,
		ExposedPorts: []string{string(postgresPort)},
		Env: map[string]string{
			"POSTGRES_USER":     pg.User,
			"POSTGRES_PASSWORD": pg.Password,
			"POSTGRES_DB":       pg.Database,
		},
		// postgres restarts once after running the init scripts
		WaitingFor: wait.ForAll(
			wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
			wait.ForListeningPort(postgresPort),
		).WithStartupTimeout(2 * time.Minute),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, errors.Wrap(err, "create postgis container")
	}

	host, err := container.Host(ctx)
	if err != nil {
		container.Terminate(ctx) //nolint:errcheck
		return nil, errors.Wrap(err, "get container host")
	}
	port, err := container.MappedPort(ctx, postgresPort)
	if err != nil {
		container.Terminate(ctx) //nolint:errcheck
		return nil, errors.Wrap(err, "get mapped port")
	}

	pg.Container = container
	pg.Host = host
	pg.Port = port.Int()
	return pg, nil
}
