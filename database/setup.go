package database

import (
	"context"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

//DeleteSchema cleans up the tables and data - useful for testing but not exposed to web
func DeleteSchema(ctx context.Context, db *pgxpool.Pool) error {
	_, err := db.Exec(ctx, "DROP TABLE IF EXISTS contamination_sites CASCADE")
	return err
}

//SetupSchema creates the required extension, table and index if they don't exist
func SetupSchema(ctx context.Context, db *pgxpool.Pool) error {

	//is postgis installed?
	var version string
	err := db.QueryRow(ctx, "SELECT postgis_version()").Scan(&version)

	if err != nil {
		zap.L().Warn("PostGIS not found...attempting to install")
		if _, err := db.Exec(ctx, "CREATE EXTENSION IF NOT EXISTS postgis"); err != nil {
			return errors.Wrap(err, "unable to install postgis")
		}
		zap.L().Info("Installed PostGIS")
	} else {
		zap.L().Info("Found PostGIS: " + version)
	}

	//ids are allocated by the application, so no serial
	createSql := `CREATE TABLE IF NOT EXISTS contamination_sites(
	id integer PRIMARY KEY,
	name text NOT NULL,
	pfas_level integer NOT NULL,
	sample_type text,
	sample_date text,
	status text,
	chemicals jsonb NOT NULL DEFAULT '{}'::jsonb,
	location geography(Point, 4326) NOT NULL
);
CREATE INDEX IF NOT EXISTS contamination_sites_location_idx ON contamination_sites USING GIST(location);
CREATE INDEX IF NOT EXISTS contamination_sites_location_geom_idx ON contamination_sites USING GIST((location::geometry));`

	if _, err := db.Exec(ctx, createSql); err != nil {
		return errors.Wrap(err, "creating contamination_sites")
	}
	return nil
}
