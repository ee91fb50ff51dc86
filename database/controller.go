package database

import (
	"context"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgtype"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkb"
	"github.com/paulmach/orb/encoding/wkt"
	"github.com/pfas-tracker/api/metrics"
	"github.com/pfas-tracker/api/model"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const siteColumns = "id, name, pfas_level, sample_type, sample_date, status, chemicals, ST_AsBinary(location)"

const insertSiteSQL = `INSERT INTO contamination_sites
(id, name, pfas_level, sample_type, sample_date, status, chemicals, location)
VALUES ($1, $2, $3, $4, $5, $6, $7, ST_GeogFromText($8))
RETURNING ` + siteColumns

const updateSiteSQL = `UPDATE contamination_sites
SET id = $1, name = $2, pfas_level = $3, sample_type = $4, sample_date = $5,
    status = $6, chemicals = $7, location = ST_GeogFromText($8)
WHERE id = $9
RETURNING ` + siteColumns

// SiteController stores sites in the PostGIS contamination_sites table.
type SiteController struct {
	db *pgxpool.Pool
}

func NewSiteController(db *pgxpool.Pool) *SiteController {

	return &SiteController{db: db}
}

func (sc *SiteController) Ping(ctx context.Context) error {
	return sc.db.Ping(ctx)
}

//FindSites returns all sites matching the filter ordered by id
func (sc *SiteController) FindSites(ctx context.Context, filter model.SiteFilter) ([]*model.Site, error) {

	var (
		where []string
		args  []interface{}
	)
	if b := filter.Bound; b != nil {
		args = append(args, b.Min.X(), b.Min.Y(), b.Max.X(), b.Max.Y())
		// planar, like orb.Bound.Contains in the memory store
		where = append(where, "ST_Intersects(location::geometry, ST_MakeEnvelope($1, $2, $3, $4, 4326))")
	}
	if q := strings.TrimSpace(filter.Query); q != "" {
		args = append(args, escapeLike(q))
		n := strconv.Itoa(len(args))
		where = append(where, "(name ILIKE '%' || $"+n+" || '%' OR id::text LIKE '%' || $"+n+" || '%')")
	}

	sql := "SELECT " + siteColumns + " FROM contamination_sites"
	if len(where) > 0 {
		sql += " WHERE " + strings.Join(where, " AND ")
	}
	sql += " ORDER BY id ASC"

	rows, err := sc.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, errors.Wrap(err, "querying sites")
	}
	defer rows.Close()

	return scanToSites(rows)
}

//FindSiteById returns a single site based on the site id
func (sc *SiteController) FindSiteById(ctx context.Context, id int) (*model.Site, error) {
	sql := "SELECT " + siteColumns + " FROM contamination_sites WHERE id = $1"
	site, err := scanToSite(sc.db.QueryRow(ctx, sql, id))
	if err != nil {
		return nil, classify(err, "finding site")
	}
	return site, nil
}

//AddSite inserts a site. Id 0 allocates the smallest free id in the same transaction;
//a collision on an allocated id is retried once.
func (sc *SiteController) AddSite(ctx context.Context, site *model.Site) (*model.Site, error) {

	allocate := site.Id == 0
	created, err := sc.insertSite(ctx, site, allocate)
	if allocate && errors.Is(err, model.ErrSiteConflict) {
		metrics.IdAllocationRetries.Inc()
		zap.L().Warn("allocated site id was taken concurrently, retrying")
		created, err = sc.insertSite(ctx, site, allocate)
	}
	return created, err
}

func (sc *SiteController) insertSite(ctx context.Context, site *model.Site, allocate bool) (*model.Site, error) {

	tx, err := sc.db.Begin(ctx)
	if err != nil {
		zap.L().Error("error starting transaction")
		return nil, errors.Wrap(err, "starting transaction")
	}
	defer tx.Rollback(ctx)

	id := site.Id
	if allocate {
		if err := tx.QueryRow(ctx, gapSQL).Scan(&id); err != nil {
			return nil, errors.Wrap(err, "allocating site id")
		}
	}

	chems, err := chemicalsJSONB(site.Chemicals)
	if err != nil {
		return nil, err
	}
	row := tx.QueryRow(ctx, insertSiteSQL, id, site.Name, site.PfasLevel, site.SampleType,
		site.SampleDate, site.Status, chems, pointWKT(site.Location))
	created, err := scanToSite(row)
	if err != nil {
		return nil, classify(err, "adding site")
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, classify(err, "committing site")
	}
	return created, nil
}

//UpdateSite overwrites every column of the site currently stored under targetId.
//A site Id other than targetId renumbers the row; Id 0 keeps targetId.
func (sc *SiteController) UpdateSite(ctx context.Context, targetId int, site *model.Site) (*model.Site, error) {

	id := site.Id
	if id == 0 {
		id = targetId
	}
	chems, err := chemicalsJSONB(site.Chemicals)
	if err != nil {
		return nil, err
	}
	row := sc.db.QueryRow(ctx, updateSiteSQL, id, site.Name, site.PfasLevel, site.SampleType,
		site.SampleDate, site.Status, chems, pointWKT(site.Location), targetId)
	updated, err := scanToSite(row)
	if err != nil {
		return nil, classify(err, "updating site")
	}
	return updated, nil
}

//DeleteSiteById removes a site; deleting a missing id is not an error
func (sc *SiteController) DeleteSiteById(ctx context.Context, id int) error {

	tag, err := sc.db.Exec(ctx, "DELETE FROM contamination_sites WHERE id = $1", id)
	if err != nil {
		return errors.Wrap(err, "deleting site")
	}
	zap.S().Infof("deleted site %d (%d rows)", id, tag.RowsAffected())
	return nil
}

func classify(err error, msg string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return model.ErrSiteNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return model.ErrSiteConflict
	}
	return errors.Wrap(err, msg)
}

func pointWKT(p orb.Point) string {
	return "SRID=4326;" + wkt.MarshalString(p)
}

func chemicalsJSONB(chems model.Chemicals) (pgtype.JSONB, error) {
	if chems == nil {
		chems = model.Chemicals{}
	}
	b, err := json.Marshal(chems)
	if err != nil {
		return pgtype.JSONB{}, errors.Wrap(err, "encoding chemicals")
	}
	return pgtype.JSONB{Bytes: b, Status: pgtype.Present}, nil
}

//scanToSite scans a single row into a Site object
func scanToSite(row pgx.Row) (*model.Site, error) {

	var (
		s          model.Site
		sampleType pgtype.Text
		sampleDate pgtype.Text
		status     pgtype.Text
		chems      pgtype.JSONB
		geom       []byte
	)
	if err := row.Scan(&s.Id, &s.Name, &s.PfasLevel, &sampleType, &sampleDate, &status, &chems, &geom); err != nil {
		return nil, err
	}
	s.SampleType = sampleType.String
	s.SampleDate = sampleDate.String
	s.Status = status.String

	g, err := wkb.Unmarshal(geom)
	if err != nil {
		zap.S().Warnf("error scanning geometry of site %d: %s", s.Id, err.Error())
		return nil, errors.Wrap(err, "decoding site location")
	}
	p, ok := g.(orb.Point)
	if !ok {
		return nil, errors.Errorf("site %d location is a %s, not a point", s.Id, g.GeoJSONType())
	}
	s.Location = p

	s.Chemicals = model.Chemicals{}
	if chems.Status == pgtype.Present && len(chems.Bytes) > 0 {
		if err := json.Unmarshal(chems.Bytes, &s.Chemicals); err != nil {
			zap.S().Warnf("ignoring unreadable chemicals of site %d: %s", s.Id, err.Error())
			s.Chemicals = model.Chemicals{}
		}
	}
	return &s, nil
}

//scanToSites does all the nasty geometry stuff
func scanToSites(rows pgx.Rows) ([]*model.Site, error) {

	sites := make([]*model.Site, 0)
	for rows.Next() {
		s, err := scanToSite(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scanning site row")
		}
		sites = append(sites, s)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "reading site rows")
	}
	zap.L().Debug("returned ", zap.Int("sites", len(sites)))
	return sites, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
