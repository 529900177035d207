// SPDX-License-Identifier: EPL-2.0

// Package catalog stores the artist nodes that uploaded audio is attributed
// to. It is backed by PostgreSQL through pgx.
package catalog

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Schema is the SQL DDL for the catalog tables. Execute it via
// [Store.Migrate] or apply it manually during deployment.
const Schema = `
CREATE TABLE IF NOT EXISTS "Node" (
    id   SERIAL PRIMARY KEY,
    name VARCHAR(240) NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_node_name ON "Node"(name);
ALTER TABLE "Node" ADD COLUMN IF NOT EXISTS "nodeType" VARCHAR(32);

CREATE TABLE IF NOT EXISTS "Artist" (
    "artistId" INTEGER PRIMARY KEY
);

CREATE TABLE IF NOT EXISTS "Collective" (
    "collectiveId" INTEGER PRIMARY KEY
);

CREATE TABLE IF NOT EXISTS "ArtistCollective" (
    "artistId"     INTEGER NOT NULL,
    "collectiveId" INTEGER NOT NULL,
    PRIMARY KEY ("artistId", "collectiveId")
);
CREATE INDEX IF NOT EXISTS idx_artistcollective_artistid ON "ArtistCollective"("artistId");
CREATE INDEX IF NOT EXISTS idx_artistcollective_collectiveid ON "ArtistCollective"("collectiveId");
`

// Node types stored in "Node"."nodeType".
const (
	NodeArtist     = "artist"
	NodeCollective = "collective"
)

// SeedArtists are the artist nodes inserted into an empty catalog.
var SeedArtists = []string{
	"Amara Okafor",
	"Chen Wei",
	"Priya Sharma",
	"Mohammed Al-Rashid",
	"Sofia Rodriguez",
	"Yuki Tanaka",
	"Fatima Hassan",
	"Lars Andersson",
	"Nadia Kozlov",
	"Kwame Mensah",
	"Isabella Costa",
	"Arjun Patel",
	"Leila Azizi",
	"Diego Martinez",
	"Aisha Diallo",
	"Kim Min-jun",
	"Zara Abadi",
	"Rafael Santos",
	"Mei Ling Wang",
}

// SeedCollectives are the collective nodes inserted into an empty catalog.
var SeedCollectives = []string{
	"Harmonic Resonance",
	"Rhythmic Fusion",
	"Melodic Synthesis",
	"Acoustic Ensemble",
	"Sonic Wavelength",
}

// Node is one named entry of the catalog.
type Node struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// DB is the database interface used by [Store]. Both *pgxpool.Pool and
// *pgx.Conn satisfy it.
type DB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Store reads and writes catalog rows.
type Store struct {
	db DB
}

// NewStore creates a [Store] on top of db. The caller owns db.
func NewStore(db DB) *Store {
	return &Store{db: db}
}

// Connect opens a pgx pool for dsn and verifies it with a ping.
func Connect(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("catalog: connect: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("catalog: ping: %w", err)
	}

	return pool, nil
}

// Migrate executes [Schema].
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("catalog: migrate: %w", err)
	}
	return nil
}

// ListNodes returns every node ordered by id.
func (s *Store) ListNodes(ctx context.Context) ([]Node, error) {
	rows, err := s.db.Query(ctx, `SELECT id, name FROM "Node" ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("catalog: list nodes: %w", err)
	}

	nodes, err := pgx.CollectRows(rows, pgx.RowToStructByPos[Node])
	if err != nil {
		return nil, fmt.Errorf("catalog: scan nodes: %w", err)
	}

	return nodes, nil
}

// AddNode inserts a node of the given type and returns its id.
func (s *Store) AddNode(ctx context.Context, name, nodeType string) (int64, error) {
	rows, err := s.db.Query(ctx,
		`INSERT INTO "Node" (name, "nodeType") VALUES ($1, $2) RETURNING id`, name, nodeType)
	if err != nil {
		return 0, fmt.Errorf("catalog: add node: %w", err)
	}

	id, err := pgx.CollectExactlyOneRow(rows, pgx.RowTo[int64])
	if err != nil {
		return 0, fmt.Errorf("catalog: add node: %w", err)
	}

	return id, nil
}

// Seed fills an empty catalog with [SeedArtists] and [SeedCollectives],
// registering each in "Artist" or "Collective". It does nothing when "Node"
// already holds rows and returns the number of nodes inserted.
func (s *Store) Seed(ctx context.Context) (int, error) {
	n, err := s.countNodes(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		return 0, nil
	}

	added := 0
	groups := []struct {
		names    []string
		nodeType string
		link     string
	}{
		{SeedArtists, NodeArtist, `INSERT INTO "Artist" ("artistId") VALUES ($1) ON CONFLICT DO NOTHING`},
		{SeedCollectives, NodeCollective, `INSERT INTO "Collective" ("collectiveId") VALUES ($1) ON CONFLICT DO NOTHING`},
	}
	for _, g := range groups {
		for _, name := range g.names {
			id, err := s.AddNode(ctx, name, g.nodeType)
			if err != nil {
				return added, err
			}
			if _, err := s.db.Exec(ctx, g.link, id); err != nil {
				return added, fmt.Errorf("catalog: link %s %d: %w", g.nodeType, id, err)
			}
			added++
		}
	}

	return added, nil
}

func (s *Store) countNodes(ctx context.Context) (int64, error) {
	rows, err := s.db.Query(ctx, `SELECT COUNT(*) FROM "Node"`)
	if err != nil {
		return 0, fmt.Errorf("catalog: count nodes: %w", err)
	}

	n, err := pgx.CollectExactlyOneRow(rows, pgx.RowTo[int64])
	if err != nil {
		return 0, fmt.Errorf("catalog: count nodes: %w", err)
	}

	return n, nil
}
