// Package store persists experiment artifacts in a SQLite database: imported
// graphs, sampled reward sets, solved action profiles and evaluated payoffs.
//
// Every artifact is keyed by the network size. Graphs, reward sets and
// solutions are write-once; a second write of the same key returns
// ErrAlreadyExists. Reads of absent keys return ErrNotFound.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/katalvlaran/coordgame/core"
	"github.com/katalvlaran/coordgame/game"
)

// Sentinel errors.
var (
	// ErrNotFound is returned when a requested artifact does not exist.
	ErrNotFound = errors.New("store: artifact not found")

	// ErrAlreadyExists is returned when a write-once artifact is written twice.
	ErrAlreadyExists = errors.New("store: artifact already exists")

	// ErrInvalidKind is returned for an unknown reward kind.
	ErrInvalidKind = errors.New("store: invalid reward kind")
)

// Reward kinds.
const (
	KindNR1   = "nr1"
	KindSolve = "solve"
	KindEval  = "eval"
)

func validKind(kind string) error {
	switch kind {
	case KindNR1, KindSolve, KindEval:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrInvalidKind, kind)
}

// Store is a SQLite-backed artifact store. It is safe for concurrent use.
type Store struct {
	mu sync.Mutex
	db *sql.DB
}

// Open opens (creating if needed) the database at path. The parent
// directory is created when missing.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create store directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path+"?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1) // single writer

	if err := InitSchema(context.Background(), db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}

// SaveGraph stores g and its diameter under size.
func (s *Store) SaveGraph(ctx context.Context, size int, g *core.Graph, diameter int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var exists int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM graphs WHERE size = ?`, size).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check graph %d: %w", size, err)
	}
	if exists > 0 {
		return fmt.Errorf("%w: graph %d", ErrAlreadyExists, size)
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO graphs (size, diameter, created_at) VALUES (?, ?, ?)`,
		size, diameter, time.Now().UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("failed to insert graph %d: %w", size, err)
	}
	for _, v := range g.Vertices() {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO graph_vertices (size, node) VALUES (?, ?)`, size, v); err != nil {
			return fmt.Errorf("failed to insert vertex %q: %w", v, err)
		}
	}
	for _, e := range g.Edges() {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO graph_edges (size, u, v) VALUES (?, ?, ?)`, size, e.From, e.To); err != nil {
			return fmt.Errorf("failed to insert edge %s: %w", e.ID, err)
		}
	}

	return tx.Commit()
}

// LoadGraph returns the graph and diameter stored under size.
func (s *Store) LoadGraph(ctx context.Context, size int) (*core.Graph, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var diameter int
	err := s.db.QueryRowContext(ctx, `SELECT diameter FROM graphs WHERE size = ?`, size).Scan(&diameter)
	if err == sql.ErrNoRows {
		return nil, 0, fmt.Errorf("%w: graph %d", ErrNotFound, size)
	}
	if err != nil {
		return nil, 0, fmt.Errorf("failed to load graph %d: %w", size, err)
	}

	g := core.NewGraph()
	vrows, err := s.db.QueryContext(ctx, `SELECT node FROM graph_vertices WHERE size = ?`, size)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to load vertices: %w", err)
	}
	defer vrows.Close()
	for vrows.Next() {
		var id string
		if err := vrows.Scan(&id); err != nil {
			return nil, 0, fmt.Errorf("failed to scan vertex: %w", err)
		}
		if err := g.AddVertex(id); err != nil {
			return nil, 0, err
		}
	}
	if err := vrows.Err(); err != nil {
		return nil, 0, err
	}

	erows, err := s.db.QueryContext(ctx, `SELECT u, v FROM graph_edges WHERE size = ?`, size)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to load edges: %w", err)
	}
	defer erows.Close()
	for erows.Next() {
		var u, v string
		if err := erows.Scan(&u, &v); err != nil {
			return nil, 0, fmt.Errorf("failed to scan edge: %w", err)
		}
		if _, err := g.AddEdge(u, v); err != nil {
			return nil, 0, err
		}
	}
	if err := erows.Err(); err != nil {
		return nil, 0, err
	}

	return g, diameter, nil
}

// SaveRewards stores the reward sets of one kind for size. Set i is stored
// with set_index i.
func (s *Store) SaveRewards(ctx context.Context, size int, kind string, sets []game.Rewards) error {
	if err := validKind(kind); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var exists int
	if err := tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM rewards WHERE size = ? AND kind = ?`, size, kind).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check rewards: %w", err)
	}
	if exists > 0 {
		return fmt.Errorf("%w: %s rewards for size %d", ErrAlreadyExists, kind, size)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO rewards (size, kind, set_index, node, value) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()
	for i, r := range sets {
		for node, value := range r {
			if _, err := stmt.ExecContext(ctx, size, kind, i, node, value); err != nil {
				return fmt.Errorf("failed to insert reward %s[%d][%q]: %w", kind, i, node, err)
			}
		}
	}

	return tx.Commit()
}

// LoadRewards returns every reward set of one kind for size, ordered by
// set index.
func (s *Store) LoadRewards(ctx context.Context, size int, kind string) ([]game.Rewards, error) {
	if err := validKind(kind); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT set_index, node, value FROM rewards WHERE size = ? AND kind = ? ORDER BY set_index`,
		size, kind)
	if err != nil {
		return nil, fmt.Errorf("failed to query rewards: %w", err)
	}
	defer rows.Close()

	var sets []game.Rewards
	for rows.Next() {
		var (
			idx   int
			node  string
			value float64
		)
		if err := rows.Scan(&idx, &node, &value); err != nil {
			return nil, fmt.Errorf("failed to scan reward: %w", err)
		}
		for len(sets) <= idx {
			sets = append(sets, game.Rewards{})
		}
		sets[idx][node] = value
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(sets) == 0 {
		return nil, fmt.Errorf("%w: %s rewards for size %d", ErrNotFound, kind, size)
	}

	return sets, nil
}

// SolutionKey identifies one solved configuration.
type SolutionKey struct {
	Size     int
	C        float64
	Locality int
	Instance int
}

// CKey formats the bonus the way solution keys store it.
func (k SolutionKey) CKey() string {
	return fmt.Sprintf("%.3f", k.C)
}

// String returns a human-readable key, e.g. "n=20 c=0.100 L=2 i=0".
func (k SolutionKey) String() string {
	return fmt.Sprintf("n=%d c=%s L=%d i=%d", k.Size, k.CKey(), k.Locality, k.Instance)
}

// Solution is a solved period-1 action profile with its run metadata.
type Solution struct {
	Key       SolutionKey
	Profile   game.Profile
	RunTime   time.Duration
	RunID     string
	Objective float64
}

// SaveSolution stores sol. An empty RunID is filled with a fresh UUID.
func (s *Store) SaveSolution(ctx context.Context, sol *Solution) error {
	if sol.RunID == "" {
		sol.RunID = uuid.NewString()
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	k := sol.Key
	var exists int
	if err := tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM solutions WHERE size = ? AND c_key = ? AND locality = ? AND instance = ?`,
		k.Size, k.CKey(), k.Locality, k.Instance).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check solution %s: %w", k, err)
	}
	if exists > 0 {
		return fmt.Errorf("%w: solution %s", ErrAlreadyExists, k)
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO solutions (size, c_key, locality, instance, run_id, run_time_ns, objective, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		k.Size, k.CKey(), k.Locality, k.Instance, sol.RunID, sol.RunTime.Nanoseconds(), sol.Objective,
		time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to insert solution %s: %w", k, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read solution id: %w", err)
	}

	nodes := make([]string, 0, len(sol.Profile))
	for v := range sol.Profile {
		nodes = append(nodes, v)
	}
	sort.Slice(nodes, func(i, j int) bool { return core.LessID(nodes[i], nodes[j]) })
	for _, v := range nodes {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO solution_actions (solution_id, node, action) VALUES (?, ?, ?)`,
			id, v, int(sol.Profile[v])); err != nil {
			return fmt.Errorf("failed to insert action %q: %w", v, err)
		}
	}

	return tx.Commit()
}

// LoadSolution returns the solution stored under k.
func (s *Store) LoadSolution(ctx context.Context, k SolutionKey) (*Solution, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var (
		id        int64
		runID     string
		runTimeNs int64
		objective sql.NullFloat64
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, run_id, run_time_ns, objective FROM solutions
		 WHERE size = ? AND c_key = ? AND locality = ? AND instance = ?`,
		k.Size, k.CKey(), k.Locality, k.Instance).Scan(&id, &runID, &runTimeNs, &objective)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: solution %s", ErrNotFound, k)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load solution %s: %w", k, err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT node, action FROM solution_actions WHERE solution_id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load actions: %w", err)
	}
	defer rows.Close()

	profile := game.Profile{}
	for rows.Next() {
		var (
			node   string
			action int
		)
		if err := rows.Scan(&node, &action); err != nil {
			return nil, fmt.Errorf("failed to scan action: %w", err)
		}
		profile[node] = game.Action(action)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &Solution{
		Key:       k,
		Profile:   profile,
		RunTime:   time.Duration(runTimeNs),
		RunID:     runID,
		Objective: objective.Float64,
	}, nil
}

// PayoffRow is one evaluated realization. L is the reported locality: the
// graph diameter stands in for the full-diameter sentinel.
type PayoffRow struct {
	C           float64
	L           int
	Instance    int
	Realization int
	Payoff      float64
}

// SavePayoffs upserts rows for size. Re-evaluating a configuration replaces
// its rows.
func (s *Store) SavePayoffs(ctx context.Context, size int, rows []PayoffRow) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT OR REPLACE INTO payoffs (size, instance, c, locality, realization, payoff)
		 VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()
	for _, r := range rows {
		if _, err := stmt.ExecContext(ctx, size, r.Instance, r.C, r.L, r.Realization, r.Payoff); err != nil {
			return fmt.Errorf("failed to insert payoff: %w", err)
		}
	}

	return tx.Commit()
}

// LoadPayoffs returns every payoff row of size ordered by instance, c, L and
// realization.
func (s *Store) LoadPayoffs(ctx context.Context, size int) ([]PayoffRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT c, locality, instance, realization, payoff FROM payoffs WHERE size = ?
		 ORDER BY instance, c, locality, realization`, size)
	if err != nil {
		return nil, fmt.Errorf("failed to query payoffs: %w", err)
	}
	defer rows.Close()

	var out []PayoffRow
	for rows.Next() {
		var r PayoffRow
		if err := rows.Scan(&r.C, &r.L, &r.Instance, &r.Realization, &r.Payoff); err != nil {
			return nil, fmt.Errorf("failed to scan payoff: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return out, nil
}
