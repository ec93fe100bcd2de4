package repository

import (
	"bytes"
	"context"
	"encoding/gob"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/vancomm/minesweeper-solver/internal/mines"
	"github.com/vancomm/minesweeper-solver/internal/solver"
)

type DBTX interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

type Queries struct {
	db DBTX
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

// Run is one archived (or in-flight) solver run.
type Run struct {
	RunId          int64              `json:"run_id"`
	Width          int32              `json:"width"`
	Height         int32              `json:"height"`
	MineCount      int32              `json:"mine_count"`
	Seed           int64              `json:"seed"`
	Outcome        string             `json:"outcome"`
	Turns          int32              `json:"turns"`
	CertainReveals int32              `json:"certain_reveals"`
	GuessReveals   int32              `json:"guess_reveals"`
	Flags          int32              `json:"flags"`
	Guesses        int32              `json:"guesses"`
	FinalGrid      []byte             `json:"-"`
	CreatedAt      pgtype.Timestamptz `json:"created_at"`
	EndedAt        pgtype.Timestamptz `json:"ended_at"`
}

// Grid decodes the stored final knowledge grid, if any.
func (r Run) Grid() (mines.Grid, error) {
	if len(r.FinalGrid) == 0 {
		return nil, nil
	}
	var g mines.Grid
	err := gob.NewDecoder(bytes.NewReader(r.FinalGrid)).Decode(&g)
	return g, err
}

func (q Queries) CreateRun(
	ctx context.Context, params mines.GameParams, seed uint64,
) (*Run, error) {
	rows, _ := q.db.Query(
		ctx,
		`INSERT INTO solver_run (width, height, mine_count, seed, outcome)
		VALUES (@width, @height, @mine_count, @seed, 'running')
		RETURNING *;`,
		pgx.NamedArgs{
			"width":      params.Width,
			"height":     params.Height,
			"mine_count": params.MineCount,
			"seed":       int64(seed),
		},
	)
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[Run])
}

func (q Queries) FinishRun(
	ctx context.Context, runId int64, rep *solver.Report, grid mines.Grid,
) (*Run, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(grid); err != nil {
		return nil, err
	}

	rows, _ := q.db.Query(
		ctx,
		`UPDATE solver_run SET
			outcome = @outcome,
			turns = @turns,
			certain_reveals = @certain_reveals,
			guess_reveals = @guess_reveals,
			flags = @flags,
			guesses = @guesses,
			final_grid = @final_grid,
			ended_at = now()
		WHERE run_id = @run_id
		RETURNING *;`,
		pgx.NamedArgs{
			"run_id":          runId,
			"outcome":         rep.Outcome.String(),
			"turns":           rep.Turns,
			"certain_reveals": rep.CertainReveals,
			"guess_reveals":   rep.GuessReveals,
			"flags":           rep.Flags,
			"guesses":         rep.Guesses,
			"final_grid":      buf.Bytes(),
		},
	)
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[Run])
}

func (q Queries) FetchRun(ctx context.Context, runId int64) (*Run, error) {
	rows, _ := q.db.Query(
		ctx,
		"SELECT * FROM solver_run WHERE run_id = $1",
		runId,
	)
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[Run])
}

type RunFilter struct {
	Outcome    *string
	GameParams *mines.GameParams
}

func (f RunFilter) WhereClause() (string, pgx.NamedArgs) {
	clauses := make([]string, 0)
	args := pgx.NamedArgs{}
	if f.Outcome != nil {
		clauses = append(clauses, "outcome = @outcome")
		args["outcome"] = *f.Outcome
	}
	if f.GameParams != nil {
		clauses = append(
			clauses,
			"width = @width",
			"height = @height",
			"mine_count = @mineCount",
		)
		args["width"] = f.GameParams.Width
		args["height"] = f.GameParams.Height
		args["mineCount"] = f.GameParams.MineCount
	}
	return strings.Join(clauses, " AND "), args
}

// ListRuns returns archived runs, cleanest first: fewest risked
// guesses, then fewest turns.
func (q Queries) ListRuns(ctx context.Context, filter RunFilter) ([]Run, error) {
	query := "SELECT * FROM solver_run"

	whereClause, args := filter.WhereClause()
	if whereClause != "" {
		query += " WHERE " + whereClause
	}

	query += " ORDER BY guesses, turns, run_id;"

	rows, err := q.db.Query(ctx, query, args)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[Run])
}
