package storages

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	_ "modernc.org/sqlite"

	"github.com/reusee/taideck/comps"
)

var ErrNotFound = errors.New("definition not found")

// Store persists component definitions and, separately, the last source
// that compiled clean per component id. A restarted process warms its
// known-good cache from the latter so broken edits never flash an error
// panel across restarts.
type Store struct {
	db *sql.DB
}

const schema = `
create table if not exists definitions (
	id text primary key,
	source text not null,
	custom_props text not null default '{}',
	width integer not null default 0,
	height integer not null default 0,
	updated_at integer not null
);

create table if not exists last_good (
	id text primary key,
	source text not null,
	compiled_at integer not null
);
`

func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, wrap(err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, wrap(err)
	}
	return &Store{
		db: db,
	}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Begin(ctx context.Context) (Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, wrap(err)
	}
	return sqlTx{
		tx: tx,
	}, nil
}

type sqlTx struct {
	tx *sql.Tx
}

var _ Tx = sqlTx{}

func (t sqlTx) Commit() error {
	return t.tx.Commit()
}

func (t sqlTx) Rollback() error {
	return t.tx.Rollback()
}

func (t sqlTx) Exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return t.tx.ExecContext(ctx, query, args...)
}

func (t sqlTx) Query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return t.tx.QueryContext(ctx, query, args...)
}

func (t sqlTx) QueryRow(ctx context.Context, query string, args ...any) (*sql.Row, error) {
	return t.tx.QueryRowContext(ctx, query, args...), nil
}

// SaveDefinition upserts the definition row. The callable form has no
// text to persist and is skipped by callers.
func (s *Store) SaveDefinition(ctx context.Context, def *comps.Definition) error {
	tx, err := s.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	if err := saveDefinition(ctx, tx, def); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return wrap(err)
	}
	return nil
}

// SaveCompiled records the definition and its successfully compiled
// source in one transaction, so last_good never names a source the
// definitions table does not hold.
func (s *Store) SaveCompiled(ctx context.Context, def *comps.Definition) error {
	tx, err := s.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	if err := saveDefinition(ctx, tx, def); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `
		insert into last_good (id, source, compiled_at)
		values (?, ?, ?)
		on conflict (id) do update set
			source = excluded.source,
			compiled_at = excluded.compiled_at
	`,
		def.ID,
		def.Text,
		time.Now().Unix(),
	); err != nil {
		return wrap(err)
	}
	if err := tx.Commit(); err != nil {
		return wrap(err)
	}
	return nil
}

func saveDefinition(ctx context.Context, tx Tx, def *comps.Definition) error {
	props, err := json.Marshal(def.CustomProps)
	if err != nil {
		return wrap(err)
	}
	if _, err := tx.Exec(ctx, `
		insert into definitions (id, source, custom_props, width, height, updated_at)
		values (?, ?, ?, ?, ?, ?)
		on conflict (id) do update set
			source = excluded.source,
			custom_props = excluded.custom_props,
			width = excluded.width,
			height = excluded.height,
			updated_at = excluded.updated_at
	`,
		def.ID,
		def.Text,
		string(props),
		def.Width,
		def.Height,
		time.Now().Unix(),
	); err != nil {
		return wrap(err)
	}
	return nil
}

func (s *Store) LoadDefinition(ctx context.Context, id string) (*comps.Definition, error) {
	row := s.db.QueryRowContext(ctx, `
		select id, source, custom_props, width, height
		from definitions
		where id = ?
	`, id)
	def, err := scanDefinition(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, wrap(err)
	}
	return def, nil
}

func (s *Store) ListDefinitions(ctx context.Context) ([]*comps.Definition, error) {
	rows, err := s.db.QueryContext(ctx, `
		select id, source, custom_props, width, height
		from definitions
		order by id
	`)
	if err != nil {
		return nil, wrap(err)
	}
	defer rows.Close()
	var defs []*comps.Definition
	for rows.Next() {
		def, err := scanDefinition(rows)
		if err != nil {
			return nil, wrap(err)
		}
		defs = append(defs, def)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap(err)
	}
	return defs, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanDefinition(row scanner) (*comps.Definition, error) {
	var def comps.Definition
	var props string
	if err := row.Scan(
		&def.ID,
		&def.Text,
		&props,
		&def.Width,
		&def.Height,
	); err != nil {
		return nil, err
	}
	if props != "" && props != "{}" {
		if err := json.Unmarshal([]byte(props), &def.CustomProps); err != nil {
			return nil, err
		}
	}
	return &def, nil
}

// LastGoods returns the last successfully compiled source per component
// id, the warm set for a fresh known-good cache.
func (s *Store) LastGoods(ctx context.Context) (map[string]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		select id, source
		from last_good
	`)
	if err != nil {
		return nil, wrap(err)
	}
	defer rows.Close()
	sources := make(map[string]string)
	for rows.Next() {
		var id, source string
		if err := rows.Scan(&id, &source); err != nil {
			return nil, wrap(err)
		}
		sources[id] = source
	}
	if err := rows.Err(); err != nil {
		return nil, wrap(err)
	}
	return sources, nil
}
