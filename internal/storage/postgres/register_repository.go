package postgres

import (
	"context"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/pkg/errors"
	"github.com/skybi/bitflags/internal/register"
)

const registerColumns = "register_id, name, flags, created"

// RegisterRepository implements the register.Repository interface using PostgreSQL
type RegisterRepository struct {
	db *pgxpool.Pool
}

var _ register.Repository = (*RegisterRepository)(nil)

// Get retrieves multiple registers ordered by their name
func (repo *RegisterRepository) Get(ctx context.Context, offset, limit uint64) ([]*register.Register, uint64, error) {
	query := squirrel.Select(registerColumns).From("registers").OrderBy("name")
	if offset > 0 {
		query = query.Offset(offset)
	}
	if limit > 0 {
		query = query.Limit(limit)
	} else {
		query = query.Limit(10)
	}
	sql, vals, err := query.PlaceholderFormat(squirrel.Dollar).ToSql()
	if err != nil {
		return nil, 0, err
	}

	var n uint64
	if err := repo.db.QueryRow(ctx, "select count(*) from registers").Scan(&n); err != nil {
		return nil, 0, errors.Wrap(err, "count registers")
	}
	if n == 0 {
		return []*register.Register{}, 0, nil
	}

	rows, err := repo.db.Query(ctx, sql, vals...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []*register.Register{}, n, nil
		}
		return nil, 0, errors.Wrap(err, "query registers")
	}
	defer rows.Close()

	registers := []*register.Register{}
	for rows.Next() {
		reg, err := repo.rowToRegister(rows)
		if err != nil {
			return nil, 0, err
		}
		registers = append(registers, reg)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, errors.Wrap(err, "read registers")
	}

	return registers, n, nil
}

// GetByID retrieves a register by its ID
func (repo *RegisterRepository) GetByID(ctx context.Context, id uuid.UUID) (*register.Register, error) {
	row := repo.db.QueryRow(ctx, "select "+registerColumns+" from registers where register_id = $1", id)
	return repo.optionalRegister(row)
}

// GetByName retrieves a register by its name
func (repo *RegisterRepository) GetByName(ctx context.Context, name string) (*register.Register, error) {
	row := repo.db.QueryRow(ctx, "select "+registerColumns+" from registers where name = $1", name)
	return repo.optionalRegister(row)
}

// Create creates a new register
func (repo *RegisterRepository) Create(ctx context.Context, create *register.Create) (*register.Register, error) {
	reg := &register.Register{
		ID:      uuid.New(),
		Name:    create.Name,
		Flags:   create.Flags,
		Created: time.Now().Unix(),
	}

	query := `
		insert into registers (register_id, name, flags, created)
		values ($1, $2, $3, $4)
	`
	if _, err := repo.db.Exec(ctx, query, reg.ID, reg.Name, reg.Flags, reg.Created); err != nil {
		if isUniqueViolation(err) {
			return nil, register.ErrNameTaken
		}
		return nil, errors.Wrap(err, "insert register")
	}
	return reg, nil
}

// Update updates a register
func (repo *RegisterRepository) Update(ctx context.Context, id uuid.UUID, update *register.Update) (*register.Register, error) {
	// Simply re-fetch the register if nothing should be changed
	if update.Name == nil && update.Flags == nil {
		return repo.GetByID(ctx, id)
	}

	// Build the SQL query
	query := squirrel.Update("registers").Where(squirrel.Eq{"register_id": id})
	if update.Name != nil {
		query = query.Set("name", *update.Name)
	}
	if update.Flags != nil {
		query = query.Set("flags", *update.Flags)
	}
	sql, values, err := query.PlaceholderFormat(squirrel.Dollar).ToSql()
	if err != nil {
		return nil, err
	}

	// Perform the SQL query
	if _, err := repo.db.Exec(ctx, sql, values...); err != nil {
		if isUniqueViolation(err) {
			return nil, register.ErrNameTaken
		}
		return nil, errors.Wrap(err, "update register")
	}

	// Re-fetch the register
	return repo.GetByID(ctx, id)
}

// Delete deletes a register by its ID
func (repo *RegisterRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := repo.db.Exec(ctx, "delete from registers where register_id = $1", id)
	return errors.Wrap(err, "delete register")
}

func (repo *RegisterRepository) optionalRegister(row pgx.Row) (*register.Register, error) {
	reg, err := repo.rowToRegister(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return reg, nil
}

func (repo *RegisterRepository) rowToRegister(row pgx.Row) (*register.Register, error) {
	obj := new(register.Register)
	if err := row.Scan(&obj.ID, &obj.Name, &obj.Flags, &obj.Created); err != nil {
		return nil, err
	}
	return obj, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
