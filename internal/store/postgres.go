package store

import (
	"context"
	"errors"
	"fmt"

	"taskboard/internal/database"
	"taskboard/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

// Postgres implements Store on top of a pgx pool.
type Postgres struct {
	db database.DB
}

func NewPostgres(db database.DB) *Postgres {
	return &Postgres{db: db}
}

func (p *Postgres) Ping(ctx context.Context) error {
	return p.db.Ping(ctx)
}

// translate maps driver errors onto the store sentinels and wraps them
// with the calling operation's name.
func translate(op string, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return fmt.Errorf("%s: %w", op, ErrDuplicate)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func (p *Postgres) execOne(ctx context.Context, op, sql string, args ...any) error {
	tag, err := p.db.Exec(ctx, sql, args...)
	if err != nil {
		return translate(op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return nil
}

func (p *Postgres) NextSortID(ctx context.Context, c Collection) (int, error) {
	var next int
	row := p.db.QueryRow(ctx,
		`INSERT INTO collection_sequences (name, value) VALUES ($1, 1)
		 ON CONFLICT (name) DO UPDATE SET value = collection_sequences.value + 1
		 RETURNING value`,
		string(c),
	)
	if err := row.Scan(&next); err != nil {
		return 0, translate("NextSortID", err)
	}
	return next, nil
}

/* ---------- users ---------- */

const userColumns = `id, username, firstname, lastname, email, password_hash, age, gender, created_at`

func scanUser(row pgx.Row) (*model.User, error) {
	u := &model.User{}
	if err := row.Scan(
		&u.ID,
		&u.Username,
		&u.Firstname,
		&u.Lastname,
		&u.Email,
		&u.PasswordHash,
		&u.Age,
		&u.Gender,
		&u.CreatedAt,
	); err != nil {
		return nil, err
	}
	return u, nil
}

func (p *Postgres) CreateUser(ctx context.Context, u *model.User) error {
	row := p.db.QueryRow(ctx,
		`INSERT INTO users (id, username, firstname, lastname, email, password_hash, age, gender)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING created_at`,
		u.ID,
		u.Username,
		u.Firstname,
		u.Lastname,
		u.Email,
		u.PasswordHash,
		u.Age,
		u.Gender,
	)
	if err := row.Scan(&u.CreatedAt); err != nil {
		return translate("CreateUser", err)
	}
	return nil
}

func (p *Postgres) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	u, err := scanUser(p.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		return nil, translate("GetUserByID", err)
	}
	return u, nil
}

func (p *Postgres) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	u, err := scanUser(p.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE lower(email) = lower($1)`, email))
	if err != nil {
		return nil, translate("GetUserByEmail", err)
	}
	return u, nil
}

/* ---------- boards ---------- */

const boardColumns = `id, name, background, user_id, sort_id, created_at`

func scanBoard(row pgx.Row, b *model.Board) error {
	return row.Scan(&b.ID, &b.Name, &b.Background, &b.UserID, &b.SortID, &b.CreatedAt)
}

func (p *Postgres) CreateBoard(ctx context.Context, b *model.Board) error {
	row := p.db.QueryRow(ctx,
		`INSERT INTO boards (id, name, background, user_id, sort_id)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING created_at`,
		b.ID, b.Name, b.Background, b.UserID, b.SortID,
	)
	if err := row.Scan(&b.CreatedAt); err != nil {
		return translate("CreateBoard", err)
	}
	return nil
}

func (p *Postgres) GetBoard(ctx context.Context, id string) (*model.Board, error) {
	b := &model.Board{}
	if err := scanBoard(p.db.QueryRow(ctx, `SELECT `+boardColumns+` FROM boards WHERE id = $1`, id), b); err != nil {
		return nil, translate("GetBoard", err)
	}
	return b, nil
}

func (p *Postgres) ListBoards(ctx context.Context, userID string) ([]model.Board, error) {
	rows, err := p.db.Query(ctx,
		`SELECT `+boardColumns+` FROM boards
		 WHERE user_id = $1
		 ORDER BY sort_id, created_at, id`,
		userID,
	)
	if err != nil {
		return nil, translate("ListBoards", err)
	}
	defer rows.Close()

	out := []model.Board{}
	for rows.Next() {
		var b model.Board
		if err := scanBoard(rows, &b); err != nil {
			return nil, translate("ListBoards", err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, translate("ListBoards", err)
	}
	return out, nil
}

func (p *Postgres) UpdateBoard(ctx context.Context, b *model.Board) error {
	return p.execOne(ctx, "UpdateBoard",
		`UPDATE boards SET name = $1, background = $2 WHERE id = $3`,
		b.Name, b.Background, b.ID,
	)
}

func (p *Postgres) DeleteBoard(ctx context.Context, id string) error {
	return p.execOne(ctx, "DeleteBoard", `DELETE FROM boards WHERE id = $1`, id)
}

/* ---------- categories ---------- */

const categoryColumns = `id, name, board_id, sort_id, created_at`

func scanCategory(row pgx.Row, c *model.Category) error {
	return row.Scan(&c.ID, &c.Name, &c.BoardID, &c.SortID, &c.CreatedAt)
}

func (p *Postgres) CreateCategory(ctx context.Context, c *model.Category) error {
	row := p.db.QueryRow(ctx,
		`INSERT INTO categories (id, name, board_id, sort_id)
		 VALUES ($1, $2, $3, $4)
		 RETURNING created_at`,
		c.ID, c.Name, c.BoardID, c.SortID,
	)
	if err := row.Scan(&c.CreatedAt); err != nil {
		return translate("CreateCategory", err)
	}
	return nil
}

func (p *Postgres) GetCategory(ctx context.Context, id string) (*model.Category, error) {
	c := &model.Category{}
	if err := scanCategory(p.db.QueryRow(ctx, `SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id), c); err != nil {
		return nil, translate("GetCategory", err)
	}
	return c, nil
}

func (p *Postgres) ListCategories(ctx context.Context, boardID string) ([]model.Category, error) {
	rows, err := p.db.Query(ctx,
		`SELECT `+categoryColumns+` FROM categories
		 WHERE board_id = $1
		 ORDER BY sort_id, created_at, id`,
		boardID,
	)
	if err != nil {
		return nil, translate("ListCategories", err)
	}
	defer rows.Close()

	out := []model.Category{}
	for rows.Next() {
		var c model.Category
		if err := scanCategory(rows, &c); err != nil {
			return nil, translate("ListCategories", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, translate("ListCategories", err)
	}
	return out, nil
}

/* ---------- tasks ---------- */

const taskColumns = `id, name, description, category_id, sort_id, created_at`

func scanTask(row pgx.Row, t *model.Task) error {
	return row.Scan(&t.ID, &t.Name, &t.Description, &t.CategoryID, &t.SortID, &t.CreatedAt)
}

func (p *Postgres) CreateTask(ctx context.Context, t *model.Task) error {
	row := p.db.QueryRow(ctx,
		`INSERT INTO tasks (id, name, description, category_id, sort_id)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING created_at`,
		t.ID, t.Name, t.Description, t.CategoryID, t.SortID,
	)
	if err := row.Scan(&t.CreatedAt); err != nil {
		return translate("CreateTask", err)
	}
	return nil
}

func (p *Postgres) GetTask(ctx context.Context, id string) (*model.Task, error) {
	t := &model.Task{}
	if err := scanTask(p.db.QueryRow(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = $1`, id), t); err != nil {
		return nil, translate("GetTask", err)
	}
	return t, nil
}

func (p *Postgres) ListTasks(ctx context.Context, categoryID string) ([]model.Task, error) {
	rows, err := p.db.Query(ctx,
		`SELECT `+taskColumns+` FROM tasks
		 WHERE category_id = $1
		 ORDER BY sort_id, created_at, id`,
		categoryID,
	)
	if err != nil {
		return nil, translate("ListTasks", err)
	}
	defer rows.Close()

	out := []model.Task{}
	for rows.Next() {
		var t model.Task
		if err := scanTask(rows, &t); err != nil {
			return nil, translate("ListTasks", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, translate("ListTasks", err)
	}
	return out, nil
}

func (p *Postgres) UpdateTask(ctx context.Context, t *model.Task) error {
	return p.execOne(ctx, "UpdateTask",
		`UPDATE tasks SET name = $1, description = $2, category_id = $3 WHERE id = $4`,
		t.Name, t.Description, t.CategoryID, t.ID,
	)
}

func (p *Postgres) DeleteTask(ctx context.Context, id string) error {
	return p.execOne(ctx, "DeleteTask", `DELETE FROM tasks WHERE id = $1`, id)
}

/* ---------- comments ---------- */

const commentColumns = `id, task_id, comment, author_id, author_firstname, author_lastname, author_email, author_gender, date`

func scanComment(row pgx.Row, c *model.Comment) error {
	return row.Scan(
		&c.ID,
		&c.TaskID,
		&c.Comment,
		&c.UserInfo.ID,
		&c.UserInfo.Firstname,
		&c.UserInfo.Lastname,
		&c.UserInfo.Email,
		&c.UserInfo.Gender,
		&c.Date,
	)
}

func (p *Postgres) CreateComment(ctx context.Context, c *model.Comment) error {
	_, err := p.db.Exec(ctx,
		`INSERT INTO comments (`+commentColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		c.ID,
		c.TaskID,
		c.Comment,
		c.UserInfo.ID,
		c.UserInfo.Firstname,
		c.UserInfo.Lastname,
		c.UserInfo.Email,
		c.UserInfo.Gender,
		c.Date,
	)
	if err != nil {
		return translate("CreateComment", err)
	}
	return nil
}

func (p *Postgres) GetComment(ctx context.Context, id string) (*model.Comment, error) {
	c := &model.Comment{}
	if err := scanComment(p.db.QueryRow(ctx, `SELECT `+commentColumns+` FROM comments WHERE id = $1`, id), c); err != nil {
		return nil, translate("GetComment", err)
	}
	return c, nil
}

func (p *Postgres) ListComments(ctx context.Context, taskID string) ([]model.Comment, error) {
	rows, err := p.db.Query(ctx,
		`SELECT `+commentColumns+` FROM comments
		 WHERE task_id = $1
		 ORDER BY date, id`,
		taskID,
	)
	if err != nil {
		return nil, translate("ListComments", err)
	}
	defer rows.Close()

	out := []model.Comment{}
	for rows.Next() {
		var c model.Comment
		if err := scanComment(rows, &c); err != nil {
			return nil, translate("ListComments", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, translate("ListComments", err)
	}
	return out, nil
}

func (p *Postgres) UpdateComment(ctx context.Context, c *model.Comment) error {
	return p.execOne(ctx, "UpdateComment",
		`UPDATE comments SET comment = $1, date = $2 WHERE id = $3`,
		c.Comment, c.Date, c.ID,
	)
}

func (p *Postgres) DeleteComment(ctx context.Context, id string) error {
	return p.execOne(ctx, "DeleteComment", `DELETE FROM comments WHERE id = $1`, id)
}
