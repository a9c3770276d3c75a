package repositories

import (
	"context"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/pkg/errors"

	"github.com/ipryshchepa/FTG12-sub001/internal/dtos"
	"github.com/ipryshchepa/FTG12-sub001/internal/models"
	"github.com/ipryshchepa/FTG12-sub001/internal/utils"
)

const dialectPostgres = "postgres"

// bookSortColumns maps the public sort keys to qualified columns.
var bookSortColumns = map[string]string{
	"title":         "b.title",
	"author":        "b.author",
	"publishedYear": "b.published_year",
	"createdAt":     "b.created_at",
	"score":         "r.score",
}

const DefaultBookSort = "title"

// IsSortableBookField reports whether key is an accepted sortBy value.
func IsSortableBookField(key string) bool {
	_, ok := bookSortColumns[key]
	return ok
}

type BookRepository interface {
	Create(ctx context.Context, b *models.Book) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Book, error)
	List(ctx context.Context, q dtos.BookListQuery) ([]dtos.BookListItem, int, error)
	UpdateIfVersion(ctx context.Context, b *models.Book, expected int64) (pgconn.CommandTag, error)
	UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Book) error) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type bookRepo struct {
	db    DB
	table versionedTable[*models.Book]
}

func NewBookRepository(db DB) BookRepository {
	r := &bookRepo{db: db}
	r.table = newVersionedTable(db, baseSelectBook()+" WHERE id=$1", r.scanBook)
	return r
}

func (r *bookRepo) Create(ctx context.Context, b *models.Book) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO books (
			id, title, author, description, notes, isbn, published_year, page_count,
			ownership_status, created_at, updated_at, row_version
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9, NOW(), NOW(), 1)
		RETURNING created_at, updated_at, row_version
	`, b.ID, b.Title, b.Author, b.Description, b.Notes, b.ISBN, b.PublishedYear, b.PageCount, string(b.OwnershipStatus))
	if err := row.Scan(&b.CreatedAt, &b.UpdatedAt, &b.RowVersion); err != nil {
		return errors.Wrap(err, "insert book")
	}
	return nil
}

func (r *bookRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Book, error) {
	b, err := r.table.load(ctx, id.String())
	return b, errors.Wrap(err, "select book")
}

// UpdateIfVersion writes b and refreshes b.UpdatedAt from the stored row.
func (r *bookRepo) UpdateIfVersion(ctx context.Context, b *models.Book, expected int64) (pgconn.CommandTag, error) {
	err := r.db.QueryRow(ctx, `
		UPDATE books SET
			title=$1, author=$2, description=$3, notes=$4, isbn=$5,
			published_year=$6, page_count=$7, ownership_status=$8,
			updated_at=NOW(), row_version=row_version+1
		WHERE id=$9 AND row_version=$10
		RETURNING updated_at
	`, b.Title, b.Author, b.Description, b.Notes, b.ISBN, b.PublishedYear, b.PageCount,
		string(b.OwnershipStatus), b.ID, expected).Scan(&b.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return pgconn.CommandTag("UPDATE 0"), nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "update book")
	}
	return pgconn.CommandTag("UPDATE 1"), nil
}

func (r *bookRepo) UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Book) error) error {
	return r.table.updateWithRetry(ctx, id.String(), mutate, r.UpdateIfVersion)
}

func (r *bookRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM books WHERE id=$1`, id)
	if err != nil {
		return errors.Wrap(err, "delete book")
	}
	if tag.RowsAffected() == 0 {
		return errors.WithStack(utils.ErrNoRowsUpdated)
	}
	return nil
}

func (r *bookRepo) List(ctx context.Context, q dtos.BookListQuery) ([]dtos.BookListItem, int, error) {
	countSQL, countArgs, pageSQL, pageArgs, err := buildBookListQueries(q)
	if err != nil {
		return nil, 0, err
	}

	var total int
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, errors.Wrap(err, "count books")
	}

	rows, err := r.db.Query(ctx, pageSQL, pageArgs...)
	if err != nil {
		return nil, 0, errors.Wrap(err, "list books")
	}
	defer rows.Close()

	var out []dtos.BookListItem
	for rows.Next() {
		var (
			item          dtos.BookListItem
			ownership     string
			readingStatus *string
		)
		if err := rows.Scan(&item.ID, &item.Title, &item.Author, &ownership,
			&item.Score, &readingStatus, &item.BorrowedTo, &item.CreatedAt); err != nil {
			return nil, 0, errors.Wrap(err, "scan book list row")
		}
		item.OwnershipStatus = models.OwnershipStatus(ownership)
		if readingStatus != nil {
			item.ReadingStatus = utils.Ptr(models.ReadingStatusType(*readingStatus))
		}
		out = append(out, item)
	}
	return out, total, errors.Wrap(rows.Err(), "iterate book list")
}

// buildBookListQueries renders the count and page statements for one list request.
func buildBookListQueries(q dtos.BookListQuery) (countSQL string, countArgs []interface{}, pageSQL string, pageArgs []interface{}, err error) {
	base := goqu.Dialect(dialectPostgres).
		From(goqu.T("books").As("b")).
		LeftJoin(goqu.T("ratings").As("r"), goqu.On(goqu.I("r.book_id").Eq(goqu.I("b.id")))).
		LeftJoin(goqu.T("reading_statuses").As("rs"), goqu.On(goqu.I("rs.book_id").Eq(goqu.I("b.id")))).
		LeftJoin(goqu.T("loans").As("l"), goqu.On(
			goqu.I("l.book_id").Eq(goqu.I("b.id")),
			goqu.I("l.returned_date").IsNull(),
		)).
		Prepared(true)

	if where := bookListFilters(q); len(where) > 0 {
		base = base.Where(where...)
	}

	countSQL, countArgs, err = base.Select(goqu.COUNT(goqu.Star())).ToSQL()
	if err != nil {
		return "", nil, "", nil, errors.Wrap(err, "build book count query")
	}

	sortKey := q.SortBy
	if sortKey == "" {
		sortKey = DefaultBookSort
	}
	col, ok := bookSortColumns[sortKey]
	if !ok {
		return "", nil, "", nil, errors.Errorf("unsupported sort key %q", sortKey)
	}
	order := goqu.I(col).Asc().NullsLast()
	if q.SortDesc {
		order = goqu.I(col).Desc().NullsLast()
	}

	page, size := q.Page, q.PageSize
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = utils.DefaultPageSize
	}
	if page > utils.MaxPage || size > utils.MaxPageSize {
		return "", nil, "", nil, errors.Errorf("page %d of size %d is out of range", page, size)
	}

	pageSQL, pageArgs, err = base.
		Select(
			goqu.I("b.id"), goqu.I("b.title"), goqu.I("b.author"), goqu.I("b.ownership_status"),
			goqu.I("r.score"), goqu.I("rs.status"), goqu.I("l.borrowed_to"), goqu.I("b.created_at"),
		).
		Order(order, goqu.I("b.id").Asc()).
		Limit(uint(size)).
		Offset(uint((page - 1) * size)).
		ToSQL()
	if err != nil {
		return "", nil, "", nil, errors.Wrap(err, "build book page query")
	}
	return countSQL, countArgs, pageSQL, pageArgs, nil
}

func bookListFilters(q dtos.BookListQuery) []exp.Expression {
	var where []exp.Expression
	if q.Search != "" {
		pattern := "%" + q.Search + "%"
		where = append(where, goqu.Or(
			goqu.I("b.title").ILike(pattern),
			goqu.I("b.author").ILike(pattern),
			goqu.I("b.isbn").ILike(pattern),
		))
	}
	if q.OwnershipStatus != nil {
		where = append(where, goqu.I("b.ownership_status").Eq(string(*q.OwnershipStatus)))
	}
	if q.ReadingStatus != nil {
		where = append(where, goqu.I("rs.status").Eq(string(*q.ReadingStatus)))
	}
	return where
}

func baseSelectBook() string {
	return `
		SELECT id, title, author, description, notes, isbn, published_year, page_count,
			ownership_status, created_at, updated_at, row_version
		FROM books`
}

func (r *bookRepo) scanBook(row pgx.Row) (*models.Book, error) {
	var b models.Book
	var ownership string
	if err := row.Scan(&b.ID, &b.Title, &b.Author, &b.Description, &b.Notes, &b.ISBN,
		&b.PublishedYear, &b.PageCount, &ownership, &b.CreatedAt, &b.UpdatedAt, &b.RowVersion); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	b.OwnershipStatus = models.OwnershipStatus(ownership)
	return &b, nil
}
