package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/stackltd/API-for-onlinestore/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ProductRepository struct {
	DB *pgxpool.Pool
}

func NewProductRepository(db *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{DB: db}
}

const productColumns = `p.id, p.title, p.description, p.fulldescription, p.price, p.count,
	p.freedelivery, p.sortindex, p.limitededition, p.saleprice, p.datefrom, p.dateto,
	p.date, p.archived, p.categoryid`

func scanProduct(row pgx.Row, p *model.Product) error {
	return row.Scan(&p.ID, &p.Title, &p.Description, &p.FullDescription, &p.Price, &p.Count,
		&p.FreeDelivery, &p.SortIndex, &p.LimitedEdition, &p.SalePrice, &p.DateFrom, &p.DateTo,
		&p.Date, &p.Archived, &p.CategoryID)
}

func (r *ProductRepository) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	var p model.Product
	query := `SELECT ` + productColumns + ` FROM products p WHERE p.id=$1 AND p.archived=false`
	if err := scanProduct(r.DB.QueryRow(ctx, query, id), &p); err != nil {
		return nil, fmt.Errorf("product %d: %w", id, err)
	}
	return &p, nil
}

// listingQuery selects products with review aggregates; extra conditions and
// trailing clauses are appended by the callers.
const listingQuery = `
	SELECT ` + productColumns + `, COUNT(r.id), AVG(r.rate)
	FROM products p
	LEFT JOIN reviews r ON r.productid = p.id
`

func (r *ProductRepository) queryListings(ctx context.Context, query string, args ...any) ([]model.ProductListing, error) {
	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.ProductListing
	for rows.Next() {
		var l model.ProductListing
		if err := rows.Scan(&l.ID, &l.Title, &l.Description, &l.FullDescription, &l.Price, &l.Count,
			&l.FreeDelivery, &l.SortIndex, &l.LimitedEdition, &l.SalePrice, &l.DateFrom, &l.DateTo,
			&l.Date, &l.Archived, &l.CategoryID, &l.Reviews, &l.Rating); err != nil {
			return nil, err
		}
		l.Images = []model.Image{}
		l.Tags = []model.Tag{}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.attachImagesAndTags(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ProductRepository) attachImagesAndTags(ctx context.Context, listings []model.ProductListing) error {
	if len(listings) == 0 {
		return nil
	}
	ids := make([]int64, 0, len(listings))
	for _, l := range listings {
		ids = append(ids, l.ID)
	}
	images, err := r.ImagesByProduct(ctx, ids)
	if err != nil {
		return err
	}
	tags, err := r.tagsByProduct(ctx, ids)
	if err != nil {
		return err
	}
	for i := range listings {
		if imgs, ok := images[listings[i].ID]; ok {
			listings[i].Images = imgs
		}
		if ts, ok := tags[listings[i].ID]; ok {
			listings[i].Tags = ts
		}
	}
	return nil
}

// List returns the filtered catalog.
func (r *ProductRepository) List(ctx context.Context, f model.CatalogFilter) ([]model.ProductListing, error) {
	conds := []string{"p.archived = false"}
	var args []any

	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if f.Name != "" {
		add("p.title ILIKE '%%' || $%d || '%%'", f.Name)
	}
	if f.MinPrice != nil {
		add("p.price >= $%d", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		add("p.price <= $%d", *f.MaxPrice)
	}
	if f.Available {
		conds = append(conds, "p.count > 0")
	}
	if f.FreeDelivery {
		conds = append(conds, "p.freedelivery = true")
	}
	if f.TagID != nil {
		add("EXISTS (SELECT 1 FROM product_tags pt WHERE pt.productid = p.id AND pt.tagid = $%d)", *f.TagID)
	}
	if len(f.CategoryIDs) > 0 {
		add("p.categoryid = ANY($%d)", f.CategoryIDs)
	}

	query := listingQuery + " WHERE " + strings.Join(conds, " AND ") + " GROUP BY p.id ORDER BY p.id"
	return r.queryListings(ctx, query, args...)
}

// Sales returns products whose sale window contains now.
func (r *ProductRepository) Sales(ctx context.Context, now time.Time) ([]model.ProductListing, error) {
	query := listingQuery + `
		WHERE p.archived = false
		  AND p.saleprice IS NOT NULL
		  AND p.datefrom <= $1 AND p.dateto >= $1
		GROUP BY p.id
		ORDER BY p.id`
	return r.queryListings(ctx, query, now)
}

// Popular returns the home-page top slice (low sortindex first).
func (r *ProductRepository) Popular(ctx context.Context) ([]model.ProductListing, error) {
	query := listingQuery + `
		WHERE p.archived = false AND p.sortindex <= 10
		GROUP BY p.id
		ORDER BY p.sortindex, p.id
		LIMIT 8`
	return r.queryListings(ctx, query)
}

// Limited returns limited-edition products.
func (r *ProductRepository) Limited(ctx context.Context) ([]model.ProductListing, error) {
	query := listingQuery + `
		WHERE p.archived = false AND p.limitededition = true
		GROUP BY p.id
		ORDER BY p.id
		LIMIT 16`
	return r.queryListings(ctx, query)
}

// Banners returns up to three products that are the cheapest in their
// category.
func (r *ProductRepository) Banners(ctx context.Context) ([]model.ProductListing, error) {
	query := listingQuery + `
		JOIN (
			SELECT categoryid, MIN(price) AS minprice
			FROM products
			WHERE archived = false AND categoryid IS NOT NULL
			GROUP BY categoryid
		) m ON m.categoryid = p.categoryid AND p.price = m.minprice
		WHERE p.archived = false
		GROUP BY p.id
		ORDER BY p.price
		LIMIT 3`
	return r.queryListings(ctx, query)
}

// Detail returns the full product view with reviews and specifications.
func (r *ProductRepository) Detail(ctx context.Context, id int64) (*model.ProductDetail, error) {
	query := listingQuery + ` WHERE p.id = $1 GROUP BY p.id`
	listings, err := r.queryListings(ctx, query, id)
	if err != nil {
		return nil, err
	}
	if len(listings) == 0 {
		return nil, fmt.Errorf("product %d: %w", id, pgx.ErrNoRows)
	}
	d := model.ProductDetail{ProductListing: listings[0], Specifications: []model.Specification{}}

	rows, err := r.DB.Query(ctx,
		`SELECT id, productid, author, email, text, rate, date FROM reviews WHERE productid=$1 ORDER BY date DESC`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var rv model.Review
		if err := rows.Scan(&rv.ID, &rv.ProductID, &rv.Author, &rv.Email, &rv.Text, &rv.Rate, &rv.Date); err != nil {
			return nil, err
		}
		d.ReviewList = append(d.ReviewList, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	specRows, err := r.DB.Query(ctx,
		`SELECT name, value FROM specifications WHERE productid=$1 ORDER BY id`, id)
	if err != nil {
		return nil, err
	}
	defer specRows.Close()
	for specRows.Next() {
		var s model.Specification
		if err := specRows.Scan(&s.Name, &s.Value); err != nil {
			return nil, err
		}
		d.Specifications = append(d.Specifications, s)
	}
	return &d, specRows.Err()
}

// ImagesByProduct returns the image sets for the given product ids.
func (r *ProductRepository) ImagesByProduct(ctx context.Context, ids []int64) (map[int64][]model.Image, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT productid, src, alt FROM images WHERE productid = ANY($1) ORDER BY id`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[int64][]model.Image)
	for rows.Next() {
		var pid int64
		var img model.Image
		if err := rows.Scan(&pid, &img.Src, &img.Alt); err != nil {
			return nil, err
		}
		out[pid] = append(out[pid], img)
	}
	return out, rows.Err()
}

func (r *ProductRepository) tagsByProduct(ctx context.Context, ids []int64) (map[int64][]model.Tag, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT pt.productid, t.id, t.name, t.categoryid
		FROM product_tags pt
		JOIN tags t ON t.id = pt.tagid
		WHERE pt.productid = ANY($1)
		ORDER BY t.id`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[int64][]model.Tag)
	for rows.Next() {
		var pid int64
		var t model.Tag
		if err := rows.Scan(&pid, &t.ID, &t.Name, &t.CategoryID); err != nil {
			return nil, err
		}
		out[pid] = append(out[pid], t)
	}
	return out, rows.Err()
}
