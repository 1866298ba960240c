package repositories

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/cphunt/backend/internal/app/models"
	"github.com/cphunt/backend/internal/db"
)

// ProductRepository handles database operations for products and their media.
type ProductRepository struct {
	products db.Pair
	media    db.Pair
}

// NewProductRepository creates a new ProductRepository instance
func NewProductRepository(products, media db.Pair) *ProductRepository {
	return &ProductRepository{products: products, media: media}
}

// GetByID returns the product with the given id, or nil.
func (r *ProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	filter := bson.M{"_id": id}
	product, err := db.FindOneFallback(ctx, r.products.Fallback,
		findOne[models.Product](r.products.Versioned, filter),
		findOne[models.Product](r.products.Legacy, filter),
	)
	if err != nil {
		return nil, storeErr("reading product by id", err)
	}
	return product, nil
}

// GetBySlug returns the product with the given slug, or nil.
func (r *ProductRepository) GetBySlug(ctx context.Context, slug string) (*models.Product, error) {
	filter := bson.M{"slug": slug}
	product, err := db.FindOneFallback(ctx, r.products.Fallback,
		findOne[models.Product](r.products.Versioned, filter),
		findOne[models.Product](r.products.Legacy, filter),
	)
	if err != nil {
		return nil, storeErr("reading product by slug", err)
	}
	return product, nil
}

// GetManyByIDs returns the products with the given ids keyed by id. Missing
// ids are absent from the map.
func (r *ProductRepository) GetManyByIDs(ctx context.Context, ids []string) (map[string]*models.Product, error) {
	if len(ids) == 0 {
		return map[string]*models.Product{}, nil
	}

	filter := bson.M{"_id": bson.M{"$in": ids}}
	products, err := db.FindManyFallback(ctx, r.products.Fallback,
		findAll[models.Product](r.products.Versioned, filter),
		findAll[models.Product](r.products.Legacy, filter),
	)
	if err != nil {
		return nil, storeErr("reading products by ids", err)
	}

	byID := make(map[string]*models.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}
	return byID, nil
}

// ListByMaker returns a maker's products, newest first.
func (r *ProductRepository) ListByMaker(ctx context.Context, makerID string) ([]models.Product, error) {
	filter := bson.M{"makerId": makerID}
	sorted := options.Find().SetSort(bson.M{"createdAt": -1})
	products, err := db.FindManyFallback(ctx, r.products.Fallback,
		findAll[models.Product](r.products.Versioned, filter, sorted),
		findAll[models.Product](r.products.Legacy, filter, sorted),
	)
	if err != nil {
		return nil, storeErr("listing products by maker", err)
	}
	return products, nil
}

// ListByTopic returns the products tagged with a topic slug, newest first.
func (r *ProductRepository) ListByTopic(ctx context.Context, topicSlug string, limit int) ([]models.Product, error) {
	filter := bson.M{"topicSlugs": topicSlug}
	sorted := options.Find().SetSort(bson.M{"createdAt": -1}).SetLimit(int64(limit))
	products, err := db.FindManyFallback(ctx, r.products.Fallback,
		findAll[models.Product](r.products.Versioned, filter, sorted),
		findAll[models.Product](r.products.Legacy, filter, sorted),
	)
	if err != nil {
		return nil, storeErr("listing products by topic", err)
	}
	return products, nil
}

// Create inserts a new product into the versioned collection.
func (r *ProductRepository) Create(ctx context.Context, product *models.Product) error {
	if _, err := r.products.Versioned.InsertOne(ctx, product); err != nil {
		return storeErr("creating product", err)
	}
	return nil
}

// AddMedia attaches a gallery entry to a product.
func (r *ProductRepository) AddMedia(ctx context.Context, media *models.ProductMedia) error {
	if _, err := r.media.Versioned.InsertOne(ctx, media); err != nil {
		return storeErr("adding product media", err)
	}
	return nil
}

// ListMedia returns a product's gallery entries in insertion order.
func (r *ProductRepository) ListMedia(ctx context.Context, productID string) ([]models.ProductMedia, error) {
	filter := bson.M{"productId": productID}
	sorted := options.Find().SetSort(bson.M{"createdAt": 1})
	media, err := db.FindManyFallback(ctx, r.media.Fallback,
		findAll[models.ProductMedia](r.media.Versioned, filter, sorted),
		findAll[models.ProductMedia](r.media.Legacy, filter, sorted),
	)
	if err != nil {
		return nil, storeErr("listing product media", err)
	}
	return media, nil
}
