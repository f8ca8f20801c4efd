package usecases

import (
	"context"
	"fmt"

	"github.com/sophialabs/blueprintmock/internal/domain/blueprint"
	"github.com/sophialabs/blueprintmock/internal/domain/catalog"
	"github.com/sophialabs/blueprintmock/internal/domain/markup"
	"github.com/sophialabs/blueprintmock/internal/infrastructure/ports"
)

// LoadResult is everything derived from one read of the configuration.
type LoadResult struct {
	Root       markup.Value
	ServerPort int
	Catalog    *catalog.Catalog
	Issues     []blueprint.Issue
}

// MaxLatencyMs returns the largest configured latency.
func (r *LoadResult) MaxLatencyMs() int {
	longest := 0
	for _, route := range r.Catalog.Routes() {
		longest = max(longest, route.Blueprint.LatencyMs)
	}
	return longest
}

// LoadCatalogUseCase reads the configuration document and builds the catalog.
type LoadCatalogUseCase struct {
	repo   blueprint.Repository
	logger ports.Logger
}

// NewLoadCatalogUseCase creates a new use case.
func NewLoadCatalogUseCase(repo blueprint.Repository, logger ports.Logger) *LoadCatalogUseCase {
	return &LoadCatalogUseCase{
		repo:   repo,
		logger: logger,
	}
}

// Execute loads, decodes and indexes the endpoints. Skipped entries are
// and defaulted fields are logged and returned in the result; only an
// unreadable document fails.
func (uc *LoadCatalogUseCase) Execute(ctx context.Context) (*LoadResult, error) {
	root, err := uc.repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	doc, issues := blueprint.FromDocument(root)
	skipped := 0
	for _, issue := range issues {
		if issue.Skipped {
			skipped++
			uc.logger.Warn("skipping endpoint", "index", issue.Index, "error", issue.Err)
			continue
		}
		uc.logger.Warn("endpoint field replaced by default", "index", issue.Index, "error", issue.Err)
	}
	if len(doc.Endpoints) == 0 {
		uc.logger.Warn("no endpoints configured", "source", uc.repo.Source())
	}

	cat := catalog.Build(doc.Endpoints)
	for _, route := range cat.Routes() {
		uc.logger.Debug("registered endpoint", "method", route.Method, "path", route.Pattern, "dynamic", route.Dynamic)
	}

	uc.logger.Info("catalog loaded",
		"source", uc.repo.Source(),
		"endpoints", len(doc.Endpoints),
		"routes", cat.Len(),
		"skipped", skipped,
	)

	return &LoadResult{
		Root:       root,
		ServerPort: doc.ServerPort,
		Catalog:    cat,
		Issues:     issues,
	}, nil
}
