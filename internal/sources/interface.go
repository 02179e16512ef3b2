package sources

import (
	"context"
	"fmt"

	"github.com/azure/newsroom-desk/internal/models"
)

// Source interface defines the contract for desk data sources
type Source interface {
	GetName() string
	FetchDataset(ctx context.Context) (*models.Dataset, error)
	IsEnabled() bool
}

// Load fetches the dataset from src, refusing a disabled source
func Load(ctx context.Context, src Source) (*models.Dataset, error) {
	if !src.IsEnabled() {
		return nil, fmt.Errorf("source %s is not enabled", src.GetName())
	}
	return src.FetchDataset(ctx)
}
