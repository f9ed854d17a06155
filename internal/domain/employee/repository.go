package employee

import "context"

// Store is the silver_employees table as the pipeline sees it.
type Store interface {
	Replace(ctx context.Context, ds Dataset) (int64, error)
	All(ctx context.Context) ([]Silver, error)
}

// CRUDRepository is the narrow write surface the API exposes over
// silver_employees.
type CRUDRepository interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (Response, error)
	GetByID(ctx context.Context, clientEmployeeID string) (Response, error)
	List(ctx context.Context, department *string) ([]Response, error)
	Update(ctx context.Context, clientEmployeeID string, req UpdateEmployeeRequest) error
	SoftDelete(ctx context.Context, clientEmployeeID string) error
}
