package employee

import (
	"context"
	"testing"
	"time"

	domain "github.com/hr-insights/etl-backend-go/internal/domain/employee"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCRUDRepository struct {
	created   *domain.CreateEmployeeRequest
	deletedID string
}

func (f *fakeCRUDRepository) Create(_ context.Context, req domain.CreateEmployeeRequest) (domain.Response, error) {
	f.created = &req
	return domain.Response{ClientEmployeeID: req.ClientEmployeeID, IsActive: true}, nil
}

func (f *fakeCRUDRepository) GetByID(_ context.Context, id string) (domain.Response, error) {
	if id != "E001" {
		return domain.Response{}, domain.ErrEmployeeNotFound
	}
	return domain.Response{ClientEmployeeID: id}, nil
}

func (f *fakeCRUDRepository) List(_ context.Context, _ *string) ([]domain.Response, error) {
	return nil, nil
}

func (f *fakeCRUDRepository) Update(_ context.Context, _ string, _ domain.UpdateEmployeeRequest) error {
	return nil
}

func (f *fakeCRUDRepository) SoftDelete(_ context.Context, id string) error {
	f.deletedID = id
	return nil
}

func validCreateRequest() domain.CreateEmployeeRequest {
	return domain.CreateEmployeeRequest{
		ClientEmployeeID: "E100",
		FirstName:        "Alice",
		LastName:         "Smith",
		DepartmentName:   "Engineering",
		HireDate:         time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
	}
}

func TestCreateValidRequest(t *testing.T) {
	repo := &fakeCRUDRepository{}
	svc := NewEmployeeService(repo)

	resp, err := svc.Create(context.Background(), validCreateRequest())

	require.NoError(t, err)
	assert.Equal(t, "E100", resp.ClientEmployeeID)
	require.NotNil(t, repo.created)
}

func TestCreateTrimsEmployeeID(t *testing.T) {
	repo := &fakeCRUDRepository{}
	svc := NewEmployeeService(repo)

	req := validCreateRequest()
	req.ClientEmployeeID = "  E100  "

	_, err := svc.Create(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, "E100", repo.created.ClientEmployeeID)
}

func TestCreateValidation(t *testing.T) {
	svc := NewEmployeeService(&fakeCRUDRepository{})

	_, err := svc.Create(context.Background(), domain.CreateEmployeeRequest{})

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Details, "client_employee_id")
	assert.Contains(t, verr.Details, "first_name")
	assert.Contains(t, verr.Details, "last_name")
	assert.Contains(t, verr.Details, "hire_date")
}

func TestGetUnknownEmployee(t *testing.T) {
	svc := NewEmployeeService(&fakeCRUDRepository{})

	_, err := svc.Get(context.Background(), "E999")

	require.ErrorIs(t, err, domain.ErrEmployeeNotFound)
}

func TestDeleteIsSoft(t *testing.T) {
	repo := &fakeCRUDRepository{}
	svc := NewEmployeeService(repo)

	require.NoError(t, svc.Delete(context.Background(), "E001"))
	assert.Equal(t, "E001", repo.deletedID)
}
