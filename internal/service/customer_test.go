package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/shoe-rental/internal/errs"
	"github.com/deppfellow/shoe-rental/internal/model"
)

func newCustomerFixture() (*CustomerService, *mockCustomerRepo, *mockJobs) {
	log := zerolog.Nop()
	repo := &mockCustomerRepo{}
	jobs := &mockJobs{}
	return NewCustomerService(repo, jobs, &log), repo, jobs
}

func intPtr(v int) *int    { return &v }
func boolPtr(v bool) *bool { return &v }

func TestCustomerService_Create(t *testing.T) {
	ctx := context.Background()
	payload := &model.CreateCustomerPayload{
		Name: "Ada",
		Age:  intPtr(70),
		ContactInfo: []model.ContactInfo{
			{ContactNumber: "555", EmailAddress: "ada@example.com", Address: "1 Main St"},
		},
		IsDisabled:        boolPtr(false),
		MedicalConditions: []string{" diabetes ", "Diabetes", "hypertension"},
	}

	t.Run("stores normalized conditions and schedules a welcome email", func(t *testing.T) {
		svc, repo, jobs := newCustomerFixture()

		repo.On("Create", ctx, mock.MatchedBy(func(c model.Customer) bool {
			return c.Name == "Ada" && c.Age == 70 && !c.IsDisabled &&
				assert.ObjectsAreEqual([]string{"diabetes", "hypertension"}, c.MedicalConditions)
		})).Return(&model.Customer{ID: 1, Name: "Ada", ContactInfo: payload.ContactInfo}, nil)
		jobs.On("EnqueueWelcomeEmail", ctx, "ada@example.com", "Ada").Return(nil)

		customer, err := svc.Create(ctx, payload)
		require.NoError(t, err)

		assert.Equal(t, int64(1), customer.ID)
		repo.AssertExpectations(t)
		jobs.AssertExpectations(t)
	})

	t.Run("enqueue failure is tolerated", func(t *testing.T) {
		svc, repo, jobs := newCustomerFixture()

		repo.On("Create", ctx, mock.Anything).Return(&model.Customer{ID: 2, Name: "Ada", ContactInfo: payload.ContactInfo}, nil)
		jobs.On("EnqueueWelcomeEmail", ctx, mock.Anything, mock.Anything).Return(errors.New("redis down"))

		customer, err := svc.Create(ctx, payload)
		require.NoError(t, err)
		assert.Equal(t, int64(2), customer.ID)
	})

	t.Run("storage failure is returned and no email is sent", func(t *testing.T) {
		svc, repo, jobs := newCustomerFixture()

		repo.On("Create", ctx, mock.Anything).Return(nil, errs.ErrStorage)

		_, err := svc.Create(ctx, payload)
		assert.ErrorIs(t, err, errs.ErrStorage)
		jobs.AssertNotCalled(t, "EnqueueWelcomeEmail", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestCustomerService_List(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newCustomerFixture()

	repo.On("List", ctx).Return([]model.Customer{{ID: 1}, {ID: 2}, {ID: 3}}, nil)

	customers, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, customers, 3)
}
